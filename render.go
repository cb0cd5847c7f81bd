package bracket

import (
	"bytes"
	"context"
	"io"

	"github.com/rs/zerolog"
)

// Render carries everything one RenderTemplate(Context) call needs as
// it walks an AST: the Registry it was compiled against, the
// cancellation context, a per-render Logger, and - while a block or
// partial-block call is being dispatched to its helper - the body and
// else chain that call's RenderBody/RenderElse should render.
type Render struct {
	registry *Registry
	ctx      context.Context
	logger   zerolog.Logger

	// body/elseNode are set only while a BlockHelper is running, scoped
	// to the single call it was constructed for.
	body     []Node
	elseNode *BlockElse
}

func (r *Render) forBlock(body []Node, elseNode *BlockElse) *Render {
	child := *r
	child.body = body
	child.elseNode = elseNode
	return &child
}

func (r *Render) checkCancel(sp Span) error {
	select {
	case <-r.ctx.Done():
		return newError(Cancelled, sp, "render cancelled: %v", r.ctx.Err())
	default:
		return nil
	}
}

func (r *Render) renderBody(w io.Writer, scope *Scope) error {
	return r.renderNodes(w, scope, r.body)
}

func (r *Render) renderElse(w io.Writer, scope *Scope) error {
	if r.elseNode == nil {
		return nil
	}
	if r.elseNode.Chain != nil {
		return r.renderBlock(w, scope, r.elseNode.Chain)
	}
	return r.renderNodes(w, scope, r.elseNode.Body)
}

// renderNodes walks a node list in source order, writing to w.
func (r *Render) renderNodes(w io.Writer, scope *Scope, nodes []Node) error {
	for _, n := range nodes {
		if err := r.checkCancel(n.Span()); err != nil {
			return err
		}
		if err := r.renderOne(w, scope, n); err != nil {
			return err
		}
	}
	return nil
}

func (r *Render) renderOne(w io.Writer, scope *Scope, n Node) error {
	switch node := n.(type) {
	case *TextNode:
		_, err := io.WriteString(w, node.Content())
		return err

	case *CommentNode:
		return nil

	case *RawBlockNode:
		_, err := io.WriteString(w, node.Body)
		return err

	case *StatementNode:
		return r.renderStatement(w, scope, node)

	case *BlockNode:
		return r.renderBlock(w, scope, node)

	case *PartialNode:
		return r.renderPartial(w, scope, node)

	case *PartialBlockNode:
		return r.renderPartialBlock(w, scope, node)

	default:
		return newError(UnexpectedToken, n.Span(), "renderer: unhandled node type %T", n)
	}
}

func (r *Render) renderStatement(w io.Writer, scope *Scope, n *StatementNode) error {
	v, err := r.evalCall(scope, n.Call)
	if err != nil {
		return err
	}
	return r.writeValue(w, v, n.Escaped)
}

// writeValue implements §4.F's node-handling rule for Statement output:
// strings write (escaped per the flag), scalars write their JSON form,
// composites fall back to their JSON representation regardless of the
// escape flag (escaping JSON punctuation would just corrupt it).
func (r *Render) writeValue(w io.Writer, v Value, escaped bool) error {
	switch v.Kind() {
	case KindString:
		s := v.AsString()
		if escaped {
			out, err := r.registry.escape(s)
			if err != nil {
				return newError(EscapeError, Span{}, "%v", err)
			}
			s = out
		}
		_, err := io.WriteString(w, s)
		return err
	case KindNull:
		return nil
	case KindBool, KindNumber:
		_, err := io.WriteString(w, v.AsString())
		return err
	default:
		js, err := v.JSON()
		if err != nil {
			return newError(EscapeError, Span{}, "%v", err)
		}
		_, err = io.WriteString(w, js)
		return err
	}
}

// renderBlock implements §4.F: dispatch to a registered block helper if
// the callee names one, else fall back to reference "default block"
// semantics when the callee is a bare path.
func (r *Render) renderBlock(w io.Writer, scope *Scope, n *BlockNode) error {
	name, isPath := bareHelperName(n.Call)
	if name != "" {
		if helper, ok := r.registry.blockHelpers[name]; ok {
			return r.dispatchBlockHelper(w, scope, n, helper, name)
		}
	}
	if !isPath {
		return newError(UnknownHelper, n.Span(), "no block helper named %q", name)
	}

	v, err := r.resolveCallTarget(scope, n.Call)
	if err != nil {
		return err
	}
	child := r.forBlock(n.Body, n.Else)
	if v.Truthy() {
		return child.renderBody(w, scope.Child(v))
	}
	return child.renderElse(w, scope)
}

func (r *Render) dispatchBlockHelper(w io.Writer, scope *Scope, n *BlockNode, helper BlockHelper, name string) error {
	positional, hash, err := r.evalArgs(scope, n.Call)
	if err != nil {
		return wrapBoundary(err, HelperError, n.Span(), "evaluating arguments to %q", name)
	}
	child := r.forBlock(n.Body, n.Else)
	args := BlockHelperArgs{
		HelperArgs: HelperArgs{
			Name:       name,
			Positional: positional,
			Hash:       hash,
			Scope:      scope,
			Span:       n.Span(),
			Render:     child,
		},
		HasElse: n.Else != nil,
	}
	if err := helper(w, args); err != nil {
		return wrapBoundary(err, HelperError, n.Span(), "in block helper %q", name)
	}
	return nil
}

func (r *Render) renderPartial(w io.Writer, scope *Scope, n *PartialNode) error {
	tpl, err := r.resolvePartialTarget(scope, n.Target, n.Span())
	if err != nil {
		return err
	}
	partialScope, err := r.scopeForPartial(scope, n.Hash)
	if err != nil {
		return err
	}
	if err := r.renderNodes(w, partialScope, tpl.Nodes); err != nil {
		return wrapBoundary(err, HelperError, n.Span(), "rendering partial %q", tpl.Name)
	}
	return nil
}

func (r *Render) renderPartialBlock(w io.Writer, scope *Scope, n *PartialBlockNode) error {
	tpl, err := r.resolvePartialTarget(scope, n.Target, n.Span())
	if err != nil {
		return err
	}
	partialScope, err := r.scopeForPartial(scope, n.Hash)
	if err != nil {
		return err
	}
	if partialScope == scope {
		partialScope = scope.Child(scope.This())
	}
	body := n.Body
	bodyScope := scope
	outer := r
	partialScope.SetPartialBlock(func(bw io.Writer, _ *Scope) error {
		return outer.renderNodes(bw, bodyScope, body)
	})
	if err := r.renderNodes(w, partialScope, tpl.Nodes); err != nil {
		return wrapBoundary(err, HelperError, n.Span(), "rendering partial block %q", tpl.Name)
	}
	return nil
}

func (r *Render) scopeForPartial(scope *Scope, hash []HashArg) (*Scope, error) {
	if len(hash) == 0 {
		return scope, nil
	}
	obj := NewOrderedMap()
	cur := scope.This()
	if cur.Kind() == KindObject {
		cur.Object().Each(func(k string, v Value) { obj.Set(k, v) })
	}
	for _, h := range hash {
		v, err := r.evalExpr(scope, h.Value)
		if err != nil {
			return nil, err
		}
		obj.Set(h.Key, v)
	}
	return scope.Child(Object(obj)), nil
}

func (r *Render) resolvePartialTarget(scope *Scope, t PartialTarget, sp Span) (*Template, error) {
	var name string
	if t.Sub != nil {
		v, err := r.evalCall(scope, t.Sub)
		if err != nil {
			return nil, err
		}
		name = v.AsString()
	} else {
		// A static partial target is a literal name, e.g. "user-card" in
		// "{{> user-card}}" - not a data lookup through the scope.
		name = t.Path.Span().Text()
	}
	tpl, ok := r.registry.lookupPartial(name)
	if !ok {
		return nil, newError(UnknownPartial, sp, "no partial registered under %q", name)
	}
	return tpl, nil
}

// evalCall evaluates a Call per §4.F: a callee naming a registered
// helper is invoked with its evaluated arguments; otherwise the callee
// is resolved as a path (or recursed into as a sub-expression).
func (r *Render) evalCall(scope *Scope, call *Call) (Value, error) {
	if name, _ := bareHelperName(call); name != "" {
		if helper, ok := r.registry.helpers[name]; ok {
			positional, hash, err := r.evalArgs(scope, call)
			if err != nil {
				return Value{}, wrapBoundary(err, HelperError, call.Span(), "evaluating arguments to %q", name)
			}
			v, err := helper(HelperArgs{
				Name:       name,
				Positional: positional,
				Hash:       hash,
				Scope:      scope,
				Span:       call.Span(),
				Render:     r,
			})
			if err != nil {
				return Value{}, wrapBoundary(err, HelperError, call.Span(), "in helper %q", name)
			}
			return v, nil
		}
		if len(call.Positional) > 0 || len(call.Hash) > 0 {
			return Value{}, newError(UnknownHelper, call.Span(), "no helper named %q", name)
		}
	}
	return r.resolveCallTarget(scope, call)
}

// resolveCallTarget evaluates a Call's callee as a plain value, without
// consulting the helper table - used both when evalCall's callee names
// no helper, and for #block's reference "default block" fallback.
func (r *Render) resolveCallTarget(scope *Scope, call *Call) (Value, error) {
	if call.Callee.Sub != nil {
		return r.evalCall(scope, call.Callee.Sub)
	}
	return r.evalPath(scope, call.Callee.Path)
}

// evalArgs evaluates a Call's positional and hash arguments in order
// (§4.F "Call evaluation").
func (r *Render) evalArgs(scope *Scope, call *Call) ([]Value, *OrderedMap, error) {
	positional := make([]Value, len(call.Positional))
	for i, e := range call.Positional {
		v, err := r.evalExpr(scope, e)
		if err != nil {
			return nil, nil, err
		}
		positional[i] = v
	}
	hash := NewOrderedMap()
	for _, h := range call.Hash {
		v, err := r.evalExpr(scope, h.Value)
		if err != nil {
			return nil, nil, err
		}
		hash.Set(h.Key, v)
	}
	return positional, hash, nil
}

func (r *Render) evalExpr(scope *Scope, e Expr) (Value, error) {
	switch ex := e.(type) {
	case *LiteralExpr:
		return ex.V, nil
	case *PathExpr:
		return r.evalPath(scope, ex.P)
	case *SubExpr:
		return r.evalCall(scope, ex.Call)
	default:
		return Value{}, newError(UnexpectedToken, e.Span(), "unhandled expression type %T", e)
	}
}

// evalPath is scope.resolvePath plus the one dynamic value a Scope
// can't resolve on its own: "{{@partial-block}}" renders its captured
// body into a string, since Value has no callable kind.
func (r *Render) evalPath(scope *Scope, p *Path) (Value, error) {
	if p.Kind == PathLocal && len(p.Segments) > 0 && p.Segments[0].Name == "partial-block" {
		fn, ok := scope.lookupPartialBlock()
		if !ok {
			return Null(), nil
		}
		var buf bytes.Buffer
		if err := fn(&buf, scope); err != nil {
			return Value{}, err
		}
		return String(buf.String()), nil
	}
	return scope.resolvePath(p)
}

// bareHelperName returns the callee's name when it is a bare,
// single-segment relative path (the shape a helper name takes), and
// whether the callee is a path at all (vs. a sub-expression).
func bareHelperName(c *Call) (name string, isPath bool) {
	if c.Callee.Path == nil {
		return "", false
	}
	p := c.Callee.Path
	if p.Kind == PathRelative && len(p.Segments) == 1 && !p.Segments[0].IsIndex {
		return p.Segments[0].Name, true
	}
	return "", true
}
