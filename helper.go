package bracket

import "io"

// HelperArgs is what an expression helper (used inside "{{helper a b c=1}}")
// receives: its positional and hash arguments already resolved to Value,
// plus enough of the renderer to resolve further paths or recurse into a
// sub-expression result if it needs to.
type HelperArgs struct {
	Name       string
	Positional []Value
	Hash       *OrderedMap
	Scope      *Scope
	Span       Span
	Render     *Render
}

// Arg returns the i'th positional argument, or Null if it was not
// supplied - helpers are not arity-checked by the parser, so a helper
// that requires an argument should check for KindNull itself and return
// a HelperError.
func (a HelperArgs) Arg(i int) Value {
	if i < 0 || i >= len(a.Positional) {
		return Null()
	}
	return a.Positional[i]
}

// HashArg returns a named hash argument, or Null if it was not supplied.
func (a HelperArgs) HashArg(key string) Value {
	if a.Hash == nil {
		return Null()
	}
	v, _ := a.Hash.Get(key)
	return v
}

// ExpressionHelper computes a Value from its arguments - "{{eq a b}}",
// "{{lookup obj key}}" and the like. Returning a non-nil error aborts
// the render with a HelperError spanning the call.
type ExpressionHelper func(args HelperArgs) (Value, error)

// BlockHelperArgs is what a block helper (used inside
// "{{#helper a b}}...{{/helper}}") receives: everything an expression
// helper gets, plus the means to render its own body or "else" chain
// against a scope of the helper's choosing.
type BlockHelperArgs struct {
	HelperArgs
	HasElse bool
}

// RenderBody renders the block's body against scope to w.
func (a BlockHelperArgs) RenderBody(w io.Writer, scope *Scope) error {
	return a.Render.renderBody(w, scope)
}

// RenderElse renders the block's "{{else}}" chain (if any) against
// scope to w. It is a no-op if the block has no else chain.
func (a BlockHelperArgs) RenderElse(w io.Writer, scope *Scope) error {
	return a.Render.renderElse(w, scope)
}

// BlockHelper implements a block helper such as #if, #each or #with. It
// is handed its own body/else renderer bound at call time, so it decides
// when (and how many times, and against what scope) to invoke them -
// #each calls RenderBody once per item, #if calls RenderBody or
// RenderElse depending on its condition, and so on.
type BlockHelper func(w io.Writer, args BlockHelperArgs) error
