package bracket

import (
	"bytes"
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// EscapeFunc transforms a scalar's string form for "{{x}}" output.
// "{{{x}}}" output bypasses it entirely. An error is fatal to the
// render that triggered it (EscapeError).
type EscapeFunc func(string) (string, error)

// Template is a compiled AST bound to the Source it was parsed from -
// the template never outlives that Source, since TextNode spans and any
// later diagnostic both point into it.
type Template struct {
	Name   string
	Source *Source
	Nodes  []Node
}

// Registry owns everything Compile and Render need beyond the AST
// itself: the helper tables, the partial table, the escape function,
// and a Logger built-in helpers and diagnostics write through. Build a
// Registry single-threaded, then treat it as read-only and share it
// across goroutines for concurrent rendering - each render call builds
// its own scope stack and output buffer.
type Registry struct {
	helpers      map[string]ExpressionHelper
	blockHelpers map[string]BlockHelper
	partials     map[string]*Template
	escape       EscapeFunc

	Logger zerolog.Logger
}

// NewRegistry returns a Registry with the built-in helpers registered
// and zerolog.Nop() as its default Logger.
func NewRegistry() *Registry {
	r := &Registry{
		helpers:      make(map[string]ExpressionHelper),
		blockHelpers: make(map[string]BlockHelper),
		partials:     make(map[string]*Template),
		escape:       defaultEscape,
		Logger:       zerolog.Nop(),
	}
	registerBuiltins(r)
	return r
}

// RegisterHelper adds or replaces an expression helper.
func (r *Registry) RegisterHelper(name string, h ExpressionHelper) {
	r.helpers[name] = h
}

// RegisterBlockHelper adds or replaces a block helper.
func (r *Registry) RegisterBlockHelper(name string, h BlockHelper) {
	r.blockHelpers[name] = h
}

// SetEscape replaces the escape function used for "{{x}}" output.
func (r *Registry) SetEscape(fn EscapeFunc) {
	if fn != nil {
		r.escape = fn
	}
}

// Compile parses src into a Template without registering it anywhere.
func (r *Registry) Compile(src *Source) (*Template, error) {
	nodes, err := parseTemplate(src)
	if err != nil {
		return nil, err
	}
	return &Template{Name: src.Name, Source: src, Nodes: nodes}, nil
}

// RegisterPartial compiles src and stores it under name, so both
// "{{> name}}" and Render(name, data) can reach it.
func (r *Registry) RegisterPartial(name string, src *Source) error {
	tpl, err := r.Compile(src)
	if err != nil {
		return err
	}
	r.partials[name] = tpl
	return nil
}

// RegisterTemplate is an alias for RegisterPartial: partials and
// top-level named templates share one table, since both are just a
// name resolving to a compiled Template.
func (r *Registry) RegisterTemplate(name string, src *Source) error {
	return r.RegisterPartial(name, src)
}

func (r *Registry) lookupPartial(name string) (*Template, bool) {
	tpl, ok := r.partials[name]
	return tpl, ok
}

// Render looks up a previously registered template by name and renders
// it against data.
func (r *Registry) Render(name string, data interface{}) (string, error) {
	tpl, ok := r.lookupPartial(name)
	if !ok {
		return "", newError(UnknownPartial, Span{}, "no template registered under %q", name)
	}
	return r.RenderTemplate(tpl, data)
}

// RenderTemplate renders an already-compiled Template against data.
func (r *Registry) RenderTemplate(tpl *Template, data interface{}) (string, error) {
	return r.RenderTemplateContext(context.Background(), tpl, data)
}

// RenderTemplateContext is RenderTemplate with cooperative cancellation:
// ctx is checked before each node is visited, and a cancelled ctx aborts
// the render with a Cancelled error.
func (r *Registry) RenderTemplateContext(ctx context.Context, tpl *Template, data interface{}) (string, error) {
	id := uuid.New()
	rnd := &Render{
		registry: r,
		ctx:      ctx,
		logger:   r.Logger.With().Str("render_id", id.String()).Logger(),
	}
	scope := newRootScope(FromGo(data))
	var buf bytes.Buffer
	if err := rnd.renderNodes(&buf, scope, tpl.Nodes); err != nil {
		return buf.String(), err
	}
	return buf.String(), nil
}

// defaultEscape implements the character set spec.md §9's Open Question
// resolves to: &, <, >, ", '.
func defaultEscape(s string) (string, error) {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#x27;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String(), nil
}
