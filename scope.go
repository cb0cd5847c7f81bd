package bracket

import "io"

// Scope is one frame of the data stack a render walks: the current
// "this" value, any @-locals bound when this frame was pushed (@index,
// @key, @first, @last, @partial-block, or a block's named parameters),
// and a link to the enclosing frame and to the root frame @root always
// targets.
type Scope struct {
	parent *Scope
	root   *Scope
	this   Value
	locals map[string]Value

	// partialBlock, when set, is what "{{@partial-block}}" renders: the
	// body a "{{#> name}} ... {{/name}}" call was given, bound to the
	// scope it was written in (not the partial's own scope).
	partialBlock partialBlockFunc
}

// partialBlockFunc renders a partial block's captured body.
type partialBlockFunc func(w io.Writer, s *Scope) error

// newRootScope builds the outermost frame a render starts from.
func newRootScope(data Value) *Scope {
	s := &Scope{this: data, locals: map[string]Value{}}
	s.root = s
	return s
}

// Child pushes a new frame with this bound to v, as "with" and the
// body of a block helper do.
func (s *Scope) Child(v Value) *Scope {
	return &Scope{parent: s, root: s.root, this: v, locals: map[string]Value{}}
}

// This returns the frame's current value.
func (s *Scope) This() Value { return s.this }

// SetLocal binds an @-local (or a block's named parameter) on this
// frame. Only meant to be called on a frame just created with Child,
// before it is handed to a nested render - locals are otherwise
// immutable for the lifetime of a frame.
func (s *Scope) SetLocal(name string, v Value) {
	s.locals[name] = v
}

// lookupLocal walks outward from s looking for an @-local, so a local
// bound by an enclosing #each is still visible to a nested block that
// does not rebind it.
func (s *Scope) lookupLocal(name string) (Value, bool) {
	for f := s; f != nil; f = f.parent {
		if v, ok := f.locals[name]; ok {
			return v, true
		}
	}
	return Value{}, false
}

// SetPartialBlock binds "{{@partial-block}}" for this frame. Only
// meant to be called on a frame just created with Child, mirroring
// SetLocal.
func (s *Scope) SetPartialBlock(fn partialBlockFunc) {
	s.partialBlock = fn
}

// lookupPartialBlock walks outward from s for the nearest bound
// "{{@partial-block}}" renderer.
func (s *Scope) lookupPartialBlock() (partialBlockFunc, bool) {
	for f := s; f != nil; f = f.parent {
		if f.partialBlock != nil {
			return f.partialBlock, true
		}
	}
	return nil, false
}

// resolvePath resolves p against s, returning Null for any segment that
// does not exist - a missing property is falsy and renders empty, it is
// not a resolution error. An InvalidPath error is only returned for a
// path that is structurally impossible to resolve, such as ".." walking
// past the root.
func (s *Scope) resolvePath(p *Path) (Value, error) {
	switch p.Kind {
	case PathRoot:
		return applySegments(s.root.this, p.Segments), nil

	case PathCurrent, PathRelative:
		return applySegments(s.this, p.Segments), nil

	case PathParent:
		frame := s
		for i := 0; i < p.ParentDepth; i++ {
			if frame.parent == nil {
				return Value{}, newError(InvalidPath, p.Span(), "path %q walks above the root context", p.Span().Text())
			}
			frame = frame.parent
		}
		return applySegments(frame.this, p.Segments), nil

	case PathLocal:
		name := p.Segments[0].Name
		if name == "root" {
			return applySegments(s.root.this, p.Segments[1:]), nil
		}
		v, ok := s.lookupLocal(name)
		if !ok {
			return Null(), nil
		}
		return applySegments(v, p.Segments[1:]), nil

	case PathExplicit:
		return applySegments(s.this, p.Segments), nil

	default:
		return Value{}, newError(InvalidPath, p.Span(), "unresolvable path %q", p.Span().Text())
	}
}

// applySegments walks start through a chain of object/array accesses,
// returning Null as soon as a segment cannot be followed further.
func applySegments(start Value, segs []Segment) Value {
	cur := start
	for _, seg := range segs {
		if seg.IsIndex {
			cur = indexInto(cur, seg.Index)
			continue
		}
		cur = fieldInto(cur, seg.Name)
	}
	return cur
}

func fieldInto(v Value, name string) Value {
	switch v.Kind() {
	case KindObject:
		if val, ok := v.Object().Get(name); ok {
			return val
		}
		return Null()
	case KindArray:
		arr := v.Array()
		if name == "length" {
			return Number(float64(len(arr)))
		}
		return Null()
	default:
		return Null()
	}
}

// indexInto resolves a bracketed [N] segment. A bracketed non-numeric
// key, such as ["foo bar"], parses as a plain named Segment rather than
// IsIndex, so this only ever needs to handle array positions.
func indexInto(v Value, n int) Value {
	if v.Kind() != KindArray {
		return Null()
	}
	arr := v.Array()
	if n < 0 || n >= len(arr) {
		return Null()
	}
	return arr[n]
}
