package bracket

import (
	"bytes"
	"io"
	"testing"
)

func objValue(pairs ...interface{}) Value {
	m := NewOrderedMap()
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Set(pairs[i].(string), pairs[i+1].(Value))
	}
	return Object(m)
}

func TestScopeRelativeAndCurrentPath(t *testing.T) {
	root := newRootScope(objValue("name", String("Ada")))
	p := &Path{Kind: PathRelative, Segments: []Segment{{Name: "name"}}}
	v, err := root.resolvePath(p)
	if err != nil {
		t.Fatal(err)
	}
	if v.AsString() != "Ada" {
		t.Fatalf("got %q", v.AsString())
	}

	this := &Path{Kind: PathCurrent}
	v, err = root.resolvePath(this)
	if err != nil {
		t.Fatal(err)
	}
	if v.Kind() != KindObject {
		t.Fatalf("this should resolve to the root object, got kind %d", v.Kind())
	}
}

func TestScopeRootAlwaysTargetsOriginalData(t *testing.T) {
	root := newRootScope(objValue("title", String("top")))
	child := root.Child(objValue("title", String("inner")))
	grandchild := child.Child(objValue("title", String("innermost")))

	p := &Path{Kind: PathLocal, Segments: []Segment{{Name: "root"}, {Name: "title"}}}
	v, err := grandchild.resolvePath(p)
	if err != nil {
		t.Fatal(err)
	}
	if v.AsString() != "top" {
		t.Fatalf("got %q, want %q", v.AsString(), "top")
	}
}

func TestScopeParentWalk(t *testing.T) {
	root := newRootScope(objValue("title", String("top")))
	child := root.Child(objValue("title", String("inner")))

	p := &Path{Kind: PathParent, ParentDepth: 1, Segments: []Segment{{Name: "title"}}}
	v, err := child.resolvePath(p)
	if err != nil {
		t.Fatal(err)
	}
	if v.AsString() != "top" {
		t.Fatalf("got %q, want %q", v.AsString(), "top")
	}
}

func TestScopeParentWalkPastRootErrors(t *testing.T) {
	root := newRootScope(objValue())
	p := &Path{Kind: PathParent, ParentDepth: 1, Segments: nil, sp: Span{Source: NewSource("t", "../x"), Start: 0, End: 4}}
	if _, err := root.resolvePath(p); err == nil {
		t.Fatal("expected an InvalidPath error walking past the root")
	}
}

func TestScopeMissingPathResolvesNull(t *testing.T) {
	root := newRootScope(objValue("a", String("1")))
	p := &Path{Kind: PathRelative, Segments: []Segment{{Name: "missing"}, {Name: "deeper"}}}
	v, err := root.resolvePath(p)
	if err != nil {
		t.Fatal(err)
	}
	if !v.IsNull() {
		t.Fatalf("expected Null, got %+v", v)
	}
}

func TestScopeLocalLookupWalksOutward(t *testing.T) {
	root := newRootScope(Null())
	root.SetLocal("index", Number(0))
	child := root.Child(Null())
	// child does not rebind "index"; it should still see the parent's.
	v, ok := child.lookupLocal("index")
	if !ok || v.Number() != 0 {
		t.Fatalf("got %+v, %v", v, ok)
	}
}

func TestScopeArrayLengthField(t *testing.T) {
	root := newRootScope(objValue("xs", Array([]Value{String("a"), String("b"), String("c")})))
	p := &Path{Kind: PathRelative, Segments: []Segment{{Name: "xs"}, {Name: "length"}}}
	v, err := root.resolvePath(p)
	if err != nil {
		t.Fatal(err)
	}
	if v.Number() != 3 {
		t.Fatalf("got %v", v.Number())
	}
}

func TestScopeIndexSegment(t *testing.T) {
	root := newRootScope(objValue("xs", Array([]Value{String("a"), String("b")})))
	p := &Path{Kind: PathRelative, Segments: []Segment{{Name: "xs"}, {IsIndex: true, Index: 1}}}
	v, err := root.resolvePath(p)
	if err != nil {
		t.Fatal(err)
	}
	if v.AsString() != "b" {
		t.Fatalf("got %q", v.AsString())
	}
}

func TestScopePartialBlockWalksOutward(t *testing.T) {
	root := newRootScope(Null())
	var called bool
	root.SetPartialBlock(func(w io.Writer, s *Scope) error {
		called = true
		_, err := w.Write([]byte("body"))
		return err
	})
	child := root.Child(Null())
	fn, ok := child.lookupPartialBlock()
	if !ok {
		t.Fatal("expected to find a bound partial-block renderer on an ancestor frame")
	}
	var buf bytes.Buffer
	if err := fn(&buf, child); err != nil {
		t.Fatal(err)
	}
	if !called || buf.String() != "body" {
		t.Fatalf("called=%v buf=%q", called, buf.String())
	}
}
