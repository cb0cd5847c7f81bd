package bracket

import "testing"

func mustParse(t *testing.T, text string) []Node {
	t.Helper()
	nodes, err := parseTemplate(NewSource("t", text))
	if err != nil {
		t.Fatalf("parse %q: %v", text, err)
	}
	return nodes
}

func TestParseTextCoalescing(t *testing.T) {
	// The escape token's literal "{{" and the surrounding text all
	// collapse into a single TextNode.
	nodes := mustParse(t, `a\{{b`)
	if len(nodes) != 1 {
		t.Fatalf("got %d nodes, want 1: %#v", len(nodes), nodes)
	}
	tn, ok := nodes[0].(*TextNode)
	if !ok {
		t.Fatalf("node is %T, want *TextNode", nodes[0])
	}
	if want := "a{{b"; tn.Content() != want {
		t.Fatalf("got %q, want %q", tn.Content(), want)
	}
}

func TestParseStatementEscapedFlag(t *testing.T) {
	nodes := mustParse(t, `{{x}}{{{y}}}`)
	if len(nodes) != 2 {
		t.Fatalf("got %d nodes, want 2", len(nodes))
	}
	s1 := nodes[0].(*StatementNode)
	s2 := nodes[1].(*StatementNode)
	if !s1.Escaped {
		t.Fatalf("{{x}} should be Escaped")
	}
	if s2.Escaped {
		t.Fatalf("{{{y}}} should not be Escaped")
	}
}

func TestParseMismatchedTripleBraceErrors(t *testing.T) {
	if _, err := parseTemplate(NewSource("t", `{{{x}}`)); err == nil {
		t.Fatal("expected an error for mismatched {{{ }} delimiters")
	}
}

func TestParseBlockWithElseIf(t *testing.T) {
	nodes := mustParse(t, `{{#if a}}A{{else if b}}B{{else}}C{{/if}}`)
	if len(nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(nodes))
	}
	blk, ok := nodes[0].(*BlockNode)
	if !ok {
		t.Fatalf("node is %T, want *BlockNode", nodes[0])
	}
	if blk.CloseName != "if" {
		t.Fatalf("CloseName = %q", blk.CloseName)
	}
	if blk.Else == nil || blk.Else.Chain == nil {
		t.Fatal("expected an else-if chain")
	}
	if blk.Else.Chain.Else == nil || blk.Else.Chain.Else.Chain != nil {
		t.Fatal("expected a plain else after the else-if")
	}
}

func TestParseMismatchedBlockNameErrors(t *testing.T) {
	if _, err := parseTemplate(NewSource("t", `{{#if a}}x{{/unless}}`)); err == nil {
		t.Fatal("expected a mismatched-block error")
	}
}

func TestParseUnclosedBlockErrors(t *testing.T) {
	if _, err := parseTemplate(NewSource("t", `{{#if a}}x`)); err == nil {
		t.Fatal("expected an unclosed-block error")
	}
}

func TestParseDoubleElseErrors(t *testing.T) {
	if _, err := parseTemplate(NewSource("t", `{{#if a}}x{{else}}y{{else}}z{{/if}}`)); err == nil {
		t.Fatal("expected an error for a second else branch")
	}
}

func TestParseRawBlockMismatchedNameErrors(t *testing.T) {
	if _, err := parseTemplate(NewSource("t", `{{{{a}}}}x{{{{/b}}}}`)); err == nil {
		t.Fatal("expected a mismatched raw-block-name error")
	}
}

func TestParsePartialHashArgs(t *testing.T) {
	nodes := mustParse(t, `{{> greeting name=who greeting="hi"}}`)
	pn := nodes[0].(*PartialNode)
	if len(pn.Hash) != 2 {
		t.Fatalf("got %d hash args, want 2", len(pn.Hash))
	}
	if pn.Hash[0].Key != "name" || pn.Hash[1].Key != "greeting" {
		t.Fatalf("hash order wrong: %+v", pn.Hash)
	}
}

func TestParseDuplicateHashKeyErrors(t *testing.T) {
	if _, err := parseTemplate(NewSource("t", `{{f a=1 a=2}}`)); err == nil {
		t.Fatal("expected a duplicate-hash-key error")
	}
}

func TestParsePositionalAfterHashErrors(t *testing.T) {
	if _, err := parseTemplate(NewSource("t", `{{f a=1 2}}`)); err == nil {
		t.Fatal("expected a positional-after-hash error")
	}
}

func TestParsePartialBlockTarget(t *testing.T) {
	nodes := mustParse(t, `{{#> layout title="hi"}}body{{/layout}}`)
	pb := nodes[0].(*PartialBlockNode)
	if pb.Target.Path == nil || pb.Target.Path.Span().Text() != "layout" {
		t.Fatalf("target = %+v", pb.Target)
	}
	if len(pb.Body) != 1 {
		t.Fatalf("got %d body nodes, want 1", len(pb.Body))
	}
}

func TestParseDynamicPartialSubExpression(t *testing.T) {
	nodes := mustParse(t, `{{> (lookup names idx)}}`)
	pn := nodes[0].(*PartialNode)
	if pn.Target.Sub == nil {
		t.Fatal("expected a sub-expression partial target")
	}
}

func TestParsePathKinds(t *testing.T) {
	cases := []struct {
		name string
		tmpl string
		kind PathKind
	}{
		{"relative", `{{foo.bar}}`, PathRelative},
		// A leading "/" with no space would lex as "{{/", the close-tag
		// opener; a space disambiguates it as a statement whose path
		// starts with a root-path separator.
		{"root", `{{ /foo}}`, PathRoot},
		{"current", `{{this}}`, PathCurrent},
		{"parent", `{{../foo}}`, PathParent},
		{"local", `{{@index}}`, PathLocal},
		{"explicit", `{{./foo}}`, PathExplicit},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			nodes := mustParse(t, c.tmpl)
			st := nodes[0].(*StatementNode)
			pe, ok := st.Call.Callee.Path, st.Call.Callee.Path != nil
			if !ok {
				t.Fatalf("callee has no Path: %+v", st.Call.Callee)
			}
			if pe.Kind != c.kind {
				t.Fatalf("got kind %d, want %d", pe.Kind, c.kind)
			}
		})
	}
}

func TestParseParentDepth(t *testing.T) {
	nodes := mustParse(t, `{{../../foo}}`)
	st := nodes[0].(*StatementNode)
	p := st.Call.Callee.Path
	if p.ParentDepth != 2 {
		t.Fatalf("ParentDepth = %d, want 2", p.ParentDepth)
	}
	if len(p.Segments) != 1 || p.Segments[0].Name != "foo" {
		t.Fatalf("segments = %+v", p.Segments)
	}
}

func TestParseIndexSegments(t *testing.T) {
	nodes := mustParse(t, `{{items.[0].["odd key"]}}`)
	st := nodes[0].(*StatementNode)
	segs := st.Call.Callee.Path.Segments
	if len(segs) != 3 {
		t.Fatalf("got %d segments, want 3: %+v", len(segs), segs)
	}
	if segs[0].Name != "items" || segs[0].IsIndex {
		t.Fatalf("segment 0 = %+v", segs[0])
	}
	if !segs[1].IsIndex || segs[1].Index != 0 {
		t.Fatalf("segment 1 = %+v", segs[1])
	}
	if segs[2].IsIndex || segs[2].Name != "odd key" {
		t.Fatalf("segment 2 = %+v", segs[2])
	}
}

func TestParseSubExpression(t *testing.T) {
	nodes := mustParse(t, `{{helper (other a) b}}`)
	st := nodes[0].(*StatementNode)
	if len(st.Call.Positional) != 2 {
		t.Fatalf("got %d positional args, want 2", len(st.Call.Positional))
	}
	sub, ok := st.Call.Positional[0].(*SubExpr)
	if !ok {
		t.Fatalf("positional[0] is %T, want *SubExpr", st.Call.Positional[0])
	}
	if name, _ := simpleCalleeName(sub.Call.Callee); name != "other" {
		t.Fatalf("sub callee = %q", name)
	}
}

func TestParseTrimMarkersRecorded(t *testing.T) {
	// Three top-level nodes: the leading text, the statement, and the
	// trailing text - trim only changes each text node's content, it
	// never merges the statement into either neighbor.
	nodes := mustParse(t, "A\n{{~name~}}\nB")
	if len(nodes) != 3 {
		t.Fatalf("got %d nodes, want 3: %#v", len(nodes), nodes)
	}
	st, ok := nodes[1].(*StatementNode)
	if !ok {
		t.Fatalf("second node is %T", nodes[1])
	}
	if !st.Trim.Left || !st.Trim.Right {
		t.Fatalf("Trim = %+v, want both sides set", st.Trim)
	}
}

func TestParseCommentNode(t *testing.T) {
	nodes := mustParse(t, `a{{! hidden }}b`)
	if len(nodes) != 3 {
		t.Fatalf("got %d nodes, want 3: %#v", len(nodes), nodes)
	}
	if _, ok := nodes[1].(*CommentNode); !ok {
		t.Fatalf("node 1 is %T, want *CommentNode", nodes[1])
	}
}

func TestParseRawBlockPreservesBodyVerbatim(t *testing.T) {
	nodes := mustParse(t, `{{{{raw}}}}hi {{x}}{{{{/raw}}}}`)
	rb, ok := nodes[0].(*RawBlockNode)
	if !ok {
		t.Fatalf("node is %T, want *RawBlockNode", nodes[0])
	}
	if rb.Body != "hi {{x}}" {
		t.Fatalf("Body = %q", rb.Body)
	}
}

func TestParseEmptyRawBlock(t *testing.T) {
	nodes := mustParse(t, `{{{{raw}}}}{{{{/raw}}}}`)
	rb := nodes[0].(*RawBlockNode)
	if rb.Body != "" {
		t.Fatalf("Body = %q, want empty", rb.Body)
	}
}
