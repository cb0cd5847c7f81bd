package bracket

import "strconv"

// parser consumes a lexer's token stream and builds the node tree for
// one template. It keeps a small pushback buffer so paths like "../.."
// and hash detection ("ident" followed by "=") can look two tokens
// ahead without a dedicated grammar production for each.
type parser struct {
	src    *Source
	tokens <-chan Token
	cancel func()

	buf []Token // pushback stack, most-recently-backed-up last

	lastSpan Span // span of the most recently consumed token

	lastText         *TextNode // tail text node of the list currently being built
	pendingRightTrim bool      // a '~' on the previous tag awaits the next text node
}

// parseTemplate lexes and parses src into its node tree.
func parseTemplate(src *Source) ([]Node, error) {
	tokens, cancel := lex(src)
	p := &parser{src: src, tokens: tokens, cancel: cancel}
	defer p.cancel()

	nodes, err := p.parseNodes()
	if err != nil {
		return nil, err
	}
	return nodes, nil
}

func (p *parser) next() Token {
	var t Token
	if n := len(p.buf); n > 0 {
		t = p.buf[n-1]
		p.buf = p.buf[:n-1]
	} else {
		tok, ok := <-p.tokens
		if !ok {
			t = Token{Kind: tokEOF}
		} else {
			t = tok
		}
	}
	if t.Kind != tokEOF {
		p.lastSpan = t.Span
	}
	return t
}

func (p *parser) backup(t Token) {
	p.buf = append(p.buf, t)
}

func (p *parser) peek() Token {
	saved := p.lastSpan
	t := p.next()
	p.backup(t)
	p.lastSpan = saved
	return t
}

func (p *parser) peek2() (Token, Token) {
	saved := p.lastSpan
	a := p.next()
	b := p.next()
	p.backup(b)
	p.backup(a)
	p.lastSpan = saved
	return a, b
}

func (p *parser) unexpected(tok Token, want string) error {
	if tok.Kind == tokError {
		return &Error{Kind: LexError, Span: tok.Span, Message: tok.Value}
	}
	return newError(UnexpectedToken, tok.Span, "expected %s, got %s", want, tok.Kind)
}

// applyLeftTrim mutates the tail text node of the list currently being
// built, in place, to account for a '~' on the tag that follows it.
// If the immediately preceding sibling wasn't text, there's nothing to
// trim and the marker is a no-op.
func (p *parser) applyLeftTrim() {
	if p.lastText != nil {
		p.lastText.content = applyLeftTrim(p.lastText.content)
	}
}

// push appends n to list, coalescing adjacent text nodes and resolving
// any right-trim left pending by the previous tag. Trim only ever
// reaches across an actual text sibling; a non-text node simply drops a
// pending trim rather than propagating it further.
func (p *parser) push(list *[]Node, n Node) {
	if tn, ok := n.(*TextNode); ok {
		if p.pendingRightTrim {
			tn.content = applyRightTrim(tn.content)
			p.pendingRightTrim = false
		}
		if len(*list) > 0 {
			if prev, ok := (*list)[len(*list)-1].(*TextNode); ok {
				prev.content += tn.content
				prev.sp = joinSpan(prev.sp, tn.sp)
				p.lastText = prev
				return
			}
		}
		*list = append(*list, tn)
		p.lastText = tn
		return
	}
	p.pendingRightTrim = false
	p.lastText = nil
	*list = append(*list, n)
}

// parseNodes parses the top-level run of sibling nodes, to EOF.
func (p *parser) parseNodes() ([]Node, error) {
	var list []Node
	for {
		tok := p.peek()
		if tok.Kind == tokEOF {
			return list, nil
		}
		if err := p.parseOne(&list); err != nil {
			return nil, err
		}
	}
}

// parseBodySegment parses one segment of a body (the main body, or one
// else/else-if body). It resets left-trim tracking to a fresh scope on
// entry; pendingRightTrim needs no such reset, since it is always
// consumed (or correctly dropped) by the very next node pushed,
// regardless of which list that node lands in. The caller is
// responsible for restoring the enclosing scope's lastText once the
// whole body/else-chain sequence is done, so that the close tag's own
// left-trim still reaches the last segment parsed rather than the
// scope it returns to.
func (p *parser) parseBodySegment(openSpan Span) ([]Node, error) {
	p.lastText = nil
	var list []Node
	for {
		tok := p.peek()
		if tok.Kind == tokEOF {
			return nil, newErrorWithSecondary(UnclosedBlock, tok.Span, openSpan, "unexpected end of template")
		}
		if tok.Kind == tokStartCloseBlock || p.atElseBoundary() {
			return list, nil
		}
		if err := p.parseOne(&list); err != nil {
			return nil, err
		}
	}
}

// atElseBoundary reports, without consuming, whether the next tag is
// "{{else" or "{{else if". Ordinary statements named plain "else" are
// indistinguishable from this by design: "else" is reserved as a block
// keyword at this position.
func (p *parser) atElseBoundary() bool {
	tok1 := p.next()
	if tok1.Kind != tokStartStatement {
		p.backup(tok1)
		return false
	}
	tok2 := p.next()
	isElse := tok2.Kind == tokIdent && tok2.Value == "else"
	p.backup(tok2)
	p.backup(tok1)
	return isElse
}

func (p *parser) parseOne(list *[]Node) error {
	tok := p.next()
	switch tok.Kind {
	case tokText:
		p.push(list, &TextNode{sp: tok.Span, content: tok.Span.Text()})
		return nil
	case tokEscape:
		p.push(list, &TextNode{sp: tok.Span, content: "{{"})
		return nil
	case tokComment:
		p.push(list, &CommentNode{sp: tok.Span})
		return nil
	case tokRawOpen:
		return p.finishRawBlock(list, tok)
	case tokStartStatement:
		return p.finishStatement(list, tok)
	case tokStartBlock:
		return p.finishBlock(list, tok)
	case tokStartPartial:
		return p.finishPartial(list, tok)
	case tokStartCloseBlock:
		return newError(UnexpectedToken, tok.Span, "closing tag has no matching open")
	case tokError:
		return &Error{Kind: LexError, Span: tok.Span, Message: tok.Value}
	default:
		return newError(UnexpectedToken, tok.Span, "unexpected %s", tok.Kind)
	}
}

func (p *parser) finishRawBlock(list *[]Node, openTok Token) error {
	bodyTok := p.next()
	var body string
	bodySpan := Span{Source: p.src, Start: openTok.Span.End, End: openTok.Span.End}
	if bodyTok.Kind == tokText {
		body = bodyTok.Span.Text()
		bodySpan = bodyTok.Span
		bodyTok = p.next()
	}
	if bodyTok.Kind == tokError {
		return &Error{Kind: LexError, Span: bodyTok.Span, Message: bodyTok.Value}
	}
	if bodyTok.Kind != tokRawClose {
		return newErrorWithSecondary(UnclosedBlock, bodyTok.Span, openTok.Span, "expected closing raw block, got %s", bodyTok.Kind)
	}
	if bodyTok.Value != openTok.Value {
		return newErrorWithSecondary(MismatchedBlock, bodyTok.Span, openTok.Span, "raw block %q closed as %q", openTok.Value, bodyTok.Value)
	}
	p.push(list, &RawBlockNode{
		sp:       joinSpan(openTok.Span, bodyTok.Span),
		Name:     openTok.Value,
		Body:     body,
		BodySpan: bodySpan,
	})
	return nil
}

// expectEnd consumes and validates the tokEnd that closes a tag whose
// arity (single or triple brace) must match unescaped.
func (p *parser) expectEnd(unescaped bool) (Token, error) {
	end := p.next()
	if end.Kind == tokError {
		return end, &Error{Kind: LexError, Span: end.Span, Message: end.Value}
	}
	if end.Kind != tokEnd {
		return end, p.unexpected(end, "}}")
	}
	if end.Unescaped != unescaped {
		return end, newError(UnexpectedToken, end.Span, "mismatched statement delimiters")
	}
	return end, nil
}

func (p *parser) finishStatement(list *[]Node, openTok Token) error {
	if openTok.LeftTrim {
		p.applyLeftTrim()
	}
	call, err := p.parseCall()
	if err != nil {
		return err
	}
	end, err := p.expectEnd(openTok.Unescaped)
	if err != nil {
		return err
	}
	p.push(list, &StatementNode{
		sp:      joinSpan(openTok.Span, end.Span),
		Call:    call,
		Escaped: !openTok.Unescaped,
		Trim:    Trim{Left: openTok.LeftTrim, Right: end.RightTrim},
	})
	if end.RightTrim {
		p.pendingRightTrim = true
	}
	return nil
}

func (p *parser) finishBlock(list *[]Node, openTok Token) error {
	if openTok.LeftTrim {
		p.applyLeftTrim()
	}
	call, err := p.parseCall()
	if err != nil {
		return err
	}
	end, err := p.expectEnd(false)
	if err != nil {
		return err
	}
	openTrim := Trim{Left: openTok.LeftTrim, Right: end.RightTrim}
	if end.RightTrim {
		p.pendingRightTrim = true
	}

	// The body/else chain is a new trim-tracking scope; lastText is
	// restored to the parent's only once the close tag (which still
	// belongs, for trim purposes, to the innermost segment) is handled.
	savedLastText := p.lastText
	body, err := p.parseBodySegment(openTok.Span)
	if err != nil {
		return err
	}
	elseBranch, err := p.parseElseChain(openTok.Span)
	if err != nil {
		return err
	}

	closeTok := p.next()
	if closeTok.Kind == tokError {
		return &Error{Kind: LexError, Span: closeTok.Span, Message: closeTok.Value}
	}
	if closeTok.Kind != tokStartCloseBlock {
		return newErrorWithSecondary(UnclosedBlock, closeTok.Span, openTok.Span, "expected closing tag, got %s", closeTok.Kind)
	}
	if closeTok.LeftTrim {
		p.applyLeftTrim()
	}
	nameTok := p.next()
	if nameTok.Kind != tokIdent {
		return p.unexpected(nameTok, "identifier in closing tag")
	}
	if name, ok := simpleCalleeName(call.Callee); ok && name != nameTok.Value {
		return newErrorWithSecondary(MismatchedBlock, nameTok.Span, openTok.Span, "block %q closed as %q", name, nameTok.Value)
	}
	closeEnd, err := p.expectEnd(false)
	if err != nil {
		return err
	}
	closeTrim := Trim{Left: closeTok.LeftTrim, Right: closeEnd.RightTrim}

	p.lastText = savedLastText
	p.push(list, &BlockNode{
		sp:        joinSpan(openTok.Span, closeEnd.Span),
		Call:      call,
		Body:      body,
		Else:      elseBranch,
		OpenTrim:  openTrim,
		CloseTrim: closeTrim,
		CloseName: nameTok.Value,
		CloseSpan: closeTok.Span,
	})
	if closeEnd.RightTrim {
		p.pendingRightTrim = true
	}
	return nil
}

// parseElseChain parses zero or one "{{else}}" / "{{else if cond}}" at
// the current nesting level. "else if" recurses into a synthetic
// BlockNode so the renderer can treat it like any other nested
// conditional; that node has no close tag of its own, since it shares
// the real block's.
func (p *parser) parseElseChain(openSpan Span) (*BlockElse, error) {
	if !p.atElseBoundary() {
		return nil, nil
	}
	openTok := p.next() // "{{"
	if openTok.LeftTrim {
		p.applyLeftTrim()
	}
	p.next() // "else"

	if ifTok := p.peek(); ifTok.Kind == tokIdent && ifTok.Value == "if" {
		call, err := p.parseCall()
		if err != nil {
			return nil, err
		}
		end, err := p.expectEnd(false)
		if err != nil {
			return nil, err
		}
		trim := Trim{Left: openTok.LeftTrim, Right: end.RightTrim}
		if end.RightTrim {
			p.pendingRightTrim = true
		}
		body, err := p.parseBodySegment(openSpan)
		if err != nil {
			return nil, err
		}
		nested, err := p.parseElseChain(openSpan)
		if err != nil {
			return nil, err
		}
		chain := &BlockNode{
			sp:       joinSpan(openTok.Span, end.Span),
			Call:     call,
			Body:     body,
			Else:     nested,
			OpenTrim: trim,
		}
		return &BlockElse{Trim: trim, Chain: chain}, nil
	}

	end, err := p.expectEnd(false)
	if err != nil {
		return nil, err
	}
	trim := Trim{Left: openTok.LeftTrim, Right: end.RightTrim}
	if end.RightTrim {
		p.pendingRightTrim = true
	}
	body, err := p.parseBodySegment(openSpan)
	if err != nil {
		return nil, err
	}
	if p.atElseBoundary() {
		extra := p.peek()
		return nil, newError(UnexpectedToken, extra.Span, "a block may have only one else branch")
	}
	return &BlockElse{Trim: trim, Body: body}, nil
}

func (p *parser) finishPartial(list *[]Node, openTok Token) error {
	if openTok.LeftTrim {
		p.applyLeftTrim()
	}
	target, err := p.parsePartialTarget()
	if err != nil {
		return err
	}
	hash, err := p.parseHashOnly()
	if err != nil {
		return err
	}
	end, err := p.expectEnd(false)
	if err != nil {
		return err
	}
	trim := Trim{Left: openTok.LeftTrim, Right: end.RightTrim}

	if !openTok.Block {
		p.push(list, &PartialNode{sp: joinSpan(openTok.Span, end.Span), Target: target, Hash: hash, Trim: trim})
		if end.RightTrim {
			p.pendingRightTrim = true
		}
		return nil
	}
	if end.RightTrim {
		p.pendingRightTrim = true
	}

	savedLastText := p.lastText
	body, err := p.parseBodySegment(openTok.Span)
	if err != nil {
		return err
	}
	closeTok := p.next()
	if closeTok.Kind == tokError {
		return &Error{Kind: LexError, Span: closeTok.Span, Message: closeTok.Value}
	}
	if closeTok.Kind != tokStartCloseBlock {
		return newErrorWithSecondary(UnclosedBlock, closeTok.Span, openTok.Span, "expected closing tag for partial block")
	}
	if closeTok.LeftTrim {
		p.applyLeftTrim()
	}
	nameTok := p.next()
	if nameTok.Kind != tokIdent {
		return p.unexpected(nameTok, "identifier in closing tag")
	}
	if name, ok := partialTargetName(target); ok && name != nameTok.Value {
		return newErrorWithSecondary(MismatchedBlock, nameTok.Span, openTok.Span, "partial block %q closed as %q", name, nameTok.Value)
	}
	closeEnd, err := p.expectEnd(false)
	if err != nil {
		return err
	}
	closeTrim := Trim{Left: closeTok.LeftTrim, Right: closeEnd.RightTrim}

	p.lastText = savedLastText
	p.push(list, &PartialBlockNode{
		sp:        joinSpan(openTok.Span, closeEnd.Span),
		Target:    target,
		Hash:      hash,
		Body:      body,
		OpenTrim:  trim,
		CloseTrim: closeTrim,
		CloseName: nameTok.Value,
	})
	if closeEnd.RightTrim {
		p.pendingRightTrim = true
	}
	return nil
}

func (p *parser) parsePartialTarget() (PartialTarget, error) {
	if p.peek().Kind == tokParenOpen {
		call, err := p.parseSubExpr()
		if err != nil {
			return PartialTarget{}, err
		}
		return PartialTarget{Sub: call}, nil
	}
	path, err := p.parsePath()
	if err != nil {
		return PartialTarget{}, err
	}
	return PartialTarget{Path: path}, nil
}

// partialTargetName and simpleCalleeName compare a block/partial's
// close-tag identifier against the raw text of its open-tag target, so
// "foo/bar" style namespaced partial names compare literally rather
// than being reinterpreted as a data path.
func partialTargetName(t PartialTarget) (string, bool) {
	if t.Path == nil {
		return "", false
	}
	return t.Path.Span().Text(), true
}

func simpleCalleeName(t CallTarget) (string, bool) {
	if t.Path == nil {
		return "", false
	}
	return t.Path.Span().Text(), true
}

func (p *parser) parseHashOnly() ([]HashArg, error) {
	var hash []HashArg
	for {
		tok := p.peek()
		if tok.Kind == tokEnd {
			return hash, nil
		}
		if _, ok := p.peekHashKey(); !ok {
			return nil, p.unexpected(tok, "hash argument or }}")
		}
		key, val, err := p.parseHashPair()
		if err != nil {
			return nil, err
		}
		for _, h := range hash {
			if h.Key == key.Value {
				return nil, newError(UnexpectedToken, key.Span, "duplicate hash key %q", key.Value)
			}
		}
		hash = append(hash, HashArg{Key: key.Value, Value: val, Sp: joinSpan(key.Span, val.Span())})
	}
}

func (p *parser) peekHashKey() (Token, bool) {
	a, b := p.peek2()
	if a.Kind == tokIdent && b.Kind == tokEquals {
		return a, true
	}
	return Token{}, false
}

func (p *parser) parseHashPair() (Token, Expr, error) {
	key := p.next()
	eq := p.next()
	if eq.Kind != tokEquals {
		return key, nil, p.unexpected(eq, "=")
	}
	val, err := p.parseExpr()
	return key, val, err
}

// parseCall parses "callee positional... hash..." up to (without
// consuming) the token that ends it: tokEnd for a statement, block
// open tag or partial, tokParenClose for a sub-expression.
func (p *parser) parseCall() (*Call, error) {
	start := p.peek().Span
	target, err := p.parseCallTarget()
	if err != nil {
		return nil, err
	}
	call := &Call{Callee: target}
	sawHash := false
	for {
		tok := p.peek()
		if tok.Kind == tokEnd || tok.Kind == tokParenClose {
			break
		}
		if tok.Kind == tokError {
			return nil, &Error{Kind: LexError, Span: tok.Span, Message: tok.Value}
		}
		if key, ok := p.peekHashKey(); ok {
			_ = key
			k, v, err := p.parseHashPair()
			if err != nil {
				return nil, err
			}
			for _, h := range call.Hash {
				if h.Key == k.Value {
					return nil, newError(UnexpectedToken, k.Span, "duplicate hash key %q", k.Value)
				}
			}
			call.Hash = append(call.Hash, HashArg{Key: k.Value, Value: v, Sp: joinSpan(k.Span, v.Span())})
			sawHash = true
			continue
		}
		if sawHash {
			return nil, newError(UnexpectedToken, tok.Span, "positional argument after hash argument")
		}
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		call.Positional = append(call.Positional, expr)
	}
	call.sp = joinSpan(start, p.lastSpan)
	return call, nil
}

func (p *parser) parseCallTarget() (CallTarget, error) {
	if p.peek().Kind == tokParenOpen {
		call, err := p.parseSubExpr()
		if err != nil {
			return CallTarget{}, err
		}
		return CallTarget{Sub: call}, nil
	}
	path, err := p.parsePath()
	if err != nil {
		return CallTarget{}, err
	}
	return CallTarget{Path: path}, nil
}

func (p *parser) parseSubExpr() (*Call, error) {
	open := p.next() // "("
	call, err := p.parseCall()
	if err != nil {
		return nil, err
	}
	closeTok := p.next()
	if closeTok.Kind != tokParenClose {
		return nil, p.unexpected(closeTok, ")")
	}
	call.sp = joinSpan(open.Span, closeTok.Span)
	return call, nil
}

func (p *parser) parseExpr() (Expr, error) {
	tok := p.peek()
	switch tok.Kind {
	case tokParenOpen:
		call, err := p.parseSubExpr()
		if err != nil {
			return nil, err
		}
		return &SubExpr{sp: call.sp, Call: call}, nil
	case tokString:
		p.next()
		return &LiteralExpr{sp: tok.Span, V: String(tok.Value)}, nil
	case tokNumber:
		p.next()
		f, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return nil, newError(LexError, tok.Span, "invalid number %q", tok.Value)
		}
		return &LiteralExpr{sp: tok.Span, V: Number(f)}, nil
	case tokTrue:
		p.next()
		return &LiteralExpr{sp: tok.Span, V: Bool(true)}, nil
	case tokFalse:
		p.next()
		return &LiteralExpr{sp: tok.Span, V: Bool(false)}, nil
	case tokNull:
		p.next()
		return &LiteralExpr{sp: tok.Span, V: Null()}, nil
	case tokIdent, tokLocalIdent, tokPathSep, tokIndexSegment:
		path, err := p.parsePath()
		if err != nil {
			return nil, err
		}
		return &PathExpr{sp: path.sp, P: path}, nil
	case tokError:
		p.next()
		return nil, &Error{Kind: LexError, Span: tok.Span, Message: tok.Value}
	default:
		return nil, p.unexpected(tok, "an expression")
	}
}

// parsePath implements §3.3/§4.D's six path shapes: "@name" locals,
// "/abs", "../../rel" parent walks, "./rel" explicit-relative, bare
// "this", and ordinary relative paths.
func (p *parser) parsePath() (*Path, error) {
	start := p.peek().Span
	tok := p.peek()

	switch {
	case tok.Kind == tokLocalIdent:
		p.next()
		segs := []Segment{{Name: tok.Value}}
		more, err := p.parseTrailingSegments()
		if err != nil {
			return nil, err
		}
		return &Path{sp: joinSpan(start, p.lastSpan), Kind: PathLocal, Segments: append(segs, more...)}, nil

	case tok.Kind == tokPathSep && tok.Value == "/":
		p.next()
		segs, err := p.parseSegmentList()
		if err != nil {
			return nil, err
		}
		return &Path{sp: joinSpan(start, p.lastSpan), Kind: PathRoot, Segments: segs}, nil

	case tok.Kind == tokPathSep && tok.Value == ".":
		_, second := p.peek2()
		if second.Kind == tokPathSep && second.Value == "." {
			depth := 0
			for {
				d1, d2 := p.peek2()
				if !(d1.Kind == tokPathSep && d1.Value == "." && d2.Kind == tokPathSep && d2.Value == ".") {
					break
				}
				p.next()
				p.next()
				slash := p.next()
				if slash.Kind != tokPathSep || slash.Value != "/" {
					return nil, newError(InvalidPath, slash.Span, "expected / after .. in path")
				}
				depth++
			}
			segs, err := p.parseSegmentList()
			if err != nil {
				return nil, err
			}
			return &Path{sp: joinSpan(start, p.lastSpan), Kind: PathParent, ParentDepth: depth, Segments: segs}, nil
		}
		p.next() // "."
		slash := p.next()
		if slash.Kind != tokPathSep || slash.Value != "/" {
			return nil, newError(InvalidPath, slash.Span, "expected / after . in path")
		}
		segs, err := p.parseSegmentList()
		if err != nil {
			return nil, err
		}
		return &Path{sp: joinSpan(start, p.lastSpan), Kind: PathExplicit, Segments: segs}, nil

	case tok.Kind == tokIdent && tok.Value == "this":
		p.next()
		if n := p.peek(); n.Kind == tokPathSep || n.Kind == tokIndexSegment {
			segs, err := p.parseTrailingSegments()
			if err != nil {
				return nil, err
			}
			return &Path{sp: joinSpan(start, p.lastSpan), Kind: PathRelative, Segments: segs}, nil
		}
		return &Path{sp: tok.Span, Kind: PathCurrent}, nil

	case tok.Kind == tokIdent || tok.Kind == tokIndexSegment:
		segs, err := p.parseSegmentList()
		if err != nil {
			return nil, err
		}
		return &Path{sp: joinSpan(start, p.lastSpan), Kind: PathRelative, Segments: segs}, nil

	default:
		return nil, p.unexpected(tok, "a path")
	}
}

func (p *parser) parseSegmentList() ([]Segment, error) {
	first, err := p.parseSegment()
	if err != nil {
		return nil, err
	}
	more, err := p.parseTrailingSegments()
	if err != nil {
		return nil, err
	}
	return append([]Segment{first}, more...), nil
}

func (p *parser) parseTrailingSegments() ([]Segment, error) {
	var segs []Segment
	for {
		tok := p.peek()
		switch {
		case tok.Kind == tokPathSep:
			p.next()
			seg, err := p.parseSegment()
			if err != nil {
				return nil, err
			}
			segs = append(segs, seg)
		case tok.Kind == tokIndexSegment:
			p.next()
			segs = append(segs, indexSegment(tok.Value))
		default:
			return segs, nil
		}
	}
}

func (p *parser) parseSegment() (Segment, error) {
	tok := p.next()
	switch tok.Kind {
	case tokIdent:
		return Segment{Name: tok.Value}, nil
	case tokIndexSegment:
		return indexSegment(tok.Value), nil
	default:
		return Segment{}, p.unexpected(tok, "a path segment")
	}
}

// indexSegment interprets the text between [ and ]: a bare non-negative
// integer is an array position, "quoted" or bareword text is a literal
// object key.
func indexSegment(raw string) Segment {
	if i, err := strconv.Atoi(raw); err == nil && i >= 0 {
		return Segment{IsIndex: true, Index: i, Name: raw}
	}
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		raw = raw[1 : len(raw)-1]
	}
	return Segment{Name: raw}
}
