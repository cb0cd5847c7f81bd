package bracket

// TokenKind identifies the lexical class of a Token.
type TokenKind int

const (
	tokText      TokenKind = iota // literal outer text run
	tokEscape                     // \{{  (decodes to literal "{{")
	tokComment                    // a whole {{! ... }} or {{!-- ... --}} tag
	tokRawOpen                     // {{{{name}}}}, Value = name
	tokRawClose                    // {{{{/name}}}}, Value = name
	tokStartStatement              // {{ or {{{ ; Unescaped, LeftTrim set
	tokStartBlock                  // {{# ; LeftTrim set
	tokStartCloseBlock             // {{/ ; LeftTrim set
	tokStartPartial                // {{> or {{#> ; Block, LeftTrim set
	tokEnd                         // }} or }}} ; Unescaped, RightTrim set
	tokIdent                       // bare word
	tokPathSep                     // "." or "/", Value holds which
	tokLocalIdent                  // @name, Value = name
	tokIndexSegment                // [ ... ], Value = inner text
	tokString                      // "..."  , Value = decoded content
	tokNumber                      // 1, 1.5, 2e10, Value = raw digits
	tokTrue
	tokFalse
	tokNull
	tokParenOpen
	tokParenClose
	tokEquals
	tokEOF
	tokError // Value carries the message; Span is the offending range
)

// Token is one lexical unit, always carrying its source span.
type Token struct {
	Kind      TokenKind
	Span      Span
	Value     string
	Unescaped bool // StartStatement/End: "{{{"/"}}}"  vs "{{"/"}}"
	Block     bool // StartPartial: "{{#>" vs "{{>"
	LeftTrim  bool // a '~' immediately follows this tag's opening punctuation
	RightTrim bool // a '~' immediately precedes this tag's closing punctuation
}

func (k TokenKind) String() string {
	switch k {
	case tokText:
		return "text"
	case tokEscape:
		return "escape"
	case tokComment:
		return "comment"
	case tokRawOpen:
		return "raw-block-open"
	case tokRawClose:
		return "raw-block-close"
	case tokStartStatement:
		return "{{"
	case tokStartBlock:
		return "{{#"
	case tokStartCloseBlock:
		return "{{/"
	case tokStartPartial:
		return "{{>"
	case tokEnd:
		return "}}"
	case tokIdent:
		return "identifier"
	case tokPathSep:
		return "path separator"
	case tokLocalIdent:
		return "@local"
	case tokIndexSegment:
		return "[index]"
	case tokString:
		return "string"
	case tokNumber:
		return "number"
	case tokTrue:
		return "true"
	case tokFalse:
		return "false"
	case tokNull:
		return "null"
	case tokParenOpen:
		return "("
	case tokParenClose:
		return ")"
	case tokEquals:
		return "="
	case tokEOF:
		return "EOF"
	case tokError:
		return "error"
	default:
		return "?"
	}
}
