package bracket

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// ErrorKind classifies an Error.
type ErrorKind int

const (
	LexError        ErrorKind = iota // malformed character, string, number, unterminated block
	UnexpectedToken                  // parser saw a token it can't use here
	UnclosedBlock                    // a {{#name}} / {{{{name}}}} never found its close
	MismatchedBlock                  // close tag names a different identifier than its open
	InvalidPath                      // malformed ./ or ../ prefix, or a ../ walk above the root; @-local shapes are not checked
	UnknownHelper                    // a call passes arguments to a name with no registered helper, or a block callee is not a path
	UnknownPartial                   // partial target names no registered partial
	HelperError                      // a helper returned an error
	EscapeError                      // the registered escape function failed
	IOError                          // loader/filesystem failure
	Cancelled                        // render was cancelled cooperatively
)

func (k ErrorKind) String() string {
	switch k {
	case LexError:
		return "lex error"
	case UnexpectedToken:
		return "unexpected token"
	case UnclosedBlock:
		return "unclosed block"
	case MismatchedBlock:
		return "mismatched block"
	case InvalidPath:
		return "invalid path"
	case UnknownHelper:
		return "unknown helper"
	case UnknownPartial:
		return "unknown partial"
	case HelperError:
		return "helper error"
	case EscapeError:
		return "escape error"
	case IOError:
		return "io error"
	case Cancelled:
		return "cancelled"
	default:
		return "error"
	}
}

// Error is a structured diagnostic: a kind, a primary span, an optional
// secondary span (the opening tag of a mismatched block, for example),
// and a short message.
type Error struct {
	Kind      ErrorKind
	Span      Span
	Secondary *Span
	Message   string
}

func (e *Error) Error() string {
	if e.Span.IsZero() {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	msg := fmt.Sprintf("%s: %s\n%s", e.Kind, e.Message, snippet(e.Span))
	if e.Secondary != nil && !e.Secondary.IsZero() {
		msg += fmt.Sprintf("\nopened here:\n%s", snippet(*e.Secondary))
	}
	return msg
}

func newError(kind ErrorKind, sp Span, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Span: sp, Message: fmt.Sprintf(format, args...)}
}

func newErrorWithSecondary(kind ErrorKind, sp, secondary Span, format string, args ...interface{}) *Error {
	s := secondary
	return &Error{Kind: kind, Span: sp, Secondary: &s, Message: fmt.Sprintf(format, args...)}
}

// NewLoadError wraps a filesystem or lookup failure encountered while
// resolving name into an IOError, for loaders outside this package.
func NewLoadError(name string, cause error) error {
	return newError(IOError, Span{}, "loading %q: %v", name, cause)
}

// wrapBoundary chains err with a context span as it crosses a partial or
// helper call boundary on its way back up the render stack. The
// resulting *multierror.Error lists causes innermost-first: the
// original failure was appended first, each enclosing boundary appended
// after it.
func wrapBoundary(err error, kind ErrorKind, sp Span, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	boundary := newError(kind, sp, format, args...)
	if me, ok := err.(*multierror.Error); ok {
		me.Errors = append(me.Errors, boundary)
		return me
	}
	return multierror.Append(&multierror.Error{Errors: []error{err}}, boundary)
}
