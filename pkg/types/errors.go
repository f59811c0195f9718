package types

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindFormat      ErrKind = iota // data token or header entry does not match the grammar
	ErrKindSelection                  // requested coordinates/order/buffer do not fit the table
	ErrKindNotFound                   // keyword missing or not unique
	ErrKindUnsupported                // valid feature we don't support (e.g. unknown codepage)
	ErrKindState                      // invalid operation for current state (e.g. closed file)
	ErrKindTruncated                  // data section ended before the declared cell count
)

// String returns a short lowercase name for the kind.
func (k ErrKind) String() string {
	switch k {
	case ErrKindFormat:
		return "format"
	case ErrKindSelection:
		return "selection"
	case ErrKindNotFound:
		return "not found"
	case ErrKindUnsupported:
		return "unsupported"
	case ErrKindState:
		return "state"
	case ErrKindTruncated:
		return "truncated"
	default:
		return "unknown"
	}
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error with the same kind and message, so
// a copy of a sentinel still matches it. Errors that only share a kind do not
// match; wrap the sentinel to make a contextual error match it.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind && e.Msg == t.Msg
}

// Errorf builds an *Error of the given kind.
func Errorf(kind ErrKind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap builds an *Error of the given kind around cause.
func Wrap(kind ErrKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: cause}
}

// Sentinels commonly returned by implementations. Match with errors.Is.
var (
	// ErrFormat indicates a data token violates the numeric/sentinel grammar.
	ErrFormat = &Error{Kind: ErrKindFormat, Msg: "malformed data value"}
	// ErrShortData indicates the data section ended before every requested cell was read.
	ErrShortData = &Error{Kind: ErrKindTruncated, Msg: "data section shorter than declared dimensions"}
	// ErrSelectionBounds indicates a requested coordinate is outside its dimension.
	ErrSelectionBounds = &Error{Kind: ErrKindSelection, Msg: "selection out of bounds"}
	// ErrKeywordNotFound indicates a keyword is missing or occurs more than once.
	ErrKeywordNotFound = &Error{Kind: ErrKindNotFound, Msg: "keyword not found"}
	// ErrUnsupported indicates a recognized but unsupported feature/variant.
	ErrUnsupported = &Error{Kind: ErrKindUnsupported, Msg: "unsupported px feature"}
	// ErrClosed indicates the file handle was already closed.
	ErrClosed = &Error{Kind: ErrKindState, Msg: "file is closed"}
)
