package document

import "fmt"

// ErrorKind classifies a construction or access failure.
type ErrorKind uint8

const (
	// WrongType: an accessor was used on a value of another variant.
	WrongType ErrorKind = iota + 1
	// DuplicateOrMisplacedKey: Key outside a map, a second Key before a value,
	// or a key already present in the map.
	DuplicateOrMisplacedKey
	// MisplacedValue: a value or container start where a key is expected, or
	// after the document was built.
	MisplacedValue
	// MismatchedClose: EndList/EndMap does not match the innermost open container.
	MismatchedClose
	// DanglingKey: EndMap while a key still waits for its value.
	DanglingKey
	// IncompleteDocument: Build with open containers or without exactly one value.
	IncompleteDocument
)

func (k ErrorKind) String() string {
	switch k {
	case WrongType:
		return "wrong type"
	case DuplicateOrMisplacedKey:
		return "duplicate or misplaced key"
	case MisplacedValue:
		return "misplaced value"
	case MismatchedClose:
		return "mismatched close"
	case DanglingKey:
		return "dangling key"
	case IncompleteDocument:
		return "incomplete document"
	default:
		return "unknown error"
	}
}

// Error is returned by every failing Builder call and Value accessor.
type Error struct {
	Kind   ErrorKind
	Op     string
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("document: %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("document: %s: %s: %s", e.Op, e.Kind, e.Detail)
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrDanglingKey)
// works regardless of Op and Detail.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrWrongType               = &Error{Kind: WrongType}
	ErrDuplicateOrMisplacedKey = &Error{Kind: DuplicateOrMisplacedKey}
	ErrMisplacedValue          = &Error{Kind: MisplacedValue}
	ErrMismatchedClose         = &Error{Kind: MismatchedClose}
	ErrDanglingKey             = &Error{Kind: DanglingKey}
	ErrIncompleteDocument      = &Error{Kind: IncompleteDocument}
)

func newError(kind ErrorKind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Detail: fmt.Sprintf(format, args...)}
}

func wrongType(op string, want, got Kind) *Error {
	return newError(WrongType, op, "want %s, have %s", want, got)
}
