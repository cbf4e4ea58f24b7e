package phone

import "errors"

// Kind classifies why a number was rejected
type Kind int

const (
	KindEmptyInput Kind = iota + 1
	KindInvalidCharacters
	KindTooShort
	KindTooLong
	KindInvalidPrefix
	KindFinalTooShort
	KindFinalTooLong
)

const messagePrefix = "Invalid phone number: "

var kindNames = map[Kind]string{
	KindEmptyInput:        "empty_input",
	KindInvalidCharacters: "invalid_characters",
	KindTooShort:          "too_short",
	KindTooLong:           "too_long",
	KindInvalidPrefix:     "invalid_prefix",
	KindFinalTooShort:     "final_too_short",
	KindFinalTooLong:      "final_too_long",
}

var kindMessages = map[Kind]string{
	KindEmptyInput:        "Please enter a phone number",
	KindInvalidCharacters: "Phone number must only contain digits",
	KindTooShort:          "Phone number is too short",
	KindTooLong:           "Phone number is too long",
	KindInvalidPrefix:     "Must be a UK phone number prefix +44",
	KindFinalTooShort:     "Phone number is too short for +447 format",
	KindFinalTooLong:      "Phone number is too long for +447 format",
}

// String returns the snake_case name used in API responses
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Message returns the human-readable rejection message for the kind
func (k Kind) Message() string {
	if msg, ok := kindMessages[k]; ok {
		return messagePrefix + msg
	}
	return messagePrefix + "unknown error"
}

// InvalidNumberError is returned by Format when a number is rejected.
// Two InvalidNumberErrors match under errors.Is when their kinds are equal.
type InvalidNumberError struct {
	Kind Kind
}

func (e *InvalidNumberError) Error() string {
	return e.Kind.Message()
}

// Is reports whether target is an InvalidNumberError of the same kind
func (e *InvalidNumberError) Is(target error) bool {
	t, ok := target.(*InvalidNumberError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinel errors, one per rejection kind
var (
	ErrEmptyInput        = &InvalidNumberError{Kind: KindEmptyInput}
	ErrInvalidCharacters = &InvalidNumberError{Kind: KindInvalidCharacters}
	ErrTooShort          = &InvalidNumberError{Kind: KindTooShort}
	ErrTooLong           = &InvalidNumberError{Kind: KindTooLong}
	ErrInvalidPrefix     = &InvalidNumberError{Kind: KindInvalidPrefix}
	ErrFinalTooShort     = &InvalidNumberError{Kind: KindFinalTooShort}
	ErrFinalTooLong      = &InvalidNumberError{Kind: KindFinalTooLong}
)

// KindOf extracts the rejection kind from an error chain
func KindOf(err error) (Kind, bool) {
	var invalid *InvalidNumberError
	if errors.As(err, &invalid) {
		return invalid.Kind, true
	}
	return 0, false
}

func reject(kind Kind) error {
	return &InvalidNumberError{Kind: kind}
}
