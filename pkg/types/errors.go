package types

import "fmt"

// ErrorCode classifies a routing-language error.
type ErrorCode string

// The complete error taxonomy. LexError and ParseError are compile-time
// errors detected once at startup; the rest occur per evaluation.
const (
	ErrLex               ErrorCode = "LexError"
	ErrParse             ErrorCode = "ParseError"
	ErrUndefinedVariable ErrorCode = "UndefinedVariable"
	ErrUndefinedFunction ErrorCode = "UndefinedFunction"
	ErrArityMismatch     ErrorCode = "ArityMismatch"
	ErrType              ErrorCode = "TypeError"
	ErrDivisionByZero    ErrorCode = "DivisionByZero"
	ErrRegexCompile      ErrorCode = "RegexCompileError"
)

// Error is a structured routing-language error. It carries enough context
// to report a precise diagnostic: the taxonomy code, a message, the byte
// offset in the source where known, and the offending token text.
type Error struct {
	Code     ErrorCode
	Message  string
	Position int
	Token    string
	Err      error
}

// NewError creates a new structured error.
// Pass position -1 when no source position applies.
func NewError(code ErrorCode, message string, position int) *Error {
	return &Error{
		Code:     code,
		Message:  message,
		Position: position,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Position >= 0 {
		return fmt.Sprintf("%s at position %d: %s", e.Code, e.Position, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithToken attaches the offending token text to the error.
func (e *Error) WithToken(token string) *Error {
	e.Token = token
	return e
}

// WithCause wraps another error.
func (e *Error) WithCause(err error) *Error {
	e.Err = err
	return e
}

// IsCode reports whether err is a *Error with the given code.
func IsCode(err error, code ErrorCode) bool {
	re, ok := err.(*Error)
	return ok && re.Code == code
}
