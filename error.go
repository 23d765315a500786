package landing

import (
	"bytes"
	"errors"
	"fmt"
)

// Error codes shared by every backend and transport.
const (
	ErrInvalid     = "invalid"
	ErrNotFound    = "not_found"
	ErrConflict    = "conflict"
	ErrUnavailable = "unavailable"
	ErrInternal    = "internal"
)

// Error is the application error. Code is machine readable, Message is safe
// to show to end users.
type Error struct {
	Code    string
	Message string
	Op      string
	Err     error
}

// Errorf returns a new *Error with the given code and formatted message.
func Errorf(code, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode returns the code of the first *Error in err's chain that carries
// one. Errors that are not application errors are internal.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if !errors.As(err, &e) {
		return ErrInternal
	} else if e.Code != "" {
		return e.Code
	} else if e.Err != nil {
		return ErrorCode(e.Err)
	}

	return ErrInternal
}

// ErrorMessage returns the human readable message of err.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if !errors.As(err, &e) {
		return "An internal error has occurred."
	} else if e.Message != "" {
		return e.Message
	} else if e.Err != nil {
		return ErrorMessage(e.Err)
	}

	return "An internal error has occurred."
}

func (e *Error) Error() string {
	var buf bytes.Buffer

	if e.Op != "" {
		fmt.Fprintf(&buf, "%s: ", e.Op)
	}

	if e.Err != nil {
		buf.WriteString(e.Err.Error())
	} else {
		if e.Code != "" {
			fmt.Fprintf(&buf, "<%s> ", e.Code)
		}
		buf.WriteString(e.Message)
	}

	return buf.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}
