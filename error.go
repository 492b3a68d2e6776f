package menuscan

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// EEXTRACTION marks a source that could not be turned into a line corpus
// at all (corrupt bytes, unreadable scan, capability failure). EUNAVAILABLE
// marks a retryable condition on an external capability (rate limiting);
// retrying is the caller's decision, never automatic inside the pipeline.
const (
	EINVALID     = "invalid"
	ENOTFOUND    = "not_found"
	EEXTRACTION  = "extraction"
	EUNAVAILABLE = "unavailable"
	EINTERNAL    = "internal"
)

// Error represents an application error with a machine-readable code
// and a human-readable message.
type Error struct {
	// Code is one of the E* constants above.
	Code string

	// Message is a human-readable description of the error.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("menuscan error: code=%s message=%s", e.Code, e.Message)
}

// Errorf returns an Error with the given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode extracts the code from an error, or returns EINTERNAL for
// non-application errors. Returns an empty string for nil.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage extracts the message from an error. Non-application errors
// report a generic message so internal details don't leak to users.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}
