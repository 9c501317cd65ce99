package errors

import "errors"

// Error is a counter domain failure carrying the stable numeric code
// (300-399 range) reported to callers.
type Error struct {
	code int
	text string
}

func (e *Error) Error() string { return e.text }
func (e *Error) Code() int     { return e.code }

var (
	ErrUnauthorized     = &Error{code: 300, text: "caller is not authorized"}
	ErrCounterUnderflow = &Error{code: 301, text: "counter cannot go below zero"}
)

// Code extracts the numeric error code, or 0 for foreign errors.
func Code(err error) int {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Code()
	}
	return 0
}
