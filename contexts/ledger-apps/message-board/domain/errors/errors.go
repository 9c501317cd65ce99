package errors

import "errors"

// Error is a message-board domain failure carrying the stable numeric code
// (400-499 range) reported to callers.
type Error struct {
	code int
	text string
}

func (e *Error) Error() string { return e.text }
func (e *Error) Code() int     { return e.code }

var (
	ErrUnauthorized    = &Error{code: 400, text: "caller is not authorized"}
	ErrMessageNotFound = &Error{code: 401, text: "message does not exist"}
	ErrInvalidMessage  = &Error{code: 402, text: "message content is empty or too long"}
	ErrNotMessageOwner = &Error{code: 403, text: "caller does not own this message"}
)

// Code extracts the numeric error code, or 0 for foreign errors.
func Code(err error) int {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Code()
	}
	return 0
}
