package errors

import "errors"

// Error is an access-control domain failure carrying the stable numeric code
// (100-199 range) reported to callers.
type Error struct {
	code int
	text string
}

func (e *Error) Error() string { return e.text }
func (e *Error) Code() int     { return e.code }

var (
	ErrUnauthorized          = &Error{code: 100, text: "caller is not authorized"}
	ErrAlreadyAdmin          = &Error{code: 101, text: "principal is already an admin"}
	ErrNotAdmin              = &Error{code: 102, text: "principal is not an admin"}
	ErrCannotRemoveLastAdmin = &Error{code: 103, text: "an admin cannot remove its own admin role"}
	ErrInvalidPrincipal      = &Error{code: 104, text: "invalid principal"}
	ErrCannotRevokeAdmin     = &Error{code: 105, text: "admin roles are removed through admin removal"}
	ErrNoRoleFound           = &Error{code: 106, text: "principal holds no role"}
)

// Code extracts the numeric error code, or 0 for foreign errors.
func Code(err error) int {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Code()
	}
	return 0
}
