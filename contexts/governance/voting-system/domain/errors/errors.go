package errors

import "errors"

// Error is a voting-system domain failure carrying the stable numeric code
// (200-299 range) reported to callers.
type Error struct {
	code int
	text string
}

func (e *Error) Error() string { return e.text }
func (e *Error) Code() int     { return e.code }

var (
	ErrUnauthorized        = &Error{code: 200, text: "caller is not authorized"}
	ErrProposalNotFound    = &Error{code: 201, text: "proposal does not exist"}
	ErrProposalNotActive   = &Error{code: 202, text: "proposal is not open for this transition"}
	ErrAlreadyVoted        = &Error{code: 203, text: "caller already voted on this proposal"}
	ErrInvalidVote         = &Error{code: 204, text: "invalid vote payload"}
	ErrProposalStillActive = &Error{code: 205, text: "voting window has not elapsed"}
	ErrInvalidDuration     = &Error{code: 206, text: "duration outside configured bounds"}
)

// Code extracts the numeric error code, or 0 for foreign errors.
func Code(err error) int {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Code()
	}
	return 0
}
