package web

import "github.com/pkg/errors"

// Error is the error handlers and repositories return when the failure is
// tied to a specific request: it carries the status code to respond with
// and, for validation failures, the offending fields.
type Error struct {
	Err    error
	Status int
	Fields map[string]string
}

func (e *Error) Error() string {
	return e.Err.Error()
}

// NewRequestError wraps err so the responder knows which status to use.
func NewRequestError(err error, status int) error {
	return &Error{Err: err, Status: status}
}

// IsRequestError reports whether err carries a request status.
func IsRequestError(err error) (*Error, bool) {
	var webErr *Error
	if errors.As(err, &webErr) {
		return webErr, true
	}
	return nil, false
}
