// Package apperr defines the error taxonomy shared by services and
// controllers. Services wrap one of the sentinel kinds; controllers map the
// kind to an HTTP status with resp.Error.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRequest    = errors.New("invalid request")
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrInvalidState      = errors.New("invalid state")
	ErrAlreadyRated      = errors.New("already rated")
	ErrNoRating          = errors.New("no rating present")
	ErrInternal          = errors.New("internal error")
)

// Wrap attaches a caller-facing message to a sentinel kind.
func Wrap(kind error, msg string) error {
	return fmt.Errorf("%w: %s", kind, msg)
}

func Wrapf(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}

// Internal wraps an infrastructure failure. The cause is kept for
// server-side logging; clients only ever see a generic message.
func Internal(cause error) error {
	if cause == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrInternal, cause)
}
