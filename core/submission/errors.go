package submission

import (
	"errors"
	"fmt"
)

// ErrNotFound means the referenced submission does not exist.
var ErrNotFound = errors.New("submission not found")

// ValidationError is a client error detected before any mutation. Its message
// is safe to surface to the caller.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// invalid builds a ValidationError.
func invalid(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
