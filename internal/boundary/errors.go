package boundary

import (
	"errors"
	"fmt"
)

// BoundaryError means the external request could not be deserialized
// into the expected shape at all. It is surfaced as a structured failure
// value, never an uncaught abort - the caller corrects the input and
// retries; nothing is retried automatically.
type BoundaryError struct {
	Reason string `json:"reason"`
	Err    error  `json:"-"`
}

// Error implements the error interface.
func (e *BoundaryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("boundary: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("boundary: %s", e.Reason)
}

// Unwrap returns the underlying decode error.
func (e *BoundaryError) Unwrap() error {
	return e.Err
}

// IsBoundaryError reports whether err is a request-shape failure.
// Uses errors.As to handle wrapped errors.
func IsBoundaryError(err error) bool {
	var be *BoundaryError
	return errors.As(err, &be)
}
