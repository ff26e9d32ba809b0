package vector

import (
	"errors"
	"fmt"
	"strings"
)

// Error code constants for vector validation failures.
const (
	ErrCodeMissingField  = "V001" // Required field absent or empty
	ErrCodeBadEncoding   = "V002" // Field is not a valid hex/binary encoding
	ErrCodeWidthExceeded = "V003" // Value does not fit the fixed 32-bit width
	ErrCodeBadWidth      = "V004" // Sized literal declares a width other than 32
)

// ValidationError describes one malformed field in one raw record.
//
// Index is the zero-based position of the record in the submitted
// sequence, Field is the wire name of the offending field.
type ValidationError struct {
	Code   string `json:"code"`
	Index  int    `json:"index"`
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: vector[%d].%s: %s", e.Code, e.Index, e.Field, e.Reason)
}

// ValidationErrors is the accumulated set of validation failures for one
// ingest call. Ingest detects every malformed record rather than stopping
// at the first, so callers can fix a whole batch in one pass. A non-empty
// ValidationErrors always means the run failed closed: no vectors were
// returned and no invariants were evaluated.
type ValidationErrors []*ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}
	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = ve.Error()
	}
	return fmt.Sprintf("%d validation errors: %s", len(e), strings.Join(msgs, "; "))
}

// AsValidationErrors extracts a ValidationErrors from err.
// Uses errors.As to handle wrapped errors.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
