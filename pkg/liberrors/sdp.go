package liberrors

import (
	"fmt"
)

// ErrMalformedField is returned when a structural field (v=, o=, t=, c=, b=, m=)
// contains an invalid numeric value or lacks mandatory tokens.
type ErrMalformedField struct {
	Field byte
	Line  string
	Err   error
}

// Error implements the error interface.
func (e ErrMalformedField) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("malformed field '%c' (%s)", e.Field, e.Line)
	}
	return fmt.Sprintf("malformed field '%c' (%s): %v", e.Field, e.Line, e.Err)
}

// Unwrap returns the underlying cause.
func (e ErrMalformedField) Unwrap() error {
	return e.Err
}

// ErrMissingOrigin is returned when a session description has no valid o= line.
type ErrMissingOrigin struct{}

// Error implements the error interface.
func (e ErrMissingOrigin) Error() string {
	return "origin (o=) is missing"
}
