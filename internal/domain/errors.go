package domain

import (
	"errors"
	"fmt"
)

// ErrMalformedRecord is returned when a source row is missing a required
// field or carries a value that cannot be parsed. It aborts the conversion.
var ErrMalformedRecord = errors.New("malformed record")

// RecordError locates a malformed source row.
// Index is the zero-based row position, which is also the number of rows
// successfully processed before the failure.
type RecordError struct {
	Index int
	Field string
	Value string
	Err   error
}

func (e *RecordError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("record %d: invalid %s %q: %v", e.Index, e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("record %d: invalid %s %q", e.Index, e.Field, e.Value)
}

// Unwrap exposes both ErrMalformedRecord and the underlying cause to errors.Is/As.
func (e *RecordError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformedRecord}
	}
	return []error{ErrMalformedRecord, e.Err}
}
