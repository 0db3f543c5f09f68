package synth

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedDescriptor marks a descriptor that is missing its id or
	// name, or whose enumeration holds an entry without an id or label.
	ErrMalformedDescriptor = errors.New("malformed field descriptor")
	// ErrDuplicateFieldID marks a batch in which two descriptors share an id.
	ErrDuplicateFieldID = errors.New("duplicate field id")
)

// ValidationError reports the first structural problem found in a batch.
// Kind is one of the sentinel errors above and is returned by Unwrap.
type ValidationError struct {
	Index   int
	FieldID string
	Kind    error
	Reason  string
}

func (e *ValidationError) Error() string {
	where := fmt.Sprintf("descriptor at position %d", e.Index)
	if e.FieldID != "" {
		where = fmt.Sprintf("field %q", e.FieldID)
	}
	if e.Reason == "" {
		return fmt.Sprintf("synth: %s: %v", where, e.Kind)
	}
	return fmt.Sprintf("synth: %s: %v: %s", where, e.Kind, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}
