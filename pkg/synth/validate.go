package synth

import (
	"fmt"

	"github.com/goliatone/go-itemform/pkg/model"
)

// Validate checks a descriptor batch for structural problems and returns the
// first one found in input order, or nil.
func Validate(descriptors []model.FieldDescriptor) error {
	seen := make(map[string]int, len(descriptors))
	for idx, desc := range descriptors {
		if err := validateDescriptor(idx, desc); err != nil {
			return err
		}
		if first, dup := seen[desc.FieldID]; dup {
			return &ValidationError{
				Index:   idx,
				FieldID: desc.FieldID,
				Kind:    ErrDuplicateFieldID,
				Reason:  fmt.Sprintf("also declared at position %d", first),
			}
		}
		seen[desc.FieldID] = idx
	}
	return nil
}

func validateDescriptor(idx int, desc model.FieldDescriptor) error {
	if desc.FieldID == "" {
		return &ValidationError{Index: idx, Kind: ErrMalformedDescriptor, Reason: "missing field id"}
	}
	if desc.Name == "" {
		return &ValidationError{Index: idx, FieldID: desc.FieldID, Kind: ErrMalformedDescriptor, Reason: "missing display name"}
	}
	for pos, value := range desc.AllowedValues {
		switch {
		case value.ID == "":
			return &ValidationError{
				Index:   idx,
				FieldID: desc.FieldID,
				Kind:    ErrMalformedDescriptor,
				Reason:  fmt.Sprintf("allowed value %d missing id", pos),
			}
		case value.Label == "":
			return &ValidationError{
				Index:   idx,
				FieldID: desc.FieldID,
				Kind:    ErrMalformedDescriptor,
				Reason:  fmt.Sprintf("allowed value %q missing label", value.ID),
			}
		}
	}
	return nil
}
