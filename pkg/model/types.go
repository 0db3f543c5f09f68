package model

// AllowedValue is one entry of a field's enumeration.
type AllowedValue struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
}

// FieldDescriptor describes a single field required or accepted when creating
// an item. An empty AllowedValues slice means the field takes free-form input.
type FieldDescriptor struct {
	FieldID       string         `json:"fieldId" yaml:"fieldId"`
	Name          string         `json:"name" yaml:"name"`
	Required      bool           `json:"required" yaml:"required"`
	AllowedValues []AllowedValue `json:"allowedValues,omitempty" yaml:"allowedValues,omitempty"`
}

// HasAllowedValues reports whether the descriptor carries a non-empty
// enumeration.
func (d FieldDescriptor) HasAllowedValues() bool {
	return len(d.AllowedValues) > 0
}

// CloneAllowedValues returns a copy of values preserving order. Nil and empty
// inputs both return nil.
func CloneAllowedValues(values []AllowedValue) []AllowedValue {
	if len(values) == 0 {
		return nil
	}
	return append([]AllowedValue(nil), values...)
}
