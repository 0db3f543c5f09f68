package synth

import (
	"github.com/goliatone/go-itemform/pkg/fields"
	"github.com/goliatone/go-itemform/pkg/model"
	"github.com/goliatone/go-itemform/pkg/widgets"
)

// Entry records how one descriptor was classified. Widget is nil unless the
// decision includes the field.
type Entry struct {
	Descriptor model.FieldDescriptor
	Decision   fields.Decision
	Widget     model.Widget
}

// Plan validates the batch and classifies every descriptor, in input order.
func Plan(descriptors []model.FieldDescriptor) ([]Entry, error) {
	if err := Validate(descriptors); err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(descriptors))
	for _, desc := range descriptors {
		entry := Entry{
			Descriptor: desc,
			Decision:   fields.Classify(fields.ID(desc.FieldID), desc.Required),
		}
		if entry.Decision.Included() {
			entry.Widget = widgets.Infer(desc)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Synthesize returns one widget per descriptor that belongs to the
// optional-field section, preserving input order. An empty batch yields an
// empty, non-nil slice.
func Synthesize(descriptors []model.FieldDescriptor) ([]model.Widget, error) {
	entries, err := Plan(descriptors)
	if err != nil {
		return nil, err
	}

	out := make([]model.Widget, 0, len(entries))
	for _, entry := range entries {
		if entry.Widget != nil {
			out = append(out, entry.Widget)
		}
	}
	return out, nil
}

// Excluded returns the descriptors a plan left out because they are required
// and not force-included. Callers rendering the mandatory section use this to
// spot required fields that nothing else handles.
func Excluded(entries []Entry) []model.FieldDescriptor {
	var out []model.FieldDescriptor
	for _, entry := range entries {
		if entry.Decision == fields.DecisionRequiredElsewhere {
			out = append(out, entry.Descriptor)
		}
	}
	return out
}
