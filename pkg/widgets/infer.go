// Package widgets decides which kind of input control a field needs.
package widgets

import "github.com/goliatone/go-itemform/pkg/model"

// Resolve returns the widget kind for a descriptor. A non-empty enumeration
// is the only signal: it yields a selection control, anything else a
// free-text control.
func Resolve(d model.FieldDescriptor) model.WidgetKind {
	if d.HasAllowedValues() {
		return model.WidgetKindSelection
	}
	return model.WidgetKindText
}

// Infer builds the widget for a descriptor. Selection options keep the
// enumeration's order and duplicates and are copied so the widget does not
// share storage with the descriptor.
func Infer(d model.FieldDescriptor) model.Widget {
	switch Resolve(d) {
	case model.WidgetKindSelection:
		return model.SelectionWidget{
			ID:      d.FieldID,
			Label:   d.Name,
			Options: model.CloneAllowedValues(d.AllowedValues),
		}
	default:
		return model.TextWidget{
			ID:    d.FieldID,
			Label: d.Name,
		}
	}
}
