package model

import (
	"encoding/json"
	"fmt"
)

// WidgetKind names the widget variants.
type WidgetKind string

const (
	WidgetKindSelection WidgetKind = "selection"
	WidgetKindText      WidgetKind = "text"
)

// Widget is an abstract input control specification. The set of
// implementations is closed: only SelectionWidget and TextWidget satisfy it.
type Widget interface {
	WidgetID() string
	WidgetLabel() string
	Kind() WidgetKind
	isWidget()
}

// SelectionWidget asks the user to pick one of a fixed list of options.
type SelectionWidget struct {
	ID      string
	Label   string
	Options []AllowedValue
}

// TextWidget accepts free-form input.
type TextWidget struct {
	ID    string
	Label string
}

var (
	_ Widget = SelectionWidget{}
	_ Widget = TextWidget{}
)

func (w SelectionWidget) WidgetID() string    { return w.ID }
func (w SelectionWidget) WidgetLabel() string { return w.Label }
func (SelectionWidget) Kind() WidgetKind      { return WidgetKindSelection }
func (SelectionWidget) isWidget()             {}

func (w TextWidget) WidgetID() string    { return w.ID }
func (w TextWidget) WidgetLabel() string { return w.Label }
func (TextWidget) Kind() WidgetKind      { return WidgetKindText }
func (TextWidget) isWidget()             {}

// widgetJSON is the wire shape shared by both variants.
type widgetJSON struct {
	Kind    WidgetKind     `json:"kind"`
	ID      string         `json:"id"`
	Label   string         `json:"label"`
	Options []AllowedValue `json:"options,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (w SelectionWidget) MarshalJSON() ([]byte, error) {
	options := w.Options
	if options == nil {
		options = []AllowedValue{}
	}
	return json.Marshal(widgetJSON{
		Kind:    WidgetKindSelection,
		ID:      w.ID,
		Label:   w.Label,
		Options: options,
	})
}

// MarshalJSON implements json.Marshaler.
func (w TextWidget) MarshalJSON() ([]byte, error) {
	return json.Marshal(widgetJSON{
		Kind:  WidgetKindText,
		ID:    w.ID,
		Label: w.Label,
	})
}

// UnmarshalWidget decodes a single widget from its wire shape.
func UnmarshalWidget(data []byte) (Widget, error) {
	var raw widgetJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("model: decode widget: %w", err)
	}
	return raw.widget()
}

// UnmarshalWidgets decodes a JSON array of widgets, preserving order.
func UnmarshalWidgets(data []byte) ([]Widget, error) {
	var raw []widgetJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("model: decode widgets: %w", err)
	}
	out := make([]Widget, 0, len(raw))
	for idx, entry := range raw {
		widget, err := entry.widget()
		if err != nil {
			return nil, fmt.Errorf("model: widget %d: %w", idx, err)
		}
		out = append(out, widget)
	}
	return out, nil
}

func (raw widgetJSON) widget() (Widget, error) {
	switch raw.Kind {
	case WidgetKindSelection:
		return SelectionWidget{
			ID:      raw.ID,
			Label:   raw.Label,
			Options: CloneAllowedValues(raw.Options),
		}, nil
	case WidgetKindText:
		return TextWidget{ID: raw.ID, Label: raw.Label}, nil
	default:
		return nil, fmt.Errorf("model: unknown widget kind %q", raw.Kind)
	}
}
