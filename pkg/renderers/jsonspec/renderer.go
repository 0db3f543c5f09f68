// Package jsonspec renders a widget batch as a JSON array of widget
// specifications for presentation layers living in another process.
package jsonspec

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/goliatone/go-itemform/pkg/model"
	"github.com/goliatone/go-itemform/pkg/render"
)

// Name is the registry identifier for this renderer.
const Name = "json"

// Option configures the renderer.
type Option func(*Renderer)

// WithIndent pretty-prints the output using the supplied indent.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

// Renderer implements render.Renderer.
type Renderer struct {
	indent string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a JSON renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "application/json"
}

// Render encodes the batch in order. Prefilled values are attached as a
// "value" member of the matching widget.
func (r *Renderer) Render(ctx context.Context, widgets []model.Widget, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("jsonspec: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries := make([]json.RawMessage, 0, len(widgets))
	for idx, widget := range widgets {
		if widget == nil {
			return nil, fmt.Errorf("jsonspec: widget %d is nil", idx)
		}
		data, err := json.Marshal(widget)
		if err != nil {
			return nil, fmt.Errorf("jsonspec: encode widget %q: %w", widget.WidgetID(), err)
		}
		if value, ok := opts.Values[widget.WidgetID()]; ok {
			data, err = withValue(data, value)
			if err != nil {
				return nil, fmt.Errorf("jsonspec: encode widget %q: %w", widget.WidgetID(), err)
			}
		}
		entries = append(entries, data)
	}

	out, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("jsonspec: encode batch: %w", err)
	}
	if r.indent == "" {
		return out, nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, out, "", r.indent); err != nil {
		return nil, fmt.Errorf("jsonspec: indent: %w", err)
	}
	return buf.Bytes(), nil
}

func withValue(data []byte, value string) ([]byte, error) {
	encoded, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	trimmed := bytes.TrimSuffix(bytes.TrimSpace(data), []byte("}"))
	out := append([]byte(nil), trimmed...)
	out = append(out, []byte(`,"value":`)...)
	out = append(out, encoded...)
	out = append(out, '}')
	return out, nil
}
