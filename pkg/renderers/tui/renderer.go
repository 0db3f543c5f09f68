// Package tui binds widget batches to terminal prompts. Selection widgets
// become single-select prompts over the option labels and record the chosen
// option id; text widgets become free-text inputs. The collected values,
// keyed by widget id, are serialized as the render output.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/goliatone/go-itemform/pkg/model"
	"github.com/goliatone/go-itemform/pkg/render"
)

// Name is the registry identifier for this renderer.
const Name = "tui"

// NoFieldsMessage is shown when the batch holds no widgets.
const NoFieldsMessage = "No optional fields to fill in."

// Renderer implements render.Renderer for terminal-driven sessions.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	noneLabel         string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) *Renderer {
	r := &Renderer{
		driver:       NewSurveyDriver(),
		outputFormat: OutputFormatJSON,
		noneLabel:    DefaultNoneLabel,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return Name
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render prompts for every widget in order and serializes the answers.
// Fields left empty (or set to the none entry) are omitted from the output.
func (r *Renderer) Render(ctx context.Context, widgets []model.Widget, opts render.RenderOptions) ([]byte, error) {
	values, err := r.Collect(ctx, widgets, opts)
	if err != nil {
		return nil, err
	}
	return r.serialize(widgets, values)
}

// Collect runs the prompts and returns the raw answers keyed by widget id.
func (r *Renderer) Collect(ctx context.Context, widgets []model.Widget, opts render.RenderOptions) (map[string]string, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	values := make(map[string]string, len(widgets))
	if len(widgets) == 0 {
		if err := r.driver.Info(ctx, NoFieldsMessage); err != nil {
			return nil, err
		}
	}
	for idx, widget := range widgets {
		var (
			value string
			set   bool
			err   error
		)
		switch typed := widget.(type) {
		case model.SelectionWidget:
			value, set, err = r.promptSelection(ctx, typed, opts.Values[typed.ID])
		case model.TextWidget:
			value, set, err = r.promptText(ctx, typed, opts.Values[typed.ID])
		default:
			err = fmt.Errorf("tui: widget %d has unsupported type %T", idx, widget)
		}
		if err != nil {
			return nil, err
		}
		if set {
			values[widget.WidgetID()] = value
		}
	}

	if r.submitTransformer != nil {
		transformed, err := r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
		values = transformed
	}
	return values, nil
}

func (r *Renderer) promptSelection(ctx context.Context, widget model.SelectionWidget, prefill string) (string, bool, error) {
	labels := make([]string, 0, len(widget.Options)+1)
	labels = append(labels, r.noneLabel)
	defaultIdx := 0
	for i, option := range widget.Options {
		labels = append(labels, option.Label)
		if prefill != "" && defaultIdx == 0 && option.ID == prefill {
			defaultIdx = i + 1
		}
	}

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      widget.Label,
		Options:      labels,
		DefaultIndex: defaultIdx,
	})
	if err != nil {
		return "", false, err
	}
	if idx < 0 || idx >= len(labels) {
		return "", false, fmt.Errorf("%w: %q index %d", ErrInvalidSelection, widget.ID, idx)
	}
	if idx == 0 {
		return "", false, nil
	}
	return widget.Options[idx-1].ID, true, nil
}

func (r *Renderer) promptText(ctx context.Context, widget model.TextWidget, prefill string) (string, bool, error) {
	response, err := r.driver.Input(ctx, InputConfig{
		Message: widget.Label,
		Default: prefill,
	})
	if err != nil {
		return "", false, err
	}
	if strings.TrimSpace(response) == "" {
		return "", false, nil
	}
	return response, true, nil
}

func (r *Renderer) serialize(widgets []model.Widget, values map[string]string) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		form := url.Values{}
		for key, value := range values {
			form.Set(key, value)
		}
		return []byte(form.Encode()), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(widgets, values)), nil
	default:
		return json.Marshal(values)
	}
}

// prettyPrint lists answers in widget order, followed by any keys a submit
// transformer added.
func prettyPrint(widgets []model.Widget, values map[string]string) string {
	var b strings.Builder
	printed := make(map[string]struct{}, len(values))
	for _, widget := range widgets {
		value, ok := values[widget.WidgetID()]
		if !ok {
			continue
		}
		printed[widget.WidgetID()] = struct{}{}
		fmt.Fprintf(&b, "%s=%s\n", widget.WidgetID(), value)
	}

	var extra []string
	for key := range values {
		if _, ok := printed[key]; !ok {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	for _, key := range extra {
		fmt.Fprintf(&b, "%s=%s\n", key, values[key])
	}
	return b.String()
}
