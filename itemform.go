// Package itemform turns a work item tracker's field metadata into the
// widget specifications for the optional-field section of an item creation
// flow. The subpackages hold the engine (synth), the classification tables
// (fields), the input adapters (schema) and the renderers; this package
// re-exports the common entry points.
package itemform

import (
	"context"

	"github.com/goliatone/go-itemform/pkg/model"
	"github.com/goliatone/go-itemform/pkg/orchestrator"
	"github.com/goliatone/go-itemform/pkg/render"
	"github.com/goliatone/go-itemform/pkg/schema"
	"github.com/goliatone/go-itemform/pkg/synth"
)

// FieldDescriptor describes one field of the item type being created.
type FieldDescriptor = model.FieldDescriptor

// AllowedValue is one enumerated choice of a field.
type AllowedValue = model.AllowedValue

// Widget is either a SelectionWidget or a TextWidget.
type Widget = model.Widget

// SelectionWidget lets the user pick one of a fixed set of options.
type SelectionWidget = model.SelectionWidget

// TextWidget collects free-form text.
type TextWidget = model.TextWidget

// RenderOptions carries per-request prefill values.
type RenderOptions = render.RenderOptions

// Synthesize returns the widgets for the optional-field section of a
// descriptor batch.
func Synthesize(descriptors []FieldDescriptor) ([]Widget, error) {
	return synth.Synthesize(descriptors)
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// NewLoader constructs the schema document loader.
func NewLoader(options ...schema.LoaderOption) *schema.Loader {
	return schema.NewLoader(options...)
}

// GenerateFromFile decodes a create-metadata file and renders its widgets
// with the named renderer. An empty renderer name selects the JSON renderer.
func GenerateFromFile(ctx context.Context, path, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Source:   schema.SourceFromFile(path),
		Renderer: rendererName,
	})
}

// GenerateFromDocument renders widgets from a pre-loaded document, bypassing
// the loader stage.
func GenerateFromDocument(ctx context.Context, doc schema.Document, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Document: &doc,
		Renderer: rendererName,
	})
}
