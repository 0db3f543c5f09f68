package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-itemform/pkg/model"
	"github.com/goliatone/go-itemform/pkg/render"
	"github.com/goliatone/go-itemform/pkg/renderers/jsonspec"
	"github.com/goliatone/go-itemform/pkg/renderers/tui"
	"github.com/goliatone/go-itemform/pkg/schema"
	"github.com/goliatone/go-itemform/pkg/synth"
)

const defaultRendererName = jsonspec.Name

// InputKind names the document family a request carries.
type InputKind string

const (
	// InputCreateMeta is the tracking system's create-metadata payload.
	InputCreateMeta InputKind = "createmeta"
	// InputOpenAPI is an OpenAPI 3 document; Request.OperationID selects the
	// create operation.
	InputOpenAPI InputKind = "openapi"
)

// ParseInputKind maps a config value onto an InputKind. Empty input maps to
// InputCreateMeta.
func ParseInputKind(raw string) (InputKind, error) {
	switch InputKind(raw) {
	case "", InputCreateMeta:
		return InputCreateMeta, nil
	case InputOpenAPI:
		return InputOpenAPI, nil
	default:
		return "", fmt.Errorf("orchestrator: unknown input kind %q", raw)
	}
}

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom schema loader.
func WithLoader(loader *schema.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithTransformer registers a Transformer that can rewrite the descriptor
// batch after decoding but before synthesis.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithLabelSanitizer strips markup from decoded labels.
func WithLabelSanitizer(enabled bool) Option {
	return func(o *Orchestrator) {
		o.sanitizeLabels = enabled
	}
}

// Orchestrator coordinates the pipeline from schema document to rendered
// output. It applies sensible defaults (file loader, json and tui renderers)
// while remaining open to dependency injection.
type Orchestrator struct {
	loader          *schema.Loader
	registry        *render.Registry
	defaultRenderer string
	transformer     Transformer
	sanitizeLabels  bool
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs required to produce a widget batch.
type Request struct {
	// Source identifies where the schema document lives. Optional when
	// Document or Descriptors is supplied.
	Source schema.Source

	// Document allows callers to bypass the loader.
	Document *schema.Document

	// Descriptors bypasses loading and decoding entirely.
	Descriptors []model.FieldDescriptor

	// Input selects the decoder. Defaults to InputCreateMeta.
	Input InputKind

	// Encoding forces the create-metadata payload encoding. Defaults to
	// detection from the source name and content.
	Encoding schema.Format

	// OperationID selects the OpenAPI operation when Input is InputOpenAPI.
	OperationID string

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	// RenderOptions carries per-request prefill values.
	RenderOptions render.RenderOptions
}

// Descriptors resolves the request into a descriptor batch, applying the
// configured transformer.
func (o *Orchestrator) Descriptors(ctx context.Context, req Request) ([]model.FieldDescriptor, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	descriptors := req.Descriptors
	if descriptors == nil {
		doc, err := o.resolveDocument(ctx, req)
		if err != nil {
			return nil, err
		}
		descriptors, err = o.decode(ctx, doc, req)
		if err != nil {
			return nil, err
		}
	}

	if o.transformer != nil {
		transformed, err := o.transformer.Transform(ctx, descriptors)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: transform descriptors: %w", err)
		}
		descriptors = transformed
	}
	return descriptors, nil
}

// Plan resolves the request and classifies every descriptor.
func (o *Orchestrator) Plan(ctx context.Context, req Request) ([]synth.Entry, error) {
	descriptors, err := o.Descriptors(ctx, req)
	if err != nil {
		return nil, err
	}
	entries, err := synth.Plan(descriptors)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return entries, nil
}

// Widgets resolves the request and synthesizes the widget batch.
func (o *Orchestrator) Widgets(ctx context.Context, req Request) ([]model.Widget, error) {
	descriptors, err := o.Descriptors(ctx, req)
	if err != nil {
		return nil, err
	}
	widgets, err := synth.Synthesize(descriptors)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return widgets, nil
}

// Generate runs the full pipeline and returns the rendered bytes.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	widgets, err := o.Widgets(ctx, req)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, widgets, req.RenderOptions)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (schema.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return schema.Document{}, errors.New("orchestrator: source, document, or descriptors are required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return schema.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) decode(ctx context.Context, doc schema.Document, req Request) ([]model.FieldDescriptor, error) {
	input, err := ParseInputKind(string(req.Input))
	if err != nil {
		return nil, err
	}

	var descriptors []model.FieldDescriptor
	switch input {
	case InputOpenAPI:
		var opts []schema.OpenAPIOption
		if o.sanitizeLabels {
			opts = append(opts, schema.WithOpenAPILabelSanitizer())
		}
		descriptors, err = schema.DescriptorsFromOpenAPI(ctx, doc, req.OperationID, opts...)
	default:
		opts := []schema.DecodeOption{schema.WithFormat(req.Encoding)}
		if o.sanitizeLabels {
			opts = append(opts, schema.WithLabelSanitizer())
		}
		descriptors, err = schema.DecodeCreateMeta(doc, opts...)
	}
	if err != nil {
		return nil, fmt.Errorf("orchestrator: decode descriptors: %w", err)
	}
	return descriptors, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		switch {
		case err == nil:
			return renderer, nil
		case name != "" || !errors.Is(err, render.ErrRendererNotFound):
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", target, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.loader == nil {
		o.loader = schema.NewLoader()
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		o.registry.MustRegister(jsonspec.New(jsonspec.WithIndent("  ")))
		o.registry.MustRegister(tui.New())
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}
