package schema

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-itemform/pkg/model"
)

const (
	enumLabelsExtension = "x-enum-labels"
	fieldOrderExtension = "x-field-order"
	jsonMediaType       = "application/json"
)

// OpenAPIOption configures DescriptorsFromOpenAPI.
type OpenAPIOption func(*openAPIConfig)

type openAPIConfig struct {
	labeler  func(string) string
	sanitize bool
}

// WithLabeler overrides how labels are derived for properties without a title.
func WithLabeler(fn func(string) string) OpenAPIOption {
	return func(cfg *openAPIConfig) {
		if fn != nil {
			cfg.labeler = fn
		}
	}
}

// WithOpenAPILabelSanitizer strips markup from titles and enum labels.
func WithOpenAPILabelSanitizer() OpenAPIOption {
	return func(cfg *openAPIConfig) {
		cfg.sanitize = true
	}
}

// DescriptorsFromOpenAPI maps the JSON request body of operationID to a
// descriptor batch. Each top-level property becomes one descriptor: the
// property name is the field id, the title (or a humanised name) the label,
// the schema's required list sets Required, and enum values become allowed
// values labelled by x-enum-labels when present. Properties follow
// x-field-order when the body schema declares it, sorted names otherwise.
func DescriptorsFromOpenAPI(ctx context.Context, doc Document, operationID string, options ...OpenAPIOption) ([]model.FieldDescriptor, error) {
	cfg := openAPIConfig{labeler: DefaultLabeler}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	operationID = strings.TrimSpace(operationID)
	if operationID == "" {
		return nil, fmt.Errorf("schema: openapi: operation id is required")
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	loader.IsExternalRefsAllowed = false

	spec, err := loader.LoadFromData(doc.raw)
	if err != nil {
		return nil, fmt.Errorf("schema: openapi: load %s: %w", doc.Location(), err)
	}

	op := findOperation(spec, operationID)
	if op == nil {
		return nil, fmt.Errorf("%w: %q in %s", ErrOperationNotFound, operationID, doc.Location())
	}

	body, err := requestBodySchema(op)
	if err != nil {
		return nil, fmt.Errorf("schema: openapi: operation %q: %w", operationID, err)
	}

	required := make(map[string]struct{}, len(body.Required))
	for _, name := range body.Required {
		required[name] = struct{}{}
	}

	names := propertyOrder(body)
	descriptors := make([]model.FieldDescriptor, 0, len(names))
	for _, name := range names {
		ref := body.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		prop := ref.Value

		label := prop.Title
		if label == "" {
			label = cfg.labeler(name)
		}
		_, isRequired := required[name]

		desc := model.FieldDescriptor{
			FieldID:       name,
			Name:          label,
			Required:      isRequired,
			AllowedValues: enumValues(prop),
		}
		if cfg.sanitize {
			desc = sanitizeDescriptor(desc)
		}
		descriptors = append(descriptors, desc)
	}
	return descriptors, nil
}

func findOperation(spec *openapi3.T, operationID string) *openapi3.Operation {
	if spec == nil || spec.Paths == nil {
		return nil
	}
	paths := spec.Paths.Map()
	keys := make([]string, 0, len(paths))
	for path := range paths {
		keys = append(keys, path)
	}
	sort.Strings(keys)

	for _, path := range keys {
		item := paths[path]
		if item == nil {
			continue
		}
		for _, op := range item.Operations() {
			if op != nil && op.OperationID == operationID {
				return op
			}
		}
	}
	return nil
}

func requestBodySchema(op *openapi3.Operation) (*openapi3.Schema, error) {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil, fmt.Errorf("no request body")
	}
	media, ok := op.RequestBody.Value.Content[jsonMediaType]
	if !ok || media == nil {
		return nil, fmt.Errorf("no %s request body", jsonMediaType)
	}
	if media.Schema == nil || media.Schema.Value == nil {
		return nil, fmt.Errorf("request body has no schema")
	}
	body := media.Schema.Value
	if body.Type != nil && len(body.Type.Slice()) > 0 && !slices.Contains(body.Type.Slice(), "object") {
		return nil, fmt.Errorf("request body must be an object schema")
	}
	return body, nil
}

func propertyOrder(body *openapi3.Schema) []string {
	seen := make(map[string]struct{}, len(body.Properties))
	var names []string

	if raw, ok := body.Extensions[fieldOrderExtension].([]any); ok {
		for _, entry := range raw {
			name, ok := entry.(string)
			if !ok {
				continue
			}
			if _, exists := body.Properties[name]; !exists {
				continue
			}
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}

	var rest []string
	for name := range body.Properties {
		if _, ok := seen[name]; !ok {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}

func enumValues(prop *openapi3.Schema) []model.AllowedValue {
	values := prop.Enum
	labels, _ := prop.Extensions[enumLabelsExtension].([]any)
	if len(values) == 0 && prop.Items != nil && prop.Items.Value != nil {
		values = prop.Items.Value.Enum
		if len(labels) == 0 {
			labels, _ = prop.Items.Value.Extensions[enumLabelsExtension].([]any)
		}
	}
	if len(values) == 0 {
		return nil
	}

	out := make([]model.AllowedValue, 0, len(values))
	for idx, value := range values {
		id := formatEnumValue(value)
		label := id
		if idx < len(labels) {
			if text, ok := labels[idx].(string); ok && text != "" {
				label = text
			}
		}
		out = append(out, model.AllowedValue{ID: id, Label: label})
	}
	return out
}

func formatEnumValue(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case float64:
		if typed == float64(int64(typed)) {
			return fmt.Sprintf("%d", int64(typed))
		}
		return fmt.Sprint(typed)
	default:
		return fmt.Sprint(typed)
	}
}
