package schema

import (
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-itemform/pkg/model"
)

// DecodeOption configures DecodeCreateMeta.
type DecodeOption func(*decodeConfig)

type decodeConfig struct {
	format   Format
	sanitize bool
}

// WithFormat forces the payload encoding instead of detecting it.
func WithFormat(format Format) DecodeOption {
	return func(cfg *decodeConfig) {
		if format != "" {
			cfg.format = format
		}
	}
}

// WithLabelSanitizer strips markup from field names and option labels.
func WithLabelSanitizer() DecodeOption {
	return func(cfg *decodeConfig) {
		cfg.sanitize = true
	}
}

// wireField mirrors one create-metadata field entry.
type wireField struct {
	FieldID       string      `yaml:"fieldId"`
	Key           string      `yaml:"key"`
	Name          string      `yaml:"name"`
	Required      bool        `yaml:"required"`
	AllowedValues []wireValue `yaml:"allowedValues"`
}

type wireValue struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

func (v wireValue) label() string {
	switch {
	case v.Name != "":
		return v.Name
	case v.Value != "":
		return v.Value
	default:
		return v.Label
	}
}

// DecodeCreateMeta converts a create-metadata payload into a descriptor batch
// in document order. Accepted shapes are a bare array of fields, an object
// holding a "fields" or "values" array, and an object holding a "fields" map
// keyed by field id. The batch is not validated here; the synthesis engine
// rejects malformed or duplicate entries.
func DecodeCreateMeta(doc Document, options ...DecodeOption) ([]model.FieldDescriptor, error) {
	cfg := decodeConfig{format: FormatAuto}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	format := cfg.format
	if format == FormatAuto {
		format = doc.DetectFormat()
	}
	if format == FormatJSON && !json.Valid(doc.raw) {
		return nil, fmt.Errorf("schema: %s: invalid JSON payload", doc.Location())
	}

	var root yaml.Node
	if err := yaml.Unmarshal(doc.raw, &root); err != nil {
		return nil, fmt.Errorf("schema: parse %s: %w", doc.Location(), err)
	}

	entries, err := fieldNodes(&root)
	if err != nil {
		return nil, fmt.Errorf("schema: %s: %w", doc.Location(), err)
	}

	descriptors := make([]model.FieldDescriptor, 0, len(entries))
	for idx, entry := range entries {
		var wire wireField
		if err := entry.node.Decode(&wire); err != nil {
			return nil, fmt.Errorf("schema: %s: field %d: %w", doc.Location(), idx, err)
		}
		desc := wire.descriptor(entry.key)
		if cfg.sanitize {
			desc = sanitizeDescriptor(desc)
		}
		descriptors = append(descriptors, desc)
	}
	return descriptors, nil
}

func (w wireField) descriptor(mapKey string) model.FieldDescriptor {
	id := w.FieldID
	if id == "" {
		id = mapKey
	}
	if id == "" {
		id = w.Key
	}

	desc := model.FieldDescriptor{
		FieldID:  id,
		Name:     w.Name,
		Required: w.Required,
	}
	if len(w.AllowedValues) > 0 {
		desc.AllowedValues = make([]model.AllowedValue, 0, len(w.AllowedValues))
		for _, value := range w.AllowedValues {
			desc.AllowedValues = append(desc.AllowedValues, model.AllowedValue{
				ID:    value.ID,
				Label: value.label(),
			})
		}
	}
	return desc
}

type fieldNode struct {
	key  string
	node *yaml.Node
}

func fieldNodes(root *yaml.Node) ([]fieldNode, error) {
	node := root
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil, errors.New("document is empty")
		}
		node = node.Content[0]
	}

	switch node.Kind {
	case yaml.SequenceNode:
		return sequenceFields(node), nil
	case yaml.MappingNode:
		for _, key := range []string{"fields", "values"} {
			value := mappingValue(node, key)
			if value == nil {
				continue
			}
			switch value.Kind {
			case yaml.SequenceNode:
				return sequenceFields(value), nil
			case yaml.MappingNode:
				return keyedFields(value), nil
			default:
				return nil, fmt.Errorf("%q must be a list or a map", key)
			}
		}
		return nil, errors.New(`expected a "fields" or "values" entry`)
	default:
		return nil, errors.New("expected a list or an object at the top level")
	}
}

func sequenceFields(node *yaml.Node) []fieldNode {
	out := make([]fieldNode, 0, len(node.Content))
	for _, item := range node.Content {
		out = append(out, fieldNode{node: item})
	}
	return out
}

// keyedFields walks a mapping in document order; yaml.v3 keeps key order in
// Content as alternating key/value nodes.
func keyedFields(node *yaml.Node) []fieldNode {
	out := make([]fieldNode, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		out = append(out, fieldNode{key: node.Content[i].Value, node: node.Content[i+1]})
	}
	return out
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}
