package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-itemform/pkg/model"
)

// Transformer rewrites a descriptor batch before synthesis. Implementations
// can rename fields, relabel them, or drop entries.
type Transformer interface {
	Transform(ctx context.Context, descriptors []model.FieldDescriptor) ([]model.FieldDescriptor, error)
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, descriptors []model.FieldDescriptor) ([]model.FieldDescriptor, error)

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, descriptors []model.FieldDescriptor) ([]model.FieldDescriptor, error) {
	if fn == nil {
		return descriptors, nil
	}
	return fn(ctx, descriptors)
}

// PresetTransformer applies declarative per-field patches loaded from a JSON
// or YAML document:
//
//	fields:
//	  customfield_10020:
//	    rename: sprint
//	  environment:
//	    label: Target environment
//	    required: false
//	  customfield_10099:
//	    drop: true
//
// Renaming is how instance-specific custom field ids are mapped onto the ids
// the classification tables know. Patches for fields absent from a batch are
// ignored, since create metadata differs between item types.
type PresetTransformer struct {
	document presetDocument
}

type presetDocument struct {
	Fields map[string]fieldPatch `yaml:"fields"`
}

type fieldPatch struct {
	Label    string `yaml:"label"`
	Rename   string `yaml:"rename"`
	Required *bool  `yaml:"required"`
	Drop     bool   `yaml:"drop"`
}

// NewPresetTransformer constructs a transformer from raw JSON or YAML bytes.
func NewPresetTransformer(data []byte) (*PresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var document presetDocument
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("preset transformer: parse document: %w", err)
	}
	for id, patch := range document.Fields {
		if strings.TrimSpace(id) == "" {
			return nil, errors.New("preset transformer: empty field id")
		}
		if patch.Drop && (patch.Rename != "" || patch.Label != "" || patch.Required != nil) {
			return nil, fmt.Errorf("preset transformer: field %q combines drop with other patches", id)
		}
	}
	return &PresetTransformer{document: document}, nil
}

// NewPresetTransformerFromFS loads a preset document from the provided
// filesystem path.
func NewPresetTransformerFromFS(fsys fs.FS, path string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", path, err)
	}
	return NewPresetTransformer(data)
}

// Transform returns a patched copy of the batch, preserving order.
func (t *PresetTransformer) Transform(ctx context.Context, descriptors []model.FieldDescriptor) ([]model.FieldDescriptor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if descriptors == nil {
		return nil, nil
	}

	out := make([]model.FieldDescriptor, 0, len(descriptors))
	for _, desc := range descriptors {
		patch, ok := t.document.Fields[desc.FieldID]
		if !ok {
			out = append(out, desc)
			continue
		}
		if patch.Drop {
			continue
		}
		out = append(out, applyFieldPatch(desc, patch))
	}
	return out, nil
}

func applyFieldPatch(desc model.FieldDescriptor, patch fieldPatch) model.FieldDescriptor {
	if patch.Label != "" {
		desc.Name = patch.Label
	}
	if patch.Required != nil {
		desc.Required = *patch.Required
	}
	if rename := strings.TrimSpace(patch.Rename); rename != "" {
		desc.FieldID = rename
	}
	return desc
}
