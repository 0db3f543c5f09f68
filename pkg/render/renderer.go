// Package render defines the presentation contract for widget batches. A
// Renderer binds each widget to a concrete control (a terminal prompt, a JSON
// spec, ...) and returns the resulting bytes.
package render

import (
	"context"

	"github.com/goliatone/go-itemform/pkg/model"
)

// Renderer converts a widget batch into a byte representation.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, widgets []model.Widget, options RenderOptions) ([]byte, error)
}
