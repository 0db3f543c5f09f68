package render

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-itemform/pkg/model"
)

type namedRenderer string

func (n namedRenderer) Name() string        { return string(n) }
func (n namedRenderer) ContentType() string { return "text/plain" }
func (n namedRenderer) Render(context.Context, []model.Widget, RenderOptions) ([]byte, error) {
	return []byte(n), nil
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(namedRenderer("tui"))
	reg.MustRegister(namedRenderer("json"))

	if err := reg.Register(namedRenderer("json")); !errors.Is(err, ErrDuplicateRenderer) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
	if err := reg.Register(namedRenderer("")); err == nil {
		t.Fatalf("expected empty name error")
	}
	if err := reg.Register(nil); err == nil {
		t.Fatalf("expected nil renderer error")
	}

	if diff := cmp.Diff([]string{"json", "tui"}, reg.List()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if !reg.Has("tui") || reg.Has("vanilla") {
		t.Fatalf("unexpected Has results")
	}

	got, err := reg.Get("tui")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name() != "tui" {
		t.Fatalf("expected tui renderer, got %q", got.Name())
	}
	if _, err := reg.Get("vanilla"); !errors.Is(err, ErrRendererNotFound) || !strings.Contains(err.Error(), `"vanilla"`) {
		t.Fatalf("expected missing renderer error, got %v", err)
	}
}
