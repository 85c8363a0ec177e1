package render_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-formspec/pkg/model"
	"github.com/goliatone/go-formspec/pkg/render"
)

type namedRenderer string

func (n namedRenderer) Name() string        { return string(n) }
func (n namedRenderer) ContentType() string { return "text/plain" }
func (n namedRenderer) Render(context.Context, model.FormModel, render.RenderOptions) ([]byte, error) {
	return []byte(n), nil
}

func TestRegistry(t *testing.T) {
	registry, err := render.NewRegistry(namedRenderer("vanilla"), namedRenderer("tui"))
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	if err := registry.Register(namedRenderer("vanilla")); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := registry.Register(namedRenderer(" ")); err == nil {
		t.Fatalf("expected empty name error")
	}
	if got := registry.List(); len(got) != 2 || got[0] != "tui" || got[1] != "vanilla" {
		t.Fatalf("unexpected names: %v", got)
	}
	if !registry.Has("tui") {
		t.Fatalf("expected tui renderer")
	}
	if _, err := registry.Get("preact"); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}
}
