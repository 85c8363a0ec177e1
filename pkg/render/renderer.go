package render

import (
	"context"

	"github.com/goliatone/go-formspec/pkg/model"
)

// Renderer converts a FormModel into a byte representation (HTML, JSON
// answers from a terminal session, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form model.FormModel, options RenderOptions) ([]byte, error)
}
