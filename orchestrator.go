package formspec

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formspec/pkg/definition"
	"github.com/goliatone/go-formspec/pkg/fieldspec"
	"github.com/goliatone/go-formspec/pkg/orchestrator"
	"github.com/goliatone/go-formspec/pkg/render"
)

// RenderOptions describes per-request values, errors and hidden inputs.
type RenderOptions = render.RenderOptions

// FieldMetadata is the interpreted form of a field specification.
type FieldMetadata = fieldspec.FieldMetadata

// Diagnostic is a non-fatal problem found while interpreting a specification.
type Diagnostic = fieldspec.Diagnostic

// Parse interprets a single field specification.
func Parse(spec string) (FieldMetadata, []Diagnostic) {
	return fieldspec.Parse(spec)
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML renders the form registered under formID with the named
// renderer, the vanilla HTML renderer when empty.
func GenerateHTML(ctx context.Context, source orchestrator.DefinitionSource, formID, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	options = append([]orchestrator.Option{orchestrator.WithDefinitions(source)}, options...)
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		FormID:   formID,
		Renderer: rendererName,
	})
}

// GenerateHTMLFromDefinition renders an inline definition.
func GenerateHTMLFromDefinition(ctx context.Context, form definition.Form, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Definition: &form,
		Renderer:   rendererName,
	})
}

// WithThemeSelector forwards a go-theme selector to the orchestrator.
func WithThemeSelector(selector theme.ThemeSelector, defaultTheme, defaultVariant string) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector, defaultTheme, defaultVariant)
}

// WithThemeFallbacks forwards fallback partials used when deriving renderer
// configuration from a theme selection.
func WithThemeFallbacks(fallbacks map[string]string) orchestrator.Option {
	return orchestrator.WithThemeFallbacks(fallbacks)
}
