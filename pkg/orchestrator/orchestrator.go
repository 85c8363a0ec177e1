package orchestrator

import (
	"context"
	"errors"
	"fmt"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formspec/pkg/definition"
	"github.com/goliatone/go-formspec/pkg/model"
	"github.com/goliatone/go-formspec/pkg/render"
	"github.com/goliatone/go-formspec/pkg/renderers/vanilla"
)

const (
	defaultRendererName = "vanilla"
	adHocFormID         = "fieldspec"
)

// DefinitionSource resolves form definitions by id. Both the file-backed
// definition.Store and the SQL store satisfy it.
type DefinitionSource interface {
	Definition(ctx context.Context, id string) (definition.Form, error)
}

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithDefinitions sets where form ids are resolved.
func WithDefinitions(source DefinitionSource) Option {
	return func(o *Orchestrator) {
		o.definitions = source
	}
}

// WithModelBuilder injects a custom form model builder.
func WithModelBuilder(builder model.Builder) Option {
	return func(o *Orchestrator) {
		o.builder = builder
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

// WithSchemaTransformer registers a Transformer that runs after the model is
// built and before decorators.
func WithSchemaTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithDecorators registers decorators applied to every form model before
// rendering.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithThemeSelector resolves themes per request. defaultTheme and
// defaultVariant are used when a request names none.
func WithThemeSelector(selector theme.ThemeSelector, defaultTheme, defaultVariant string) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
		o.defaultTheme = defaultTheme
		o.defaultVariant = defaultVariant
	}
}

// WithThemeFallbacks replaces the partials used when a theme does not
// override a template.
func WithThemeFallbacks(fallbacks map[string]string) Option {
	return func(o *Orchestrator) {
		o.themeFallbacks = cloneStrings(fallbacks)
	}
}

// Orchestrator coordinates the pipeline from form definition to rendered
// output, defaulting to the vanilla renderer.
type Orchestrator struct {
	definitions     DefinitionSource
	builder         model.Builder
	registry        *render.Registry
	defaultRenderer string
	transformer     Transformer
	decorators      []model.Decorator
	themeSelector   theme.ThemeSelector
	defaultTheme    string
	defaultVariant  string
	themeFallbacks  map[string]string
	initialiseErr   error
}

// New constructs an Orchestrator. Missing dependencies are initialised with
// the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt != nil {
			opt(o)
		}
	}
	o.applyDefaults()
	return o
}

// Request describes a single render.
type Request struct {
	// FormID is resolved through the configured DefinitionSource. Ignored
	// when Definition is set.
	FormID string

	// Definition renders an inline definition, bypassing the source.
	Definition *definition.Form

	// Specs renders an ad-hoc form of the given fields when neither FormID
	// nor Definition is set.
	Specs []definition.Field

	// Renderer names the renderer to use. Empty selects the default.
	Renderer string

	// RenderOptions carries values, errors and hidden fields.
	RenderOptions render.RenderOptions

	// ThemeName and ThemeVariant override the selector defaults.
	ThemeName    string
	ThemeVariant string
}

// Generate builds the model for req and renders it.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	form, err := o.Model(ctx, req)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	options := req.RenderOptions
	if options.Theme == nil {
		cfg, err := o.resolveTheme(req)
		if err != nil {
			return nil, err
		}
		options.Theme = cfg
	}

	output, err := renderer.Render(ctx, form, options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Model resolves the definition for req and returns the decorated form model
// without rendering it.
func (o *Orchestrator) Model(ctx context.Context, req Request) (model.FormModel, error) {
	if ctx == nil {
		return model.FormModel{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return model.FormModel{}, err
	}
	if err := o.initialiseErr; err != nil {
		return model.FormModel{}, err
	}

	def, err := o.resolveDefinition(ctx, req)
	if err != nil {
		return model.FormModel{}, err
	}

	form, err := o.builder.Build(def)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("orchestrator: build form model: %w", err)
	}
	if o.transformer != nil {
		if err := o.transformer.Transform(ctx, &form); err != nil {
			return model.FormModel{}, fmt.Errorf("orchestrator: transform form: %w", err)
		}
	}
	for _, decorator := range o.decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(&form); err != nil {
			return model.FormModel{}, fmt.Errorf("orchestrator: decorate form: %w", err)
		}
	}
	return form, nil
}

func (o *Orchestrator) resolveDefinition(ctx context.Context, req Request) (definition.Form, error) {
	if req.Definition != nil {
		return req.Definition.Clone(), nil
	}
	if req.FormID == "" {
		if len(req.Specs) == 0 {
			return definition.Form{}, errors.New("orchestrator: form id, definition or specs are required")
		}
		return definition.Form{ID: adHocFormID, Fields: req.Specs}.Clone(), nil
	}
	if o.definitions == nil {
		return definition.Form{}, errors.New("orchestrator: no definition source configured")
	}
	def, err := o.definitions.Definition(ctx, req.FormID)
	if err != nil {
		return definition.Form{}, fmt.Errorf("orchestrator: resolve definition: %w", err)
	}
	return def, nil
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
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}
	return o.registry.Get(names[0])
}

func (o *Orchestrator) applyDefaults() {
	if o.builder == nil {
		o.builder = model.NewBuilder()
	}
	if o.registry == nil {
		renderer, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			return
		}
		registry, err := render.NewRegistry(renderer)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default registry: %w", err)
			return
		}
		o.registry = registry
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
	if o.themeFallbacks == nil {
		o.themeFallbacks = defaultThemeFallbacks()
	}
}

func cloneStrings(src map[string]string) map[string]string {
	if src == nil {
		return nil
	}
	out := make(map[string]string, len(src))
	for key, value := range src {
		out[key] = value
	}
	return out
}
