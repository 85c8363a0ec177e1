package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formspec/pkg/model"
	"github.com/goliatone/go-formspec/pkg/render"
	rendertemplate "github.com/goliatone/go-formspec/pkg/render/template"
	gotemplate "github.com/goliatone/go-formspec/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formspec/pkg/renderers/vanilla/components"
)

const (
	formTemplate   = "templates/form.tmpl"
	formPartialKey = "forms.form"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	registry         *components.Registry
	sanitizer        *bluemonday.Policy
	inlineStyles     bool
	formClass        string
	submitLabel      string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template engine.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithComponentRegistry replaces the default component registry.
func WithComponentRegistry(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.registry = registry
		}
	}
}

// WithSanitizer replaces the bluemonday policy applied to labels and
// descriptions that contain markup. The default strips all tags.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.sanitizer = policy
		}
	}
}

// WithInlineStyles embeds the default stylesheet in a <style> element.
func WithInlineStyles(enabled bool) Option {
	return func(cfg *config) {
		cfg.inlineStyles = enabled
	}
}

// WithFormClass overrides the class on the <form> element.
func WithFormClass(class string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(class); trimmed != "" {
			cfg.formClass = trimmed
		}
	}
}

// WithSubmitLabel overrides the submit button text.
func WithSubmitLabel(label string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(label); trimmed != "" {
			cfg.submitLabel = trimmed
		}
	}
}

// Renderer produces a plain HTML form.
type Renderer struct {
	templates    rendertemplate.TemplateRenderer
	registry     *components.Registry
	sanitizer    *bluemonday.Policy
	inlineStyles bool
	formClass    string
	submitLabel  string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS:  TemplatesFS(),
		formClass:   DefaultFormClass,
		submitLabel: "Submit",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.registry == nil {
		cfg.registry = components.NewDefaultRegistry()
	}
	if cfg.sanitizer == nil {
		cfg.sanitizer = bluemonday.StrictPolicy()
	}

	templates := cfg.templateRenderer
	if templates == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		templates = engine
	}

	return &Renderer{
		templates:    templates,
		registry:     cfg.registry,
		sanitizer:    cfg.sanitizer,
		inlineStyles: cfg.inlineStyles,
		formClass:    cfg.formClass,
		submitLabel:  cfg.submitLabel,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

type formView struct {
	ID           string
	Class        string
	Title        string
	Description  string
	Action       string
	Method       string
	CSSVars      string
	Stylesheets  []string
	InlineStyles string
	Errors       []string
	Hidden       []render.HiddenField
	Fields       []string
	SubmitLabel  string
}

// Render writes the form. Field errors appear only for touched fields; form
// level errors and errors for unknown fields are listed above the fields.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var partials map[string]string
	if options.Theme != nil {
		partials = options.Theme.Partials
	}

	mapped := render.MapErrorPayload(form, options.Errors)
	fieldOptions := options
	fieldOptions.Errors = mapped.Fields

	fields := newComponentRenderer(r.templates, r.registry, r.sanitizer, partials, form.ID)
	rendered := make([]string, 0, len(form.Fields))
	for _, field := range form.Fields {
		html, err := fields.render(field, options.Values, render.StateFor(fieldOptions, field.Name))
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: %w", err)
		}
		rendered = append(rendered, html)
	}

	method, override := formMethod(form.Method)
	hidden := options.Hidden
	if override != "" {
		hidden = render.MergeHiddenFields(hidden, render.Hidden("_method", override))
	}

	view := formView{
		ID:          componentControlID("", form.ID),
		Class:       r.formClass,
		Title:       strings.TrimSpace(form.Title),
		Description: strings.TrimSpace(form.Description),
		Action:      form.Action,
		Method:      method,
		Stylesheets: r.registry.Stylesheets(fields.used),
		Errors:      mapped.Form,
		Hidden:      render.SortedHiddenFields(hidden),
		Fields:      rendered,
		SubmitLabel: r.submitLabel,
	}
	if options.Theme != nil {
		view.CSSVars = cssVarsStyle(options.Theme.CSSVars)
		if options.Theme.AssetURL != nil {
			if href := options.Theme.AssetURL(StylesheetAssetKey); href != "" {
				view.Stylesheets = append([]string{href}, view.Stylesheets...)
			}
		}
	}
	if r.inlineStyles {
		view.InlineStyles = defaultStylesheet()
	}

	tmpl := formTemplate
	if candidate := strings.TrimSpace(partials[formPartialKey]); candidate != "" {
		tmpl = candidate
	}
	result, err := r.templates.RenderTemplate(tmpl, map[string]any{"form": view})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}
