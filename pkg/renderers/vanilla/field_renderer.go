package vanilla

import (
	"bytes"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formspec/pkg/model"
	"github.com/goliatone/go-formspec/pkg/render"
	"github.com/goliatone/go-formspec/pkg/render/template"
	"github.com/goliatone/go-formspec/pkg/renderers/vanilla/components"
)

const (
	fieldTemplate   = "templates/field.tmpl"
	fieldPartialKey = "forms.field"
)

// markupPattern matches complete tags and comments. A bare "<" is text.
var markupPattern = regexp.MustCompile(`</?[A-Za-z][^<>]*>|<!--`)

// componentRenderer renders the fields of one form and remembers which
// components it used.
type componentRenderer struct {
	templates template.TemplateRenderer
	registry  *components.Registry
	sanitizer *bluemonday.Policy
	partials  map[string]string
	formID    string

	used []string
	seen map[string]struct{}
}

func newComponentRenderer(templates template.TemplateRenderer, registry *components.Registry, sanitizer *bluemonday.Policy, partials map[string]string, formID string) *componentRenderer {
	if registry == nil {
		registry = components.NewDefaultRegistry()
	}
	if sanitizer == nil {
		sanitizer = bluemonday.StrictPolicy()
	}
	return &componentRenderer{
		templates: templates,
		registry:  registry,
		sanitizer: sanitizer,
		partials:  partials,
		formID:    formID,
		seen:      make(map[string]struct{}),
	}
}

func (r *componentRenderer) render(field model.Field, values map[string]any, state render.FieldState) (string, error) {
	name := components.NameFor(field.Component())
	descriptor, ok := r.registry.Descriptor(name)
	if !ok {
		return "", fmt.Errorf("component %q not registered for field %q", name, field.Name)
	}

	view := r.view(field, name, values, state)

	var control bytes.Buffer
	if err := descriptor.Renderer(&control, view, components.ComponentData{
		Template:      r.templates,
		ThemePartials: r.partials,
	}); err != nil {
		return "", fmt.Errorf("render component %q for field %q: %w", name, field.Name, err)
	}
	r.markUsed(name)

	chrome := fieldTemplate
	if candidate := strings.TrimSpace(r.partials[fieldPartialKey]); candidate != "" {
		chrome = candidate
	}
	out, err := r.templates.RenderTemplate(chrome, map[string]any{
		"field":   view,
		"control": strings.TrimSpace(control.String()),
	})
	if err != nil {
		return "", fmt.Errorf("render field %q: %w", field.Name, err)
	}
	return out, nil
}

func (r *componentRenderer) view(field model.Field, name string, values map[string]any, state render.FieldState) components.Field {
	value, checked := fieldValue(field, values)

	view := components.Field{
		Name:        field.Name,
		ID:          componentControlID(r.formID, field.Name),
		Label:       r.clean(field.Label),
		Description: r.clean(field.Metadata.DescriptionText()),
		Required:    field.Metadata.Required,
		Value:       value,
		Checked:     checked,
		HasError:    render.HasError(state),
		Error:       render.ErrorMessage(state),
		Component:   name,
		CSSClass:    sanitizeClassList(field.UIHints["cssClass"]),
	}

	for _, option := range field.Options() {
		view.Options = append(view.Options, components.Option{
			Value:    option,
			Label:    option,
			Selected: option == value,
		})
	}
	return view
}

// clean returns HTML-safe text. Only values carrying markup go through the
// sanitizer; everything else is escaped so characters such as "<" survive.
func (r *componentRenderer) clean(value string) string {
	value = strings.TrimSpace(value)
	if !markupPattern.MatchString(value) {
		return html.EscapeString(value)
	}
	return strings.TrimSpace(r.sanitizer.Sanitize(value))
}

func (r *componentRenderer) markUsed(name string) {
	if _, ok := r.seen[name]; ok {
		return
	}
	r.seen[name] = struct{}{}
	r.used = append(r.used, name)
}
