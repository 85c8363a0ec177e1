package components

import (
	"bytes"
	"fmt"
	"strings"
)

const templatePrefix = "templates/components/"

// NewDefaultRegistry returns a registry with one template-backed renderer per
// field-spec component plus the not-found placeholder.
func NewDefaultRegistry() *Registry {
	registry := New()
	for _, name := range []string{NameText, NameTextarea, NameSelect, NameCheckbox, NameNotFound} {
		registry.MustRegister(name, Descriptor{
			Renderer: TemplateRenderer(PartialKey(name), templatePrefix+name+".tmpl"),
		})
	}
	return registry
}

// TemplateRenderer renders templateName, or the theme partial registered
// under partialKey when one is configured.
func TemplateRenderer(partialKey, templateName string) Renderer {
	return func(buf *bytes.Buffer, field Field, data ComponentData) error {
		if data.Template == nil {
			return fmt.Errorf("components: template renderer not configured for %q", templateName)
		}

		resolved := templateName
		if candidate := strings.TrimSpace(data.ThemePartials[partialKey]); candidate != "" {
			resolved = candidate
		}

		rendered, err := data.Template.RenderTemplate(resolved, map[string]any{"field": field})
		if err != nil {
			return fmt.Errorf("components: render template %q: %w", resolved, err)
		}
		buf.WriteString(rendered)
		return nil
	}
}
