// Package payload renders a form as a JSON document for client-side
// frameworks that hydrate their own widgets.
package payload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goliatone/go-formspec/pkg/model"
	"github.com/goliatone/go-formspec/pkg/render"
)

// Option customises the renderer configuration.
type Option func(*Renderer)

// WithIndent pretty-prints the document with the given indent.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

// WithDiagnostics includes field diagnostics in the document.
func WithDiagnostics(enabled bool) Option {
	return func(r *Renderer) {
		r.diagnostics = enabled
	}
}

// Renderer turns a FormModel and its render state into JSON.
type Renderer struct {
	indent      string
	diagnostics bool
}

// New constructs a payload renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Name identifies the renderer inside the registry.
func (r *Renderer) Name() string {
	return "json"
}

// ContentType returns the MIME type for generated documents.
func (r *Renderer) ContentType() string {
	return "application/json"
}

// Document is the rendered payload.
type Document struct {
	ID          string            `json:"id"`
	Title       string            `json:"title,omitempty"`
	Description string            `json:"description,omitempty"`
	Action      string            `json:"action,omitempty"`
	Method      string            `json:"method"`
	Fields      []Field           `json:"fields"`
	Errors      []string          `json:"errors,omitempty"`
	Hidden      map[string]string `json:"hidden,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	Theme       *Theme            `json:"theme,omitempty"`
	Diagnostics []Diagnostic      `json:"diagnostics,omitempty"`
}

// Field is one field of the payload. Component is empty for specifications
// that name no known component.
type Field struct {
	Name        string            `json:"name"`
	Component   string            `json:"component"`
	Label       string            `json:"label"`
	Description string            `json:"description,omitempty"`
	Required    bool              `json:"required"`
	Default     any               `json:"default,omitempty"`
	Options     []string          `json:"options,omitempty"`
	Value       any               `json:"value,omitempty"`
	Errors      []string          `json:"errors,omitempty"`
	UIHints     map[string]string `json:"uiHints,omitempty"`
}

// Theme carries the resolved theme identity and CSS variables.
type Theme struct {
	Name    string            `json:"name"`
	Variant string            `json:"variant,omitempty"`
	CSSVars map[string]string `json:"cssVars,omitempty"`
}

// Diagnostic is a field diagnostic flattened for clients.
type Diagnostic struct {
	Field   string `json:"field"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Render produces the JSON document.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := Build(form, options)
	if !r.diagnostics {
		doc.Diagnostics = nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(true)
	if r.indent != "" {
		enc.SetIndent("", r.indent)
	}
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("payload renderer: marshal form model: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Build assembles the document without encoding it. Field errors are only
// included for fields whose state reports an error.
func Build(form model.FormModel, options render.RenderOptions) Document {
	mapped := render.MapErrorPayload(form, options.Errors)
	fieldOptions := options
	fieldOptions.Errors = mapped.Fields

	doc := Document{
		ID:          form.ID,
		Title:       strings.TrimSpace(form.Title),
		Description: strings.TrimSpace(form.Description),
		Action:      form.Action,
		Method:      form.Method,
		Fields:      make([]Field, 0, len(form.Fields)),
		Errors:      mapped.Form,
		Hidden:      cloneMap(options.Hidden),
		Metadata:    cloneMap(form.Metadata),
	}

	for _, field := range form.Fields {
		state := render.StateFor(fieldOptions, field.Name)
		out := Field{
			Name:        field.Name,
			Component:   field.Component().String(),
			Label:       field.Label,
			Description: field.Metadata.DescriptionText(),
			Required:    field.Metadata.Required,
			Default:     field.Metadata.Default.Value(),
			Options:     field.Options(),
			UIHints:     cloneMap(field.UIHints),
		}
		if value, ok := options.Values[field.Name]; ok {
			out.Value = value
		}
		if render.HasError(state) {
			out.Errors = state.Errors
		}
		doc.Fields = append(doc.Fields, out)
	}

	for _, diag := range form.Diagnostics() {
		doc.Diagnostics = append(doc.Diagnostics, Diagnostic{
			Field:   diag.Field,
			Title:   diag.Title,
			Message: diag.Message,
		})
	}

	if cfg := options.Theme; cfg != nil {
		doc.Theme = &Theme{
			Name:    cfg.Theme,
			Variant: cfg.Variant,
			CSSVars: cloneMap(cfg.CSSVars),
		}
	}
	return doc
}

func cloneMap(values map[string]string) map[string]string {
	if len(values) == 0 {
		return nil
	}
	result := make(map[string]string, len(values))
	for key, value := range values {
		result[key] = value
	}
	return result
}
