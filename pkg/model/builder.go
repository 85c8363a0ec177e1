package model

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formspec/pkg/definition"
	"github.com/goliatone/go-formspec/pkg/fieldspec"
)

const defaultMethod = "POST"

// Builder converts form definitions into form models.
type Builder interface {
	Build(def definition.Form) (FormModel, error)
}

// BuilderOption configures the builder behaviour.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	labeler func(string) string
}

// WithLabeler overrides how a label is derived for fields whose specification
// has no label token.
func WithLabeler(labeler func(string) string) BuilderOption {
	return func(opts *builderOptions) {
		opts.labeler = labeler
	}
}

type builder struct {
	labeler func(string) string
}

// NewBuilder returns the default Builder.
func NewBuilder(options ...BuilderOption) Builder {
	cfg := builderOptions{labeler: DefaultLabeler}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.labeler == nil {
		cfg.labeler = DefaultLabeler
	}
	return &builder{labeler: cfg.labeler}
}

// Build interprets every field specification with its own parser.
func (b *builder) Build(def definition.Form) (FormModel, error) {
	if err := def.Validate(); err != nil {
		return FormModel{}, fmt.Errorf("model: %w", err)
	}

	form := FormModel{
		ID:          def.ID,
		Title:       def.Title,
		Description: def.Description,
		Action:      def.Action,
		Method:      strings.ToUpper(strings.TrimSpace(def.Method)),
		Fields:      make([]Field, 0, len(def.Fields)),
	}
	if form.Method == "" {
		form.Method = defaultMethod
	}
	if def.Source != "" {
		form.Metadata = map[string]string{"source": def.Source}
	}

	for _, entry := range def.Fields {
		form.Fields = append(form.Fields, b.buildField(entry))
	}
	return form, nil
}

func (b *builder) buildField(entry definition.Field) Field {
	name := strings.TrimSpace(entry.Name)
	meta, diags := fieldspec.Parse(entry.Spec)

	label := meta.LabelText()
	if label == "" {
		label = b.labeler(name)
	}

	field := Field{
		Name:        name,
		Spec:        entry.Spec,
		Label:       label,
		Metadata:    meta,
		Diagnostics: diags,
	}
	if len(entry.Hints) > 0 {
		field.UIHints = make(map[string]string, len(entry.Hints))
		for k, v := range entry.Hints {
			field.UIHints[k] = v
		}
	}
	return field
}
