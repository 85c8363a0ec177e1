package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/goliatone/go-formspec/pkg/fieldspec"
	"github.com/goliatone/go-formspec/pkg/model"
	"github.com/goliatone/go-formspec/pkg/render"
	"github.com/goliatone/go-formspec/pkg/validation"
)

const (
	defaultMaxAttempts = 3
	noneOption         = "(none)"
)

// Renderer implements render.Renderer for terminal sessions: every field is
// asked through the prompt driver and the answers are serialized.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
	maxAttempts       int
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		maxAttempts:  defaultMaxAttempts,
		theme:        Theme{ErrorPrefix: "✗ "},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Render prompts for every field in order and returns the serialized answers.
// Values in options act as prompt defaults; errors in options are shown
// before the field they belong to.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, options render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	if title := strings.TrimSpace(form.Title); title != "" {
		if err := r.info(ctx, title); err != nil {
			return nil, err
		}
	}
	for _, message := range render.MergeFormErrors(options.Errors[render.FormErrorKey]) {
		if err := r.errorf(ctx, "%s", message); err != nil {
			return nil, err
		}
	}

	state := NewState(options)
	for _, field := range form.Fields {
		if err := r.promptField(ctx, field, state); err != nil {
			return nil, err
		}
	}

	values := state.Values()
	if r.submitTransformer != nil {
		var err error
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return r.serialize(form, values)
}

func (r *Renderer) promptField(ctx context.Context, field model.Field, state *State) error {
	if fieldState := state.Field(field.Name); render.HasError(fieldState) {
		if err := r.errorf(ctx, "%s: %s", displayLabel(field), render.ErrorMessage(fieldState)); err != nil {
			return err
		}
	}

	switch field.Component() {
	case fieldspec.ComponentText:
		return r.promptText(ctx, field, state, false)
	case fieldspec.ComponentTextarea:
		return r.promptText(ctx, field, state, true)
	case fieldspec.ComponentSelect:
		return r.promptSelect(ctx, field, state)
	case fieldspec.ComponentCheckbox:
		return r.promptCheckbox(ctx, field, state)
	case fieldspec.ComponentNone:
		return r.info(ctx, "Not Found Field: "+displayLabel(field))
	default:
		return r.info(ctx, "Not Found Field: "+displayLabel(field))
	}
}

func (r *Renderer) promptText(ctx context.Context, field model.Field, state *State, multiline bool) error {
	current := defaultText(field, state)
	message := promptMessage(field)

	for attempt := 1; ; attempt++ {
		var (
			answer string
			err    error
		)
		if multiline {
			answer, err = r.driver.TextArea(ctx, TextAreaConfig{
				Message: message,
				Default: current,
				Help:    field.Metadata.DescriptionText(),
			})
		} else {
			answer, err = r.driver.Input(ctx, InputConfig{
				Message: message,
				Default: current,
				Help:    field.Metadata.DescriptionText(),
				Validator: func(value string) error {
					if problems := validation.CheckField(field, value, true); len(problems) > 0 {
						return errors.New(problems[0])
					}
					return nil
				},
			})
		}
		if err != nil {
			return err
		}

		problems := validation.CheckField(field, answer, true)
		if len(problems) == 0 {
			state.SetValue(field.Name, answer)
			return nil
		}
		if attempt >= r.maxAttempts {
			return fmt.Errorf("%w: field %q", ErrTooManyAttempts, field.Name)
		}
		if err := r.errorf(ctx, "%s", problems[0]); err != nil {
			return err
		}
		current = answer
	}
}

func (r *Renderer) promptSelect(ctx context.Context, field model.Field, state *State) error {
	options := field.Options()
	if len(options) == 0 {
		return r.errorf(ctx, "%s: no options available", displayLabel(field))
	}

	choices := options
	if !field.Metadata.Required {
		choices = append([]string{noneOption}, options...)
	}

	current := defaultText(field, state)
	defaultIndex := 0
	for i, choice := range choices {
		if choice == current {
			defaultIndex = i
			break
		}
	}

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      promptMessage(field),
		Options:      choices,
		DefaultIndex: defaultIndex,
		Help:         field.Metadata.DescriptionText(),
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(choices) {
		return fmt.Errorf("tui: select index %d out of range for field %q", idx, field.Name)
	}

	value := choices[idx]
	if !field.Metadata.Required && idx == 0 {
		value = ""
	}
	state.SetValue(field.Name, value)
	return nil
}

func (r *Renderer) promptCheckbox(ctx context.Context, field model.Field, state *State) error {
	answer, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: displayLabel(field),
		Default: defaultBool(field, state),
		Help:    field.Metadata.DescriptionText(),
	})
	if err != nil {
		return err
	}
	state.SetValue(field.Name, answer)
	return nil
}

func (r *Renderer) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.InfoPrefix+msg)
}

func (r *Renderer) errorf(ctx context.Context, format string, args ...any) error {
	return r.driver.Info(ctx, r.theme.ErrorPrefix+fmt.Sprintf(format, args...))
}

func (r *Renderer) serialize(form model.FormModel, values map[string]any) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		encoded := url.Values{}
		for key, value := range values {
			encoded.Set(key, fmt.Sprint(value))
		}
		return []byte(encoded.Encode()), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(form, values)), nil
	default:
		return json.Marshal(values)
	}
}

// prettyPrint lists form fields in order, then any extra keys sorted.
func prettyPrint(form model.FormModel, values map[string]any) string {
	var b strings.Builder
	seen := make(map[string]struct{}, len(form.Fields))
	for _, field := range form.Fields {
		seen[field.Name] = struct{}{}
		if value, ok := values[field.Name]; ok {
			fmt.Fprintf(&b, "%s: %v\n", displayLabel(field), value)
		}
	}

	extras := make([]string, 0)
	for key := range values {
		if _, ok := seen[key]; !ok {
			extras = append(extras, key)
		}
	}
	sort.Strings(extras)
	for _, key := range extras {
		fmt.Fprintf(&b, "%s: %v\n", key, values[key])
	}
	return b.String()
}

func displayLabel(field model.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return field.Name
}

func promptMessage(field model.Field) string {
	if field.Metadata.Required {
		return displayLabel(field) + " *"
	}
	return displayLabel(field)
}

func defaultText(field model.Field, state *State) string {
	if value, ok := state.Value(field.Name); ok && value != nil {
		return fmt.Sprint(value)
	}
	return field.Metadata.Default.Text()
}

func defaultBool(field model.Field, state *State) bool {
	if value, ok := state.Value(field.Name); ok && value != nil {
		if b, ok := value.(bool); ok {
			return b
		}
		return fieldspec.ParseBool(fmt.Sprint(value))
	}
	checked, _ := field.Metadata.Default.Bool()
	return checked
}
