package render

import theme "github.com/goliatone/go-theme"

// RenderOptions describe per-request data that renderers use to customise
// their output without mutating the form model.
type RenderOptions struct {
	// Values pre-populates controls keyed by field name. Checkbox values may
	// be booleans or boolean-like strings.
	Values map[string]any
	// Errors carries validation messages keyed by field name. Messages under
	// FormErrorKey are shown at form level.
	Errors map[string][]string
	// Touched marks the fields the user interacted with. A nil map treats
	// every field as touched, which is the state after a submission.
	Touched map[string]bool
	// Hidden emits hidden inputs (CSRF tokens, versions) alongside the fields.
	Hidden map[string]string
	// Theme carries the resolved go-theme configuration: template partial
	// overrides keyed by "forms.<component>", tokens and CSS variables.
	Theme *theme.RendererConfig
}

// FormErrorKey is the Errors key for messages that do not belong to a field.
const FormErrorKey = "_form"
