package orchestrator

import (
	"fmt"
	"path"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formspec/pkg/renderers/vanilla/components"
)

// defaultThemeFallbacks maps partial keys to the vanilla templates.
func defaultThemeFallbacks() map[string]string {
	fallbacks := map[string]string{
		"forms.form":  "templates/form.tmpl",
		"forms.field": "templates/field.tmpl",
	}
	for _, name := range []string{
		components.NameText,
		components.NameTextarea,
		components.NameSelect,
		components.NameCheckbox,
		components.NameNotFound,
	} {
		fallbacks[components.PartialKey(name)] = "templates/components/" + name + ".tmpl"
	}
	return fallbacks
}

func (o *Orchestrator) resolveTheme(req Request) (*theme.RendererConfig, error) {
	if o.themeSelector == nil {
		return nil, nil
	}
	name := req.ThemeName
	if name == "" {
		name = o.defaultTheme
	}
	variant := req.ThemeVariant
	if variant == "" {
		variant = o.defaultVariant
	}

	selection, err := o.themeSelector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme %q: %w", name, err)
	}
	if selection == nil {
		return nil, nil
	}
	return rendererConfig(selection, o.themeFallbacks), nil
}

// rendererConfig flattens a selection into renderer configuration. Variant
// tokens, templates and assets override the manifest's.
func rendererConfig(selection *theme.Selection, fallbacks map[string]string) *theme.RendererConfig {
	cfg := &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Tokens:   map[string]string{},
		CSSVars:  map[string]string{},
		Partials: cloneStrings(fallbacks),
	}
	if cfg.Partials == nil {
		cfg.Partials = map[string]string{}
	}

	manifest := selection.Manifest
	if manifest == nil {
		return cfg
	}

	prefix := manifest.Assets.Prefix
	files := map[string]string{}
	merge := func(tokens, templates, assets map[string]string) {
		for key, value := range tokens {
			cfg.Tokens[key] = value
		}
		for key, value := range templates {
			cfg.Partials[key] = value
		}
		for key, value := range assets {
			files[key] = value
		}
	}

	merge(manifest.Tokens, manifest.Templates, manifest.Assets.Files)
	if variant, ok := manifest.Variants[selection.Variant]; ok {
		merge(variant.Tokens, variant.Templates, variant.Assets.Files)
		if variant.Assets.Prefix != "" {
			prefix = variant.Assets.Prefix
		}
	}

	for key, value := range cfg.Tokens {
		cfg.CSSVars["--"+strings.TrimPrefix(key, "--")] = value
	}
	cfg.AssetURL = func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		if strings.Contains(file, "://") || strings.HasPrefix(file, "/") || prefix == "" {
			return file
		}
		return strings.TrimSuffix(prefix, "/") + "/" + path.Clean(file)
	}
	return cfg
}
