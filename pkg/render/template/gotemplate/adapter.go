package gotemplate

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	gotemplatepkg "github.com/goliatone/go-template"

	"github.com/goliatone/go-formspec/pkg/render/template"
)

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	baseDir    string
	templates  fs.FS
	extension  string
	globalData map[string]any
	hooks      *gotemplatepkg.HookManager
}

// WithBaseDir loads templates from a directory on disk.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS loads templates from an fs.FS.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithExtension sets the extension appended to template names.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		cfg.extension = trimmed
	}
}

// WithGlobalData seeds values visible to every template.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *config) {
		if len(data) == 0 {
			return
		}
		if cfg.globalData == nil {
			cfg.globalData = make(map[string]any, len(data))
		}
		for key, value := range data {
			cfg.globalData[strings.TrimSpace(key)] = value
		}
	}
}

// WithPreHook runs hook before every render. Hooks may replace the data or
// the template name; lower priorities run first.
func WithPreHook(hook gotemplatepkg.PreHook, priority ...int) Option {
	return func(cfg *config) {
		if hook != nil {
			cfg.hooks.AddPreHook(hook, priority...)
		}
	}
}

// WithPostHook runs hook on the rendered output before it is returned.
func WithPostHook(hook gotemplatepkg.PostHook, priority ...int) Option {
	return func(cfg *config) {
		if hook != nil {
			cfg.hooks.AddPostHook(hook, priority...)
		}
	}
}

// Engine is a pongo2 template set behind the TemplateRenderer contract.
type Engine struct {
	mu        sync.RWMutex
	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template
	ext       string
	hooks     *gotemplatepkg.HookManager
}

var (
	_ template.TemplateRenderer = (*Engine)(nil)
	_ template.TemplateRenderer = (*gotemplatepkg.Engine)(nil)
)

// New builds an Engine. Either WithBaseDir or WithFS is required.
func New(options ...Option) (*Engine, error) {
	cfg := &config{extension: ".tmpl", hooks: gotemplatepkg.NewHooksManager()}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}
	if cfg.baseDir == "" && cfg.templates == nil {
		return nil, errors.New("gotemplate: need to provide either base dir or fs.FS")
	}

	var loaders []pongo2.TemplateLoader
	if cfg.baseDir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("gotemplate: create local loader: %w", err)
		}
		loaders = append(loaders, loader)
	}
	if cfg.templates != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.templates))
	}

	engine := &Engine{
		set:       pongo2.NewSet("formspec", loaders...),
		templates: make(map[string]*pongo2.Template),
		ext:       cfg.extension,
		hooks:     cfg.hooks,
	}
	registerDefaultFilters()

	if err := engine.GlobalContext(cfg.globalData); err != nil {
		return nil, fmt.Errorf("gotemplate: apply global data: %w", err)
	}
	return engine, nil
}

// Render treats name as inline template content when it contains template
// tags, and as a template path otherwise.
func (e *Engine) Render(name string, data any, out ...io.Writer) (string, error) {
	if strings.Contains(name, "{{") || strings.Contains(name, "{%") {
		return e.RenderString(name, data, out...)
	}
	return e.RenderTemplate(name, data, out...)
}

// RenderTemplate executes a template loaded by path. Parsed templates are
// cached.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	hookCtx := &gotemplatepkg.HookContext{
		TemplateName: name,
		Data:         data,
		Metadata:     map[string]any{"ext": e.ext},
		IsPreHook:    true,
	}
	if err := e.runPreHooks(hookCtx); err != nil {
		return "", err
	}

	path := hookCtx.TemplateName
	if !strings.HasSuffix(path, e.ext) {
		path += e.ext
	}
	tmpl, err := e.load(path)
	if err != nil {
		return "", err
	}
	rendered, err := e.execute(tmpl, path, hookCtx.Data)
	if err != nil {
		return "", err
	}
	return e.finish(hookCtx, rendered, out)
}

// RenderString parses and executes templateContent.
func (e *Engine) RenderString(templateContent string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	hookCtx := &gotemplatepkg.HookContext{
		Template:  templateContent,
		Data:      data,
		Metadata:  map[string]any{},
		IsPreHook: true,
	}
	if err := e.runPreHooks(hookCtx); err != nil {
		return "", err
	}

	tmpl, err := e.set.FromString(hookCtx.Template)
	if err != nil {
		return "", fmt.Errorf("gotemplate: parse template string: %w", err)
	}
	rendered, err := e.execute(tmpl, "string", hookCtx.Data)
	if err != nil {
		return "", err
	}
	return e.finish(hookCtx, rendered, out)
}

// RegisterPreHook adds a hook after construction.
func (e *Engine) RegisterPreHook(hook gotemplatepkg.PreHook, priority ...int) {
	e.hooks.AddPreHook(hook, priority...)
}

// RegisterPostHook adds a hook after construction.
func (e *Engine) RegisterPostHook(hook gotemplatepkg.PostHook, priority ...int) {
	e.hooks.AddPostHook(hook, priority...)
}

// RegisterFilter registers a global pongo2 filter. Filter names are process
// wide, so registering an existing name fails.
func (e *Engine) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	name = strings.TrimSpace(name)
	if name == "" || fn == nil {
		return errors.New("gotemplate: filter name and function required")
	}
	if pongo2.FilterExists(name) {
		return fmt.Errorf("gotemplate: filter %q already exists", name)
	}
	return pongo2.RegisterFilter(name, func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var arg any
		if param != nil {
			arg = param.Interface()
		}
		result, err := fn(in.Interface(), arg)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		return pongo2.AsValue(result), nil
	})
}

// GlobalContext merges data into the globals of the template set.
func (e *Engine) GlobalContext(data any) error {
	if e == nil || e.set == nil {
		return errors.New("gotemplate: engine is nil")
	}
	if data == nil {
		return nil
	}
	ctx, err := toContext(data)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.set.Globals == nil {
		e.set.Globals = make(pongo2.Context)
	}
	e.set.Globals.Update(ctx)
	return nil
}

func (e *Engine) execute(tmpl *pongo2.Template, label string, data any) (string, error) {
	ctx, err := toContext(data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: convert data: %w", err)
	}

	var buf bytes.Buffer
	e.mu.RLock()
	err = tmpl.ExecuteWriter(ctx, &buf)
	e.mu.RUnlock()
	if err != nil {
		return "", fmt.Errorf("gotemplate: execute template %q: %w", label, err)
	}
	return buf.String(), nil
}

func (e *Engine) runPreHooks(hookCtx *gotemplatepkg.HookContext) error {
	for _, hook := range e.hooks.PreHooks() {
		if err := hook(hookCtx); err != nil {
			return fmt.Errorf("gotemplate: pre-hook: %w", err)
		}
	}
	hookCtx.IsPreHook = false
	return nil
}

// finish applies the post hooks in order and writes the final output.
func (e *Engine) finish(hookCtx *gotemplatepkg.HookContext, rendered string, out []io.Writer) (string, error) {
	for _, hook := range e.hooks.PostHooks() {
		hookCtx.Output = rendered
		next, err := hook(hookCtx)
		if err != nil {
			return "", fmt.Errorf("gotemplate: post-hook: %w", err)
		}
		rendered = next
	}
	for _, w := range out {
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", err
		}
	}
	return rendered, nil
}

func (e *Engine) load(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.templates[path]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.templates[path]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load template %q: %w", path, err)
	}
	e.templates[path] = tmpl
	return tmpl, nil
}

// toContext accepts maps directly and hands anything else to go-template's
// JSON conversion so struct tags decide the names templates see.
func toContext(data any) (pongo2.Context, error) {
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		return v, nil
	case map[string]any:
		return pongo2.Context(v), nil
	}

	ctx, err := gotemplatepkg.ConvertToContext(data)
	if err != nil {
		return nil, fmt.Errorf("template data must encode to an object: %w", err)
	}
	return ctx, nil
}

func registerDefaultFilters() {
	if !pongo2.FilterExists("trim") {
		_ = pongo2.RegisterFilter("trim", func(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
			return pongo2.AsValue(strings.TrimSpace(in.String())), nil
		})
	}
}
