package gotemplate_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	gotemplatepkg "github.com/goliatone/go-template"

	"github.com/goliatone/go-formspec/pkg/render/template/gotemplate"
)

func newEngine(t *testing.T, options ...gotemplate.Option) *gotemplate.Engine {
	t.Helper()
	options = append([]gotemplate.Option{gotemplate.WithFS(fstest.MapFS{
		"hello.tmpl":      {Data: []byte("Hello {{ name }}!")},
		"bye.tmpl":        {Data: []byte("Bye {{ name }}!")},
		"use-global.tmpl": {Data: []byte("env={{ settings.env }}")},
		"label.tmpl":      {Data: []byte("<label>{{ label }}</label>")},
	})}, options...)
	engine, err := gotemplate.New(options...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngineRenderTemplate(t *testing.T) {
	engine := newEngine(t)

	var buf bytes.Buffer
	got, err := engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, &buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Hello Ada!" || buf.String() != got {
		t.Fatalf("unexpected output %q / %q", got, buf.String())
	}
}

func TestEngineEscapesValues(t *testing.T) {
	engine := newEngine(t)
	got, err := engine.Render("label", map[string]any{"label": "<b>x</b>"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(got, "<b>") {
		t.Fatalf("expected escaped output, got %q", got)
	}
}

func TestEngineGlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}
	got, err := engine.RenderTemplate("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "env=staging" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngineRenderStringWithStruct(t *testing.T) {
	engine := newEngine(t)
	data := struct {
		Name string `json:"name"`
	}{Name: "Grace"}

	got, err := engine.Render("{{ name|trim }}", data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Grace" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngineRegisterFilter(t *testing.T) {
	engine := newEngine(t)
	shout := func(input any, _ any) (any, error) {
		s, _ := input.(string)
		return strings.ToUpper(s), nil
	}
	if err := engine.RegisterFilter("formspec_shout", shout); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := engine.RegisterFilter("formspec_shout", shout); err == nil {
		t.Fatalf("expected duplicate filter error")
	}
	got, err := engine.RenderString("{{ name|formspec_shout }}", map[string]any{"name": "ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "ADA" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestNewRequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without templates")
	}
}

func TestEngineHooks(t *testing.T) {
	var order []string
	engine := newEngine(t,
		gotemplate.WithPreHook(func(ctx *gotemplatepkg.HookContext) error {
			order = append(order, "late")
			return nil
		}, 10),
		gotemplate.WithPreHook(func(ctx *gotemplatepkg.HookContext) error {
			order = append(order, "early")
			if !ctx.IsPreHook || (ctx.TemplateName != "" && ctx.Metadata["ext"] != ".tmpl") {
				t.Errorf("unexpected pre-hook context: %+v", ctx)
			}
			ctx.TemplateName = "bye"
			ctx.Data = map[string]any{"name": "Grace"}
			return nil
		}, 1),
		gotemplate.WithPostHook(func(ctx *gotemplatepkg.HookContext) (string, error) {
			return "[" + ctx.Output + "]", nil
		}),
	)

	var buf bytes.Buffer
	got, err := engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, &buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "[Bye Grace!]" || buf.String() != got {
		t.Fatalf("unexpected output %q / %q", got, buf.String())
	}
	if strings.Join(order, ",") != "early,late" {
		t.Fatalf("hooks ran out of priority order: %v", order)
	}

	engine.RegisterPostHook(func(ctx *gotemplatepkg.HookContext) (string, error) {
		return strings.ToUpper(ctx.Output), nil
	})
	got, err = engine.RenderString("{{ name }}", map[string]any{"name": "ada"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if got != "[GRACE]" {
		t.Fatalf("unexpected string output %q", got)
	}
}

func TestEngineHookErrors(t *testing.T) {
	boom := errors.New("boom")
	pre := newEngine(t, gotemplate.WithPreHook(func(*gotemplatepkg.HookContext) error { return boom }))
	if _, err := pre.RenderTemplate("hello", nil); !errors.Is(err, boom) {
		t.Fatalf("expected pre-hook error, got %v", err)
	}

	var buf bytes.Buffer
	post := newEngine(t, gotemplate.WithPostHook(func(*gotemplatepkg.HookContext) (string, error) { return "", boom }))
	if _, err := post.RenderString("x", nil, &buf); !errors.Is(err, boom) {
		t.Fatalf("expected post-hook error, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("nothing should be written when a hook fails")
	}
}
