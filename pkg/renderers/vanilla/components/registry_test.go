package components

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formspec/pkg/fieldspec"
)

func TestDefaultRegistryCoversEveryComponent(t *testing.T) {
	registry := NewDefaultRegistry()
	for _, component := range append(fieldspec.Components(), fieldspec.ComponentNone) {
		name := NameFor(component)
		if _, ok := registry.Descriptor(name); !ok {
			t.Fatalf("component %q (%v) not registered", name, component)
		}
	}
	want := []string{"checkbox", "not_found", "select", "text", "textarea"}
	if diff := cmp.Diff(want, registry.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistryCloneIsIndependent(t *testing.T) {
	base := NewDefaultRegistry()
	clone := base.Clone()
	clone.MustRegister("rating", Descriptor{
		Renderer:    func(*bytes.Buffer, Field, ComponentData) error { return nil },
		Stylesheets: []string{"/rating.css", "/rating.css"},
	})

	if _, ok := base.Descriptor("rating"); ok {
		t.Fatalf("clone leaked into base registry")
	}
	if got := clone.Stylesheets([]string{"RATING", "text"}); len(got) != 1 || got[0] != "/rating.css" {
		t.Fatalf("unexpected stylesheets: %v", got)
	}
	if err := clone.Register(" ", Descriptor{}); err == nil {
		t.Fatalf("expected error for empty name")
	}
}

type recordingTemplates struct {
	names []string
}

func (r *recordingTemplates) Render(name string, data any, out ...io.Writer) (string, error) {
	return r.RenderTemplate(name, data, out...)
}

func (r *recordingTemplates) RenderTemplate(name string, _ any, _ ...io.Writer) (string, error) {
	r.names = append(r.names, name)
	return "<" + name + ">", nil
}

func (r *recordingTemplates) RenderString(string, any, ...io.Writer) (string, error) {
	return "", nil
}

func (r *recordingTemplates) RegisterFilter(string, func(any, any) (any, error)) error { return nil }
func (r *recordingTemplates) GlobalContext(any) error                                  { return nil }

func TestTemplateRendererHonoursThemePartials(t *testing.T) {
	templates := &recordingTemplates{}
	render := TemplateRenderer(PartialKey(NameSelect), "templates/components/select.tmpl")

	var buf bytes.Buffer
	if err := render(&buf, Field{Name: "topic"}, ComponentData{Template: templates}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if err := render(&buf, Field{Name: "topic"}, ComponentData{
		Template:      templates,
		ThemePartials: map[string]string{"forms.select": "themes/acme/select.tmpl"},
	}); err != nil {
		t.Fatalf("render with partial: %v", err)
	}

	want := []string{"templates/components/select.tmpl", "themes/acme/select.tmpl"}
	if diff := cmp.Diff(want, templates.names); diff != "" {
		t.Fatalf("templates mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(buf.String(), "<themes/acme/select.tmpl>") {
		t.Fatalf("unexpected output %q", buf.String())
	}
	if err := render(&buf, Field{}, ComponentData{}); err == nil {
		t.Fatalf("expected error without template engine")
	}
}
