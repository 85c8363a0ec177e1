package vanilla_test

import (
	"context"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formspec/pkg/definition"
	"github.com/goliatone/go-formspec/pkg/model"
	"github.com/goliatone/go-formspec/pkg/render"
	"github.com/goliatone/go-formspec/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formspec/pkg/renderers/vanilla"
)

func contactForm(t *testing.T) model.FormModel {
	t.Helper()
	form, err := model.NewBuilder().Build(definition.Form{
		ID:     "contact",
		Title:  "Contact us",
		Action: "/contact",
		Fields: []definition.Field{
			{Name: "full_name", Spec: "text required label('Full name')"},
			{Name: "topic", Spec: "select('sales', 'support') label('Topic')", Hints: map[string]string{"cssClass": "wide formspec-hijack"}},
			{Name: "message", Spec: "textarea description('<b>Tell</b> us more')"},
			{Name: "newsletter", Spec: "checkbox default('true') label('Newsletter')"},
			{Name: "secret", Spec: "password label('Secret')"},
		},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return form
}

func newRenderer(t *testing.T, options ...vanilla.Option) *vanilla.Renderer {
	t.Helper()
	renderer, err := vanilla.New(options...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return renderer
}

func renderString(t *testing.T, renderer *vanilla.Renderer, form model.FormModel, options render.RenderOptions) string {
	t.Helper()
	output, err := renderer.Render(context.Background(), form, options)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(output)
}

func assertContains(t *testing.T, output string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(output, fragment) {
			t.Fatalf("expected output to contain %q\n%s", fragment, output)
		}
	}
}

func assertNotContains(t *testing.T, output string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if strings.Contains(output, fragment) {
			t.Fatalf("expected output not to contain %q\n%s", fragment, output)
		}
	}
}

func TestRendererDispatchesEveryComponent(t *testing.T) {
	output := renderString(t, newRenderer(t), contactForm(t), render.RenderOptions{
		Values: map[string]any{"topic": "support"},
	})

	assertContains(t, output,
		`<form id="fs-contact" class="formspec-form" method="post" action="/contact"`,
		`<h2>Contact us</h2>`,
		`<input type="text" id="fs-contact-full_name" name="full_name" value="" class="formspec-input" required>`,
		`<label for="fs-contact-full_name">Full name <span class="formspec-required">*</span></label>`,
		`<option value="support" selected>support</option>`,
		`<option value="sales">sales</option>`,
		`<textarea id="fs-contact-message" name="message" rows="4" class="formspec-textarea"></textarea>`,
		`<small class="formspec-description">Tell us more</small>`,
		`<input type="checkbox" id="fs-contact-newsletter" name="newsletter" value="true" class="formspec-checkbox" checked>`,
		`Not Found Field`,
		`data-component="not_found"`,
		`class="formspec-field wide"`,
		`<button type="submit">Submit</button>`,
	)
	assertNotContains(t, output, "formspec-hijack", "<b>")
}

func TestRendererPrefillsValues(t *testing.T) {
	output := renderString(t, newRenderer(t), contactForm(t), render.RenderOptions{
		Values: map[string]any{
			"full_name":  `Ada "The Countess"`,
			"message":    "Hello",
			"newsletter": "off",
		},
	})

	assertContains(t, output,
		`value="Ada &quot;The Countess&quot;"`,
		`class="formspec-textarea">Hello</textarea>`,
		`<input type="checkbox" id="fs-contact-newsletter" name="newsletter" value="true" class="formspec-checkbox">`,
	)
}

func TestRendererShowsErrorsOnlyForTouchedFields(t *testing.T) {
	form := contactForm(t)
	errors := map[string][]string{
		"full_name":         {"Full name is required"},
		"unknown":           {"Something went wrong"},
		render.FormErrorKey: {"Please try again"},
	}

	untouched := renderString(t, newRenderer(t), form, render.RenderOptions{
		Errors:  errors,
		Touched: map[string]bool{"topic": true},
	})
	assertContains(t, untouched, `<li>Please try again</li>`, `<li>Something went wrong</li>`)
	assertNotContains(t, untouched, "Full name is required", `aria-invalid`)

	submitted := renderString(t, newRenderer(t), form, render.RenderOptions{Errors: errors})
	assertContains(t, submitted,
		`<div class="formspec-error" id="fs-contact-full_name-error">Full name is required</div>`,
		`aria-invalid="true" aria-describedby="fs-contact-full_name-error"`,
		`formspec-field--invalid`,
	)
}

func TestRendererHiddenFieldsAndMethodOverride(t *testing.T) {
	form := contactForm(t)
	form.Method = "PUT"

	output := renderString(t, newRenderer(t), form, render.RenderOptions{
		Hidden: render.MergeHiddenFields(nil, render.CSRFToken("_csrf", "token123")),
	})
	assertContains(t, output,
		`method="post"`,
		`<input type="hidden" name="_csrf" value="token123">`,
		`<input type="hidden" name="_method" value="PUT">`,
	)
}

func TestRendererSanitisesLabels(t *testing.T) {
	form, err := model.NewBuilder().Build(definition.Form{
		ID:     "f",
		Fields: []definition.Field{{Name: "name", Spec: "text label('<script>x</script>Name & Co')"}},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	output := renderString(t, newRenderer(t), form, render.RenderOptions{})
	assertNotContains(t, output, "<script>")
	assertContains(t, output, "Name &amp; Co")
}

func TestRendererKeepsAngleBracketsInText(t *testing.T) {
	form, err := model.NewBuilder().Build(definition.Form{
		ID: "f",
		Fields: []definition.Field{
			{Name: "cmp", Spec: "select('a<b', 'c') default('a<b') label('x<y') description('1 < 2 & 3')"},
		},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	output := renderString(t, newRenderer(t), form, render.RenderOptions{})

	assertContains(t, output,
		`<option value="a&lt;b" selected>a&lt;b</option>`,
		`<option value="c">c</option>`,
		`<label for="fs-f-cmp">x&lt;y</label>`,
		`<small class="formspec-description">1 &lt; 2 &amp; 3</small>`,
	)
	assertNotContains(t, output, `>a</option>`, `>x</label>`)
}

func TestRendererAppliesTheme(t *testing.T) {
	files := fstest.MapFS{
		"themes/acme/text.tmpl": {Data: []byte(`<input class="acme-input" name="{{ field.Name }}">`)},
	}
	if err := fs.WalkDir(vanilla.TemplatesFS(), ".", func(path string, entry fs.DirEntry, err error) error {
		if err != nil || entry.IsDir() {
			return err
		}
		data, err := fs.ReadFile(vanilla.TemplatesFS(), path)
		if err != nil {
			return err
		}
		files[path] = &fstest.MapFile{Data: data}
		return nil
	}); err != nil {
		t.Fatalf("copy templates: %v", err)
	}

	engine, err := gotemplate.New(gotemplate.WithFS(files))
	if err != nil {
		t.Fatalf("engine: %v", err)
	}

	output := renderString(t, newRenderer(t, vanilla.WithTemplateRenderer(engine), vanilla.WithSubmitLabel("Send")), contactForm(t), render.RenderOptions{
		Theme: &theme.RendererConfig{
			Theme:    "acme",
			Variant:  "light",
			Partials: map[string]string{"forms.text": "themes/acme/text.tmpl"},
			CSSVars:  map[string]string{"--brand": "#123456"},
			AssetURL: func(key string) string { return "/assets/acme/" + key + ".css" },
		},
	})

	assertContains(t, output,
		`<input class="acme-input" name="full_name">`,
		`style="--brand: #123456"`,
		`<link rel="stylesheet" href="/assets/acme/vanilla.stylesheet.css">`,
		`<button type="submit">Send</button>`,
	)
}

func TestRendererInlineStyles(t *testing.T) {
	output := renderString(t, newRenderer(t, vanilla.WithInlineStyles(true), vanilla.WithFormClass("compact")), contactForm(t), render.RenderOptions{})
	assertContains(t, output, "<style>", ".formspec-field {", `class="compact"`)

	data, err := fs.ReadFile(vanilla.AssetsFS(), vanilla.StylesheetName)
	if err != nil || len(data) == 0 {
		t.Fatalf("expected embedded stylesheet, err=%v", err)
	}
}

func TestRendererHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := newRenderer(t).Render(ctx, contactForm(t), render.RenderOptions{}); err == nil {
		t.Fatalf("expected context error")
	}
}
