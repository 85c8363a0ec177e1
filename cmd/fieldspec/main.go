package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goliatone/go-formspec"
	"github.com/goliatone/go-formspec/pkg/definition"
	"github.com/goliatone/go-formspec/pkg/model"
	pkgopenapi "github.com/goliatone/go-formspec/pkg/openapi"
	"github.com/goliatone/go-formspec/pkg/orchestrator"
	"github.com/goliatone/go-formspec/pkg/render"
	"github.com/goliatone/go-formspec/pkg/renderers/payload"
	"github.com/goliatone/go-formspec/pkg/renderers/tui"
	"github.com/goliatone/go-formspec/pkg/renderers/vanilla"
	"github.com/goliatone/go-formspec/pkg/store"
	"github.com/goliatone/go-formspec/pkg/validation"
)

const usage = `Usage: fieldspec <command> [flags]

Commands:
  parse   print the metadata and diagnostics of one or more field specs
  render  render a form as HTML or through terminal prompts
  import  store form definitions or OpenAPI operations in SQLite
  check   list field diagnostics, exiting non-zero when any are found
`

func main() {
	log.SetFlags(0)
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx := context.Background()
	args := os.Args[2:]

	var err error
	switch os.Args[1] {
	case "parse":
		err = runParse(args)
	case "render":
		err = runRender(ctx, args)
	case "import":
		err = runImport(ctx, args)
	case "check":
		err = runCheck(ctx, args)
	case "-h", "--help", "help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("fieldspec %s: %v", os.Args[1], err)
	}
}

type parseResult struct {
	Spec        string                 `json:"spec"`
	Metadata    formspec.FieldMetadata `json:"metadata"`
	Diagnostics []formspec.Diagnostic  `json:"diagnostics,omitempty"`
}

func runParse(args []string) error {
	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() == 0 {
		return fmt.Errorf("at least one specification is required")
	}

	results := make([]parseResult, 0, fs.NArg())
	for _, spec := range fs.Args() {
		meta, diags := formspec.Parse(spec)
		results = append(results, parseResult{Spec: spec, Metadata: meta, Diagnostics: diags})
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

// sourceFlags selects where form definitions come from.
type sourceFlags struct {
	forms   string
	db      string
	openapi string
}

func (s *sourceFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&s.forms, "forms", "", "definition file or directory (JSON/YAML)")
	fs.StringVar(&s.db, "db", "", "SQLite database holding imported forms")
	fs.StringVar(&s.openapi, "openapi", "", "OpenAPI document path or URL")
}

func (s sourceFlags) open(ctx context.Context) (orchestrator.DefinitionSource, []string, func(), error) {
	noop := func() {}
	switch {
	case s.db != "":
		db, err := store.Open(s.db)
		if err != nil {
			return nil, nil, noop, err
		}
		ids, err := db.List(ctx)
		if err != nil {
			_ = db.Close()
			return nil, nil, noop, err
		}
		return db, ids, func() { _ = db.Close() }, nil
	case s.forms != "":
		defs, err := loadDefinitions(s.forms)
		if err != nil {
			return nil, nil, noop, err
		}
		return defs, defs.IDs(), noop, nil
	case s.openapi != "":
		forms, err := importOpenAPI(ctx, s.openapi)
		if err != nil {
			return nil, nil, noop, err
		}
		defs, err := definition.NewStore(forms...)
		if err != nil {
			return nil, nil, noop, err
		}
		return defs, defs.IDs(), noop, nil
	default:
		return nil, nil, noop, fmt.Errorf("one of -forms, -db or -openapi is required")
	}
}

func loadDefinitions(path string) (*definition.Store, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return definition.LoadFS(os.DirFS(path))
	}
	return definition.LoadFile(path)
}

func importOpenAPI(ctx context.Context, location string) ([]definition.Form, error) {
	src, err := pkgopenapi.ParseSource(location)
	if err != nil {
		return nil, err
	}
	loader := formspec.NewLoader(pkgopenapi.WithHTTPFallback(30 * time.Second))
	return formspec.ImportOpenAPI(ctx, loader, formspec.NewParser(), src)
}

func runRender(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	var sources sourceFlags
	sources.register(fs)
	formID := fs.String("form", "", "form id to render (defaults to the only form)")
	rendererName := fs.String("renderer", "vanilla", "renderer to use: vanilla, tui or json")
	output := fs.String("output", "", "output file (stdout if empty)")
	inlineStyles := fs.Bool("inline-styles", false, "embed the default stylesheet in the HTML")
	format := fs.String("format", string(tui.OutputFormatJSON), "tui output format: json, form or pretty")
	fs.Parse(args)

	source, ids, closeSource, err := sources.open(ctx)
	if err != nil {
		return err
	}
	defer closeSource()

	id := *formID
	if id == "" {
		if len(ids) != 1 {
			return fmt.Errorf("-form is required when %d forms are available", len(ids))
		}
		id = ids[0]
	}

	html, err := vanilla.New(vanilla.WithInlineStyles(*inlineStyles))
	if err != nil {
		return err
	}
	terminal, err := tui.New(tui.WithOutputFormat(tui.OutputFormat(*format)))
	if err != nil {
		return err
	}
	registry, err := render.NewRegistry(html, terminal, payload.New(payload.WithIndent("  "), payload.WithDiagnostics(true)))
	if err != nil {
		return err
	}

	out, err := formspec.NewOrchestrator(
		orchestrator.WithDefinitions(source),
		orchestrator.WithRegistry(registry),
	).Generate(ctx, orchestrator.Request{FormID: id, Renderer: *rendererName})
	if err != nil {
		return err
	}

	if *output != "" {
		if err := os.WriteFile(*output, out, 0o644); err != nil {
			return err
		}
		fmt.Printf("Form written to %s\n", *output)
		return nil
	}
	fmt.Println(string(out))
	return nil
}

func runImport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	forms := fs.String("forms", "", "definition file or directory (JSON/YAML)")
	openapi := fs.String("openapi", "", "OpenAPI document path or URL")
	db := fs.String("db", "", "SQLite database to write to")
	yamlOut := fs.String("yaml", "", "write the imported forms as a definition document instead")
	fs.Parse(args)

	var imported []definition.Form
	switch {
	case *forms != "":
		defs, err := loadDefinitions(*forms)
		if err != nil {
			return err
		}
		for _, id := range defs.IDs() {
			form, _ := defs.Form(id)
			imported = append(imported, form)
		}
	case *openapi != "":
		var err error
		if imported, err = importOpenAPI(ctx, *openapi); err != nil {
			return err
		}
	default:
		return fmt.Errorf("one of -forms or -openapi is required")
	}

	if *yamlOut != "" {
		data, err := definition.EncodeYAML(imported...)
		if err != nil {
			return err
		}
		if err := os.WriteFile(*yamlOut, data, 0o644); err != nil {
			return err
		}
		fmt.Printf("%d forms written to %s\n", len(imported), *yamlOut)
		return nil
	}

	if *db == "" {
		return fmt.Errorf("-db or -yaml is required")
	}
	target, err := store.Open(*db)
	if err != nil {
		return err
	}
	defer target.Close()
	for _, form := range imported {
		if err := target.Save(ctx, form); err != nil {
			return err
		}
		fmt.Printf("imported %s (%d fields)\n", form.ID, len(form.Fields))
	}
	return nil
}

func runCheck(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	var sources sourceFlags
	sources.register(fs)
	fs.Parse(args)

	source, ids, closeSource, err := sources.open(ctx)
	if err != nil {
		return err
	}
	defer closeSource()

	builder := model.NewBuilder()
	count := 0
	for _, id := range ids {
		def, err := source.Definition(ctx, id)
		if err != nil {
			return err
		}
		form, err := builder.Build(def)
		if err != nil {
			return err
		}
		for _, issue := range validation.Diagnostics(form).Issues {
			count++
			fmt.Fprintf(os.Stderr, "%s: %s.%s: %s\n", displaySource(def.Source), id, issue.Field, issue.Message)
		}
	}
	if count > 0 {
		closeSource()
		log.Fatalf("%d diagnostics", count)
	}
	fmt.Printf("%d forms ok\n", len(ids))
	return nil
}

func displaySource(source string) string {
	if strings.TrimSpace(source) == "" {
		return "-"
	}
	return filepath.ToSlash(source)
}
