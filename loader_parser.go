package formspec

import (
	"context"
	"fmt"

	internalLoader "github.com/goliatone/go-formspec/internal/openapi/loader"
	internalParser "github.com/goliatone/go-formspec/internal/openapi/parser"
	"github.com/goliatone/go-formspec/pkg/definition"
	pkgopenapi "github.com/goliatone/go-formspec/pkg/openapi"
)

// NewLoader constructs an OpenAPI loader using the internal implementation
// while keeping the concrete type hidden from consumers.
func NewLoader(options ...pkgopenapi.LoaderOption) pkgopenapi.Loader {
	return internalLoader.New(pkgopenapi.NewLoaderOptions(options...))
}

// NewParser constructs an OpenAPI parser backed by kin-openapi.
func NewParser(options ...pkgopenapi.ParserOption) pkgopenapi.Parser {
	return internalParser.New(pkgopenapi.NewParserOptions(options...))
}

// ImportOpenAPI loads src and converts every operation with a request body
// into a form definition.
func ImportOpenAPI(ctx context.Context, loader pkgopenapi.Loader, parser pkgopenapi.Parser, src pkgopenapi.Source) ([]definition.Form, error) {
	if loader == nil {
		loader = NewLoader()
	}
	if parser == nil {
		parser = NewParser()
	}
	doc, err := loader.Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("formspec: load %s: %w", src.Location(), err)
	}
	operations, err := parser.Operations(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("formspec: parse %s: %w", src.Location(), err)
	}
	return pkgopenapi.Forms(doc, operations), nil
}
