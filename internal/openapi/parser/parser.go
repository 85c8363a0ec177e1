package parser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-formspec/pkg/openapi"
)

// Parser implements pkgopenapi.Parser using kin-openapi.
type Parser struct {
	options pkgopenapi.ParserOptions
}

var _ pkgopenapi.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options pkgopenapi.ParserOptions) *Parser {
	return &Parser{options: options}
}

// formMediaTypes lists request body content types in order of preference.
var formMediaTypes = []string{
	"application/x-www-form-urlencoded",
	"multipart/form-data",
	"application/json",
}

// Operations converts a Document into a map keyed by operationId. Operations
// without an id are keyed by "<method>:<path>".
func (p *Parser) Operations(ctx context.Context, doc pkgopenapi.Document) (map[string]pkgopenapi.Operation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi parser: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: load document: %w", err)
	}
	if p.options.Validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi parser: validate: %w", err)
		}
	}

	operations := make(map[string]pkgopenapi.Operation)
	if spec.Paths == nil {
		return operations, nil
	}
	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		collect(operations, http.MethodGet, path, item.Get)
		collect(operations, http.MethodPut, path, item.Put)
		collect(operations, http.MethodPost, path, item.Post)
		collect(operations, http.MethodDelete, path, item.Delete)
		collect(operations, http.MethodPatch, path, item.Patch)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return operations, nil
}

func collect(target map[string]pkgopenapi.Operation, method, path string, operation *openapi3.Operation) {
	if operation == nil {
		return
	}
	id := strings.TrimSpace(operation.OperationID)
	if id == "" {
		id = strings.ToLower(method) + ":" + path
	}
	target[id] = pkgopenapi.Operation{
		ID:          id,
		Method:      method,
		Path:        path,
		Summary:     operation.Summary,
		Description: operation.Description,
		RequestBody: requestSchema(operation.RequestBody),
	}
}

func requestSchema(body *openapi3.RequestBodyRef) pkgopenapi.Schema {
	if body == nil || body.Value == nil {
		return pkgopenapi.Schema{}
	}
	content := body.Value.Content
	for _, mediaType := range formMediaTypes {
		if mt, ok := content[mediaType]; ok && mt != nil {
			return convertSchema(mt.Schema, true)
		}
	}
	return pkgopenapi.Schema{}
}

// convertSchema maps a kin-openapi schema. Properties are only expanded for
// the top-level body; nested objects become a single field.
func convertSchema(ref *openapi3.SchemaRef, expand bool) pkgopenapi.Schema {
	if ref == nil || ref.Value == nil {
		return pkgopenapi.Schema{}
	}
	src := ref.Value
	schema := pkgopenapi.Schema{
		Type:        firstSchemaType(src.Type),
		Format:      src.Format,
		Title:       src.Title,
		Description: src.Description,
		Default:     src.Default,
		Extensions:  extractExtensions(src.Extensions),
	}
	if len(src.Required) > 0 {
		schema.Required = append([]string(nil), src.Required...)
	}
	if len(src.Enum) > 0 {
		schema.Enum = append([]any(nil), src.Enum...)
	}
	if src.MaxLength != nil {
		value := int(*src.MaxLength)
		schema.MaxLength = &value
	}
	if expand && len(src.Properties) > 0 {
		schema.Properties = make(map[string]pkgopenapi.Schema, len(src.Properties))
		for name, property := range src.Properties {
			schema.Properties[name] = convertSchema(property, false)
		}
	}
	return schema
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	for _, value := range types.Slice() {
		if value != "null" {
			return value
		}
	}
	return ""
}

// extractExtensions keeps the extensions read by form conversion.
func extractExtensions(raw map[string]any) map[string]any {
	result := make(map[string]any)
	for _, key := range []string{pkgopenapi.SpecExtension, pkgopenapi.OrderExtension} {
		value, ok := raw[key]
		if !ok {
			continue
		}
		if encoded, isRaw := value.(json.RawMessage); isRaw {
			var decoded any
			if err := json.Unmarshal(encoded, &decoded); err != nil {
				continue
			}
			value = decoded
		}
		result[key] = value
	}
	if len(result) == 0 {
		return nil
	}
	return result
}
