// Package openapi exposes the contracts for importing form definitions from
// OpenAPI documents: sources, loaders, parsers and the conversion from request
// bodies to field specifications. The kin-openapi backed implementations live
// under internal/openapi and are constructed by the root formspec package.
package openapi
