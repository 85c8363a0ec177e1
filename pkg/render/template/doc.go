// Package template defines the template engine seam used by the HTML
// renderers. The gotemplate subpackage provides a pongo2-backed engine.
package template
