package formspec

import (
	"io/fs"

	vanilla "github.com/goliatone/go-formspec/pkg/renderers/vanilla"
)

// EmbeddedTemplates exposes the built-in vanilla renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// EmbeddedAssets exposes the vanilla stylesheet for serving over HTTP:
//
//	mux.Handle("/assets/", http.StripPrefix("/assets/", http.FileServerFS(formspec.EmbeddedAssets())))
func EmbeddedAssets() fs.FS {
	return vanilla.AssetsFS()
}
