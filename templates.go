package mapgen

import (
	"io/fs"

	leaflet "github.com/goliatone/go-mapgen/pkg/renderers/leaflet"
)

// EmbeddedTemplates exposes the built-in Leaflet renderer templates so
// callers can reuse or extend them without importing the renderer
// package directly.
func EmbeddedTemplates() fs.FS {
	return leaflet.TemplatesFS()
}
