package leaflet

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the built-in Leaflet templates so callers can reuse or
// extend them.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
