// Package template defines the template-engine seam renderers rely on. The
// gotemplate subpackage provides the default implementation backed by
// github.com/goliatone/go-template's pongo2 engine.
package template
