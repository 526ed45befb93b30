package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-mapgen/pkg/model"
)

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the model pipeline.
type RenderOptions struct {
	// Title overrides the model title for this render only.
	Title string

	// View overrides the initial camera (a wizard step that remembers where
	// the user left the map passes it here).
	View *model.View

	// Theme carries the resolved go-theme configuration: tokens become CSS
	// variables on the page shell, assets resolve through AssetURL.
	Theme *theme.RendererConfig

	// Warnings are extra messages surfaced on the rendered output alongside
	// the model's own warnings.
	Warnings []string
}
