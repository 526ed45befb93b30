package mapgen

import (
	"context"

	"github.com/goliatone/go-mapgen/pkg/orchestrator"
	"github.com/goliatone/go-mapgen/pkg/render"
	pkgwms "github.com/goliatone/go-mapgen/pkg/wms"
)

// RenderOptions describes per-request overrides that renderers can use
// to retitle the page or re-centre the map.
type RenderOptions = render.RenderOptions

// Request re-exports the orchestrator request so callers composing maps
// only need the root import.
type Request = orchestrator.Request

// NewOrchestrator exposes the orchestrator constructor from the
// top-level module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML fetches the WMS capabilities behind source, composes a
// map with the selected layers, and renders it with the default Leaflet
// renderer. It is the simplest entry point for callers that just want
// an HTML page.
func GenerateHTML(ctx context.Context, source pkgwms.Source, layers []string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Source: source,
		Layers: layers,
	})
}

// GenerateHTMLFromCapabilities renders a map from a pre-parsed
// capabilities document, bypassing the loader and parser stages.
func GenerateHTMLFromCapabilities(ctx context.Context, caps pkgwms.Capabilities, layers []string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Capabilities: &caps,
		Layers:       layers,
	})
}

// WithThemeSelector passes a go-theme selector through to the
// orchestrator so theme/variant choices can be resolved ahead of
// rendering.
func WithThemeSelector(selector orchestrator.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}
