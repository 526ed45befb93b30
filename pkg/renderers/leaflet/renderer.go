package leaflet

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-mapgen/pkg/model"
	"github.com/goliatone/go-mapgen/pkg/render"
	rendertemplate "github.com/goliatone/go-mapgen/pkg/render/template"
	gotemplate "github.com/goliatone/go-mapgen/pkg/render/template/gotemplate"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	leafletBase      string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithLeafletBase overrides the CDN base the page loads Leaflet from, for
// deployments that self-host the assets.
func WithLeafletBase(base string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimRight(strings.TrimSpace(base), "/"); trimmed != "" {
			cfg.leafletBase = trimmed
		}
	}
}

const defaultLeafletBase = "https://unpkg.com"

// Renderer emits a self-contained HTML page that composes the map with
// Leaflet. All remote text (titles, abstracts, attributions) is sanitised
// before it reaches the page.
type Renderer struct {
	templates   rendertemplate.TemplateRenderer
	sanitizer   *bluemonday.Policy
	leafletBase string
}

// New constructs the leaflet renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS:  TemplatesFS(),
		leafletBase: defaultLeafletBase,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("leaflet renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:   renderer,
		sanitizer:   bluemonday.StrictPolicy(),
		leafletBase: cfg.leafletBase,
	}, nil
}

func (r *Renderer) Name() string {
	return "leaflet"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render executes the map template against a sanitised view of the model.
func (r *Renderer) Render(ctx context.Context, m model.MapModel, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("leaflet renderer: template renderer is nil")
	}

	result, err := r.templates.RenderTemplate("templates/map.tmpl", r.templateContext(m, options))
	if err != nil {
		return nil, fmt.Errorf("leaflet renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) templateContext(m model.MapModel, options render.RenderOptions) map[string]any {
	title := m.Title
	if options.Title != "" {
		title = options.Title
	}

	view := m.View
	if options.View != nil {
		view = *options.View
	}

	warnings := make([]string, 0, len(m.Warnings)+len(options.Warnings))
	for _, warning := range append(append([]string(nil), m.Warnings...), options.Warnings...) {
		if clean := r.clean(warning); clean != "" {
			warnings = append(warnings, clean)
		}
	}

	overlays := make([]map[string]any, 0, len(m.Overlays))
	for _, overlay := range m.Overlays {
		legends := make([]map[string]any, 0, len(overlay.Legends))
		for _, legend := range overlay.Legends {
			legends = append(legends, map[string]any{
				"layer": r.clean(legend.Layer),
				"url":   legend.URL,
			})
		}
		overlays = append(overlays, map[string]any{
			"name":        r.clean(overlay.Name),
			"url":         overlay.URL,
			"layers":      strings.Join(overlay.Layers, ","),
			"format":      overlay.Format,
			"version":     overlay.Version,
			"transparent": overlay.Transparent,
			"opacity":     overlay.Opacity,
			"attribution": r.clean(overlay.Attribution),
			"legends":     legends,
		})
	}

	ctx := map[string]any{
		"title":       r.clean(title),
		"description": r.clean(m.Description),
		"leafletBase": r.leafletBase,
		"view": map[string]any{
			"lat":  view.Lat,
			"lon":  view.Lon,
			"zoom": view.Zoom,
		},
		"base": map[string]any{
			"name":        r.clean(m.BaseLayer.Name),
			"url":         m.BaseLayer.URL,
			"attribution": r.clean(m.BaseLayer.Attribution),
			"maxZoom":     baseMaxZoom(m.BaseLayer),
		},
		"overlays": overlays,
		"controls": map[string]any{
			"layerControl": m.Controls.LayerControl,
			"draw":         m.Controls.Draw,
			"scale":        m.Controls.Scale,
		},
		"warnings": warnings,
	}

	if options.Theme != nil {
		ctx["theme_css"] = themeCSS(options.Theme.CSSVars)
	}

	return ctx
}

// clean strips markup from remote text while keeping character entities
// (attribution strings lean on &copy;).
func (r *Renderer) clean(raw string) string {
	return strings.TrimSpace(r.sanitizer.Sanitize(raw))
}

func baseMaxZoom(base model.BaseLayer) int {
	if base.MaxZoom > 0 {
		return base.MaxZoom
	}
	return 19
}
