package model

import (
	"fmt"
	"strings"

	pkgwms "github.com/goliatone/go-mapgen/pkg/wms"
)

// DefaultFormat is the image format used when a selection does not pick one.
const DefaultFormat = "image/png"

// DefaultView is the fallback camera used when no bounding box is available:
// the Rotterdam city view every empty map opens on.
var DefaultView = View{Lat: 51.922408, Lon: 4.4695292, Zoom: 13}

// DefaultBaseLayer is the OpenStreetMap standard tile source.
var DefaultBaseLayer = BaseLayer{
	Name:        "OpenStreetMap",
	URL:         "https://tile.openstreetmap.org/{z}/{x}/{y}.png",
	Attribution: "&copy; OpenStreetMap contributors",
	MaxZoom:     19,
}

// Selection describes which parts of a capabilities document should end up on
// the map.
type Selection struct {
	// Layers lists the named layers to compose, in display order.
	Layers []string

	// Format is the GetMap image format; DefaultFormat when empty.
	Format string

	// Opaque disables overlay transparency. Most WMS overlays sit on a base
	// map, so transparency is the default.
	Opaque bool

	// Opacity in (0,1]; 1 when zero.
	Opacity float64

	// Title overrides the derived map title.
	Title string
}

// Options configures the builder.
type Options struct {
	// View replaces the package default fallback view.
	View *View

	// BaseLayer replaces the default OpenStreetMap base layer.
	BaseLayer *BaseLayer

	// Controls replaces the default control set (layer control + scale).
	Controls *Controls
}

// Builder converts capability documents plus a layer selection into map
// models.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	return &Builder{opts: options}
}

// Build assembles a MapModel for the selection. Unknown layer names are an
// error; an empty selection produces a base map with a warning so wizard
// front-ends can show progress before any layer is picked.
func (b *Builder) Build(caps pkgwms.Capabilities, sel Selection) (MapModel, error) {
	if err := caps.Validate(); err != nil {
		return MapModel{}, err
	}

	format := strings.TrimSpace(sel.Format)
	if format == "" {
		format = DefaultFormat
	}
	if !caps.SupportsFormat(format) {
		return MapModel{}, fmt.Errorf("model: service does not advertise format %q", format)
	}

	out := MapModel{
		Title:       b.title(caps, sel),
		Description: caps.Service.Abstract,
		View:        b.fallbackView(),
		BaseLayer:   b.baseLayer(),
		Controls:    b.controls(),
		Metadata: map[string]string{
			"serviceTitle": caps.Service.Title,
			"wmsVersion":   caps.Version,
		},
	}

	if len(sel.Layers) == 0 {
		out.Warnings = append(out.Warnings, "no layers selected; showing base map only")
		return out, nil
	}

	overlay, bbox, err := buildOverlay(caps, sel, format)
	if err != nil {
		return MapModel{}, err
	}
	out.Overlays = append(out.Overlays, overlay)

	if bbox.Valid() {
		out.View = viewForBox(bbox)
	}

	return out, nil
}

func buildOverlay(caps pkgwms.Capabilities, sel Selection, format string) (Overlay, pkgwms.BoundingBox, error) {
	overlay := Overlay{
		Name:        overlayName(caps),
		Title:       caps.Service.Title,
		URL:         caps.MapURL(),
		Format:      format,
		Version:     caps.Version,
		Transparent: !sel.Opaque,
		Opacity:     sel.Opacity,
		Attribution: caps.Service.Title,
	}
	if overlay.Opacity <= 0 || overlay.Opacity > 1 {
		overlay.Opacity = 1
	}

	var bbox pkgwms.BoundingBox
	for _, name := range sel.Layers {
		layer, ok := caps.FindLayer(name)
		if !ok {
			return Overlay{}, pkgwms.BoundingBox{}, fmt.Errorf("model: %w: %q", pkgwms.ErrUnknownLayer, name)
		}
		overlay.Layers = append(overlay.Layers, layer.Name)
		if layer.BoundingBox != nil {
			bbox = bbox.Union(*layer.BoundingBox)
		}
		for _, style := range layer.Styles {
			if style.LegendURL != "" {
				overlay.Legends = append(overlay.Legends, Legend{Layer: layer.Name, URL: style.LegendURL})
			}
		}
	}

	return overlay, bbox, nil
}

func overlayName(caps pkgwms.Capabilities) string {
	if title := strings.TrimSpace(caps.Service.Title); title != "" {
		return title
	}
	return "WMS overlay"
}

func (b *Builder) title(caps pkgwms.Capabilities, sel Selection) string {
	if title := strings.TrimSpace(sel.Title); title != "" {
		return title
	}
	if title := strings.TrimSpace(caps.Service.Title); title != "" {
		return title
	}
	return "Map"
}

func (b *Builder) fallbackView() View {
	if b.opts.View != nil {
		return *b.opts.View
	}
	return DefaultView
}

func (b *Builder) baseLayer() BaseLayer {
	if b.opts.BaseLayer != nil {
		return *b.opts.BaseLayer
	}
	return DefaultBaseLayer
}

func (b *Builder) controls() Controls {
	if b.opts.Controls != nil {
		return *b.opts.Controls
	}
	return Controls{LayerControl: true, Scale: true}
}
