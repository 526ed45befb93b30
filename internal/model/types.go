package model

// View pins the initial camera of a map: centre in WGS84 degrees plus a
// Leaflet zoom level.
type View struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Zoom int     `json:"zoom"`
}

// BaseLayer is the background tile source underneath WMS overlays.
type BaseLayer struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Attribution string `json:"attribution,omitempty"`
	MaxZoom     int    `json:"maxZoom,omitempty"`
}

// Legend points at a legend graphic advertised for an overlay layer.
type Legend struct {
	Layer string `json:"layer"`
	URL   string `json:"url"`
}

// Overlay is a WMS tile layer composed onto the map. One overlay carries the
// full layer selection for a service, matching how tile requests batch
// multiple layer names into a single LAYERS parameter.
type Overlay struct {
	Name        string   `json:"name"`
	Title       string   `json:"title,omitempty"`
	URL         string   `json:"url"`
	Layers      []string `json:"layers"`
	Format      string   `json:"format"`
	Version     string   `json:"version"`
	Transparent bool     `json:"transparent"`
	Opacity     float64  `json:"opacity,omitempty"`
	Attribution string   `json:"attribution,omitempty"`
	Legends     []Legend `json:"legends,omitempty"`
}

// Controls toggles the interactive widgets rendered on the page.
type Controls struct {
	LayerControl bool `json:"layerControl"`
	Draw         bool `json:"draw"`
	Scale        bool `json:"scale"`
}

// MapModel is the top-level representation renderers consume.
type MapModel struct {
	Title       string            `json:"title,omitempty"`
	Description string            `json:"description,omitempty"`
	View        View              `json:"view"`
	BaseLayer   BaseLayer         `json:"baseLayer"`
	Overlays    []Overlay         `json:"overlays,omitempty"`
	Controls    Controls          `json:"controls"`
	Warnings    []string          `json:"warnings,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}
