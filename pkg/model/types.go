package model

import internalmodel "github.com/goliatone/go-mapgen/internal/model"

type View = internalmodel.View
type BaseLayer = internalmodel.BaseLayer
type Overlay = internalmodel.Overlay
type Legend = internalmodel.Legend
type Controls = internalmodel.Controls
type MapModel = internalmodel.MapModel
type Selection = internalmodel.Selection

// DefaultFormat re-exports the builder's fallback image format.
const DefaultFormat = internalmodel.DefaultFormat

// DefaultView returns the fallback camera used when no bounding box is
// available.
func DefaultView() View {
	return internalmodel.DefaultView
}

// DefaultBaseLayer returns the OpenStreetMap base layer used when no preset
// overrides it.
func DefaultBaseLayer() BaseLayer {
	return internalmodel.DefaultBaseLayer
}
