package preset

import (
	"fmt"

	"github.com/goliatone/go-mapgen/pkg/model"
)

// Decorator applies a named preset to a map model. It implements
// model.Decorator.
type Decorator struct {
	store     *Store
	preset    string
	baseLayer string
}

// DecoratorOption customises decorator construction.
type DecoratorOption func(*Decorator)

// WithBaseLayer selects a base layer from the preset by name instead
// of the preset's default.
func WithBaseLayer(name string) DecoratorOption {
	return func(d *Decorator) {
		d.baseLayer = name
	}
}

// NewDecorator builds a Decorator backed by the provided store. When
// store is nil or empty, or the named preset is absent, the decorator
// becomes a no-op.
func NewDecorator(store *Store, preset string, opts ...DecoratorOption) *Decorator {
	d := &Decorator{store: store, preset: preset}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Decorate overlays preset defaults onto the supplied map model. The
// preset view only replaces the model's view when no overlay supplied
// one; a builder-derived view from real bounding boxes always wins.
func (d *Decorator) Decorate(m *model.MapModel) error {
	if d == nil || d.store == nil || d.store.Empty() || m == nil {
		return nil
	}

	p, ok := d.store.Preset(d.preset)
	if !ok {
		return nil
	}

	if d.baseLayer != "" {
		layer, found := p.FindBaseLayer(d.baseLayer)
		if !found {
			return fmt.Errorf("preset: %q has no base layer %q", p.Name, d.baseLayer)
		}
		m.BaseLayer = toModelBaseLayer(layer)
	} else if layer, found := p.DefaultBaseLayer(); found {
		m.BaseLayer = toModelBaseLayer(layer)
	}

	if p.View != nil && len(m.Overlays) == 0 {
		m.View = model.View{Lat: p.View.Lat, Lon: p.View.Lon, Zoom: p.View.Zoom}
	}

	if len(p.Metadata) > 0 {
		if m.Metadata == nil {
			m.Metadata = make(map[string]string, len(p.Metadata))
		}
		for k, v := range p.Metadata {
			if _, exists := m.Metadata[k]; !exists {
				m.Metadata[k] = v
			}
		}
	}

	return nil
}

func toModelBaseLayer(layer BaseLayer) model.BaseLayer {
	return model.BaseLayer{
		Name:        layer.Name,
		URL:         layer.URL,
		Attribution: layer.Attribution,
		MaxZoom:     layer.MaxZoom,
	}
}
