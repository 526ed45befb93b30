package preset

// View is a preset camera position.
type View struct {
	Lat  float64 `json:"lat" yaml:"lat"`
	Lon  float64 `json:"lon" yaml:"lon"`
	Zoom int     `json:"zoom" yaml:"zoom"`
}

// BaseLayer describes a tile layer the map can sit on.
type BaseLayer struct {
	Name        string `json:"name" yaml:"name"`
	URL         string `json:"url" yaml:"url"`
	Attribution string `json:"attribution" yaml:"attribution"`
	MaxZoom     int    `json:"maxZoom" yaml:"maxZoom"`
	Default     bool   `json:"default" yaml:"default"`
}

// Sample points at a known-good WMS endpoint, handy for demos and for
// pre-filling wizard prompts.
type Sample struct {
	Name    string `json:"name" yaml:"name"`
	URL     string `json:"url" yaml:"url"`
	Version string `json:"version" yaml:"version"`
}

// Preset is a named bundle of map defaults.
type Preset struct {
	Name       string
	Source     string
	Title      string
	View       *View
	BaseLayers []BaseLayer
	Samples    []Sample
	Metadata   map[string]string
}

// DefaultBaseLayer returns the layer flagged as default, falling back
// to the first entry when none is flagged.
func (p Preset) DefaultBaseLayer() (BaseLayer, bool) {
	for _, layer := range p.BaseLayers {
		if layer.Default {
			return layer, true
		}
	}
	if len(p.BaseLayers) > 0 {
		return p.BaseLayers[0], true
	}
	return BaseLayer{}, false
}

// FindBaseLayer looks a base layer up by name.
func (p Preset) FindBaseLayer(name string) (BaseLayer, bool) {
	for _, layer := range p.BaseLayers {
		if layer.Name == name {
			return layer, true
		}
	}
	return BaseLayer{}, false
}

// Store holds the presets parsed from a filesystem.
type Store struct {
	presets map[string]Preset
	order   []string
}

// Preset returns the preset registered under the supplied name.
func (s *Store) Preset(name string) (Preset, bool) {
	if s == nil {
		return Preset{}, false
	}
	p, ok := s.presets[name]
	return p, ok
}

// Names lists preset names in the order they were loaded.
func (s *Store) Names() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Empty reports whether the store holds any presets.
func (s *Store) Empty() bool {
	return s == nil || len(s.presets) == 0
}
