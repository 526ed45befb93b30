package layerpicker

import "net/http"

// Component is a small, extraction-friendly wrapper around the WMS
// lookup handlers, their configuration, and routing helpers.
type Component struct {
	opts Options
}

// New constructs a new component with default options plus any overrides.
func New(fns ...OptionFn) *Component {
	opts := NewOptions(fns...)
	return &Component{opts: opts}
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return NewOptions(func(o *Options) { *o = c.opts })
}

// LayersHandler returns a net/http handler serving layer options.
func (c *Component) LayersHandler() http.Handler {
	if c == nil {
		return newPicker(DefaultOptions()).layersHandler()
	}
	return newPicker(c.opts).layersHandler()
}

// ServiceHandler returns a net/http handler serving service details.
func (c *Component) ServiceHandler() http.Handler {
	if c == nil {
		return newPicker(DefaultOptions()).serviceHandler()
	}
	return newPicker(c.opts).serviceHandler()
}

// RegisterRoutes registers the component handlers under basePath on mux.
func (c *Component) RegisterRoutes(mux Mux, basePath string) ([]string, error) {
	if c == nil {
		return RegisterRoutes(mux, basePath)
	}
	return RegisterRoutesWithOptions(mux, basePath, c.opts)
}
