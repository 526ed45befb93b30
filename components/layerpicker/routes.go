package layerpicker

import (
	"fmt"
	"net/http"
	"strings"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// MountPaths returns the full mount paths (layers, service) for the
// component routes under basePath.
func MountPaths(basePath string, fns ...OptionFn) (string, string) {
	opts := NewOptions(fns...)
	return mountPath(basePath, opts.LayersPath), mountPath(basePath, opts.ServicePath)
}

// RegisterRoutes registers both component handlers under basePath on mux.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) ([]string, error) {
	opts := NewOptions(fns...)
	return RegisterRoutesWithOptions(mux, basePath, opts)
}

// RegisterRoutesWithOptions registers handlers under basePath using a
// pre-built Options value. Callers are expected to pass an Options value
// produced by NewOptions (or equivalent) so defaults apply.
func RegisterRoutesWithOptions(mux Mux, basePath string, opts Options) ([]string, error) {
	if mux == nil {
		return nil, fmt.Errorf("layerpicker: missing mux")
	}
	opts = NewOptions(func(o *Options) { *o = opts })

	p := newPicker(opts)
	layersPattern := mountPath(basePath, opts.LayersPath)
	servicePattern := mountPath(basePath, opts.ServicePath)
	mux.Handle(layersPattern, p.layersHandler())
	mux.Handle(servicePattern, p.serviceHandler())
	return []string{layersPattern, servicePattern}, nil
}

func mountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}

	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	basePath = strings.TrimRight(basePath, "/")
	return basePath + routePath
}
