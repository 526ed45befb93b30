package model

import (
	"github.com/goliatone/go-mapgen/internal/model"
	pkgwms "github.com/goliatone/go-mapgen/pkg/wms"
)

// Builder converts capability documents plus a selection into map models.
type Builder interface {
	Build(caps pkgwms.Capabilities, sel Selection) (MapModel, error)
}

// BuilderOption configures the builder behaviour.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	view      *View
	baseLayer *BaseLayer
	controls  *Controls
}

// WithFallbackView overrides the default camera used when the selected layers
// advertise no bounding box.
func WithFallbackView(view View) BuilderOption {
	return func(opts *builderOptions) {
		opts.view = &view
	}
}

// WithBaseLayer overrides the default base tile layer.
func WithBaseLayer(base BaseLayer) BuilderOption {
	return func(opts *builderOptions) {
		opts.baseLayer = &base
	}
}

// WithControls overrides the default control set.
func WithControls(controls Controls) BuilderOption {
	return func(opts *builderOptions) {
		opts.controls = &controls
	}
}

// NewBuilder returns a Builder backed by the internal implementation.
func NewBuilder(options ...BuilderOption) Builder {
	cfg := builderOptions{}
	for _, opt := range options {
		opt(&cfg)
	}

	return model.New(model.Options{
		View:      cfg.view,
		BaseLayer: cfg.baseLayer,
		Controls:  cfg.controls,
	})
}
