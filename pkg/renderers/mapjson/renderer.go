// Package mapjson renders map models as indented JSON documents. The
// output is the wire form consumed by downstream map viewers and by
// the HTTP component's detail endpoints.
package mapjson

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-mapgen/pkg/model"
	"github.com/goliatone/go-mapgen/pkg/render"
)

// Name identifies the renderer inside a registry.
const Name = "json"

// Renderer serialises a MapModel without touching its semantics.
// Render option overrides for title and view are applied to a copy so
// callers can reuse the model across renderers.
type Renderer struct {
	indent string
}

// Option customises renderer construction.
type Option func(*Renderer)

// WithIndent overrides the two space default indentation. An empty
// string produces compact output.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

// New builds a JSON renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{indent: "  "}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Name implements render.Renderer.
func (r *Renderer) Name() string { return Name }

// ContentType implements render.Renderer.
func (r *Renderer) ContentType() string { return "application/json; charset=utf-8" }

// Render implements render.Renderer.
func (r *Renderer) Render(ctx context.Context, m model.MapModel, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := m
	if options.Title != "" {
		out.Title = options.Title
	}
	if options.View != nil {
		out.View = *options.View
	}
	if len(options.Warnings) > 0 {
		merged := make([]string, 0, len(out.Warnings)+len(options.Warnings))
		merged = append(merged, out.Warnings...)
		merged = append(merged, options.Warnings...)
		out.Warnings = merged
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", r.indent)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return nil, fmt.Errorf("mapjson: encode model: %w", err)
	}
	return buf.Bytes(), nil
}
