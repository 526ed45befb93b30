package render

import (
	"context"

	"github.com/goliatone/go-mapgen/pkg/model"
)

// Renderer converts a MapModel into a byte representation (HTML, JSON, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, model model.MapModel, options RenderOptions) ([]byte, error)
}
