package mapjson

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-mapgen/pkg/model"
	"github.com/goliatone/go-mapgen/pkg/render"
)

func TestRender_RoundTripsModel(t *testing.T) {
	renderer := New()

	in := model.MapModel{
		Title:     "Walking networks",
		View:      model.View{Lat: 52, Lon: 5, Zoom: 8},
		BaseLayer: model.DefaultBaseLayer(),
		Overlays: []model.Overlay{
			{
				Name:    "Walking networks",
				URL:     "https://service.example.nl/wms?a=1&b=2",
				Layers:  []string{"routes"},
				Format:  "image/png",
				Version: "1.3.0",
				Opacity: 1,
			},
		},
		Controls: model.Controls{LayerControl: true},
	}

	out, err := renderer.Render(context.Background(), in, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var got model.MapModel
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if diff := cmp.Diff(in, got); diff != "" {
		t.Fatalf("model mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_AppliesOptionOverrides(t *testing.T) {
	renderer := New(WithIndent(""))

	in := model.MapModel{
		Title:    "original",
		View:     model.View{Lat: 1, Lon: 2, Zoom: 3},
		Warnings: []string{"existing"},
	}

	out, err := renderer.Render(context.Background(), in, render.RenderOptions{
		Title:    "override",
		View:     &model.View{Lat: 9, Lon: 8, Zoom: 7},
		Warnings: []string{"added"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var got model.MapModel
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("decode output: %v", err)
	}

	if got.Title != "override" {
		t.Fatalf("title = %q, want override", got.Title)
	}
	if got.View != (model.View{Lat: 9, Lon: 8, Zoom: 7}) {
		t.Fatalf("view override not applied: %+v", got.View)
	}
	if diff := cmp.Diff([]string{"existing", "added"}, got.Warnings); diff != "" {
		t.Fatalf("warnings mismatch (-want +got):\n%s", diff)
	}
	if in.Title != "original" || len(in.Warnings) != 1 {
		t.Fatalf("input model mutated: %+v", in)
	}
}

func TestRender_HonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := New().Render(ctx, model.MapModel{}, render.RenderOptions{}); err == nil {
		t.Fatal("expected context error")
	}
}
