package model

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	pkgwms "github.com/goliatone/go-mapgen/pkg/wms"
)

func fixtureCapabilities() pkgwms.Capabilities {
	return pkgwms.Capabilities{
		Version:  pkgwms.Version130,
		Location: "https://service.example.nl/wms?service=WMS&request=GetCapabilities",
		Service: pkgwms.Service{
			Name:  "WMS",
			Title: "Walking networks",
		},
		Formats: []string{"image/png", "image/jpeg"},
		Root: pkgwms.Layer{
			Title: "root",
			Children: []pkgwms.Layer{
				{
					Name:        "routes",
					Title:       "Routes",
					BoundingBox: &pkgwms.BoundingBox{West: 3, South: 50, East: 7, North: 54},
					Styles:      []pkgwms.Style{{Name: "default", LegendURL: "https://service.example.nl/legend/routes.png"}},
				},
				{
					Name:        "junctions",
					Title:       "Junctions",
					BoundingBox: &pkgwms.BoundingBox{West: 4, South: 51, East: 6, North: 53},
				},
			},
		},
	}
}

func TestBuild_ComposesOverlay(t *testing.T) {
	builder := New(Options{})

	got, err := builder.Build(fixtureCapabilities(), Selection{Layers: []string{"routes", "junctions"}})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if len(got.Overlays) != 1 {
		t.Fatalf("expected one overlay, got %d", len(got.Overlays))
	}
	overlay := got.Overlays[0]
	if diff := cmp.Diff([]string{"routes", "junctions"}, overlay.Layers); diff != "" {
		t.Fatalf("overlay layers mismatch (-want +got):\n%s", diff)
	}
	// Query string stripped off the capabilities location.
	if overlay.URL != "https://service.example.nl/wms" {
		t.Fatalf("overlay url: got %q", overlay.URL)
	}
	if overlay.Format != DefaultFormat {
		t.Fatalf("overlay format: got %q", overlay.Format)
	}
	if !overlay.Transparent {
		t.Fatalf("expected transparent overlay by default")
	}
	if overlay.Version != pkgwms.Version130 {
		t.Fatalf("overlay version: got %q", overlay.Version)
	}
	if len(overlay.Legends) != 1 || overlay.Legends[0].Layer != "routes" {
		t.Fatalf("unexpected legends: %+v", overlay.Legends)
	}
	if got.Title != "Walking networks" {
		t.Fatalf("title: got %q", got.Title)
	}
}

func TestBuild_ViewFromBoundingBoxUnion(t *testing.T) {
	builder := New(Options{})

	got, err := builder.Build(fixtureCapabilities(), Selection{Layers: []string{"routes", "junctions"}})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	// Union of both boxes is 3..7 x 50..54, centred at (52, 5).
	if got.View.Lat != 52 || got.View.Lon != 5 {
		t.Fatalf("unexpected view centre: %+v", got.View)
	}
	// 4 degree span -> floor(log2(360/4)) = 6.
	if got.View.Zoom != 6 {
		t.Fatalf("unexpected zoom: %d", got.View.Zoom)
	}
}

func TestBuild_EmptySelectionWarnsInsteadOfFailing(t *testing.T) {
	builder := New(Options{})

	got, err := builder.Build(fixtureCapabilities(), Selection{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(got.Overlays) != 0 {
		t.Fatalf("expected no overlays, got %d", len(got.Overlays))
	}
	if len(got.Warnings) != 1 {
		t.Fatalf("expected a warning, got %v", got.Warnings)
	}
	if got.View != DefaultView {
		t.Fatalf("expected fallback view, got %+v", got.View)
	}
	if got.BaseLayer.Name != DefaultBaseLayer.Name {
		t.Fatalf("expected default base layer, got %+v", got.BaseLayer)
	}
}

func TestBuild_UnknownLayer(t *testing.T) {
	builder := New(Options{})

	_, err := builder.Build(fixtureCapabilities(), Selection{Layers: []string{"nope"}})
	if !errors.Is(err, pkgwms.ErrUnknownLayer) {
		t.Fatalf("expected ErrUnknownLayer, got %v", err)
	}
}

func TestBuild_UnsupportedFormat(t *testing.T) {
	builder := New(Options{})

	_, err := builder.Build(fixtureCapabilities(), Selection{Layers: []string{"routes"}, Format: "image/webp"})
	if err == nil {
		t.Fatalf("expected unsupported format error")
	}
}

func TestBuild_OptionOverrides(t *testing.T) {
	view := View{Lat: 48.85, Lon: 2.35, Zoom: 11}
	base := BaseLayer{Name: "Positron", URL: "https://tiles.example.com/{z}/{x}/{y}.png"}
	controls := Controls{Draw: true}

	builder := New(Options{View: &view, BaseLayer: &base, Controls: &controls})

	got, err := builder.Build(fixtureCapabilities(), Selection{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got.View != view {
		t.Fatalf("view override not applied: %+v", got.View)
	}
	if got.BaseLayer.Name != "Positron" {
		t.Fatalf("base layer override not applied: %+v", got.BaseLayer)
	}
	if !got.Controls.Draw || got.Controls.LayerControl {
		t.Fatalf("controls override not applied: %+v", got.Controls)
	}
}
