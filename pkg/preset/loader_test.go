package preset

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

func TestLoadFS_ParsesYAMLDocument(t *testing.T) {
	fsys := fstest.MapFS{
		"maps.yaml": {Data: []byte(`
presets:
  netherlands:
    title: Netherlands defaults
    view:
      lat: 52.1
      lon: 5.3
      zoom: 8
    baseLayers:
      - name: OpenStreetMap
        url: https://tile.openstreetmap.org/{z}/{x}/{y}.png
        attribution: osm
        maxZoom: 19
        default: true
      - name: Positron
        url: https://{s}.basemaps.cartocdn.com/light_all/{z}/{x}/{y}.png
    samples:
      - name: Walking networks
        url: https://service.pdok.nl/wandelnet/regionale-wandelnetwerken/wms/v1_0
        version: "1.3.0"
    metadata:
      provider: builtin
`)},
	}

	store, err := LoadFS(fsys)
	if err != nil {
		t.Fatalf("LoadFS returned error: %v", err)
	}

	p, ok := store.Preset("netherlands")
	if !ok {
		t.Fatalf("preset not found, store has %v", store.Names())
	}
	if p.Title != "Netherlands defaults" {
		t.Fatalf("title = %q", p.Title)
	}
	if p.View == nil || p.View.Zoom != 8 {
		t.Fatalf("view not parsed: %+v", p.View)
	}

	layer, ok := p.DefaultBaseLayer()
	if !ok || layer.Name != "OpenStreetMap" {
		t.Fatalf("default base layer = %+v ok=%v", layer, ok)
	}
	if _, ok := p.FindBaseLayer("Positron"); !ok {
		t.Fatal("second base layer missing")
	}

	wantSamples := []Sample{{
		Name:    "Walking networks",
		URL:     "https://service.pdok.nl/wandelnet/regionale-wandelnetwerken/wms/v1_0",
		Version: "1.3.0",
	}}
	if diff := cmp.Diff(wantSamples, p.Samples); diff != "" {
		t.Fatalf("samples mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFS_RejectsDuplicatePresets(t *testing.T) {
	fsys := fstest.MapFS{
		"a.yaml": {Data: []byte("presets:\n  city:\n    title: one\n")},
		"b.yaml": {Data: []byte("presets:\n  city:\n    title: two\n")},
	}

	if _, err := LoadFS(fsys); err == nil || !strings.Contains(err.Error(), "duplicate preset") {
		t.Fatalf("expected duplicate preset error, got %v", err)
	}
}

func TestLoadFS_RejectsNamelessBaseLayer(t *testing.T) {
	fsys := fstest.MapFS{
		"a.yaml": {Data: []byte(`
presets:
  city:
    baseLayers:
      - url: https://tiles.example.com/{z}/{x}/{y}.png
`)},
	}

	if _, err := LoadFS(fsys); err == nil || !strings.Contains(err.Error(), "has no name") {
		t.Fatalf("expected base layer name error, got %v", err)
	}
}

func TestLoadFS_SkipsNonPresetFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"README.md": {Data: []byte("not a preset")},
	}

	store, err := LoadFS(fsys)
	if err != nil {
		t.Fatalf("LoadFS returned error: %v", err)
	}
	if !store.Empty() {
		t.Fatalf("expected empty store, got %v", store.Names())
	}
}

func TestEmbeddedFS_CarriesDefaultPreset(t *testing.T) {
	store, err := LoadFS(EmbeddedFS())
	if err != nil {
		t.Fatalf("LoadFS returned error: %v", err)
	}

	p, ok := store.Preset(DefaultName)
	if !ok {
		t.Fatalf("bundled preset missing, store has %v", store.Names())
	}
	if _, ok := p.DefaultBaseLayer(); !ok {
		t.Fatal("bundled preset has no base layers")
	}
	if len(p.Samples) == 0 {
		t.Fatal("bundled preset has no sample endpoints")
	}
}
