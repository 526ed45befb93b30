package orchestrator

import (
	"context"
	"testing"

	theme "github.com/goliatone/go-theme"
)

type selectorCall struct {
	name    string
	variant string
}

type stubThemeSelector struct {
	selection *theme.Selection
	err       error
	calls     []selectorCall
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, selectorCall{name: name, variant: variant})
	return s.selection, s.err
}

func TestGenerate_PassesThemeConfigToRenderer(t *testing.T) {
	manifest := &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens: map[string]string{
			"map-accent": "#123456",
		},
		Assets: theme.Assets{
			Prefix: "/assets/themes/acme",
			Files: map[string]string{
				"leaflet.stylesheet": "theme.css",
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"map-accent": "#654321",
				},
				Assets: theme.Assets{
					Files: map[string]string{
						"leaflet.vendor": "vendor.dark.js",
					},
				},
			},
		},
	}

	selector := &stubThemeSelector{selection: &theme.Selection{
		Theme:    "acme",
		Variant:  "dark",
		Manifest: manifest,
	}}

	renderer := &captureRenderer{}
	orch := newTestOrchestrator(renderer, WithThemeSelector(selector))

	_, err := orch.Generate(context.Background(), Request{
		Source:       stubSource{},
		Layers:       []string{"routes"},
		ThemeName:    "acme",
		ThemeVariant: "dark",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if len(selector.calls) != 1 {
		t.Fatalf("expected selector called once, got %d", len(selector.calls))
	}
	if selector.calls[0].name != "acme" || selector.calls[0].variant != "dark" {
		t.Fatalf("unexpected selector args: %+v", selector.calls[0])
	}

	cfg := renderer.options.Theme
	if cfg == nil {
		t.Fatal("expected theme config passed to renderer")
	}
	if cfg.Theme != "acme" || cfg.Variant != "dark" {
		t.Fatalf("theme identity mismatch: %s/%s", cfg.Theme, cfg.Variant)
	}
	if cfg.Tokens["map-accent"] != "#654321" {
		t.Fatalf("tokens not merged with variant override, got %s", cfg.Tokens["map-accent"])
	}
	if cfg.CSSVars["--map-accent"] != "#654321" {
		t.Fatalf("css vars not derived from merged tokens, got %s", cfg.CSSVars["--map-accent"])
	}
	if cfg.AssetURL == nil {
		t.Fatal("expected AssetURL resolver present")
	}
	if got := cfg.AssetURL("leaflet.vendor"); got != "/assets/themes/acme/vendor.dark.js" {
		t.Fatalf("unexpected vendor asset url: %s", got)
	}
	if got := cfg.AssetURL("leaflet.stylesheet"); got != "/assets/themes/acme/theme.css" {
		t.Fatalf("unexpected stylesheet asset url: %s", got)
	}
	if got := cfg.AssetURL("missing"); got != "" {
		t.Fatalf("expected empty url for unknown asset, got %s", got)
	}
}

func TestGenerate_NoThemeWithoutSelector(t *testing.T) {
	renderer := &captureRenderer{}
	orch := newTestOrchestrator(renderer)

	if _, err := orch.Generate(context.Background(), Request{
		Source:    stubSource{},
		Layers:    []string{"routes"},
		ThemeName: "acme",
	}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if renderer.options.Theme != nil {
		t.Fatal("theme config should be nil when no selector is configured")
	}
}
