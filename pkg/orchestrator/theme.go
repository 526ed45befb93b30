package orchestrator

import (
	"fmt"
	"path"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ThemeSelector resolves a theme name and variant into a selection.
// *theme.Registry satisfies this interface.
type ThemeSelector interface {
	Select(name, variant string, opts ...theme.QueryOption) (*theme.Selection, error)
}

func (o *Orchestrator) resolveTheme(name, variant string) (*theme.RendererConfig, error) {
	if o.themeSelector == nil || name == "" {
		return nil, nil
	}

	selection, err := o.themeSelector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme %q: %w", name, err)
	}
	if selection == nil {
		return nil, nil
	}

	return themeConfig(selection), nil
}

// themeConfig flattens a selection into the renderer facing structure.
// Variant tokens, templates, and asset files override their manifest
// counterparts; CSS variables are derived from the merged token set.
func themeConfig(selection *theme.Selection) *theme.RendererConfig {
	cfg := &theme.RendererConfig{
		Theme:   selection.Theme,
		Variant: selection.Variant,
	}

	manifest := selection.Manifest
	if manifest == nil {
		return cfg
	}

	tokens := make(map[string]string, len(manifest.Tokens))
	for k, v := range manifest.Tokens {
		tokens[k] = v
	}
	partials := make(map[string]string, len(manifest.Templates))
	for k, v := range manifest.Templates {
		partials[k] = v
	}
	assets := make(map[string]string, len(manifest.Assets.Files))
	for k, v := range manifest.Assets.Files {
		assets[k] = v
	}

	if variant, ok := manifest.Variants[selection.Variant]; ok {
		for k, v := range variant.Tokens {
			tokens[k] = v
		}
		for k, v := range variant.Templates {
			partials[k] = v
		}
		for k, v := range variant.Assets.Files {
			assets[k] = v
		}
	}

	cfg.Tokens = tokens
	cfg.Partials = partials
	cfg.CSSVars = cssVars(tokens)

	prefix := manifest.Assets.Prefix
	cfg.AssetURL = func(key string) string {
		file, ok := assets[key]
		if !ok {
			return ""
		}
		if strings.HasPrefix(file, "http://") || strings.HasPrefix(file, "https://") {
			return file
		}
		return path.Join(prefix, file)
	}

	return cfg
}

func cssVars(tokens map[string]string) map[string]string {
	if len(tokens) == 0 {
		return nil
	}
	out := make(map[string]string, len(tokens))
	for name, value := range tokens {
		key := name
		if !strings.HasPrefix(key, "--") {
			key = "--" + key
		}
		out[key] = value
	}
	return out
}
