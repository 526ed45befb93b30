package preset

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFS walks the provided filesystem and parses JSON/YAML preset
// files. When fsys is nil or no preset files are present, the returned
// store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{presets: make(map[string]Preset)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			return nil
		}
		if !isPresetFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("preset: read %s: %w", path, err)
		}

		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		for name, raw := range doc.Presets {
			id := strings.TrimSpace(name)
			if id == "" {
				return fmt.Errorf("preset: file %s defines an empty preset name", path)
			}
			if _, exists := store.presets[id]; exists {
				return fmt.Errorf("preset: duplicate preset %q (file %s)", id, path)
			}

			p, err := normalisePreset(raw, id, path)
			if err != nil {
				return err
			}
			store.presets[id] = p
			store.order = append(store.order, id)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return store, nil
}

type documentFile struct {
	Presets map[string]presetFile `json:"presets" yaml:"presets"`
}

type presetFile struct {
	Title      string            `json:"title" yaml:"title"`
	View       *View             `json:"view" yaml:"view"`
	BaseLayers []BaseLayer       `json:"baseLayers" yaml:"baseLayers"`
	Samples    []Sample          `json:"samples" yaml:"samples"`
	Metadata   map[string]string `json:"metadata" yaml:"metadata"`
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("preset: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return documentFile{}, fmt.Errorf("preset: parse %s: invalid JSON or YAML", source)
}

func normalisePreset(raw presetFile, id, source string) (Preset, error) {
	p := Preset{
		Name:     id,
		Source:   source,
		Title:    strings.TrimSpace(raw.Title),
		Metadata: cloneStringMap(raw.Metadata),
	}

	if raw.View != nil {
		view := *raw.View
		p.View = &view
	}

	seen := make(map[string]struct{}, len(raw.BaseLayers))
	for idx, layer := range raw.BaseLayers {
		layer.Name = strings.TrimSpace(layer.Name)
		layer.URL = strings.TrimSpace(layer.URL)
		if layer.Name == "" {
			return Preset{}, fmt.Errorf("preset: %q (file %s) base layer %d has no name", id, source, idx)
		}
		if layer.URL == "" {
			return Preset{}, fmt.Errorf("preset: %q (file %s) base layer %q has no url", id, source, layer.Name)
		}
		if _, dup := seen[layer.Name]; dup {
			return Preset{}, fmt.Errorf("preset: %q (file %s) defines duplicate base layer %q", id, source, layer.Name)
		}
		seen[layer.Name] = struct{}{}
		p.BaseLayers = append(p.BaseLayers, layer)
	}

	for idx, sample := range raw.Samples {
		sample.Name = strings.TrimSpace(sample.Name)
		sample.URL = strings.TrimSpace(sample.URL)
		if sample.URL == "" {
			return Preset{}, fmt.Errorf("preset: %q (file %s) sample %d has no url", id, source, idx)
		}
		p.Samples = append(p.Samples, sample)
	}

	return p, nil
}

func isPresetFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func cloneStringMap(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
