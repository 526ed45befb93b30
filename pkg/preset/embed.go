package preset

import (
	"embed"
	"io/fs"
)

//go:embed presets/*
var embeddedPresets embed.FS

// EmbeddedFS returns the bundled preset documents. Callers may pass
// this filesystem to LoadFS to use the default configuration.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedPresets, "presets")
	if err != nil {
		panic(err)
	}
	return sub
}

// DefaultName is the preset registered by the bundled documents.
const DefaultName = "default"
