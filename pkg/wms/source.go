package wms

import (
	"fmt"
	"net/url"
	"path/filepath"
)

// Source identifies where a capabilities document originated. Loaders operate
// on files, fs.FS entries, or GetCapabilities URLs without leaking
// implementation details.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

// fileSource identifies on-disk capability documents.
type fileSource struct {
	path string
}

func (s fileSource) Location() string {
	return s.path
}

func (s fileSource) Kind() SourceKind {
	return SourceKindFile
}

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

// fsSource references a path within an fs.FS.
type fsSource struct {
	name string
}

func (s fsSource) Location() string {
	return s.name
}

func (s fsSource) Kind() SourceKind {
	return SourceKindFS
}

// SourceFromFS returns a Source identifying a resource inside an fs.FS.
func SourceFromFS(name string) Source {
	return fsSource{name: name}
}

// urlSource references a WMS endpoint over HTTP/HTTPS.
type urlSource struct {
	raw string
}

func (s urlSource) Location() string {
	return s.raw
}

func (s urlSource) Kind() SourceKind {
	return SourceKindURL
}

// SourceFromURL parses the supplied URL string and returns a Source. It panics
// if the URL is invalid to surface configuration mistakes early. Both bare
// endpoint URLs and full GetCapabilities URLs are accepted; the loader adds
// the missing request parameters.
func SourceFromURL(raw string) Source {
	if raw == "" {
		panic("wms: empty URL source")
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		panic(fmt.Sprintf("wms: invalid URL %q: %v", raw, err))
	}
	return urlSource{raw: raw}
}

// ParseSourceURL is the non-panicking variant of SourceFromURL for
// user-supplied input (wizard fields, query parameters).
func ParseSourceURL(raw string) (Source, error) {
	if raw == "" {
		return nil, fmt.Errorf("wms: %w: empty URL", ErrInvalidInput)
	}
	parsed, err := url.ParseRequestURI(raw)
	if err != nil {
		return nil, fmt.Errorf("wms: %w: %v", ErrInvalidInput, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("wms: %w: unsupported scheme %q", ErrInvalidInput, parsed.Scheme)
	}
	return urlSource{raw: raw}, nil
}
