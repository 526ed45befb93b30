package wms

import (
	"fmt"
	"net/url"
	"strings"
)

// Supported protocol versions. Most public services speak 1.3.0; 1.1.1 is
// still common enough that both wire formats are understood.
const (
	Version111 = "1.1.1"
	Version130 = "1.3.0"
)

// Versions lists the protocol versions the parser understands, newest first.
func Versions() []string {
	return []string{Version130, Version111}
}

// ValidVersion reports whether the supplied version string is supported.
func ValidVersion(version string) bool {
	switch strings.TrimSpace(version) {
	case Version111, Version130:
		return true
	default:
		return false
	}
}

// BoundingBox is a geographic extent in WGS84 lon/lat degrees.
type BoundingBox struct {
	West  float64 `json:"west"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	North float64 `json:"north"`
}

// Valid reports whether the box spans a non-degenerate area.
func (b BoundingBox) Valid() bool {
	return b.East > b.West && b.North > b.South
}

// Center returns the midpoint as (lat, lon).
func (b BoundingBox) Center() (float64, float64) {
	return (b.South + b.North) / 2, (b.West + b.East) / 2
}

// Union grows the box to include other. A zero box adopts other entirely.
func (b BoundingBox) Union(other BoundingBox) BoundingBox {
	if !b.Valid() {
		return other
	}
	if !other.Valid() {
		return b
	}
	out := b
	if other.West < out.West {
		out.West = other.West
	}
	if other.South < out.South {
		out.South = other.South
	}
	if other.East > out.East {
		out.East = other.East
	}
	if other.North > out.North {
		out.North = other.North
	}
	return out
}

// Style describes a named rendering style advertised for a layer.
type Style struct {
	Name      string `json:"name"`
	Title     string `json:"title,omitempty"`
	LegendURL string `json:"legendUrl,omitempty"`
}

// Layer is a node in the capabilities layer tree. Layers without a Name are
// grouping containers; only named layers are requestable through GetMap.
type Layer struct {
	Name        string       `json:"name,omitempty"`
	Title       string       `json:"title,omitempty"`
	Abstract    string       `json:"abstract,omitempty"`
	Queryable   bool         `json:"queryable,omitempty"`
	Opaque      bool         `json:"opaque,omitempty"`
	CRS         []string     `json:"crs,omitempty"`
	BoundingBox *BoundingBox `json:"boundingBox,omitempty"`
	Styles      []Style      `json:"styles,omitempty"`
	Children    []Layer      `json:"children,omitempty"`
}

// Named reports whether the layer can be requested by name.
func (l Layer) Named() bool {
	return strings.TrimSpace(l.Name) != ""
}

// Service carries the service-level identification block.
type Service struct {
	Name           string `json:"name,omitempty"`
	Title          string `json:"title,omitempty"`
	Abstract       string `json:"abstract,omitempty"`
	Contact        string `json:"contact,omitempty"`
	OnlineResource string `json:"onlineResource,omitempty"`
}

// Capabilities is the normalised view of a GetCapabilities response,
// independent of the protocol version that produced it.
type Capabilities struct {
	// Version is the protocol version the document declared.
	Version string `json:"version"`

	// Location records where the document was loaded from.
	Location string `json:"location,omitempty"`

	// Service holds the identification block.
	Service Service `json:"service"`

	// Formats lists the image formats GetMap advertises.
	Formats []string `json:"formats,omitempty"`

	// GetMapURL is the online resource GetMap advertises, when present.
	GetMapURL string `json:"getMapUrl,omitempty"`

	// Root is the top of the layer tree. It is frequently an unnamed
	// container whose metadata cascades to children.
	Root Layer `json:"root"`
}

// Contents returns the named layers of the tree flattened in document order.
// Unnamed group layers are skipped; duplicate names keep the first occurrence
// only. This mirrors how clients enumerate requestable layers.
func (c Capabilities) Contents() []Layer {
	var out []Layer
	seen := make(map[string]struct{})
	var walk func(layer Layer)
	walk = func(layer Layer) {
		if layer.Named() {
			if _, dup := seen[layer.Name]; !dup {
				seen[layer.Name] = struct{}{}
				out = append(out, layer)
			}
		}
		for _, child := range layer.Children {
			walk(child)
		}
	}
	walk(c.Root)
	return out
}

// LayerNames returns the names of Contents in order.
func (c Capabilities) LayerNames() []string {
	contents := c.Contents()
	names := make([]string, 0, len(contents))
	for _, layer := range contents {
		names = append(names, layer.Name)
	}
	return names
}

// FindLayer looks up a named layer anywhere in the tree.
func (c Capabilities) FindLayer(name string) (Layer, bool) {
	target := strings.TrimSpace(name)
	if target == "" {
		return Layer{}, false
	}
	for _, layer := range c.Contents() {
		if layer.Name == target {
			return layer, true
		}
	}
	return Layer{}, false
}

// SupportsFormat reports whether the service advertises the image format.
// Services that advertise no formats at all are treated as permissive.
func (c Capabilities) SupportsFormat(format string) bool {
	if len(c.Formats) == 0 {
		return true
	}
	for _, f := range c.Formats {
		if strings.EqualFold(f, format) {
			return true
		}
	}
	return false
}

// MapURL resolves the endpoint browsers should request tiles from: the
// advertised GetMap online resource when present, otherwise the capabilities
// location stripped of its query string.
func (c Capabilities) MapURL() string {
	if u := strings.TrimSpace(c.GetMapURL); u != "" {
		return trimQuery(u)
	}
	return trimQuery(c.Location)
}

func trimQuery(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	parsed.RawQuery = ""
	parsed.Fragment = ""
	return parsed.String()
}

// Validate performs basic sanity checks useful before building map models.
func (c Capabilities) Validate() error {
	if !ValidVersion(c.Version) {
		return fmt.Errorf("wms: unsupported version %q", c.Version)
	}
	if len(c.Contents()) == 0 {
		return fmt.Errorf("wms: capabilities advertise no named layers")
	}
	return nil
}
