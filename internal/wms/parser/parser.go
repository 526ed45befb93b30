package parser

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	pkgwms "github.com/goliatone/go-mapgen/pkg/wms"
)

// Parser implements pkgwms.Parser over the two capability schema revisions in
// circulation: WMT_MS_Capabilities (1.1.1) and WMS_Capabilities (1.3.0).
type Parser struct {
	options pkgwms.ParserOptions
}

// Ensure the implementation satisfies the public interface.
var _ pkgwms.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options pkgwms.ParserOptions) pkgwms.Parser {
	return &Parser{options: options}
}

// Parse converts a Document into the normalised Capabilities structure.
func (p *Parser) Parse(ctx context.Context, doc pkgwms.Document) (pkgwms.Capabilities, error) {
	if err := ctx.Err(); err != nil {
		return pkgwms.Capabilities{}, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return pkgwms.Capabilities{}, errors.New("wms parser: document payload is empty")
	}

	root, err := sniffRoot(raw)
	if err != nil {
		return pkgwms.Capabilities{}, err
	}

	var caps pkgwms.Capabilities
	switch root {
	case rootElement130:
		caps, err = parse130(raw)
	case rootElement111:
		caps, err = parse111(raw)
	default:
		return pkgwms.Capabilities{}, fmt.Errorf("wms parser: %w: unexpected root element %q", pkgwms.ErrNotCapabilities, root)
	}
	if err != nil {
		return pkgwms.Capabilities{}, err
	}

	if pinned := strings.TrimSpace(p.options.Version); pinned != "" && caps.Version != pinned {
		return pkgwms.Capabilities{}, fmt.Errorf("wms parser: document declares version %s, expected %s", caps.Version, pinned)
	}

	caps.Location = doc.Location()
	normaliseLayerTree(&caps.Root, inherited{})

	if !p.options.AllowEmptyContents && len(caps.Contents()) == 0 {
		return pkgwms.Capabilities{}, errors.New("wms parser: capabilities advertise no named layers")
	}

	return caps, nil
}

const (
	rootElement130 = "WMS_Capabilities"
	rootElement111 = "WMT_MS_Capabilities"
)

// sniffRoot walks the token stream up to the first start element so malformed
// payloads (HTML error pages, truncated XML) fail with ErrNotCapabilities.
func sniffRoot(raw []byte) (string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(raw))
	decoder.Strict = false
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			return "", fmt.Errorf("wms parser: %w: no root element", pkgwms.ErrNotCapabilities)
		}
		if err != nil {
			return "", fmt.Errorf("wms parser: %w: %v", pkgwms.ErrNotCapabilities, err)
		}
		if start, ok := token.(xml.StartElement); ok {
			return start.Name.Local, nil
		}
	}
}

// inherited carries the layer properties that cascade down the tree per the
// capabilities inheritance rules.
type inherited struct {
	crs    []string
	bbox   *pkgwms.BoundingBox
	styles []pkgwms.Style
}

func normaliseLayerTree(layer *pkgwms.Layer, parent inherited) {
	if len(layer.CRS) == 0 {
		layer.CRS = append([]string(nil), parent.crs...)
	}
	if layer.BoundingBox == nil && parent.bbox != nil {
		box := *parent.bbox
		layer.BoundingBox = &box
	}
	layer.Styles = mergeStyles(parent.styles, layer.Styles)

	next := inherited{
		crs:    layer.CRS,
		bbox:   layer.BoundingBox,
		styles: layer.Styles,
	}
	for i := range layer.Children {
		normaliseLayerTree(&layer.Children[i], next)
	}
}

func mergeStyles(parent, own []pkgwms.Style) []pkgwms.Style {
	if len(parent) == 0 {
		return own
	}
	seen := make(map[string]struct{}, len(parent)+len(own))
	out := make([]pkgwms.Style, 0, len(parent)+len(own))
	for _, style := range append(append([]pkgwms.Style(nil), parent...), own...) {
		if _, dup := seen[style.Name]; dup {
			continue
		}
		seen[style.Name] = struct{}{}
		out = append(out, style)
	}
	return out
}

func decodeStrict(raw []byte, dest any) error {
	decoder := xml.NewDecoder(bytes.NewReader(raw))
	decoder.Strict = false
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("wms parser: %w: %v", pkgwms.ErrNotCapabilities, err)
	}
	return nil
}

func cleanFormats(in []string) []string {
	out := make([]string, 0, len(in))
	for _, format := range in {
		if trimmed := strings.TrimSpace(format); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
