package parser

import (
	"strings"

	pkgwms "github.com/goliatone/go-mapgen/pkg/wms"
)

// Wire structs for the 1.1.1 schema (WMT_MS_Capabilities). The notable
// differences from 1.3.0: SRS instead of CRS, and LatLonBoundingBox with
// min/max attributes instead of EX_GeographicBoundingBox.

type capabilities111 struct {
	Version    string        `xml:"version,attr"`
	Service    service130    `xml:"Service"`
	Capability capability111 `xml:"Capability"`
}

type capability111 struct {
	Request requestBlock `xml:"Request"`
	Layer   *layer111    `xml:"Layer"`
}

type layer111 struct {
	Queryable string         `xml:"queryable,attr"`
	Opaque    string         `xml:"opaque,attr"`
	Name      string         `xml:"Name"`
	Title     string         `xml:"Title"`
	Abstract  string         `xml:"Abstract"`
	SRS       []string       `xml:"SRS"`
	LatLon    *latLonBBox111 `xml:"LatLonBoundingBox"`
	Styles    []styleElement `xml:"Style"`
	Children  []layer111     `xml:"Layer"`
}

type latLonBBox111 struct {
	MinX float64 `xml:"minx,attr"`
	MinY float64 `xml:"miny,attr"`
	MaxX float64 `xml:"maxx,attr"`
	MaxY float64 `xml:"maxy,attr"`
}

func parse111(raw []byte) (pkgwms.Capabilities, error) {
	var doc capabilities111
	if err := decodeStrict(raw, &doc); err != nil {
		return pkgwms.Capabilities{}, err
	}

	caps := pkgwms.Capabilities{
		Version: versionOrDefault(doc.Version, pkgwms.Version111),
		Service: pkgwms.Service{
			Name:           strings.TrimSpace(doc.Service.Name),
			Title:          strings.TrimSpace(doc.Service.Title),
			Abstract:       strings.TrimSpace(doc.Service.Abstract),
			Contact:        strings.TrimSpace(doc.Service.Contact.Organization),
			OnlineResource: doc.Service.OnlineResource.Href,
		},
		Formats:   cleanFormats(doc.Capability.Request.GetMap.Formats),
		GetMapURL: doc.Capability.Request.GetMap.OnlineResource.Href,
	}
	if doc.Capability.Layer != nil {
		caps.Root = convertLayer111(*doc.Capability.Layer)
	}
	return caps, nil
}

func convertLayer111(in layer111) pkgwms.Layer {
	out := pkgwms.Layer{
		Name:      strings.TrimSpace(in.Name),
		Title:     strings.TrimSpace(in.Title),
		Abstract:  strings.TrimSpace(in.Abstract),
		Queryable: boolAttr(in.Queryable),
		Opaque:    boolAttr(in.Opaque),
		CRS:       splitSRS(in.SRS),
	}
	if in.LatLon != nil {
		out.BoundingBox = &pkgwms.BoundingBox{
			West:  in.LatLon.MinX,
			South: in.LatLon.MinY,
			East:  in.LatLon.MaxX,
			North: in.LatLon.MaxY,
		}
	}
	out.Styles = convertStyles(in.Styles)
	for _, child := range in.Children {
		out.Children = append(out.Children, convertLayer111(child))
	}
	return out
}

// splitSRS handles both one-SRS-per-element documents and the legacy form
// that packs several space-separated identifiers into a single element.
func splitSRS(in []string) []string {
	var out []string
	for _, entry := range in {
		for _, srs := range strings.Fields(entry) {
			out = append(out, srs)
		}
	}
	return out
}
