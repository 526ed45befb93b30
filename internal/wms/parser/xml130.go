package parser

import (
	"strings"

	pkgwms "github.com/goliatone/go-mapgen/pkg/wms"
)

// Wire structs for the 1.3.0 schema (WMS_Capabilities, CRS elements,
// EX_GeographicBoundingBox). Field tags match local names so the opengis
// namespace does not need to be spelled out.

type capabilities130 struct {
	Version    string        `xml:"version,attr"`
	Service    service130    `xml:"Service"`
	Capability capability130 `xml:"Capability"`
}

type service130 struct {
	Name           string         `xml:"Name"`
	Title          string         `xml:"Title"`
	Abstract       string         `xml:"Abstract"`
	OnlineResource onlineResource `xml:"OnlineResource"`
	Contact        contactInfo    `xml:"ContactInformation"`
}

type contactInfo struct {
	Organization string `xml:"ContactPersonPrimary>ContactOrganization"`
}

type onlineResource struct {
	Href string `xml:"http://www.w3.org/1999/xlink href,attr"`
}

type capability130 struct {
	Request requestBlock `xml:"Request"`
	Layer   *layer130    `xml:"Layer"`
}

type requestBlock struct {
	GetMap getMapBlock `xml:"GetMap"`
}

type getMapBlock struct {
	Formats        []string       `xml:"Format"`
	OnlineResource onlineResource `xml:"DCPType>HTTP>Get>OnlineResource"`
}

type layer130 struct {
	Queryable string         `xml:"queryable,attr"`
	Opaque    string         `xml:"opaque,attr"`
	Name      string         `xml:"Name"`
	Title     string         `xml:"Title"`
	Abstract  string         `xml:"Abstract"`
	CRS       []string       `xml:"CRS"`
	GeoBBox   *geoBBox130    `xml:"EX_GeographicBoundingBox"`
	Styles    []styleElement `xml:"Style"`
	Children  []layer130     `xml:"Layer"`
}

type geoBBox130 struct {
	West  float64 `xml:"westBoundLongitude"`
	East  float64 `xml:"eastBoundLongitude"`
	South float64 `xml:"southBoundLatitude"`
	North float64 `xml:"northBoundLatitude"`
}

type styleElement struct {
	Name      string          `xml:"Name"`
	Title     string          `xml:"Title"`
	LegendURL *legendURLBlock `xml:"LegendURL"`
}

type legendURLBlock struct {
	OnlineResource onlineResource `xml:"OnlineResource"`
}

func parse130(raw []byte) (pkgwms.Capabilities, error) {
	var doc capabilities130
	if err := decodeStrict(raw, &doc); err != nil {
		return pkgwms.Capabilities{}, err
	}

	caps := pkgwms.Capabilities{
		Version: versionOrDefault(doc.Version, pkgwms.Version130),
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
		caps.Root = convertLayer130(*doc.Capability.Layer)
	}
	return caps, nil
}

func convertLayer130(in layer130) pkgwms.Layer {
	out := pkgwms.Layer{
		Name:      strings.TrimSpace(in.Name),
		Title:     strings.TrimSpace(in.Title),
		Abstract:  strings.TrimSpace(in.Abstract),
		Queryable: boolAttr(in.Queryable),
		Opaque:    boolAttr(in.Opaque),
		CRS:       cleanFormats(in.CRS),
	}
	if in.GeoBBox != nil {
		out.BoundingBox = &pkgwms.BoundingBox{
			West:  in.GeoBBox.West,
			South: in.GeoBBox.South,
			East:  in.GeoBBox.East,
			North: in.GeoBBox.North,
		}
	}
	out.Styles = convertStyles(in.Styles)
	for _, child := range in.Children {
		out.Children = append(out.Children, convertLayer130(child))
	}
	return out
}

func convertStyles(in []styleElement) []pkgwms.Style {
	out := make([]pkgwms.Style, 0, len(in))
	for _, style := range in {
		converted := pkgwms.Style{
			Name:  strings.TrimSpace(style.Name),
			Title: strings.TrimSpace(style.Title),
		}
		if style.LegendURL != nil {
			converted.LegendURL = style.LegendURL.OnlineResource.Href
		}
		out = append(out, converted)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func boolAttr(raw string) bool {
	switch strings.TrimSpace(raw) {
	case "1", "true", "TRUE", "True":
		return true
	default:
		return false
	}
}

func versionOrDefault(declared, fallback string) string {
	if trimmed := strings.TrimSpace(declared); trimmed != "" {
		return trimmed
	}
	return fallback
}
