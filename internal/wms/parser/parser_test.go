package parser

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"

	pkgwms "github.com/goliatone/go-mapgen/pkg/wms"
)

func loadFixture(t *testing.T, path string) pkgwms.Document {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return pkgwms.MustNewDocument(pkgwms.SourceFromFile(path), data)
}

func TestParse_Version130(t *testing.T) {
	doc := loadFixture(t, "testdata/capabilities_130.xml")
	parser := New(pkgwms.NewParserOptions())

	caps, err := parser.Parse(context.Background(), doc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if caps.Version != pkgwms.Version130 {
		t.Fatalf("version: want %s, got %s", pkgwms.Version130, caps.Version)
	}
	if caps.Service.Title != "Regionale wandelnetwerken WMS" {
		t.Fatalf("service title: got %q", caps.Service.Title)
	}
	if caps.Service.Contact != "PDOK Beheer" {
		t.Fatalf("service contact: got %q", caps.Service.Contact)
	}
	if diff := cmp.Diff([]string{"image/png", "image/jpeg"}, caps.Formats); diff != "" {
		t.Fatalf("formats mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"wandelnetwerken", "wandelknooppunten"}, caps.LayerNames()); diff != "" {
		t.Fatalf("layer names mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_130LayerInheritance(t *testing.T) {
	doc := loadFixture(t, "testdata/capabilities_130.xml")
	parser := New(pkgwms.NewParserOptions())

	caps, err := parser.Parse(context.Background(), doc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	routes, ok := caps.FindLayer("wandelnetwerken")
	if !ok {
		t.Fatalf("missing wandelnetwerken layer")
	}
	if diff := cmp.Diff([]string{"EPSG:28992", "EPSG:3857"}, routes.CRS); diff != "" {
		t.Fatalf("inherited CRS mismatch (-want +got):\n%s", diff)
	}
	if routes.BoundingBox == nil || routes.BoundingBox.West != 3.2 {
		t.Fatalf("expected inherited bounding box, got %+v", routes.BoundingBox)
	}
	// Parent style plus the layer's own style, parent first.
	if len(routes.Styles) != 2 || routes.Styles[0].Name != "default" || routes.Styles[1].Name != "routes" {
		t.Fatalf("unexpected styles: %+v", routes.Styles)
	}
	if routes.Styles[1].LegendURL != "https://service.example.nl/legend/routes.png" {
		t.Fatalf("legend url: got %q", routes.Styles[1].LegendURL)
	}
	if !routes.Queryable {
		t.Fatalf("expected queryable layer")
	}

	// A layer with its own bounding box keeps it.
	junctions, _ := caps.FindLayer("wandelknooppunten")
	if junctions.BoundingBox == nil || junctions.BoundingBox.West != 3.4 {
		t.Fatalf("expected own bounding box, got %+v", junctions.BoundingBox)
	}
}

func TestParse_Version111(t *testing.T) {
	doc := loadFixture(t, "testdata/capabilities_111.xml")
	parser := New(pkgwms.NewParserOptions())

	caps, err := parser.Parse(context.Background(), doc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if caps.Version != pkgwms.Version111 {
		t.Fatalf("version: want %s, got %s", pkgwms.Version111, caps.Version)
	}
	if diff := cmp.Diff([]string{"relief", "contours"}, caps.LayerNames()); diff != "" {
		t.Fatalf("layer names mismatch (-want +got):\n%s", diff)
	}

	relief, _ := caps.FindLayer("relief")
	// Space-separated SRS entries split into individual identifiers.
	if diff := cmp.Diff([]string{"EPSG:4326", "EPSG:3857"}, relief.CRS); diff != "" {
		t.Fatalf("SRS mismatch (-want +got):\n%s", diff)
	}
	if relief.BoundingBox == nil || relief.BoundingBox.North != 85 {
		t.Fatalf("expected inherited LatLonBoundingBox, got %+v", relief.BoundingBox)
	}
	if caps.GetMapURL == "" {
		t.Fatalf("expected GetMap online resource")
	}
}

func TestParse_VersionPinMismatch(t *testing.T) {
	doc := loadFixture(t, "testdata/capabilities_111.xml")
	parser := New(pkgwms.NewParserOptions(pkgwms.WithVersion(pkgwms.Version130)))

	if _, err := parser.Parse(context.Background(), doc); err == nil {
		t.Fatalf("expected version mismatch error")
	}
}

func TestParse_NotCapabilities(t *testing.T) {
	cases := map[string]string{
		"html page":  "<html><body>service down</body></html>",
		"wrong root": `<?xml version="1.0"?><Error>boom</Error>`,
		"not xml":    "definitely not xml {",
	}

	parser := New(pkgwms.NewParserOptions())
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			doc := pkgwms.MustNewDocument(pkgwms.SourceFromFS("payload.xml"), []byte(payload))
			_, err := parser.Parse(context.Background(), doc)
			if !errors.Is(err, pkgwms.ErrNotCapabilities) {
				t.Fatalf("expected ErrNotCapabilities, got %v", err)
			}
		})
	}
}

func TestParse_CancelledContext(t *testing.T) {
	doc := loadFixture(t, "testdata/capabilities_130.xml")
	parser := New(pkgwms.NewParserOptions())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := parser.Parse(ctx, doc); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
