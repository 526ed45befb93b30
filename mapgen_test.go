package mapgen

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-mapgen/pkg/testsupport"
	pkgwms "github.com/goliatone/go-mapgen/pkg/wms"
)

func TestGenerateHTMLFromCapabilities(t *testing.T) {
	root := pkgwms.Layer{
		Title: "Walking networks WMS",
		CRS:   []string{"EPSG:3857"},
		BoundingBox: &pkgwms.BoundingBox{
			West: 3.2, South: 50.7, East: 7.3, North: 53.6,
		},
		Children: []pkgwms.Layer{
			{Name: "routes", Title: "Walking routes"},
		},
	}

	caps := pkgwms.Capabilities{
		Version:   pkgwms.Version130,
		Location:  "https://service.example.nl/wms?request=GetCapabilities",
		Service:   pkgwms.Service{Title: "Walking networks WMS"},
		Formats:   []string{"image/png"},
		GetMapURL: "https://service.example.nl/wms",
		Root:      root,
	}

	out, err := GenerateHTMLFromCapabilities(context.Background(), caps, []string{"routes"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	page := string(out)
	if !strings.Contains(page, "L.tileLayer.wms") {
		t.Fatalf("expected WMS overlay in page:\n%s", page)
	}
	if !strings.Contains(page, `"routes"`) {
		t.Fatal("selected layer missing from page")
	}
}

func TestGenerateHTML_FromFixtureDocument(t *testing.T) {
	doc := testsupport.LoadDocument(t, filepath.Join("examples", "fixtures", "capabilities.xml"))

	caps, err := NewParser().Parse(testsupport.Context(), doc)
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}

	out, err := GenerateHTMLFromCapabilities(testsupport.Context(), caps, []string{"wandelnetwerken"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), `"wandelnetwerken"`) {
		t.Fatal("fixture layer missing from page")
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	fsys := EmbeddedTemplates()
	if _, err := fsys.Open("templates/map.tmpl"); err != nil {
		t.Fatalf("expected bundled map template: %v", err)
	}
}
