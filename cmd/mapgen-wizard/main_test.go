package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	mapgen "github.com/goliatone/go-mapgen"
	pkgwms "github.com/goliatone/go-mapgen/pkg/wms"
)

const capabilitiesXML = `<?xml version="1.0" encoding="UTF-8"?>
<WMS_Capabilities version="1.3.0" xmlns="http://www.opengis.net/wms">
  <Service>
    <Name>WMS</Name>
    <Title>Walking networks WMS</Title>
  </Service>
  <Capability>
    <Request>
      <GetMap>
        <Format>image/png</Format>
      </GetMap>
    </Request>
    <Layer>
      <Title>Networks</Title>
      <CRS>EPSG:3857</CRS>
      <Layer queryable="1">
        <Name>routes</Name>
        <Title>Walking routes</Title>
      </Layer>
    </Layer>
  </Capability>
</WMS_Capabilities>`

func TestFetchCapabilities_SendsChosenVersion(t *testing.T) {
	var gotVersion string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotVersion = r.URL.Query().Get("version")
		w.Header().Set("Content-Type", "text/xml")
		_, _ = w.Write([]byte(capabilitiesXML))
	}))
	defer upstream.Close()

	caps, err := fetchCapabilities(context.Background(), mapgen.NewParser(), upstream.URL, pkgwms.Version111)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if gotVersion != pkgwms.Version111 {
		t.Fatalf("capabilities fetch carried version %q, want %q", gotVersion, pkgwms.Version111)
	}
	if names := caps.LayerNames(); len(names) != 1 || names[0] != "routes" {
		t.Fatalf("layer names = %v", names)
	}
}

func TestFetchCapabilities_RejectsNonHTTPURL(t *testing.T) {
	if _, err := fetchCapabilities(context.Background(), mapgen.NewParser(), "ftp://example.com", pkgwms.Version130); err == nil {
		t.Fatal("expected an error for a non-http url")
	}
}

func TestDefaultOption(t *testing.T) {
	options := []string{"image/png", "image/jpeg"}
	if got := defaultOption(options, "image/jpeg"); got != "image/jpeg" {
		t.Fatalf("got %q", got)
	}
	if got := defaultOption(options, "image/webp"); got != "image/png" {
		t.Fatalf("fallback = %q", got)
	}
}
