package loader

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	pkgwms "github.com/goliatone/go-mapgen/pkg/wms"
)

const fixtureXML = `<?xml version="1.0"?><WMS_Capabilities version="1.3.0"></WMS_Capabilities>`

func TestLoad_FromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"caps.xml": &fstest.MapFile{Data: []byte(fixtureXML)},
	}
	l := New(pkgwms.NewLoaderOptions(pkgwms.WithFileSystem(fsys)))

	doc, err := l.Load(context.Background(), pkgwms.SourceFromFS("caps.xml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != fixtureXML {
		t.Fatalf("unexpected payload: %q", doc.Raw())
	}
	if doc.Location() != "caps.xml" {
		t.Fatalf("unexpected location: %q", doc.Location())
	}
}

func TestLoad_FSWithoutFilesystem(t *testing.T) {
	l := New(pkgwms.NewLoaderOptions())
	if _, err := l.Load(context.Background(), pkgwms.SourceFromFS("caps.xml")); err == nil {
		t.Fatalf("expected error when filesystem is not configured")
	}
}

func TestLoad_HTTPDisabledByDefault(t *testing.T) {
	l := New(pkgwms.NewLoaderOptions())
	_, err := l.Load(context.Background(), pkgwms.SourceFromURL("https://example.com/wms"))
	if err == nil {
		t.Fatalf("expected http support disabled error")
	}
}

func TestLoad_HTTPAddsCapabilitiesParams(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(fixtureXML))
	}))
	defer server.Close()

	l := New(pkgwms.NewLoaderOptions(
		pkgwms.WithHTTPFallback(5*time.Second),
		pkgwms.WithRequestVersion(pkgwms.Version130),
	))

	doc, err := l.Load(context.Background(), pkgwms.SourceFromURL(server.URL+"/wms"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(doc.Raw()) == 0 {
		t.Fatalf("expected payload")
	}

	for _, param := range []string{"service=WMS", "request=GetCapabilities", "version=1.3.0"} {
		if !strings.Contains(gotQuery, param) {
			t.Fatalf("query %q missing %q", gotQuery, param)
		}
	}
}

func TestLoad_HTTPKeepsExistingParams(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(fixtureXML))
	}))
	defer server.Close()

	l := New(pkgwms.NewLoaderOptions(pkgwms.WithHTTPFallback(0)))

	// Full GetCapabilities URLs pass through without duplicated parameters.
	src := pkgwms.SourceFromURL(server.URL + "/wms?version=1.1.1&request=getcapabilities&service=wms")
	if _, err := l.Load(context.Background(), src); err != nil {
		t.Fatalf("load: %v", err)
	}
	if strings.Count(strings.ToLower(gotQuery), "version=") != 1 {
		t.Fatalf("version duplicated in query %q", gotQuery)
	}
	if strings.Count(strings.ToLower(gotQuery), "request=") != 1 {
		t.Fatalf("request duplicated in query %q", gotQuery)
	}
}

func TestLoad_HTTPErrorStatusIsUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer server.Close()

	l := New(pkgwms.NewLoaderOptions(pkgwms.WithHTTPFallback(0)))
	_, err := l.Load(context.Background(), pkgwms.SourceFromURL(server.URL))
	if !errors.Is(err, pkgwms.ErrUnreachable) {
		t.Fatalf("expected ErrUnreachable, got %v", err)
	}
}

func TestLoad_HTTPConnectFailureIsUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	l := New(pkgwms.NewLoaderOptions(pkgwms.WithHTTPFallback(time.Second)))
	_, err := l.Load(context.Background(), pkgwms.SourceFromURL(url))
	if !errors.Is(err, pkgwms.ErrUnreachable) {
		t.Fatalf("expected ErrUnreachable, got %v", err)
	}
}

func TestLoad_NilSource(t *testing.T) {
	l := New(pkgwms.NewLoaderOptions())
	if _, err := l.Load(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil source")
	}
}
