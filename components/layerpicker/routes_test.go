package layerpicker

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRegisterRoutes_MountsBothEndpoints(t *testing.T) {
	mux := http.NewServeMux()

	patterns, err := New(WithLoader(&stubLoader{payload: []byte(capabilitiesXML)})).RegisterRoutes(mux, "/component")
	if err != nil {
		t.Fatalf("register routes: %v", err)
	}

	want := []string{"/component/api/wms/layers", "/component/api/wms/service"}
	if len(patterns) != 2 || patterns[0] != want[0] || patterns[1] != want[1] {
		t.Fatalf("patterns = %v, want %v", patterns, want)
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, want[0], nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("layers endpoint status = %d", rec.Code)
	}
}

func TestRegisterRoutes_RequiresMux(t *testing.T) {
	if _, err := RegisterRoutes(nil, "/"); err == nil {
		t.Fatal("expected error for nil mux")
	}
}

func TestMountPaths(t *testing.T) {
	cases := []struct {
		base        string
		wantLayers  string
		wantService string
	}{
		{"", "/api/wms/layers", "/api/wms/service"},
		{"/", "/api/wms/layers", "/api/wms/service"},
		{"component", "/component/api/wms/layers", "/component/api/wms/service"},
		{"/component/", "/component/api/wms/layers", "/component/api/wms/service"},
	}

	for _, tc := range cases {
		layers, service := MountPaths(tc.base)
		if layers != tc.wantLayers || service != tc.wantService {
			t.Fatalf("MountPaths(%q) = %q, %q", tc.base, layers, service)
		}
	}
}
