// Package testsupport collects helpers shared by contract and
// integration tests: capability fixtures, map model goldens, and small
// conveniences around golden file updates.
package testsupport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	pkgmodel "github.com/goliatone/go-mapgen/pkg/model"
	pkgwms "github.com/goliatone/go-mapgen/pkg/wms"
)

// LoadDocument reads a fixture and builds a wms.Document using a file
// source. Testing helpers fail the test on error to keep contract tests
// concise.
func LoadDocument(t *testing.T, path string) pkgwms.Document {
	t.Helper()

	doc, err := LoadDocumentFromPath(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// LoadDocumentFromPath returns a Document without requiring testing.T,
// allowing callers to wire fixtures in setup functions.
func LoadDocumentFromPath(path string) (pkgwms.Document, error) {
	if path == "" {
		return pkgwms.Document{}, errors.New("testsupport: document path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return pkgwms.Document{}, fmt.Errorf("testsupport: read document: %w", err)
	}
	doc, err := pkgwms.NewDocument(pkgwms.SourceFromFile(path), data)
	if err != nil {
		return pkgwms.Document{}, fmt.Errorf("testsupport: new document: %w", err)
	}
	return doc, nil
}

// MustLoadMapModel loads a JSON golden file into a MapModel structure.
func MustLoadMapModel(t *testing.T, path string) pkgmodel.MapModel {
	t.Helper()

	m, err := LoadMapModel(path)
	if err != nil {
		t.Fatalf("load map model: %v", err)
	}
	return m
}

// LoadMapModel reads a JSON fixture into a MapModel, returning an error
// for callers managing setup outside of *testing.T.
func LoadMapModel(path string) (pkgmodel.MapModel, error) {
	if path == "" {
		return pkgmodel.MapModel{}, errors.New("testsupport: map model path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return pkgmodel.MapModel{}, fmt.Errorf("testsupport: read map model: %w", err)
	}
	var out pkgmodel.MapModel
	if err := json.Unmarshal(data, &out); err != nil {
		return pkgmodel.MapModel{}, fmt.Errorf("testsupport: unmarshal map model: %w", err)
	}
	return out, nil
}

// WriteGolden writes arbitrary data to a golden file when UPDATE_GOLDENS
// is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set.
// Returns true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
