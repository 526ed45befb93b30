package main

import (
	"context"
	"embed"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var apiSpec []byte

//go:embed pages/*
var pages embed.FS

// loadAPISpec parses and validates the embedded API description. The
// server refuses to start when the contract it serves is broken.
func loadAPISpec(ctx context.Context) (*openapi3.T, error) {
	loader := &openapi3.Loader{Context: ctx}

	spec, err := loader.LoadFromData(apiSpec)
	if err != nil {
		return nil, fmt.Errorf("load api description: %w", err)
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return nil, fmt.Errorf("api description contains no paths")
	}
	if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("validate api description: %w", err)
	}
	return spec, nil
}

func specHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(apiSpec)
	})
}
