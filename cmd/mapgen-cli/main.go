package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	mapgen "github.com/goliatone/go-mapgen"
	"github.com/goliatone/go-mapgen/pkg/orchestrator"
	pkgwms "github.com/goliatone/go-mapgen/pkg/wms"
)

func main() {
	source := flag.String("source", "", "WMS capabilities path or URL")
	layers := flag.String("layers", "", "comma separated layer names to display")
	version := flag.String("version", "", "WMS version to negotiate (1.1.1 or 1.3.0)")
	format := flag.String("format", "image/png", "GetMap image format")
	renderer := flag.String("renderer", "leaflet", "renderer to use (leaflet or json)")
	title := flag.String("title", "", "map title override")
	output := flag.String("output", "", "output file (stdout if empty)")
	flag.Parse()

	ctx := context.Background()

	src := parseSource(*source)
	if src == nil {
		log.Fatalf("invalid source: %q", *source)
	}

	var options []orchestrator.Option
	if *version != "" {
		if !pkgwms.ValidVersion(*version) {
			log.Fatalf("unsupported WMS version: %q", *version)
		}
		options = append(options, orchestrator.WithLoader(newLoader(*version)))
	}

	gen := orchestrator.New(options...)

	req := orchestrator.Request{
		Source:   src,
		Layers:   splitLayers(*layers),
		Format:   *format,
		Title:    *title,
		Renderer: *renderer,
	}

	page, err := gen.Generate(ctx, req)
	if err != nil {
		log.Fatalf("Failed to generate map: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, page, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Map written to %s\n", *output)
	} else {
		fmt.Println(string(page))
	}
}

func parseSource(raw string) pkgwms.Source {
	path := strings.TrimSpace(raw)
	if path == "" {
		return nil
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return pkgwms.SourceFromURL(path)
	}
	return pkgwms.SourceFromFile(path)
}

func newLoader(version string) pkgwms.Loader {
	return mapgen.NewLoader(
		pkgwms.WithHTTPFallback(30*time.Second),
		pkgwms.WithRequestVersion(version),
	)
}

func splitLayers(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
