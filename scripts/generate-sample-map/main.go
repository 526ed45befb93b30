package main

import (
	"context"
	"fmt"
	"os"

	mapgen "github.com/goliatone/go-mapgen"
	pkgwms "github.com/goliatone/go-mapgen/pkg/wms"
)

func main() {
	ctx := context.Background()

	const (
		fixturePath = "examples/fixtures/capabilities.xml"
		outputPath  = "examples/fixtures/sample-map.html"
	)

	source := pkgwms.SourceFromFile(fixturePath)
	html, err := mapgen.GenerateHTML(ctx, source, []string{"wandelnetwerken", "wandelknooppunten"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to generate map: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(outputPath, html, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write output: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Map written to %s\n", outputPath)
}
