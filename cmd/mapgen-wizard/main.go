// Command mapgen-wizard walks through composing a WMS map in three
// steps: a short introduction, the WMS set-up (endpoint, version,
// format), and the layer selection that produces the final HTML page.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	survey "github.com/AlecAivazis/survey/v2"
	"github.com/apex/log"
	"github.com/spf13/cobra"

	mapgen "github.com/goliatone/go-mapgen"
	"github.com/goliatone/go-mapgen/pkg/orchestrator"
	"github.com/goliatone/go-mapgen/pkg/preset"
	pkgwms "github.com/goliatone/go-mapgen/pkg/wms"
)

const intro = `Welcome to the map wizard.

A WMS (Web Map Service) layer is a GIS data layer requested as map
images over the internet. Its main advantage is that the data is always
up to date, since the source lives in one place and you do not host it
yourself. In the Netherlands, PDOK (https://www.pdok.nl/datasets) is
the main provider of public WMS layers.

To put a WMS layer on a map we need its base url, the layer names, and
an image format. The next step gathers exactly that.`

func main() {
	var (
		output  string
		url     string
		version string
		format  string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "mapgen-wizard",
		Short: "Interactive wizard that composes a Leaflet map from a WMS endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
			return run(cmd.Context(), output, url, version, format)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(&output, "output", "o", "map.html", "file to write the generated map to")
	cmd.Flags().StringVar(&url, "url", "", "prefill the WMS url prompt")
	cmd.Flags().StringVar(&version, "version", pkgwms.Version130, "prefill the WMS version prompt")
	cmd.Flags().StringVar(&format, "format", "image/png", "prefill the image format prompt")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	if err := cmd.Execute(); err != nil {
		log.WithError(err).Fatal("wizard failed")
	}
}

func run(ctx context.Context, output, url, version, format string) error {
	fmt.Println(intro)
	fmt.Println()

	sample := sampleEndpoint()

	parser := mapgen.NewParser()

	var caps pkgwms.Capabilities
	for {
		var err error
		url, version, format, err = askConnection(url, version, format, sample)
		if err != nil {
			return err
		}

		caps, err = fetchCapabilities(ctx, parser, url, version)
		if err == nil {
			break
		}

		switch {
		case errors.Is(err, pkgwms.ErrUnreachable):
			fmt.Println("The provided url seems to be incorrect. Please check input for WMS url.")
		case errors.Is(err, pkgwms.ErrNotCapabilities):
			fmt.Println("The provided url does not seem to point at a WMS-layer, please check input for WMS url.")
		default:
			return err
		}

		retry := true
		if err := survey.AskOne(&survey.Confirm{Message: "Try another url?", Default: true}, &retry); err != nil {
			return err
		}
		if !retry {
			return errors.New("no WMS endpoint configured")
		}
		url = ""
	}

	fmt.Printf("\nConnected to %q (version %s)\n", caps.Service.Title, caps.Version)
	fmt.Printf("Base url: %s\n", caps.MapURL())
	fmt.Printf("Layers:   %d available\n\n", len(caps.LayerNames()))

	layers, err := askLayers(caps.LayerNames())
	if err != nil {
		return err
	}

	gen := mapgen.NewOrchestrator(orchestrator.WithPreset(preset.DefaultName))
	page, err := gen.Generate(ctx, orchestrator.Request{
		Capabilities: &caps,
		Layers:       layers,
		Format:       format,
	})
	if err != nil {
		return fmt.Errorf("generate map: %w", err)
	}

	if err := os.WriteFile(output, page, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	fmt.Printf("Map written to %s\n", output)
	fmt.Println("Note: depending on the WMS layer you are using, you might need to zoom in or out to see it appear on the map.")
	return nil
}

func askConnection(url, version, format, sample string) (string, string, string, error) {
	if url == "" && sample != "" {
		useSample := false
		prompt := &survey.Confirm{
			Message: "Use sample WMS?",
			Help:    sample,
			Default: false,
		}
		if err := survey.AskOne(prompt, &useSample); err != nil {
			return "", "", "", err
		}
		if useSample {
			url = sample
		}
	}

	questions := []*survey.Question{}
	if url == "" {
		questions = append(questions, &survey.Question{
			Name: "url",
			Prompt: &survey.Input{
				Message: "WMS url",
				Help:    "Please enter the WMS url here",
			},
			Validate: survey.Required,
		})
	}
	questions = append(questions,
		&survey.Question{
			Name: "version",
			Prompt: &survey.Select{
				Message: "WMS version",
				Options: pkgwms.Versions(),
				Default: defaultOption(pkgwms.Versions(), version),
				Help:    "The most common version is 1.3.0",
			},
		},
		&survey.Question{
			Name: "format",
			Prompt: &survey.Select{
				Message: "Format",
				Options: []string{"image/png", "image/jpeg"},
				Default: defaultOption([]string{"image/png", "image/jpeg"}, format),
				Help:    "The format in which the layer is retrieved. Most common is png",
			},
		},
	)

	answers := struct {
		URL     string
		Version string
		Format  string
	}{URL: url}

	if err := survey.Ask(questions, &answers); err != nil {
		return "", "", "", err
	}
	return strings.TrimSpace(answers.URL), answers.Version, answers.Format, nil
}

func askLayers(available []string) ([]string, error) {
	if len(available) == 0 {
		return nil, nil
	}

	var selected []string
	prompt := &survey.MultiSelect{
		Message: "Display layers",
		Options: available,
		Help:    "Select the layers to show on the map",
	}
	if err := survey.AskOne(prompt, &selected); err != nil {
		return nil, err
	}
	return selected, nil
}

func fetchCapabilities(ctx context.Context, parser pkgwms.Parser, url, version string) (pkgwms.Capabilities, error) {
	src, err := pkgwms.ParseSourceURL(url)
	if err != nil {
		return pkgwms.Capabilities{}, err
	}

	loader := mapgen.NewLoader(
		pkgwms.WithHTTPFallback(30*time.Second),
		pkgwms.WithRequestVersion(version),
	)

	fetchCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	doc, err := loader.Load(fetchCtx, src)
	if err != nil {
		return pkgwms.Capabilities{}, err
	}

	caps, err := parser.Parse(fetchCtx, doc)
	if err != nil {
		return pkgwms.Capabilities{}, err
	}
	if version != "" && caps.Version != version {
		log.WithFields(log.Fields{
			"requested": version,
			"got":       caps.Version,
		}).Debug("service negotiated a different version")
	}
	return caps, nil
}

func sampleEndpoint() string {
	store, err := preset.LoadFS(preset.EmbeddedFS())
	if err != nil {
		return ""
	}
	p, ok := store.Preset(preset.DefaultName)
	if !ok || len(p.Samples) == 0 {
		return ""
	}
	return p.Samples[0].URL
}

func defaultOption(options []string, value string) string {
	for _, option := range options {
		if option == value {
			return option
		}
	}
	return options[0]
}
