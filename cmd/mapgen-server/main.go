// Command mapgen-server hosts the three step map wizard: static pages
// for the introduction, the WMS set-up, and the map display, backed by
// the layerpicker API and a map generation endpoint.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	neturl "net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"

	"github.com/goliatone/go-mapgen/components/layerpicker"
	"github.com/goliatone/go-mapgen/pkg/model"
	"github.com/goliatone/go-mapgen/pkg/orchestrator"
	"github.com/goliatone/go-mapgen/pkg/render"
	"github.com/goliatone/go-mapgen/pkg/renderers/leaflet"
	"github.com/goliatone/go-mapgen/pkg/renderers/mapjson"
	pkgwms "github.com/goliatone/go-mapgen/pkg/wms"
)

const defaultRendererName = "leaflet"

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	log.SetHandler(cli.Default)
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	spec, err := loadAPISpec(context.Background())
	if err != nil {
		log.WithError(err).Fatal("invalid API description")
	}
	log.Debugf("API description OK, %d paths", len(spec.Paths.Map()))

	mux := http.NewServeMux()

	patterns, err := layerpicker.New(layerpicker.WithLogger(log.Log)).RegisterRoutes(mux, "")
	if err != nil {
		log.WithError(err).Fatal("mount layerpicker")
	}
	for _, pattern := range patterns {
		log.Debugf("mounted %s", pattern)
	}

	leafletRenderer, err := leaflet.New()
	if err != nil {
		log.WithError(err).Fatal("leaflet renderer")
	}
	registry := render.NewRegistry()
	registry.MustRegister(leafletRenderer)
	registry.MustRegister(mapjson.New())

	gen := orchestrator.New(orchestrator.WithRegistry(registry))
	mux.Handle("/api/map", mapHandler(gen, registry))
	mux.Handle("/openapi.yaml", specHandler())
	mux.Handle("/", http.FileServerFS(PagesFS()))

	srv := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Infof("listening on %s", *addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("shutdown")
	}
}

// mapHandler renders a Leaflet page for the requested WMS endpoint and
// layer selection. Without a url it serves the introduction's base map
// with the draw control enabled.
func mapHandler(gen *orchestrator.Orchestrator, registry *render.Registry) http.Handler {
	baseRenderer, rendererErr := registry.Get(defaultRendererName)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		query := r.URL.Query()
		rawURL := strings.TrimSpace(query.Get("url"))

		req := orchestrator.Request{
			Layers:   splitLayers(query.Get("layers")),
			Format:   query.Get("format"),
			Title:    query.Get("title"),
			Renderer: query.Get("renderer"),
		}

		if rawURL == "" {
			if rendererErr != nil {
				log.WithError(rendererErr).Error("base renderer unavailable")
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			m := model.MapModel{
				Title:     "Leaflet sample map",
				View:      model.DefaultView(),
				BaseLayer: model.DefaultBaseLayer(),
				Controls:  model.Controls{LayerControl: true, Draw: true, Scale: true},
			}
			page, err := baseRenderer.Render(r.Context(), m, render.RenderOptions{Title: req.Title})
			if err != nil {
				log.WithError(err).Error("base map render failed")
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", baseRenderer.ContentType())
			if r.Method == http.MethodHead {
				return
			}
			_, _ = w.Write(page)
			return
		}

		if version := strings.TrimSpace(query.Get("version")); version != "" {
			if !pkgwms.ValidVersion(version) {
				http.Error(w, "unsupported WMS version "+version, http.StatusBadRequest)
				return
			}
			rawURL = withVersion(rawURL, version)
		}

		src, err := pkgwms.ParseSourceURL(rawURL)
		if err != nil {
			http.Error(w, "invalid WMS url", http.StatusBadRequest)
			return
		}
		req.Source = src

		page, err := gen.Generate(r.Context(), req)
		if err != nil {
			code, message := mapError(err)
			log.WithError(err).WithField("url", rawURL).Warn("map generation failed")
			http.Error(w, message, code)
			return
		}

		name := strings.TrimSpace(req.Renderer)
		if name == "" {
			name = defaultRendererName
		}
		contentType := "text/html; charset=utf-8"
		if renderer, lookupErr := registry.Get(name); lookupErr == nil {
			contentType = renderer.ContentType()
		}
		w.Header().Set("Content-Type", contentType)
		if r.Method == http.MethodHead {
			return
		}
		_, _ = w.Write(page)
	})
}

func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, pkgwms.ErrInvalidInput):
		return http.StatusBadRequest, "invalid WMS url"
	case errors.Is(err, pkgwms.ErrUnreachable):
		return http.StatusBadGateway, "The provided url seems to be incorrect. Please check input for WMS url."
	case errors.Is(err, pkgwms.ErrNotCapabilities):
		return http.StatusUnprocessableEntity, "The provided url does not seem to point at a WMS-layer, please check input for WMS url."
	case errors.Is(err, pkgwms.ErrUnknownLayer):
		return http.StatusUnprocessableEntity, err.Error()
	default:
		return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
	}
}

// withVersion sets the version query parameter unless the endpoint
// already carries one.
func withVersion(endpoint, version string) string {
	parsed, err := neturl.Parse(endpoint)
	if err != nil {
		return endpoint
	}
	query := parsed.Query()
	for key := range query {
		if strings.EqualFold(key, "version") {
			return endpoint
		}
	}
	query.Set("version", version)
	parsed.RawQuery = query.Encode()
	return parsed.String()
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
