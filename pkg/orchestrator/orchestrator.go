package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	internalLoader "github.com/goliatone/go-mapgen/internal/wms/loader"
	internalParser "github.com/goliatone/go-mapgen/internal/wms/parser"
	"github.com/goliatone/go-mapgen/pkg/model"
	"github.com/goliatone/go-mapgen/pkg/preset"
	"github.com/goliatone/go-mapgen/pkg/render"
	"github.com/goliatone/go-mapgen/pkg/renderers/leaflet"
	"github.com/goliatone/go-mapgen/pkg/renderers/mapjson"
	pkgwms "github.com/goliatone/go-mapgen/pkg/wms"
)

const defaultRendererName = "leaflet"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom capabilities loader.
func WithLoader(loader pkgwms.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithParser injects a custom capabilities parser.
func WithParser(parser pkgwms.Parser) Option {
	return func(o *Orchestrator) {
		o.parser = parser
	}
}

// WithModelBuilder injects a custom map model builder.
func WithModelBuilder(builder model.Builder) Option {
	return func(o *Orchestrator) {
		o.builder = builder
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits
// an explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithDecorators registers decorators that run against the generated
// map model before rendering.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		if len(decorators) == 0 {
			return
		}
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithPresetFS supplies an fs.FS holding preset documents. Pass nil to
// disable the embedded defaults.
func WithPresetFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.presetFS = fsys
		o.presetSpecified = true
	}
}

// WithPreset selects which preset the default decorator applies.
func WithPreset(name string) Option {
	return func(o *Orchestrator) {
		o.presetName = name
	}
}

// WithThemeSelector wires a theme selector consulted whenever a request
// names a theme.
func WithThemeSelector(selector ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// Orchestrator coordinates the load → parse → build → decorate → render
// sequence. Missing dependencies are initialised with the built-in
// implementations so callers can start with a single constructor call.
type Orchestrator struct {
	loader          pkgwms.Loader
	parser          pkgwms.Parser
	builder         model.Builder
	registry        *render.Registry
	defaultRenderer string
	decorators      []model.Decorator
	presetFS        fs.FS
	presetSpecified bool
	presetName      string
	presetLoaded    bool
	themeSelector   ThemeSelector
	initialiseErr   error
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		presetName:      preset.DefaultName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs required to render a map from a WMS
// endpoint.
type Request struct {
	// Source identifies where the capabilities document lives. Optional
	// when Capabilities is supplied.
	Source pkgwms.Source

	// Capabilities lets callers bypass the loader and parser when they
	// already hold a parsed document.
	Capabilities *pkgwms.Capabilities

	// Layers names the WMS layers to compose onto the map. An empty
	// selection yields a base map with a warning.
	Layers []string

	// Format is the GetMap image format. Defaults to image/png.
	Format string

	// Title overrides the service-derived map title.
	Title string

	// Opacity applies to the composed overlay. Zero means opaque.
	Opacity float64

	// Renderer names the renderer to use. If empty, the orchestrator
	// falls back to the configured default renderer.
	Renderer string

	// ThemeName and ThemeVariant select a theme when a selector is
	// configured.
	ThemeName    string
	ThemeVariant string

	// RenderOptions carries per-request instructions renderers can
	// surface. When omitted, renderers receive the zero-value struct.
	RenderOptions render.RenderOptions
}

// Generate executes the pipeline and returns the rendered bytes (HTML
// for the default Leaflet renderer).
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	if !o.defaultsApplied {
		o.applyDefaults()
		if err := o.initialiseErr; err != nil {
			return nil, err
		}
	}

	caps, err := o.resolveCapabilities(ctx, req)
	if err != nil {
		return nil, err
	}

	m, err := o.builder.Build(caps, model.Selection{
		Layers:  req.Layers,
		Format:  req.Format,
		Opacity: req.Opacity,
		Title:   req.Title,
	})
	if err != nil {
		return nil, fmt.Errorf("orchestrator: build map model: %w", err)
	}

	if err := o.applyDecorators(&m); err != nil {
		return nil, err
	}

	options := req.RenderOptions
	if options.Theme == nil {
		cfg, err := o.resolveTheme(req.ThemeName, req.ThemeVariant)
		if err != nil {
			return nil, err
		}
		options.Theme = cfg
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, m, options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}

	return output, nil
}

func (o *Orchestrator) resolveCapabilities(ctx context.Context, req Request) (pkgwms.Capabilities, error) {
	if req.Capabilities != nil {
		return *req.Capabilities, nil
	}
	if req.Source == nil {
		return pkgwms.Capabilities{}, errors.New("orchestrator: source or capabilities is required")
	}

	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return pkgwms.Capabilities{}, fmt.Errorf("orchestrator: load capabilities: %w", err)
	}

	caps, err := o.parser.Parse(ctx, doc)
	if err != nil {
		return pkgwms.Capabilities{}, fmt.Errorf("orchestrator: parse capabilities: %w", err)
	}
	return caps, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDecorators(m *model.MapModel) error {
	if len(o.decorators) == 0 || m == nil {
		return nil
	}
	for _, decorator := range o.decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(m); err != nil {
			return fmt.Errorf("orchestrator: decorate map: %w", err)
		}
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.loader == nil {
		o.loader = internalLoader.New(pkgwms.NewLoaderOptions(pkgwms.WithHTTPFallback(30 * time.Second)))
	}
	if o.parser == nil {
		o.parser = internalParser.New(pkgwms.NewParserOptions())
	}
	if o.builder == nil {
		o.builder = model.NewBuilder()
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := leaflet.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
			o.registry.MustRegister(mapjson.New())
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}

	o.ensurePresetDecorator()

	o.defaultsApplied = true
}

func (o *Orchestrator) ensurePresetDecorator() {
	if o.presetLoaded {
		return
	}
	o.presetLoaded = true

	if !o.presetSpecified && o.presetFS == nil {
		o.presetFS = preset.EmbeddedFS()
	}
	if o.presetFS == nil {
		return
	}

	store, err := preset.LoadFS(o.presetFS)
	if err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: load presets: %w", err)
		return
	}
	if store.Empty() {
		return
	}

	o.decorators = append(o.decorators, preset.NewDecorator(store, o.presetName))
}
