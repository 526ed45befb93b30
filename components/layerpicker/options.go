package layerpicker

import (
	"net/http"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/discard"

	internalLoader "github.com/goliatone/go-mapgen/internal/wms/loader"
	internalParser "github.com/goliatone/go-mapgen/internal/wms/parser"
	pkgwms "github.com/goliatone/go-mapgen/pkg/wms"
)

// PlaceholderOption is returned when a layer request carries no WMS
// url; front-ends show it as the sole entry of the select input.
const PlaceholderOption = "Please enter WMS url and version"

type GuardFunc func(r *http.Request) error

type Options struct {
	LayersPath  string
	ServicePath string

	URLParam     string
	VersionParam string
	SearchParam  string
	LimitParam   string

	DefaultLimit int
	MaxLimit     int

	// CacheTTL bounds how long a parsed capabilities document is served
	// without re-fetching. Zero disables caching.
	CacheTTL time.Duration

	Guard  GuardFunc
	Logger log.Interface

	Loader pkgwms.Loader
	Parser pkgwms.Parser
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		LayersPath:   "/api/wms/layers",
		ServicePath:  "/api/wms/service",
		URLParam:     "url",
		VersionParam: "version",
		SearchParam:  "q",
		LimitParam:   "limit",
		DefaultLimit: 50,
		MaxLimit:     200,
		CacheTTL:     time.Minute,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.LayersPath == "" {
		opts.LayersPath = "/api/wms/layers"
	}
	if opts.ServicePath == "" {
		opts.ServicePath = "/api/wms/service"
	}
	if opts.URLParam == "" {
		opts.URLParam = "url"
	}
	if opts.VersionParam == "" {
		opts.VersionParam = "version"
	}
	if opts.SearchParam == "" {
		opts.SearchParam = "q"
	}
	if opts.LimitParam == "" {
		opts.LimitParam = "limit"
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = 50
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = 200
	}
	if opts.Logger == nil {
		opts.Logger = &log.Logger{Handler: discard.New()}
	}
	if opts.Loader == nil {
		opts.Loader = internalLoader.New(pkgwms.NewLoaderOptions(
			pkgwms.WithHTTPFallback(30 * time.Second),
		))
	}
	if opts.Parser == nil {
		opts.Parser = internalParser.New(pkgwms.NewParserOptions())
	}
	return opts
}

func WithLayersPath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.LayersPath = path
	}
}

func WithServicePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.ServicePath = path
	}
}

func WithURLParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.URLParam = name
	}
}

func WithVersionParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.VersionParam = name
	}
}

func WithSearchParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SearchParam = name
	}
}

func WithLimitParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.LimitParam = name
	}
}

func WithDefaultLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DefaultLimit = limit
	}
}

func WithMaxLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxLimit = limit
	}
}

func WithCacheTTL(ttl time.Duration) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.CacheTTL = ttl
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithLogger(logger log.Interface) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

func WithLoader(loader pkgwms.Loader) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Loader = loader
	}
}

func WithParser(parser pkgwms.Parser) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Parser = parser
	}
}

func clampLimit(limit int, opts Options) int {
	if limit < 0 {
		return 0
	}
	if limit == 0 {
		limit = opts.DefaultLimit
	}
	if opts.MaxLimit > 0 && limit > opts.MaxLimit {
		return opts.MaxLimit
	}
	return limit
}
