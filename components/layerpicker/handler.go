package layerpicker

import (
	"encoding/json"
	"errors"
	"net/http"
	neturl "net/url"
	"strconv"
	"strings"

	cache "github.com/patrickmn/go-cache"

	pkgwms "github.com/goliatone/go-mapgen/pkg/wms"
)

const (
	msgUnreachable     = "The provided url seems to be incorrect. Please check input for WMS url."
	msgNotCapabilities = "The provided url does not seem to point at a WMS-layer, please check input for WMS url."
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// Option is a single select entry for form inputs.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type optionsResponse struct {
	Data []Option `json:"data"`
}

// ServiceDetails summarises a capabilities document for detail views.
type ServiceDetails struct {
	Name    string   `json:"name"`
	BaseURL string   `json:"baseUrl"`
	Version string   `json:"version"`
	Formats []string `json:"formats"`
	Layers  []string `json:"layers"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type picker struct {
	opts  Options
	cache *cache.Cache
}

func newPicker(opts Options) *picker {
	p := &picker{opts: opts}
	if opts.CacheTTL > 0 {
		p.cache = cache.New(opts.CacheTTL, 2*opts.CacheTTL)
	}
	return p
}

// LayersHandler builds a net/http handler with default options plus any
// overrides.
func LayersHandler(fns ...OptionFn) http.Handler {
	return newPicker(NewOptions(fns...)).layersHandler()
}

// ServiceHandler builds a net/http handler with default options plus
// any overrides.
func ServiceHandler(fns ...OptionFn) http.Handler {
	return newPicker(NewOptions(fns...)).serviceHandler()
}

func (p *picker) layersHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !p.accept(w, r) {
			return
		}

		endpoint := strings.TrimSpace(r.URL.Query().Get(p.opts.URLParam))
		if endpoint == "" {
			p.writeOptions(w, r, []Option{{Value: "", Label: PlaceholderOption}})
			return
		}

		version := r.URL.Query().Get(p.opts.VersionParam)
		caps, err := p.capabilities(r, endpoint, version)
		if err != nil {
			// Option lookups degrade to the placeholder so the form
			// stays usable while the url is being typed.
			p.opts.Logger.WithError(err).WithField("url", endpoint).Warn("layer lookup failed")
			p.writeOptions(w, r, []Option{{Value: "", Label: PlaceholderOption}})
			return
		}

		query := strings.ToLower(strings.TrimSpace(r.URL.Query().Get(p.opts.SearchParam)))
		limit := clampLimit(parseInt(r.URL.Query().Get(p.opts.LimitParam)), p.opts)

		options := make([]Option, 0, len(caps.Contents()))
		for _, layer := range caps.Contents() {
			label := layer.Title
			if label == "" {
				label = layer.Name
			}
			if query != "" &&
				!strings.Contains(strings.ToLower(layer.Name), query) &&
				!strings.Contains(strings.ToLower(label), query) {
				continue
			}
			options = append(options, Option{Value: layer.Name, Label: label})
			if limit > 0 && len(options) >= limit {
				break
			}
		}

		p.writeOptions(w, r, options)
	})
}

func (p *picker) serviceHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !p.accept(w, r) {
			return
		}

		endpoint := strings.TrimSpace(r.URL.Query().Get(p.opts.URLParam))
		if endpoint == "" {
			writeError(w, http.StatusBadRequest, "Please enter a WMS url")
			return
		}

		version := r.URL.Query().Get(p.opts.VersionParam)
		caps, err := p.capabilities(r, endpoint, version)
		if err != nil {
			p.opts.Logger.WithError(err).WithField("url", endpoint).Warn("service lookup failed")
			code, message := mapServiceError(err)
			writeError(w, code, message)
			return
		}

		details := ServiceDetails{
			Name:    caps.Service.Title,
			BaseURL: caps.MapURL(),
			Version: caps.Version,
			Formats: caps.Formats,
			Layers:  caps.LayerNames(),
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}
		_ = json.NewEncoder(w).Encode(details)
	})
}

// accept filters method and guard failures; it reports whether request
// processing should continue.
func (p *picker) accept(w http.ResponseWriter, r *http.Request) bool {
	if r == nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return false
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return false
	}
	if p.opts.Guard != nil {
		if err := p.opts.Guard(r); err != nil {
			writeGuardError(w, err)
			return false
		}
	}
	return true
}

func (p *picker) capabilities(r *http.Request, endpoint, version string) (pkgwms.Capabilities, error) {
	key := endpoint + "\x00" + version
	if p.cache != nil {
		if cached, ok := p.cache.Get(key); ok {
			if caps, ok := cached.(pkgwms.Capabilities); ok {
				return caps, nil
			}
		}
	}

	if version != "" {
		if !pkgwms.ValidVersion(version) {
			return pkgwms.Capabilities{}, StatusError{
				Code: http.StatusBadRequest,
				Err:  errors.New("unsupported WMS version " + version),
			}
		}
		endpoint = withVersion(endpoint, version)
	}

	src, err := pkgwms.ParseSourceURL(endpoint)
	if err != nil {
		return pkgwms.Capabilities{}, err
	}

	doc, err := p.opts.Loader.Load(r.Context(), src)
	if err != nil {
		return pkgwms.Capabilities{}, err
	}

	caps, err := p.opts.Parser.Parse(r.Context(), doc)
	if err != nil {
		return pkgwms.Capabilities{}, err
	}

	if p.cache != nil {
		p.cache.Set(key, caps, cache.DefaultExpiration)
	}
	return caps, nil
}

func (p *picker) writeOptions(w http.ResponseWriter, r *http.Request, options []Option) {
	if options == nil {
		options = []Option{}
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(optionsResponse{Data: options})
}

func mapServiceError(err error) (int, string) {
	var httpErr HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.StatusCode(), err.Error()
	case errors.Is(err, pkgwms.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, pkgwms.ErrUnreachable):
		return http.StatusBadGateway, msgUnreachable
	case errors.Is(err, pkgwms.ErrNotCapabilities):
		return http.StatusUnprocessableEntity, msgNotCapabilities
	default:
		return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message})
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
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

func parseInt(raw string) int {
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}
