package loader

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"

	pkgwms "github.com/goliatone/go-mapgen/pkg/wms"
)

// Loader implements pkgwms.Loader by delegating to file, fs.FS, or HTTP
// strategies. Construction helpers live in the top-level mapgen package.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
	version   string
}

// Ensure the implementation satisfies the public interface.
var _ pkgwms.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options pkgwms.LoaderOptions) pkgwms.Loader {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case options.AllowHTTPFallback:
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Loader{
		fs:        options.FileSystem,
		http:      httpClient,
		allowHTTP: httpClient != nil,
		timeout:   timeout,
		version:   options.Version,
	}
}

// Load fetches a document from the provided source and wraps it in a
// Document.
func (l *Loader) Load(ctx context.Context, src pkgwms.Source) (pkgwms.Document, error) {
	if src == nil {
		return pkgwms.Document{}, errors.New("wms loader: source is nil")
	}

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case pkgwms.SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case pkgwms.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case pkgwms.SourceKindURL:
		if !l.allowHTTP {
			return pkgwms.Document{}, errors.New("wms loader: http support disabled")
		}
		data, err = loadHTTP(ctx, l.http, src.Location(), l.version, l.timeout)
	default:
		err = errors.New("wms loader: unsupported source kind")
	}
	if err != nil {
		return pkgwms.Document{}, err
	}

	return pkgwms.NewDocument(src, data)
}
