package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	pkgwms "github.com/goliatone/go-mapgen/pkg/wms"
)

func loadHTTP(ctx context.Context, client *http.Client, rawURL, version string, timeout time.Duration) ([]byte, error) {
	if client == nil {
		return nil, errors.New("wms loader: http client is not configured")
	}
	if rawURL == "" {
		return nil, errors.New("wms loader: url is required")
	}

	target, err := capabilitiesURL(rawURL, version)
	if err != nil {
		return nil, err
	}

	reqCtx := ctx
	var cancel context.CancelFunc
	if timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/xml, text/xml")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wms loader: %w: %v", pkgwms.ErrUnreachable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("wms loader: %w: unexpected status %s", pkgwms.ErrUnreachable, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("wms loader: %w: %v", pkgwms.ErrUnreachable, err)
	}
	return data, nil
}

// capabilitiesURL normalises a user-supplied endpoint into a GetCapabilities
// request URL. Existing query parameters win so full capability URLs pass
// through untouched; bare endpoints gain the mandatory service/request pair.
func capabilitiesURL(raw, version string) (string, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("wms loader: parse url: %w", err)
	}

	query := parsed.Query()
	if !hasParam(query, "service") {
		query.Set("service", "WMS")
	}
	if !hasParam(query, "request") {
		query.Set("request", "GetCapabilities")
	}
	if version != "" && !hasParam(query, "version") {
		query.Set("version", version)
	}

	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}

func hasParam(query url.Values, name string) bool {
	for key := range query {
		if strings.EqualFold(key, name) {
			return true
		}
	}
	return false
}
