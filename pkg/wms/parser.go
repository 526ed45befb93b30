package wms

import "context"

// Parser normalises capability documents into the version-independent
// Capabilities structure downstream packages consume.
type Parser interface {
	Parse(ctx context.Context, doc Document) (Capabilities, error)
}

// ParserOptions exposes parsing toggles.
type ParserOptions struct {
	// Version pins the expected protocol version. Empty sniffs the document
	// root element; a pinned version that disagrees with the payload is an
	// error.
	Version string

	// AllowEmptyContents accepts documents without any named layer. Defaults
	// to false since such documents cannot feed a map.
	AllowEmptyContents bool
}

// ParserOption mutates ParserOptions during construction.
type ParserOption func(*ParserOptions)

// WithVersion pins the expected capabilities version.
func WithVersion(version string) ParserOption {
	return func(opts *ParserOptions) {
		opts.Version = version
	}
}

// WithEmptyContents toggles acceptance of layer-less documents.
func WithEmptyContents(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.AllowEmptyContents = enabled
	}
}

// NewParserOptions applies ParserOption functions and returns the resulting
// configuration.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{}
	for _, opt := range options {
		opt(&cfg)
	}
	return cfg
}

// Construction helpers live in the top-level mapgen package to avoid import cycles.
