package mapgen

import (
	internalLoader "github.com/goliatone/go-mapgen/internal/wms/loader"
	internalParser "github.com/goliatone/go-mapgen/internal/wms/parser"
	pkgwms "github.com/goliatone/go-mapgen/pkg/wms"
)

// NewLoader constructs a capabilities loader using the internal
// implementation while keeping the concrete type hidden from consumers.
func NewLoader(options ...pkgwms.LoaderOption) pkgwms.Loader {
	cfg := pkgwms.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// NewParser constructs a capabilities parser backed by the internal
// implementation.
func NewParser(options ...pkgwms.ParserOption) pkgwms.Parser {
	cfg := pkgwms.NewParserOptions(options...)
	return internalParser.New(cfg)
}
