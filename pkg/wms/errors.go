package wms

import "errors"

// Sentinel errors shared across the loader and parser so front-ends can map
// failures onto distinct user-facing messages: an endpoint that cannot be
// reached is a different problem than an endpoint that answers with something
// other than a capabilities document.
var (
	// ErrUnreachable marks network-level failures while fetching a
	// capabilities document (DNS, connect, timeout, non-2xx status).
	ErrUnreachable = errors.New("wms: service unreachable")

	// ErrNotCapabilities marks payloads that are not a WMS capabilities
	// document (malformed XML, unexpected root element, HTML error pages).
	ErrNotCapabilities = errors.New("wms: not a capabilities document")

	// ErrInvalidInput marks malformed caller input such as an unparseable
	// endpoint URL or an unsupported protocol version.
	ErrInvalidInput = errors.New("wms: invalid input")

	// ErrUnknownLayer marks a layer selection that the capabilities document
	// does not advertise.
	ErrUnknownLayer = errors.New("wms: unknown layer")
)
