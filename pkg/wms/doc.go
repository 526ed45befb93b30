// Package wms defines the public contracts for loading and parsing OGC Web
// Map Service capability documents. Implementations live under internal/wms
// but satisfy the interfaces declared here, keeping the public API decoupled
// from the wire-level XML structures.
package wms
