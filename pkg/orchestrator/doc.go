// Package orchestrator wires the full pipeline from WMS capabilities
// document to rendered map output. It owns the defaults (embedded
// presets, the Leaflet renderer) while every stage remains replaceable
// through options.
package orchestrator
