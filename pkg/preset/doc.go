// Package preset loads map presets from JSON/YAML documents. A preset
// bundles a fallback view, a catalogue of base tile layers, and sample
// WMS endpoints that front-ends can offer as starting points.
package preset
