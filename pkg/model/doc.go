// Package model exposes the map model renderers consume plus the builder that
// derives it from WMS capabilities. The concrete types live under
// internal/model and are re-exported here so consumers never import internal
// packages directly.
package model
