package model

import (
	"math"

	pkgwms "github.com/goliatone/go-mapgen/pkg/wms"
)

const (
	minZoom = 1
	maxZoom = 18
)

// viewForBox centres the camera on a bounding box and picks the zoom level
// whose 360/2^z degree window just covers the larger span of the box.
func viewForBox(box pkgwms.BoundingBox) View {
	lat, lon := box.Center()

	span := box.East - box.West
	if ns := box.North - box.South; ns > span {
		span = ns
	}

	zoom := maxZoom
	if span > 0 {
		zoom = int(math.Floor(math.Log2(360 / span)))
	}
	if zoom < minZoom {
		zoom = minZoom
	}
	if zoom > maxZoom {
		zoom = maxZoom
	}

	return View{Lat: lat, Lon: lon, Zoom: zoom}
}
