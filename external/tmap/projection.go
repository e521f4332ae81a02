package tmap

import (
	"math"

	"github.com/medi-route/triage-api/schema"
)

const earthRadius = 6378137.0

// MercatorToWGS84 converts a spherical mercator (EPSG:3857) point into a
// WGS84 location.
func MercatorToWGS84(x, y float64) schema.Location {
	lon := x / earthRadius * 180 / math.Pi
	lat := (2*math.Atan(math.Exp(y/earthRadius)) - math.Pi/2) * 180 / math.Pi

	return schema.Location{Latitude: lat, Longitude: lon}
}

// WGS84ToMercator is the inverse of MercatorToWGS84.
func WGS84ToMercator(loc schema.Location) (x, y float64) {
	x = loc.Longitude * math.Pi / 180 * earthRadius
	y = math.Log(math.Tan(math.Pi/4+loc.Latitude*math.Pi/360)) * earthRadius
	return x, y
}
