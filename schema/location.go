package schema

import "math"

// Location is a WGS84 coordinate pair.
type Location struct {
	Latitude  float64 `json:"latitude" bson:"latitude"`
	Longitude float64 `json:"longitude" bson:"longitude"`
}

// IsZero reports whether the location was never resolved.
func (l Location) IsZero() bool {
	return l.Latitude == 0 && l.Longitude == 0
}

// RoundKilometers rounds a distance to three decimals, the precision the
// routing results are reported with.
func RoundKilometers(km float64) float64 {
	return math.Round(km*1000) / 1000
}
