package domain

import "math"

// Mean Earth radius used by the great-circle formula.
const earthRadiusMeters = 6371000.0

// Haversine returns the great-circle distance between two points in meters.
//
// Pure math with no network dependency: this is the terminal fallback for
// every higher-level operation, so a distance query always has an answer
// even when no routing provider is usable. Symmetric, zero for equal points.
func Haversine(a, b Point) float64 {
	dLat := radians(b.Lat - a.Lat)
	dLng := radians(b.Lng - a.Lng)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)

	h := sinLat*sinLat + math.Cos(radians(a.Lat))*math.Cos(radians(b.Lat))*sinLng*sinLng

	return 2 * earthRadiusMeters * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
