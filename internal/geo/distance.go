// Package geo holds the pure geospatial math: great-circle distance and
// distance-based station ranking. Nothing here fetches data or keeps
// state; callers re-invoke on every origin or candidate-set change.
package geo

import (
	"math"

	"refuel-rescue/internal/domain"
)

const earthRadiusKm = 6371.0

// DistanceKm returns the haversine great-circle distance between two
// coordinates in kilometers, at full floating precision. Symmetric in
// its arguments; zero for equal points.
func DistanceKm(a, b domain.Coordinate) float64 {
	lat1 := degreesToRadians(a.Lat)
	lat2 := degreesToRadians(b.Lat)
	dLat := degreesToRadians(b.Lat - a.Lat)
	dLng := degreesToRadians(b.Lng - a.Lng)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)

	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLng*sinLng
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// RoundKm rounds a distance to the 2-decimal display precision. Sorting
// uses full precision; this is presentation only.
func RoundKm(km float64) float64 {
	return math.Round(km*100) / 100
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
