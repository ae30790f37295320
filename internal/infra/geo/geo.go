// Package geo provides great-circle distance math over orb points.
package geo

import (
	"math"

	"github.com/paulmach/orb"
)

const earthRadiusKm = 6371.0

// Distance calculates the haversine distance between two points in
// kilometers. Points are in (lng, lat) order per orb convention. Pure and
// symmetric; non-finite inputs propagate NaN, callers guard with IsValid.
func Distance(a, b orb.Point) float64 {
	lat1Rad := a.Lat() * math.Pi / 180
	lng1Rad := a.Lon() * math.Pi / 180
	lat2Rad := b.Lat() * math.Pi / 180
	lng2Rad := b.Lon() * math.Pi / 180

	deltaLat := lat2Rad - lat1Rad
	deltaLng := lng2Rad - lng1Rad

	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// IsValid checks whether a point is within valid geographic bounds.
func IsValid(p orb.Point) bool {
	if math.IsNaN(p.Lat()) || math.IsNaN(p.Lon()) ||
		math.IsInf(p.Lat(), 0) || math.IsInf(p.Lon(), 0) {
		return false
	}

	return p.Lat() >= -90 && p.Lat() <= 90 &&
		p.Lon() >= -180 && p.Lon() <= 180
}
