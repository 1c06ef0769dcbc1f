package geo

import (
	"math"

	"github.com/cityscout-app/cityscout/internal/types"
)

// DistanceKm calculates the great-circle distance between two coordinates
// using the Haversine formula. Returns distance in kilometers.
func DistanceKm(a, b types.Coordinates) float64 {
	const R = 6371 // Earth's radius in kilometers

	lat1Rad := a.Lat * math.Pi / 180
	lat2Rad := b.Lat * math.Pi / 180
	dlat := (b.Lat - a.Lat) * math.Pi / 180
	dlng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dlng/2)*math.Sin(dlng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return R * c
}
