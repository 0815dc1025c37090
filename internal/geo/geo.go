package geo

import (
	"math"

	"github.com/example/agent-assist/internal/models"
)

// earthRadiusMiles keeps all distances in miles since pricing is per mile.
const earthRadiusMiles = 3959.0

// Distance returns the great-circle distance in miles between two points
// using the haversine formula. Pure and total: any finite pair is accepted,
// identical points return 0.
func Distance(a, b models.Coord) float64 {
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(a.Lat*math.Pi/180)*math.Cos(b.Lat*math.Pi/180)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusMiles * c
}
