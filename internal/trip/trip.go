package trip

import (
	"github.com/example/agent-assist/internal/geo"
	"github.com/example/agent-assist/internal/models"
)

// Resolver computes total round-trip mileage from a fixed base depot.
// It is stateless; callers recompute on every read rather than caching.
type Resolver struct {
	Base models.Coord
}

// TotalMileage returns the round-trip miles for the request's confirmed
// coordinates. Missing coordinates yield 0, meaning "not yet computable"
// rather than an error; forward transitions stay blocked until the
// geocoding collaborator confirms the addresses.
func (r Resolver) TotalMileage(req models.ServiceRequest) float64 {
	switch req.ServiceType {
	case models.ServiceDelivery:
		if req.Pickup.Coord == nil || req.Dropoff.Coord == nil {
			return 0
		}
		return geo.Distance(r.Base, *req.Pickup.Coord) +
			geo.Distance(*req.Pickup.Coord, *req.Dropoff.Coord) +
			geo.Distance(*req.Dropoff.Coord, r.Base)
	case models.ServiceSingleSign, models.ServiceMultipleSigns:
		if req.SignCurrent.Coord == nil || req.SignDestination.Coord == nil {
			return 0
		}
		return geo.Distance(r.Base, *req.SignCurrent.Coord) +
			geo.Distance(*req.SignCurrent.Coord, *req.SignDestination.Coord) +
			geo.Distance(*req.SignDestination.Coord, r.Base)
	case models.ServiceErrand:
		// Errand input reuses the pickup field in some UI paths, so accept
		// whichever coordinate was confirmed.
		c := req.Errand.Coord
		if c == nil {
			c = req.Pickup.Coord
		}
		if c == nil {
			return 0
		}
		return 2 * geo.Distance(r.Base, *c)
	}
	return 0
}
