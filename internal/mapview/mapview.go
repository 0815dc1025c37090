// Package mapview builds the map collaborator's input: an ordered list of
// labelled points. The core only supplies data; the renderer never talks
// back.
package mapview

import "github.com/example/agent-assist/internal/models"

type Role string

const (
	RolePickup          Role = "pickup"
	RoleDropoff         Role = "dropoff"
	RoleErrand          Role = "errand"
	RoleSignCurrent     Role = "sign-current"
	RoleSignDestination Role = "sign-destination"
)

type Point struct {
	Label string       `json:"label"`
	Coord models.Coord `json:"coord"`
	Role  Role         `json:"role"`
}

// Points returns the confirmed markers for the request in travel order.
// Unconfirmed stops are simply absent; the renderer shows what exists.
func Points(r models.ServiceRequest) []Point {
	var pts []Point
	add := func(s models.Stop, label string, role Role) {
		if s.Coord != nil {
			pts = append(pts, Point{Label: label, Coord: *s.Coord, Role: role})
		}
	}
	switch r.ServiceType {
	case models.ServiceDelivery:
		add(r.Pickup, "Pickup Location", RolePickup)
		add(r.Dropoff, "Dropoff Location", RoleDropoff)
	case models.ServiceErrand:
		add(r.Errand, "Errand Location", RoleErrand)
	case models.ServiceSingleSign, models.ServiceMultipleSigns:
		add(r.SignCurrent, "Current Sign Location", RoleSignCurrent)
		add(r.SignDestination, "Destination Location", RoleSignDestination)
	}
	return pts
}
