package models

import (
	"fmt"
	"time"
)

// Coord is a confirmed WGS84 point, degrees.
type Coord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// ServiceType selects which location fields apply and how the job is priced.
type ServiceType string

const (
	ServiceDelivery      ServiceType = "delivery"
	ServiceErrand        ServiceType = "errand"
	ServiceSingleSign    ServiceType = "single-sign"
	ServiceMultipleSigns ServiceType = "multiple-signs"
)

func (s ServiceType) Valid() bool {
	switch s {
	case ServiceDelivery, ServiceErrand, ServiceSingleSign, ServiceMultipleSigns:
		return true
	}
	return false
}

func (s ServiceType) Signs() bool {
	return s == ServiceSingleSign || s == ServiceMultipleSigns
}

// Label is the customer-facing name used in submission payloads.
func (s ServiceType) Label() string {
	switch s {
	case ServiceDelivery:
		return "Delivery Service"
	case ServiceSingleSign:
		return "Single Sign Placement"
	case ServiceMultipleSigns:
		return "Multiple Signs Placement"
	default:
		return "Single Location Errand"
	}
}

// TimeOption is the flexibility tier: looser scheduling, lower markup.
type TimeOption string

const (
	TimeAnytime  TimeOption = "anytime"
	TimeWindow   TimeOption = "window"
	TimeSpecific TimeOption = "specific"
)

func (t TimeOption) Valid() bool {
	return t == TimeAnytime || t == TimeWindow || t == TimeSpecific
}

// WindowStartTimes are the only selectable 2-hour window starts.
var WindowStartTimes = []string{"08:00", "10:00", "12:00", "14:00", "16:00"}

func ValidWindowStart(v string) bool {
	for _, w := range WindowStartTimes {
		if v == w {
			return true
		}
	}
	return false
}

// Stop pairs a confirmed address string with its coordinate. The coordinate
// is nil until the geocoding collaborator confirms the address; both are set
// together, never partially.
type Stop struct {
	Address string `json:"address"`
	Coord   *Coord `json:"coord,omitempty"`
}

func (s Stop) Confirmed() bool { return s.Address != "" && s.Coord != nil }

// ServiceRequest is the booking-in-progress aggregate. Only the location
// fields implied by ServiceType are populated; the rest stay zero.
type ServiceRequest struct {
	ServiceType ServiceType `json:"serviceType"`

	Pickup          Stop `json:"pickup"`
	Dropoff         Stop `json:"dropoff"`
	Errand          Stop `json:"errand"`
	SignCurrent     Stop `json:"signCurrent"`
	SignDestination Stop `json:"signDestination"`

	NumberOfSigns int `json:"numberOfSigns"`

	ScheduledDate   string     `json:"scheduledDate"` // YYYY-MM-DD
	TimeOption      TimeOption `json:"timeOption"`
	WindowStartTime string     `json:"windowStartTime"`
	SpecificTime    string     `json:"specificTime"` // HH:MM

	EstimatedHours  float64 `json:"estimatedHours"`
	TaskDescription string  `json:"taskDescription"`
}

// TimeDescription renders the chosen flexibility tier the way the
// submission payload and order summary present it.
func (r ServiceRequest) TimeDescription() string {
	switch r.TimeOption {
	case TimeAnytime:
		return "Anytime (10am-4pm)"
	case TimeWindow:
		return "2-Hour Window: " + r.WindowStartTime
	case TimeSpecific:
		return "Specific Time: " + r.SpecificTime
	}
	return ""
}

// DurationLabel humanizes an hours value ("30 minutes", "1 hour", "2.5 hours").
func DurationLabel(hours float64) string {
	switch hours {
	case 0.5:
		return "30 minutes"
	case 1:
		return "1 hour"
	default:
		return fmt.Sprintf("%g hours", hours)
	}
}

// Contact is required in full before submission.
type Contact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

func (c Contact) Complete() bool {
	return c.Name != "" && c.Phone != "" && c.Email != ""
}

// Quote is the itemized pricing breakdown for the current request.
type Quote struct {
	BasePrice     float64 `json:"base_price"`
	Distance      float64 `json:"distance"`
	MileageCost   float64 `json:"mileage_cost"`
	TimeCost      float64 `json:"time_cost"`
	SignCost      float64 `json:"sign_cost"`
	Subtotal      float64 `json:"subtotal"`
	MarkupAmount  float64 `json:"markup_amount"`
	MarkupPercent float64 `json:"markup_percent"`
	Total         float64 `json:"total"`
}

// Order is a submitted request as persisted and published downstream.
type Order struct {
	ID        string         `json:"id"`
	Request   ServiceRequest `json:"request"`
	Contact   Contact        `json:"contact"`
	Quote     Quote          `json:"quote"`
	Status    string         `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
