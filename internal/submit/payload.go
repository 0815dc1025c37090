package submit

import (
	"fmt"
	"time"

	"github.com/example/agent-assist/internal/models"
)

// Payload is the flat wire record the transport collaborator expects:
// every field resolved to a display string, money to two decimals.
type Payload struct {
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
	CustomerEmail string `json:"customerEmail"`

	ServiceType       string `json:"serviceType"`
	ServiceDate       string `json:"serviceDate"`
	TimeOption        string `json:"timeOption"`
	EstimatedDuration string `json:"estimatedDuration"`

	PickupLocation          string `json:"pickupLocation"`
	DropoffLocation         string `json:"dropoffLocation"`
	ErrandLocation          string `json:"errandLocation"`
	SignCurrentLocation     string `json:"signCurrentLocation"`
	SignDestinationLocation string `json:"signDestinationLocation"`
	NumberOfSigns           string `json:"numberOfSigns"`

	TaskDescription string `json:"taskDescription"`

	TotalMileage string `json:"totalMileage"`
	BasePrice    string `json:"basePrice"`
	MileageCost  string `json:"mileageCost"`
	TimeCost     string `json:"timeCost"`
	Subtotal     string `json:"subtotal"`
	ServiceFee   string `json:"serviceFee"`
	TotalPrice   string `json:"totalPrice"`

	SubmissionTime string `json:"submissionTime"`
	Subject        string `json:"_subject"`
}

// easternTime falls back to UTC if the tz database is unavailable; the
// timestamp is informational only.
func easternTime(now time.Time) string {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		loc = time.UTC
	}
	return now.In(loc).Format("Monday, January 2, 2006 at 3:04:05 PM MST")
}

// BuildPayload flattens the accepted order into display strings.
func BuildPayload(o models.Order, now time.Time) Payload {
	r := o.Request
	q := o.Quote

	signs := "N/A"
	if r.ServiceType == models.ServiceMultipleSigns {
		signs = fmt.Sprintf("%d", r.NumberOfSigns)
	}

	return Payload{
		CustomerName:  o.Contact.Name,
		CustomerPhone: o.Contact.Phone,
		CustomerEmail: o.Contact.Email,

		ServiceType:       r.ServiceType.Label(),
		ServiceDate:       r.ScheduledDate,
		TimeOption:        r.TimeDescription(),
		EstimatedDuration: models.DurationLabel(r.EstimatedHours),

		PickupLocation:          orNA(r.Pickup.Address),
		DropoffLocation:         orNA(r.Dropoff.Address),
		ErrandLocation:          orNA(r.Errand.Address),
		SignCurrentLocation:     orNA(r.SignCurrent.Address),
		SignDestinationLocation: orNA(r.SignDestination.Address),
		NumberOfSigns:           signs,

		TaskDescription: r.TaskDescription,

		TotalMileage: fmt.Sprintf("%.1f miles", q.Distance),
		BasePrice:    fmt.Sprintf("%.2f", q.BasePrice),
		MileageCost:  fmt.Sprintf("%.2f", q.MileageCost),
		TimeCost:     fmt.Sprintf("%.2f", q.TimeCost),
		Subtotal:     fmt.Sprintf("%.2f", q.Subtotal),
		ServiceFee:   fmt.Sprintf("%.2f (%g%%)", q.MarkupAmount, q.MarkupPercent),
		TotalPrice:   fmt.Sprintf("%.2f", q.Total),

		SubmissionTime: easternTime(now),
		Subject:        "New Agent Assist Errand Request",
	}
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}
