package booking

import (
	"time"

	"github.com/example/agent-assist/internal/models"
)

// Step is the customer's current position in the booking flow.
type Step string

const (
	StepSelectType     Step = "select-type"
	StepWhatWeDo       Step = "what-we-do"
	StepEnterLocations Step = "enter-locations"
	StepJobDetails     Step = "job-details"
	StepPricing        Step = "pricing"
	StepSubmitted      Step = "submitted"
)

// forwardTransitions is the ordered flow; backward moves are always
// allowed and carry their own reset semantics (see Service.Back).
var forwardTransitions = map[Step]Step{
	StepSelectType:     StepEnterLocations,
	StepEnterLocations: StepJobDetails,
	StepJobDetails:     StepPricing,
	StepPricing:        StepSubmitted,
}

// backTargets mirrors the flow in reverse. The informational side branch
// returns to select-type like any restart.
var backTargets = map[Step]Step{
	StepWhatWeDo:       StepSelectType,
	StepEnterLocations: StepSelectType,
	StepJobDetails:     StepEnterLocations,
	StepPricing:        StepJobDetails,
}

// Session is the server-side snapshot of one booking in progress. It is
// serialized as JSON into the session store between requests and fully
// discarded on restart or successful submission.
type Session struct {
	ID      string                `json:"id"`
	Step    Step                  `json:"step"`
	Request models.ServiceRequest `json:"request"`

	// SameDay marks the hard business-rule rejection: today's date was
	// selected, the time-option selector is disabled and the flow cannot
	// advance until a future date is chosen.
	SameDay bool `json:"sameDay"`

	// Submitting guards against a duplicate submission while the
	// transport call is in flight.
	Submitting bool `json:"submitting"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newSession(id string, now time.Time) *Session {
	return &Session{
		ID:        id,
		Step:      StepSelectType,
		Request:   emptyRequest(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func emptyRequest() models.ServiceRequest {
	return models.ServiceRequest{EstimatedHours: 1}
}

// resetToStart discards everything back to the empty lifecycle start;
// the service type must be chosen again.
func (s *Session) resetToStart(now time.Time) {
	s.Step = StepSelectType
	s.Request = emptyRequest()
	s.SameDay = false
	s.Submitting = false
	s.UpdatedAt = now
}

// locationsValid is the principal forward gate out of enter-locations.
// It checks address presence per service type plus the shared date and
// time-option constraints; the coordinate-dependent computations degrade
// to zero on their own, so only the visible fields gate here.
func (s *Session) locationsValid(today time.Time) bool {
	r := s.Request
	if !dateOK(r.ScheduledDate, today) || r.TimeOption == "" {
		return false
	}
	switch r.ServiceType {
	case models.ServiceDelivery:
		return r.Pickup.Address != "" && r.Dropoff.Address != ""
	case models.ServiceSingleSign, models.ServiceMultipleSigns:
		return r.SignCurrent.Address != "" && r.SignDestination.Address != ""
	case models.ServiceErrand:
		// The errand form reuses the pickup input in one UI path; either
		// field satisfies the gate.
		return r.Pickup.Address != "" || r.Errand.Address != ""
	}
	return false
}

// detailsValid gates job-details → pricing.
func (s *Session) detailsValid() bool {
	return s.Request.TaskDescription != "" && s.Request.EstimatedHours > 0
}

// dateOK requires a parseable date strictly after today. Same-day is a
// policy rejection, past dates are plain nonsense; both block.
func dateOK(date string, today time.Time) bool {
	d, err := time.ParseInLocation("2006-01-02", date, today.Location())
	if err != nil {
		return false
	}
	y, m, day := today.Date()
	return d.After(time.Date(y, m, day, 0, 0, 0, 0, today.Location()))
}

// isToday reports whether the given date string is today's calendar date.
func isToday(date string, today time.Time) bool {
	d, err := time.ParseInLocation("2006-01-02", date, today.Location())
	if err != nil {
		return false
	}
	y1, m1, d1 := d.Date()
	y2, m2, d2 := today.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// mapToWindowBucket maps an HH:MM specific time into the fixed 2-hour
// window buckets when the customer downgrades specific → window. Hours
// outside the service day, or a missing time, fall back to the 10:00
// bucket.
func mapToWindowBucket(specific string) string {
	if len(specific) < 2 {
		return "10:00"
	}
	hour := 0
	for _, c := range specific[:2] {
		if c < '0' || c > '9' {
			return "10:00"
		}
		hour = hour*10 + int(c-'0')
	}
	switch {
	case hour >= 8 && hour < 10:
		return "08:00"
	case hour >= 10 && hour < 12:
		return "10:00"
	case hour >= 12 && hour < 14:
		return "12:00"
	case hour >= 14 && hour < 16:
		return "14:00"
	case hour >= 16 && hour < 18:
		return "16:00"
	}
	return "10:00"
}
