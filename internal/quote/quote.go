// Package quote holds the duration estimator and pricing engine. Both are
// pure functions of the current request snapshot so callers can recompute
// freely as inputs change.
package quote

import (
	"math"

	"github.com/example/agent-assist/internal/models"
)

const (
	BasePrice   = 75.0
	MileageRate = 1.50 // per mile
	HourlyRate  = 60.0 // per hour beyond the first
	SignRate    = 5.0  // per sign beyond the first, multiple-signs only

	MaxHours = 8.0
	MinHours = 0.5
)

// MarkupPercent returns the flexibility-tier markup as a fraction of the
// subtotal. Less scheduling flexibility costs more.
func MarkupPercent(t models.TimeOption) float64 {
	switch t {
	case models.TimeAnytime:
		return 0.10
	case models.TimeSpecific:
		return 0.60
	default:
		return 0.25
	}
}

// MinimumHours derives the minimum billable duration from mileage and sign
// count: a 0.5h base, plus an hour per 30 miles (continuous), plus a half
// hour per started block of 6 signs. A single-sign job counts as one sign.
// Only the final sum is rounded up to the next half hour; rounding each
// term separately would inflate totals for non-aligned mileage.
func MinimumHours(totalMileage float64, serviceType models.ServiceType, numberOfSigns int) float64 {
	hours := MinHours + totalMileage/30

	if serviceType.Signs() {
		n := numberOfSigns
		if n < 1 {
			n = 1
		}
		hours += math.Ceil(float64(n)/6) * 0.5
	}

	return math.Max(MinHours, math.Ceil(hours*2)/2)
}

// ClampHours ratchets the user's estimate up to the minimum without ever
// lowering it, and caps it at the hard ceiling.
func ClampHours(estimated, minimum float64) float64 {
	if estimated < minimum {
		estimated = minimum
	}
	if estimated > MaxHours {
		estimated = MaxHours
	}
	return estimated
}

// Price computes the itemized quote for the request at the given total
// mileage. Idempotent and side-effect free; the pricing step calls it
// repeatedly as the customer previews cheaper flexibility tiers.
func Price(req models.ServiceRequest, totalMileage float64) models.Quote {
	mileageCost := totalMileage * MileageRate

	// The first hour is included in the base price.
	timeCost := math.Max(0, req.EstimatedHours-1) * HourlyRate

	var signCost float64
	if req.ServiceType == models.ServiceMultipleSigns && req.NumberOfSigns > 1 {
		signCost = float64(req.NumberOfSigns-1) * SignRate
	}

	subtotal := BasePrice + mileageCost + timeCost + signCost
	markup := MarkupPercent(req.TimeOption)
	markupAmount := subtotal * markup

	return models.Quote{
		BasePrice:     BasePrice,
		Distance:      totalMileage,
		MileageCost:   mileageCost,
		TimeCost:      timeCost,
		SignCost:      signCost,
		Subtotal:      subtotal,
		MarkupAmount:  markupAmount,
		MarkupPercent: markup * 100,
		Total:         subtotal + markupAmount,
	}
}
