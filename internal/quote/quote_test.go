package quote

import (
	"math"
	"testing"

	"github.com/example/agent-assist/internal/models"
)

func TestMinimumHoursFloor(t *testing.T) {
	if got := MinimumHours(0, models.ServiceDelivery, 0); got != 0.5 {
		t.Fatalf("expected 0.5 floor, got %g", got)
	}
}

func TestMinimumHoursErrandThirtyMiles(t *testing.T) {
	// 15 miles one-way errand: 0.5 base + 30/30 = 1.5, already half-aligned.
	if got := MinimumHours(30, models.ServiceErrand, 0); got != 1.5 {
		t.Fatalf("expected 1.5, got %g", got)
	}
}

func TestMinimumHoursThirteenSigns(t *testing.T) {
	// ceil(13/6)*0.5 = 1.5 sign hours on top of the 0.5 base.
	if got := MinimumHours(0, models.ServiceMultipleSigns, 13); got != 2.0 {
		t.Fatalf("expected 2.0, got %g", got)
	}
}

func TestMinimumHoursSingleSign(t *testing.T) {
	// A single-sign job still spends placement time: 0.5 base + 0.5 sign.
	if got := MinimumHours(0, models.ServiceSingleSign, 0); got != 1.0 {
		t.Fatalf("expected 1.0, got %g", got)
	}
}

func TestMinimumHoursSingleRoundingPoint(t *testing.T) {
	// Only the final sum is rounded up to the half hour; these points
	// pin that against per-term rounding, which inflates some of them.
	cases := []struct {
		miles float64
		want  float64
	}{
		{10, 1.0},
		{25, 1.5},
		{40, 2.0},
		{45, 2.0},
		{46, 2.5},
	}
	for _, c := range cases {
		if got := MinimumHours(c.miles, models.ServiceDelivery, 0); got != c.want {
			t.Fatalf("miles %g: expected %g, got %g", c.miles, c.want, got)
		}
	}
}

func TestMinimumHoursMonotonic(t *testing.T) {
	prev := 0.0
	for miles := 0.0; miles <= 120; miles += 7.3 {
		got := MinimumHours(miles, models.ServiceErrand, 0)
		if got < prev {
			t.Fatalf("minimum decreased at %g miles: %g < %g", miles, got, prev)
		}
		if math.Mod(got*2, 1) != 0 || got < 0.5 {
			t.Fatalf("minimum not a half-hour multiple >= 0.5: %g", got)
		}
		prev = got
	}
	prev = 0
	for signs := 1; signs <= 20; signs++ {
		got := MinimumHours(0, models.ServiceMultipleSigns, signs)
		if got < prev {
			t.Fatalf("minimum decreased at %d signs", signs)
		}
		prev = got
	}
}

func TestClampHoursRatchet(t *testing.T) {
	if got := ClampHours(1.0, 2.5); got != 2.5 {
		t.Fatalf("estimate not raised to minimum: %g", got)
	}
	if got := ClampHours(3.0, 1.0); got != 3.0 {
		t.Fatalf("estimate must never be lowered: %g", got)
	}
	if got := ClampHours(12, 0.5); got != 8 {
		t.Fatalf("estimate not capped at 8: %g", got)
	}
}

func TestPriceBaseOnlyAnytime(t *testing.T) {
	req := models.ServiceRequest{
		ServiceType:    models.ServiceDelivery,
		TimeOption:     models.TimeAnytime,
		EstimatedHours: 0.5,
	}
	q := Price(req, 0)
	if q.Subtotal != 75 {
		t.Fatalf("expected subtotal 75, got %g", q.Subtotal)
	}
	if q.Total != 82.50 {
		t.Fatalf("expected total 82.50, got %g", q.Total)
	}
	if q.TimeCost != 0 {
		t.Fatalf("first hour must be included in base, got time cost %g", q.TimeCost)
	}
}

func TestPriceItemized(t *testing.T) {
	req := models.ServiceRequest{
		ServiceType:    models.ServiceMultipleSigns,
		TimeOption:     models.TimeWindow,
		EstimatedHours: 2.5,
		NumberOfSigns:  13,
	}
	q := Price(req, 20)
	if q.MileageCost != 30 {
		t.Fatalf("expected mileage cost 30, got %g", q.MileageCost)
	}
	if q.TimeCost != 90 {
		t.Fatalf("expected time cost 90 for 1.5 extra hours, got %g", q.TimeCost)
	}
	if q.SignCost != 60 {
		t.Fatalf("expected sign cost 60 for 13 signs, got %g", q.SignCost)
	}
	wantSubtotal := 75.0 + 30 + 90 + 60
	if q.Subtotal != wantSubtotal {
		t.Fatalf("expected subtotal %g, got %g", wantSubtotal, q.Subtotal)
	}
	if q.MarkupPercent != 25 {
		t.Fatalf("expected 25%% window markup, got %g", q.MarkupPercent)
	}
	if math.Abs(q.Total-wantSubtotal*1.25) > 1e-9 {
		t.Fatalf("expected total %g, got %g", wantSubtotal*1.25, q.Total)
	}
}

func TestSignCostOnlyForMultipleSigns(t *testing.T) {
	req := models.ServiceRequest{
		ServiceType:    models.ServiceSingleSign,
		TimeOption:     models.TimeAnytime,
		EstimatedHours: 1,
		NumberOfSigns:  5, // meaningless for single-sign, must not bill
	}
	if q := Price(req, 0); q.SignCost != 0 {
		t.Fatalf("single-sign must not carry sign surcharge, got %g", q.SignCost)
	}
}

func TestMarkupOrderingAcrossTiers(t *testing.T) {
	req := models.ServiceRequest{
		ServiceType:    models.ServiceErrand,
		EstimatedHours: 2,
	}
	req.TimeOption = models.TimeSpecific
	specific := Price(req, 12).Total
	req.TimeOption = models.TimeWindow
	window := Price(req, 12).Total
	req.TimeOption = models.TimeAnytime
	anytime := Price(req, 12).Total

	if !(specific > window && window > anytime) {
		t.Fatalf("downgrading must strictly decrease total: %g, %g, %g", specific, window, anytime)
	}
}

func TestTotalNeverBelowSubtotal(t *testing.T) {
	for _, opt := range []models.TimeOption{models.TimeAnytime, models.TimeWindow, models.TimeSpecific} {
		req := models.ServiceRequest{ServiceType: models.ServiceErrand, TimeOption: opt, EstimatedHours: 1}
		q := Price(req, 8)
		if q.Total <= q.Subtotal {
			t.Fatalf("%s: total %g not above subtotal %g", opt, q.Total, q.Subtotal)
		}
	}
}
