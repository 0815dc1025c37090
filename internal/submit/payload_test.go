package submit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/example/agent-assist/internal/models"
)

func sampleOrder() models.Order {
	return models.Order{
		ID: "ab12cd34",
		Request: models.ServiceRequest{
			ServiceType:     models.ServiceMultipleSigns,
			SignCurrent:     models.Stop{Address: "1 Office Park"},
			SignDestination: models.Stop{Address: "2 Main St"},
			NumberOfSigns:   13,
			ScheduledDate:   "2026-03-11",
			TimeOption:      models.TimeWindow,
			WindowStartTime: "10:00",
			EstimatedHours:  2.5,
			TaskDescription: "open house signs",
		},
		Contact: models.Contact{Name: "Jane", Phone: "555-0100", Email: "jane@example.com"},
		Quote: models.Quote{
			BasePrice:     75,
			Distance:      20.04,
			MileageCost:   30.06,
			TimeCost:      90,
			SignCost:      60,
			Subtotal:      255.06,
			MarkupAmount:  63.765,
			MarkupPercent: 25,
			Total:         318.825,
		},
	}
}

func TestBuildPayloadFormatting(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)
	p := BuildPayload(sampleOrder(), now)

	if p.ServiceType != "Multiple Signs Placement" {
		t.Fatalf("service type label: %s", p.ServiceType)
	}
	if p.NumberOfSigns != "13" {
		t.Fatalf("number of signs: %s", p.NumberOfSigns)
	}
	if p.PickupLocation != "N/A" || p.DropoffLocation != "N/A" || p.ErrandLocation != "N/A" {
		t.Fatal("absent locations must read N/A")
	}
	if p.SignCurrentLocation != "1 Office Park" {
		t.Fatalf("sign current location: %s", p.SignCurrentLocation)
	}
	if p.TotalMileage != "20.0 miles" {
		t.Fatalf("mileage: %s", p.TotalMileage)
	}
	if p.TotalPrice != "318.83" {
		t.Fatalf("total: %s", p.TotalPrice)
	}
	if p.ServiceFee != "63.77 (25%)" {
		t.Fatalf("service fee: %s", p.ServiceFee)
	}
	if p.EstimatedDuration != "2.5 hours" {
		t.Fatalf("duration: %s", p.EstimatedDuration)
	}
	if !strings.Contains(p.TimeOption, "10:00") {
		t.Fatalf("time description missing window start: %s", p.TimeOption)
	}
	if p.Subject != "New Agent Assist Errand Request" {
		t.Fatalf("subject: %s", p.Subject)
	}
}

func TestBuildPayloadSignsNAForOtherTypes(t *testing.T) {
	o := sampleOrder()
	o.Request.ServiceType = models.ServiceDelivery
	p := BuildPayload(o, time.Now())
	if p.NumberOfSigns != "N/A" {
		t.Fatalf("expected N/A, got %s", p.NumberOfSigns)
	}
}

func TestPayloadSubjectFieldName(t *testing.T) {
	b, err := json.Marshal(Payload{Subject: "x"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"_subject"`) {
		t.Fatalf("subject must serialize as _subject: %s", b)
	}
}

func TestHTTPTransportSubmit(t *testing.T) {
	var got Payload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type: %s", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tr := NewHTTPTransport(srv.URL)
	p := BuildPayload(sampleOrder(), time.Now())
	if err := tr.Submit(context.Background(), p); err != nil {
		t.Fatal(err)
	}
	if got.CustomerName != "Jane" {
		t.Fatalf("payload not delivered intact: %+v", got)
	}
}

func TestHTTPTransportNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	tr := NewHTTPTransport(srv.URL)
	if err := tr.Submit(context.Background(), Payload{}); err == nil {
		t.Fatal("expected error for 502 response")
	}
}
