package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/example/agent-assist/internal/booking"
	"github.com/example/agent-assist/internal/geocode"
	"github.com/example/agent-assist/internal/mapview"
	"github.com/example/agent-assist/internal/models"
)

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Booking.Create(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, snap)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Booking.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleServiceType(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ServiceType models.ServiceType `json:"serviceType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	snap, err := s.Booking.SelectServiceType(r.Context(), mux.Vars(r)["id"], body.ServiceType)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleLocations(w http.ResponseWriter, r *http.Request) {
	var upd booking.LocationsUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	snap, err := s.Booking.UpdateLocations(r.Context(), mux.Vars(r)["id"], upd)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleDetails(w http.ResponseWriter, r *http.Request) {
	var body struct {
		TaskDescription *string  `json:"taskDescription"`
		EstimatedHours  *float64 `json:"estimatedHours"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	snap, err := s.Booking.UpdateDetails(r.Context(), mux.Vars(r)["id"], body.TaskDescription, body.EstimatedHours)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Booking.Advance(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleBack(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Booking.Back(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleShowWhatWeDo(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Booking.ShowWhatWeDo(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleDowngradeTiming(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Booking.DowngradeTiming(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Booking.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"quote":         snap.Quote,
		"minimum_hours": snap.MinimumHours,
		"total_mileage": snap.TotalMileage,
	})
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Booking.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"serviceType": snap.Session.Request.ServiceType,
		"points":      mapview.Points(snap.Session.Request),
	})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var contact models.Contact
	if err := json.NewDecoder(r.Body).Decode(&contact); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	order, err := s.Booking.Submit(r.Context(), mux.Vars(r)["id"], contact)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"order_id": order.ID,
		"status":   order.Status,
		"total":    order.Quote.Total,
	})
}

func (s *Server) handleGeocode(w http.ResponseWriter, r *http.Request) {
	if s.Geocoder == nil {
		http.Error(w, "geocoding not configured", http.StatusServiceUnavailable)
		return
	}
	q := r.URL.Query().Get("q")
	if q == "" {
		http.Error(w, "missing q parameter", http.StatusBadRequest)
		return
	}
	place, err := s.Geocoder.Resolve(r.Context(), q)
	if errors.Is(err, geocode.ErrNoResult) {
		http.Error(w, "no matching address", http.StatusNotFound)
		return
	}
	if err != nil {
		s.logger.Warn("geocode failed", "query", q, "error", err)
		http.Error(w, "geocoding unavailable", http.StatusBadGateway)
		return
	}
	s.writeJSON(w, http.StatusOK, place)
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Presets)
}

func (s *Server) handleWhatWeDoContent(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, whatWeDoCards)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

// writeError maps the booking error taxonomy onto HTTP statuses. Blocked
// gates are not failures: they render as a disabled affordance client-side,
// so the body just says which rule held.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, booking.ErrSessionNotFound):
		s.writeJSON(w, http.StatusNotFound, map[string]any{"error": err.Error()})
	case errors.Is(err, booking.ErrSameDay):
		s.writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":   err.Error(),
			"message": s.Booking.SameDayMessage(),
		})
	case errors.Is(err, booking.ErrBlocked), errors.Is(err, booking.ErrContactIncomplete):
		s.writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"error": err.Error(), "blocked": true})
	case errors.Is(err, booking.ErrInvalidTransition), errors.Is(err, booking.ErrSubmitting):
		s.writeJSON(w, http.StatusConflict, map[string]any{"error": err.Error()})
	case errors.Is(err, booking.ErrBadInput):
		s.writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
	case errors.Is(err, booking.ErrTransport):
		s.writeJSON(w, http.StatusBadGateway, map[string]any{"error": err.Error(), "retryable": true})
	default:
		s.logger.Error("internal error", "error", err)
		s.writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal error"})
	}
}
