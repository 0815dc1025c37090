package httpapi

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/example/agent-assist/internal/booking"
	"github.com/example/agent-assist/internal/geocode"
	"github.com/example/agent-assist/internal/live"
	"github.com/example/agent-assist/internal/models"
)

// Preset is a quick-fill location offered by the booking form.
type Preset struct {
	Label   string       `json:"label"`
	Address string       `json:"address"`
	Coord   models.Coord `json:"coord"`
}

type Server struct {
	Booking  *booking.Service
	Geocoder geocode.Geocoder // nil when no API key is configured
	Feed     *live.QuoteFeed
	Presets  []Preset

	logger *slog.Logger
	mux    *mux.Router
}

func NewServer(b *booking.Service, g geocode.Geocoder, feed *live.QuoteFeed, presets []Preset, logger *slog.Logger) *Server {
	s := &Server{
		Booking:  b,
		Geocoder: g,
		Feed:     feed,
		Presets:  presets,
		logger:   logger,
		mux:      mux.NewRouter(),
	}
	s.registerMiddleware()
	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.mux.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/sessions", s.handleCreateSession).Methods("POST")
	api.HandleFunc("/sessions/{id}", s.handleGetSession).Methods("GET")
	api.HandleFunc("/sessions/{id}/service-type", s.handleServiceType).Methods("POST")
	api.HandleFunc("/sessions/{id}/locations", s.handleLocations).Methods("PUT")
	api.HandleFunc("/sessions/{id}/details", s.handleDetails).Methods("PUT")
	api.HandleFunc("/sessions/{id}/advance", s.handleAdvance).Methods("POST")
	api.HandleFunc("/sessions/{id}/back", s.handleBack).Methods("POST")
	api.HandleFunc("/sessions/{id}/what-we-do", s.handleShowWhatWeDo).Methods("POST")
	api.HandleFunc("/sessions/{id}/downgrade-timing", s.handleDowngradeTiming).Methods("POST")
	api.HandleFunc("/sessions/{id}/quote", s.handleQuote).Methods("GET")
	api.HandleFunc("/sessions/{id}/map", s.handleMap).Methods("GET")
	api.HandleFunc("/sessions/{id}/submit", s.handleSubmit).Methods("POST")

	api.HandleFunc("/geocode", s.handleGeocode).Methods("GET")
	api.HandleFunc("/presets", s.handlePresets).Methods("GET")
	api.HandleFunc("/what-we-do", s.handleWhatWeDoContent).Methods("GET")

	s.mux.HandleFunc("/ws/sessions/{id}", s.handleWS)
	s.mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) }).Methods("GET")
	s.mux.Handle("/metrics", promhttp.Handler())
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.mux.ServeHTTP(w, r) }

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// handleWS attaches a UI socket to the session's live quote feed.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, err := s.Booking.Get(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "upgrade failed", http.StatusBadRequest)
		return
	}
	s.Feed.Add(id, conn)
}

// ParsePresets decodes "label|address|lat|lon" config entries; malformed
// entries are skipped.
func ParsePresets(entries []string) []Preset {
	out := make([]Preset, 0, len(entries))
	for _, e := range entries {
		parts := strings.Split(e, "|")
		if len(parts) != 4 {
			continue
		}
		lat, err1 := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
		lon, err2 := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		out = append(out, Preset{
			Label:   strings.TrimSpace(parts[0]),
			Address: strings.TrimSpace(parts[1]),
			Coord:   models.Coord{Lat: lat, Lon: lon},
		})
	}
	return out
}
