package live

import (
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/example/agent-assist/internal/models"
)

// quoteUpdate is what a connected UI receives after any mutating call:
// the refreshed quote plus the current minimum-hours floor.
type quoteUpdate struct {
	SessionID    string       `json:"session_id"`
	Quote        models.Quote `json:"quote"`
	MinimumHours float64      `json:"minimum_hours"`
}

// WSSession wraps one connected UI socket.
type WSSession struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *WSSession) send(u quoteUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(u)
}

// QuoteFeed holds the UI sockets per booking session and pushes refreshed
// quotes to them. Sessions without a socket are silently skipped; the
// feed is a convenience, never a gate.
type QuoteFeed struct {
	mu      sync.RWMutex
	clients map[string]*WSSession
	logger  *slog.Logger
}

func NewQuoteFeed(logger *slog.Logger) *QuoteFeed {
	return &QuoteFeed{clients: make(map[string]*WSSession), logger: logger}
}

func (f *QuoteFeed) Add(sessionID string, conn *websocket.Conn) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if old, ok := f.clients[sessionID]; ok {
		_ = old.conn.Close()
	}
	f.clients[sessionID] = &WSSession{conn: conn}
}

func (f *QuoteFeed) Remove(sessionID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.clients[sessionID]; ok {
		_ = s.conn.Close()
		delete(f.clients, sessionID)
	}
}

// PushQuote delivers the refreshed quote to the session's socket, if any.
func (f *QuoteFeed) PushQuote(sessionID string, q models.Quote, minimumHours float64) {
	f.mu.RLock()
	s, ok := f.clients[sessionID]
	f.mu.RUnlock()
	if !ok {
		return
	}
	if err := s.send(quoteUpdate{SessionID: sessionID, Quote: q, MinimumHours: minimumHours}); err != nil {
		if f.logger != nil {
			f.logger.Warn("quote push failed", "session_id", sessionID, "error", err)
		}
		f.Remove(sessionID)
	}
}
