package booking

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/example/agent-assist/internal/models"
	"github.com/example/agent-assist/internal/observability"
	"github.com/example/agent-assist/internal/quote"
	"github.com/example/agent-assist/internal/storage"
	"github.com/example/agent-assist/internal/submit"
	"github.com/example/agent-assist/internal/trip"
)

// SessionStore persists in-progress snapshots between requests.
type SessionStore interface {
	Get(ctx context.Context, id string) (*Session, error)
	Put(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}

// Publisher feeds accepted orders downstream; best-effort.
type Publisher interface {
	PublishOrder(o models.Order) error
}

// QuotePusher streams refreshed quotes to a connected UI.
type QuotePusher interface {
	PushQuote(sessionID string, q models.Quote, minimumHours float64)
}

// Service is the booking state machine. Every mutating operation loads
// the snapshot, applies the change under a per-session lock, re-derives
// the minimum-hours floor, and stores the result; pricing and mileage are
// recomputed from the snapshot on every read, never cached.
type Service struct {
	Sessions  SessionStore
	Orders    storage.OrderStore
	Transport submit.Transport
	Publisher Publisher   // optional
	Feed      QuotePusher // optional
	Trip      trip.Resolver
	Logger    *slog.Logger

	SupportPhone string

	// Now is swappable for date-sensitive tests.
	Now func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Snapshot is the read model handed to the API layer.
type Snapshot struct {
	Session       *Session     `json:"session"`
	Quote         models.Quote `json:"quote"`
	MinimumHours  float64      `json:"minimum_hours"`
	TotalMileage  float64      `json:"total_mileage"`
	SameDayNotice string       `json:"same_day_notice,omitempty"`
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) lockFor(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locks == nil {
		s.locks = make(map[string]*sync.Mutex)
	}
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

func (s *Service) releaseLock(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.locks, id)
}

// Create starts an empty session at select-type.
func (s *Service) Create(ctx context.Context) (*Snapshot, error) {
	sess := newSession(newID(), s.now())
	if err := s.Sessions.Put(ctx, sess); err != nil {
		return nil, err
	}
	observability.SessionsActive.Inc()
	return s.snapshot(sess), nil
}

// Get returns the current snapshot with the quote recomputed.
func (s *Service) Get(ctx context.Context, id string) (*Snapshot, error) {
	sess, err := s.Sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.snapshot(sess), nil
}

// SelectServiceType starts the flow proper. The type is immutable for the
// rest of the session; changing it means restarting via Back.
func (s *Service) SelectServiceType(ctx context.Context, id string, st models.ServiceType) (*Snapshot, error) {
	if !st.Valid() {
		return nil, fmt.Errorf("%w: service type %q", ErrBadInput, st)
	}
	return s.mutate(ctx, id, func(sess *Session) error {
		if sess.Step != StepSelectType {
			return ErrInvalidTransition
		}
		sess.Request.ServiceType = st
		if st == models.ServiceMultipleSigns {
			sess.Request.NumberOfSigns = 3
		}
		sess.Step = StepEnterLocations
		return nil
	})
}

// ShowWhatWeDo enters the informational side branch.
func (s *Service) ShowWhatWeDo(ctx context.Context, id string) (*Snapshot, error) {
	return s.mutate(ctx, id, func(sess *Session) error {
		if sess.Step != StepSelectType {
			return ErrInvalidTransition
		}
		sess.Step = StepWhatWeDo
		return nil
	})
}

// LocationsUpdate carries the enter-locations form fields. Nil pointers
// mean "unchanged"; fields irrelevant to the session's service type are
// ignored so the aggregate invariant holds.
type LocationsUpdate struct {
	Pickup          *models.Stop       `json:"pickup,omitempty"`
	Dropoff         *models.Stop       `json:"dropoff,omitempty"`
	Errand          *models.Stop       `json:"errand,omitempty"`
	SignCurrent     *models.Stop       `json:"signCurrent,omitempty"`
	SignDestination *models.Stop       `json:"signDestination,omitempty"`
	ScheduledDate   *string            `json:"scheduledDate,omitempty"`
	TimeOption      *models.TimeOption `json:"timeOption,omitempty"`
	WindowStartTime *string            `json:"windowStartTime,omitempty"`
	SpecificTime    *string            `json:"specificTime,omitempty"`
	NumberOfSigns   *int               `json:"numberOfSigns,omitempty"`
}

// UpdateLocations applies form edits on the enter-locations step and
// re-derives the minimum-hours floor.
func (s *Service) UpdateLocations(ctx context.Context, id string, upd LocationsUpdate) (*Snapshot, error) {
	return s.mutate(ctx, id, func(sess *Session) error {
		if sess.Step != StepEnterLocations {
			return ErrInvalidTransition
		}
		r := &sess.Request

		switch r.ServiceType {
		case models.ServiceDelivery:
			applyStop(&r.Pickup, upd.Pickup)
			applyStop(&r.Dropoff, upd.Dropoff)
		case models.ServiceSingleSign, models.ServiceMultipleSigns:
			applyStop(&r.SignCurrent, upd.SignCurrent)
			applyStop(&r.SignDestination, upd.SignDestination)
		case models.ServiceErrand:
			applyStop(&r.Errand, upd.Errand)
			applyStop(&r.Pickup, upd.Pickup)
		}

		if upd.NumberOfSigns != nil && r.ServiceType == models.ServiceMultipleSigns {
			n := *upd.NumberOfSigns
			if n < 1 || n > 20 {
				return fmt.Errorf("%w: number of signs %d out of range 1..20", ErrBadInput, n)
			}
			r.NumberOfSigns = n
		}

		if upd.ScheduledDate != nil {
			r.ScheduledDate = *upd.ScheduledDate
			// A new date invalidates any earlier tier choice.
			r.TimeOption = ""
			r.WindowStartTime = ""
			r.SpecificTime = ""
			sess.SameDay = isToday(r.ScheduledDate, s.now())
		}

		if upd.TimeOption != nil {
			if sess.SameDay {
				return ErrSameDay
			}
			if !upd.TimeOption.Valid() {
				return fmt.Errorf("%w: time option %q", ErrBadInput, *upd.TimeOption)
			}
			r.TimeOption = *upd.TimeOption
		}
		if upd.WindowStartTime != nil {
			if !models.ValidWindowStart(*upd.WindowStartTime) {
				return fmt.Errorf("%w: window start %q", ErrBadInput, *upd.WindowStartTime)
			}
			r.WindowStartTime = *upd.WindowStartTime
		}
		if upd.SpecificTime != nil {
			r.SpecificTime = *upd.SpecificTime
		}

		s.reclampHours(sess)
		return nil
	})
}

// UpdateDetails applies the job-details form: task description and the
// customer's duration estimate, clamped to [minimum, 8].
func (s *Service) UpdateDetails(ctx context.Context, id string, description *string, hours *float64) (*Snapshot, error) {
	return s.mutate(ctx, id, func(sess *Session) error {
		if sess.Step != StepJobDetails {
			return ErrInvalidTransition
		}
		if description != nil {
			sess.Request.TaskDescription = *description
		}
		if hours != nil {
			if *hours <= 0 {
				return fmt.Errorf("%w: estimated hours %g", ErrBadInput, *hours)
			}
			sess.Request.EstimatedHours = *hours
		}
		s.reclampHours(sess)
		return nil
	})
}

// Advance attempts the forward transition out of the current step. A
// failed gate returns ErrBlocked (or ErrSameDay for the policy case);
// the snapshot is untouched either way.
func (s *Service) Advance(ctx context.Context, id string) (*Snapshot, error) {
	return s.mutate(ctx, id, func(sess *Session) error {
		next, ok := forwardTransitions[sess.Step]
		if !ok {
			return ErrInvalidTransition
		}
		switch sess.Step {
		case StepSelectType:
			if !sess.Request.ServiceType.Valid() {
				return ErrBlocked
			}
		case StepEnterLocations:
			if sess.SameDay {
				return ErrSameDay
			}
			if !sess.locationsValid(s.now()) {
				return ErrBlocked
			}
		case StepJobDetails:
			if !sess.detailsValid() {
				return ErrBlocked
			}
		case StepPricing:
			// pricing → submitted happens only through Submit.
			return ErrInvalidTransition
		}
		sess.Step = next
		return nil
	})
}

// Back performs the backward transition with its scoped reset: leaving
// job-details clears the task description, returning to select-type
// discards the whole request.
func (s *Service) Back(ctx context.Context, id string) (*Snapshot, error) {
	return s.mutate(ctx, id, func(sess *Session) error {
		target, ok := backTargets[sess.Step]
		if !ok {
			return ErrInvalidTransition
		}
		if sess.Step == StepJobDetails {
			sess.Request.TaskDescription = ""
		}
		if target == StepSelectType {
			sess.resetToStart(s.now())
			return nil
		}
		sess.Step = target
		return nil
	})
}

// DowngradeTiming trades scheduling precision for a cheaper tier on the
// pricing step: specific → window (mapping the hour into a 2-hour
// bucket) or window → anytime. Already-anytime requests have nothing to
// downgrade.
func (s *Service) DowngradeTiming(ctx context.Context, id string) (*Snapshot, error) {
	return s.mutate(ctx, id, func(sess *Session) error {
		if sess.Step != StepPricing {
			return ErrInvalidTransition
		}
		r := &sess.Request
		switch r.TimeOption {
		case models.TimeSpecific:
			r.TimeOption = models.TimeWindow
			r.WindowStartTime = mapToWindowBucket(r.SpecificTime)
			r.SpecificTime = ""
		case models.TimeWindow:
			r.TimeOption = models.TimeAnytime
			r.WindowStartTime = ""
		default:
			return ErrBlocked
		}
		return nil
	})
}

// Submit orchestrates the final transition. Contact details must be
// complete and no other submission may be in flight. On transport
// failure the session stays on pricing with every field intact; on
// success the order is persisted, published downstream, and the session
// discarded so a fresh one starts over.
func (s *Service) Submit(ctx context.Context, id string, contact models.Contact) (*models.Order, error) {
	l := s.lockFor(id)
	l.Lock()
	defer l.Unlock()

	sess, err := s.Sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.Step != StepPricing {
		return nil, ErrInvalidTransition
	}
	if sess.Submitting {
		return nil, ErrSubmitting
	}
	if !contact.Complete() {
		return nil, ErrContactIncomplete
	}

	sess.Submitting = true
	sess.UpdatedAt = s.now()
	if err := s.Sessions.Put(ctx, sess); err != nil {
		return nil, err
	}

	now := s.now()
	order := models.Order{
		ID:        newID(),
		Request:   sess.Request,
		Contact:   contact,
		Quote:     s.priceOf(sess),
		Status:    "submitted",
		CreatedAt: now,
		UpdatedAt: now,
	}

	start := time.Now()
	err = s.Transport.Submit(ctx, submit.BuildPayload(order, now))
	observability.SubmissionLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		sess.Submitting = false
		sess.UpdatedAt = s.now()
		_ = s.Sessions.Put(ctx, sess)
		observability.SubmissionsTotal.WithLabelValues("failed").Inc()
		if s.Logger != nil {
			s.Logger.Warn("submission failed", "session_id", id, "error", err)
		}
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	if err := s.Orders.SaveOrder(&order); err != nil && s.Logger != nil {
		// The request already reached the backend; losing the local copy
		// is logged, not surfaced to the customer.
		s.Logger.Error("order save failed", "order_id", order.ID, "error", err)
	}
	if s.Publisher != nil {
		if err := s.Publisher.PublishOrder(order); err != nil && s.Logger != nil {
			s.Logger.Warn("order publish failed", "order_id", order.ID, "error", err)
		}
	}

	if err := s.Sessions.Delete(ctx, id); err != nil {
		// A surviving session must not stay locked behind the guard.
		sess.Submitting = false
		sess.UpdatedAt = s.now()
		_ = s.Sessions.Put(ctx, sess)
		if s.Logger != nil {
			s.Logger.Warn("session cleanup failed", "session_id", id, "error", err)
		}
	}
	s.releaseLock(id)
	observability.SessionsActive.Dec()
	observability.SubmissionsTotal.WithLabelValues("ok").Inc()
	if s.Logger != nil {
		s.Logger.Info("order submitted", "order_id", order.ID, "service_type", order.Request.ServiceType, "total", order.Quote.Total)
	}
	return &order, nil
}

// SameDayMessage is the advisory shown with ErrSameDay: the only remedy
// is the out-of-band phone channel.
func (s *Service) SameDayMessage() string {
	return fmt.Sprintf("While we may be able to help you, same day selections are not allowed online. Please call us directly at %s for help with same-day errands.", s.SupportPhone)
}

// mutate runs op under the session lock, bumps timestamps, stores and
// pushes the refreshed quote to any live feed.
func (s *Service) mutate(ctx context.Context, id string, op func(*Session) error) (*Snapshot, error) {
	l := s.lockFor(id)
	l.Lock()
	defer l.Unlock()

	sess, err := s.Sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := op(sess); err != nil {
		return nil, err
	}
	sess.UpdatedAt = s.now()
	if err := s.Sessions.Put(ctx, sess); err != nil {
		return nil, err
	}
	snap := s.snapshot(sess)
	if s.Feed != nil {
		s.Feed.PushQuote(sess.ID, snap.Quote, snap.MinimumHours)
	}
	return snap, nil
}

// reclampHours re-derives the floor and ratchets the estimate up. Called
// on every mutation of a duration input, including sign count alone.
func (s *Service) reclampHours(sess *Session) {
	r := &sess.Request
	min := quote.MinimumHours(s.Trip.TotalMileage(*r), r.ServiceType, r.NumberOfSigns)
	r.EstimatedHours = quote.ClampHours(r.EstimatedHours, min)
}

func (s *Service) priceOf(sess *Session) models.Quote {
	return quote.Price(sess.Request, s.Trip.TotalMileage(sess.Request))
}

func (s *Service) snapshot(sess *Session) *Snapshot {
	r := sess.Request
	mileage := s.Trip.TotalMileage(r)
	snap := &Snapshot{
		Session:      sess,
		Quote:        quote.Price(r, mileage),
		MinimumHours: quote.MinimumHours(mileage, r.ServiceType, r.NumberOfSigns),
		TotalMileage: mileage,
	}
	if sess.SameDay {
		snap.SameDayNotice = s.SameDayMessage()
	}
	observability.QuotesComputed.Inc()
	return snap
}

func newID() string { b := make([]byte, 8); _, _ = rand.Read(b); return hex.EncodeToString(b) }

func applyStop(dst *models.Stop, src *models.Stop) {
	if src == nil {
		return
	}
	*dst = *src
}
