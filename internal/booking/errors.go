package booking

import "errors"

var (
	// ErrSessionNotFound covers unknown and expired session IDs.
	ErrSessionNotFound = errors.New("booking session not found")

	// ErrInvalidTransition is a move the flow never allows from the
	// current step, as opposed to one merely blocked by incomplete data.
	ErrInvalidTransition = errors.New("invalid step transition")

	// ErrBlocked means a forward gate's prerequisites are not satisfied
	// yet. It carries no message of its own: the UI shows it as a
	// disabled affordance, not an error banner.
	ErrBlocked = errors.New("step prerequisites not satisfied")

	// ErrSameDay is the hard business-rule rejection of today's date;
	// the advisory message with the phone channel accompanies it.
	ErrSameDay = errors.New("same-day bookings are not accepted online")

	ErrSubmitting        = errors.New("submission already in flight")
	ErrContactIncomplete = errors.New("contact details incomplete")
	ErrTransport         = errors.New("submission transport failed")
	ErrBadInput          = errors.New("invalid field value")
)
