package journey

import (
	"errors"
	"fmt"

	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/models"
)

// Error taxonomy. No-route outcomes are not errors; they are journeys of
// type no_route_found.
var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrNotFound               = errors.New("journey not found")
	ErrInconsistentState      = errors.New("inconsistent journey state")
	ErrInvalidTransition      = errors.New("invalid transition")
	ErrAlreadyRated           = errors.New("journey already rated")
	ErrConcurrentModification = errors.New("journey was modified concurrently")
)

// TransitionError describes a rejected lifecycle event
type TransitionError struct {
	From  models.JourneyStatus
	Event Event
}

// Target is the status the event would have moved the journey to, or ""
// when the event does not change status
func (e *TransitionError) Target() models.JourneyStatus {
	switch e.Event {
	case EventStart:
		return models.JourneyStatusActive
	case EventComplete:
		return models.JourneyStatusCompleted
	case EventCancel:
		return models.JourneyStatusCancelled
	default:
		return ""
	}
}

func (e *TransitionError) Error() string {
	if to := e.Target(); to != "" {
		return fmt.Sprintf("cannot move a journey from %q to %q (event %q)", e.From, to, e.Event)
	}
	return fmt.Sprintf("cannot apply %q to a journey in state %q", e.Event, e.From)
}

// Unwrap lets errors.Is match ErrInvalidTransition
func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

func invalidInput(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func inconsistent(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInconsistentState, fmt.Sprintf(format, args...))
}
