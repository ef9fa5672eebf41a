package journey

import (
	"strings"
	"time"

	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/models"
)

// Event is a lifecycle request against a journey
type Event string

// Event constants
const (
	EventStart    Event = "start"
	EventComplete Event = "complete"
	EventCancel   Event = "cancel"
	EventRate     Event = "rate"
)

// Rating bounds
const (
	MinRating = 1
	MaxRating = 5
)

// TransitionParams carries event specific input
type TransitionParams struct {
	CancellationReason string
	Rating             *int
	Feedback           *string
}

// ParseEvent validates an event name
func ParseEvent(s string) (Event, error) {
	switch ev := Event(strings.ToLower(strings.TrimSpace(s))); ev {
	case EventStart, EventComplete, EventCancel, EventRate:
		return ev, nil
	default:
		return "", invalidInput("unknown event %q", s)
	}
}

// Transition applies ev to j in place.
//
//	planned  --start-->    active
//	active   --complete--> completed
//	planned|active --cancel--> cancelled (reason required)
//	completed --rate-->    completed (rating and feedback each set once)
//
// Anything else returns a *TransitionError. On error j is left unchanged.
func Transition(j *models.Journey, ev Event, p TransitionParams, now time.Time) error {
	from := j.Status
	reject := &TransitionError{From: from, Event: ev}

	switch ev {
	case EventStart:
		if from != models.JourneyStatusPlanned {
			return reject
		}
		j.Status = models.JourneyStatusActive
		j.StartedAt = &now

	case EventComplete:
		if from != models.JourneyStatusActive {
			return reject
		}
		j.Status = models.JourneyStatusCompleted
		j.CompletedAt = &now

	case EventCancel:
		if from != models.JourneyStatusPlanned && from != models.JourneyStatusActive {
			return reject
		}
		reason := strings.TrimSpace(p.CancellationReason)
		if reason == "" {
			return invalidInput("cancellation_reason is required")
		}
		j.Status = models.JourneyStatusCancelled
		j.CancelledAt = &now
		j.CancellationReason = reason

	case EventRate:
		if from != models.JourneyStatusCompleted {
			return reject
		}
		if p.Rating == nil && p.Feedback == nil {
			return invalidInput("rating or feedback is required")
		}
		if p.Rating != nil {
			if j.Rating != nil {
				return ErrAlreadyRated
			}
			if *p.Rating < MinRating || *p.Rating > MaxRating {
				return invalidInput("rating must be between %d and %d", MinRating, MaxRating)
			}
		}
		if p.Feedback != nil && j.Feedback != nil {
			return ErrAlreadyRated
		}
		if p.Rating != nil {
			r := *p.Rating
			j.Rating = &r
		}
		if p.Feedback != nil {
			f := *p.Feedback
			j.Feedback = &f
		}

	default:
		return invalidInput("unknown event %q", ev)
	}

	j.UpdatedAt = now
	return nil
}
