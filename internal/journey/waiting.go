package journey

import (
	"time"

	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/models"
)

// SetWaitingTime corrects the waiting time after hop seq of a planned
// journey and recomputes its totals. The final hop never waits.
func SetWaitingTime(j *models.Journey, seq int, minutes float64, now time.Time) error {
	if j.Status != models.JourneyStatusPlanned {
		return &TransitionError{From: j.Status, Event: "set_waiting_time"}
	}
	if minutes < 0 {
		return invalidInput("waiting_time_minutes must not be negative")
	}
	if seq < 1 || seq > len(j.Connections) {
		return invalidInput("journey has no connection %d", seq)
	}
	if seq == len(j.Connections) && minutes != 0 {
		return invalidInput("the final connection cannot have a waiting time")
	}

	j.Connections[seq-1].WaitingTimeMinutes = minutes
	Recompute(j)
	j.UpdatedAt = now
	return Verify(j)
}
