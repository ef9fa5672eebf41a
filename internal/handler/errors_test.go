package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/journey"
	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/models"
	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/service"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: bad id", journey.ErrInvalidInput), http.StatusBadRequest},
		{fmt.Errorf("%w: j-1", journey.ErrNotFound), http.StatusNotFound},
		{service.ErrEmptyNetwork, http.StatusNotFound},
		{&journey.TransitionError{From: models.JourneyStatusCompleted, Event: journey.EventStart}, http.StatusConflict},
		{journey.ErrAlreadyRated, http.StatusConflict},
		{fmt.Errorf("%w: j-1", journey.ErrConcurrentModification), http.StatusConflict},
		{fmt.Errorf("%w: totals", journey.ErrInconsistentState), http.StatusInternalServerError},
		{errors.New("disk full"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
