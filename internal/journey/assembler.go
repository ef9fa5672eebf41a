// Package journey turns resolved paths into journeys and governs their lifecycle.
package journey

import (
	"time"

	"github.com/google/uuid"

	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/models"
	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/routing"
)

// Options control assembly
type Options struct {
	// TransferBufferMinutes is the wait after a hop when the next hop is on a
	// different route. Consecutive legs of the same route do not wait, and a
	// route's own transfer time overrides the buffer.
	TransferBufferMinutes float64
	OptimizeFor           models.OptimizeFor
	Now                   time.Time
	NewID                 func() string // defaults to uuid.NewString
}

// Assemble builds a planned journey from a resolved path. A nil path means
// no route was found. ranks must hold the current state of every rank the
// request and path reference; a missing or inactive rank fails validation.
func Assemble(path *routing.Path, req models.PlanRequest, ranks map[int64]models.Rank, opts Options) (*models.Journey, error) {
	if req.UserID == "" {
		return nil, invalidInput("user_id is required")
	}
	if req.OriginRankID <= 0 || req.DestinationRankID <= 0 {
		return nil, invalidInput("origin and destination rank ids are required")
	}
	if path != nil && req.OriginRankID == req.DestinationRankID {
		return nil, invalidInput("origin and destination are the same rank %d", req.OriginRankID)
	}

	referenced := []int64{req.OriginRankID, req.DestinationRankID}
	if path != nil {
		if path.Origin != req.OriginRankID || path.Destination != req.DestinationRankID {
			return nil, inconsistent("path %d->%d does not match request %d->%d",
				path.Origin, path.Destination, req.OriginRankID, req.DestinationRankID)
		}
		if path.Hops() == 0 {
			return nil, inconsistent("resolved path has no hops")
		}
		referenced = append(referenced, path.Ranks()...)
	}
	for _, id := range referenced {
		r, ok := ranks[id]
		if !ok {
			return nil, invalidInput("rank %d does not exist", id)
		}
		if !r.IsActive {
			return nil, invalidInput("rank %d is not active", id)
		}
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	newID := opts.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	j := &models.Journey{
		JourneyID:         newID(),
		UserID:            req.UserID,
		OriginRankID:      req.OriginRankID,
		DestinationRankID: req.DestinationRankID,
		OptimizeFor:       opts.OptimizeFor,
		Status:            models.JourneyStatusPlanned,
		PlannedAt:         now,
		UpdatedAt:         now,
		Version:           1,
		Connections:       []models.RouteConnection{},
	}

	if path == nil {
		j.JourneyType = models.JourneyTypeNoRouteFound
		j.RoutePath = []int64{req.OriginRankID}
		return checked(j)
	}

	n := path.Hops()
	for i, e := range path.Edges {
		conn := models.RouteConnection{
			JourneyID:              j.JourneyID,
			SequenceOrder:          i + 1,
			RouteID:                e.RouteID,
			RoutePosition:          e.Position,
			FromRankID:             e.From,
			ToRankID:               e.To,
			SegmentFare:            e.Fare,
			SegmentDurationMinutes: e.Duration,
			SegmentDistanceKm:      e.Distance,
			CreatedAt:              now,
		}
		if i < n-1 {
			end := e.To
			conn.ConnectionRankID = &end
			next := path.Edges[i+1]
			if next.RouteID != e.RouteID {
				conn.WaitingTimeMinutes = opts.TransferBufferMinutes
				if e.TransferTime != nil {
					conn.WaitingTimeMinutes = *e.TransferTime
				}
			}
		}
		j.Connections = append(j.Connections, conn)
	}

	j.JourneyType = models.JourneyTypeConnected
	if n == 1 {
		j.JourneyType = models.JourneyTypeDirect
	}
	j.RoutePath = path.Ranks()
	Recompute(j)

	return checked(j)
}

func checked(j *models.Journey) (*models.Journey, error) {
	if err := Verify(j); err != nil {
		return nil, err
	}
	return j, nil
}

// Recompute derives hop count and totals from the journey's connections
func Recompute(j *models.Journey) {
	j.HopCount = len(j.Connections)
	j.TotalFare, j.TotalDurationMinutes, j.TotalDistanceKm = 0, 0, 0
	for _, c := range j.Connections {
		j.TotalFare += c.SegmentFare
		j.TotalDurationMinutes += c.SegmentDurationMinutes + c.WaitingTimeMinutes
		j.TotalDistanceKm += c.SegmentDistanceKm
	}
}
