package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/journey"
	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/models"
	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/repository"
	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/routing"
)

// PlanningConfig holds planning defaults applied to every request
type PlanningConfig struct {
	MaxHops               int
	OptimizeFor           models.OptimizeFor
	TransferBufferMinutes float64
}

// JourneyService plans journeys and drives their lifecycle
type JourneyService struct {
	journeys *repository.JourneyRepository
	ranks    *repository.RankRepository
	network  *NetworkService
	cfg      PlanningConfig

	now   func() time.Time
	newID func() string
}

// NewJourneyService creates a new journey service
func NewJourneyService(journeys *repository.JourneyRepository, ranks *repository.RankRepository, network *NetworkService, cfg PlanningConfig) *JourneyService {
	return &JourneyService{
		journeys: journeys,
		ranks:    ranks,
		network:  network,
		cfg:      cfg,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// PlanJourney resolves a path over the current graph and persists the
// resulting journey. An unreachable destination is not an error; the
// journey is stored with type no_route_found.
func (s *JourneyService) PlanJourney(ctx context.Context, req models.PlanRequest) (*models.Journey, error) {
	req.UserID = strings.TrimSpace(req.UserID)
	if req.UserID == "" {
		return nil, fmt.Errorf("%w: user_id is required", journey.ErrInvalidInput)
	}
	if err := req.Constraints.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", journey.ErrInvalidInput, err)
	}
	req.Constraints = req.Constraints.WithDefaults(models.Constraints{
		MaxHops:     s.cfg.MaxHops,
		OptimizeFor: s.cfg.OptimizeFor,
	})

	// One snapshot for the whole resolution
	g := s.network.Graph()
	path, ok := routing.Resolve(g, req.OriginRankID, req.DestinationRankID, req.Constraints)
	if !ok {
		path = nil
	}

	ids := []int64{req.OriginRankID, req.DestinationRankID}
	if path != nil {
		ids = append(ids, path.Ranks()...)
	}
	ranks, err := s.ranks.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	j, err := journey.Assemble(path, req, ranks, journey.Options{
		TransferBufferMinutes: s.cfg.TransferBufferMinutes,
		OptimizeFor:           req.Constraints.OptimizeFor,
		Now:                   s.now(),
		NewID:                 s.newID,
	})
	if err != nil {
		if errors.Is(err, journey.ErrInconsistentState) {
			log.Printf("[journey] assembly aborted for %d->%d: %v", req.OriginRankID, req.DestinationRankID, err)
		}
		return nil, err
	}

	// Abandoned requests must not write
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.journeys.Create(ctx, j); err != nil {
		return nil, err
	}

	log.Printf("[journey] planned %s for user %s: %d->%d %s, %d hops, fare %.2f",
		j.JourneyID, j.UserID, j.OriginRankID, j.DestinationRankID, j.JourneyType, j.HopCount, j.TotalFare)
	return j, nil
}

// GetJourney retrieves a journey with its connections
func (s *JourneyService) GetJourney(ctx context.Context, journeyID string) (*models.Journey, error) {
	j, err := s.journeys.GetByJourneyID(ctx, journeyID)
	if err != nil {
		return nil, err
	}
	if j == nil {
		return nil, fmt.Errorf("%w: %s", journey.ErrNotFound, journeyID)
	}
	return j, nil
}

// ListJourneys retrieves journeys with filtering and pagination
func (s *JourneyService) ListJourneys(ctx context.Context, filter models.JourneyFilter) (*models.JourneysResponse, error) {
	switch models.JourneyStatus(filter.Status) {
	case "", models.JourneyStatusPlanned, models.JourneyStatusActive, models.JourneyStatusCompleted, models.JourneyStatusCancelled:
	default:
		return nil, fmt.Errorf("%w: unknown status %q", journey.ErrInvalidInput, filter.Status)
	}
	switch models.JourneyType(filter.JourneyType) {
	case "", models.JourneyTypeDirect, models.JourneyTypeConnected, models.JourneyTypeNoRouteFound:
	default:
		return nil, fmt.Errorf("%w: unknown journey type %q", journey.ErrInvalidInput, filter.JourneyType)
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	if filter.PageSize > 1000 {
		filter.PageSize = 1000
	}

	journeys, total, err := s.journeys.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if journeys == nil {
		journeys = []models.Journey{}
	}

	totalPages := int(total) / filter.PageSize
	if int(total)%filter.PageSize > 0 {
		totalPages++
	}
	return &models.JourneysResponse{
		Data:       journeys,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	}, nil
}

// TransitionJourney applies a lifecycle event. When expected is set the
// journey must currently be in that state. A write that loses a race with
// another writer fails with ErrConcurrentModification.
func (s *JourneyService) TransitionJourney(ctx context.Context, journeyID, event string, params journey.TransitionParams, expected models.JourneyStatus) (*models.Journey, error) {
	ev, err := journey.ParseEvent(event)
	if err != nil {
		return nil, err
	}

	j, err := s.GetJourney(ctx, journeyID)
	if err != nil {
		return nil, err
	}
	if expected != "" && j.Status != expected {
		return nil, fmt.Errorf("%w: journey %s is %s, expected %s",
			journey.ErrConcurrentModification, journeyID, j.Status, expected)
	}

	from, version := j.Status, j.Version
	if err := journey.Transition(j, ev, params, s.now()); err != nil {
		return nil, err
	}
	if err := s.journeys.UpdateLifecycle(ctx, j, from, version); err != nil {
		return nil, conflict(err, journeyID)
	}

	log.Printf("[journey] %s: %s %s -> %s", journeyID, ev, from, j.Status)
	return j, nil
}

// UpdateWaitingTime corrects the waiting time after connection seq of a
// planned journey
func (s *JourneyService) UpdateWaitingTime(ctx context.Context, journeyID string, seq int, minutes float64) (*models.Journey, error) {
	j, err := s.GetJourney(ctx, journeyID)
	if err != nil {
		return nil, err
	}

	version := j.Version
	if err := journey.SetWaitingTime(j, seq, minutes, s.now()); err != nil {
		return nil, err
	}
	if err := s.journeys.UpdateWaitingTime(ctx, j, seq, version); err != nil {
		return nil, conflict(err, journeyID)
	}
	return j, nil
}

func conflict(err error, journeyID string) error {
	if errors.Is(err, repository.ErrStaleWrite) {
		return fmt.Errorf("%w: %s", journey.ErrConcurrentModification, journeyID)
	}
	return err
}
