package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/journey"
	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/models"
	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/network"
	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/repository"
	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/spatial"
	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/stats"
)

// ErrEmptyNetwork is returned by lookups against a graph with no ranks
var ErrEmptyNetwork = errors.New("network has no active ranks")

// NetworkStats describes the currently published graph
type NetworkStats struct {
	Ranks    int           `json:"ranks"`
	Edges    int           `json:"edges"`
	BuiltAt  time.Time     `json:"built_at"`
	Fare     stats.Summary `json:"fare"`
	Duration stats.Summary `json:"duration_minutes"`
	Distance stats.Summary `json:"distance_km"`
}

// NearestRank is the result of a proximity lookup
type NearestRank struct {
	Rank       models.Rank `json:"rank"`
	DistanceKm float64     `json:"distance_km"`
}

// NetworkService owns the published rank and route graph
type NetworkService struct {
	ranks    *repository.RankRepository
	routes   *repository.RouteRepository
	snapshot *network.Snapshot

	mu sync.Mutex // serializes rebuilds
}

// NewNetworkService creates a network service with an empty graph
func NewNetworkService(ranks *repository.RankRepository, routes *repository.RouteRepository) *NetworkService {
	return &NetworkService{
		ranks:    ranks,
		routes:   routes,
		snapshot: network.NewSnapshot(nil),
	}
}

// Graph returns the current snapshot. Callers must treat it as read only.
func (s *NetworkService) Graph() *network.Graph {
	return s.snapshot.Load()
}

// BuildGraph reads active ranks and routes and builds a graph from them
// without publishing it
func (s *NetworkService) BuildGraph(ctx context.Context) (*network.Graph, error) {
	ranks, err := s.ranks.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ranks: %w", err)
	}
	routes, err := s.routes.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load routes: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return network.Build(ranks, routes), nil
}

// Refresh rebuilds the graph from storage and publishes it atomically.
// On failure the previous graph stays in place.
func (s *NetworkService) Refresh(ctx context.Context) (*network.Graph, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.BuildGraph(ctx)
	if err != nil {
		return nil, err
	}
	s.snapshot.Store(g)
	log.Printf("[network] published graph: %d ranks, %d edges", g.RankCount(), g.EdgeCount())
	return g, nil
}

// Run refreshes the graph every interval until ctx is cancelled
func (s *NetworkService) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := s.Refresh(ctx); err != nil {
				log.Printf("[network] refresh failed: %v", err)
			}
		case <-ctx.Done():
			log.Println("[network] refresh loop stopped")
			return
		}
	}
}

// Stats reports the size and age of the current graph and the spread of
// its edge weights
func (s *NetworkService) Stats() NetworkStats {
	g := s.snapshot.Load()

	var fares, durations, distances []float64
	for _, id := range g.RankIDs() {
		for _, e := range g.Edges(id) {
			fares = append(fares, e.Fare)
			durations = append(durations, e.Duration)
			distances = append(distances, e.Distance)
		}
	}

	return NetworkStats{
		Ranks:    g.RankCount(),
		Edges:    g.EdgeCount(),
		BuiltAt:  g.BuiltAt(),
		Fare:     stats.Summarize(fares),
		Duration: stats.Summarize(durations),
		Distance: stats.Summarize(distances),
	}
}

// NearestRank finds the closest active rank in the current graph
func (s *NetworkService) NearestRank(lat, lon float64) (*NearestRank, error) {
	p := spatial.Point{Lat: lat, Lon: lon}
	if !p.Valid() {
		return nil, fmt.Errorf("%w: invalid coordinates %.6f,%.6f", journey.ErrInvalidInput, lat, lon)
	}
	rank, km, ok := s.snapshot.Load().NearestRank(p)
	if !ok {
		return nil, ErrEmptyNetwork
	}
	return &NearestRank{Rank: rank, DistanceKm: km}, nil
}
