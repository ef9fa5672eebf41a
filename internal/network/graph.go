// Package network materializes the rank/route transit graph used for journey resolution.
// A Graph is immutable once built and safe for concurrent readers.
package network

import (
	"math"
	"sort"
	"time"

	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/models"
	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/spatial"
)

// Edge is one unit hop between two adjacent ranks of a route
type Edge struct {
	From int64
	To   int64

	RouteID  int64
	Position int // 1-based leg index in traversal order
	Legs     int // total legs of the route

	Fare     float64
	Duration float64 // minutes
	Distance float64 // kilometers

	TransferTime *float64 // minutes, from the route's transfer_time_minutes
}

// Weight returns the edge cost for the given optimization target
func (e Edge) Weight(opt models.OptimizeFor) float64 {
	switch opt {
	case models.OptimizeDuration:
		return e.Duration
	case models.OptimizeDistance:
		return e.Distance
	default:
		return e.Fare
	}
}

// Graph is an immutable adjacency view over active ranks
type Graph struct {
	ranks   map[int64]models.Rank
	adj     map[int64][]Edge
	edges   int
	builtAt time.Time
}

// Empty returns a graph with no ranks
func Empty() *Graph {
	return &Graph{
		ranks: map[int64]models.Rank{},
		adj:   map[int64][]Edge{},
	}
}

// HasRank reports whether id is an active rank in the graph
func (g *Graph) HasRank(id int64) bool {
	if g == nil {
		return false
	}
	_, ok := g.ranks[id]
	return ok
}

// Rank returns the rank with the given id
func (g *Graph) Rank(id int64) (models.Rank, bool) {
	if g == nil {
		return models.Rank{}, false
	}
	r, ok := g.ranks[id]
	return r, ok
}

// Edges returns outgoing edges of a rank. The slice is shared; callers must not modify it.
func (g *Graph) Edges(from int64) []Edge {
	if g == nil {
		return nil
	}
	return g.adj[from]
}

// RankCount returns the number of active ranks
func (g *Graph) RankCount() int {
	if g == nil {
		return 0
	}
	return len(g.ranks)
}

// EdgeCount returns the number of directed unit edges
func (g *Graph) EdgeCount() int {
	if g == nil {
		return 0
	}
	return g.edges
}

// BuiltAt returns when the graph was built
func (g *Graph) BuiltAt() time.Time {
	if g == nil {
		return time.Time{}
	}
	return g.builtAt
}

// RankIDs returns all rank ids in ascending order
func (g *Graph) RankIDs() []int64 {
	if g == nil {
		return nil
	}
	ids := make([]int64, 0, len(g.ranks))
	for id := range g.ranks {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// NearestRank returns the active rank closest to p and its distance in km.
// Ties go to the lower rank id.
func (g *Graph) NearestRank(p spatial.Point) (models.Rank, float64, bool) {
	var (
		best  models.Rank
		bestD = math.Inf(1)
		found bool
	)
	for _, id := range g.RankIDs() {
		r := g.ranks[id]
		d := spatial.DistanceKm(p, spatial.Point{Lat: r.Latitude, Lon: r.Longitude})
		if d < bestD {
			best, bestD, found = r, d, true
		}
	}
	if !found {
		return models.Rank{}, 0, false
	}
	return best, bestD, true
}
