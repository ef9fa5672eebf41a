package network

import (
	"log"
	"sort"
	"time"

	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/models"
	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/spatial"
)

// Build creates a graph from ranks and routes.
//
// Inactive ranks are dropped, and so is every edge touching one. Routes with
// negative fare, duration or distance are invalid and skipped entirely. A route
// with intermediate stops expands into one edge per leg; the route's fare,
// duration and distance are split across legs in proportion to their
// great-circle length, or evenly when coordinates are missing or degenerate.
// Non-directional routes get a reverse edge for every leg.
func Build(ranks []models.Rank, routes []models.Route) *Graph {
	g := Empty()
	g.builtAt = time.Now()

	known := make(map[int64]models.Rank, len(ranks))
	for _, r := range ranks {
		known[r.ID] = r
		if r.IsActive {
			g.ranks[r.ID] = r
		}
	}

	skipped := 0
	for _, route := range routes {
		if !route.IsActive {
			continue
		}
		if route.Fare < 0 || route.DurationMinutes < 0 || route.DistanceKm < 0 {
			skipped++
			continue
		}
		if route.TransferTimeMinutes != nil && *route.TransferTimeMinutes < 0 {
			skipped++
			continue
		}

		for _, e := range expandRoute(route, known) {
			if e.From == e.To || !g.HasRank(e.From) || !g.HasRank(e.To) {
				continue
			}
			g.addEdge(e)
			if !route.IsDirectional {
				g.addEdge(e.reversed())
			}
		}
	}

	for from := range g.adj {
		edges := g.adj[from]
		sort.Slice(edges, func(i, j int) bool {
			if edges[i].To != edges[j].To {
				return edges[i].To < edges[j].To
			}
			if edges[i].RouteID != edges[j].RouteID {
				return edges[i].RouteID < edges[j].RouteID
			}
			return edges[i].Position < edges[j].Position
		})
	}

	if skipped > 0 {
		log.Printf("[network] skipped %d routes with invalid weights", skipped)
	}
	return g
}

func (g *Graph) addEdge(e Edge) {
	g.adj[e.From] = append(g.adj[e.From], e)
	g.edges++
}

func (e Edge) reversed() Edge {
	r := e
	r.From, r.To = e.To, e.From
	r.Position = e.Legs - e.Position + 1
	return r
}

// expandRoute splits a route into its legs in forward order
func expandRoute(route models.Route, known map[int64]models.Rank) []Edge {
	path := route.RankPath()
	legs := len(path) - 1

	points := make([]spatial.Point, 0, len(path))
	located := true
	for _, id := range path {
		r, ok := known[id]
		if !ok {
			located = false
			break
		}
		points = append(points, spatial.Point{Lat: r.Latitude, Lon: r.Longitude})
	}

	var lengths []float64
	var total float64
	if located {
		lengths = spatial.LegLengthsKm(points)
		for _, l := range lengths {
			total += l
		}
	}

	edges := make([]Edge, 0, legs)
	for i := 0; i < legs; i++ {
		share := 1.0 / float64(legs)
		if located && total > 0 {
			share = lengths[i] / total
		}

		distance := route.DistanceKm * share
		if route.DistanceKm == 0 && located {
			distance = lengths[i]
		}

		edges = append(edges, Edge{
			From:         path[i],
			To:           path[i+1],
			RouteID:      route.ID,
			Position:     i + 1,
			Legs:         legs,
			Fare:         route.Fare * share,
			Duration:     route.DurationMinutes * share,
			Distance:     distance,
			TransferTime: route.TransferTimeMinutes,
		})
	}
	return edges
}
