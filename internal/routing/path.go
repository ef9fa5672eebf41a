package routing

import "github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/network"

// Path is a resolved sequence of hops from Origin to Destination
type Path struct {
	Origin      int64
	Destination int64
	Edges       []network.Edge

	Fare     float64
	Duration float64
	Distance float64
}

// Hops returns the number of edges in the path
func (p *Path) Hops() int {
	return len(p.Edges)
}

// Ranks returns the ordered rank ids visited, origin first
func (p *Path) Ranks() []int64 {
	ranks := make([]int64, 0, len(p.Edges)+1)
	ranks = append(ranks, p.Origin)
	for _, e := range p.Edges {
		ranks = append(ranks, e.To)
	}
	return ranks
}
