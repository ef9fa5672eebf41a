package routing

import (
	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/models"
	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/network"
)

// label is a partial path ending at rank
type label struct {
	rank  int64
	edges []network.Edge

	weight   float64
	duration float64
	distance float64
	fare     float64
}

func (l *label) extend(e network.Edge, opt models.OptimizeFor) *label {
	edges := make([]network.Edge, len(l.edges), len(l.edges)+1)
	copy(edges, l.edges)
	return &label{
		rank:     e.To,
		edges:    append(edges, e),
		weight:   l.weight + e.Weight(opt),
		duration: l.duration + e.Duration,
		distance: l.distance + e.Distance,
		fare:     l.fare + e.Fare,
	}
}

func (l *label) path(origin, destination int64) *Path {
	return &Path{
		Origin:      origin,
		Destination: destination,
		Edges:       l.edges,
		Fare:        l.fare,
		Duration:    l.duration,
		Distance:    l.distance,
	}
}

// less orders labels by weight, hops, duration, distance, then rank and route sequence
func (l *label) less(o *label) bool {
	if l.weight != o.weight {
		return l.weight < o.weight
	}
	if len(l.edges) != len(o.edges) {
		return len(l.edges) < len(o.edges)
	}
	if l.duration != o.duration {
		return l.duration < o.duration
	}
	if l.distance != o.distance {
		return l.distance < o.distance
	}
	for i := range l.edges {
		a, b := l.edges[i], o.edges[i]
		if a.To != b.To {
			return a.To < b.To
		}
		if a.RouteID != b.RouteID {
			return a.RouteID < b.RouteID
		}
		if a.Position != b.Position {
			return a.Position < b.Position
		}
	}
	return false
}

type labelQueue []*label

func (pq labelQueue) Len() int           { return len(pq) }
func (pq labelQueue) Less(i, j int) bool { return pq[i].less(pq[j]) }
func (pq labelQueue) Swap(i, j int)      { pq[i], pq[j] = pq[j], pq[i] }

func (pq *labelQueue) Push(x interface{}) {
	*pq = append(*pq, x.(*label))
}

func (pq *labelQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[0 : n-1]
	return item
}
