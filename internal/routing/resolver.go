// Package routing finds the cheapest rank-to-rank path through a network graph.
package routing

import (
	"container/heap"

	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/models"
	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/network"
)

// Resolve returns the best path from origin to destination using at most
// c.MaxHops edges, minimizing the weight selected by c.OptimizeFor.
//
// Ties are broken by fewer hops, then lower total duration, then lower total
// distance, then the lexicographically smallest rank sequence and route ids.
// The second return value is false when no path exists, including when the
// origin equals the destination.
func Resolve(g *network.Graph, origin, destination int64, c models.Constraints) (*Path, bool) {
	c = c.WithDefaults(models.Constraints{})
	if origin == destination || !g.HasRank(origin) || !g.HasRank(destination) {
		return nil, false
	}

	maxHops := c.MaxHops
	if n := g.RankCount() - 1; maxHops > n {
		// a shortest path never revisits a rank
		maxHops = n
	}

	type state struct {
		rank int64
		hops int
	}
	best := make(map[state]*label)
	done := make(map[state]bool)

	pq := &labelQueue{}
	heap.Init(pq)
	start := &label{rank: origin}
	best[state{origin, 0}] = start
	heap.Push(pq, start)

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(*label)
		st := state{cur.rank, len(cur.edges)}
		if done[st] || best[st] != cur {
			continue
		}
		done[st] = true

		if cur.rank == destination {
			return cur.path(origin, destination), true
		}
		if len(cur.edges) >= maxHops {
			continue
		}

		for _, e := range g.Edges(cur.rank) {
			next := cur.extend(e, c.OptimizeFor)
			ns := state{e.To, len(next.edges)}
			if done[ns] {
				continue
			}
			if old, ok := best[ns]; ok && !next.less(old) {
				continue
			}
			best[ns] = next
			heap.Push(pq, next)
		}
	}

	return nil, false
}
