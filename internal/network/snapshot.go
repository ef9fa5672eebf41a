package network

import "sync/atomic"

// Snapshot holds the graph currently used for resolution.
// Readers load it once per request; refreshes swap in a new graph.
type Snapshot struct {
	current atomic.Pointer[Graph]
}

// NewSnapshot creates a snapshot holding g
func NewSnapshot(g *Graph) *Snapshot {
	s := &Snapshot{}
	if g != nil {
		s.current.Store(g)
	}
	return s
}

// Load returns the current graph, or an empty one if none was stored
func (s *Snapshot) Load() *Graph {
	if g := s.current.Load(); g != nil {
		return g
	}
	return Empty()
}

// Store replaces the current graph
func (s *Snapshot) Store(g *Graph) {
	s.current.Store(g)
}
