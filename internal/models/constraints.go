package models

import "fmt"

// OptimizeFor selects the edge weight minimized by the resolver
type OptimizeFor string

// OptimizeFor constants
const (
	OptimizeFare     OptimizeFor = "fare"
	OptimizeDuration OptimizeFor = "duration"
	OptimizeDistance OptimizeFor = "distance"
)

// DefaultMaxHops caps search depth when no limit is given
const DefaultMaxHops = 4

// Constraints tune route resolution. Zero values mean "use defaults".
type Constraints struct {
	MaxHops     int         `json:"max_hops,omitempty" form:"maxHops"`
	OptimizeFor OptimizeFor `json:"optimize_for,omitempty" form:"optimizeFor"`
}

// WithDefaults fills unset fields from def, then from package defaults
func (c Constraints) WithDefaults(def Constraints) Constraints {
	if c.MaxHops <= 0 {
		c.MaxHops = def.MaxHops
	}
	if c.MaxHops <= 0 {
		c.MaxHops = DefaultMaxHops
	}
	if c.OptimizeFor == "" {
		c.OptimizeFor = def.OptimizeFor
	}
	if c.OptimizeFor == "" {
		c.OptimizeFor = OptimizeFare
	}
	return c
}

// Validate checks user supplied values
func (c Constraints) Validate() error {
	if c.MaxHops < 0 {
		return fmt.Errorf("max_hops must not be negative: %d", c.MaxHops)
	}
	switch c.OptimizeFor {
	case "", OptimizeFare, OptimizeDuration, OptimizeDistance:
		return nil
	default:
		return fmt.Errorf("unknown optimize_for: %q", c.OptimizeFor)
	}
}
