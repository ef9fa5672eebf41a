package journey

import (
	"math"

	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/models"
)

const tolerance = 1e-6

func near(a, b float64) bool {
	return math.Abs(a-b) <= tolerance*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

// Verify checks the aggregate invariants of a journey against its connections.
// Any violation is reported as ErrInconsistentState.
func Verify(j *models.Journey) error {
	if j.HopCount != len(j.Connections) {
		return inconsistent("hop_count %d but %d connections", j.HopCount, len(j.Connections))
	}

	var fare, duration, distance float64
	for i, c := range j.Connections {
		if c.SequenceOrder != i+1 {
			return inconsistent("connection %d has sequence_order %d", i+1, c.SequenceOrder)
		}
		if c.SegmentFare < 0 || c.SegmentDurationMinutes < 0 || c.SegmentDistanceKm < 0 || c.WaitingTimeMinutes < 0 {
			return inconsistent("connection %d has a negative value", c.SequenceOrder)
		}
		last := i == len(j.Connections)-1
		if last {
			if c.ConnectionRankID != nil {
				return inconsistent("final connection must not name a connection rank")
			}
			if c.WaitingTimeMinutes != 0 {
				return inconsistent("final connection must not wait")
			}
		} else if c.ConnectionRankID == nil || *c.ConnectionRankID != c.ToRankID {
			return inconsistent("connection %d must end at its connection rank", c.SequenceOrder)
		}
		if i > 0 && j.Connections[i-1].ToRankID != c.FromRankID {
			return inconsistent("connection %d does not start where %d ends", c.SequenceOrder, i)
		}
		fare += c.SegmentFare
		duration += c.SegmentDurationMinutes + c.WaitingTimeMinutes
		distance += c.SegmentDistanceKm
	}

	if !near(j.TotalFare, fare) || !near(j.TotalDurationMinutes, duration) || !near(j.TotalDistanceKm, distance) {
		return inconsistent("totals (%.4f, %.4f, %.4f) do not match segments (%.4f, %.4f, %.4f)",
			j.TotalFare, j.TotalDurationMinutes, j.TotalDistanceKm, fare, duration, distance)
	}

	switch j.JourneyType {
	case models.JourneyTypeNoRouteFound:
		if j.HopCount != 0 || j.TotalFare != 0 {
			return inconsistent("no_route_found journey must have no hops and zero fare")
		}
		if len(j.RoutePath) != 1 || j.RoutePath[0] != j.OriginRankID {
			return inconsistent("no_route_found route_path must be [origin]")
		}
		return nil
	case models.JourneyTypeDirect:
		if j.HopCount != 1 {
			return inconsistent("direct journey must have exactly one hop, has %d", j.HopCount)
		}
	case models.JourneyTypeConnected:
		if j.HopCount < 2 {
			return inconsistent("connected journey must have at least two hops, has %d", j.HopCount)
		}
	default:
		return inconsistent("unknown journey_type %q", j.JourneyType)
	}

	if len(j.RoutePath) != j.HopCount+1 {
		return inconsistent("route_path has %d ranks for %d hops", len(j.RoutePath), j.HopCount)
	}
	if j.RoutePath[0] != j.OriginRankID || j.RoutePath[len(j.RoutePath)-1] != j.DestinationRankID {
		return inconsistent("route_path must run from origin to destination")
	}
	for i, c := range j.Connections {
		if j.RoutePath[i] != c.FromRankID || j.RoutePath[i+1] != c.ToRankID {
			return inconsistent("route_path disagrees with connection %d", c.SequenceOrder)
		}
	}
	return nil
}
