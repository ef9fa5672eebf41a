package models

import "time"

// RouteConnection is one hop of a journey
type RouteConnection struct {
	JourneyID     string `json:"journey_id" db:"journey_id"`
	SequenceOrder int    `json:"sequence_order" db:"sequence_order"` // 1-based, gapless

	RouteID       int64 `json:"route_id" db:"route_id"`
	RoutePosition int   `json:"route_position" db:"route_position"` // leg index within the route, 1-based
	FromRankID    int64 `json:"from_rank_id" db:"from_rank_id"`
	ToRankID      int64 `json:"to_rank_id" db:"to_rank_id"`

	// Rank where this hop ends and the next begins; nil on the final hop
	ConnectionRankID *int64 `json:"connection_rank_id,omitempty" db:"connection_rank_id"`

	SegmentFare            float64 `json:"segment_fare" db:"segment_fare"`
	SegmentDurationMinutes float64 `json:"segment_duration_minutes" db:"segment_duration_minutes"`
	SegmentDistanceKm      float64 `json:"segment_distance_km" db:"segment_distance_km"`
	WaitingTimeMinutes     float64 `json:"waiting_time_minutes" db:"waiting_time_minutes"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
