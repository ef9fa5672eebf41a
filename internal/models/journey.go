package models

import "time"

// JourneyType describes how a journey was resolved
type JourneyType string

// JourneyType constants
const (
	JourneyTypeDirect       JourneyType = "direct"
	JourneyTypeConnected    JourneyType = "connected"
	JourneyTypeNoRouteFound JourneyType = "no_route_found"
)

// JourneyStatus is the lifecycle state of a journey
type JourneyStatus string

// JourneyStatus constants
const (
	JourneyStatusPlanned   JourneyStatus = "planned"
	JourneyStatusActive    JourneyStatus = "active"
	JourneyStatusCompleted JourneyStatus = "completed"
	JourneyStatusCancelled JourneyStatus = "cancelled"
)

// IsTerminal reports whether no further state change is possible
func (s JourneyStatus) IsTerminal() bool {
	return s == JourneyStatusCompleted || s == JourneyStatusCancelled
}

// Journey is a user's resolved trip plan
type Journey struct {
	JourneyID string `json:"journey_id" db:"journey_id"`
	UserID    string `json:"user_id" db:"user_id"`

	OriginRankID      int64 `json:"origin_rank_id" db:"origin_rank_id"`
	DestinationRankID int64 `json:"destination_rank_id" db:"destination_rank_id"`

	// Aggregates, always derived from Connections
	TotalFare            float64 `json:"total_fare" db:"total_fare"`
	TotalDurationMinutes float64 `json:"total_duration_minutes" db:"total_duration_minutes"`
	TotalDistanceKm      float64 `json:"total_distance_km" db:"total_distance_km"`
	HopCount             int     `json:"hop_count" db:"hop_count"`
	RoutePath            []int64 `json:"route_path" db:"route_path_json"`

	JourneyType JourneyType   `json:"journey_type" db:"journey_type"`
	OptimizeFor OptimizeFor   `json:"optimize_for" db:"optimize_for"`
	Status      JourneyStatus `json:"status" db:"status"`

	// Lifecycle
	PlannedAt          time.Time  `json:"planned_at" db:"planned_at"`
	StartedAt          *time.Time `json:"started_at,omitempty" db:"started_at"`
	CompletedAt        *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty" db:"cancelled_at"`
	CancellationReason string     `json:"cancellation_reason,omitempty" db:"cancellation_reason"`

	// Feedback, only after completion
	Rating   *int    `json:"rating,omitempty" db:"rating"`
	Feedback *string `json:"feedback,omitempty" db:"feedback"`

	Version   int       `json:"version" db:"version"` // optimistic lock
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	Connections []RouteConnection `json:"connections"`
}

// PlanRequest is the input to journey planning
type PlanRequest struct {
	UserID            string      `json:"user_id" binding:"required"`
	OriginRankID      int64       `json:"origin_rank_id" binding:"required"`
	DestinationRankID int64       `json:"destination_rank_id" binding:"required"`
	Constraints       Constraints `json:"constraints"`
}

// JourneysResponse represents a paginated response of journeys
type JourneysResponse struct {
	Data       []Journey `json:"data"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	PageSize   int       `json:"pageSize"`
	TotalPages int       `json:"totalPages"`
}
