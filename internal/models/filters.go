package models

// JourneyFilter represents filter parameters for querying journeys
type JourneyFilter struct {
	UserID      string `form:"userId"`
	Status      string `form:"status"`      // planned, active, completed, cancelled
	JourneyType string `form:"journeyType"` // direct, connected, no_route_found
	OriginRank  int64  `form:"originRankId"`
	DestRank    int64  `form:"destinationRankId"`
	Page        int    `form:"page"`
	PageSize    int    `form:"pageSize"`
}

// RankFilter represents filter parameters for nearest-rank lookups
type RankFilter struct {
	Lat *float64 `form:"lat" binding:"required"`
	Lon *float64 `form:"lon" binding:"required"`
}

// TransitionRequest is the body of a lifecycle transition
type TransitionRequest struct {
	Event              string        `json:"event" binding:"required"` // start, complete, cancel, rate
	ExpectedStatus     JourneyStatus `json:"expected_status,omitempty"`
	CancellationReason string        `json:"cancellation_reason,omitempty"`
	Rating             *int          `json:"rating,omitempty"`
	Feedback           *string       `json:"feedback,omitempty"`
}

// WaitingTimeRequest corrects the waiting time after a hop
type WaitingTimeRequest struct {
	WaitingTimeMinutes *float64 `json:"waiting_time_minutes" binding:"required"`
}
