package models

import "time"

// Route represents a predefined taxi route between ranks.
// A route with Stops is a chain: origin -> stops... -> destination.
type Route struct {
	ID int64 `json:"id" db:"id"`

	Name              string  `json:"name" db:"name"`
	OriginRankID      int64   `json:"origin_rank_id" db:"origin_rank_id"`
	DestinationRankID int64   `json:"destination_rank_id" db:"destination_rank_id"`
	Stops             []int64 `json:"stops,omitempty" db:"stops_json"` // intermediate ranks, JSON array

	Fare            float64 `json:"fare" db:"fare"`
	DurationMinutes float64 `json:"duration_minutes" db:"duration_minutes"`
	DistanceKm      float64 `json:"distance_km" db:"distance_km"` // 0 means unknown

	// Minutes to wait before the next hop when transferring off this route
	TransferTimeMinutes *float64 `json:"transfer_time_minutes,omitempty" db:"transfer_time_minutes"`

	IsDirectional bool `json:"is_directional" db:"is_directional"`
	IsActive      bool `json:"is_active" db:"is_active"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// RankPath returns the ordered rank ids the route visits
func (r Route) RankPath() []int64 {
	path := make([]int64, 0, len(r.Stops)+2)
	path = append(path, r.OriginRankID)
	path = append(path, r.Stops...)
	path = append(path, r.DestinationRankID)
	return path
}
