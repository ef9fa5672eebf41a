package models

import "time"

// Rank represents a taxi rank, a node of the transit network
type Rank struct {
	ID int64 `json:"id" db:"id"`

	Name      string  `json:"name" db:"name"`
	Address   string  `json:"address,omitempty" db:"address"`
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`

	Capacity   int      `json:"capacity" db:"capacity"`
	IsActive   bool     `json:"is_active" db:"is_active"`
	Facilities []string `json:"facilities,omitempty" db:"facilities_json"` // stored as JSON array

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
