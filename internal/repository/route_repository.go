package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/database"
	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/models"
)

const routeColumns = `id, name, origin_rank_id, destination_rank_id, stops_json,
		fare, duration_minutes, distance_km, transfer_time_minutes,
		is_directional, is_active, created_at, updated_at`

// RouteRepository handles database operations for routes
type RouteRepository struct {
	db *database.DB
}

// NewRouteRepository creates a new route repository
func NewRouteRepository(db *database.DB) *RouteRepository {
	return &RouteRepository{db: db}
}

// Create inserts a route with a caller supplied id
func (r *RouteRepository) Create(ctx context.Context, route *models.Route) error {
	stops := route.Stops
	if stops == nil {
		stops = []int64{}
	}
	stopsJSON, err := encodeJSON(stops)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	if route.CreatedAt.IsZero() {
		route.CreatedAt = now
	}
	route.UpdatedAt = now

	var transfer interface{}
	if route.TransferTimeMinutes != nil {
		transfer = *route.TransferTimeMinutes
	}

	query := r.db.Rebind(`INSERT INTO routes (` + routeColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err = r.db.ExecContext(ctx, query,
		route.ID, route.Name, route.OriginRankID, route.DestinationRankID, stopsJSON,
		route.Fare, route.DurationMinutes, route.DistanceKm, transfer,
		boolToInt(route.IsDirectional), boolToInt(route.IsActive),
		formatTime(route.CreatedAt), formatTime(route.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to create route: %w", err)
	}
	return nil
}

// ListActive returns all active routes ordered by id
func (r *RouteRepository) ListActive(ctx context.Context) ([]models.Route, error) {
	query := `SELECT ` + routeColumns + ` FROM routes WHERE is_active = 1 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query routes: %w", err)
	}
	defer rows.Close()

	var routes []models.Route
	for rows.Next() {
		route, err := scanRoute(rows)
		if err != nil {
			return nil, err
		}
		routes = append(routes, route)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating route rows: %w", err)
	}
	return routes, nil
}

func scanRoute(rows *sql.Rows) (models.Route, error) {
	var (
		route                models.Route
		stops                string
		transfer             sql.NullFloat64
		directional, active  int
		createdAt, updatedAt string
	)
	err := rows.Scan(
		&route.ID, &route.Name, &route.OriginRankID, &route.DestinationRankID, &stops,
		&route.Fare, &route.DurationMinutes, &route.DistanceKm, &transfer,
		&directional, &active, &createdAt, &updatedAt,
	)
	if err != nil {
		return route, fmt.Errorf("failed to scan route: %w", err)
	}
	if err := decodeJSON(stops, &route.Stops); err != nil {
		return route, err
	}
	if len(route.Stops) == 0 {
		route.Stops = nil
	}
	if transfer.Valid {
		v := transfer.Float64
		route.TransferTimeMinutes = &v
	}
	route.IsDirectional = directional != 0
	route.IsActive = active != 0
	if route.CreatedAt, err = parseTime(createdAt); err != nil {
		return route, err
	}
	if route.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return route, err
	}
	return route, nil
}
