package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/database"
	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/models"
)

const journeyColumns = `journey_id, user_id, origin_rank_id, destination_rank_id,
		total_fare, total_duration_minutes, total_distance_km, hop_count, route_path_json,
		journey_type, optimize_for, status, planned_at, started_at, completed_at,
		cancelled_at, cancellation_reason, rating, feedback, version, updated_at`

const connectionColumns = `journey_id, sequence_order, route_id, route_position,
		from_rank_id, to_rank_id, connection_rank_id, segment_fare,
		segment_duration_minutes, segment_distance_km, waiting_time_minutes, created_at`

// JourneyRepository handles database operations for journeys and their connections
type JourneyRepository struct {
	db *database.DB
}

// NewJourneyRepository creates a new journey repository
func NewJourneyRepository(db *database.DB) *JourneyRepository {
	return &JourneyRepository{db: db}
}

// Create stores a journey and all of its connections atomically
func (r *JourneyRepository) Create(ctx context.Context, j *models.Journey) error {
	routePath, err := encodeJSON(j.RoutePath)
	if err != nil {
		return err
	}

	journeyQuery := r.db.Rebind(`INSERT INTO journeys (` + journeyColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	connQuery := r.db.Rebind(`INSERT INTO route_connections (` + connectionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	return r.db.Transaction(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, journeyQuery,
			j.JourneyID, j.UserID, j.OriginRankID, j.DestinationRankID,
			j.TotalFare, j.TotalDurationMinutes, j.TotalDistanceKm, j.HopCount, routePath,
			string(j.JourneyType), string(j.OptimizeFor), string(j.Status),
			formatTime(j.PlannedAt), formatTimePtr(j.StartedAt), formatTimePtr(j.CompletedAt),
			formatTimePtr(j.CancelledAt), j.CancellationReason, nullInt(j.Rating), nullString(j.Feedback),
			j.Version, formatTime(j.UpdatedAt),
		)
		if err != nil {
			return fmt.Errorf("failed to create journey: %w", err)
		}

		for _, c := range j.Connections {
			var connRank interface{}
			if c.ConnectionRankID != nil {
				connRank = *c.ConnectionRankID
			}
			_, err := tx.ExecContext(ctx, connQuery,
				j.JourneyID, c.SequenceOrder, c.RouteID, c.RoutePosition,
				c.FromRankID, c.ToRankID, connRank, c.SegmentFare,
				c.SegmentDurationMinutes, c.SegmentDistanceKm, c.WaitingTimeMinutes, formatTime(c.CreatedAt),
			)
			if err != nil {
				return fmt.Errorf("failed to create route connection %d: %w", c.SequenceOrder, err)
			}
		}
		return nil
	})
}

// GetByJourneyID retrieves a journey with its connections.
// Returns (nil, nil) when it does not exist.
func (r *JourneyRepository) GetByJourneyID(ctx context.Context, journeyID string) (*models.Journey, error) {
	query := r.db.Rebind(`SELECT ` + journeyColumns + ` FROM journeys WHERE journey_id = ?`)
	rows, err := r.db.QueryContext(ctx, query, journeyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get journey: %w", err)
	}
	journeys, err := scanJourneys(rows)
	if err != nil {
		return nil, err
	}
	if len(journeys) == 0 {
		return nil, nil
	}

	if err := r.attachConnections(ctx, journeys); err != nil {
		return nil, err
	}
	return &journeys[0], nil
}

// List retrieves journeys with filtering and pagination
func (r *JourneyRepository) List(ctx context.Context, filter models.JourneyFilter) ([]models.Journey, int64, error) {
	var conditions []string
	var args []interface{}

	if filter.UserID != "" {
		conditions = append(conditions, "user_id = ?")
		args = append(args, filter.UserID)
	}
	if filter.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.JourneyType != "" {
		conditions = append(conditions, "journey_type = ?")
		args = append(args, filter.JourneyType)
	}
	if filter.OriginRank > 0 {
		conditions = append(conditions, "origin_rank_id = ?")
		args = append(args, filter.OriginRank)
	}
	if filter.DestRank > 0 {
		conditions = append(conditions, "destination_rank_id = ?")
		args = append(args, filter.DestRank)
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, r.db.Rebind("SELECT COUNT(*) FROM journeys"+where), args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count journeys: %w", err)
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	if filter.PageSize > 1000 {
		filter.PageSize = 1000
	}
	offset := (filter.Page - 1) * filter.PageSize

	query := `SELECT ` + journeyColumns + ` FROM journeys` + where +
		` ORDER BY planned_at DESC, journey_id LIMIT ? OFFSET ?`
	args = append(args, filter.PageSize, offset)

	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query journeys: %w", err)
	}
	journeys, err := scanJourneys(rows)
	if err != nil {
		return nil, 0, err
	}
	if err := r.attachConnections(ctx, journeys); err != nil {
		return nil, 0, err
	}
	return journeys, total, nil
}

// UpdateLifecycle persists lifecycle fields of j if the stored row still has
// the expected status and version. Returns ErrStaleWrite otherwise.
func (r *JourneyRepository) UpdateLifecycle(ctx context.Context, j *models.Journey, expectedStatus models.JourneyStatus, expectedVersion int) error {
	query := r.db.Rebind(`
		UPDATE journeys
		SET status = ?, started_at = ?, completed_at = ?, cancelled_at = ?,
			cancellation_reason = ?, rating = ?, feedback = ?,
			version = version + 1, updated_at = ?
		WHERE journey_id = ? AND status = ? AND version = ?
	`)

	result, err := r.db.ExecContext(ctx, query,
		string(j.Status), formatTimePtr(j.StartedAt), formatTimePtr(j.CompletedAt), formatTimePtr(j.CancelledAt),
		j.CancellationReason, nullInt(j.Rating), nullString(j.Feedback), formatTime(j.UpdatedAt),
		j.JourneyID, string(expectedStatus), expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("failed to update journey: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrStaleWrite
	}

	j.Version = expectedVersion + 1
	return nil
}

// UpdateWaitingTime stores a corrected waiting time for connection seq and the
// journey's recomputed duration, only while the journey is still planned at
// the expected version
func (r *JourneyRepository) UpdateWaitingTime(ctx context.Context, j *models.Journey, seq int, expectedVersion int) error {
	connQuery := r.db.Rebind(`UPDATE route_connections SET waiting_time_minutes = ?
		WHERE journey_id = ? AND sequence_order = ?`)
	journeyQuery := r.db.Rebind(`
		UPDATE journeys
		SET total_duration_minutes = ?, version = version + 1, updated_at = ?
		WHERE journey_id = ? AND status = ? AND version = ?
	`)

	err := r.db.Transaction(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, journeyQuery,
			j.TotalDurationMinutes, formatTime(j.UpdatedAt),
			j.JourneyID, string(models.JourneyStatusPlanned), expectedVersion,
		)
		if err != nil {
			return fmt.Errorf("failed to update journey duration: %w", err)
		}
		if affected, err := result.RowsAffected(); err != nil {
			return fmt.Errorf("failed to read affected rows: %w", err)
		} else if affected == 0 {
			return ErrStaleWrite
		}

		result, err = tx.ExecContext(ctx, connQuery, j.Connections[seq-1].WaitingTimeMinutes, j.JourneyID, seq)
		if err != nil {
			return fmt.Errorf("failed to update waiting time: %w", err)
		}
		if affected, err := result.RowsAffected(); err != nil {
			return fmt.Errorf("failed to read affected rows: %w", err)
		} else if affected != 1 {
			return fmt.Errorf("route connection %d of journey %s not found", seq, j.JourneyID)
		}
		return nil
	})
	if err != nil {
		return err
	}

	j.Version = expectedVersion + 1
	return nil
}

// attachConnections loads connections for all journeys in one query
func (r *JourneyRepository) attachConnections(ctx context.Context, journeys []models.Journey) error {
	if len(journeys) == 0 {
		return nil
	}

	index := make(map[string]int, len(journeys))
	args := make([]interface{}, len(journeys))
	for i := range journeys {
		index[journeys[i].JourneyID] = i
		args[i] = journeys[i].JourneyID
		journeys[i].Connections = []models.RouteConnection{}
	}

	query := r.db.Rebind(`SELECT ` + connectionColumns + ` FROM route_connections
		WHERE journey_id IN (` + placeholders(len(journeys)) + `)
		ORDER BY journey_id, sequence_order`)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to query route connections: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			c         models.RouteConnection
			connRank  sql.NullInt64
			createdAt string
		)
		err := rows.Scan(
			&c.JourneyID, &c.SequenceOrder, &c.RouteID, &c.RoutePosition,
			&c.FromRankID, &c.ToRankID, &connRank, &c.SegmentFare,
			&c.SegmentDurationMinutes, &c.SegmentDistanceKm, &c.WaitingTimeMinutes, &createdAt,
		)
		if err != nil {
			return fmt.Errorf("failed to scan route connection: %w", err)
		}
		if connRank.Valid {
			v := connRank.Int64
			c.ConnectionRankID = &v
		}
		if c.CreatedAt, err = parseTime(createdAt); err != nil {
			return err
		}
		i := index[c.JourneyID]
		journeys[i].Connections = append(journeys[i].Connections, c)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating route connection rows: %w", err)
	}
	return nil
}

func scanJourneys(rows *sql.Rows) ([]models.Journey, error) {
	defer rows.Close()

	var journeys []models.Journey
	for rows.Next() {
		var (
			j                                    models.Journey
			routePath, journeyType, optimize, st string
			plannedAt, updatedAt                 string
			startedAt, completedAt, cancelledAt  sql.NullString
			rating                               sql.NullInt64
			feedback                             sql.NullString
		)
		err := rows.Scan(
			&j.JourneyID, &j.UserID, &j.OriginRankID, &j.DestinationRankID,
			&j.TotalFare, &j.TotalDurationMinutes, &j.TotalDistanceKm, &j.HopCount, &routePath,
			&journeyType, &optimize, &st, &plannedAt, &startedAt, &completedAt,
			&cancelledAt, &j.CancellationReason, &rating, &feedback, &j.Version, &updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journey: %w", err)
		}

		j.JourneyType = models.JourneyType(journeyType)
		j.OptimizeFor = models.OptimizeFor(optimize)
		j.Status = models.JourneyStatus(st)
		if err := decodeJSON(routePath, &j.RoutePath); err != nil {
			return nil, err
		}
		if j.PlannedAt, err = parseTime(plannedAt); err != nil {
			return nil, err
		}
		if j.UpdatedAt, err = parseTime(updatedAt); err != nil {
			return nil, err
		}
		if j.StartedAt, err = parseNullTime(startedAt); err != nil {
			return nil, err
		}
		if j.CompletedAt, err = parseNullTime(completedAt); err != nil {
			return nil, err
		}
		if j.CancelledAt, err = parseNullTime(cancelledAt); err != nil {
			return nil, err
		}
		if rating.Valid {
			v := int(rating.Int64)
			j.Rating = &v
		}
		if feedback.Valid {
			v := feedback.String
			j.Feedback = &v
		}
		journeys = append(journeys, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journey rows: %w", err)
	}
	return journeys, nil
}

func nullInt(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func nullString(v *string) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
