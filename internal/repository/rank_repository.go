package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/database"
	"github.com/Bee-Intelligence/Bee-Rank-API-sub002/internal/models"
)

const rankColumns = `id, name, address, latitude, longitude, capacity, is_active,
		facilities_json, created_at, updated_at`

// RankRepository handles database operations for ranks
type RankRepository struct {
	db *database.DB
}

// NewRankRepository creates a new rank repository
func NewRankRepository(db *database.DB) *RankRepository {
	return &RankRepository{db: db}
}

// Create inserts a rank with a caller supplied id
func (r *RankRepository) Create(ctx context.Context, rank *models.Rank) error {
	facilities, err := encodeJSON(nonNilStrings(rank.Facilities))
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	if rank.CreatedAt.IsZero() {
		rank.CreatedAt = now
	}
	rank.UpdatedAt = now

	query := r.db.Rebind(`INSERT INTO ranks (` + rankColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err = r.db.ExecContext(ctx, query,
		rank.ID, rank.Name, rank.Address, rank.Latitude, rank.Longitude,
		rank.Capacity, boolToInt(rank.IsActive), facilities,
		formatTime(rank.CreatedAt), formatTime(rank.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to create rank: %w", err)
	}
	return nil
}

// SetActive toggles a rank's active flag
func (r *RankRepository) SetActive(ctx context.Context, id int64, active bool) error {
	query := r.db.Rebind(`UPDATE ranks SET is_active = ?, updated_at = ? WHERE id = ?`)
	if _, err := r.db.ExecContext(ctx, query, boolToInt(active), formatTime(time.Now()), id); err != nil {
		return fmt.Errorf("failed to update rank: %w", err)
	}
	return nil
}

// ListActive returns all active ranks ordered by id
func (r *RankRepository) ListActive(ctx context.Context) ([]models.Rank, error) {
	query := `SELECT ` + rankColumns + ` FROM ranks WHERE is_active = 1 ORDER BY id`
	return r.query(ctx, query)
}

// GetByIDs returns the ranks with the given ids, keyed by id.
// Missing ids are absent from the map.
func (r *RankRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]models.Rank, error) {
	out := make(map[int64]models.Rank, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	query := r.db.Rebind(`SELECT ` + rankColumns + ` FROM ranks WHERE id IN (` + placeholders(len(ids)) + `)`)
	ranks, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	for _, rank := range ranks {
		out[rank.ID] = rank
	}
	return out, nil
}

func (r *RankRepository) query(ctx context.Context, query string, args ...interface{}) ([]models.Rank, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ranks: %w", err)
	}
	defer rows.Close()

	var ranks []models.Rank
	for rows.Next() {
		rank, err := scanRank(rows)
		if err != nil {
			return nil, err
		}
		ranks = append(ranks, rank)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rank rows: %w", err)
	}
	return ranks, nil
}

func scanRank(rows *sql.Rows) (models.Rank, error) {
	var (
		rank                 models.Rank
		active               int
		facilities           string
		createdAt, updatedAt string
	)
	err := rows.Scan(
		&rank.ID, &rank.Name, &rank.Address, &rank.Latitude, &rank.Longitude,
		&rank.Capacity, &active, &facilities, &createdAt, &updatedAt,
	)
	if err != nil {
		return rank, fmt.Errorf("failed to scan rank: %w", err)
	}
	rank.IsActive = active != 0
	if err := decodeJSON(facilities, &rank.Facilities); err != nil {
		return rank, err
	}
	if rank.CreatedAt, err = parseTime(createdAt); err != nil {
		return rank, err
	}
	if rank.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return rank, err
	}
	return rank, nil
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
