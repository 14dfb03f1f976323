package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shiftboard/shiftboard-backend/internal/workforce/domain"
	"github.com/shiftboard/shiftboard-backend/pkg/database"
)

var userColumns = []string{"user_id", "created_at", "raw_created_at"}

// UserRepository handles user record persistence
type UserRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

// ReplaceAll swaps the stored users for records in one transaction
func (r *UserRepository) ReplaceAll(ctx context.Context, records []domain.UserRecord) (int, error) {
	err := r.db.Transaction(ctx, func(tx *sqlx.Tx) error {
		if err := lockEntity(ctx, tx, domain.EntityUsers); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM user_records`); err != nil {
			return fmt.Errorf("failed to clear user records: %w", err)
		}

		return copyRows(ctx, tx, "user_records", userColumns, len(records), func(i int) []interface{} {
			rec := records[i]
			return []interface{}{rec.UserID, rec.CreatedAt.UTC(), rec.RawCreatedAt}
		})
	})
	if err != nil {
		return 0, mapError(err)
	}
	return len(records), nil
}

// CountBetween counts users created within the window. Zero bounds are open.
func (r *UserRepository) CountBetween(ctx context.Context, from, to time.Time) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM user_records
		WHERE ($1::timestamptz IS NULL OR created_at >= $1)
		  AND ($2::timestamptz IS NULL OR created_at <= $2)
	`

	var count int64
	if err := r.db.GetContext(ctx, &count, query, nullableTime(from), nullableTime(to)); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// CountBefore counts users created strictly before t
func (r *UserRepository) CountBefore(ctx context.Context, t time.Time) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM user_records WHERE created_at < $1`, t.UTC()); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// GroupByDateCount returns per-UTC-day registration counts within the window, ascending
func (r *UserRepository) GroupByDateCount(ctx context.Context, from, to time.Time) ([]domain.DayCount, error) {
	query := `
		SELECT to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day, COUNT(*) AS count
		FROM user_records
		WHERE ($1::timestamptz IS NULL OR created_at >= $1)
		  AND ($2::timestamptz IS NULL OR created_at <= $2)
		GROUP BY day
		ORDER BY day
	`

	counts := []domain.DayCount{}
	if err := r.db.SelectContext(ctx, &counts, query, nullableTime(from), nullableTime(to)); err != nil {
		return nil, fmt.Errorf("failed to group users by day: %w", err)
	}
	return counts, nil
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	u := t.UTC()
	return &u
}
