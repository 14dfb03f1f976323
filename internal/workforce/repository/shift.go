package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shiftboard/shiftboard-backend/internal/workforce/domain"
	"github.com/shiftboard/shiftboard-backend/pkg/database"
)

var shiftColumns = []string{
	"user_id", "company", "branch_city", "branch_address", "date",
	"production", "tariff_type", "work_cost", "work_cost_client",
}

// ShiftRepository handles shift record persistence
type ShiftRepository struct {
	db *database.DB
}

// NewShiftRepository creates a new shift repository
func NewShiftRepository(db *database.DB) *ShiftRepository {
	return &ShiftRepository{db: db}
}

// ReplaceAll swaps the stored shifts for records in one transaction.
// Readers see either the previous snapshot or the new one, never an empty table.
func (r *ShiftRepository) ReplaceAll(ctx context.Context, records []domain.ShiftRecord) (int, error) {
	err := r.db.Transaction(ctx, func(tx *sqlx.Tx) error {
		if err := lockEntity(ctx, tx, domain.EntityShifts); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM shift_records`); err != nil {
			return fmt.Errorf("failed to clear shift records: %w", err)
		}

		return copyRows(ctx, tx, "shift_records", shiftColumns, len(records), func(i int) []interface{} {
			rec := records[i]
			return []interface{}{
				rec.UserID, rec.Company, rec.BranchCity, rec.BranchAddress, rec.Date,
				rec.Production, rec.TariffType, rec.WorkCost, rec.WorkCostClient,
			}
		})
	})
	if err != nil {
		return 0, mapError(err)
	}
	return len(records), nil
}

// FindAll returns every stored shift ordered by date
func (r *ShiftRepository) FindAll(ctx context.Context) ([]domain.ShiftRecord, error) {
	query := `
		SELECT user_id, company, branch_city, branch_address, date,
		       production, tariff_type, work_cost, work_cost_client
		FROM shift_records
		ORDER BY date, id
	`

	records := []domain.ShiftRecord{}
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("failed to load shift records: %w", err)
	}
	return records, nil
}

// Count returns the number of stored shifts
func (r *ShiftRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM shift_records`); err != nil {
		return 0, fmt.Errorf("failed to count shift records: %w", err)
	}
	return count, nil
}

// ============================================================================
// SHARED HELPERS
// ============================================================================

// lockEntity takes the cross-process sync lock for an entity within tx
func lockEntity(ctx context.Context, tx *sqlx.Tx, entity domain.Entity) error {
	acquired, err := database.TryAdvisoryXactLock(ctx, tx, LockKey(entity))
	if err != nil {
		return err
	}
	if !acquired {
		return domain.ErrSyncInProgress
	}
	return nil
}

// LockKey is the advisory lock key guarding replacement of an entity
func LockKey(entity domain.Entity) int64 {
	return database.LockKey("shiftboard:sync:" + string(entity))
}

// copyRows bulk loads n rows with COPY FROM STDIN
func copyRows(ctx context.Context, tx *sqlx.Tx, table string, columns []string, n int, row func(int) []interface{}) error {
	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(table, columns...))
	if err != nil {
		return fmt.Errorf("failed to prepare copy into %s: %w", table, err)
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		if _, err := stmt.ExecContext(ctx, row(i)...); err != nil {
			return fmt.Errorf("failed to copy row %d into %s: %w", i, table, err)
		}
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		return fmt.Errorf("failed to flush copy into %s: %w", table, err)
	}
	return nil
}

// mapError converts PostgreSQL errors into AppErrors and passes others through
func mapError(err error) error {
	if appErr := database.MapPQError(err); appErr != nil {
		return appErr
	}
	return err
}
