package repository_test

import (
	"context"
	"database/sql/driver"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shiftboard/shiftboard-backend/internal/workforce/domain"
	"github.com/shiftboard/shiftboard-backend/internal/workforce/repository"
	"github.com/shiftboard/shiftboard-backend/pkg/errors"
	"github.com/shiftboard/shiftboard-backend/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var shiftCols = []string{
	"user_id", "company", "branch_city", "branch_address", "date",
	"production", "tariff_type", "work_cost", "work_cost_client",
}

func TestShiftRepository_ReplaceAll(t *testing.T) {
	mockDB := testutil.NewMockDB(t)

	records := []domain.ShiftRecord{
		testutil.Shift("u1", "Acme", "2025-05-01", 8, testutil.WithCosts(100, 150)),
		testutil.Shift("u2", "Beta", "2025-05-02", 4, testutil.WithTariff("2")),
	}

	mockDB.ExpectBegin()
	mockDB.ExpectAdvisoryLock(repository.LockKey(domain.EntityShifts), true)
	mockDB.ExpectExec("DELETE FROM shift_records").WillReturnResult(sqlmock.NewResult(0, 10))
	mockDB.ExpectCopy("shift_records", shiftCols,
		[]driver.Value{"u1", "Acme", "Almaty", "", "2025-05-01", 8.0, "1", 100.0, 150.0},
		[]driver.Value{"u2", "Beta", "Almaty", "", "2025-05-02", 4.0, "2", 0.0, 0.0},
	)
	mockDB.ExpectCommit()

	repo := repository.NewShiftRepository(mockDB.Database())
	count, err := repo.ReplaceAll(context.Background(), records)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	mockDB.ExpectationsWereMet(t)
}

func TestShiftRepository_ReplaceAll_LockHeld(t *testing.T) {
	mockDB := testutil.NewMockDB(t)

	mockDB.ExpectBegin()
	mockDB.ExpectAdvisoryLock(repository.LockKey(domain.EntityShifts), false)
	mockDB.ExpectRollback()

	repo := repository.NewShiftRepository(mockDB.Database())
	_, err := repo.ReplaceAll(context.Background(), []domain.ShiftRecord{testutil.Shift("u1", "Acme", "2025-05-01", 8)})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSyncInProgress)

	mockDB.ExpectationsWereMet(t)
}

func TestShiftRepository_ReplaceAll_CopyFailureRollsBack(t *testing.T) {
	mockDB := testutil.NewMockDB(t)

	mockDB.ExpectBegin()
	mockDB.ExpectAdvisoryLock(repository.LockKey(domain.EntityShifts), true)
	mockDB.ExpectExec("DELETE FROM shift_records").WillReturnResult(sqlmock.NewResult(0, 3))
	mockDB.Mock.ExpectPrepare("COPY").WillReturnError(assert.AnError)
	mockDB.ExpectRollback()

	repo := repository.NewShiftRepository(mockDB.Database())
	_, err := repo.ReplaceAll(context.Background(), []domain.ShiftRecord{testutil.Shift("u1", "Acme", "2025-05-01", 8)})
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)

	mockDB.ExpectationsWereMet(t)
}

func TestShiftRepository_ReplaceAll_EmptyBatch(t *testing.T) {
	mockDB := testutil.NewMockDB(t)

	mockDB.ExpectBegin()
	mockDB.ExpectAdvisoryLock(repository.LockKey(domain.EntityShifts), true)
	mockDB.ExpectExec("DELETE FROM shift_records").WillReturnResult(sqlmock.NewResult(0, 3))
	mockDB.ExpectCopy("shift_records", shiftCols)
	mockDB.ExpectCommit()

	repo := repository.NewShiftRepository(mockDB.Database())
	count, err := repo.ReplaceAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, count)

	mockDB.ExpectationsWereMet(t)
}

func TestShiftRepository_FindAll(t *testing.T) {
	mockDB := testutil.NewMockDB(t)

	rows := testutil.MockRows(shiftCols...).
		AddRow("u1", "Acme", "Almaty", "Abay 10", "2025-05-01", 8.0, "1", 100.0, 150.0).
		AddRow("u2", "Beta", "Astana", "", "2025-05-02", 4.0, "2", 0.0, 0.0)
	mockDB.Mock.ExpectQuery("SELECT user_id, company").WillReturnRows(rows)

	repo := repository.NewShiftRepository(mockDB.Database())
	records, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Abay 10", records[0].BranchAddress)
	assert.Equal(t, 150.0, records[0].WorkCostClient)
	assert.Equal(t, "2", records[1].TariffType)

	mockDB.ExpectationsWereMet(t)
}

func TestShiftRepository_Count(t *testing.T) {
	mockDB := testutil.NewMockDB(t)

	mockDB.ExpectQuery("SELECT COUNT(*) FROM shift_records").
		WillReturnRows(testutil.MockRows("count").AddRow(int64(42)))

	repo := repository.NewShiftRepository(mockDB.Database())
	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), count)
}

func TestUserRepository_ReplaceAll_DuplicateID(t *testing.T) {
	mockDB := testutil.NewMockDB(t)

	mockDB.ExpectBegin()
	mockDB.ExpectAdvisoryLock(repository.LockKey(domain.EntityUsers), true)
	mockDB.ExpectExec("DELETE FROM user_records").WillReturnResult(sqlmock.NewResult(0, 0))
	prep := mockDB.Mock.ExpectPrepare("COPY")
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().WillReturnError(&pq.Error{Code: "23505", Constraint: "user_records_user_id_key"})
	mockDB.ExpectRollback()

	repo := repository.NewUserRepository(mockDB.Database())
	_, err := repo.ReplaceAll(context.Background(), []domain.UserRecord{
		testutil.User("u1", testutil.Day("2025-09-01")),
		testutil.User("u1", testutil.Day("2025-09-02")),
	})
	require.Error(t, err)

	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusConflict, appErr.StatusCode)

	mockDB.ExpectationsWereMet(t)
}
