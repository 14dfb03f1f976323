package repository_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/shiftboard/shiftboard-backend/internal/workforce/domain"
	"github.com/shiftboard/shiftboard-backend/internal/workforce/repository"
	"github.com/shiftboard/shiftboard-backend/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	code := m.Run()
	testutil.TerminateContainer(context.Background())
	os.Exit(code)
}

func TestRepositories_Postgres(t *testing.T) {
	suite := testutil.NewIntegrationSuite(t, repository.Schema...)
	suite.Truncate(t, "shift_records", "user_records")
	ctx := context.Background()

	shifts := repository.NewShiftRepository(suite.DB)
	users := repository.NewUserRepository(suite.DB)

	t.Run("replace swaps the whole snapshot", func(t *testing.T) {
		_, err := shifts.ReplaceAll(ctx, []domain.ShiftRecord{
			testutil.Shift("u1", "Acme", "2025-05-02", 8),
			testutil.Shift("u2", "Acme", "2025-05-01", 6),
		})
		require.NoError(t, err)

		n, err := shifts.ReplaceAll(ctx, []domain.ShiftRecord{testutil.Shift("u3", "Beta", "2025-05-03", 4)})
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		all, err := shifts.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, "u3", all[0].UserID)
	})

	t.Run("failed replace keeps the previous snapshot", func(t *testing.T) {
		_, err := users.ReplaceAll(ctx, []domain.UserRecord{testutil.User("a", testutil.Day("2025-09-01"))})
		require.NoError(t, err)

		_, err = users.ReplaceAll(ctx, []domain.UserRecord{
			testutil.User("b", testutil.Day("2025-09-02")),
			testutil.User("b", testutil.Day("2025-09-03")),
		})
		require.Error(t, err)

		total, err := users.CountBetween(ctx, testutil.Day("2025-01-01"), testutil.Day("2025-12-31"))
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("distribution groups by utc day", func(t *testing.T) {
		_, err := users.ReplaceAll(ctx, []domain.UserRecord{
			testutil.User("a", testutil.Day("2025-09-01").Add(23*time.Hour)),
			testutil.User("b", testutil.Day("2025-09-01")),
			testutil.User("c", testutil.Day("2025-09-03")),
		})
		require.NoError(t, err)

		counts, err := users.GroupByDateCount(ctx, testutil.Day("2025-09-01"), testutil.Day("2025-09-30"))
		require.NoError(t, err)
		assert.Equal(t, []domain.DayCount{{Date: "2025-09-01", Count: 2}, {Date: "2025-09-03", Count: 1}}, counts)

		before, err := users.CountBefore(ctx, testutil.Day("2025-09-02"))
		require.NoError(t, err)
		assert.Equal(t, int64(2), before)
	})
}
