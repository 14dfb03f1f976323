package testutil

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/shiftboard/shiftboard-backend/pkg/database"
	"github.com/shiftboard/shiftboard-backend/pkg/logger"
)

var (
	// Global test container (shared across all integration tests)
	globalContainer *PostgresContainer
	containerOnce   sync.Once
	containerErr    error
)

// IntegrationSuite provides a base for integration tests with real PostgreSQL
type IntegrationSuite struct {
	Container *PostgresContainer
	DB        *database.DB
	Logger    *logger.Logger
}

// NewIntegrationSuite starts (or reuses) the shared container and applies schema.
// The test is skipped under -short or when no container runtime is reachable.
func NewIntegrationSuite(t *testing.T, schema ...string) *IntegrationSuite {
	t.Helper()
	SkipIfShort(t)

	ctx := DefaultTestContext(t)
	container, err := getOrCreateContainer(ctx)
	if err != nil {
		t.Skipf("skipping integration test, postgres container unavailable: %v", err)
	}

	log := logger.Nop()
	db, err := database.NewWithDSN(container.DSN, log)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.EnsureSchema(ctx, schema...); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}

	return &IntegrationSuite{
		Container: container,
		DB:        db,
		Logger:    log,
	}
}

// getOrCreateContainer returns the shared test container
func getOrCreateContainer(ctx context.Context) (*PostgresContainer, error) {
	containerOnce.Do(func() {
		// testcontainers panics when no docker host can be resolved
		defer func() {
			if r := recover(); r != nil {
				containerErr = fmt.Errorf("docker unavailable: %v", r)
			}
		}()
		globalContainer, containerErr = NewPostgresContainer(context.WithoutCancel(ctx), DefaultPostgresConfig())
	})
	return globalContainer, containerErr
}

// Truncate empties the given tables between tests
func (s *IntegrationSuite) Truncate(t *testing.T, tables ...string) {
	t.Helper()
	for _, table := range tables {
		if _, err := s.DB.ExecContext(context.Background(), "TRUNCATE TABLE "+table); err != nil {
			t.Fatalf("failed to truncate %s: %v", table, err)
		}
	}
}

// TerminateContainer terminates the shared container.
// Only call this in TestMain after all tests have completed.
func TerminateContainer(ctx context.Context) {
	if globalContainer != nil {
		_ = globalContainer.Terminate(ctx)
	}
}
