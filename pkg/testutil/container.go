package testutil

import (
	"context"
	"fmt"
	"time"

	"github.com/shiftboard/shiftboard-backend/pkg/config"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// PostgresContainer is a disposable PostgreSQL instance for integration tests
type PostgresContainer struct {
	*postgres.PostgresContainer
	DSN string
}

// PostgresContainerConfig configures the test PostgreSQL container.
// Zero fields fall back to DefaultPostgresConfig.
type PostgresContainerConfig struct {
	Image    string
	Database string
	Username string
	Password string
}

// DefaultPostgresConfig honours SHIFTBOARD_TEST_POSTGRES_IMAGE so CI can pin the server version
func DefaultPostgresConfig() PostgresContainerConfig {
	return PostgresContainerConfig{
		Image:    config.GetEnv("SHIFTBOARD_TEST_POSTGRES_IMAGE", "postgres:15-alpine"),
		Database: "shiftboard_test",
		Username: "test",
		Password: "test",
	}
}

func (c PostgresContainerConfig) withDefaults() PostgresContainerConfig {
	d := DefaultPostgresConfig()
	if c.Image == "" {
		c.Image = d.Image
	}
	if c.Database == "" {
		c.Database = d.Database
	}
	if c.Username == "" {
		c.Username = d.Username
	}
	if c.Password == "" {
		c.Password = d.Password
	}
	return c
}

// NewPostgresContainer starts PostgreSQL and waits until it accepts connections
func NewPostgresContainer(ctx context.Context, cfg PostgresContainerConfig) (*PostgresContainer, error) {
	cfg = cfg.withDefaults()

	// postgres logs readiness twice: once for the init run, once for the real server
	ready := wait.ForLog("database system is ready to accept connections").
		WithOccurrence(2).
		WithStartupTimeout(time.Minute)

	pg, err := postgres.RunContainer(ctx,
		testcontainers.WithImage(cfg.Image),
		postgres.WithDatabase(cfg.Database),
		postgres.WithUsername(cfg.Username),
		postgres.WithPassword(cfg.Password),
		testcontainers.WithWaitStrategy(ready),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", cfg.Image, err)
	}

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = pg.Terminate(ctx)
		return nil, fmt.Errorf("failed to resolve postgres dsn: %w", err)
	}

	return &PostgresContainer{PostgresContainer: pg, DSN: dsn}, nil
}
