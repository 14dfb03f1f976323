package database

import (
	"context"
	"fmt"
	"hash/fnv"

	"github.com/jmoiron/sqlx"
)

// LockKey derives a stable advisory lock key from a name
func LockKey(name string) int64 {
	h := fnv.New64a()
	h.Write([]byte(name))
	return int64(h.Sum64())
}

// TryAdvisoryXactLock takes a transaction-scoped advisory lock without waiting.
// The lock is released automatically on commit or rollback.
func TryAdvisoryXactLock(ctx context.Context, tx *sqlx.Tx, key int64) (bool, error) {
	var acquired bool
	if err := tx.QueryRowxContext(ctx, "SELECT pg_try_advisory_xact_lock($1)", key).Scan(&acquired); err != nil {
		return false, fmt.Errorf("failed to acquire advisory lock: %w", err)
	}
	return acquired, nil
}
