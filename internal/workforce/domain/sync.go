package domain

import (
	"errors"
	"time"
)

// Entity names a synchronized record type
type Entity string

const (
	EntityShifts Entity = "shifts"
	EntityUsers  Entity = "users"
)

// Entities lists every synchronized entity in run order
var Entities = []Entity{EntityShifts, EntityUsers}

// ParseEntity validates an entity name
func ParseEntity(s string) (Entity, error) {
	switch Entity(s) {
	case EntityShifts, EntityUsers:
		return Entity(s), nil
	default:
		return "", errors.New("unknown entity: " + s)
	}
}

// ErrSyncInProgress is returned when a run for the same entity is already active
var ErrSyncInProgress = errors.New("sync already in progress")

// ParseWarning is a row-level diagnostic raised while normalizing a CSV export.
// Line is 1-based and counts the header row.
type ParseWarning struct {
	Line    int    `json:"line"`
	Column  string `json:"column,omitempty"`
	Message string `json:"message"`
}

// SyncResult is the outcome of one synchronization run
type SyncResult struct {
	RunID      string         `json:"runId"`
	Entity     Entity         `json:"entity"`
	Success    bool           `json:"success"`
	Count      int            `json:"count"`
	Warnings   []ParseWarning `json:"warnings"`
	Error      string         `json:"error,omitempty"`
	StartedAt  time.Time      `json:"startedAt"`
	DurationMS int64          `json:"durationMs"`

	// Err is the underlying failure, kept for errors.Is at the edges
	Err error `json:"-"`
}
