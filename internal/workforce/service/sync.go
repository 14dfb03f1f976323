package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shiftboard/shiftboard-backend/internal/workforce/domain"
	"github.com/shiftboard/shiftboard-backend/internal/workforce/normalize"
	apperrors "github.com/shiftboard/shiftboard-backend/pkg/errors"
	"github.com/shiftboard/shiftboard-backend/pkg/logger"
)

// Fetcher downloads the CSV export for an entity
type Fetcher interface {
	Fetch(ctx context.Context, entity domain.Entity) (string, error)
}

// ShiftStore persists shift snapshots
type ShiftStore interface {
	ReplaceAll(ctx context.Context, records []domain.ShiftRecord) (int, error)
	FindAll(ctx context.Context) ([]domain.ShiftRecord, error)
}

// UserStore persists user snapshots and answers growth queries
type UserStore interface {
	ReplaceAll(ctx context.Context, records []domain.UserRecord) (int, error)
	CountBetween(ctx context.Context, from, to time.Time) (int64, error)
	CountBefore(ctx context.Context, t time.Time) (int64, error)
	GroupByDateCount(ctx context.Context, from, to time.Time) ([]domain.DayCount, error)
}

// ResultPublisher announces finished runs
type ResultPublisher interface {
	PublishSyncResult(ctx context.Context, result domain.SyncResult)
}

// ResultRecorder records run metrics
type ResultRecorder interface {
	ObserveSync(result domain.SyncResult)
}

type discardPublisher struct{}

func (discardPublisher) PublishSyncResult(context.Context, domain.SyncResult) {}

type discardRecorder struct{}

func (discardRecorder) ObserveSync(domain.SyncResult) {}

// SyncService replaces the stored snapshots with the latest exports
type SyncService struct {
	fetcher   Fetcher
	shifts    ShiftStore
	users     UserStore
	publisher ResultPublisher
	recorder  ResultRecorder
	logger    *logger.Logger
	locks     map[domain.Entity]*sync.Mutex
	now       func() time.Time
}

// NewSyncService creates a new sync service. publisher and recorder may be nil.
func NewSyncService(
	fetcher Fetcher,
	shifts ShiftStore,
	users UserStore,
	publisher ResultPublisher,
	recorder ResultRecorder,
	log *logger.Logger,
) *SyncService {
	if publisher == nil {
		publisher = discardPublisher{}
	}
	if recorder == nil {
		recorder = discardRecorder{}
	}

	locks := make(map[domain.Entity]*sync.Mutex, len(domain.Entities))
	for _, entity := range domain.Entities {
		locks[entity] = &sync.Mutex{}
	}

	return &SyncService{
		fetcher:   fetcher,
		shifts:    shifts,
		users:     users,
		publisher: publisher,
		recorder:  recorder,
		logger:    log.WithComponent("sync"),
		locks:     locks,
		now:       time.Now,
	}
}

// SyncShifts fetches the shift export and replaces the stored shifts
func (s *SyncService) SyncShifts(ctx context.Context) domain.SyncResult {
	return s.run(ctx, domain.EntityShifts, func(ctx context.Context, csvText string) (int, []domain.ParseWarning, error) {
		records, warnings := normalize.ParseShifts(csvText)
		count, err := s.shifts.ReplaceAll(ctx, records)
		return count, warnings, err
	})
}

// SyncUsers fetches the user export and replaces the stored users
func (s *SyncService) SyncUsers(ctx context.Context) domain.SyncResult {
	return s.run(ctx, domain.EntityUsers, func(ctx context.Context, csvText string) (int, []domain.ParseWarning, error) {
		records, warnings := normalize.ParseUsers(csvText)
		count, err := s.users.ReplaceAll(ctx, records)
		return count, warnings, err
	})
}

// Sync runs the synchronization for one entity
func (s *SyncService) Sync(ctx context.Context, entity domain.Entity) domain.SyncResult {
	switch entity {
	case domain.EntityShifts:
		return s.SyncShifts(ctx)
	case domain.EntityUsers:
		return s.SyncUsers(ctx)
	default:
		err := fmt.Errorf("unknown entity: %s", entity)
		return domain.SyncResult{Entity: entity, Warnings: []domain.ParseWarning{}, Error: err.Error(), Err: err, StartedAt: s.now().UTC()}
	}
}

// Shifts returns every stored shift record
func (s *SyncService) Shifts(ctx context.Context) ([]domain.ShiftRecord, error) {
	records, err := s.shifts.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Unavailable("shift store is unavailable", err)
	}
	return records, nil
}

type replaceFunc func(ctx context.Context, csvText string) (int, []domain.ParseWarning, error)

// run executes one guarded run. Failures are reported in the result, never returned.
func (s *SyncService) run(ctx context.Context, entity domain.Entity, replace replaceFunc) domain.SyncResult {
	result := domain.SyncResult{
		RunID:     uuid.New().String(),
		Entity:    entity,
		Warnings:  []domain.ParseWarning{},
		StartedAt: s.now().UTC(),
	}
	log := s.logger.WithEntity(string(entity))

	lock := s.locks[entity]
	if !lock.TryLock() {
		log.Warn().Msg("sync rejected, a run is already in progress")
		result.Err = domain.ErrSyncInProgress
		result.Error = domain.ErrSyncInProgress.Error()
		s.recorder.ObserveSync(result)
		return result
	}
	defer lock.Unlock()

	// The run outlives the request that triggered it
	ctx = context.WithoutCancel(ctx)

	log.Info().Str("run_id", result.RunID).Msg("sync started")

	csvText, err := s.fetcher.Fetch(ctx, entity)
	if err != nil {
		return s.finish(ctx, log, result, 0, fmt.Errorf("failed to fetch %s export: %w", entity, err))
	}

	count, warnings, err := replace(ctx, csvText)
	if warnings != nil {
		result.Warnings = warnings
	}
	if err != nil {
		return s.finish(ctx, log, result, 0, fmt.Errorf("failed to replace %s: %w", entity, err))
	}

	return s.finish(ctx, log, result, count, nil)
}

func (s *SyncService) finish(ctx context.Context, log *logger.Logger, result domain.SyncResult, count int, err error) domain.SyncResult {
	result.DurationMS = s.now().Sub(result.StartedAt).Milliseconds()
	result.Count = count
	result.Success = err == nil
	if err != nil {
		result.Err = err
		result.Error = err.Error()
		log.Error().Err(err).
			Str("run_id", result.RunID).
			Int64("duration_ms", result.DurationMS).
			Msg("sync failed")
	} else {
		log.Info().
			Str("run_id", result.RunID).
			Int("count", count).
			Int("warnings", len(result.Warnings)).
			Int64("duration_ms", result.DurationMS).
			Msg("sync completed")
	}

	s.recorder.ObserveSync(result)
	s.publisher.PublishSyncResult(ctx, result)
	return result
}
