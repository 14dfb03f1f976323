package service

import (
	"context"
	"sync"
	"time"

	"github.com/shiftboard/shiftboard-backend/internal/workforce/domain"
	"github.com/shiftboard/shiftboard-backend/pkg/logger"
)

// Syncer runs one synchronization for an entity
type Syncer interface {
	Sync(ctx context.Context, entity domain.Entity) domain.SyncResult
}

// SyncScheduler triggers synchronization of every entity on a fixed interval.
// Results are logged by the sync service; the scheduler only fires.
type SyncScheduler struct {
	syncer     Syncer
	entities   []domain.Entity
	interval   time.Duration
	runOnStart bool
	logger     *logger.Logger
	cancel     context.CancelFunc
	wg         sync.WaitGroup
}

// NewSyncScheduler creates a new sync scheduler
func NewSyncScheduler(syncer Syncer, interval time.Duration, runOnStart bool, log *logger.Logger) *SyncScheduler {
	return &SyncScheduler{
		syncer:     syncer,
		entities:   domain.Entities,
		interval:   interval,
		runOnStart: runOnStart,
		logger:     log.WithComponent("scheduler"),
	}
}

// Start starts the scheduler in a background goroutine
func (s *SyncScheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.logger.Info().Dur("interval", s.interval).Bool("run_on_start", s.runOnStart).Msg("sync scheduler started")

		if s.runOnStart {
			s.runCycle(ctx)
		}

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				s.logger.Info().Msg("sync scheduler stopped")
				return
			case <-ticker.C:
				s.runCycle(ctx)
			}
		}
	}()
}

// Stop stops the scheduler and waits for an in-flight cycle to finish
func (s *SyncScheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

func (s *SyncScheduler) runCycle(ctx context.Context) {
	start := time.Now()
	for _, entity := range s.entities {
		if ctx.Err() != nil {
			return
		}
		result := s.syncer.Sync(ctx, entity)
		if !result.Success {
			s.logger.Warn().Str("entity", string(entity)).Str("error", result.Error).Msg("scheduled sync failed")
		}
	}
	s.logger.Info().Dur("duration", time.Since(start)).Msg("sync cycle completed")
}
