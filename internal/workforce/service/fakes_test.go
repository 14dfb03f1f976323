package service

import (
	"context"
	"sync"
	"time"

	"github.com/shiftboard/shiftboard-backend/internal/workforce/domain"
)

type fakeFetcher struct {
	bodies  map[domain.Entity]string
	err     error
	started chan struct{}
	release chan struct{}
}

func (f *fakeFetcher) Fetch(ctx context.Context, entity domain.Entity) (string, error) {
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	if f.err != nil {
		return "", f.err
	}
	return f.bodies[entity], nil
}

type fakeShiftStore struct {
	mu       sync.Mutex
	records  []domain.ShiftRecord
	replaced int
	err      error
	findErr  error
}

func (s *fakeShiftStore) ReplaceAll(ctx context.Context, records []domain.ShiftRecord) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaced++
	if s.err != nil {
		return 0, s.err
	}
	s.records = append([]domain.ShiftRecord(nil), records...)
	return len(records), nil
}

func (s *fakeShiftStore) FindAll(ctx context.Context) ([]domain.ShiftRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findErr != nil {
		return nil, s.findErr
	}
	return append([]domain.ShiftRecord{}, s.records...), nil
}

type fakeUserStore struct {
	mu       sync.Mutex
	records  []domain.UserRecord
	replaced int

	// arguments seen by the growth queries
	before      time.Time
	from, to    time.Time
	countBefore int64
	countInside int64
	days        []domain.DayCount
}

func (s *fakeUserStore) ReplaceAll(ctx context.Context, records []domain.UserRecord) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaced++
	s.records = append([]domain.UserRecord(nil), records...)
	return len(records), nil
}

func (s *fakeUserStore) CountBetween(ctx context.Context, from, to time.Time) (int64, error) {
	s.from, s.to = from, to
	return s.countInside, nil
}

func (s *fakeUserStore) CountBefore(ctx context.Context, t time.Time) (int64, error) {
	s.before = t
	return s.countBefore, nil
}

func (s *fakeUserStore) GroupByDateCount(ctx context.Context, from, to time.Time) ([]domain.DayCount, error) {
	return s.days, nil
}

type recordingRecorder struct {
	mu      sync.Mutex
	results []domain.SyncResult
}

func (r *recordingRecorder) ObserveSync(result domain.SyncResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, result)
}

type recordingPublisher struct {
	mu      sync.Mutex
	results []domain.SyncResult
}

func (p *recordingPublisher) PublishSyncResult(ctx context.Context, result domain.SyncResult) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.results = append(p.results, result)
}
