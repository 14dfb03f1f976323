package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shiftboard/shiftboard-backend/internal/workforce/domain"
	apperrors "github.com/shiftboard/shiftboard-backend/pkg/errors"
)

// UserGrowth reports registrations inside the range, the count before it and
// a per-day distribution. A date-only To covers the whole day.
func (s *SyncService) UserGrowth(ctx context.Context, r domain.DateRange) (domain.UserGrowth, error) {
	from := r.From
	to := endOfDayIfDate(r.To)

	growth := domain.UserGrowth{Distribution: []domain.DayCount{}}

	if !from.IsZero() {
		before, err := s.users.CountBefore(ctx, from)
		if err != nil {
			return growth, apperrors.Unavailable("user store is unavailable", fmt.Errorf("failed to count users before range: %w", err))
		}
		growth.TotalBefore = before
	}

	total, err := s.users.CountBetween(ctx, from, to)
	if err != nil {
		return growth, apperrors.Unavailable("user store is unavailable", fmt.Errorf("failed to count users in range: %w", err))
	}
	growth.Total = total

	distribution, err := s.users.GroupByDateCount(ctx, from, to)
	if err != nil {
		return growth, apperrors.Unavailable("user store is unavailable", fmt.Errorf("failed to load user distribution: %w", err))
	}
	if distribution != nil {
		growth.Distribution = distribution
	}

	return growth, nil
}

func endOfDayIfDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	t = t.UTC()
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Add(24*time.Hour - time.Nanosecond)
	}
	return t
}
