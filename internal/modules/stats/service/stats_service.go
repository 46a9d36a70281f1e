package service

import (
	"context"
	"time"

	sessionin "fast/internal/modules/session/port/in"
	"fast/internal/modules/stats/domain"
	"fast/internal/platform/clock"
)

// StatsService feeds completed sessions into the pure streak math.
type StatsService struct {
	clock    clock.Clock
	sessions sessionin.Usecase
}

func NewStatsService(clk clock.Clock, sessions sessionin.Usecase) *StatsService {
	return &StatsService{clock: clk, sessions: sessions}
}

func (s *StatsService) CompletedFasts(ctx context.Context) ([]domain.Fast, error) {
	completed, err := s.sessions.Completed(ctx)
	if err != nil {
		return nil, err
	}
	fasts := make([]domain.Fast, 0, len(completed))
	for _, session := range completed {
		if session.EndAt == nil {
			continue
		}
		fasts = append(fasts, domain.Fast{
			SessionID: session.ID,
			Start:     session.StartAt,
			End:       *session.EndAt,
		})
	}
	return fasts, nil
}

func (s *StatsService) Today() time.Time {
	return s.clock.Now()
}
