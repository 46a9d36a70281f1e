package usecase

import (
	"context"
	"sort"
	"time"

	"fast/internal/modules/stats/domain"
	"fast/internal/modules/stats/dto"
	statsin "fast/internal/modules/stats/port/in"
	"fast/internal/modules/stats/service"
	apperrors "fast/internal/platform/errors"
)

type Interactor struct {
	svc *service.StatsService
}

func NewInteractor(svc *service.StatsService) statsin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Summary(ctx context.Context) (dto.SummaryOutput, error) {
	fasts, err := i.svc.CompletedFasts(ctx)
	if err != nil {
		return dto.SummaryOutput{}, err
	}
	return dto.SummaryOutput{
		TotalHours:    domain.TotalHours(fasts),
		CurrentStreak: domain.CurrentStreak(fasts, i.svc.Today()),
		FastedDays:    len(domain.FastedDays(fasts)),
		TotalFasts:    len(fasts),
	}, nil
}

func (i *Interactor) FastedDays(ctx context.Context) ([]dto.Day, error) {
	fasts, err := i.svc.CompletedFasts(ctx)
	if err != nil {
		return nil, err
	}
	keys := domain.FastedDays(fasts)
	days := make([]dto.Day, 0, len(keys))
	for key := range keys {
		days = append(days, dto.Day{Year: key.Year, Month: int(key.Month), Day: key.Day})
	}
	sort.Slice(days, func(a, b int) bool {
		if days[a].Year != days[b].Year {
			return days[a].Year < days[b].Year
		}
		if days[a].Month != days[b].Month {
			return days[a].Month < days[b].Month
		}
		return days[a].Day < days[b].Day
	})
	return days, nil
}

func (i *Interactor) DayDetail(ctx context.Context, day dto.Day) (dto.DayDetailOutput, error) {
	fasts, err := i.svc.CompletedFasts(ctx)
	if err != nil {
		return dto.DayDetailOutput{}, err
	}
	key := domain.DayKey{Year: day.Year, Month: time.Month(day.Month), Day: day.Day}
	fast, ok := domain.LatestForDay(fasts, key)
	if !ok {
		return dto.DayDetailOutput{}, apperrors.ErrNotFound
	}
	return dto.DayDetailOutput{
		SessionID: fast.SessionID,
		Start:     fast.Start,
		End:       fast.End,
		Elapsed:   fast.Elapsed(),
	}, nil
}
