package in

import (
	"context"

	"fast/internal/modules/stats/dto"
)

// Usecase is the read side over completed sessions. Everything here is
// derived on demand; nothing is stored.
type Usecase interface {
	Summary(ctx context.Context) (dto.SummaryOutput, error)
	FastedDays(ctx context.Context) ([]dto.Day, error)
	DayDetail(ctx context.Context, day dto.Day) (dto.DayDetailOutput, error)
}
