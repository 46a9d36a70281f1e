package in

import (
	"context"

	statsdto "fast/internal/modules/stats/dto"
	statsin "fast/internal/modules/stats/port/in"
)

type CLIHandler struct {
	usecase statsin.Usecase
}

func NewCLIHandler(usecase statsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Summary(ctx context.Context) (statsdto.SummaryOutput, error) {
	return h.usecase.Summary(ctx)
}

func (h CLIHandler) FastedDays(ctx context.Context) ([]statsdto.Day, error) {
	return h.usecase.FastedDays(ctx)
}

func (h CLIHandler) DayDetail(ctx context.Context, day statsdto.Day) (statsdto.DayDetailOutput, error) {
	return h.usecase.DayDetail(ctx, day)
}
