package in

import (
	"context"
	"time"

	sessiondto "fast/internal/modules/session/dto"
	sessionin "fast/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, at time.Time, target *time.Duration) (sessiondto.SessionOutput, error) {
	return h.usecase.Start(ctx, sessiondto.StartInput{At: at, Target: target})
}

func (h CLIHandler) End(ctx context.Context, at time.Time) (sessiondto.EndOutput, error) {
	return h.usecase.End(ctx, sessiondto.EndInput{At: at})
}

func (h CLIHandler) EditStart(ctx context.Context, sessionID string, newStart time.Time) (sessiondto.SessionOutput, error) {
	return h.usecase.EditStart(ctx, sessiondto.EditStartInput{SessionID: sessionID, NewStart: newStart})
}

func (h CLIHandler) EditEnd(ctx context.Context, sessionID string, newEnd time.Time) (sessiondto.SessionOutput, error) {
	return h.usecase.EditEnd(ctx, sessiondto.EditEndInput{SessionID: sessionID, NewEnd: newEnd})
}

func (h CLIHandler) Delete(ctx context.Context, sessionID string) error {
	return h.usecase.Delete(ctx, sessionID)
}

func (h CLIHandler) Active(ctx context.Context) (sessiondto.SessionOutput, error) {
	return h.usecase.Active(ctx)
}

func (h CLIHandler) All(ctx context.Context) ([]sessiondto.SessionOutput, error) {
	return h.usecase.All(ctx)
}

func (h CLIHandler) Completed(ctx context.Context) ([]sessiondto.SessionOutput, error) {
	return h.usecase.Completed(ctx)
}

func (h CLIHandler) Resume(ctx context.Context) (sessiondto.SessionOutput, error) {
	return h.usecase.Resume(ctx)
}
