package in

import (
	"context"
	"time"

	"fast/internal/modules/session/dto"
)

// Usecase is the single serialized access point for session commands. All
// state transitions go through named commands here; nothing else mutates
// session records.
type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.SessionOutput, error)
	End(ctx context.Context, input dto.EndInput) (dto.EndOutput, error)
	// EndAt ends a specific session at an exact instant. It is the
	// completion path: the timer engine calls it anchored at start+target.
	// Already-ended sessions are a no-op.
	EndAt(ctx context.Context, sessionID string, at time.Time) (dto.EndOutput, error)
	EditStart(ctx context.Context, input dto.EditStartInput) (dto.SessionOutput, error)
	EditEnd(ctx context.Context, input dto.EditEndInput) (dto.SessionOutput, error)
	Delete(ctx context.Context, sessionID string) error
	// Resume re-fires the Activated hook for a persisted active session
	// after process restart, without touching the store.
	Resume(ctx context.Context) (dto.SessionOutput, error)
	Active(ctx context.Context) (dto.SessionOutput, error)
	All(ctx context.Context) ([]dto.SessionOutput, error)
	Completed(ctx context.Context) ([]dto.SessionOutput, error)
}
