package out

import (
	"context"

	"fast/internal/modules/session/domain"
)

// Store persists session records. Commit failures surface to the caller
// wrapped in apperrors.ErrStorage and are never retried here.
type Store interface {
	Insert(ctx context.Context, session domain.FastingSession) error
	Update(ctx context.Context, session domain.FastingSession) error
	Delete(ctx context.Context, id string) error
	ByID(ctx context.Context, id string) (domain.FastingSession, error)
	Active(ctx context.Context) (domain.FastingSession, error)
	All(ctx context.Context) ([]domain.FastingSession, error)
	Completed(ctx context.Context) ([]domain.FastingSession, error)
}

// TransitionHandler receives session state-machine transitions. The
// usecase invokes each hook exactly once per transition so side effects
// (ticking, notifications) are never duplicated or missed.
type TransitionHandler interface {
	// Activated fires when the store enters the Active state.
	Activated(ctx context.Context, session domain.FastingSession)
	// Deactivated fires when the store returns to Idle, whether the
	// session completed or was discarded.
	Deactivated(ctx context.Context)
	// Reanchored fires when the active session's bounds change under a
	// running engine.
	Reanchored(ctx context.Context, session domain.FastingSession)
}
