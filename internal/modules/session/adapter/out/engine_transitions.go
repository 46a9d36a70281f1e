package out

import (
	"context"

	"fast/internal/modules/session/domain"
	sessionout "fast/internal/modules/session/port/out"
	timerdto "fast/internal/modules/timer/dto"
	timerin "fast/internal/modules/timer/port/in"
)

// EngineTransitions binds the tick engine to session state transitions:
// entering Active starts ticking, returning to Idle stops it, and edits to
// the active session re-anchor the running engine.
type EngineTransitions struct {
	engine timerin.Engine
}

func NewEngineTransitions(engine timerin.Engine) sessionout.TransitionHandler {
	return &EngineTransitions{engine: engine}
}

func (t *EngineTransitions) Activated(_ context.Context, session domain.FastingSession) {
	t.engine.Start(timerdto.Binding{
		SessionID: session.ID,
		StartAt:   session.StartAt,
		Target:    session.Target,
	})
}

func (t *EngineTransitions) Deactivated(_ context.Context) {
	t.engine.Stop()
}

func (t *EngineTransitions) Reanchored(_ context.Context, session domain.FastingSession) {
	t.engine.SetAnchor(session.StartAt, session.Target)
}
