package out

import (
	"context"
	"time"

	notifyin "fast/internal/modules/notify/port/in"
	"fast/internal/modules/session/domain"
	sessionout "fast/internal/modules/session/port/out"
)

// NotifyTransitions arms and disarms notifications on session transitions.
// Re-anchoring an active target session moves its completion slot to the
// new goal instant.
type NotifyTransitions struct {
	notify notifyin.Usecase
}

func NewNotifyTransitions(notify notifyin.Usecase) sessionout.TransitionHandler {
	return &NotifyTransitions{notify: notify}
}

func (t *NotifyTransitions) Activated(ctx context.Context, session domain.FastingSession) {
	t.notify.SessionActivated(ctx, goalAt(session))
}

func (t *NotifyTransitions) Deactivated(ctx context.Context) {
	t.notify.SessionIdle(ctx)
}

func (t *NotifyTransitions) Reanchored(ctx context.Context, session domain.FastingSession) {
	t.notify.SessionActivated(ctx, goalAt(session))
}

func goalAt(session domain.FastingSession) *time.Time {
	at, ok := session.GoalAt()
	if !ok {
		return nil
	}
	return &at
}
