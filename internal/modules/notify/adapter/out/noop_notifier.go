package out

import (
	"context"
	"time"

	"fast/internal/modules/notify/domain"
	notifyout "fast/internal/modules/notify/port/out"
)

// NoopNotifier is used when no notifier plugin binary is installed.
// Scheduling is best-effort, so silently accepting every call keeps the
// session state machine unaffected.
type NoopNotifier struct{}

func NewNoopNotifier() notifyout.Notifier {
	return NoopNotifier{}
}

func (NoopNotifier) ScheduleOnce(context.Context, string, time.Time, domain.Content) error {
	return nil
}

func (NoopNotifier) ScheduleDaily(context.Context, string, int, int, domain.Content) error {
	return nil
}

func (NoopNotifier) ScheduleSet(context.Context, []domain.SetEntry) error {
	return nil
}

func (NoopNotifier) Cancel(context.Context, ...string) error {
	return nil
}
