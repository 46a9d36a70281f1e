package out

import (
	"context"
	"time"

	"fast/internal/modules/notify/domain"
)

// Notifier is the opaque platform delivery service. The core consumes
// exactly four operations; delivery, permissions, and sound are outside
// its responsibility. All calls are best-effort.
type Notifier interface {
	ScheduleOnce(ctx context.Context, id string, at time.Time, content domain.Content) error
	ScheduleDaily(ctx context.Context, id string, hour, minute int, content domain.Content) error
	ScheduleSet(ctx context.Context, entries []domain.SetEntry) error
	Cancel(ctx context.Context, ids ...string) error
}
