package in

import (
	"context"
	"time"
)

// Usecase is the notification policy driven by session transitions.
// Completion and reminder notifications are mutually exclusive by
// construction: exactly one class is live, determined solely by whether a
// session is active.
type Usecase interface {
	// SessionActivated cancels reminders and, when the session has a
	// target, arms the completion slot for the goal instant.
	SessionActivated(ctx context.Context, goalAt *time.Time)
	// SessionIdle cancels the completion slot and re-arms reminders from
	// the configured time when the user setting enables them.
	SessionIdle(ctx context.Context)
	// ApplyReminderPolicy re-evaluates the reminder class after a settings
	// change while no session is active.
	ApplyReminderPolicy(ctx context.Context)
}
