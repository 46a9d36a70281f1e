package usecase

import (
	"context"
	"time"

	notifyin "fast/internal/modules/notify/port/in"
	"fast/internal/modules/notify/service"
	settingsin "fast/internal/modules/settings/port/in"
)

// Interactor maps session-state transitions onto notification slots. On
// entering Active: reminders off, completion armed (target sessions only).
// On entering Idle: completion off, reminders re-armed per settings.
type Interactor struct {
	scheduler *service.Scheduler
	settings  settingsin.Usecase
}

var _ notifyin.Usecase = (*Interactor)(nil)

func NewInteractor(scheduler *service.Scheduler) *Interactor {
	return &Interactor{scheduler: scheduler}
}

// BindSettings closes the wiring loop: settings cannot exist before this
// interactor because reminder edits re-apply the policy through it.
func (i *Interactor) BindSettings(settings settingsin.Usecase) {
	i.settings = settings
}

func (i *Interactor) SessionActivated(ctx context.Context, goalAt *time.Time) {
	i.scheduler.CancelDailyReminder(ctx)
	i.scheduler.CancelHourlyReminders(ctx)
	if goalAt != nil {
		i.scheduler.ScheduleCompletion(ctx, *goalAt)
	} else {
		// An open-ended fast must not inherit a completion slot from a
		// previous target session.
		i.scheduler.CancelCompletion(ctx)
	}
}

func (i *Interactor) SessionIdle(ctx context.Context) {
	i.scheduler.CancelCompletion(ctx)
	i.ApplyReminderPolicy(ctx)
}

func (i *Interactor) ApplyReminderPolicy(ctx context.Context) {
	if i.settings == nil {
		return
	}
	settings, err := i.settings.Get(ctx)
	if err != nil || !settings.ReminderEnabled {
		i.scheduler.CancelDailyReminder(ctx)
		i.scheduler.CancelHourlyReminders(ctx)
		return
	}
	i.scheduler.ScheduleDailyReminder(ctx, settings.ReminderHour, settings.ReminderMinute)
	i.scheduler.ScheduleHourlyReminders(ctx, settings.ReminderHour, settings.ReminderMinute)
}
