package service

import (
	"context"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"fast/internal/modules/notify/domain"
	notifyout "fast/internal/modules/notify/port/out"
)

// Scheduler owns the notification slots. Every schedule replaces the
// previous occupant of its slot and every cancel is safe when nothing is
// armed. Notifier failures are logged and dropped: reminders are
// non-critical and never worth failing a session command over.
type Scheduler struct {
	notifier notifyout.Notifier
	logger   hclog.Logger
}

func NewScheduler(notifier notifyout.Notifier, logger hclog.Logger) *Scheduler {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Scheduler{notifier: notifier, logger: logger}
}

// ScheduleCompletion arms the single completion slot, replacing any
// previously scheduled completion notification.
func (s *Scheduler) ScheduleCompletion(ctx context.Context, at time.Time) {
	if err := s.notifier.ScheduleOnce(ctx, domain.CompletionID, at, domain.CompletionContent()); err != nil {
		s.logger.Warn("schedule completion notification", "error", err)
	}
}

func (s *Scheduler) CancelCompletion(ctx context.Context) {
	if err := s.notifier.Cancel(ctx, domain.CompletionID); err != nil {
		s.logger.Warn("cancel completion notification", "error", err)
	}
}

// ScheduleDailyReminder arms one recurring daily trigger, replacing any
// prior.
func (s *Scheduler) ScheduleDailyReminder(ctx context.Context, hour, minute int) {
	if err := s.notifier.ScheduleDaily(ctx, domain.DailyReminderID, hour, minute, domain.DailyReminderContent()); err != nil {
		s.logger.Warn("schedule daily reminder", "error", err)
	}
}

func (s *Scheduler) CancelDailyReminder(ctx context.Context) {
	if err := s.notifier.Cancel(ctx, domain.DailyReminderID); err != nil {
		s.logger.Warn("cancel daily reminder", "error", err)
	}
}

// ScheduleHourlyReminders cancels any existing hourly set, then arms one
// recurring trigger per hour from fromHour+1 through 23, each keyed by its
// hour.
func (s *Scheduler) ScheduleHourlyReminders(ctx context.Context, fromHour, minute int) {
	s.CancelHourlyReminders(ctx)

	var entries []domain.SetEntry
	for hour := fromHour + 1; hour <= 23; hour++ {
		entries = append(entries, domain.SetEntry{
			ID:      domain.HourlyReminderID(hour),
			Hour:    hour,
			Minute:  minute,
			Content: domain.HourlyReminderContent(),
		})
	}
	if len(entries) == 0 {
		return
	}
	if err := s.notifier.ScheduleSet(ctx, entries); err != nil {
		s.logger.Warn("schedule hourly reminders", "error", err)
	}
}

func (s *Scheduler) CancelHourlyReminders(ctx context.Context) {
	if err := s.notifier.Cancel(ctx, domain.HourlyReminderIDs()...); err != nil {
		s.logger.Warn("cancel hourly reminders", "error", err)
	}
}
