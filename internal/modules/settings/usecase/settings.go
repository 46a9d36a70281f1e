package usecase

import (
	"context"
	"errors"

	notifyin "fast/internal/modules/notify/port/in"
	sessionin "fast/internal/modules/session/port/in"
	"fast/internal/modules/settings/dto"
	settingsin "fast/internal/modules/settings/port/in"
	"fast/internal/modules/settings/service"
	apperrors "fast/internal/platform/errors"
)

type Interactor struct {
	svc     *service.SettingsService
	session sessionin.Usecase
	notify  notifyin.Usecase
}

func NewInteractor(svc *service.SettingsService, session sessionin.Usecase, notify notifyin.Usecase) settingsin.Usecase {
	return &Interactor{svc: svc, session: session, notify: notify}
}

func (i *Interactor) Get(ctx context.Context) (dto.SettingsOutput, error) {
	settings, err := i.svc.Get(ctx)
	if err != nil {
		return dto.SettingsOutput{}, err
	}
	return dto.SettingsOutput{
		ReminderEnabled: settings.ReminderEnabled,
		ReminderHour:    settings.ReminderHour,
		ReminderMinute:  settings.ReminderMinute,
	}, nil
}

// Update persists the partial change and, while no session is active,
// re-applies the reminder policy immediately. During an active session the
// Active-state policy keeps reminders disarmed, so only the file changes.
func (i *Interactor) Update(ctx context.Context, input dto.UpdateInput) (dto.SettingsOutput, error) {
	settings, err := i.svc.Get(ctx)
	if err != nil {
		return dto.SettingsOutput{}, err
	}
	if input.ReminderEnabled != nil {
		settings.ReminderEnabled = *input.ReminderEnabled
	}
	if input.ReminderHour != nil {
		settings.ReminderHour = *input.ReminderHour
	}
	if input.ReminderMinute != nil {
		settings.ReminderMinute = *input.ReminderMinute
	}
	settings, err = i.svc.Save(ctx, settings)
	if err != nil {
		return dto.SettingsOutput{}, err
	}

	if i.notify != nil {
		// Only a confirmed Idle state re-arms reminders; a failing active
		// query says nothing about the session state.
		if _, err := i.session.Active(ctx); errors.Is(err, apperrors.ErrNoActiveSession) {
			i.notify.ApplyReminderPolicy(ctx)
		}
	}
	return dto.SettingsOutput{
		ReminderEnabled: settings.ReminderEnabled,
		ReminderHour:    settings.ReminderHour,
		ReminderMinute:  settings.ReminderMinute,
	}, nil
}
