package domain

import (
	"fmt"

	apperrors "fast/internal/platform/errors"
)

// Settings is the reminder configuration. Defaults mirror a typical
// evening fast start.
type Settings struct {
	ReminderEnabled bool `yaml:"reminder_enabled"`
	ReminderHour    int  `yaml:"reminder_hour"`
	ReminderMinute  int  `yaml:"reminder_minute"`
}

func Default() Settings {
	return Settings{ReminderEnabled: true, ReminderHour: 20, ReminderMinute: 0}
}

func (s Settings) Validate() error {
	if s.ReminderHour < 0 || s.ReminderHour > 23 {
		return fmt.Errorf("%w: reminder hour %d out of range [0,23]", apperrors.ErrInvalidInput, s.ReminderHour)
	}
	if s.ReminderMinute < 0 || s.ReminderMinute > 59 {
		return fmt.Errorf("%w: reminder minute %d out of range [0,59]", apperrors.ErrInvalidInput, s.ReminderMinute)
	}
	return nil
}
