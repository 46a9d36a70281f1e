package dto

type SettingsOutput struct {
	ReminderEnabled bool
	ReminderHour    int
	ReminderMinute  int
}

// UpdateInput carries partial updates; nil fields are left unchanged.
type UpdateInput struct {
	ReminderEnabled *bool
	ReminderHour    *int
	ReminderMinute  *int
}
