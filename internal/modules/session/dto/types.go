package dto

import "time"

type StartInput struct {
	At     time.Time      // zero value means "now"
	Target *time.Duration // nil means open-ended
}

type EndInput struct {
	At time.Time // zero value means "now"
}

type EditStartInput struct {
	SessionID string // empty means the active session
	NewStart  time.Time
}

type EditEndInput struct {
	SessionID string
	NewEnd    time.Time
}

type SessionOutput struct {
	ID          string
	StartAt     time.Time
	EndAt       *time.Time
	Target      *time.Duration
	Elapsed     time.Duration
	Remaining   time.Duration
	HasTarget   bool
	GoalReached bool
	Active      bool
}

type EndOutput struct {
	Session   SessionOutput
	Discarded bool
}
