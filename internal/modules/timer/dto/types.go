package dto

import "time"

// Binding anchors the engine to an active session. Target is nil for
// open-ended fasts.
type Binding struct {
	SessionID string
	StartAt   time.Time
	Target    *time.Duration
}

// Snapshot is the published elapsed/remaining state. It is recomputed from
// the wall clock on every tick, never accumulated.
type Snapshot struct {
	SessionID   string
	Elapsed     time.Duration
	Remaining   time.Duration
	HasTarget   bool
	GoalReached bool
}
