package clock

import "time"

// Clock abstracts time so session commands, the tick engine, and streak
// math stay deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock returns local wall-clock time. Day bucketing for streaks is
// anchored on the user's local calendar, so no UTC normalization here.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
