package domain

import (
	"fmt"
	"time"

	apperrors "fast/internal/platform/errors"
)

// MinCompletedDuration is the shortest fast that is persisted as
// completed. Anything ended sooner is treated as an accidental tap and
// deleted instead.
const MinCompletedDuration = 60 * time.Second

// DefaultTarget matches the common 16:8 protocol.
const DefaultTarget = 16 * time.Hour

// FastingSession is one fasting attempt. A nil EndAt means the session is
// active; a nil Target means the fast is open-ended.
type FastingSession struct {
	ID      string
	StartAt time.Time
	EndAt   *time.Time
	Target  *time.Duration
}

func (s FastingSession) IsActive() bool {
	return s.EndAt == nil
}

// Elapsed is recomputed from the bounds on every call, never accumulated,
// so it stays exact for completed sessions and survives process suspension
// for active ones.
func (s FastingSession) Elapsed(now time.Time) time.Duration {
	end := now
	if s.EndAt != nil {
		end = *s.EndAt
	}
	return end.Sub(s.StartAt)
}

// Remaining reports time until the target. The second return is false for
// open-ended sessions.
func (s FastingSession) Remaining(now time.Time) (time.Duration, bool) {
	if s.Target == nil {
		return 0, false
	}
	left := *s.Target - s.Elapsed(now)
	if left < 0 {
		left = 0
	}
	return left, true
}

func (s FastingSession) GoalReached(now time.Time) bool {
	if s.Target == nil {
		return false
	}
	return s.Elapsed(now) >= *s.Target
}

// GoalAt is the exact instant the target elapses, valid only for target
// sessions. Completion is anchored here rather than at tick time.
func (s FastingSession) GoalAt() (time.Time, bool) {
	if s.Target == nil {
		return time.Time{}, false
	}
	return s.StartAt.Add(*s.Target), true
}

func (s FastingSession) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("%w: session id is required", apperrors.ErrInvalidInput)
	}
	if s.StartAt.IsZero() {
		return fmt.Errorf("%w: start time is required", apperrors.ErrInvalidInput)
	}
	if s.EndAt != nil && s.EndAt.Before(s.StartAt) {
		return fmt.Errorf("%w: end %s precedes start %s", apperrors.ErrInvalidRange, s.EndAt.Format(time.RFC3339), s.StartAt.Format(time.RFC3339))
	}
	if s.Target != nil && *s.Target < 0 {
		return fmt.Errorf("%w: target duration must be non-negative", apperrors.ErrInvalidInput)
	}
	return nil
}
