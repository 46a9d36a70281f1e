package domain_test

import (
	"errors"
	"testing"
	"time"

	"fast/internal/modules/session/domain"
	apperrors "fast/internal/platform/errors"
)

func TestElapsedUsesEndForCompletedAndNowForActive(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 8, 27, 20, 0, 0, 0, time.UTC)
	now := start.Add(20 * time.Hour)

	active := domain.FastingSession{ID: "fast-1", StartAt: start}
	if got := active.Elapsed(now); got != 20*time.Hour {
		t.Fatalf("active elapsed should track now, got %s", got)
	}

	end := start.Add(16 * time.Hour)
	completed := domain.FastingSession{ID: "fast-1", StartAt: start, EndAt: &end}
	if got := completed.Elapsed(now); got != 16*time.Hour {
		t.Fatalf("completed elapsed must be frozen at end, got %s", got)
	}
}

func TestRemainingClampsAtZero(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 8, 27, 6, 0, 0, 0, time.UTC)
	target := 16 * time.Hour
	session := domain.FastingSession{ID: "fast-1", StartAt: start, Target: &target}

	if left, ok := session.Remaining(start.Add(10 * time.Hour)); !ok || left != 6*time.Hour {
		t.Fatalf("expected 6h remaining, got %s ok=%t", left, ok)
	}
	if left, ok := session.Remaining(start.Add(20 * time.Hour)); !ok || left != 0 {
		t.Fatalf("remaining must clamp at zero past the goal, got %s ok=%t", left, ok)
	}
	if !session.GoalReached(start.Add(16 * time.Hour)) {
		t.Fatalf("goal is reached at exactly start+target")
	}

	open := domain.FastingSession{ID: "fast-2", StartAt: start}
	if _, ok := open.Remaining(start.Add(time.Hour)); ok {
		t.Fatalf("open-ended session has no remaining")
	}
	if open.GoalReached(start.Add(100 * time.Hour)) {
		t.Fatalf("open-ended session never reaches a goal")
	}
}

func TestGoalAtOnlyForTargetSessions(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 8, 27, 6, 0, 0, 0, time.UTC)
	target := domain.DefaultTarget
	session := domain.FastingSession{ID: "fast-1", StartAt: start, Target: &target}

	goal, ok := session.GoalAt()
	if !ok || !goal.Equal(start.Add(16*time.Hour)) {
		t.Fatalf("expected goal at start+16h, got %s ok=%t", goal, ok)
	}
	if _, ok := (domain.FastingSession{ID: "fast-2", StartAt: start}).GoalAt(); ok {
		t.Fatalf("open-ended session has no goal instant")
	}
}

func TestValidateRejectsInvertedRange(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 8, 27, 20, 0, 0, 0, time.UTC)
	before := start.Add(-time.Hour)
	session := domain.FastingSession{ID: "fast-1", StartAt: start, EndAt: &before}

	if err := session.Validate(); !errors.Is(err, apperrors.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	if err := (domain.FastingSession{StartAt: start}).Validate(); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing id, got %v", err)
	}
}
