package service_test

import (
	"testing"
	"time"

	"fast/internal/modules/timer/dto"
	"fast/internal/modules/timer/service"
)

type fakeClock struct {
	values []time.Time
	idx    int
}

func (f *fakeClock) Now() time.Time {
	if f.idx >= len(f.values) {
		return f.values[len(f.values)-1]
	}
	v := f.values[f.idx]
	f.idx++
	return v
}

// Tests drive recomputation through Refresh with a long interval so the
// background ticker never interferes.
const quietInterval = time.Hour

// completionEvent captures one OnComplete firing; the callback runs on its
// own goroutine, so tests receive events through a channel.
type completionEvent struct {
	id     string
	goalAt time.Time
}

func waitCompletion(t *testing.T, events <-chan completionEvent) completionEvent {
	t.Helper()
	select {
	case ev := <-events:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatalf("completion never fired")
		return completionEvent{}
	}
}

func expectNoCompletion(t *testing.T, events <-chan completionEvent) {
	t.Helper()
	select {
	case ev := <-events:
		t.Fatalf("unexpected completion for %s at %s", ev.id, ev.goalAt)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestRefreshRecomputesFromWallClock(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 8, 27, 20, 0, 0, 0, time.UTC)
	clk := &fakeClock{values: []time.Time{
		start.Add(time.Second),
		start.Add(3 * time.Hour),
	}}
	target := 16 * time.Hour
	engine := service.NewEngine(clk, quietInterval)
	engine.Start(dto.Binding{SessionID: "fast-1", StartAt: start, Target: &target})
	defer engine.Stop()

	snapshot := engine.Refresh()
	if snapshot.Elapsed != 3*time.Hour {
		t.Fatalf("expected 3h elapsed, got %s", snapshot.Elapsed)
	}
	if snapshot.Remaining != 13*time.Hour {
		t.Fatalf("expected 13h remaining, got %s", snapshot.Remaining)
	}
	if snapshot.GoalReached {
		t.Fatalf("goal must not be reached at 3h of 16h")
	}
}

func TestElapsedSurvivesLongGapBetweenFirings(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 8, 27, 20, 0, 0, 0, time.UTC)
	// One firing right after start, the next a whole day later, as if the
	// process had been suspended in between.
	clk := &fakeClock{values: []time.Time{
		start.Add(time.Second),
		start.Add(24 * time.Hour),
	}}
	engine := service.NewEngine(clk, quietInterval)
	engine.Start(dto.Binding{SessionID: "fast-1", StartAt: start})
	defer engine.Stop()

	snapshot := engine.Refresh()
	if snapshot.Elapsed != 24*time.Hour {
		t.Fatalf("expected 24h elapsed after gap, got %s", snapshot.Elapsed)
	}
	if snapshot.HasTarget {
		t.Fatalf("open-ended session must report no target")
	}
}

func TestCompletionFiresOnceAnchoredAtGoalInstant(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 8, 27, 6, 0, 0, 0, time.UTC)
	target := 16 * time.Hour
	goal := start.Add(target)
	// The firing that notices completion arrives 7 minutes late.
	clk := &fakeClock{values: []time.Time{
		start.Add(time.Second),
		goal.Add(7 * time.Minute),
		goal.Add(8 * time.Minute),
	}}
	engine := service.NewEngine(clk, quietInterval)

	events := make(chan completionEvent, 2)
	engine.OnComplete(func(sessionID string, goalAt time.Time) {
		events <- completionEvent{id: sessionID, goalAt: goalAt}
	})
	engine.Start(dto.Binding{SessionID: "fast-1", StartAt: start, Target: &target})
	defer engine.Stop()

	snapshot := engine.Refresh()
	if !snapshot.GoalReached || snapshot.Remaining != 0 {
		t.Fatalf("expected goal reached with zero remaining, got %+v", snapshot)
	}
	ev := waitCompletion(t, events)
	if ev.id != "fast-1" {
		t.Fatalf("completion carried wrong session id: %s", ev.id)
	}
	if !ev.goalAt.Equal(goal) {
		t.Fatalf("completion must anchor at start+target %s, got %s", goal, ev.goalAt)
	}

	engine.Refresh()
	expectNoCompletion(t, events)
}

func TestSetAnchorRearmsCompletion(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 8, 27, 6, 0, 0, 0, time.UTC)
	target := 2 * time.Hour
	clk := &fakeClock{values: []time.Time{
		start.Add(2*time.Hour + time.Minute), // initial firing, goal already passed
		start.Add(2*time.Hour + time.Minute), // SetAnchor recompute, new goal not reached
		start.Add(4 * time.Hour),             // refresh after new goal
	}}
	engine := service.NewEngine(clk, quietInterval)

	events := make(chan completionEvent, 2)
	engine.OnComplete(func(sessionID string, goalAt time.Time) {
		events <- completionEvent{id: sessionID, goalAt: goalAt}
	})
	engine.Start(dto.Binding{SessionID: "fast-1", StartAt: start, Target: &target})
	defer engine.Stop()

	first := waitCompletion(t, events)
	if !first.goalAt.Equal(start.Add(target)) {
		t.Fatalf("first completion must anchor at the original goal, got %s", first.goalAt)
	}

	// Editing the start forward moves the goal past now and re-arms the
	// one-shot.
	newStart := start.Add(time.Hour)
	engine.SetAnchor(newStart, &target)
	expectNoCompletion(t, events)

	engine.Refresh()
	second := waitCompletion(t, events)
	if !second.goalAt.Equal(newStart.Add(target)) {
		t.Fatalf("second completion must anchor at the new goal, got %s", second.goalAt)
	}
}

func TestStopResetsSnapshotAndIgnoresRefresh(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 8, 27, 20, 0, 0, 0, time.UTC)
	clk := &fakeClock{values: []time.Time{start.Add(time.Minute)}}
	engine := service.NewEngine(clk, quietInterval)
	engine.Start(dto.Binding{SessionID: "fast-1", StartAt: start})

	engine.Stop()
	if got := engine.Snapshot(); got != (dto.Snapshot{}) {
		t.Fatalf("expected zero snapshot after stop, got %+v", got)
	}
	if got := engine.Refresh(); got.SessionID != "" {
		t.Fatalf("refresh on stopped engine must stay unbound, got %+v", got)
	}
	// Stop twice is fine.
	engine.Stop()
}
