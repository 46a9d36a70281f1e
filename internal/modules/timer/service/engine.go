package service

import (
	"sync"
	"time"

	"fast/internal/modules/timer/dto"
	timerin "fast/internal/modules/timer/port/in"
	"fast/internal/platform/clock"
)

// CompletionFunc receives the one-time completion event for a target
// session. goalAt is startAt + target — the exact goal instant, not the
// wall-clock time the tick happened to fire — so subscribers persist an
// exact duration regardless of tick jitter.
type CompletionFunc func(sessionID string, goalAt time.Time)

// TickFunc observes every published snapshot.
type TickFunc func(dto.Snapshot)

// Engine recomputes elapsed/remaining from the wall clock roughly once per
// second while bound to an active session. Because each firing derives
// state from now - startAt, correctness survives arbitrarily long gaps
// between firings.
type Engine struct {
	mu         sync.Mutex
	clk        clock.Clock
	interval   time.Duration
	binding    dto.Binding
	bound      bool
	fired      bool
	snapshot   dto.Snapshot
	stop       chan struct{}
	onComplete CompletionFunc
	onTick     TickFunc
}

func NewEngine(clk clock.Clock, interval time.Duration) *Engine {
	if interval <= 0 {
		interval = time.Second
	}
	return &Engine{clk: clk, interval: interval}
}

var _ timerin.Engine = (*Engine)(nil)

// OnComplete registers the completion subscriber. Call before Start. The
// callback runs on its own goroutine, so it may safely call back into
// session commands.
func (e *Engine) OnComplete(fn CompletionFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onComplete = fn
}

// OnTick registers a snapshot observer. Call before Start.
func (e *Engine) OnTick(fn TickFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onTick = fn
}

// Start binds the engine, computes immediately, and begins periodic
// recomputation. A previous binding is replaced.
func (e *Engine) Start(binding dto.Binding) {
	e.mu.Lock()
	if e.stop != nil {
		close(e.stop)
	}
	stop := make(chan struct{})
	e.stop = stop
	e.binding = binding
	e.bound = true
	e.fired = false
	e.mu.Unlock()

	e.recompute()

	go e.loop(stop)
}

// Stop unbinds, cancels the periodic callback, and resets the published
// snapshot to zero. Safe to call when nothing is running.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stop != nil {
		close(e.stop)
		e.stop = nil
	}
	e.bound = false
	e.fired = false
	e.snapshot = dto.Snapshot{}
}

// Refresh forces an out-of-band recomputation and returns the result.
func (e *Engine) Refresh() dto.Snapshot {
	return e.recompute()
}

// SetAnchor updates the bound session's start/target in place. The
// completion one-shot is re-armed against the new goal instant.
func (e *Engine) SetAnchor(start time.Time, target *time.Duration) {
	e.mu.Lock()
	if !e.bound {
		e.mu.Unlock()
		return
	}
	e.binding.StartAt = start
	e.binding.Target = target
	e.fired = false
	e.mu.Unlock()

	e.recompute()
}

func (e *Engine) Snapshot() dto.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot
}

func (e *Engine) loop(stop chan struct{}) {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			e.recompute()
		}
	}
}

func (e *Engine) recompute() dto.Snapshot {
	e.mu.Lock()
	if !e.bound {
		snapshot := e.snapshot
		e.mu.Unlock()
		return snapshot
	}

	now := e.clk.Now()
	binding := e.binding
	snapshot := dto.Snapshot{
		SessionID: binding.SessionID,
		Elapsed:   now.Sub(binding.StartAt),
	}
	if binding.Target != nil {
		snapshot.HasTarget = true
		remaining := *binding.Target - snapshot.Elapsed
		if remaining < 0 {
			remaining = 0
		}
		snapshot.Remaining = remaining
		snapshot.GoalReached = remaining == 0
	}
	e.snapshot = snapshot

	var complete CompletionFunc
	var goalAt time.Time
	if snapshot.HasTarget && snapshot.GoalReached && !e.fired {
		e.fired = true
		complete = e.onComplete
		goalAt = binding.StartAt.Add(*binding.Target)
	}
	tick := e.onTick
	e.mu.Unlock()

	if tick != nil {
		tick(snapshot)
	}
	if complete != nil {
		// The subscriber ends the session through the interactor, whose
		// command may be the very caller of this recompute. Dispatching on
		// a fresh goroutine keeps the callback off the caller's locks.
		go complete(binding.SessionID, goalAt)
	}
	return snapshot
}
