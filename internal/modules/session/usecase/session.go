package usecase

import (
	"context"
	"sync"
	"time"

	"fast/internal/modules/session/domain"
	sessiondto "fast/internal/modules/session/dto"
	sessionin "fast/internal/modules/session/port/in"
	sessionout "fast/internal/modules/session/port/out"
	"fast/internal/modules/session/service"
	"fast/internal/platform/clock"
)

// Interactor funnels every session command through one mutex so the
// single-active invariant holds even with a ticking engine goroutine and
// a UI issuing commands concurrently. Transition hooks fire exactly once
// per actual transition, after the store commit succeeded.
type Interactor struct {
	mu       sync.Mutex
	svc      *service.SessionService
	store    sessionout.Store
	clock    clock.Clock
	handlers []sessionout.TransitionHandler
}

func NewInteractor(svc *service.SessionService, store sessionout.Store, clk clock.Clock, handlers ...sessionout.TransitionHandler) sessionin.Usecase {
	return &Interactor{svc: svc, store: store, clock: clk, handlers: handlers}
}

func (i *Interactor) Start(ctx context.Context, input sessiondto.StartInput) (sessiondto.SessionOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	session, err := i.svc.Start(ctx, input.At, input.Target)
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	for _, h := range i.handlers {
		h.Activated(ctx, session)
	}
	return i.toOutput(session), nil
}

func (i *Interactor) End(ctx context.Context, input sessiondto.EndInput) (sessiondto.EndOutput, error) {
	return i.end(ctx, "", input.At)
}

func (i *Interactor) EndAt(ctx context.Context, sessionID string, at time.Time) (sessiondto.EndOutput, error) {
	return i.end(ctx, sessionID, at)
}

func (i *Interactor) end(ctx context.Context, sessionID string, at time.Time) (sessiondto.EndOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	session, discarded, changed, err := i.svc.End(ctx, sessionID, at)
	if err != nil {
		return sessiondto.EndOutput{}, err
	}
	if changed {
		for _, h := range i.handlers {
			h.Deactivated(ctx)
		}
	}
	return sessiondto.EndOutput{Session: i.toOutput(session), Discarded: discarded}, nil
}

func (i *Interactor) EditStart(ctx context.Context, input sessiondto.EditStartInput) (sessiondto.SessionOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	session, err := i.svc.EditStart(ctx, input.SessionID, input.NewStart)
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	if session.IsActive() {
		for _, h := range i.handlers {
			h.Reanchored(ctx, session)
		}
	}
	return i.toOutput(session), nil
}

func (i *Interactor) EditEnd(ctx context.Context, input sessiondto.EditEndInput) (sessiondto.SessionOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	session, err := i.svc.EditEnd(ctx, input.SessionID, input.NewEnd)
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	return i.toOutput(session), nil
}

func (i *Interactor) Delete(ctx context.Context, sessionID string) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	session, err := i.store.ByID(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := i.svc.Delete(ctx, sessionID); err != nil {
		return err
	}
	if session.IsActive() {
		for _, h := range i.handlers {
			h.Deactivated(ctx)
		}
	}
	return nil
}

func (i *Interactor) Active(ctx context.Context) (sessiondto.SessionOutput, error) {
	session, err := i.store.Active(ctx)
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	return i.toOutput(session), nil
}

func (i *Interactor) All(ctx context.Context) ([]sessiondto.SessionOutput, error) {
	sessions, err := i.store.All(ctx)
	if err != nil {
		return nil, err
	}
	return i.toOutputs(sessions), nil
}

func (i *Interactor) Completed(ctx context.Context) ([]sessiondto.SessionOutput, error) {
	sessions, err := i.store.Completed(ctx)
	if err != nil {
		return nil, err
	}
	return i.toOutputs(sessions), nil
}

// Resume rebinds the engine to a persisted active session after process
// restart. It fires Activated without touching the store.
func (i *Interactor) Resume(ctx context.Context) (sessiondto.SessionOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	session, err := i.store.Active(ctx)
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	for _, h := range i.handlers {
		h.Activated(ctx, session)
	}
	return i.toOutput(session), nil
}

func (i *Interactor) toOutput(session domain.FastingSession) sessiondto.SessionOutput {
	now := i.clock.Now()
	remaining, hasTarget := session.Remaining(now)
	return sessiondto.SessionOutput{
		ID:          session.ID,
		StartAt:     session.StartAt,
		EndAt:       session.EndAt,
		Target:      session.Target,
		Elapsed:     session.Elapsed(now),
		Remaining:   remaining,
		HasTarget:   hasTarget,
		GoalReached: session.GoalReached(now),
		Active:      session.IsActive(),
	}
}

func (i *Interactor) toOutputs(sessions []domain.FastingSession) []sessiondto.SessionOutput {
	out := make([]sessiondto.SessionOutput, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, i.toOutput(s))
	}
	return out
}
