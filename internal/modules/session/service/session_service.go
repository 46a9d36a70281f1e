package service

import (
	"context"
	"fmt"
	"time"

	"fast/internal/modules/session/domain"
	sessionout "fast/internal/modules/session/port/out"
	"fast/internal/platform/clock"
	apperrors "fast/internal/platform/errors"
	"fast/internal/platform/id"
)

// SessionService owns the session state machine rules: the single-active
// invariant, the sub-minute discard, and range validation for retroactive
// edits. It is stateless; callers serialize access.
type SessionService struct {
	clock clock.Clock
	idGen id.Generator
	store sessionout.Store
}

func NewSessionService(clock clock.Clock, idGen id.Generator, store sessionout.Store) *SessionService {
	return &SessionService{clock: clock, idGen: idGen, store: store}
}

func (s *SessionService) Start(ctx context.Context, at time.Time, target *time.Duration) (domain.FastingSession, error) {
	if _, err := s.store.Active(ctx); err == nil {
		return domain.FastingSession{}, apperrors.ErrActiveSessionExists
	} else if err != apperrors.ErrNoActiveSession {
		return domain.FastingSession{}, err
	}

	now := s.clock.Now()
	if at.IsZero() {
		at = now
	}
	if at.After(now) {
		return domain.FastingSession{}, fmt.Errorf("%w: start time is in the future", apperrors.ErrInvalidRange)
	}
	session := domain.FastingSession{
		ID:      s.idGen.New(),
		StartAt: at,
		Target:  target,
	}
	if err := session.Validate(); err != nil {
		return domain.FastingSession{}, err
	}
	if err := s.store.Insert(ctx, session); err != nil {
		return domain.FastingSession{}, err
	}
	return session, nil
}

// End terminates a session. An empty sessionID targets the active session.
// Ending an already-ended session is a no-op (changed=false). Ending less
// than MinCompletedDuration after start deletes the record instead of
// completing it (discarded=true).
func (s *SessionService) End(ctx context.Context, sessionID string, at time.Time) (session domain.FastingSession, discarded, changed bool, err error) {
	session, err = s.resolve(ctx, sessionID)
	if err != nil {
		return domain.FastingSession{}, false, false, err
	}
	if !session.IsActive() {
		return session, false, false, nil
	}

	now := s.clock.Now()
	if at.IsZero() {
		at = now
	}
	if at.Before(session.StartAt) {
		return domain.FastingSession{}, false, false, fmt.Errorf("%w: end precedes start", apperrors.ErrInvalidRange)
	}

	if at.Sub(session.StartAt) < domain.MinCompletedDuration {
		if err := s.store.Delete(ctx, session.ID); err != nil {
			return domain.FastingSession{}, false, false, err
		}
		return session, true, true, nil
	}

	session.EndAt = &at
	if err := s.store.Update(ctx, session); err != nil {
		return domain.FastingSession{}, false, false, err
	}
	return session, false, true, nil
}

func (s *SessionService) EditStart(ctx context.Context, sessionID string, newStart time.Time) (domain.FastingSession, error) {
	session, err := s.resolve(ctx, sessionID)
	if err != nil {
		return domain.FastingSession{}, err
	}
	if newStart.After(s.clock.Now()) {
		return domain.FastingSession{}, fmt.Errorf("%w: start time is in the future", apperrors.ErrInvalidRange)
	}
	if session.EndAt != nil && newStart.After(*session.EndAt) {
		return domain.FastingSession{}, fmt.Errorf("%w: start would follow end", apperrors.ErrInvalidRange)
	}
	session.StartAt = newStart
	if err := s.store.Update(ctx, session); err != nil {
		return domain.FastingSession{}, err
	}
	return session, nil
}

func (s *SessionService) EditEnd(ctx context.Context, sessionID string, newEnd time.Time) (domain.FastingSession, error) {
	session, err := s.resolve(ctx, sessionID)
	if err != nil {
		return domain.FastingSession{}, err
	}
	if session.IsActive() {
		return domain.FastingSession{}, fmt.Errorf("%w: active session has no end to edit", apperrors.ErrInvalidInput)
	}
	if newEnd.After(s.clock.Now()) {
		return domain.FastingSession{}, fmt.Errorf("%w: end time is in the future", apperrors.ErrInvalidRange)
	}
	if newEnd.Before(session.StartAt) {
		return domain.FastingSession{}, fmt.Errorf("%w: end would precede start", apperrors.ErrInvalidRange)
	}
	session.EndAt = &newEnd
	if err := s.store.Update(ctx, session); err != nil {
		return domain.FastingSession{}, err
	}
	return session, nil
}

func (s *SessionService) Delete(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("%w: session id is required", apperrors.ErrInvalidInput)
	}
	return s.store.Delete(ctx, sessionID)
}

func (s *SessionService) resolve(ctx context.Context, sessionID string) (domain.FastingSession, error) {
	if sessionID == "" {
		return s.store.Active(ctx)
	}
	return s.store.ByID(ctx, sessionID)
}
