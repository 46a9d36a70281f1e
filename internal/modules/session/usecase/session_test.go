package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fast/internal/modules/session/domain"
	sessiondto "fast/internal/modules/session/dto"
	"fast/internal/modules/session/service"
	"fast/internal/modules/session/usecase"
	apperrors "fast/internal/platform/errors"
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

type fakeID struct{}

func (fakeID) New() string { return "fast-1" }

type memStore struct {
	sessions map[string]domain.FastingSession
}

func newMemStore() *memStore {
	return &memStore{sessions: map[string]domain.FastingSession{}}
}

func (m *memStore) Insert(_ context.Context, s domain.FastingSession) error {
	m.sessions[s.ID] = s
	return nil
}

func (m *memStore) Update(_ context.Context, s domain.FastingSession) error {
	if _, ok := m.sessions[s.ID]; !ok {
		return apperrors.ErrNotFound
	}
	m.sessions[s.ID] = s
	return nil
}

func (m *memStore) Delete(_ context.Context, id string) error {
	if _, ok := m.sessions[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(m.sessions, id)
	return nil
}

func (m *memStore) ByID(_ context.Context, id string) (domain.FastingSession, error) {
	s, ok := m.sessions[id]
	if !ok {
		return domain.FastingSession{}, apperrors.ErrNotFound
	}
	return s, nil
}

func (m *memStore) Active(_ context.Context) (domain.FastingSession, error) {
	for _, s := range m.sessions {
		if s.IsActive() {
			return s, nil
		}
	}
	return domain.FastingSession{}, apperrors.ErrNoActiveSession
}

func (m *memStore) All(_ context.Context) ([]domain.FastingSession, error) {
	out := make([]domain.FastingSession, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	return out, nil
}

func (m *memStore) Completed(_ context.Context) ([]domain.FastingSession, error) {
	var out []domain.FastingSession
	for _, s := range m.sessions {
		if !s.IsActive() {
			out = append(out, s)
		}
	}
	return out, nil
}

type transitionRecorder struct {
	activated   int
	deactivated int
	reanchored  int
	lastSession domain.FastingSession
}

func (r *transitionRecorder) Activated(_ context.Context, s domain.FastingSession) {
	r.activated++
	r.lastSession = s
}

func (r *transitionRecorder) Deactivated(context.Context) { r.deactivated++ }

func (r *transitionRecorder) Reanchored(_ context.Context, s domain.FastingSession) {
	r.reanchored++
	r.lastSession = s
}

func TestStartEndLifecycleFiresTransitionsOnce(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 8, 27, 20, 0, 0, 0, time.UTC)
	clk := &fakeClock{values: []time.Time{
		start,
		start,
		start.Add(16 * time.Hour),
		start.Add(16 * time.Hour),
	}}
	store := newMemStore()
	rec := &transitionRecorder{}
	uc := usecase.NewInteractor(service.NewSessionService(clk, fakeID{}, store), store, clk, rec)

	target := 16 * time.Hour
	out, err := uc.Start(context.Background(), sessiondto.StartInput{Target: &target})
	if err != nil {
		t.Fatalf("start fast: %v", err)
	}
	if !out.Active || out.ID == "" {
		t.Fatalf("expected active session with id, got %+v", out)
	}
	if rec.activated != 1 {
		t.Fatalf("expected one Activated, got %d", rec.activated)
	}

	end, err := uc.End(context.Background(), sessiondto.EndInput{})
	if err != nil {
		t.Fatalf("end fast: %v", err)
	}
	if end.Discarded {
		t.Fatalf("16h fast must not be discarded")
	}
	if end.Session.Elapsed != 16*time.Hour {
		t.Fatalf("expected 16h elapsed, got %s", end.Session.Elapsed)
	}
	if !end.Session.GoalReached {
		t.Fatalf("goal should be reached at exactly target")
	}
	if rec.deactivated != 1 {
		t.Fatalf("expected one Deactivated, got %d", rec.deactivated)
	}
}

func TestStartRejectsSecondActiveSession(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 8, 27, 20, 0, 0, 0, time.UTC)
	clk := &fakeClock{values: []time.Time{now}}
	store := newMemStore()
	uc := usecase.NewInteractor(service.NewSessionService(clk, fakeID{}, store), store, clk)

	if _, err := uc.Start(context.Background(), sessiondto.StartInput{}); err != nil {
		t.Fatalf("first start: %v", err)
	}
	if _, err := uc.Start(context.Background(), sessiondto.StartInput{}); !errors.Is(err, apperrors.ErrActiveSessionExists) {
		t.Fatalf("expected ErrActiveSessionExists, got %v", err)
	}
}

func TestStartRejectsFutureStartTime(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 8, 27, 20, 0, 0, 0, time.UTC)
	clk := &fakeClock{values: []time.Time{now}}
	store := newMemStore()
	uc := usecase.NewInteractor(service.NewSessionService(clk, fakeID{}, store), store, clk)

	_, err := uc.Start(context.Background(), sessiondto.StartInput{At: now.Add(time.Minute)})
	if !errors.Is(err, apperrors.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange for future start, got %v", err)
	}
}

func TestEndWithinAMinuteDiscardsTheSession(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 8, 27, 20, 0, 0, 0, time.UTC)
	clk := &fakeClock{values: []time.Time{
		start,
		start,
		start.Add(30 * time.Second),
		start.Add(30 * time.Second),
	}}
	store := newMemStore()
	rec := &transitionRecorder{}
	uc := usecase.NewInteractor(service.NewSessionService(clk, fakeID{}, store), store, clk, rec)

	if _, err := uc.Start(context.Background(), sessiondto.StartInput{}); err != nil {
		t.Fatalf("start: %v", err)
	}
	end, err := uc.End(context.Background(), sessiondto.EndInput{})
	if err != nil {
		t.Fatalf("end: %v", err)
	}
	if !end.Discarded {
		t.Fatalf("sub-minute fast must be discarded")
	}
	if len(store.sessions) != 0 {
		t.Fatalf("discarded session must be deleted, store has %d", len(store.sessions))
	}
	if rec.deactivated != 1 {
		t.Fatalf("discard still leaves Active, expected one Deactivated, got %d", rec.deactivated)
	}
}

func TestEndAtIsIdempotentForEndedSessions(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 8, 27, 6, 0, 0, 0, time.UTC)
	goal := start.Add(16 * time.Hour)
	clk := &fakeClock{values: []time.Time{start, start, goal, goal, goal, goal}}
	store := newMemStore()
	rec := &transitionRecorder{}
	uc := usecase.NewInteractor(service.NewSessionService(clk, fakeID{}, store), store, clk, rec)

	target := 16 * time.Hour
	out, err := uc.Start(context.Background(), sessiondto.StartInput{Target: &target})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := uc.EndAt(context.Background(), out.ID, goal); err != nil {
		t.Fatalf("first EndAt: %v", err)
	}
	// A late engine firing (or a user tap racing completion) lands here.
	again, err := uc.EndAt(context.Background(), out.ID, goal.Add(time.Minute))
	if err != nil {
		t.Fatalf("second EndAt: %v", err)
	}
	if again.Session.EndAt == nil || !again.Session.EndAt.Equal(goal) {
		t.Fatalf("second EndAt must not move the recorded end, got %v", again.Session.EndAt)
	}
	if rec.deactivated != 1 {
		t.Fatalf("repeat EndAt must not re-fire Deactivated, got %d", rec.deactivated)
	}
}

func TestEditStartOnActiveSessionFiresReanchored(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 8, 27, 20, 0, 0, 0, time.UTC)
	clk := &fakeClock{values: []time.Time{now}}
	store := newMemStore()
	rec := &transitionRecorder{}
	uc := usecase.NewInteractor(service.NewSessionService(clk, fakeID{}, store), store, clk, rec)

	if _, err := uc.Start(context.Background(), sessiondto.StartInput{}); err != nil {
		t.Fatalf("start: %v", err)
	}
	moved := now.Add(-2 * time.Hour)
	out, err := uc.EditStart(context.Background(), sessiondto.EditStartInput{NewStart: moved})
	if err != nil {
		t.Fatalf("edit start: %v", err)
	}
	if !out.StartAt.Equal(moved) {
		t.Fatalf("expected start %s, got %s", moved, out.StartAt)
	}
	if rec.reanchored != 1 {
		t.Fatalf("expected one Reanchored, got %d", rec.reanchored)
	}
	if !rec.lastSession.StartAt.Equal(moved) {
		t.Fatalf("handler must see the new start, got %s", rec.lastSession.StartAt)
	}
}

func TestEditEndRejectsActiveSessionAndBadRanges(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 8, 27, 8, 0, 0, 0, time.UTC)
	clk := &fakeClock{values: []time.Time{start, start, start.Add(2 * time.Hour)}}
	store := newMemStore()
	uc := usecase.NewInteractor(service.NewSessionService(clk, fakeID{}, store), store, clk)

	out, err := uc.Start(context.Background(), sessiondto.StartInput{})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := uc.EditEnd(context.Background(), sessiondto.EditEndInput{SessionID: out.ID, NewEnd: start.Add(time.Hour)}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput editing an active session's end, got %v", err)
	}

	if _, err := uc.End(context.Background(), sessiondto.EndInput{At: start.Add(2 * time.Hour)}); err != nil {
		t.Fatalf("end: %v", err)
	}
	if _, err := uc.EditEnd(context.Background(), sessiondto.EditEndInput{SessionID: out.ID, NewEnd: start.Add(-time.Hour)}); !errors.Is(err, apperrors.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange for end before start, got %v", err)
	}
}

func TestDeleteActiveSessionFiresDeactivated(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 8, 27, 20, 0, 0, 0, time.UTC)
	clk := &fakeClock{values: []time.Time{now}}
	store := newMemStore()
	rec := &transitionRecorder{}
	uc := usecase.NewInteractor(service.NewSessionService(clk, fakeID{}, store), store, clk, rec)

	out, err := uc.Start(context.Background(), sessiondto.StartInput{})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := uc.Delete(context.Background(), out.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if rec.deactivated != 1 {
		t.Fatalf("expected one Deactivated, got %d", rec.deactivated)
	}
	if _, err := uc.Active(context.Background()); !errors.Is(err, apperrors.ErrNoActiveSession) {
		t.Fatalf("expected no active session after delete, got %v", err)
	}
}

func TestResumeRefiresActivatedWithoutMutatingStore(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 8, 27, 20, 0, 0, 0, time.UTC)
	clk := &fakeClock{values: []time.Time{now}}
	store := newMemStore()
	rec := &transitionRecorder{}
	uc := usecase.NewInteractor(service.NewSessionService(clk, fakeID{}, store), store, clk, rec)

	out, err := uc.Start(context.Background(), sessiondto.StartInput{})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	resumed, err := uc.Resume(context.Background())
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if resumed.ID != out.ID {
		t.Fatalf("resume must return the persisted active session")
	}
	if rec.activated != 2 {
		t.Fatalf("expected Activated on start and resume, got %d", rec.activated)
	}
	if len(store.sessions) != 1 {
		t.Fatalf("resume must not mutate the store")
	}
}
