package out_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	out "fast/internal/modules/session/adapter/out"
	"fast/internal/modules/session/domain"
	sessionout "fast/internal/modules/session/port/out"
	apperrors "fast/internal/platform/errors"
)

func newStore(t *testing.T) sessionout.Store {
	t.Helper()
	s, err := out.NewSQLiteSessionStore(filepath.Join(t.TempDir(), "fast.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return s
}

func TestInsertAndRoundTripActiveSession(t *testing.T) {
	t.Parallel()
	store := newStore(t)
	target := 16 * time.Hour
	start := time.Date(2026, 8, 27, 20, 0, 0, 0, time.FixedZone("CEST", 2*3600))
	session := domain.FastingSession{ID: "fast-1", StartAt: start, Target: &target}

	if err := store.Insert(context.Background(), session); err != nil {
		t.Fatalf("insert: %v", err)
	}
	got, err := store.Active(context.Background())
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	if got.ID != "fast-1" || !got.StartAt.Equal(start) {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.Target == nil || *got.Target != target {
		t.Fatalf("target lost in round trip: %+v", got.Target)
	}
	if !got.IsActive() {
		t.Fatalf("session without end_at must be active")
	}
}

func TestSchemaRejectsSecondActiveRow(t *testing.T) {
	t.Parallel()
	store := newStore(t)
	start := time.Date(2026, 8, 27, 20, 0, 0, 0, time.UTC)

	if err := store.Insert(context.Background(), domain.FastingSession{ID: "fast-1", StartAt: start}); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	err := store.Insert(context.Background(), domain.FastingSession{ID: "fast-2", StartAt: start.Add(time.Hour)})
	if !errors.Is(err, apperrors.ErrStorage) {
		t.Fatalf("expected the partial unique index to reject a second active row, got %v", err)
	}
}

func TestUpdateMovesSessionOutOfActive(t *testing.T) {
	t.Parallel()
	store := newStore(t)
	start := time.Date(2026, 8, 27, 6, 0, 0, 0, time.UTC)
	session := domain.FastingSession{ID: "fast-1", StartAt: start}

	if err := store.Insert(context.Background(), session); err != nil {
		t.Fatalf("insert: %v", err)
	}
	end := start.Add(18 * time.Hour)
	session.EndAt = &end
	if err := store.Update(context.Background(), session); err != nil {
		t.Fatalf("update: %v", err)
	}

	if _, err := store.Active(context.Background()); !errors.Is(err, apperrors.ErrNoActiveSession) {
		t.Fatalf("expected no active session, got %v", err)
	}
	completed, err := store.Completed(context.Background())
	if err != nil {
		t.Fatalf("completed: %v", err)
	}
	if len(completed) != 1 || completed[0].EndAt == nil || !completed[0].EndAt.Equal(end) {
		t.Fatalf("completed list mismatch: %+v", completed)
	}
}

func TestByIDAndDeleteReportNotFound(t *testing.T) {
	t.Parallel()
	store := newStore(t)

	if _, err := store.ByID(context.Background(), "missing"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound from ByID, got %v", err)
	}
	if err := store.Delete(context.Background(), "missing"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound from Delete, got %v", err)
	}
	if err := store.Update(context.Background(), domain.FastingSession{ID: "missing", StartAt: time.Now()}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound from Update, got %v", err)
	}
}

func TestAllOrdersByStartTime(t *testing.T) {
	t.Parallel()
	store := newStore(t)
	base := time.Date(2026, 8, 25, 6, 0, 0, 0, time.UTC)

	for i, id := range []string{"fast-c", "fast-a", "fast-b"} {
		start := base.AddDate(0, 0, 2-i)
		end := start.Add(16 * time.Hour)
		session := domain.FastingSession{ID: id, StartAt: start, EndAt: &end}
		if err := store.Insert(context.Background(), session); err != nil {
			t.Fatalf("insert %s: %v", id, err)
		}
	}
	all, err := store.All(context.Background())
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].StartAt.Before(all[i-1].StartAt) {
			t.Fatalf("sessions out of order: %s before %s", all[i].ID, all[i-1].ID)
		}
	}
}
