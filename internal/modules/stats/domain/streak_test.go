package domain_test

import (
	"testing"
	"time"

	"fast/internal/modules/stats/domain"
)

func fastEnding(end time.Time, length time.Duration) domain.Fast {
	return domain.Fast{SessionID: "fast-" + end.Format("0102"), Start: end.Add(-length), End: end}
}

func TestOvernightFastBucketsOnEndDay(t *testing.T) {
	t.Parallel()
	// Starts on the 26th at 20:00, ends on the 27th at 12:00.
	end := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	f := fastEnding(end, 16*time.Hour)

	if got := f.Day(); got != (domain.DayKey{Year: 2026, Month: time.August, Day: 27}) {
		t.Fatalf("expected bucket on end day, got %+v", got)
	}
}

func TestTotalHoursTruncatesToWholeHours(t *testing.T) {
	t.Parallel()
	base := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	fasts := []domain.Fast{
		fastEnding(base, 16*time.Hour+30*time.Minute),
		fastEnding(base.AddDate(0, 0, 1), 17*time.Hour+45*time.Minute),
	}
	// 34h15m total, truncated.
	if got := domain.TotalHours(fasts); got != 34 {
		t.Fatalf("expected 34 hours, got %d", got)
	}
}

func TestCurrentStreakCountsConsecutiveDays(t *testing.T) {
	t.Parallel()
	today := time.Date(2026, 8, 27, 15, 0, 0, 0, time.UTC)
	fasts := []domain.Fast{
		fastEnding(today.Add(-3 * time.Hour), 16*time.Hour),
		fastEnding(today.AddDate(0, 0, -1), 16*time.Hour),
		fastEnding(today.AddDate(0, 0, -2), 16*time.Hour),
		// Gap on the 24th breaks the run.
		fastEnding(today.AddDate(0, 0, -4), 16*time.Hour),
	}
	if got := domain.CurrentStreak(fasts, today); got != 3 {
		t.Fatalf("expected streak 3, got %d", got)
	}
}

func TestCurrentStreakForgivesMissingToday(t *testing.T) {
	t.Parallel()
	today := time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)
	// Nothing ended today yet; yesterday and the day before count.
	fasts := []domain.Fast{
		fastEnding(today.AddDate(0, 0, -1), 16*time.Hour),
		fastEnding(today.AddDate(0, 0, -2), 16*time.Hour),
	}
	if got := domain.CurrentStreak(fasts, today); got != 2 {
		t.Fatalf("expected streak 2 with today still in progress, got %d", got)
	}
}

func TestCurrentStreakZeroWhenYesterdayAlsoMissing(t *testing.T) {
	t.Parallel()
	today := time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)
	fasts := []domain.Fast{
		fastEnding(today.AddDate(0, 0, -3), 16*time.Hour),
	}
	if got := domain.CurrentStreak(fasts, today); got != 0 {
		t.Fatalf("expected broken streak, got %d", got)
	}
}

func TestCurrentStreakCrossesMonthBoundary(t *testing.T) {
	t.Parallel()
	today := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)
	fasts := []domain.Fast{
		fastEnding(today.Add(-2 * time.Hour), 16*time.Hour),
		fastEnding(time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC), 16*time.Hour),
		fastEnding(time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC), 16*time.Hour),
	}
	if got := domain.CurrentStreak(fasts, today); got != 3 {
		t.Fatalf("expected streak 3 across month boundary, got %d", got)
	}
}

func TestLatestForDayPrefersLatestEnd(t *testing.T) {
	t.Parallel()
	day := domain.DayKey{Year: 2026, Month: time.August, Day: 27}
	early := fastEnding(time.Date(2026, 8, 27, 8, 0, 0, 0, time.UTC), 12*time.Hour)
	late := fastEnding(time.Date(2026, 8, 27, 21, 0, 0, 0, time.UTC), 6*time.Hour)

	got, ok := domain.LatestForDay([]domain.Fast{early, late}, day)
	if !ok {
		t.Fatalf("expected a fast for the day")
	}
	if !got.End.Equal(late.End) {
		t.Fatalf("expected the later fast, got end %s", got.End)
	}

	if _, ok := domain.LatestForDay(nil, day); ok {
		t.Fatalf("empty history must report no fast")
	}
}
