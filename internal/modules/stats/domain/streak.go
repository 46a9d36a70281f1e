package domain

import "time"

// DayKey is the local calendar-day bucket used for history markers and
// streaks.
type DayKey struct {
	Year  int
	Month time.Month
	Day   int
}

func NewDayKey(t time.Time) DayKey {
	year, month, day := t.Date()
	return DayKey{Year: year, Month: month, Day: day}
}

func (k DayKey) Previous() DayKey {
	return NewDayKey(time.Date(k.Year, k.Month, k.Day-1, 0, 0, 0, 0, time.UTC))
}

// Fast is one completed fasting session. Active sessions never reach this
// package: with no end they contribute no bucket.
type Fast struct {
	SessionID string
	Start     time.Time
	End       time.Time
}

func (f Fast) Elapsed() time.Duration {
	return f.End.Sub(f.Start)
}

// Day buckets the fast by the day it concludes, so an overnight fast is
// attributed to the morning it ends.
func (f Fast) Day() DayKey {
	return NewDayKey(f.End)
}

func FastedDays(fasts []Fast) map[DayKey]struct{} {
	days := make(map[DayKey]struct{}, len(fasts))
	for _, f := range fasts {
		days[f.Day()] = struct{}{}
	}
	return days
}

// TotalHours sums elapsed time across all completed fasts, truncated to
// whole hours.
func TotalHours(fasts []Fast) int {
	var total time.Duration
	for _, f := range fasts {
		total += f.Elapsed()
	}
	return int(total / time.Hour)
}

// CurrentStreak counts consecutive fasted days walking backward from
// today. A missing bucket for today is forgiven once: the walk restarts at
// yesterday, since today's fast may simply not have ended yet.
func CurrentStreak(fasts []Fast, today time.Time) int {
	days := FastedDays(fasts)
	day := NewDayKey(today)
	if _, ok := days[day]; !ok {
		day = day.Previous()
		if _, ok := days[day]; !ok {
			return 0
		}
	}

	streak := 0
	for {
		if _, ok := days[day]; !ok {
			return streak
		}
		streak++
		day = day.Previous()
	}
}

// LatestForDay picks the most relevant fast for a bucket: the one with the
// latest end time.
func LatestForDay(fasts []Fast, day DayKey) (Fast, bool) {
	var (
		best  Fast
		found bool
	)
	for _, f := range fasts {
		if f.Day() != day {
			continue
		}
		if !found || f.End.After(best.End) {
			best = f
			found = true
		}
	}
	return best, found
}
