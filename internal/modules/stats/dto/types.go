package dto

import "time"

type SummaryOutput struct {
	TotalHours    int
	CurrentStreak int
	FastedDays    int
	TotalFasts    int
}

type Day struct {
	Year  int
	Month int
	Day   int
}

type DayDetailOutput struct {
	SessionID string
	Start     time.Time
	End       time.Time
	Elapsed   time.Duration
}
