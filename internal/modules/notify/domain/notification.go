package domain

import "fmt"

// Notification identifiers are deterministic so every schedule call
// replaces its predecessor and every cancel is an idempotent bulk-remove.
const (
	CompletionID    = "fast-complete"
	DailyReminderID = "daily-reminder"
)

// HourlyReminderID keys one member of the hourly reminder set.
func HourlyReminderID(hour int) string {
	return fmt.Sprintf("hourly-reminder-%d", hour)
}

// HourlyReminderIDs covers every hour the set could ever contain; used for
// cancellation so a stale set armed from an earlier start hour is cleared
// completely.
func HourlyReminderIDs() []string {
	ids := make([]string, 0, 24)
	for hour := 0; hour < 24; hour++ {
		ids = append(ids, HourlyReminderID(hour))
	}
	return ids
}

// Content is the user-facing payload. Formatting and sound are the
// platform notifier's concern.
type Content struct {
	Title string
	Body  string
}

// SetEntry is one member of a recurring notification set, firing daily at
// Hour:Minute.
type SetEntry struct {
	ID      string
	Hour    int
	Minute  int
	Content Content
}

func CompletionContent() Content {
	return Content{Title: "Fast Complete", Body: "You reached your fasting goal."}
}

func DailyReminderContent() Content {
	return Content{Title: "Time to Fast", Body: "Your usual fasting window is starting."}
}

func HourlyReminderContent() Content {
	return Content{Title: "Still Eating?", Body: "You have not started a fast yet today."}
}
