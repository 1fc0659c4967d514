package ui

import (
	"fmt"
	"time"
)

// staleAnnouncementAge is how old a posting date can be before the row
// shows "Not Indicated" instead of a relative age. Canvas keeps years of
// announcements around; ages past this point are noise.
const staleAnnouncementAge = 300 * 24 * time.Hour

// DueLabel returns a short human label for an assignment due date
// relative to now.
func DueLabel(dueAt *time.Time, now time.Time) string {
	if dueAt == nil {
		return "no due date"
	}

	d := dueAt.Sub(now)
	if d >= 0 {
		return "due in " + shortDuration(d)
	}
	return "overdue " + shortDuration(-d)
}

// PostedLabel returns a relative age for an announcement posting date,
// or "Not Indicated" when the date is missing or very old.
func PostedLabel(postedAt *time.Time, now time.Time) string {
	if postedAt == nil {
		return "Not Indicated"
	}

	d := now.Sub(*postedAt)
	if d > staleAnnouncementAge {
		return "Not Indicated"
	}
	if d < 0 {
		d = 0
	}
	return shortDuration(d) + " ago"
}

// shortDuration renders a duration as its largest sensible unit.
func shortDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "1m"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	default:
		return fmt.Sprintf("%dw", int(d.Hours()/24/7))
	}
}
