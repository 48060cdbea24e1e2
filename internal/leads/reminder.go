package leads

import (
	"time"
)

// ReminderStatus is the urgency tag derived from a lead's next_action_date.
// It is recomputed on demand and never persisted.
type ReminderStatus string

const (
	ReminderOverdue   ReminderStatus = "overdue"
	ReminderToday     ReminderStatus = "today"
	ReminderSoon      ReminderStatus = "soon"
	ReminderScheduled ReminderStatus = "scheduled"
)

const soonWindow = 3 * 24 * time.Hour

// Reminder derives the reminder status for a follow-up date. The second
// return value is false when the lead has no follow-up scheduled.
//
// A date in the past is overdue even when it falls on the current calendar
// day; "today" covers only the remainder of the day.
func Reminder(nextActionDate *time.Time, now time.Time) (ReminderStatus, bool) {
	if nextActionDate == nil {
		return "", false
	}
	due := *nextActionDate

	if due.Before(now) {
		return ReminderOverdue, true
	}
	if sameDay(due, now) {
		return ReminderToday, true
	}
	if due.Sub(now) <= soonWindow {
		return ReminderSoon, true
	}
	return ReminderScheduled, true
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
