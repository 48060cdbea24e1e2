package leads

import (
	"strings"
	"time"
)

// Filters narrows a unified lead list for the admin console. Zero values
// mean "no filter". All active filters must match (AND semantics).
type Filters struct {
	// Search is matched case-insensitively as a substring of name, email or
	// company; any one field matching is enough.
	Search   string
	Type     LeadType
	Priority Priority
	// Reminder is one of "overdue", "today", "soon" or "none". "soon" also
	// matches leads due today; "none" matches leads with no follow-up date.
	Reminder string
}

// Apply returns the leads satisfying every active filter, preserving order.
func (f Filters) Apply(all []UnifiedLead, now time.Time) []UnifiedLead {
	out := make([]UnifiedLead, 0, len(all))
	for _, l := range all {
		if f.matches(&l, now) {
			out = append(out, l)
		}
	}
	return out
}

func (f Filters) matches(l *UnifiedLead, now time.Time) bool {
	if f.Search != "" && !matchesSearch(l, f.Search) {
		return false
	}
	if f.Type != "" && l.Type != f.Type {
		return false
	}
	if f.Priority != "" && l.Priority != f.Priority {
		return false
	}
	if f.Reminder != "" && !matchesReminder(l, f.Reminder, now) {
		return false
	}
	return true
}

func matchesSearch(l *UnifiedLead, term string) bool {
	term = strings.ToLower(term)
	if strings.Contains(strings.ToLower(l.Name), term) {
		return true
	}
	if strings.Contains(strings.ToLower(l.Email), term) {
		return true
	}
	if l.Company != nil && strings.Contains(strings.ToLower(*l.Company), term) {
		return true
	}
	return false
}

func matchesReminder(l *UnifiedLead, filter string, now time.Time) bool {
	status, ok := Reminder(l.NextActionDate, now)
	switch filter {
	case "none":
		return !ok
	case "overdue":
		return ok && status == ReminderOverdue
	case "today":
		return ok && status == ReminderToday
	case "soon":
		return ok && (status == ReminderSoon || status == ReminderToday)
	default:
		return true
	}
}
