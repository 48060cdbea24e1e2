package leads

import (
	"time"
)

// Pipeline holds the kanban buckets keyed by lead level. Leads with an
// unrecognized level fall out of every bucket.
type Pipeline struct {
	Initial   []UnifiedLead `json:"initial"`
	Qualified []UnifiedLead `json:"qualified"`
	Project   []UnifiedLead `json:"project"`
}

// GroupByStage partitions leads into the three pipeline stages.
func GroupByStage(all []UnifiedLead) Pipeline {
	var p Pipeline
	for _, l := range all {
		switch l.LeadLevel {
		case LevelInitial:
			p.Initial = append(p.Initial, l)
		case LevelQualified:
			p.Qualified = append(p.Qualified, l)
		case LevelProject:
			p.Project = append(p.Project, l)
		}
	}
	return p
}

// Stats are the pipeline headline counts shown above the board. They are
// always computed from the unfiltered unified list.
type Stats struct {
	Total          int `json:"total"`
	Initial        int `json:"initial"`
	Qualified      int `json:"qualified"`
	Project        int `json:"project"`
	Urgent         int `json:"urgent"`
	Overdue        int `json:"overdue"`
	TodayReminders int `json:"todayReminders"`
}

// ComputeStats derives the headline counts for a unified lead list.
func ComputeStats(all []UnifiedLead, now time.Time) Stats {
	s := Stats{Total: len(all)}
	for _, l := range all {
		switch l.LeadLevel {
		case LevelInitial:
			s.Initial++
		case LevelQualified:
			s.Qualified++
		case LevelProject:
			s.Project++
		}
		if l.Priority == PriorityUrgent {
			s.Urgent++
		}
		if status, ok := Reminder(l.NextActionDate, now); ok {
			switch status {
			case ReminderOverdue:
				s.Overdue++
			case ReminderToday:
				s.TodayReminders++
			}
		}
	}
	return s
}
