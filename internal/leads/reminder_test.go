package leads

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReminder_Boundaries(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		due      *time.Time
		expected ReminderStatus
		present  bool
	}{
		{
			name:     "one second in the past is overdue",
			due:      timePtr(now.Add(-1 * time.Second)),
			expected: ReminderOverdue,
			present:  true,
		},
		{
			name:     "later the same day is today",
			due:      timePtr(now.Add(2 * time.Hour)),
			expected: ReminderToday,
			present:  true,
		},
		{
			name:     "three days out is soon",
			due:      timePtr(now.Add(3 * 24 * time.Hour)),
			expected: ReminderSoon,
			present:  true,
		},
		{
			name:     "four days out is scheduled",
			due:      timePtr(now.Add(4 * 24 * time.Hour)),
			expected: ReminderScheduled,
			present:  true,
		},
		{
			name:    "no follow-up date yields no reminder",
			due:     nil,
			present: false,
		},
		{
			name:     "yesterday is overdue, not today",
			due:      timePtr(now.Add(-24 * time.Hour)),
			expected: ReminderOverdue,
			present:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, ok := Reminder(tt.due, now)
			assert.Equal(t, tt.present, ok)
			if tt.present {
				assert.Equal(t, tt.expected, status)
			}
		})
	}
}

func TestReminder_TomorrowMorningIsSoonNotToday(t *testing.T) {
	now := time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC)
	due := time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC)

	status, ok := Reminder(&due, now)
	assert.True(t, ok)
	assert.Equal(t, ReminderSoon, status)
}
