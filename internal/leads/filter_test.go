package leads

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filterFixture(now time.Time) []UnifiedLead {
	return []UnifiedLead{
		{
			ID: "1", Type: TypeContact, Name: "Ana Souza",
			Email: "ana@acme.com", Company: strPtr("Acme Recycling"),
			LeadLevel: LevelInitial, Priority: PriorityUrgent,
			NextActionDate: timePtr(now.Add(-1 * time.Hour)),
			CreatedAt:      now,
		},
		{
			ID: "2", Type: TypeMarketplace, Name: "Bruno Lima",
			Email: "bruno@tyreco.cn", Company: strPtr("TyreCo"),
			LeadLevel: LevelQualified, Priority: PriorityMedium,
			NextActionDate: timePtr(now.Add(2 * time.Hour)),
			CreatedAt:      now,
		},
		{
			ID: "3", Type: TypeOTR, Name: "Carla Mendes",
			Email:     "carla@otrmine.com",
			LeadLevel: LevelProject, Priority: PriorityHigh,
			NextActionDate: timePtr(now.Add(2 * 24 * time.Hour)),
			CreatedAt:      now,
		},
		{
			ID: "4", Type: TypeContact, Name: "Diego Alvarez",
			Email:     "diego@pyro.it",
			LeadLevel: LevelInitial, Priority: PriorityLow,
			CreatedAt: now,
		},
	}
}

func TestFilters_Search(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	all := filterFixture(now)

	tests := []struct {
		name     string
		search   string
		expected []string
	}{
		{"matches name case-insensitively", "ANA", []string{"1"}},
		{"matches email", "pyro.it", []string{"4"}},
		{"matches company", "tyreco", []string{"2"}},
		{"no match", "zinc", []string{}},
		{"empty search matches all", "", []string{"1", "2", "3", "4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filters{Search: tt.search}.Apply(all, now)
			ids := make([]string, 0, len(got))
			for _, l := range got {
				ids = append(ids, l.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestFilters_Reminder(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	all := filterFixture(now)

	tests := []struct {
		filter   string
		expected []string
	}{
		{"overdue", []string{"1"}},
		{"today", []string{"2"}},
		// "soon" also includes leads due today.
		{"soon", []string{"2", "3"}},
		{"none", []string{"4"}},
	}

	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			got := Filters{Reminder: tt.filter}.Apply(all, now)
			ids := make([]string, 0, len(got))
			for _, l := range got {
				ids = append(ids, l.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestFilters_Conjunction(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	all := filterFixture(now)

	// Lead 1 satisfies search, type and reminder but not priority: it must
	// be excluded because every active filter has to match.
	f := Filters{
		Search:   "ana",
		Type:     TypeContact,
		Priority: PriorityLow,
		Reminder: "overdue",
	}
	assert.Empty(t, f.Apply(all, now))

	f.Priority = PriorityUrgent
	got := f.Apply(all, now)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestGroupByStage(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	all := filterFixture(now)
	all = append(all, UnifiedLead{ID: "5", Type: TypeContact, LeadLevel: "archived", CreatedAt: now})

	p := GroupByStage(all)
	assert.Len(t, p.Initial, 2)
	assert.Len(t, p.Qualified, 1)
	assert.Len(t, p.Project, 1)

	// The unknown "archived" level lands in no bucket.
	total := len(p.Initial) + len(p.Qualified) + len(p.Project)
	assert.Equal(t, len(all)-1, total)
}

func TestComputeStats(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	all := filterFixture(now)

	s := ComputeStats(all, now)
	assert.Equal(t, Stats{
		Total:          4,
		Initial:        2,
		Qualified:      1,
		Project:        1,
		Urgent:         1,
		Overdue:        1,
		TodayReminders: 1,
	}, s)
}
