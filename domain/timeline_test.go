package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSectionDates_Empty(t *testing.T) {
	assert.Equal(t, Timeline{}, SectionDates(nil))
	assert.Equal(t, Timeline{}, SectionDates([]Activity{{ID: "a"}}))
}

func TestSectionDates_BoundsComeFromDifferentActivities(t *testing.T) {
	activities := []Activity{
		{ID: "a1", StartDate: "2026-03-01", EndDate: "2026-03-10"},
		{ID: "a2", StartDate: "2026-02-15", EndDate: "2026-02-20"},
		{ID: "a3", EndDate: "2026-05-01"},
	}

	got := SectionDates(activities)
	assert.Equal(t, "2026-02-15", got.StartDate)
	assert.Equal(t, "2026-05-01", got.EndDate)
}

func TestSectionDates_PartialDates(t *testing.T) {
	got := SectionDates([]Activity{{ID: "a", StartDate: "2026-01-01"}})
	assert.Equal(t, "2026-01-01", got.StartDate)
	assert.Empty(t, got.EndDate)
}

func TestBudgetTimeline_SkipsDisabledSections(t *testing.T) {
	b := Budget{Sections: []Section{
		{ID: "s1", Enabled: true, StartDate: "2026-04-01", EndDate: "2026-04-30"},
		{ID: "s2", Enabled: false, StartDate: "2026-01-01", EndDate: "2026-12-31"},
		{ID: "s3", Enabled: true, StartDate: "2026-03-15", EndDate: "2026-03-20"},
	}}

	got := b.Timeline()
	assert.Equal(t, "2026-03-15", got.StartDate)
	assert.Equal(t, "2026-04-30", got.EndDate)
}

func TestBudgetTimeline_NoDates(t *testing.T) {
	b := Budget{Sections: []Section{{ID: "s", Enabled: true}}}
	assert.Equal(t, Timeline{}, b.Timeline())
}

func TestRederiveDates_OverwritesStaleSectionDates(t *testing.T) {
	b := Budget{Sections: []Section{
		{
			ID:        "s1",
			Enabled:   true,
			StartDate: "2025-01-01", // stale, contradicts the activities
			EndDate:   "2025-01-31",
			Activities: []Activity{
				{ID: "a1", StartDate: "2026-01-01", EndDate: "2026-02-01"},
			},
		},
		{
			ID:        "s2",
			Enabled:   true,
			StartDate: "2025-06-01", // stale, no activities carry dates at all
			EndDate:   "2025-06-30",
		},
	}}

	next := b.RederiveDates()
	assert.Equal(t, "2026-01-01", next.Sections[0].StartDate)
	assert.Equal(t, "2026-02-01", next.Sections[0].EndDate)
	assert.Empty(t, next.Sections[1].StartDate)
	assert.Empty(t, next.Sections[1].EndDate)

	// The input keeps its stale values; re-derivation is copy-on-write too.
	assert.Equal(t, "2025-01-01", b.Sections[0].StartDate)
}

func TestRederiveDates_UpdatesDurableFields(t *testing.T) {
	b := Budget{Sections: []Section{{
		ID:      "s",
		Enabled: true,
		Activities: []Activity{
			{ID: "a1", StartDate: "2026-06-01", EndDate: "2026-06-10"},
			{ID: "a2", StartDate: "2026-05-20", EndDate: "2026-06-05"},
		},
	}}}

	start := ptr("2026-07-01")
	end := ptr("2026-07-15")
	next := b.UpdateActivity("s", "a1", ActivityPatch{StartDate: start, EndDate: end})

	sec := next.Sections[0]
	assert.Equal(t, "2026-05-20", sec.StartDate)
	assert.Equal(t, "2026-07-15", sec.EndDate)

	// Deleting the later activity shrinks the derived range again.
	next = next.DeleteActivity("s", "a1")
	sec = next.Sections[0]
	assert.Equal(t, "2026-05-20", sec.StartDate)
	assert.Equal(t, "2026-06-05", sec.EndDate)
}
