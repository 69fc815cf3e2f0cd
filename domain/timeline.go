package domain

// Timeline is a derived calendar range. Dates are ISO calendar-date strings
// (YYYY-MM-DD), so lexicographic comparison orders them correctly. Empty
// strings mean the bound is undefined.
type Timeline struct {
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

// SectionDates reduces activity dates to the earliest start and latest end.
// The two bounds are computed independently and may come from different
// activities. Activities without dates are skipped.
func SectionDates(activities []Activity) Timeline {
	var t Timeline
	for _, a := range activities {
		if a.StartDate != "" && (t.StartDate == "" || a.StartDate < t.StartDate) {
			t.StartDate = a.StartDate
		}
		if a.EndDate != "" && (t.EndDate == "" || a.EndDate > t.EndDate) {
			t.EndDate = a.EndDate
		}
	}
	return t
}

// Timeline reduces the derived dates of enabled sections to a project range.
func (b Budget) Timeline() Timeline {
	var t Timeline
	for _, s := range b.Sections {
		if !s.Enabled {
			continue
		}
		if s.StartDate != "" && (t.StartDate == "" || s.StartDate < t.StartDate) {
			t.StartDate = s.StartDate
		}
		if s.EndDate != "" && (t.EndDate == "" || s.EndDate > t.EndDate) {
			t.EndDate = s.EndDate
		}
	}
	return t
}

// RederiveDates recomputes every section's durable date range from its
// activities. Wholesale document writes must pass through here: the incoming
// payload may carry section dates that no longer match the activity lists.
func (b Budget) RederiveDates() Budget {
	out := b.Clone()
	for i := range out.Sections {
		out.Sections[i].rederiveDates()
	}
	return out
}

// rederiveDates refreshes the section's durable date range. Called after
// every write that touches the activity list or any activity's dates; the
// derived fields are part of the persisted shape, so stale values would leak
// into rendering.
func (s *Section) rederiveDates() {
	t := SectionDates(s.Activities)
	s.StartDate = t.StartDate
	s.EndDate = t.EndDate
}
