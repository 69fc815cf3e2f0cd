package domain

// Tree mutations are pure: the receiver is never modified, a new budget is
// returned. Callers holding older values keep seeing the state they read.
// Operations referencing ids that do not exist return the input unchanged;
// a document editor driven by a UI has no use for strict error signaling
// on stale references.

// ResourcePatch carries the fields of a resource update. Nil fields are
// left untouched.
type ResourcePatch struct {
	Name *string
	Type *ResourceType
	Rate *float64
}

// ActivityPatch carries the fields of an activity update. Nil fields are
// left untouched. Date fields use pointers so a patch can clear a date by
// supplying an empty string.
type ActivityPatch struct {
	Name        *string
	Description *string
	StartDate   *string
	EndDate     *string
}

// SectionPatch carries the fields of a section update.
type SectionPatch struct {
	Name        *string
	Description *string
}

// AddSection appends a new empty enabled section.
func (b Budget) AddSection() Budget {
	out := b.Clone()
	out.Sections = append(out.Sections, newSection())
	return out
}

// AddActivity appends an activity with no allocations to the section.
func (b Budget) AddActivity(sectionID string) Budget {
	i := b.sectionIndex(sectionID)
	if i < 0 {
		return b
	}
	out := b.Clone()
	out.Sections[i].Activities = append(out.Sections[i].Activities, newActivity())
	return out
}

// AddResource appends an hourly resource with rate zero to the section.
func (b Budget) AddResource(sectionID string) Budget {
	i := b.sectionIndex(sectionID)
	if i < 0 {
		return b
	}
	out := b.Clone()
	out.Sections[i].Resources = append(out.Sections[i].Resources, newResource())
	return out
}

// DeleteSection removes the section. Nothing outside the section refers to
// its contents, so no cascade is needed.
func (b Budget) DeleteSection(sectionID string) Budget {
	i := b.sectionIndex(sectionID)
	if i < 0 {
		return b
	}
	out := b.Clone()
	out.Sections = append(out.Sections[:i], out.Sections[i+1:]...)
	return out
}

// DeleteActivity removes the activity and re-derives the section dates.
func (b Budget) DeleteActivity(sectionID, activityID string) Budget {
	i := b.sectionIndex(sectionID)
	if i < 0 {
		return b
	}
	j := b.Sections[i].activityIndex(activityID)
	if j < 0 {
		return b
	}
	out := b.Clone()
	sec := &out.Sections[i]
	sec.Activities = append(sec.Activities[:j], sec.Activities[j+1:]...)
	sec.rederiveDates()
	return out
}

// DeleteResource removes the resource and strips its key from every sibling
// activity's allocation map. The cascade is mandatory: a surviving key would
// dangle against a resource that no longer exists.
func (b Budget) DeleteResource(sectionID, resourceID string) Budget {
	i := b.sectionIndex(sectionID)
	if i < 0 {
		return b
	}
	j := b.Sections[i].resourceIndex(resourceID)
	if j < 0 {
		return b
	}
	out := b.Clone()
	sec := &out.Sections[i]
	sec.Resources = append(sec.Resources[:j], sec.Resources[j+1:]...)
	for k := range sec.Activities {
		delete(sec.Activities[k].Allocations, resourceID)
	}
	return out
}

// UpdateSection merge-patches the section's own fields.
func (b Budget) UpdateSection(sectionID string, patch SectionPatch) Budget {
	i := b.sectionIndex(sectionID)
	if i < 0 {
		return b
	}
	out := b.Clone()
	sec := &out.Sections[i]
	if patch.Name != nil {
		sec.Name = *patch.Name
	}
	if patch.Description != nil {
		sec.Description = *patch.Description
	}
	return out
}

// UpdateResource merge-patches the resource.
func (b Budget) UpdateResource(sectionID, resourceID string, patch ResourcePatch) Budget {
	i := b.sectionIndex(sectionID)
	if i < 0 {
		return b
	}
	j := b.Sections[i].resourceIndex(resourceID)
	if j < 0 {
		return b
	}
	out := b.Clone()
	res := &out.Sections[i].Resources[j]
	if patch.Name != nil {
		res.Name = *patch.Name
	}
	if patch.Type != nil {
		res.Type = *patch.Type
	}
	if patch.Rate != nil {
		res.Rate = *patch.Rate
	}
	return out
}

// UpdateActivity merge-patches the activity and re-derives the section
// dates, since the patch may move either date bound.
func (b Budget) UpdateActivity(sectionID, activityID string, patch ActivityPatch) Budget {
	i := b.sectionIndex(sectionID)
	if i < 0 {
		return b
	}
	j := b.Sections[i].activityIndex(activityID)
	if j < 0 {
		return b
	}
	out := b.Clone()
	sec := &out.Sections[i]
	act := &sec.Activities[j]
	if patch.Name != nil {
		act.Name = *patch.Name
	}
	if patch.Description != nil {
		act.Description = *patch.Description
	}
	if patch.StartDate != nil {
		act.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		act.EndDate = *patch.EndDate
	}
	sec.rederiveDates()
	return out
}

// SetAllocation merges a single resource quantity into the activity's
// allocation map, leaving the other entries alone.
func (b Budget) SetAllocation(sectionID, activityID, resourceID string, quantity float64) Budget {
	i := b.sectionIndex(sectionID)
	if i < 0 {
		return b
	}
	j := b.Sections[i].activityIndex(activityID)
	if j < 0 {
		return b
	}
	out := b.Clone()
	act := &out.Sections[i].Activities[j]
	if act.Allocations == nil {
		act.Allocations = map[string]float64{}
	}
	act.Allocations[resourceID] = quantity
	return out
}

// MoveSectionUp swaps the section with its predecessor. The first section
// stays put.
func (b Budget) MoveSectionUp(sectionID string) Budget {
	i := b.sectionIndex(sectionID)
	if i <= 0 {
		return b
	}
	out := b.Clone()
	out.Sections[i-1], out.Sections[i] = out.Sections[i], out.Sections[i-1]
	return out
}

// MoveSectionDown swaps the section with its successor. The last section
// stays put.
func (b Budget) MoveSectionDown(sectionID string) Budget {
	i := b.sectionIndex(sectionID)
	if i < 0 || i >= len(b.Sections)-1 {
		return b
	}
	out := b.Clone()
	out.Sections[i], out.Sections[i+1] = out.Sections[i+1], out.Sections[i]
	return out
}

// ToggleSectionEnabled flips the section's contribution to totals without
// touching its contents.
func (b Budget) ToggleSectionEnabled(sectionID string) Budget {
	i := b.sectionIndex(sectionID)
	if i < 0 {
		return b
	}
	out := b.Clone()
	out.Sections[i].Enabled = !out.Sections[i].Enabled
	return out
}

// DuplicateSection deep-copies the section with every id regenerated and
// inserts the copy right after the source. Allocation maps are re-keyed
// through the old-to-new resource id table so the copy references its own
// resources, never the source's. Names and descriptions carry over verbatim.
func (b Budget) DuplicateSection(sectionID string) Budget {
	i := b.sectionIndex(sectionID)
	if i < 0 {
		return b
	}
	out := b.Clone()
	dup := remapSection(out.Sections[i].Clone())

	out.Sections = append(out.Sections, Section{})
	copy(out.Sections[i+2:], out.Sections[i+1:])
	out.Sections[i+1] = dup
	return out
}

// ImportSectionTemplate appends an externally sourced section shape with all
// ids regenerated and allocations re-keyed, exactly like duplication. The
// enabled flag carries over from the fragment; the codec owns the
// default-to-enabled for fragments that omit it. Resources with no type
// default to hourly.
func (b Budget) ImportSectionTemplate(tpl Section) Budget {
	out := b.Clone()
	sec := remapSection(tpl.Clone())
	for i := range sec.Resources {
		if sec.Resources[i].Type == "" {
			sec.Resources[i].Type = ResourceHourly
		}
	}
	sec.rederiveDates()
	out.Sections = append(out.Sections, sec)
	return out
}

// ImportResourceTemplate appends an externally sourced resource shape to the
// section with a fresh id, defaulting type to hourly when absent.
func (b Budget) ImportResourceTemplate(sectionID string, tpl Resource) Budget {
	i := b.sectionIndex(sectionID)
	if i < 0 {
		return b
	}
	out := b.Clone()
	res := tpl
	res.ID = NewID()
	if res.Type == "" {
		res.Type = ResourceHourly
	}
	out.Sections[i].Resources = append(out.Sections[i].Resources, res)
	return out
}

// remapSection regenerates every id in an already-cloned section and re-keys
// activity allocations through the resource id correspondence. Allocation
// keys with no match in the section's own resource list are dropped.
func remapSection(sec Section) Section {
	sec.ID = NewID()

	idMap := make(map[string]string, len(sec.Resources))
	for i := range sec.Resources {
		fresh := NewID()
		idMap[sec.Resources[i].ID] = fresh
		sec.Resources[i].ID = fresh
	}

	for i := range sec.Activities {
		act := &sec.Activities[i]
		act.ID = NewID()
		remapped := make(map[string]float64, len(act.Allocations))
		for oldID, qty := range act.Allocations {
			if fresh, ok := idMap[oldID]; ok {
				remapped[fresh] = qty
			}
		}
		act.Allocations = remapped
	}
	return sec
}
