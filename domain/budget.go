package domain

import (
	"time"

	"github.com/google/uuid"
)

// ResourceType classifies how a resource allocation is priced.
type ResourceType string

const (
	ResourceHourly   ResourceType = "hourly"
	ResourceQuantity ResourceType = "quantity"
	ResourceFixed    ResourceType = "fixed"
)

// AmountType selects between an absolute amount and a percentage.
type AmountType string

const (
	AmountFixed      AmountType = "fixed"
	AmountPercentage AmountType = "percentage"
)

// Resource is a billable unit owned by a single section. Rate carries no
// meaning for fixed-cost resources: the allocation value is the cost itself.
type Resource struct {
	ID   string       `json:"id"`
	Name string       `json:"name"`
	Type ResourceType `json:"type"`
	Rate float64      `json:"rate"`
}

// Activity is a line item consuming resources of its section.
// Allocations maps a resource id to a quantity: hours for hourly resources,
// unit count for quantity resources, a direct cost for fixed resources.
// Every key must reference a resource present in the owning section.
type Activity struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Allocations map[string]float64 `json:"allocations"`
	StartDate   string             `json:"start_date,omitempty"`
	EndDate     string             `json:"end_date,omitempty"`
	Description string             `json:"description,omitempty"`
}

// Section groups resources and activities. Disabled sections contribute
// nothing to totals but keep their data. StartDate/EndDate are derived from
// the contained activities on every structural write, never set directly.
type Section struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Enabled     bool       `json:"enabled"`
	Description string     `json:"description,omitempty"`
	Resources   []Resource `json:"resources"`
	Activities  []Activity `json:"activities"`
	StartDate   string     `json:"start_date,omitempty"`
	EndDate     string     `json:"end_date,omitempty"`

	// UI state, not part of the durable document.
	IsExpanded          bool `json:"is_expanded"`
	IsResourcesExpanded bool `json:"is_resources_expanded"`
}

// Budget is the aggregate root of the quote calculator: an ordered list of
// sections plus the commercial margin and discount applied on top.
type Budget struct {
	Sections         []Section  `json:"sections"`
	CommercialMargin float64    `json:"commercial_margin"`
	MarginType       AmountType `json:"margin_type"`
	Discount         float64    `json:"discount"`
	DiscountType     AmountType `json:"discount_type"`
}

// BudgetDocument wraps a budget with its persistence identity. The budget
// body is stored as a single JSON payload; writes are last-write-wins.
type BudgetDocument struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	Budget    Budget    `json:"budget"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (d *BudgetDocument) Touch() {
	if d == nil {
		return
	}
	d.UpdatedAt = time.Now()
	if d.CreatedAt.IsZero() {
		d.CreatedAt = d.UpdatedAt
	}
}

// NewID returns a fresh opaque identifier. Uniqueness is statistical; there
// is no registry and no collision check.
func NewID() string {
	return uuid.NewString()
}

// NewBudget returns a budget with a single empty enabled section and
// fixed-amount margin and discount of zero.
func NewBudget() Budget {
	return Budget{
		Sections:     []Section{newSection()},
		MarginType:   AmountFixed,
		DiscountType: AmountFixed,
	}
}

func newSection() Section {
	return Section{
		ID:         NewID(),
		Enabled:    true,
		IsExpanded: true,
		Resources:  []Resource{},
		Activities: []Activity{},
	}
}

func newResource() Resource {
	return Resource{
		ID:   NewID(),
		Type: ResourceHourly,
		Rate: 0,
	}
}

func newActivity() Activity {
	return Activity{
		ID:          NewID(),
		Allocations: map[string]float64{},
	}
}

// Clone returns a deep copy sharing no mutable state with the receiver.
func (b Budget) Clone() Budget {
	out := b
	out.Sections = make([]Section, len(b.Sections))
	for i, s := range b.Sections {
		out.Sections[i] = s.Clone()
	}
	return out
}

// Clone returns a deep copy of the section.
func (s Section) Clone() Section {
	out := s
	out.Resources = make([]Resource, len(s.Resources))
	copy(out.Resources, s.Resources)
	out.Activities = make([]Activity, len(s.Activities))
	for i, a := range s.Activities {
		out.Activities[i] = a.Clone()
	}
	return out
}

// Clone returns a deep copy of the activity.
func (a Activity) Clone() Activity {
	out := a
	out.Allocations = make(map[string]float64, len(a.Allocations))
	for k, v := range a.Allocations {
		out.Allocations[k] = v
	}
	return out
}

func (b Budget) sectionIndex(id string) int {
	for i := range b.Sections {
		if b.Sections[i].ID == id {
			return i
		}
	}
	return -1
}

func (s Section) activityIndex(id string) int {
	for i := range s.Activities {
		if s.Activities[i].ID == id {
			return i
		}
	}
	return -1
}

func (s Section) resourceIndex(id string) int {
	for i := range s.Resources {
		if s.Resources[i].ID == id {
			return i
		}
	}
	return -1
}
