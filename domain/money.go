package domain

// Totals is the five-stage cost breakdown displayed by the quote UI. Every
// intermediate stage is exposed, not just the final amount. No clamping is
// applied anywhere: a discount larger than the margined total drives Final
// negative, and that is accepted input rather than an error.
type Totals struct {
	Base           float64 `json:"base_total"`
	MarginAmount   float64 `json:"margin_amount"`
	WithMargin     float64 `json:"total_with_margin"`
	DiscountAmount float64 `json:"discount_amount"`
	Final          float64 `json:"final_total"`
}

// ActivityCost sums the activity's allocations priced against the given
// resources. Fixed resources contribute the raw allocation value; hourly and
// quantity resources contribute allocation times rate. An allocation whose
// resource is missing contributes zero; dangling keys should not survive a
// resource deletion, this is a transient-state fallback only.
func ActivityCost(a Activity, resources []Resource) float64 {
	if len(a.Allocations) == 0 {
		return 0
	}
	var total float64
	for _, r := range resources {
		alloc, ok := a.Allocations[r.ID]
		if !ok {
			continue
		}
		if r.Type == ResourceFixed {
			total += alloc
			continue
		}
		total += alloc * r.Rate
	}
	return total
}

// Total returns the sum of all activity costs, or zero when the section is
// disabled.
func (s Section) Total() float64 {
	if !s.Enabled {
		return 0
	}
	var total float64
	for _, a := range s.Activities {
		total += ActivityCost(a, s.Resources)
	}
	return total
}

// Totals computes the full breakdown. Margin and discount are applied
// unconditionally, even over a zero base from disabled sections.
func (b Budget) Totals() Totals {
	var t Totals
	for _, s := range b.Sections {
		t.Base += s.Total()
	}

	t.MarginAmount = b.CommercialMargin
	if b.MarginType == AmountPercentage {
		t.MarginAmount = t.Base * b.CommercialMargin / 100
	}
	t.WithMargin = t.Base + t.MarginAmount

	t.DiscountAmount = b.Discount
	if b.DiscountType == AmountPercentage {
		t.DiscountAmount = t.WithMargin * b.Discount / 100
	}
	t.Final = t.WithMargin - t.DiscountAmount

	return t
}
