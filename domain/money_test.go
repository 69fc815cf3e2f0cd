package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSection() Section {
	return Section{
		ID:      "sec-1",
		Name:    "Development",
		Enabled: true,
		Resources: []Resource{
			{ID: "res-hourly", Name: "Engineer", Type: ResourceHourly, Rate: 100},
			{ID: "res-qty", Name: "Licenses", Type: ResourceQuantity, Rate: 25},
			{ID: "res-fixed", Name: "Hosting", Type: ResourceFixed, Rate: 999},
		},
		Activities: []Activity{
			{
				ID:   "act-1",
				Name: "Build",
				Allocations: map[string]float64{
					"res-hourly": 10,
					"res-qty":    4,
					"res-fixed":  300,
				},
			},
		},
	}
}

func TestActivityCost_EmptyAllocations(t *testing.T) {
	act := Activity{ID: "a", Allocations: map[string]float64{}}
	assert.Zero(t, ActivityCost(act, testSection().Resources))

	act.Allocations = nil
	assert.Zero(t, ActivityCost(act, testSection().Resources))
}

func TestActivityCost_MixedResourceTypes(t *testing.T) {
	sec := testSection()
	// 10h * 100 + 4 * 25 + 300 flat; the fixed resource's rate is ignored.
	assert.Equal(t, 1400.0, ActivityCost(sec.Activities[0], sec.Resources))
}

func TestActivityCost_FixedUsesRawAllocation(t *testing.T) {
	resources := []Resource{{ID: "r", Type: ResourceFixed, Rate: 12345}}
	act := Activity{Allocations: map[string]float64{"r": 250}}
	assert.Equal(t, 250.0, ActivityCost(act, resources))
}

func TestActivityCost_MissingResourceContributesZero(t *testing.T) {
	resources := []Resource{{ID: "r1", Type: ResourceHourly, Rate: 50}}
	act := Activity{Allocations: map[string]float64{"r1": 2, "ghost": 100}}
	assert.Equal(t, 100.0, ActivityCost(act, resources))
}

func TestSectionTotal_DisabledIsZero(t *testing.T) {
	sec := testSection()
	require.NotZero(t, sec.Total())

	sec.Enabled = false
	assert.Zero(t, sec.Total())
}

func TestTotals_PercentageMarginFixedDiscount(t *testing.T) {
	b := Budget{
		Sections: []Section{{
			ID:      "s",
			Enabled: true,
			Resources: []Resource{
				{ID: "r", Type: ResourceHourly, Rate: 100},
			},
			Activities: []Activity{
				{ID: "a", Allocations: map[string]float64{"r": 1}},
			},
		}},
		CommercialMargin: 10,
		MarginType:       AmountPercentage,
		Discount:         5,
		DiscountType:     AmountFixed,
	}

	totals := b.Totals()
	assert.Equal(t, 100.0, totals.Base)
	assert.Equal(t, 10.0, totals.MarginAmount)
	assert.Equal(t, 110.0, totals.WithMargin)
	assert.Equal(t, 5.0, totals.DiscountAmount)
	assert.Equal(t, 105.0, totals.Final)
}

func TestTotals_DisabledSectionStillAppliesDiscount(t *testing.T) {
	b := Budget{
		Sections: []Section{{
			ID:      "s",
			Enabled: false,
			Resources: []Resource{
				{ID: "r", Type: ResourceHourly, Rate: 100},
			},
			Activities: []Activity{
				{ID: "a", Allocations: map[string]float64{"r": 1}},
			},
		}},
		CommercialMargin: 10,
		MarginType:       AmountPercentage,
		Discount:         5,
		DiscountType:     AmountFixed,
	}

	// Margin and discount apply unconditionally over the zero base, which
	// can legitimately drive the final total negative.
	totals := b.Totals()
	assert.Zero(t, totals.Base)
	assert.Zero(t, totals.MarginAmount)
	assert.Equal(t, 5.0, totals.DiscountAmount)
	assert.Equal(t, -5.0, totals.Final)
}

func TestTotals_PercentageDiscountAppliesToMarginedTotal(t *testing.T) {
	b := Budget{
		Sections: []Section{{
			ID:        "s",
			Enabled:   true,
			Resources: []Resource{{ID: "r", Type: ResourceFixed}},
			Activities: []Activity{
				{ID: "a", Allocations: map[string]float64{"r": 200}},
			},
		}},
		CommercialMargin: 50,
		MarginType:       AmountFixed,
		Discount:         10,
		DiscountType:     AmountPercentage,
	}

	totals := b.Totals()
	assert.Equal(t, 200.0, totals.Base)
	assert.Equal(t, 250.0, totals.WithMargin)
	assert.Equal(t, 25.0, totals.DiscountAmount)
	assert.Equal(t, 225.0, totals.Final)
}

func TestTotals_SectionOrderDoesNotMatter(t *testing.T) {
	first := testSection()
	second := testSection()
	second.ID = "sec-2"
	second.Activities[0].Allocations["res-hourly"] = 3

	b := Budget{Sections: []Section{first, second}, MarginType: AmountFixed, DiscountType: AmountFixed}
	shuffled := Budget{Sections: []Section{second, first}, MarginType: AmountFixed, DiscountType: AmountFixed}

	assert.Equal(t, b.Totals().Base, shuffled.Totals().Base)
	assert.Equal(t, b.Totals(), shuffled.Totals())
}
