package codec

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budgez/backend/domain"
)

const storedDocument = `{
	"section": [
		{
			"id": "sec-1",
			"name": "Development",
			"enabled": true,
			"description": "core build",
			"resources": [
				{"id": "res-1", "name": "Engineer", "type": "hourly", "rate": 100},
				{"id": "res-2", "name": "Hosting", "type": "fixed", "rate": 0}
			],
			"activities": [
				{
					"id": "act-1",
					"name": "Build",
					"resourceAllocations": {"res-1": 10, "res-2": 300},
					"startDate": "2026-03-01",
					"endDate": "2026-03-20",
					"description": "sprint one"
				}
			],
			"startDate": "2026-03-01",
			"endDate": "2026-03-20"
		}
	],
	"commercial_margin": 10,
	"margin_type": "percentage",
	"discount": 5,
	"discount_type": "fixed"
}`

func TestDecodeBudget_StoredShape(t *testing.T) {
	b, err := DecodeBudget([]byte(storedDocument))
	require.NoError(t, err)

	assert.Equal(t, 10.0, b.CommercialMargin)
	assert.Equal(t, domain.AmountPercentage, b.MarginType)
	assert.Equal(t, 5.0, b.Discount)
	assert.Equal(t, domain.AmountFixed, b.DiscountType)

	require.Len(t, b.Sections, 1)
	sec := b.Sections[0]
	assert.Equal(t, "sec-1", sec.ID)
	assert.True(t, sec.Enabled)
	assert.Equal(t, "core build", sec.Description)
	assert.Equal(t, "2026-03-01", sec.StartDate)

	require.Len(t, sec.Activities, 1)
	act := sec.Activities[0]
	assert.Equal(t, map[string]float64{"res-1": 10, "res-2": 300}, act.Allocations)
	assert.Equal(t, "2026-03-01", act.StartDate)
	assert.Equal(t, "2026-03-20", act.EndDate)

	// UI expansion state is never stored; it always comes back collapsed.
	assert.False(t, sec.IsExpanded)
	assert.False(t, sec.IsResourcesExpanded)
}

func TestBudget_RoundTripsDurableFields(t *testing.T) {
	b, err := DecodeBudget([]byte(storedDocument))
	require.NoError(t, err)

	encoded, err := EncodeBudget(b)
	require.NoError(t, err)

	assert.JSONEq(t, storedDocument, string(encoded))
}

func TestEncodeBudget_StripsUIState(t *testing.T) {
	b := domain.NewBudget()
	b.Sections[0].IsExpanded = true
	b.Sections[0].IsResourcesExpanded = true

	encoded, err := EncodeBudget(b)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(encoded, &raw))
	sections, ok := raw["section"].([]interface{})
	require.True(t, ok)
	section, ok := sections[0].(map[string]interface{})
	require.True(t, ok)

	assert.NotContains(t, section, "isExpanded")
	assert.NotContains(t, section, "isResourcesExpanded")
	assert.Contains(t, raw, "commercial_margin")
	assert.Contains(t, raw, "margin_type")
	assert.Contains(t, raw, "discount_type")
}

func TestDecodeBudget_Defaults(t *testing.T) {
	b, err := DecodeBudget([]byte(`{"section": [{"id": "s", "name": "", "enabled": true, "resources": [], "activities": [{"id": "a", "name": ""}]}]}`))
	require.NoError(t, err)

	assert.Equal(t, domain.AmountFixed, b.MarginType)
	assert.Equal(t, domain.AmountFixed, b.DiscountType)
	require.Len(t, b.Sections, 1)
	require.Len(t, b.Sections[0].Activities, 1)
	assert.NotNil(t, b.Sections[0].Activities[0].Allocations)
}

func TestDecodeBudget_Malformed(t *testing.T) {
	_, err := DecodeBudget([]byte(`{"section": "not-a-list"}`))
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestSectionFragment_RoundTrip(t *testing.T) {
	sec := domain.Section{
		ID:      "tpl-sec",
		Name:    "QA phase",
		Enabled: true,
		Resources: []domain.Resource{
			{ID: "tpl-res", Name: "Tester", Type: domain.ResourceHourly, Rate: 80},
		},
		Activities: []domain.Activity{
			{ID: "tpl-act", Name: "Regression", Allocations: map[string]float64{"tpl-res": 8}},
		},
	}

	encoded, err := EncodeSection(sec)
	require.NoError(t, err)

	decoded, err := DecodeSection(encoded)
	require.NoError(t, err)
	assert.Equal(t, sec, decoded)
}

func TestSectionFragment_AbsentEnabledDefaultsTrue(t *testing.T) {
	decoded, err := DecodeSection([]byte(`{"id": "s", "name": "QA phase", "resources": [], "activities": []}`))
	require.NoError(t, err)
	assert.True(t, decoded.Enabled)
}

func TestSectionFragment_ExplicitDisabledKept(t *testing.T) {
	decoded, err := DecodeSection([]byte(`{"id": "s", "name": "Optional extras", "enabled": false, "resources": [], "activities": []}`))
	require.NoError(t, err)
	assert.False(t, decoded.Enabled)
}

func TestResourceFragment_MissingTypeStaysEmpty(t *testing.T) {
	decoded, err := DecodeResource([]byte(`{"id": "r", "name": "Copywriter", "rate": 60}`))
	require.NoError(t, err)
	assert.Equal(t, domain.ResourceType(""), decoded.Type)
	assert.Equal(t, 60.0, decoded.Rate)
}
