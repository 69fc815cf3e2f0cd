package transport

import "encoding/json"

type BudgetCreateRequest struct {
	Name string `json:"name"`
}

// BudgetReplaceRequest overwrites the stored document wholesale. Document is
// the durable budget encoding.
type BudgetReplaceRequest struct {
	Name     string          `json:"name"`
	Document json.RawMessage `json:"document"`
}

// OperationRequest names a tree operation and supplies its parameters.
// Pointer fields are merge-patch values: absent means untouched.
type OperationRequest struct {
	Op string `json:"op"`

	SectionID  string `json:"section_id,omitempty"`
	ActivityID string `json:"activity_id,omitempty"`
	ResourceID string `json:"resource_id,omitempty"`
	TemplateID string `json:"template_id,omitempty"`

	Quantity *float64 `json:"quantity,omitempty"`

	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	StartDate   *string `json:"start_date,omitempty"`
	EndDate     *string `json:"end_date,omitempty"`

	ResourceType *string  `json:"resource_type,omitempty"`
	Rate         *float64 `json:"rate,omitempty"`
}
