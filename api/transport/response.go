package transport

import (
	"encoding/json"

	"github.com/budgez/backend/domain"
)

// Envelope is the standard API response wrapper used for both success and error payloads.
type Envelope struct {
	Status string      `json:"status"`
	Code   string      `json:"code,omitempty"`
	Data   interface{} `json:"data,omitempty"`
	Error  interface{} `json:"error,omitempty"`
	Meta   interface{} `json:"meta,omitempty"`
}

// NewSuccess returns a success envelope.
func NewSuccess(data interface{}, meta interface{}) Envelope {
	return Envelope{
		Status: "success",
		Data:   data,
		Meta:   meta,
	}
}

// NewError returns an error envelope with optional metadata.
func NewError(code string, err interface{}, meta interface{}) Envelope {
	return Envelope{
		Status: "error",
		Code:   code,
		Error:  err,
		Meta:   meta,
	}
}

// BudgetResponse is the read model returned for a single budget: the durable
// document plus the derived figures the editor displays next to it.
type BudgetResponse struct {
	ID        string          `json:"id"`
	OwnerID   string          `json:"owner_id,omitempty"`
	Name      string          `json:"name"`
	Document  json.RawMessage `json:"document"`
	Totals    domain.Totals   `json:"totals"`
	Timeline  domain.Timeline `json:"timeline"`
	CreatedAt string          `json:"created_at"`
	UpdatedAt string          `json:"updated_at"`
}

// BudgetListItem is the compact listing row.
type BudgetListItem struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Totals    domain.Totals `json:"totals"`
	UpdatedAt string        `json:"updated_at"`
}

// TemplateResponse mirrors a catalog entry.
type TemplateResponse struct {
	ID   string          `json:"id"`
	Kind string          `json:"kind"`
	Name string          `json:"name"`
	Body json.RawMessage `json:"body"`
}
