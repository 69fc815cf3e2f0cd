package domain

import (
	"encoding/json"
	"time"
)

// Template kinds served by the catalog.
const (
	TemplateKindSection  = "section"
	TemplateKindResource = "resource"
)

// Template is a reusable catalog entry. Body holds a section or resource
// fragment in the durable document encoding; it is fed verbatim into the
// import operations, which regenerate every id on the way in.
type Template struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	Name      string          `json:"name"`
	Body      json.RawMessage `json:"body"`
	CreatedAt time.Time       `json:"created_at"`
}
