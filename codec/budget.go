// Package codec translates the in-memory budget tree to and from the durable
// JSON document exchanged with the persistence layer. Field names follow the
// stored shape (snake_case envelope, camelCase entity fields), UI state is
// stripped on encode and reset to defaults on decode. Durable fields round-trip
// losslessly.
package codec

import (
	"encoding/json"

	"github.com/budgez/backend/domain"
)

type budgetDoc struct {
	Sections         []sectionDoc `json:"section"`
	CommercialMargin float64      `json:"commercial_margin"`
	MarginType       string       `json:"margin_type"`
	Discount         float64      `json:"discount"`
	DiscountType     string       `json:"discount_type"`
}

type sectionDoc struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// Pointer so an absent field is distinguishable from an explicit false:
	// stored budgets always carry the flag, template fragments may omit it
	// and then default to enabled.
	Enabled     *bool         `json:"enabled"`
	Description string        `json:"description,omitempty"`
	Resources   []resourceDoc `json:"resources"`
	Activities  []activityDoc `json:"activities"`
	StartDate   string        `json:"startDate,omitempty"`
	EndDate     string        `json:"endDate,omitempty"`
}

type resourceDoc struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Type string  `json:"type"`
	Rate float64 `json:"rate"`
}

type activityDoc struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Allocations map[string]float64 `json:"resourceAllocations"`
	StartDate   string             `json:"startDate,omitempty"`
	EndDate     string             `json:"endDate,omitempty"`
	Description string             `json:"description,omitempty"`
}

// EncodeBudget renders the budget as its durable document.
func EncodeBudget(b domain.Budget) ([]byte, error) {
	return json.Marshal(budgetToDoc(b))
}

// DecodeBudget reconstructs a budget from its durable document. UI expansion
// flags are not stored and come back false. Missing margin and discount types
// default to fixed amounts.
func DecodeBudget(data []byte) (domain.Budget, error) {
	var doc budgetDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.Budget{}, domain.WrapError(domain.ErrCodeInvalid, "malformed budget document", err)
	}
	return docToBudget(doc), nil
}

// EncodeSection renders a single section fragment, as stored in the section
// template catalog.
func EncodeSection(s domain.Section) ([]byte, error) {
	return json.Marshal(sectionToDoc(s))
}

// DecodeSection parses a section fragment, tolerating missing lists. An
// absent enabled flag defaults to true; an explicit false is kept.
func DecodeSection(data []byte) (domain.Section, error) {
	var doc sectionDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.Section{}, domain.WrapError(domain.ErrCodeInvalid, "malformed section fragment", err)
	}
	return docToSection(doc), nil
}

// EncodeResource renders a single resource fragment.
func EncodeResource(r domain.Resource) ([]byte, error) {
	return json.Marshal(resourceDoc{ID: r.ID, Name: r.Name, Type: string(r.Type), Rate: r.Rate})
}

// DecodeResource parses a resource fragment. A missing type is left empty;
// the import operation owns the hourly default.
func DecodeResource(data []byte) (domain.Resource, error) {
	var doc resourceDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.Resource{}, domain.WrapError(domain.ErrCodeInvalid, "malformed resource fragment", err)
	}
	return domain.Resource{ID: doc.ID, Name: doc.Name, Type: domain.ResourceType(doc.Type), Rate: doc.Rate}, nil
}

func budgetToDoc(b domain.Budget) budgetDoc {
	doc := budgetDoc{
		Sections:         make([]sectionDoc, len(b.Sections)),
		CommercialMargin: b.CommercialMargin,
		MarginType:       string(b.MarginType),
		Discount:         b.Discount,
		DiscountType:     string(b.DiscountType),
	}
	for i, s := range b.Sections {
		doc.Sections[i] = sectionToDoc(s)
	}
	return doc
}

func sectionToDoc(s domain.Section) sectionDoc {
	enabled := s.Enabled
	doc := sectionDoc{
		ID:          s.ID,
		Name:        s.Name,
		Enabled:     &enabled,
		Description: s.Description,
		Resources:   make([]resourceDoc, len(s.Resources)),
		Activities:  make([]activityDoc, len(s.Activities)),
		StartDate:   s.StartDate,
		EndDate:     s.EndDate,
	}
	for i, r := range s.Resources {
		doc.Resources[i] = resourceDoc{ID: r.ID, Name: r.Name, Type: string(r.Type), Rate: r.Rate}
	}
	for i, a := range s.Activities {
		doc.Activities[i] = activityDoc{
			ID:          a.ID,
			Name:        a.Name,
			Allocations: a.Allocations,
			StartDate:   a.StartDate,
			EndDate:     a.EndDate,
			Description: a.Description,
		}
	}
	return doc
}

func docToBudget(doc budgetDoc) domain.Budget {
	b := domain.Budget{
		Sections:         make([]domain.Section, len(doc.Sections)),
		CommercialMargin: doc.CommercialMargin,
		MarginType:       domain.AmountType(doc.MarginType),
		Discount:         doc.Discount,
		DiscountType:     domain.AmountType(doc.DiscountType),
	}
	if b.MarginType == "" {
		b.MarginType = domain.AmountFixed
	}
	if b.DiscountType == "" {
		b.DiscountType = domain.AmountFixed
	}
	for i, s := range doc.Sections {
		b.Sections[i] = docToSection(s)
	}
	return b
}

func docToSection(doc sectionDoc) domain.Section {
	enabled := true
	if doc.Enabled != nil {
		enabled = *doc.Enabled
	}
	s := domain.Section{
		ID:          doc.ID,
		Name:        doc.Name,
		Enabled:     enabled,
		Description: doc.Description,
		Resources:   make([]domain.Resource, len(doc.Resources)),
		Activities:  make([]domain.Activity, len(doc.Activities)),
		StartDate:   doc.StartDate,
		EndDate:     doc.EndDate,
	}
	for i, r := range doc.Resources {
		s.Resources[i] = domain.Resource{ID: r.ID, Name: r.Name, Type: domain.ResourceType(r.Type), Rate: r.Rate}
	}
	for i, a := range doc.Activities {
		allocations := a.Allocations
		if allocations == nil {
			allocations = map[string]float64{}
		}
		s.Activities[i] = domain.Activity{
			ID:          a.ID,
			Name:        a.Name,
			Allocations: allocations,
			StartDate:   a.StartDate,
			EndDate:     a.EndDate,
			Description: a.Description,
		}
	}
	return s
}
