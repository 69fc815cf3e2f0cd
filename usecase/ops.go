package usecase

import (
	"context"
	"sync"

	"github.com/budgez/backend/domain"
)

// Budget operation names accepted by the ops endpoint.
const (
	OpAddSection             = "add_section"
	OpAddActivity            = "add_activity"
	OpAddResource            = "add_resource"
	OpDeleteSection          = "delete_section"
	OpDeleteActivity         = "delete_activity"
	OpDeleteResource         = "delete_resource"
	OpUpdateSection          = "update_section"
	OpUpdateResource         = "update_resource"
	OpUpdateActivity         = "update_activity"
	OpSetAllocation          = "set_allocation"
	OpMoveSectionUp          = "move_section_up"
	OpMoveSectionDown        = "move_section_down"
	OpToggleSection          = "toggle_section"
	OpDuplicateSection       = "duplicate_section"
	OpImportSectionTemplate  = "import_section_template"
	OpImportResourceTemplate = "import_resource_template"
)

// OpArgs carries the parameters of a single tree operation. Which fields are
// read depends on the operation; pointer fields double as merge-patch values
// where nil means "leave unchanged".
type OpArgs struct {
	SectionID  string
	ActivityID string
	ResourceID string
	TemplateID string

	Quantity *float64

	Name        *string
	Description *string
	StartDate   *string
	EndDate     *string

	ResourceType *string
	Rate         *float64
}

// SectionPatch assembles the domain patch from the args.
func (a OpArgs) SectionPatch() domain.SectionPatch {
	return domain.SectionPatch{Name: a.Name, Description: a.Description}
}

// ResourcePatch assembles the domain patch from the args.
func (a OpArgs) ResourcePatch() domain.ResourcePatch {
	var t *domain.ResourceType
	if a.ResourceType != nil {
		rt := domain.ResourceType(*a.ResourceType)
		t = &rt
	}
	return domain.ResourcePatch{Name: a.Name, Type: t, Rate: a.Rate}
}

// ActivityPatch assembles the domain patch from the args.
func (a OpArgs) ActivityPatch() domain.ActivityPatch {
	return domain.ActivityPatch{
		Name:        a.Name,
		Description: a.Description,
		StartDate:   a.StartDate,
		EndDate:     a.EndDate,
	}
}

// OpFunc applies one named operation to a budget. The budget value is pure:
// implementations return a new tree and never touch the input. The context
// exists for ops that resolve external data (template imports); the tree
// transforms themselves never block.
type OpFunc func(ctx context.Context, b domain.Budget, args OpArgs) (domain.Budget, error)

// OpRegistry maps operation names to their implementations.
type OpRegistry struct {
	mu  sync.RWMutex
	ops map[string]OpFunc
}

func NewOpRegistry() *OpRegistry {
	return &OpRegistry{ops: make(map[string]OpFunc)}
}

func (r *OpRegistry) Register(name string, fn OpFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops[name] = fn
}

// Apply runs the named operation. Unknown names are an error; unknown ids
// inside a known operation are not, they leave the tree as-is.
func (r *OpRegistry) Apply(ctx context.Context, name string, b domain.Budget, args OpArgs) (domain.Budget, error) {
	r.mu.RLock()
	fn, ok := r.ops[name]
	r.mu.RUnlock()
	if !ok {
		return b, domain.ErrUnknownOperation
	}
	return fn(ctx, b, args)
}

// Names returns the registered operation names.
func (r *OpRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.ops))
	for name := range r.ops {
		names = append(names, name)
	}
	return names
}
