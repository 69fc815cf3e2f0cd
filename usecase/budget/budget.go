package budget

import (
	"context"

	"go.uber.org/zap"

	"github.com/budgez/backend/codec"
	"github.com/budgez/backend/domain"
	"github.com/budgez/backend/repository"
	"github.com/budgez/backend/usecase"
)

// UseCase orchestrates budget document reads and writes around the pure
// tree operations: fetch current, apply, re-derive, write back. Concurrent
// editors race at the store and the last write wins.
type UseCase struct {
	budgets   repository.BudgetRepository
	templates repository.TemplateRepository
	cache     repository.SummaryCache
	buffer    usecase.OperationBuffer
	ops       *usecase.OpRegistry
	logger    *zap.Logger
}

func New(
	budgets repository.BudgetRepository,
	templates repository.TemplateRepository,
	cache repository.SummaryCache,
	buffer usecase.OperationBuffer,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	uc := &UseCase{
		budgets:   budgets,
		templates: templates,
		cache:     cache,
		buffer:    buffer,
		ops:       usecase.NewOpRegistry(),
		logger:    logger,
	}
	uc.registerOps()
	return uc
}

// Operations exposes the op registry, mainly for introspection endpoints.
func (uc *UseCase) Operations() []string {
	return uc.ops.Names()
}

// CreateBudget persists a fresh budget document with one default section.
func (uc *UseCase) CreateBudget(ctx context.Context, ownerID, name string) (*domain.BudgetDocument, error) {
	doc := &domain.BudgetDocument{
		ID:      domain.NewID(),
		OwnerID: ownerID,
		Name:    name,
		Budget:  domain.NewBudget(),
	}
	if err := uc.save(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// GetBudget loads a document by id.
func (uc *UseCase) GetBudget(ctx context.Context, id string) (*domain.BudgetDocument, error) {
	return uc.budgets.GetByID(ctx, id)
}

// ListBudgets returns the documents matching the filter.
func (uc *UseCase) ListBudgets(ctx context.Context, filter repository.BudgetFilter) ([]domain.BudgetDocument, error) {
	return uc.budgets.List(ctx, filter)
}

// ReplaceBudget overwrites the stored document wholesale. Section dates are
// re-derived from the incoming activity lists; the client's section-level
// dates are never trusted.
func (uc *UseCase) ReplaceBudget(ctx context.Context, doc *domain.BudgetDocument) (*domain.BudgetDocument, error) {
	if doc == nil || doc.ID == "" {
		return nil, domain.ErrInvalidPayload
	}
	doc.Budget = doc.Budget.RederiveDates()
	if err := uc.save(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// DeleteBudget removes the document from the store. Deletion is a store
// operation, not a tree operation.
func (uc *UseCase) DeleteBudget(ctx context.Context, id string) error {
	if err := uc.budgets.Delete(ctx, id); err != nil {
		if err == domain.ErrBudgetNotFound {
			return err
		}
		doc := &domain.BudgetDocument{ID: id}
		if uc.shouldBuffer(ctx, usecase.OperationDelete, doc) {
			uc.invalidate(ctx, id)
			return nil
		}
		return err
	}
	uc.invalidate(ctx, id)
	return nil
}

// ApplyOperation runs one named tree operation against the current document
// and writes the result back.
func (uc *UseCase) ApplyOperation(ctx context.Context, budgetID, op string, args usecase.OpArgs) (*domain.BudgetDocument, error) {
	doc, err := uc.budgets.GetByID(ctx, budgetID)
	if err != nil {
		return nil, err
	}

	next, err := uc.ops.Apply(ctx, op, doc.Budget, args)
	if err != nil {
		return nil, err
	}

	doc.Budget = next
	if err := uc.save(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Summary returns the totals breakdown and project timeline, served from
// cache when possible. Cache trouble is logged and ignored.
func (uc *UseCase) Summary(ctx context.Context, budgetID string) (*repository.Summary, error) {
	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, budgetID); err == nil {
			return cached, nil
		} else if err != repository.ErrCacheMiss {
			uc.logger.Warn("summary cache read failed", zap.String("budget_id", budgetID), zap.Error(err))
		}
	}

	doc, err := uc.budgets.GetByID(ctx, budgetID)
	if err != nil {
		return nil, err
	}

	summary := repository.Summary{
		Totals:   doc.Budget.Totals(),
		Timeline: doc.Budget.Timeline(),
	}
	if uc.cache != nil {
		if err := uc.cache.Set(ctx, budgetID, summary); err != nil {
			uc.logger.Warn("summary cache write failed", zap.String("budget_id", budgetID), zap.Error(err))
		}
	}
	return &summary, nil
}

func (uc *UseCase) save(ctx context.Context, doc *domain.BudgetDocument) error {
	if err := uc.budgets.Save(ctx, doc); err != nil {
		if !uc.shouldBuffer(ctx, usecase.OperationSave, doc) {
			return err
		}
	}
	uc.invalidate(ctx, doc.ID)
	return nil
}

func (uc *UseCase) invalidate(ctx context.Context, budgetID string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx, budgetID); err != nil {
		uc.logger.Warn("summary cache invalidation failed", zap.String("budget_id", budgetID), zap.Error(err))
	}
}

func (uc *UseCase) shouldBuffer(ctx context.Context, operation string, doc *domain.BudgetDocument) bool {
	if uc.buffer == nil {
		return false
	}
	if err := uc.buffer.BufferBudget(ctx, operation, doc); err != nil {
		uc.logger.Error("failed to buffer budget operation", zap.String("operation", operation), zap.Error(err))
		return false
	}
	uc.logger.Warn("budget operation buffered", zap.String("operation", operation), zap.String("budget_id", doc.ID))
	return true
}

func (uc *UseCase) registerOps() {
	pure := func(fn func(domain.Budget, usecase.OpArgs) domain.Budget) usecase.OpFunc {
		return func(_ context.Context, b domain.Budget, args usecase.OpArgs) (domain.Budget, error) {
			return fn(b, args), nil
		}
	}

	uc.ops.Register(usecase.OpAddSection, pure(func(b domain.Budget, _ usecase.OpArgs) domain.Budget {
		return b.AddSection()
	}))
	uc.ops.Register(usecase.OpAddActivity, pure(func(b domain.Budget, a usecase.OpArgs) domain.Budget {
		return b.AddActivity(a.SectionID)
	}))
	uc.ops.Register(usecase.OpAddResource, pure(func(b domain.Budget, a usecase.OpArgs) domain.Budget {
		return b.AddResource(a.SectionID)
	}))
	uc.ops.Register(usecase.OpDeleteSection, pure(func(b domain.Budget, a usecase.OpArgs) domain.Budget {
		return b.DeleteSection(a.SectionID)
	}))
	uc.ops.Register(usecase.OpDeleteActivity, pure(func(b domain.Budget, a usecase.OpArgs) domain.Budget {
		return b.DeleteActivity(a.SectionID, a.ActivityID)
	}))
	uc.ops.Register(usecase.OpDeleteResource, pure(func(b domain.Budget, a usecase.OpArgs) domain.Budget {
		return b.DeleteResource(a.SectionID, a.ResourceID)
	}))
	uc.ops.Register(usecase.OpUpdateSection, pure(func(b domain.Budget, a usecase.OpArgs) domain.Budget {
		return b.UpdateSection(a.SectionID, a.SectionPatch())
	}))
	uc.ops.Register(usecase.OpUpdateResource, pure(func(b domain.Budget, a usecase.OpArgs) domain.Budget {
		return b.UpdateResource(a.SectionID, a.ResourceID, a.ResourcePatch())
	}))
	uc.ops.Register(usecase.OpUpdateActivity, pure(func(b domain.Budget, a usecase.OpArgs) domain.Budget {
		return b.UpdateActivity(a.SectionID, a.ActivityID, a.ActivityPatch())
	}))
	uc.ops.Register(usecase.OpSetAllocation, pure(func(b domain.Budget, a usecase.OpArgs) domain.Budget {
		if a.Quantity == nil {
			return b
		}
		return b.SetAllocation(a.SectionID, a.ActivityID, a.ResourceID, *a.Quantity)
	}))
	uc.ops.Register(usecase.OpMoveSectionUp, pure(func(b domain.Budget, a usecase.OpArgs) domain.Budget {
		return b.MoveSectionUp(a.SectionID)
	}))
	uc.ops.Register(usecase.OpMoveSectionDown, pure(func(b domain.Budget, a usecase.OpArgs) domain.Budget {
		return b.MoveSectionDown(a.SectionID)
	}))
	uc.ops.Register(usecase.OpToggleSection, pure(func(b domain.Budget, a usecase.OpArgs) domain.Budget {
		return b.ToggleSectionEnabled(a.SectionID)
	}))
	uc.ops.Register(usecase.OpDuplicateSection, pure(func(b domain.Budget, a usecase.OpArgs) domain.Budget {
		return b.DuplicateSection(a.SectionID)
	}))
	uc.ops.Register(usecase.OpImportSectionTemplate, uc.importSectionTemplate)
	uc.ops.Register(usecase.OpImportResourceTemplate, uc.importResourceTemplate)
}

func (uc *UseCase) importSectionTemplate(ctx context.Context, b domain.Budget, args usecase.OpArgs) (domain.Budget, error) {
	tpl, err := uc.fetchTemplate(ctx, args.TemplateID, domain.TemplateKindSection)
	if err != nil {
		return b, err
	}
	section, err := codec.DecodeSection(tpl.Body)
	if err != nil {
		return b, err
	}
	return b.ImportSectionTemplate(section), nil
}

func (uc *UseCase) importResourceTemplate(ctx context.Context, b domain.Budget, args usecase.OpArgs) (domain.Budget, error) {
	tpl, err := uc.fetchTemplate(ctx, args.TemplateID, domain.TemplateKindResource)
	if err != nil {
		return b, err
	}
	resource, err := codec.DecodeResource(tpl.Body)
	if err != nil {
		return b, err
	}
	return b.ImportResourceTemplate(args.SectionID, resource), nil
}

func (uc *UseCase) fetchTemplate(ctx context.Context, id, kind string) (*domain.Template, error) {
	if uc.templates == nil || id == "" {
		return nil, domain.ErrTemplateNotFound
	}
	tpl, err := uc.templates.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tpl.Kind != kind {
		return nil, domain.ErrTemplateNotFound
	}
	return tpl, nil
}
