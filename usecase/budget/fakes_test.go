package budget_test

import (
	"context"
	"sync"

	"github.com/budgez/backend/domain"
	"github.com/budgez/backend/repository"
)

// fakeBudgetRepo is an in-memory BudgetRepository for unit tests. failSaves
// simulates an unreachable primary store.
type fakeBudgetRepo struct {
	mu        sync.Mutex
	docs      map[string]domain.BudgetDocument
	failSaves bool
	saves     int
}

func newFakeBudgetRepo() *fakeBudgetRepo {
	return &fakeBudgetRepo{docs: map[string]domain.BudgetDocument{}}
}

func (f *fakeBudgetRepo) GetByID(_ context.Context, id string) (*domain.BudgetDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[id]
	if !ok {
		return nil, domain.ErrBudgetNotFound
	}
	doc.Budget = doc.Budget.Clone()
	return &doc, nil
}

func (f *fakeBudgetRepo) List(_ context.Context, filter repository.BudgetFilter) ([]domain.BudgetDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.BudgetDocument
	for _, doc := range f.docs {
		if filter.OwnerID == "" || doc.OwnerID == filter.OwnerID {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (f *fakeBudgetRepo) Save(_ context.Context, doc *domain.BudgetDocument) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSaves {
		return domain.WrapError(domain.ErrCodeInternal, "store unavailable", nil)
	}
	doc.Touch()
	stored := *doc
	stored.Budget = doc.Budget.Clone()
	f.docs[doc.ID] = stored
	f.saves++
	return nil
}

func (f *fakeBudgetRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.docs[id]; !ok {
		return domain.ErrBudgetNotFound
	}
	delete(f.docs, id)
	return nil
}

// fakeTemplateRepo serves canned catalog entries.
type fakeTemplateRepo struct {
	templates map[string]domain.Template
}

func (f *fakeTemplateRepo) GetByID(_ context.Context, id string) (*domain.Template, error) {
	tpl, ok := f.templates[id]
	if !ok {
		return nil, domain.ErrTemplateNotFound
	}
	return &tpl, nil
}

func (f *fakeTemplateRepo) ListByKind(_ context.Context, kind string) ([]domain.Template, error) {
	var out []domain.Template
	for _, tpl := range f.templates {
		if kind == "" || tpl.Kind == kind {
			out = append(out, tpl)
		}
	}
	return out, nil
}

// fakeSummaryCache records cache traffic.
type fakeSummaryCache struct {
	mu           sync.Mutex
	entries      map[string]repository.Summary
	sets, misses int
	invalidated  []string
}

func newFakeSummaryCache() *fakeSummaryCache {
	return &fakeSummaryCache{entries: map[string]repository.Summary{}}
}

func (f *fakeSummaryCache) Get(_ context.Context, budgetID string) (*repository.Summary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	summary, ok := f.entries[budgetID]
	if !ok {
		f.misses++
		return nil, repository.ErrCacheMiss
	}
	return &summary, nil
}

func (f *fakeSummaryCache) Set(_ context.Context, budgetID string, summary repository.Summary) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[budgetID] = summary
	f.sets++
	return nil
}

func (f *fakeSummaryCache) Invalidate(_ context.Context, budgetID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, budgetID)
	f.invalidated = append(f.invalidated, budgetID)
	return nil
}

// fakeBuffer implements the operation buffer port.
type fakeBuffer struct {
	mu         sync.Mutex
	operations []string
	budgetIDs  []string
	fail       bool
}

func (f *fakeBuffer) BufferBudget(_ context.Context, operation string, doc *domain.BudgetDocument) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return domain.WrapError(domain.ErrCodeInternal, "buffer unavailable", nil)
	}
	f.operations = append(f.operations, operation)
	f.budgetIDs = append(f.budgetIDs, doc.ID)
	return nil
}
