package repository

import (
	"context"

	"github.com/budgez/backend/domain"
)

type BudgetFilter struct {
	OwnerID string
	Limit   int
	Offset  int
}

// BudgetRepository persists whole budget documents. Save is an upsert with
// last-write-wins semantics: the store offers no transactional isolation for
// concurrent editors and the repository does not try to add any.
type BudgetRepository interface {
	GetByID(ctx context.Context, id string) (*domain.BudgetDocument, error)
	List(ctx context.Context, filter BudgetFilter) ([]domain.BudgetDocument, error)
	Save(ctx context.Context, doc *domain.BudgetDocument) error
	Delete(ctx context.Context, id string) error
}
