package repository

import (
	"context"

	"github.com/budgez/backend/domain"
)

// TemplateRepository serves the reusable section and resource catalog.
type TemplateRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Template, error)
	ListByKind(ctx context.Context, kind string) ([]domain.Template, error)
}
