package template

import (
	"context"

	"go.uber.org/zap"

	"github.com/budgez/backend/domain"
	"github.com/budgez/backend/repository"
)

// UseCase serves the reusable section and resource catalog. Bodies are
// handed out verbatim; the budget import operations own id regeneration.
type UseCase struct {
	templates repository.TemplateRepository
	logger    *zap.Logger
}

func New(templates repository.TemplateRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		templates: templates,
		logger:    logger,
	}
}

func (uc *UseCase) ListTemplates(ctx context.Context, kind string) ([]domain.Template, error) {
	switch kind {
	case "", domain.TemplateKindSection, domain.TemplateKindResource:
	default:
		return nil, domain.NewError(domain.ErrCodeInvalid, "unknown template kind")
	}
	return uc.templates.ListByKind(ctx, kind)
}

func (uc *UseCase) GetTemplate(ctx context.Context, id string) (*domain.Template, error) {
	return uc.templates.GetByID(ctx, id)
}
