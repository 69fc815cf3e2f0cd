package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/budgez/backend/domain"
	"github.com/budgez/backend/repository"
)

type templateRepository struct {
	pool *pgxpool.Pool
}

// NewTemplateRepository returns a Postgres-backed implementation of TemplateRepository.
func NewTemplateRepository(pool *pgxpool.Pool) repository.TemplateRepository {
	return &templateRepository{pool: pool}
}

func (r *templateRepository) GetByID(ctx context.Context, id string) (*domain.Template, error) {
	const query = `
	SELECT id, kind, name, body, created_at
	FROM templates
	WHERE id = $1
	`
	var tpl domain.Template
	var body []byte
	err := r.pool.QueryRow(ctx, query, id).Scan(&tpl.ID, &tpl.Kind, &tpl.Name, &body, &tpl.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTemplateNotFound
		}
		return nil, err
	}
	tpl.Body = append(tpl.Body, body...)
	return &tpl, nil
}

func (r *templateRepository) ListByKind(ctx context.Context, kind string) ([]domain.Template, error) {
	const query = `
	SELECT id, kind, name, body, created_at
	FROM templates
	WHERE ($1 = '' OR kind = $1)
	ORDER BY name
	`
	rows, err := r.pool.Query(ctx, query, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []domain.Template
	for rows.Next() {
		var tpl domain.Template
		var body []byte
		if err := rows.Scan(&tpl.ID, &tpl.Kind, &tpl.Name, &body, &tpl.CreatedAt); err != nil {
			return nil, err
		}
		tpl.Body = append(tpl.Body, body...)
		templates = append(templates, tpl)
	}
	return templates, rows.Err()
}
