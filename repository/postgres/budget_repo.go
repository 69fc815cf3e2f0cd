package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/budgez/backend/codec"
	"github.com/budgez/backend/domain"
	"github.com/budgez/backend/repository"
)

type budgetRepository struct {
	pool *pgxpool.Pool
}

// NewBudgetRepository creates a Postgres-backed BudgetRepository. The budget
// tree lives in a single JSONB column; concurrent saves race and the last
// writer wins, which is the accepted persistence posture for this document.
func NewBudgetRepository(pool *pgxpool.Pool) repository.BudgetRepository {
	return &budgetRepository{pool: pool}
}

func (r *budgetRepository) GetByID(ctx context.Context, id string) (*domain.BudgetDocument, error) {
	const query = `
	SELECT id, owner_id, name, document, created_at, updated_at
	FROM budgets
	WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	return scanBudget(row)
}

func (r *budgetRepository) List(ctx context.Context, filter repository.BudgetFilter) ([]domain.BudgetDocument, error) {
	const query = `
	SELECT id, owner_id, name, document, created_at, updated_at
	FROM budgets
	WHERE ($1 = '' OR owner_id = $1)
	ORDER BY updated_at DESC
	LIMIT $2 OFFSET $3
	`
	rows, err := r.pool.Query(ctx, query, filter.OwnerID, clampLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []domain.BudgetDocument
	for rows.Next() {
		doc, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	return docs, rows.Err()
}

func (r *budgetRepository) Save(ctx context.Context, doc *domain.BudgetDocument) error {
	if doc == nil || doc.ID == "" {
		return domain.ErrInvalidPayload
	}

	payload, err := codec.EncodeBudget(doc.Budget)
	if err != nil {
		return domain.WrapError(domain.ErrCodeInternal, "encode budget document", err)
	}

	const query = `
	INSERT INTO budgets (id, owner_id, name, document, created_at, updated_at)
	VALUES ($1, $2, $3, $4, COALESCE($5, NOW()), NOW())
	ON CONFLICT (id) DO UPDATE
	SET name = EXCLUDED.name,
		document = EXCLUDED.document,
		updated_at = NOW()
	RETURNING created_at, updated_at
	`

	return r.pool.QueryRow(ctx, query,
		doc.ID,
		doc.OwnerID,
		doc.Name,
		payload,
		nullTime(doc.CreatedAt),
	).Scan(&doc.CreatedAt, &doc.UpdatedAt)
}

func (r *budgetRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM budgets WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBudgetNotFound
	}
	return nil
}

func scanBudget(row interface {
	Scan(dest ...interface{}) error
}) (*domain.BudgetDocument, error) {
	var doc domain.BudgetDocument
	var payload []byte

	if err := row.Scan(
		&doc.ID,
		&doc.OwnerID,
		&doc.Name,
		&payload,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBudgetNotFound
		}
		return nil, err
	}

	budget, err := codec.DecodeBudget(payload)
	if err != nil {
		return nil, err
	}
	doc.Budget = budget

	return &doc, nil
}
