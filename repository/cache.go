package repository

import (
	"context"

	"github.com/budgez/backend/domain"
)

// Summary is the cached read-model of a budget: the five-stage cost
// breakdown plus the derived project date range.
type Summary struct {
	Totals   domain.Totals   `json:"totals"`
	Timeline domain.Timeline `json:"timeline"`
}

// SummaryCache keeps computed summaries keyed by budget id. The cache is
// advisory: misses and failures fall back to recomputation, and every budget
// save invalidates the entry.
type SummaryCache interface {
	Get(ctx context.Context, budgetID string) (*Summary, error)
	Set(ctx context.Context, budgetID string, summary Summary) error
	Invalidate(ctx context.Context, budgetID string) error
}

// ErrCacheMiss signals an absent cache entry.
var ErrCacheMiss = domain.NewError(domain.ErrCodeNotFound, "summary cache miss")
