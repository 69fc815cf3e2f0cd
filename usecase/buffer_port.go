package usecase

import (
	"context"

	"github.com/budgez/backend/domain"
)

// Buffered budget operations.
const (
	OperationSave   = "save"
	OperationDelete = "delete"
)

// OperationBuffer abstracts the offline write buffer so use cases stay
// storage-agnostic. Buffered saves are replayed against the primary store
// once it is reachable again; replay order is best-effort and a later direct
// write can be overwritten by a drained older one, consistent with the
// document's last-write-wins posture.
type OperationBuffer interface {
	BufferBudget(ctx context.Context, operation string, doc *domain.BudgetDocument) error
}
