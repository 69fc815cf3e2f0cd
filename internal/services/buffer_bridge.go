package services

import (
	"context"
	"encoding/json"

	"github.com/budgez/backend/codec"
	"github.com/budgez/backend/domain"
	"github.com/budgez/backend/internal/infrastructure/buffer"
	"github.com/budgez/backend/usecase"
)

// BufferBridge adapts the buffer processor to the use-case port.
type BufferBridge struct {
	processor *BufferProcessor
}

func NewBufferBridge(processor *BufferProcessor) *BufferBridge {
	return &BufferBridge{processor: processor}
}

func (b *BufferBridge) BufferBudget(ctx context.Context, operation string, doc *domain.BudgetDocument) error {
	if b.processor == nil || doc == nil {
		return domain.ErrInvalidPayload
	}

	item := buffer.Item{
		BudgetID: doc.ID,
		Entity:   buffer.EntityBudget,
		Priority: 2,
	}

	switch operation {
	case usecase.OperationSave:
		body, err := codec.EncodeBudget(doc.Budget)
		if err != nil {
			return err
		}
		payload, err := json.Marshal(bufferedDocument{
			ID:       doc.ID,
			OwnerID:  doc.OwnerID,
			Name:     doc.Name,
			Document: body,
		})
		if err != nil {
			return err
		}
		item.Operation = buffer.OperationSave
		item.Data = payload
	case usecase.OperationDelete:
		item.Operation = buffer.OperationDelete
	default:
		return domain.ErrInvalidPayload
	}

	return b.processor.BufferOperation(ctx, item)
}

var _ usecase.OperationBuffer = (*BufferBridge)(nil)
