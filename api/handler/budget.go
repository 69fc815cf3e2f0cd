package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/budgez/backend/api/transport"
	"github.com/budgez/backend/codec"
	"github.com/budgez/backend/domain"
	"github.com/budgez/backend/pkg/httpcontext"
	"github.com/budgez/backend/repository"
	"github.com/budgez/backend/usecase"
	budgetUC "github.com/budgez/backend/usecase/budget"
)

type BudgetHandler struct {
	baseHandler
	uc *budgetUC.UseCase
}

func NewBudgetHandler(uc *budgetUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *BudgetHandler {
	return &BudgetHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List budgets
// @Tags budgets
// @Router /api/v1/budgets [get]
func (h *BudgetHandler) ListBudgets(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	filter := repository.BudgetFilter{
		OwnerID: userID,
		Limit:   parseInt(string(ctx.QueryArgs().Peek("limit")), 50),
		Offset:  parseInt(string(ctx.QueryArgs().Peek("offset")), 0),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	docs, err := h.uc.ListBudgets(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	items := make([]transport.BudgetListItem, len(docs))
	for i, doc := range docs {
		items[i] = transport.BudgetListItem{
			ID:        doc.ID,
			Name:      doc.Name,
			Totals:    doc.Budget.Totals(),
			UpdatedAt: doc.UpdatedAt.Format(time.RFC3339),
		}
	}
	h.respondSuccess(ctx, http.StatusOK, items)
}

// @Summary Create budget
// @Tags budgets
// @Router /api/v1/budgets [post]
func (h *BudgetHandler) CreateBudget(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.BudgetCreateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	doc, err := h.uc.CreateBudget(stdCtx, userID, req.Name)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondBudget(ctx, http.StatusCreated, doc)
}

// @Summary Get budget
// @Tags budgets
// @Router /api/v1/budgets/{id} [get]
func (h *BudgetHandler) GetBudget(ctx *fasthttp.RequestCtx) {
	id := h.budgetID(ctx)
	if id == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	doc, err := h.uc.GetBudget(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondBudget(ctx, http.StatusOK, doc)
}

// @Summary Replace budget document
// @Tags budgets
// @Router /api/v1/budgets/{id} [put]
func (h *BudgetHandler) ReplaceBudget(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	id := h.budgetID(ctx)
	if id == "" {
		return
	}

	var req transport.BudgetReplaceRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	budget, err := codec.DecodeBudget(req.Document)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	current, err := h.uc.GetBudget(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	current.Name = req.Name
	current.Budget = budget
	doc, err := h.uc.ReplaceBudget(stdCtx, current)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondBudget(ctx, http.StatusOK, doc)
}

// @Summary Delete budget
// @Tags budgets
// @Router /api/v1/budgets/{id} [delete]
func (h *BudgetHandler) DeleteBudget(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	id := h.budgetID(ctx)
	if id == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteBudget(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary Apply a tree operation
// @Tags budgets
// @Router /api/v1/budgets/{id}/ops [post]
func (h *BudgetHandler) ApplyOperation(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	id := h.budgetID(ctx)
	if id == "" {
		return
	}

	var req transport.OperationRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}
	if req.Op == "" {
		h.respondInvalid(ctx, "missing op")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	doc, err := h.uc.ApplyOperation(stdCtx, id, req.Op, opArgs(req))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondBudget(ctx, http.StatusOK, doc)
}

// @Summary Totals breakdown
// @Tags budgets
// @Router /api/v1/budgets/{id}/totals [get]
func (h *BudgetHandler) GetSummary(ctx *fasthttp.RequestCtx) {
	id := h.budgetID(ctx)
	if id == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	summary, err := h.uc.Summary(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, summary)
}

func (h *BudgetHandler) respondBudget(ctx *fasthttp.RequestCtx, status int, doc *domain.BudgetDocument) {
	document, err := codec.EncodeBudget(doc.Budget)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, status, transport.BudgetResponse{
		ID:        doc.ID,
		OwnerID:   doc.OwnerID,
		Name:      doc.Name,
		Document:  document,
		Totals:    doc.Budget.Totals(),
		Timeline:  doc.Budget.Timeline(),
		CreatedAt: doc.CreatedAt.Format(time.RFC3339),
		UpdatedAt: doc.UpdatedAt.Format(time.RFC3339),
	})
}

func (h *BudgetHandler) budgetID(ctx *fasthttp.RequestCtx) string {
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondInvalid(ctx, "missing budget id")
	}
	return id
}

func opArgs(req transport.OperationRequest) usecase.OpArgs {
	return usecase.OpArgs{
		SectionID:    req.SectionID,
		ActivityID:   req.ActivityID,
		ResourceID:   req.ResourceID,
		TemplateID:   req.TemplateID,
		Quantity:     req.Quantity,
		Name:         req.Name,
		Description:  req.Description,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		ResourceType: req.ResourceType,
		Rate:         req.Rate,
	}
}

func parseInt(value string, fallback int) int {
	if v, err := strconv.Atoi(value); err == nil {
		return v
	}
	return fallback
}
