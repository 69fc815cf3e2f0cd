package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/budgez/backend/api/transport"
	"github.com/budgez/backend/pkg/httpcontext"
	templateUC "github.com/budgez/backend/usecase/template"
)

type TemplateHandler struct {
	baseHandler
	uc *templateUC.UseCase
}

func NewTemplateHandler(uc *templateUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TemplateHandler {
	return &TemplateHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List templates
// @Tags templates
// @Router /api/v1/templates [get]
func (h *TemplateHandler) ListTemplates(ctx *fasthttp.RequestCtx) {
	kind := string(ctx.QueryArgs().Peek("kind"))

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	templates, err := h.uc.ListTemplates(stdCtx, kind)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	items := make([]transport.TemplateResponse, len(templates))
	for i, tpl := range templates {
		items[i] = transport.TemplateResponse{
			ID:   tpl.ID,
			Kind: tpl.Kind,
			Name: tpl.Name,
			Body: tpl.Body,
		}
	}
	h.respondSuccess(ctx, http.StatusOK, items)
}

// @Summary Get template
// @Tags templates
// @Router /api/v1/templates/{id} [get]
func (h *TemplateHandler) GetTemplate(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondInvalid(ctx, "missing template id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tpl, err := h.uc.GetTemplate(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.TemplateResponse{
		ID:   tpl.ID,
		Kind: tpl.Kind,
		Name: tpl.Name,
		Body: tpl.Body,
	})
}
