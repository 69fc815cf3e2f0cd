package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/budgez/backend/api/handler"
)

type Handlers struct {
	Budget   *apiHandler.BudgetHandler
	Template *apiHandler.TemplateHandler
	Health   *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Budget documents
	r.GET("/api/v1/budgets", authMiddleware(handlers.Budget.ListBudgets))
	r.POST("/api/v1/budgets", authMiddleware(handlers.Budget.CreateBudget))
	r.GET("/api/v1/budgets/{id}", authMiddleware(handlers.Budget.GetBudget))
	r.PUT("/api/v1/budgets/{id}", authMiddleware(handlers.Budget.ReplaceBudget))
	r.DELETE("/api/v1/budgets/{id}", authMiddleware(handlers.Budget.DeleteBudget))
	r.POST("/api/v1/budgets/{id}/ops", authMiddleware(handlers.Budget.ApplyOperation))
	r.GET("/api/v1/budgets/{id}/totals", authMiddleware(handlers.Budget.GetSummary))

	// Template catalog
	r.GET("/api/v1/templates", authMiddleware(handlers.Template.ListTemplates))
	r.GET("/api/v1/templates/{id}", authMiddleware(handlers.Template.GetTemplate))

	return r
}
