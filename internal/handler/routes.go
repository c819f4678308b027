package handler

import (
	"github.com/dafibh/spendsense/spendsense-backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// Handlers groups every HTTP handler the API mounts
type Handlers struct {
	Analysis  *AnalysisHandler
	Expense   *ExpenseHandler
	Budget    *BudgetHandler
	Settings  *SettingsHandler
	WebSocket *WebSocketHandler
}

// RegisterRoutes sets up all API routes. Mutating routes go through the rate limiter.
func RegisterRoutes(e *echo.Echo, h Handlers, rateLimiter *middleware.RateLimiter) {
	// API version 1
	api := e.Group("/api/v1")
	if rateLimiter != nil {
		api.Use(middleware.RateLimitMiddleware(rateLimiter))
	}

	api.GET("/analysis", h.Analysis.GetAnalysis)
	api.GET("/plans", h.Analysis.GetPlans)
	api.GET("/categories", h.Analysis.GetCategories)

	// Expense routes
	expenses := api.Group("/expenses")
	expenses.POST("", h.Expense.CreateExpense)
	expenses.DELETE("/:index", h.Expense.DeleteExpense)

	// Budget and plan routes
	api.PUT("/budget", h.Budget.SetBudget)
	api.POST("/plans/:id/select", h.Budget.SelectPlan)

	// Lock and theme routes
	api.POST("/locks/:target/toggle", h.Settings.ToggleLock)
	api.POST("/theme/toggle", h.Settings.ToggleTheme)

	if h.WebSocket != nil {
		e.GET("/ws", h.WebSocket.HandleWS)
	}
}
