package handler

import (
	"net/http"

	"github.com/dafibh/spendsense/spendsense-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// BudgetHandler handles the budget and plan selection
type BudgetHandler struct {
	dispatcher *service.Dispatcher
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(dispatcher *service.Dispatcher) *BudgetHandler {
	return &BudgetHandler{dispatcher: dispatcher}
}

// SetBudgetRequest represents the set budget request body
type SetBudgetRequest struct {
	Amount *decimal.Decimal `json:"amount"`
}

// SetBudget godoc
// @Summary Set the total budget
// @Tags budget
// @Accept json
// @Produce json
// @Param request body SetBudgetRequest true "Budget amount"
// @Success 200 {object} domain.Analysis
// @Failure 400 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /budget [put]
func (h *BudgetHandler) SetBudget(c echo.Context) error {
	var req SetBudgetRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if req.Amount == nil {
		return NewValidationError(c, "Amount is required", []ValidationError{
			{Field: "amount", Message: "Amount is required"},
		})
	}

	analysis, err := h.dispatcher.Submit(c.Request().Context(), service.SetBudget{Amount: *req.Amount})
	if err != nil {
		return commandError(c, "set_budget", err)
	}
	return c.JSON(http.StatusOK, analysis)
}

// SelectPlan godoc
// @Summary Select a spending plan
// @Description Selecting the active plan again clears the selection
// @Tags plans
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} domain.Analysis
// @Failure 404 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /plans/{id}/select [post]
func (h *BudgetHandler) SelectPlan(c echo.Context) error {
	analysis, err := h.dispatcher.Submit(c.Request().Context(), service.SelectPlan{PlanID: c.Param("id")})
	if err != nil {
		return commandError(c, "select_plan", err)
	}
	return c.JSON(http.StatusOK, analysis)
}
