package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dafibh/spendsense/spendsense-backend/internal/domain"
	"github.com/dafibh/spendsense/spendsense-backend/internal/service"
	"github.com/dafibh/spendsense/spendsense-backend/internal/util"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// ExpenseHandler handles expense-related HTTP requests
type ExpenseHandler struct {
	dispatcher *service.Dispatcher
	now        func() time.Time
}

// NewExpenseHandler creates a new ExpenseHandler. now supplies the default
// date, taken in UTC, for expenses submitted without one.
func NewExpenseHandler(dispatcher *service.Dispatcher, now func() time.Time) *ExpenseHandler {
	if now == nil {
		now = time.Now
	}
	return &ExpenseHandler{
		dispatcher: dispatcher,
		now:        now,
	}
}

// CreateExpenseRequest represents the create expense request body
type CreateExpenseRequest struct {
	Amount   *decimal.Decimal `json:"amount"`
	Category string           `json:"category"`
	Date     string           `json:"date"`
	Note     string           `json:"note"`
}

// CreateExpense godoc
// @Summary Log an expense
// @Description A missing date defaults to today's UTC date
// @Tags expenses
// @Accept json
// @Produce json
// @Param request body CreateExpenseRequest true "Expense"
// @Success 201 {object} domain.Analysis
// @Failure 400 {object} ProblemDetails
// @Router /expenses [post]
func (h *ExpenseHandler) CreateExpense(c echo.Context) error {
	var req CreateExpenseRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	var fieldErrors []ValidationError
	if req.Amount == nil || !req.Amount.IsPositive() {
		fieldErrors = append(fieldErrors, ValidationError{Field: "amount", Message: "Enter an amount greater than zero"})
	} else if req.Amount.GreaterThan(domain.MaxAmount) {
		fieldErrors = append(fieldErrors, ValidationError{Field: "amount", Message: "Amount is too large"})
	}
	category := domain.Category(strings.TrimSpace(req.Category))
	if category == "" {
		fieldErrors = append(fieldErrors, ValidationError{Field: "category", Message: "Choose a category"})
	} else if !category.IsValid() {
		fieldErrors = append(fieldErrors, ValidationError{Field: "category", Message: "Unknown category"})
	}
	date := strings.TrimSpace(req.Date)
	if date == "" {
		date = util.Today(h.now().UTC())
	} else if _, err := time.Parse(domain.DateLayout, date); err != nil {
		fieldErrors = append(fieldErrors, ValidationError{Field: "date", Message: "Date must be YYYY-MM-DD"})
	}
	if len(fieldErrors) > 0 {
		return NewValidationError(c, "Invalid expense", fieldErrors)
	}

	record := domain.ExpenseRecord{
		Amount:   *req.Amount,
		Category: category,
		Date:     date,
		Note:     req.Note,
	}

	analysis, err := h.dispatcher.Submit(c.Request().Context(), service.AddExpense{Record: record})
	if err != nil {
		return commandError(c, "add_expense", err)
	}
	return c.JSON(http.StatusCreated, analysis)
}

// DeleteExpense godoc
// @Summary Remove an expense by position
// @Tags expenses
// @Produce json
// @Param index path int true "Expense index"
// @Success 200 {object} domain.Analysis
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /expenses/{index} [delete]
func (h *ExpenseHandler) DeleteExpense(c echo.Context) error {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return NewValidationError(c, "Invalid expense index", []ValidationError{
			{Field: "index", Message: "Must be a whole number"},
		})
	}

	analysis, err := h.dispatcher.Submit(c.Request().Context(), service.RemoveExpense{Index: index})
	if err != nil {
		return commandError(c, "remove_expense", err)
	}
	return c.JSON(http.StatusOK, analysis)
}
