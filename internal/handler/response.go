package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/dafibh/spendsense/spendsense-backend/internal/domain"
	"github.com/dafibh/spendsense/spendsense-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ProblemDetails represents an RFC 7807 Problem Details response
type ProblemDetails struct {
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Status   int               `json:"status"`
	Detail   string            `json:"detail,omitempty"`
	Instance string            `json:"instance,omitempty"`
	Errors   []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error types
const (
	ErrorTypeValidation  = "https://spendsense.app/errors/validation"
	ErrorTypeNotFound    = "https://spendsense.app/errors/not-found"
	ErrorTypeConflict    = "https://spendsense.app/errors/conflict"
	ErrorTypeLocked      = "https://spendsense.app/errors/locked"
	ErrorTypeUnavailable = "https://spendsense.app/errors/unavailable"
	ErrorTypeInternal    = "https://spendsense.app/errors/internal"
)

// NewValidationError creates a validation error response
func NewValidationError(c echo.Context, detail string, errors []ValidationError) error {
	return c.JSON(http.StatusBadRequest, ProblemDetails{
		Type:     ErrorTypeValidation,
		Title:    "Validation Error",
		Status:   http.StatusBadRequest,
		Detail:   detail,
		Instance: c.Request().URL.Path,
		Errors:   errors,
	})
}

// NewNotFoundError creates a not found error response
func NewNotFoundError(c echo.Context, detail string) error {
	return c.JSON(http.StatusNotFound, ProblemDetails{
		Type:     ErrorTypeNotFound,
		Title:    "Not Found",
		Status:   http.StatusNotFound,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewConflictError creates a conflict error response
func NewConflictError(c echo.Context, detail string) error {
	return c.JSON(http.StatusConflict, ProblemDetails{
		Type:     ErrorTypeConflict,
		Title:    "Conflict",
		Status:   http.StatusConflict,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewLockedError creates a conflict response for an edit blocked by a lock
func NewLockedError(c echo.Context, detail string) error {
	return c.JSON(http.StatusConflict, ProblemDetails{
		Type:     ErrorTypeLocked,
		Title:    "Locked",
		Status:   http.StatusConflict,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewUnavailableError creates a service unavailable response
func NewUnavailableError(c echo.Context, detail string) error {
	return c.JSON(http.StatusServiceUnavailable, ProblemDetails{
		Type:     ErrorTypeUnavailable,
		Title:    "Service Unavailable",
		Status:   http.StatusServiceUnavailable,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewInternalError creates an internal error response
func NewInternalError(c echo.Context, detail string) error {
	return c.JSON(http.StatusInternalServerError, ProblemDetails{
		Type:     ErrorTypeInternal,
		Title:    "Internal Server Error",
		Status:   http.StatusInternalServerError,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// commandError maps an engine or dispatcher error to its problem response
func commandError(c echo.Context, command string, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidRecord):
		return NewValidationError(c, err.Error(), nil)
	case errors.Is(err, domain.ErrInvalidBudget):
		return NewValidationError(c, "Budget must be greater than zero and at most "+domain.MaxAmount.String(), []ValidationError{
			{Field: "amount", Message: "Must be greater than zero and at most " + domain.MaxAmount.String()},
		})
	case errors.Is(err, domain.ErrUnknownLockTarget):
		return NewValidationError(c, "Unknown lock target", []ValidationError{
			{Field: "target", Message: "Must be one of budget, expense, plan"},
		})
	case errors.Is(err, domain.ErrIndexOutOfRange):
		return NewNotFoundError(c, "Expense not found")
	case errors.Is(err, domain.ErrUnknownPlan):
		return NewNotFoundError(c, "Plan not found")
	case errors.Is(err, domain.ErrBudgetRequired):
		return NewConflictError(c, "Set a budget before selecting a plan")
	case errors.Is(err, domain.ErrLocked):
		return NewLockedError(c, err.Error())
	case errors.Is(err, service.ErrDispatcherStopped),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return NewUnavailableError(c, "Server is shutting down")
	}

	log.Error().Err(err).Str("command", command).Msg("Command failed")
	return NewInternalError(c, "Failed to apply "+command)
}
