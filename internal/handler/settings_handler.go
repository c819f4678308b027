package handler

import (
	"net/http"

	"github.com/dafibh/spendsense/spendsense-backend/internal/domain"
	"github.com/dafibh/spendsense/spendsense-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// SettingsHandler toggles locks and the theme
type SettingsHandler struct {
	dispatcher *service.Dispatcher
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(dispatcher *service.Dispatcher) *SettingsHandler {
	return &SettingsHandler{dispatcher: dispatcher}
}

// ToggleLock godoc
// @Summary Toggle a lock
// @Tags settings
// @Produce json
// @Param target path string true "Lock target" Enums(budget, expense, plan)
// @Success 200 {object} domain.Analysis
// @Failure 400 {object} ProblemDetails
// @Router /locks/{target}/toggle [post]
func (h *SettingsHandler) ToggleLock(c echo.Context) error {
	target := domain.LockTarget(c.Param("target"))
	if !target.IsValid() {
		return commandError(c, "toggle_lock", domain.ErrUnknownLockTarget)
	}

	analysis, err := h.dispatcher.Submit(c.Request().Context(), service.ToggleLock{Target: target})
	if err != nil {
		return commandError(c, "toggle_lock", err)
	}
	return c.JSON(http.StatusOK, analysis)
}

// ToggleTheme godoc
// @Summary Toggle between light and dark theme
// @Tags settings
// @Produce json
// @Success 200 {object} domain.Analysis
// @Router /theme/toggle [post]
func (h *SettingsHandler) ToggleTheme(c echo.Context) error {
	analysis, err := h.dispatcher.Submit(c.Request().Context(), service.ToggleTheme{})
	if err != nil {
		return commandError(c, "toggle_theme", err)
	}
	return c.JSON(http.StatusOK, analysis)
}
