package handler

import (
	"net/http"

	"github.com/dafibh/spendsense/spendsense-backend/internal/domain"
	"github.com/dafibh/spendsense/spendsense-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// AnalysisHandler serves the read-only views
type AnalysisHandler struct {
	dispatcher *service.Dispatcher
	allocator  *service.Allocator
	charts     *service.ChartBuilder
}

// NewAnalysisHandler creates a new AnalysisHandler
func NewAnalysisHandler(dispatcher *service.Dispatcher, allocator *service.Allocator, charts *service.ChartBuilder) *AnalysisHandler {
	return &AnalysisHandler{
		dispatcher: dispatcher,
		allocator:  allocator,
		charts:     charts,
	}
}

// PlanResponse represents a spending plan in API responses
type PlanResponse struct {
	ID          string              `json:"id"`
	DisplayName string              `json:"displayName"`
	Breakdown   []PlanShareResponse `json:"breakdown"`
}

// PlanShareResponse is one category ratio of a plan
type PlanShareResponse struct {
	Category domain.Category `json:"category"`
	Ratio    string          `json:"ratio"`
}

// GetAnalysis godoc
// @Summary Get the current analysis
// @Description Totals, category limits, warnings and chart slices for the current state
// @Tags analysis
// @Produce json
// @Success 200 {object} domain.Analysis
// @Failure 503 {object} ProblemDetails
// @Router /analysis [get]
func (h *AnalysisHandler) GetAnalysis(c echo.Context) error {
	analysis, err := h.dispatcher.Analysis(c.Request().Context())
	if err != nil {
		return commandError(c, "analysis", err)
	}
	return c.JSON(http.StatusOK, analysis)
}

// GetPlans godoc
// @Summary List spending plans
// @Tags plans
// @Produce json
// @Success 200 {array} PlanResponse
// @Router /plans [get]
func (h *AnalysisHandler) GetPlans(c echo.Context) error {
	plans := h.allocator.Plans().All()

	response := make([]PlanResponse, len(plans))
	for i, p := range plans {
		response[i] = toPlanResponse(p)
	}
	return c.JSON(http.StatusOK, response)
}

// GetCategories godoc
// @Summary List categories with their chart colors
// @Tags analysis
// @Produce json
// @Success 200 {array} domain.CategoryInfo
// @Router /categories [get]
func (h *AnalysisHandler) GetCategories(c echo.Context) error {
	return c.JSON(http.StatusOK, h.charts.Palette())
}

func toPlanResponse(p *domain.SpendingPlan) PlanResponse {
	shares := make([]PlanShareResponse, len(p.Breakdown))
	for i, s := range p.Breakdown {
		shares[i] = PlanShareResponse{
			Category: s.Category,
			Ratio:    s.Ratio.String(),
		}
	}
	return PlanResponse{
		ID:          p.ID,
		DisplayName: p.DisplayName,
		Breakdown:   shares,
	}
}
