package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/dafibh/spendsense/spendsense-backend/internal/domain"
	"github.com/dafibh/spendsense/spendsense-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAnalysis_Empty(t *testing.T) {
	e := echo.New()
	env := setupTestEnv(t)
	h := NewAnalysisHandler(env.dispatcher, env.allocator, env.charts)

	c, rec := newJSONContext(e, http.MethodGet, "/api/v1/analysis", "")

	require.NoError(t, h.GetAnalysis(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	analysis := decodeAnalysis(t, rec)
	assert.True(t, analysis.TotalSpent.IsZero())
	assert.True(t, analysis.MonthlySlices.Empty)
	assert.True(t, analysis.OverallSlices.Empty)
	assert.Empty(t, analysis.Expenses)
	assert.Equal(t, domain.ThemeDark, analysis.Theme)
	assert.Equal(t, 0, env.repo.Saves(), "reads must not save")
	assert.Empty(t, env.publisher.Events(), "reads must not publish")
}

func TestGetAnalysis_MonthlyAndOverall(t *testing.T) {
	e := echo.New()
	env := setupTestEnv(t)
	h := NewAnalysisHandler(env.dispatcher, env.allocator, env.charts)

	mustSubmit(t, env.dispatcher, service.SetBudget{Amount: decimal.NewFromInt(200)})
	mustSubmit(t, env.dispatcher, service.AddExpense{Record: domain.ExpenseRecord{
		Amount: decimal.NewFromInt(50), Category: domain.CategoryFood, Date: "2025-03-03",
	}})
	mustSubmit(t, env.dispatcher, service.AddExpense{Record: domain.ExpenseRecord{
		Amount: decimal.NewFromInt(150), Category: domain.CategoryTravel, Date: "2025-02-20",
	}})

	c, rec := newJSONContext(e, http.MethodGet, "/api/v1/analysis", "")
	require.NoError(t, h.GetAnalysis(c))

	analysis := decodeAnalysis(t, rec)
	assert.True(t, analysis.TotalSpent.Equal(decimal.NewFromInt(200)))
	assert.True(t, analysis.Remaining.IsZero())
	assert.True(t, analysis.SpentPercent.Equal(decimal.NewFromInt(100)))
	assert.True(t, analysis.RemainingPercent.IsZero())

	require.Len(t, analysis.MonthlySlices.Slices, 1)
	assert.Equal(t, domain.CategoryFood, analysis.MonthlySlices.Slices[0].Category)
	require.Len(t, analysis.OverallSlices.Slices, 2)
	assert.Equal(t, domain.CategoryFood, analysis.OverallSlices.Slices[0].Category)
	assert.Equal(t, domain.CategoryTravel, analysis.OverallSlices.Slices[1].Category)
}

func TestGetPlans(t *testing.T) {
	e := echo.New()
	env := setupTestEnv(t)
	h := NewAnalysisHandler(env.dispatcher, env.allocator, env.charts)

	c, rec := newJSONContext(e, http.MethodGet, "/api/v1/plans", "")
	require.NoError(t, h.GetPlans(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var plans []PlanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &plans))
	require.Len(t, plans, 4)
	assert.Equal(t, "balanced", plans[0].ID)
	assert.Equal(t, "Balanced", plans[0].DisplayName)
	require.Len(t, plans[0].Breakdown, 5)
	assert.Equal(t, PlanShareResponse{Category: domain.CategoryFood, Ratio: "0.3"}, plans[0].Breakdown[0])
}

func TestGetCategories(t *testing.T) {
	e := echo.New()
	env := setupTestEnv(t)
	h := NewAnalysisHandler(env.dispatcher, env.allocator, env.charts)

	c, rec := newJSONContext(e, http.MethodGet, "/api/v1/categories", "")
	require.NoError(t, h.GetCategories(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var categories []domain.CategoryInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &categories))
	require.Len(t, categories, len(domain.Categories))
	for i, category := range domain.Categories {
		assert.Equal(t, category, categories[i].Name)
		assert.NotEmpty(t, categories[i].Color)
	}
}

func TestGetAnalysis_DispatcherStopped(t *testing.T) {
	e := echo.New()
	env := setupTestEnv(t)
	h := NewAnalysisHandler(env.dispatcher, env.allocator, env.charts)
	env.dispatcher.Stop()

	c, rec := newJSONContext(e, http.MethodGet, "/api/v1/analysis", "")
	require.NoError(t, h.GetAnalysis(c))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
