package handler

import (
	"net/http"
	"testing"

	"github.com/dafibh/spendsense/spendsense-backend/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleLock(t *testing.T) {
	tests := []struct {
		target string
		check  func(domain.Locks) bool
	}{
		{"budget", func(l domain.Locks) bool { return l.Budget && !l.Expense && !l.Plan }},
		{"expense", func(l domain.Locks) bool { return l.Expense && !l.Budget && !l.Plan }},
		{"plan", func(l domain.Locks) bool { return l.Plan && !l.Budget && !l.Expense }},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			e := echo.New()
			env := setupTestEnv(t)
			h := NewSettingsHandler(env.dispatcher)

			c, rec := newJSONContext(e, http.MethodPost, "/api/v1/locks/"+tt.target+"/toggle", "")
			c.SetParamNames("target")
			c.SetParamValues(tt.target)

			require.NoError(t, h.ToggleLock(c))
			require.Equal(t, http.StatusOK, rec.Code)
			assert.True(t, tt.check(decodeAnalysis(t, rec).Locks))

			// Toggling again unlocks
			c, rec = newJSONContext(e, http.MethodPost, "/api/v1/locks/"+tt.target+"/toggle", "")
			c.SetParamNames("target")
			c.SetParamValues(tt.target)
			require.NoError(t, h.ToggleLock(c))
			assert.Equal(t, domain.Locks{}, decodeAnalysis(t, rec).Locks)
		})
	}
}

func TestToggleLock_UnknownTarget(t *testing.T) {
	e := echo.New()
	env := setupTestEnv(t)
	h := NewSettingsHandler(env.dispatcher)

	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/locks/theme/toggle", "")
	c.SetParamNames("target")
	c.SetParamValues("theme")

	require.NoError(t, h.ToggleLock(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, env.repo.Saves())
}

func TestToggleTheme(t *testing.T) {
	e := echo.New()
	env := setupTestEnv(t)
	h := NewSettingsHandler(env.dispatcher)

	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/theme/toggle", "")
	require.NoError(t, h.ToggleTheme(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.ThemeLight, decodeAnalysis(t, rec).Theme)

	c, rec = newJSONContext(e, http.MethodPost, "/api/v1/theme/toggle", "")
	require.NoError(t, h.ToggleTheme(c))
	assert.Equal(t, domain.ThemeDark, decodeAnalysis(t, rec).Theme)
	assert.Equal(t, 2, env.repo.Saves())
}
