package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dafibh/spendsense/spendsense-backend/internal/domain"
	"github.com/dafibh/spendsense/spendsense-backend/internal/service"
	"github.com/dafibh/spendsense/spendsense-backend/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

type testEnv struct {
	dispatcher *service.Dispatcher
	allocator  *service.Allocator
	charts     *service.ChartBuilder
	repo       *testutil.MockSnapshotRepository
	publisher  *testutil.MockEventPublisher
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := zerolog.Nop()
	repo := testutil.NewMockSnapshotRepository()
	publisher := testutil.NewMockEventPublisher()
	allocator := service.NewAllocator(domain.DefaultPlans())
	charts := service.NewChartBuilder(domain.DefaultPalette())
	engine := service.NewEngine(
		domain.DefaultAppState(),
		allocator,
		service.NewWarningClassifier(domain.WarningThreshold),
		charts,
		fixedClock,
		logger,
	)

	dispatcher := service.NewDispatcher(engine, service.NewStateService(repo, logger), logger, 0)
	dispatcher.SetEventPublisher(publisher)

	ctx, cancel := context.WithCancel(context.Background())
	dispatcher.Start(ctx)
	t.Cleanup(func() {
		dispatcher.Stop()
		cancel()
	})

	return &testEnv{
		dispatcher: dispatcher,
		allocator:  allocator,
		charts:     charts,
		repo:       repo,
		publisher:  publisher,
	}
}

func newJSONContext(e *echo.Echo, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req = httptest.NewRequest(method, path, nil)
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeAnalysis(t *testing.T, rec *httptest.ResponseRecorder) domain.Analysis {
	t.Helper()
	var analysis domain.Analysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &analysis))
	return analysis
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) ProblemDetails {
	t.Helper()
	var problem ProblemDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	return problem
}

func mustSubmit(t *testing.T, d *service.Dispatcher, cmd service.Command) *domain.Analysis {
	t.Helper()
	analysis, err := d.Submit(context.Background(), cmd)
	require.NoError(t, err)
	return analysis
}
