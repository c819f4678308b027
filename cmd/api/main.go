package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dafibh/spendsense/spendsense-backend/internal/config"
	"github.com/dafibh/spendsense/spendsense-backend/internal/domain"
	"github.com/dafibh/spendsense/spendsense-backend/internal/handler"
	"github.com/dafibh/spendsense/spendsense-backend/internal/middleware"
	"github.com/dafibh/spendsense/spendsense-backend/internal/repository/postgres"
	"github.com/dafibh/spendsense/spendsense-backend/internal/repository/sqlite"
	"github.com/dafibh/spendsense/spendsense-backend/internal/repository/storage"
	"github.com/dafibh/spendsense/spendsense-backend/internal/service"
	"github.com/dafibh/spendsense/spendsense-backend/internal/websocket"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	plans, err := config.LoadPlans(cfg.PlansFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.PlansFile).Msg("Failed to load spending plans")
	}
	log.Info().Int("plans", len(plans.All())).Msg("Loaded spending plans")

	// Open the snapshot store
	repo, closeRepo, err := openSnapshotRepository(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StorageDriver).Msg("Failed to open snapshot store")
	}
	defer closeRepo()
	log.Info().Str("driver", cfg.StorageDriver).Msg("Snapshot store ready")

	// Initialize services
	stateService := service.NewStateService(repo, log.Logger)
	allocator := service.NewAllocator(plans)
	charts := service.NewChartBuilder(domain.DefaultPalette())
	engine := service.NewEngine(
		stateService.Load(context.Background()),
		allocator,
		service.NewWarningClassifier(domain.WarningThreshold),
		charts,
		time.Now,
		log.Logger,
	)

	// WebSocket hub for pushing analysis updates to renderers
	hub := websocket.NewHub()

	dispatcher := service.NewDispatcher(engine, stateService, log.Logger, cfg.QueueSize)
	dispatcher.SetEventPublisher(hub)

	dispatcherCtx, stopDispatcher := context.WithCancel(context.Background())
	defer stopDispatcher()
	dispatcher.Start(dispatcherCtx)

	if _, err := dispatcher.Submit(context.Background(), service.RecordVisit{}); err != nil {
		log.Warn().Err(err).Msg("Failed to record visit")
	}

	rateLimiter := middleware.NewRateLimiterWithConfig(cfg.RateLimitPerMinute, cfg.RateLimitBurst)
	defer rateLimiter.Stop()

	// Initialize handlers
	handlers := handler.Handlers{
		Analysis:  handler.NewAnalysisHandler(dispatcher, allocator, charts),
		Expense:   handler.NewExpenseHandler(dispatcher, time.Now),
		Budget:    handler.NewBudgetHandler(dispatcher),
		Settings:  handler.NewSettingsHandler(dispatcher),
		WebSocket: handler.NewWebSocketHandler(hub, cfg.CORSOrigins),
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		MaxAge:       86400,
	}))

	// Security headers middleware (helmet-like)
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		status := "ok"
		if !dispatcher.IsRunning() {
			status = "degraded"
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":  status,
			"clients": hub.ClientCount(),
		})
	})

	// Register API routes
	handler.RegisterRoutes(e, handlers, rateLimiter)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	// Drain the command in flight so its snapshot is written
	dispatcher.Stop()

	log.Info().Msg("Server exited")
}

// openSnapshotRepository opens the store selected by STORAGE_DRIVER.
// The returned func releases its connections.
func openSnapshotRepository(ctx context.Context, cfg *config.Config) (domain.SnapshotRepository, func(), error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to database: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("pinging database: %w", err)
		}
		repo := postgres.NewSnapshotRepository(pool, cfg.SnapshotID)
		if err := repo.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("creating snapshot table: %w", err)
		}
		return repo, pool.Close, nil

	case config.StorageS3:
		repo, err := storage.NewS3SnapshotRepository(ctx, cfg.S3)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() {}, nil

	default:
		repo, err := sqlite.Open(cfg.SQLitePath, cfg.SnapshotID)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() {
			if err := repo.Close(); err != nil {
				log.Error().Err(err).Msg("Failed to close sqlite store")
			}
		}, nil
	}
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Str("remote_ip", c.RealIP()).
				Msg("request")

			return nil
		}
	}
}
