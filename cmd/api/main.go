package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/sayahatkz/sayahat/internal/adapters/http"
	natsadapter "github.com/sayahatkz/sayahat/internal/adapters/nats"
	"github.com/sayahatkz/sayahat/internal/adapters/openai"
	"github.com/sayahatkz/sayahat/internal/adapters/postgres"
	"github.com/sayahatkz/sayahat/internal/adapters/valkey"
	"github.com/sayahatkz/sayahat/internal/core/ports"
	"github.com/sayahatkz/sayahat/internal/core/usecases"
	"github.com/sayahatkz/sayahat/internal/pkg/config"
	"github.com/sayahatkz/sayahat/internal/pkg/logging"
	"github.com/sayahatkz/sayahat/internal/pkg/metrics"
	"github.com/sayahatkz/sayahat/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("sayahat-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Structured logging
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logging.Setup("sayahat-api", logLevel, "json")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.TempoAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Database
	db, err := postgres.New(ctx, cfg.Database.DSN(), cfg.Database.MaxConns)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Cache
	var cacheSvc ports.CacheService
	cache, err := valkey.New(cfg.Valkey.Addr)
	if err != nil {
		slog.Warn("valkey unavailable", "error", err)
	} else {
		defer cache.Close()
		cacheSvc = cache
	}

	// NATS
	var events ports.EventPublisher
	publisher, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats unavailable", "error", err)
	} else {
		defer publisher.Close()
		events = publisher
	}

	// Raw NATS connection for WebSocket relay
	natsConn, err := natsadapter.RawConn(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats ws conn unavailable", "error", err)
	}

	// Periodic DB pool gauges
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				metrics.UpdateDBPoolMetrics(db.Pool.Stat())
			case <-ctx.Done():
				return
			}
		}
	}()

	// AI completions
	completer := openai.New(cfg.OpenAI.BaseURL, cfg.OpenAI.APIKey, cfg.OpenAI.Model)

	// Repos
	userRepo := postgres.NewUserRepo(db)
	planRepo := postgres.NewPlanRepo(db)
	noteRepo := postgres.NewNoteRepo(db)
	safetyRepo := postgres.NewSafetyRepo(db)
	townRepo := postgres.NewTownRepo(db)

	// Use cases
	authSvc := usecases.NewAuthService(userRepo)
	planSvc := usecases.NewPlanService(planRepo)
	noteSvc := usecases.NewNoteService(noteRepo)
	safetySvc := usecases.NewSafetyService(userRepo, safetyRepo, events)
	placeSvc := usecases.NewPlaceService(townRepo, cacheSvc, completer)
	chatSvc := usecases.NewChatService(completer, townRepo, planSvc, noteSvc, slog.Default())

	deps := &http.Dependencies{
		Auth:      authSvc,
		Plans:     planSvc,
		Notes:     noteSvc,
		Safety:    safetySvc,
		Places:    placeSvc,
		Chat:      chatSvc,
		NATS:      natsConn,
		DB:        db,
		Cache:     cache,
		JWTSecret: cfg.Auth.JWTSecret,
		TokenTTL:  time.Duration(cfg.Auth.TokenTTLMin) * time.Minute,
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    1024 * 1024, // 1 MB max request body
		AppName:      "Sayahat API",
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000, http://localhost:5173, https://*.sayahat.kz",
		AllowMethods:     "GET,POST,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false,
		MaxAge:           3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	// Give in-flight requests up to 10s to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
