package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/quizgen/quizgen-service/internal/cache"
	"github.com/quizgen/quizgen-service/internal/config"
	"github.com/quizgen/quizgen-service/internal/events"
	"github.com/quizgen/quizgen-service/internal/gateway"
	"github.com/quizgen/quizgen-service/internal/handlers"
	"github.com/quizgen/quizgen-service/internal/history"
	"github.com/quizgen/quizgen-service/internal/services"
	"github.com/quizgen/quizgen-service/internal/utils"
	"github.com/quizgen/quizgen-service/internal/validator"
	"github.com/quizgen/quizgen-service/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		os.Stderr.WriteString("failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	var slogBase *slog.Logger
	if cfg.Environment == "production" {
		slogBase = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
		gin.SetMode(gin.ReleaseMode)
	} else {
		slogBase = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	logger := utils.NewSlogLogger(slogBase)

	v := validator.New()

	// Generation result cache: Redis when configured, in-memory otherwise.
	var cacheService cache.CacheService
	if cfg.CacheEnabled && cfg.RedisURL != "" {
		redisClient, err := pkg.NewRedisClient(cfg)
		if err != nil {
			logger.Warn("Redis unavailable, falling back to in-memory cache", "error", err)
			cacheService = cache.NewMemoryCache()
		} else {
			defer redisClient.Close()
			cacheService = cache.NewRedisCache(redisClient, logger)
		}
	} else {
		cacheService = cache.NewMemoryCache()
	}

	var generator gateway.Generator = gateway.NewGeminiGenerator(gateway.GeminiConfig{
		APIKey:         cfg.GeminiAPIKey,
		TextModel:      cfg.TextModel,
		URLModel:       cfg.URLModel,
		Timeout:        cfg.GatewayTimeout,
		MaxSourceChars: cfg.MaxSourceChars,
	}, logger, v)
	generator = gateway.NewCachedGenerator(generator, cacheService, cfg.CacheTTL, logger)

	publisher := events.NewGoChannelEventPublisher(slogBase)
	defer publisher.Close()

	historyStore := history.NewStore()
	sessions := services.NewSessionService(generator, historyStore, publisher, v, logger, nil)
	exports := services.NewExportService(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// In-process consumer: log lifecycle events as they are published.
	go consumeLifecycleEvents(ctx, publisher, logger)

	// Quiz timer: one tick per second while a quiz is active.
	go runTicker(ctx, sessions)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))

	handlerManager := handlers.NewHandlerManager(sessions, exports, historyStore, v, logger)
	handlerManager.SetupRoutes(router)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Starting quizgen service", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.LogError(err, "Server stopped unexpectedly")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.LogError(err, "Graceful shutdown failed")
	}
}

// runTicker drives the quiz timer with wall-clock seconds.
func runTicker(ctx context.Context, sessions *services.SessionService) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sessions.Tick(1)
		}
	}
}

// consumeLifecycleEvents subscribes to the in-process lifecycle topic and logs
// every event. A real deployment could attach further consumers here.
func consumeLifecycleEvents(ctx context.Context, publisher *events.GoChannelEventPublisher, logger utils.Logger) {
	messages, err := publisher.Subscribe(ctx)
	if err != nil {
		logger.LogError(err, "Failed to subscribe to lifecycle events")
		return
	}

	for msg := range messages {
		var event events.QuizEvent
		if err := json.Unmarshal(msg.Payload, &event); err != nil {
			logger.Warn("Malformed lifecycle event", "message_id", msg.UUID, "error", err)
			msg.Ack()
			continue
		}
		logger.Info("Lifecycle event",
			"event_id", event.ID,
			"event_type", event.Type,
			"source", event.Source)
		msg.Ack()
	}
}
