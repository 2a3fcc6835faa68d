package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/claro-labs/claro/internal/auth"
	"github.com/claro-labs/claro/internal/config"
	logpkg "github.com/claro-labs/claro/internal/logger"
	"github.com/claro-labs/claro/internal/metrics"
	"github.com/claro-labs/claro/internal/repository/contextstore"
	"github.com/claro-labs/claro/internal/repository/creations"
	chiTransport "github.com/claro-labs/claro/internal/transport/chi"
	"github.com/claro-labs/claro/internal/transport/gemini"
	"github.com/claro-labs/claro/internal/transport/youtube"
	chatuc "github.com/claro-labs/claro/internal/usecase/chat"
	generateuc "github.com/claro-labs/claro/internal/usecase/generate"
	healthuc "github.com/claro-labs/claro/internal/usecase/health"
	summarizeuc "github.com/claro-labs/claro/internal/usecase/summarize"
	"github.com/claro-labs/claro/internal/version"
)

func main() {
	// Load .env before anything reads the environment; missing file is fine.
	_ = godotenv.Load()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting claro API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("context_store", cfg.ContextStore.Driver),
	)

	ctx := context.Background()

	// Register completion metrics explicitly (no init())
	metrics.RegisterCompletionMetrics()

	// Context store
	var store contextstore.Store
	ttl := time.Duration(cfg.ContextStore.TTLSec) * time.Second
	switch cfg.ContextStore.Driver {
	case "redis":
		redisStore, err := contextstore.NewRedis(contextstore.RedisConfig{
			Addrs:     cfg.ContextStore.Addrs,
			Password:  cfg.ContextStore.Password,
			KeyPrefix: cfg.ContextStore.KeyPrefix,
			TTL:       ttl,
		})
		if err != nil {
			logger.Fatal("Failed to create redis context store", zap.Error(err))
		}
		defer redisStore.Close()
		store = redisStore
	default:
		store = contextstore.NewMemory(ttl)
	}

	// Creation log; runs without persistence when no DSN is configured.
	var log creations.Log = creations.Nop{}
	if cfg.Creations.DSN != "" {
		repo, err := creations.New(ctx, cfg.Creations.DSN)
		if err != nil {
			logger.Fatal("Failed to connect creation log", zap.Error(err))
		}
		defer repo.Close()
		log = repo
		logger.Info("Connected to creation log database")
	} else {
		logger.Warn("No creations DSN configured, generation history is disabled")
	}

	// Completion backend
	completer := gemini.NewClient(&gemini.Config{
		APIKey:  cfg.Completion.APIKey,
		BaseURL: cfg.Completion.BaseURL,
		Model:   cfg.Completion.Model,
		Timeout: time.Duration(cfg.Completion.TimeoutSec) * time.Second,
		Logger:  logger,
	})

	// Video catalog
	videos, err := youtube.NewClient(ctx, cfg.Catalog.APIKey, logger)
	if err != nil {
		logger.Fatal("Failed to create video catalog client", zap.Error(err))
	}

	// Use case services
	summarizeSvc := summarizeuc.New(completer, store, videos, log, logger)
	chatSvc := chatuc.New(store, completer, log, logger)
	generateSvc := generateuc.New(completer, log, logger)
	healthSvc := healthuc.New(log, completer)

	server := chiTransport.NewServer(summarizeSvc, chatSvc, generateSvc, healthSvc,
		chiTransport.UploadConfig{
			Dir:      cfg.Uploads.Dir,
			MaxBytes: int64(cfg.Uploads.MaxSizeMB) << 20,
		}, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.IdentityMiddleware(auth.NewJWT(cfg.Auth.JWTSecret)))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]any{
						"success": false,
						"message": "Server error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.WithContext(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
