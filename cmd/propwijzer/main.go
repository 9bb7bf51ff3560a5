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
	"go.uber.org/zap"

	"github.com/propwijzer/propwijzer/internal/config"
	"github.com/propwijzer/propwijzer/internal/content"
	"github.com/propwijzer/propwijzer/internal/db"
	dbMemory "github.com/propwijzer/propwijzer/internal/db/memory"
	dbRedis "github.com/propwijzer/propwijzer/internal/db/redis"
	logpkg "github.com/propwijzer/propwijzer/internal/logger"
	"github.com/propwijzer/propwijzer/internal/metrics"
	catalogrepo "github.com/propwijzer/propwijzer/internal/repository/catalog"
	clickrepo "github.com/propwijzer/propwijzer/internal/repository/click"
	chiTransport "github.com/propwijzer/propwijzer/internal/transport/chi"
	kafkaTransport "github.com/propwijzer/propwijzer/internal/transport/kafka"
	healthuc "github.com/propwijzer/propwijzer/internal/usecase/health"
	quizuc "github.com/propwijzer/propwijzer/internal/usecase/quiz"
	searchuc "github.com/propwijzer/propwijzer/internal/usecase/search"
	trackinguc "github.com/propwijzer/propwijzer/internal/usecase/tracking"
	"github.com/propwijzer/propwijzer/internal/version"
)

func main() {
	// Load configuration based on ENV
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

	logger.Info("Starting propwijzer API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("data_dir", cfg.Catalog.DataDir),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	// Click store: Redis in deployed environments, in-memory when no
	// database is configured (counters reset on restart, nothing else).
	var store db.Store
	if len(cfg.Database.Addrs) > 0 {
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Database.Addrs,
			Password: cfg.Database.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create click store", zap.Error(err))
		}

		ctx := context.Background()
		readiness := time.Duration(cfg.Database.ReadinessTimeout) * time.Second
		if err := store.WaitForReady(ctx, readiness); err != nil {
			logger.Fatal("Click store not ready", zap.Error(err))
		}
		logger.Info("Connected to click store")
	} else {
		store = dbMemory.NewStore()
		logger.Warn("No database configured, using in-memory click store")
	}
	defer store.Close()

	// Content catalog and quiz definition — loaded once, immutable.
	cat, quizDef, err := catalogrepo.Load(cfg.Catalog.DataDir)
	if err != nil {
		logger.Fatal("Failed to load catalog", zap.Error(err))
	}
	logger.Info("Catalog loaded",
		zap.Int("firms", len(cat.Firms)),
		zap.Int("cities", len(cat.Cities)),
		zap.Int("niches", len(cat.Niches)),
		zap.Int("tools", len(cat.Tools)),
		zap.Int("posts", len(cat.Posts)),
		zap.Int("glossary", len(cat.Glossary)),
		zap.Int("quiz_questions", len(quizDef.Questions)),
	)

	// Register site metrics explicitly (no init())
	metrics.RegisterSiteMetrics()

	counterTTL := time.Duration(cfg.Tracking.CounterTTLDays) * 24 * time.Hour
	counters := clickrepo.New(store, cfg.Database.KeyPrefix, counterTTL)

	// Optional kafka click-event publisher.
	var publisher trackinguc.Publisher
	if len(cfg.Tracking.Brokers) > 0 {
		kp := kafkaTransport.NewPublisher(cfg.Tracking.Brokers, cfg.Tracking.Topic)
		defer func() {
			if err := kp.Close(); err != nil {
				logger.Warn("close click publisher", zap.Error(err))
			}
		}()
		publisher = kp
		logger.Info("Click event publisher enabled",
			zap.Strings("brokers", cfg.Tracking.Brokers),
			zap.String("topic", cfg.Tracking.Topic),
		)
	}

	// Create use case services
	searchSvc := searchuc.New(cat, cfg.Search.PopularSearches, counters)
	quizSvc := quizuc.New(quizDef)
	trackingSvc := trackinguc.New(cat, counters, publisher)
	healthSvc := healthuc.New(store)

	server := chiTransport.NewServer(
		searchSvc, quizSvc, trackingSvc, healthSvc,
		content.NewRenderer(), cat, logger,
		cfg.Search.DefaultLimit, cfg.Search.MaxLimit,
	)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	server.Register(r, cfg.Auth.AdminKeys)

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
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
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

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
