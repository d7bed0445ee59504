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

	"github.com/kailas-cloud/arttinder/internal/config"
	"github.com/kailas-cloud/arttinder/internal/db"
	dbFile "github.com/kailas-cloud/arttinder/internal/db/file"
	dbRedis "github.com/kailas-cloud/arttinder/internal/db/redis"
	"github.com/kailas-cloud/arttinder/internal/domain"
	logpkg "github.com/kailas-cloud/arttinder/internal/logger"
	"github.com/kailas-cloud/arttinder/internal/metrics"
	"github.com/kailas-cloud/arttinder/internal/repository/embcache"
	preferencerepo "github.com/kailas-cloud/arttinder/internal/repository/preference"
	userrepo "github.com/kailas-cloud/arttinder/internal/repository/user"
	chiTransport "github.com/kailas-cloud/arttinder/internal/transport/chi"
	"github.com/kailas-cloud/arttinder/internal/transport/datamuse"
	openaiTransport "github.com/kailas-cloud/arttinder/internal/transport/openai"
	"github.com/kailas-cloud/arttinder/internal/transport/pexels"
	"github.com/kailas-cloud/arttinder/internal/usecase/candidate"
	embeddinguc "github.com/kailas-cloud/arttinder/internal/usecase/embedding"
	healthuc "github.com/kailas-cloud/arttinder/internal/usecase/health"
	imagesuc "github.com/kailas-cloud/arttinder/internal/usecase/images"
	preferenceuc "github.com/kailas-cloud/arttinder/internal/usecase/preference"
	"github.com/kailas-cloud/arttinder/internal/usecase/rank"
	recommenduc "github.com/kailas-cloud/arttinder/internal/usecase/recommend"
	suggestuc "github.com/kailas-cloud/arttinder/internal/usecase/suggest"
	useruc "github.com/kailas-cloud/arttinder/internal/usecase/user"
	"github.com/kailas-cloud/arttinder/internal/version"
)

const healthTimeout = 5 * time.Second

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting arttinder API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Bool("llm_enabled", cfg.LLM.APIKey != ""),
		zap.Bool("embedding_enabled", cfg.Embedding.Enabled),
	)

	metrics.RegisterUpstreamMetrics()

	store, err := openStore(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Upstream clients
	photos := pexels.NewBreakerClient(
		pexels.NewClient(cfg.Pexels.BaseURL, time.Duration(cfg.Pexels.TimeoutSec)*time.Second),
		pexels.BreakerConfig{
			MinRequests:  cfg.Pexels.Breaker.MinRequests,
			FailureRatio: cfg.Pexels.Breaker.FailureRatio,
			Interval:     time.Duration(cfg.Pexels.Breaker.IntervalSec) * time.Second,
			OpenTimeout:  time.Duration(cfg.Pexels.Breaker.OpenSec) * time.Second,
		},
		logger,
	)
	words := datamuse.NewClient(cfg.Datamuse.BaseURL, time.Duration(cfg.Datamuse.TimeoutSec)*time.Second)

	// Pass a nil interface (not a typed nil pointer) when no LLM key is configured.
	var completer candidate.Completer
	if cfg.LLM.APIKey != "" {
		completer = openaiTransport.NewCompleter(&openaiTransport.CompleterConfig{
			APIKey:      cfg.LLM.APIKey,
			BaseURL:     cfg.LLM.BaseURL,
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			MaxTokens:   cfg.LLM.MaxTokens,
			Timeout:     time.Duration(cfg.LLM.TimeoutSec) * time.Second,
		})
	}
	llmGen := candidate.NewLLMGenerator(completer)
	assocGen := candidate.NewWordAssociationGenerator(words)

	embedder, embedHealth := buildEmbedder(cfg.Embedding, store, logger)
	ranker := rank.New(embedder)

	// Use case services
	prefSvc := preferenceuc.New(preferencerepo.New(store))
	imagesSvc := imagesuc.New(photos, cfg.Pexels.APIKey)

	server := chiTransport.NewServer(chiTransport.Services{
		Images:    imagesSvc,
		Suggest:   suggestuc.New(llmGen, assocGen, ranker),
		Recommend: recommenduc.New(prefSvc, preferenceuc.NewExpander(llmGen, assocGen), photos),
		Prefs:     prefSvc,
		Users:     useruc.New(userrepo.New(store)),
		Health: healthuc.New(healthTimeout,
			healthuc.Component{Name: "store", Checker: healthuc.CheckFunc(store.Ping), Required: true},
			healthuc.Component{Name: "pexels", Checker: photos},
			healthuc.Component{Name: "embedding", Checker: embedHealth},
		),
	})

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	server.Register(r, chiTransport.RouterConfig{
		AllowedOrigins:    cfg.CORS.AllowedOrigins,
		AllowCredentials:  cfg.CORS.AllowCredentials,
		MaxAgeSec:         cfg.CORS.MaxAgeSec,
		RateLimitRequests: cfg.RateLimit.Requests,
		RateLimitWindow:   time.Duration(cfg.RateLimit.WindowSec) * time.Second,
	})

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

// openStore creates the user and preference store for the configured driver.
func openStore(cfg config.DatabaseConfig) (db.Store, error) {
	switch cfg.Driver {
	case "redis", "valkey":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:     cfg.Addrs,
			Password:  cfg.Password,
			KeyPrefix: cfg.KeyPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("open %s store: %w", cfg.Driver, err)
		}
		return s, nil
	default:
		s, err := dbFile.NewStore(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("open file store: %w", err)
		}
		return s, nil
	}
}

// buildEmbedder assembles the decorator chain: OpenAI -> Cached -> Instrumented.
// Disabled embeddings return a nil embedder, which ranks by token overlap.
func buildEmbedder(
	cfg config.EmbeddingConfig,
	store db.Store,
	logger *zap.Logger,
) (domain.BatchEmbedder, healthuc.Checker) {
	if !cfg.Enabled {
		return nil, nil
	}

	base := openaiTransport.NewEmbedder(&openaiTransport.EmbedderConfig{
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		Model:      cfg.Model,
		Dimensions: cfg.Dimensions,
		Timeout:    time.Duration(cfg.TimeoutSec) * time.Second,
	})

	var embedder domain.Embedder = base
	if ttlStore, ok := store.(db.TTLStore); ok && cfg.Cache {
		embedder = embcache.New(base, ttlStore, cfg.Model,
			time.Duration(cfg.CacheTTLSec)*time.Second, metrics.EmbeddingCacheTotal, logger)
	}

	logger.Info("Embedder created",
		zap.String("model", cfg.Model),
		zap.Int("dimensions", cfg.Dimensions),
		zap.Bool("cache", cfg.Cache),
	)
	return embeddinguc.NewInstrumentedEmbedder(embedder, "openai", cfg.Model), base
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
					_ = json.NewEncoder(w).Encode(chiTransport.ErrorResponse{
						Code:    chiTransport.CodeInternalError,
						Message: "internal error",
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

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			}
			if tokens := ww.Header().Get(chiTransport.HeaderTokens); tokens != "" {
				fields = append(fields, zap.String("upstream_tokens", tokens))
			}
			// Canonical log line, one per request
			reqLogger.Info("http_request", fields...)
		})
	}
}
