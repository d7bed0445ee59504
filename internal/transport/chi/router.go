package chi

import (
	"net/http"
	"time"

	gochi "github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/kailas-cloud/arttinder/internal/metrics"
)

// CodeRateLimited is returned when a client exceeds the request rate.
const CodeRateLimited ErrorCode = "rate_limited"

// RouterConfig holds cross-origin and rate-limit settings.
// RateLimitRequests == 0 disables limiting.
type RouterConfig struct {
	AllowedOrigins    []string
	AllowCredentials  bool
	MaxAgeSec         int
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// Register mounts the API routes and their middleware on r.
// Health and metrics are exempt from rate limiting.
func (s *Server) Register(r gochi.Router, cfg RouterConfig) {
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", HeaderUserID, HeaderPexelsKey},
		ExposedHeaders:   []string{"X-Request-ID", HeaderTokens},
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAgeSec,
	}))
	r.Use(IdentityMiddleware)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, CodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, CodeBadRequest, "method not allowed")
	})

	r.Get("/health", s.HealthCheck)
	r.Get(metrics.MetricsPath, s.Metrics)

	r.Group(func(r gochi.Router) {
		r.Use(rateLimit(cfg))

		r.Get("/images/search", s.SearchImages)
		r.Get("/images/validate-key", s.ValidateKey)
		r.Get("/suggest", s.Suggest)
		r.Get("/user/validate", s.ValidateHandle)
		r.Post("/user/upsert", s.UpsertUser)

		r.Group(func(r gochi.Router) {
			r.Use(RequireUser)

			r.Get("/images/recommend", s.RecommendImages)
			r.Get("/prefs", s.GetPrefs)
			r.Post("/prefs", s.SetPrefs)
		})
	})
}

func rateLimit(cfg RouterConfig) func(http.Handler) http.Handler {
	if cfg.RateLimitRequests <= 0 {
		return func(next http.Handler) http.Handler {
			return next
		}
	}
	return httprate.Limit(
		cfg.RateLimitRequests,
		cfg.RateLimitWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
			writeError(w, http.StatusTooManyRequests, CodeRateLimited, "rate limit exceeded")
		}),
	)
}
