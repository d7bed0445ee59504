package arttinder

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const defaultTimeout = 60 * time.Second

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	httpClient *http.Client
	timeout    time.Duration
	userID     string
	pexelsKey  string

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithHTTPClient sets the HTTP client used for all calls. WithTimeout is ignored when set.
func WithHTTPClient(hc *http.Client) Option {
	return optionFunc(func(c *clientConfig) {
		c.httpClient = hc
	})
}

// WithTimeout sets the per-call timeout of the default HTTP client.
// Defaults to 60s; recommendations run many provider searches.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.timeout = d
	})
}

// WithUserID sets the X-User-Id sent with every call.
func WithUserID(id string) Option {
	return optionFunc(func(c *clientConfig) {
		c.userID = id
	})
}

// WithPexelsKey sends a photo provider key instead of relying on the server's configured key.
func WithPexelsKey(key string) Option {
	return optionFunc(func(c *clientConfig) {
		c.pexelsKey = key
	})
}

// WithLogger enables structured logging of calls. Pass nil to disable (default).
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers call metrics on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
