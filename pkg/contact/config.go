package contact

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/teslashibe/go-folio/internal/httpc"
	"github.com/teslashibe/go-folio/internal/log"
)

// Config holds relay configuration.
// Use functional options (WithXxx) to set these values.
type Config struct {
	// Endpoint overrides the relay's API base URL.
	BaseURL string

	// HTTP client and per-request timeout
	Client  *http.Client
	Timeout time.Duration

	// Observability
	Logger *slog.Logger
}

// Option is a functional option for configuring relays.
type Option func(*Config)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *Config) {
		c.BaseURL = url
	}
}

// WithHTTPClient sets the HTTP client used for API calls.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Config) {
		c.Client = client
	}
}

// WithTimeout bounds each send.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.Timeout = timeout
	}
}

// WithLogger sets the structured logger for the relay.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() *Config {
	return &Config{
		Client:  httpc.Client,
		Timeout: 15 * time.Second,
		Logger:  log.L(),
	}
}

// Apply applies functional options to the config.
func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
	if c.Client == nil {
		c.Client = httpc.Client
	}
	if c.Logger == nil {
		c.Logger = log.L()
	}
}
