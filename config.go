package vacationmap

import (
	"log/slog"
	"net/http"
)

// Config contains configuration options for the client, loader and renderer.
type Config struct {
	BaseURL           string       // Backend root, e.g. "http://localhost:5000" (default: "")
	HTTPClient        *http.Client // Client for all backend requests (default: no timeout)
	Logger            *slog.Logger // Destination for warnings (default: slog.Default())
	CacheSize         int          // GeoJSON documents kept in memory; 0 disables (default: 256)
	SimplifyTolerance float64      // Route simplification threshold; 0 disables (default: 0)
	Fit               FitOptions   // Viewport fitting parameters
}

// Option is a functional option for configuring the pipeline.
type Option func(*Config)

// WithBaseURL sets the backend root URL.
func WithBaseURL(base string) Option {
	return func(c *Config) {
		c.BaseURL = base
	}
}

// WithHTTPClient replaces the HTTP client, e.g. to add a timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Config) {
		c.HTTPClient = hc
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// WithCacheSize sets how many fetched GeoJSON documents are cached.
func WithCacheSize(n int) Option {
	return func(c *Config) {
		c.CacheSize = n
	}
}

// WithSimplifyTolerance enables route simplification with the given tolerance.
func WithSimplifyTolerance(tol float64) Option {
	return func(c *Config) {
		c.SimplifyTolerance = tol
	}
}

// WithFitOptions overrides the viewport fitting parameters.
func WithFitOptions(f FitOptions) Option {
	return func(c *Config) {
		c.Fit = f
	}
}

// defaultConfig returns the default configuration.
func defaultConfig() *Config {
	return &Config{
		HTTPClient: &http.Client{},
		Logger:     slog.Default(),
		CacheSize:  256,
		Fit:        DefaultFitOptions,
	}
}

func newConfig(opts []Option) *Config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return cfg
}
