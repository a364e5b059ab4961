package gutenberg

import (
	"log/slog"
	"net/http"
	"time"
)

// Option configures a Client.
type Option func(*config)

type config struct {
	httpClient  *http.Client
	backoff     time.Duration
	downloadURL string
	userAgent   string
	logger      *slog.Logger
}

func defaultConfig() config {
	return config{
		httpClient:  &http.Client{Timeout: 2 * time.Minute},
		backoff:     10 * time.Second,
		downloadURL: DefaultDownloadURL,
		userAgent:   "go-wordrank/gutenfetch",
		logger:      slog.Default(),
	}
}

// WithHTTPClient sets the HTTP client (default: 2 minute timeout).
func WithHTTPClient(c *http.Client) Option {
	return func(cfg *config) {
		if c != nil {
			cfg.httpClient = c
		}
	}
}

// WithBackoff sets the wait after a rate limit or failed download (default: 10s).
func WithBackoff(d time.Duration) Option {
	return func(cfg *config) {
		if d >= 0 {
			cfg.backoff = d
		}
	}
}

// WithDownloadURL sets the book URL pattern; %d is replaced by the book ID
// (default: DefaultDownloadURL).
func WithDownloadURL(pattern string) Option {
	return func(cfg *config) {
		if pattern != "" {
			cfg.downloadURL = pattern
		}
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(cfg *config) {
		if l != nil {
			cfg.logger = l
		}
	}
}
