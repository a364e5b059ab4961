package wordrank

import (
	"log/slog"

	"github.com/jamesainslie/go-wordrank/rank"
	"github.com/jamesainslie/go-wordrank/tally"
)

// Option configures a Pipeline.
type Option func(*config)

type config struct {
	topFraction float64
	minLength   int
	language    string
	stateCodec  tally.Codec
	logger      *slog.Logger
}

func defaultConfig() config {
	rc := rank.DefaultConfig()
	return config{
		topFraction: rc.TopFraction,
		minLength:   rc.MinLength,
		language:    "eng",
		logger:      slog.Default(),
	}
}

// WithTopFraction sets the share of ranked words considered for the
// generation list (default: 0.25).
func WithTopFraction(f float64) Option {
	return func(c *config) {
		if f >= 0 && f <= 1 {
			c.topFraction = f
		}
	}
}

// WithMinLength sets the shortest word length allowed in the generation list
// (default: 4).
func WithMinLength(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.minLength = n
		}
	}
}

// WithLanguage sets the ISO 639-3 code books are expected to be written in
// (default: "eng"). Mismatches are logged, never skipped. An empty code turns
// the check off.
func WithLanguage(code string) Option {
	return func(c *config) {
		c.language = code
	}
}

// WithStateCodec fixes the tally state format regardless of the state file
// extension (default: nil, ".pb" and ".binpb" select protobuf, anything else
// JSON).
func WithStateCodec(c tally.Codec) Option {
	return func(cfg *config) {
		cfg.stateCodec = c
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
