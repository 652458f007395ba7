// Package config assembles runtime configuration from defaults, an optional
// .env file and COURSEBUDDY_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/abhisek/coursebuddy/internal/session"
	"github.com/abhisek/coursebuddy/internal/videosearch"
)

// Config is the full application configuration.
type Config struct {
	DBPath      string `env:"COURSEBUDDY_DB"`
	LogLevel    string `env:"COURSEBUDDY_LOG_LEVEL"`
	LogFormat   string `env:"COURSEBUDDY_LOG_FORMAT"`
	ListenAddr  string `env:"COURSEBUDDY_LISTEN_ADDR"`
	CatalogPath string `env:"COURSEBUDDY_CATALOG"`

	Video   VideoConfig
	Session SessionConfig
}

// VideoConfig configures the video search provider.
type VideoConfig struct {
	Provider        string        `env:"COURSEBUDDY_VIDEO_PROVIDER"`
	YouTubeAPIKey   string        `env:"COURSEBUDDY_YOUTUBE_API_KEY"`
	YouTubeEndpoint string        `env:"COURSEBUDDY_YOUTUBE_ENDPOINT"`
	RetryAttempts   int           `env:"COURSEBUDDY_VIDEO_RETRY_ATTEMPTS"`
	RetryInitial    time.Duration `env:"COURSEBUDDY_VIDEO_RETRY_INITIAL_WAIT"`
	RetryMax        time.Duration `env:"COURSEBUDDY_VIDEO_RETRY_MAX_WAIT"`
	RetryMultiplier float64       `env:"COURSEBUDDY_VIDEO_RETRY_MULTIPLIER"`
	Timeout         time.Duration `env:"COURSEBUDDY_VIDEO_TIMEOUT"`
}

// SessionConfig configures assistant pacing.
type SessionConfig struct {
	ThinkingBase    time.Duration `env:"COURSEBUDDY_THINKING_BASE"`
	ThinkingPerChar time.Duration `env:"COURSEBUDDY_THINKING_PER_CHAR"`
	ThinkingCap     time.Duration `env:"COURSEBUDDY_THINKING_CAP"`
	ThinkingJitter  time.Duration `env:"COURSEBUDDY_THINKING_JITTER"`
	StreamTick      time.Duration `env:"COURSEBUDDY_STREAM_TICK"`
	SettleDelay     time.Duration `env:"COURSEBUDDY_SETTLE_DELAY"`
	IdleThreshold   int           `env:"COURSEBUDDY_IDLE_THRESHOLD"`
	IdleTick        time.Duration `env:"COURSEBUDDY_IDLE_TICK"`

	// TTL closes server sessions with no activity and no open stream for
	// this long. Zero keeps them until deleted.
	TTL time.Duration `env:"COURSEBUDDY_SESSION_TTL"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	v := videosearch.DefaultConfig()
	s := session.DefaultConfig()
	return Config{
		LogLevel:   "info",
		LogFormat:  "text",
		ListenAddr: "127.0.0.1:8080",
		Video: VideoConfig{
			Provider:        v.Provider,
			RetryAttempts:   v.Retry.MaxAttempts,
			RetryInitial:    v.Retry.InitialWait,
			RetryMax:        v.Retry.MaxWait,
			RetryMultiplier: v.Retry.Multiplier,
			Timeout:         v.Timeout,
		},
		Session: SessionConfig{
			ThinkingBase:    s.ThinkingBase,
			ThinkingPerChar: s.ThinkingPerChar,
			ThinkingCap:     s.ThinkingCap,
			ThinkingJitter:  s.ThinkingJitter,
			StreamTick:      s.StreamTick,
			SettleDelay:     s.SettleDelay,
			IdleThreshold:   s.IdleThreshold,
			IdleTick:        s.IdleTick,
			TTL:             30 * time.Minute,
		},
	}
}

// Load builds the configuration. envFile names a .env file to read; when
// empty, ./.env is read if it exists. Variables already set in the
// environment win over the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := DefaultConfig()
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	cfg.discoverYouTube()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// discoverYouTube switches to the YouTube provider when no provider was
// chosen explicitly and a standard key is present.
func (c *Config) discoverYouTube() {
	if os.Getenv("COURSEBUDDY_VIDEO_PROVIDER") != "" {
		return
	}
	key := c.Video.YouTubeAPIKey
	if key == "" {
		key = os.Getenv("YOUTUBE_API_KEY")
	}
	if key != "" {
		c.Video.Provider = videosearch.ProviderYouTube
		c.Video.YouTubeAPIKey = key
	}
}

// Validate checks the configuration for contradictions.
func (c Config) Validate() error {
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q (want text or json)", c.LogFormat)
	}
	if err := c.VideoSearch().Validate(); err != nil {
		return err
	}

	s := c.Session
	for name, d := range map[string]time.Duration{
		"thinking base":     s.ThinkingBase,
		"thinking per char": s.ThinkingPerChar,
		"thinking cap":      s.ThinkingCap,
		"thinking jitter":   s.ThinkingJitter,
		"settle delay":      s.SettleDelay,
		"idle tick":         s.IdleTick,
		"session ttl":       s.TTL,
	} {
		if d < 0 {
			return fmt.Errorf("%s must not be negative, got %s", name, d)
		}
	}
	if s.StreamTick <= 0 {
		return fmt.Errorf("stream tick must be positive, got %s", s.StreamTick)
	}
	if s.IdleThreshold < 1 {
		return fmt.Errorf("idle threshold must be at least 1, got %d", s.IdleThreshold)
	}
	return nil
}

// VideoSearch returns the video provider configuration.
func (c Config) VideoSearch() videosearch.Config {
	return videosearch.Config{
		Provider: c.Video.Provider,
		YouTube: videosearch.YouTubeConfig{
			APIKey:   c.Video.YouTubeAPIKey,
			Endpoint: c.Video.YouTubeEndpoint,
		},
		Retry: videosearch.RetryConfig{
			MaxAttempts: c.Video.RetryAttempts,
			InitialWait: c.Video.RetryInitial,
			MaxWait:     c.Video.RetryMax,
			Multiplier:  c.Video.RetryMultiplier,
		},
		Timeout: c.Video.Timeout,
	}
}

// SessionTiming returns the session pacing configuration.
func (c Config) SessionTiming() session.Config {
	s := c.Session
	return session.Config{
		ThinkingBase:    s.ThinkingBase,
		ThinkingPerChar: s.ThinkingPerChar,
		ThinkingCap:     s.ThinkingCap,
		ThinkingJitter:  s.ThinkingJitter,
		StreamTick:      s.StreamTick,
		SettleDelay:     s.SettleDelay,
		IdleThreshold:   s.IdleThreshold,
		IdleTick:        s.IdleTick,
	}
}

// NewLogger builds a slog logger writing to w in the configured format.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	level, _ := parseLevel(c.LogLevel)
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}
