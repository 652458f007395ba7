package videosearch

import (
	"fmt"
	"time"
)

// Provider names accepted by NewProvider.
const (
	ProviderYouTube = "youtube"
	ProviderLocal   = "local"
	ProviderMock    = "mock"
	ProviderNone    = "none"
)

// Config holds video search provider configuration.
type Config struct {
	// Provider selects the backend: youtube, local, mock or none.
	Provider string

	YouTube YouTubeConfig
	Retry   RetryConfig

	// Timeout bounds a single search including retries.
	Timeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderLocal,
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     5 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 10 * time.Second,
	}
}

// Validate checks that the selected provider has what it needs.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderYouTube:
		if c.YouTube.APIKey == "" {
			return fmt.Errorf("COURSEBUDDY_YOUTUBE_API_KEY is required for the youtube provider")
		}
	case ProviderLocal, ProviderMock, ProviderNone:
	default:
		return fmt.Errorf("unknown video provider: %q", c.Provider)
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry attempts must be at least 1, got %d", c.Retry.MaxAttempts)
	}
	return nil
}
