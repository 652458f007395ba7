package videosearch

import (
	"context"
	"fmt"

	"github.com/abhisek/coursebuddy/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped with retry and
// logging middleware. It returns nil for the "none" provider.
func NewProvider(ctx context.Context, cfg Config, s *store.Store) (Provider, error) {
	var base Provider

	switch cfg.Provider {
	case ProviderYouTube:
		yt, err := NewYouTubeProvider(ctx, cfg.YouTube)
		if err != nil {
			return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
		}
		base = yt
	case ProviderLocal:
		base = NewLocalProvider(s.CourseRepo())
	case ProviderMock:
		return NewMockProvider(), nil
	case ProviderNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown video provider: %q", cfg.Provider)
	}

	// caller → retry → logging → base
	logged := WithLogging(base, s.EventRepo())
	return WithRetry(logged, cfg.Retry), nil
}
