package videosearch

import (
	"context"
	"log/slog"
	"time"

	"github.com/abhisek/coursebuddy/internal/store"
)

// LoggingProvider is a decorator that records every search as an event.
type LoggingProvider struct {
	inner     Provider
	eventRepo store.EventRepo
}

// WithLogging wraps a Provider with event logging.
func WithLogging(p Provider, repo store.EventRepo) Provider {
	return &LoggingProvider{inner: p, eventRepo: repo}
}

func (l *LoggingProvider) Search(ctx context.Context, req Request) ([]Video, error) {
	start := time.Now()
	videos, err := l.inner.Search(ctx, req)

	data := store.VideoSearchEventData{
		Provider:    l.inner.Name(),
		Query:       req.Query,
		MaxResults:  req.MaxResults,
		ResultCount: len(videos),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	// A failed event write never fails the search.
	if logErr := l.eventRepo.AppendVideoSearch(ctx, data); logErr != nil {
		slog.Warn("Failed to log video search event", "error", logErr)
	}

	return videos, err
}

func (l *LoggingProvider) Name() string {
	return l.inner.Name()
}
