package videosearch

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/http"
	"strconv"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

const youtubeWatchURL = "https://www.youtube.com/watch?v="

// YouTubeConfig holds YouTube Data API configuration.
type YouTubeConfig struct {
	APIKey string

	// Endpoint overrides the API base URL. Empty uses the public endpoint.
	Endpoint string
}

// YouTubeProvider searches videos through the YouTube Data API v3.
type YouTubeProvider struct {
	svc *youtube.Service
}

// NewYouTubeProvider creates a new YouTube provider.
func NewYouTubeProvider(ctx context.Context, cfg YouTubeConfig) (*YouTubeProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("youtube API key is required")
	}

	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	svc, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create YouTube client: %w", err)
	}
	return &YouTubeProvider{svc: svc}, nil
}

func (p *YouTubeProvider) Search(ctx context.Context, req Request) ([]Video, error) {
	resp, err := p.svc.Search.List([]string{"snippet"}).
		Q(req.Query).
		Type("video").
		MaxResults(int64(req.Limit())).
		Context(ctx).
		Do()
	if err != nil {
		return nil, mapYouTubeError(err)
	}

	videos := make([]Video, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}
		v := Video{
			ID:          item.Id.VideoId,
			Title:       html.UnescapeString(item.Snippet.Title),
			Description: html.UnescapeString(item.Snippet.Description),
			URL:         youtubeWatchURL + item.Id.VideoId,
			Channel:     item.Snippet.ChannelTitle,
		}
		if v.Description == "" {
			v.Description = "Tutorial by " + v.Channel
		}
		videos = append(videos, v)
		if len(videos) == req.Limit() {
			break
		}
	}
	return videos, nil
}

func (p *YouTubeProvider) Name() string {
	return "youtube"
}

func mapYouTubeError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return &ErrProviderUnavailable{Err: err}
	}

	switch {
	case apiErr.Code == http.StatusTooManyRequests || isQuotaError(apiErr):
		return &ErrRateLimit{RetryAfter: retryAfter(apiErr.Header), Err: err}
	case apiErr.Code >= 500:
		return &ErrProviderUnavailable{Err: err}
	case apiErr.Code >= 400:
		return &ErrBadRequest{Status: apiErr.Code, Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}

// isQuotaError reports a 403 caused by quota exhaustion rather than a bad key.
func isQuotaError(e *googleapi.Error) bool {
	if e.Code != http.StatusForbidden {
		return false
	}
	for _, item := range e.Errors {
		switch item.Reason {
		case "quotaExceeded", "rateLimitExceeded", "userRateLimitExceeded":
			return true
		}
	}
	return false
}

func retryAfter(h http.Header) time.Duration {
	if h == nil {
		return 0
	}
	secs, err := strconv.Atoi(h.Get("Retry-After"))
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
