// Package resources turns collaborator data into the resource items attached
// to assistant responses, and fronts the external video search.
package resources

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/abhisek/coursebuddy/internal/learner"
	"github.com/abhisek/coursebuddy/internal/videosearch"
)

// Kind tags a ResourceItem.
type Kind string

const (
	KindVideo    Kind = "video"
	KindMaterial Kind = "material"
	KindQuiz     Kind = "quiz"
)

// ResourceItem is a recommended artifact shown next to a response.
type ResourceItem struct {
	Kind        Kind   `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
}

// MaxSearchResults bounds a single gateway search.
const MaxSearchResults = videosearch.MaxResultsLimit

// Gateway wraps a video provider and never surfaces its failures.
type Gateway struct {
	provider videosearch.Provider
	timeout  time.Duration
}

// NewGateway creates a Gateway. A nil provider makes every search empty.
// A zero timeout leaves the caller's deadline in charge.
func NewGateway(p videosearch.Provider, timeout time.Duration) *Gateway {
	return &Gateway{provider: p, timeout: timeout}
}

// SearchVideos returns up to limit videos for the query in provider order.
// Provider errors are logged and yield an empty result.
func (g *Gateway) SearchVideos(ctx context.Context, query string, limit int) []ResourceItem {
	query = strings.TrimSpace(query)
	if g == nil || g.provider == nil || query == "" {
		return nil
	}
	limit = min(max(limit, 1), MaxSearchResults)

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	videos, err := g.searchSafely(ctx, query, limit)
	if err != nil {
		slog.Warn("Video search failed", "provider", g.provider.Name(), "query", query, "error", err)
		return nil
	}

	items := make([]ResourceItem, 0, min(len(videos), limit))
	for _, v := range videos {
		if len(items) == limit {
			break
		}
		items = append(items, ResourceItem{
			Kind:        KindVideo,
			Title:       v.Title,
			Description: v.Description,
			URL:         v.URL,
		})
	}
	return items
}

// searchSafely converts a provider panic into an error.
func (g *Gateway) searchSafely(ctx context.Context, query string, limit int) (videos []videosearch.Video, err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Video provider panicked", "provider", g.provider.Name(), "panic", r)
			videos, err = nil, errPanicked
		}
	}()
	return g.provider.Search(ctx, videosearch.Request{Query: query, MaxResults: limit})
}

// FromVideos maps course videos to resource items.
func FromVideos(videos []learner.Video) []ResourceItem {
	items := make([]ResourceItem, 0, len(videos))
	for _, v := range videos {
		items = append(items, ResourceItem{Kind: KindVideo, Title: v.Title, Description: v.Description, URL: v.URL})
	}
	return items
}

// FromMaterials maps course materials to resource items.
func FromMaterials(materials []learner.Material) []ResourceItem {
	items := make([]ResourceItem, 0, len(materials))
	for _, m := range materials {
		items = append(items, ResourceItem{Kind: KindMaterial, Title: m.Title})
	}
	return items
}

// Quiz returns a quiz placeholder item.
func Quiz(title, description string) ResourceItem {
	return ResourceItem{Kind: KindQuiz, Title: title, Description: description}
}

// Video returns a video item without a link.
func Video(title, description string) ResourceItem {
	return ResourceItem{Kind: KindVideo, Title: title, Description: description}
}

// Material returns a material item.
func Material(title, description string) ResourceItem {
	return ResourceItem{Kind: KindMaterial, Title: title, Description: description}
}
