package resources

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/coursebuddy/internal/learner"
	"github.com/abhisek/coursebuddy/internal/videosearch"
)

type panickingProvider struct{}

func (panickingProvider) Search(context.Context, videosearch.Request) ([]videosearch.Video, error) {
	panic("kaboom")
}

func (panickingProvider) Name() string { return "panicky" }

type slowProvider struct{}

func (slowProvider) Search(ctx context.Context, _ videosearch.Request) ([]videosearch.Video, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (slowProvider) Name() string { return "slow" }

func TestSearchVideos_ProviderOrderAndLimit(t *testing.T) {
	mock := videosearch.NewMockProvider(videosearch.MockResponse{Videos: []videosearch.Video{
		{Title: "one", URL: "u1"}, {Title: "two", URL: "u2"}, {Title: "three", URL: "u3"},
	}})
	g := NewGateway(mock, 0)

	items := g.SearchVideos(context.Background(), "go tutorial programming", 2)
	require.Len(t, items, 2)
	assert.Equal(t, "one", items[0].Title)
	assert.Equal(t, "two", items[1].Title)
	assert.Equal(t, KindVideo, items[0].Kind)
	assert.Equal(t, 2, mock.Calls[0].MaxResults)
}

func TestSearchVideos_ClampsLimit(t *testing.T) {
	mock := videosearch.NewMockProvider()
	g := NewGateway(mock, 0)

	g.SearchVideos(context.Background(), "go", 50)
	g.SearchVideos(context.Background(), "go", 0)
	assert.Equal(t, MaxSearchResults, mock.Calls[0].MaxResults)
	assert.Equal(t, 1, mock.Calls[1].MaxResults)
}

func TestSearchVideos_FailuresYieldEmpty(t *testing.T) {
	tests := []struct {
		name     string
		provider videosearch.Provider
	}{
		{"error", videosearch.NewMockProvider(videosearch.MockResponse{Err: errors.New("HTTP 500")})},
		{"panic", panickingProvider{}},
		{"timeout", slowProvider{}},
		{"nil provider", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGateway(tt.provider, 10*time.Millisecond)
			assert.NotPanics(t, func() {
				assert.Empty(t, g.SearchVideos(context.Background(), "python", 5))
			})
		})
	}
}

func TestSearchVideos_BlankQuerySkipsProvider(t *testing.T) {
	mock := videosearch.NewMockProvider()
	g := NewGateway(mock, 0)
	assert.Empty(t, g.SearchVideos(context.Background(), "   ", 5))
	assert.Equal(t, 0, mock.CallCount())
}

func TestMappers(t *testing.T) {
	vids := FromVideos([]learner.Video{{Title: "v", Description: "d", URL: "u"}})
	require.Len(t, vids, 1)
	assert.Equal(t, ResourceItem{Kind: KindVideo, Title: "v", Description: "d", URL: "u"}, vids[0])

	mats := FromMaterials([]learner.Material{{Title: "m", Content: "body"}})
	require.Len(t, mats, 1)
	assert.Equal(t, KindMaterial, mats[0].Kind)

	assert.Equal(t, KindQuiz, Quiz("Practice", "").Kind)
}
