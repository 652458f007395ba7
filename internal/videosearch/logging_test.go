package videosearch

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/coursebuddy/internal/learner"
	"github.com/abhisek/coursebuddy/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLogging_RecordsSuccessAndFailure(t *testing.T) {
	s := openTestStore(t)
	mock := NewMockProvider(
		MockResponse{Videos: []Video{{Title: "a"}, {Title: "b"}}},
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
	)
	p := WithLogging(mock, s.EventRepo())
	ctx := context.Background()

	_, err := p.Search(ctx, Request{Query: "go", MaxResults: 5})
	require.NoError(t, err)
	_, err = p.Search(ctx, Request{Query: "rust", MaxResults: 5})
	require.Error(t, err)

	events, err := s.EventRepo().QueryVideoSearches(ctx, store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "rust", events[0].Query)
	assert.False(t, events[0].Success)
	assert.Contains(t, events[0].ErrorMessage, "down")

	assert.Equal(t, "go", events[1].Query)
	assert.True(t, events[1].Success)
	assert.Equal(t, 2, events[1].ResultCount)
	assert.Equal(t, "mock", events[1].Provider)
}

func TestLocalProvider_SearchesCatalogVideos(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.CourseRepo().Upsert(ctx, learner.Course{
		ID:    "py",
		Title: "Python Basics",
		Videos: []learner.Video{
			{Title: "Python setup", Description: "install", URL: "https://example.com/1"},
			{Title: "Loops", Description: "for and while", URL: "https://example.com/2"},
		},
	}))

	p, err := NewProvider(ctx, Config{Provider: ProviderLocal, Retry: retryConfig()}, s)
	require.NoError(t, err)

	videos, err := p.Search(ctx, Request{Query: "python", MaxResults: 1})
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, "local", p.Name())

	events, err := s.EventRepo().QueryVideoSearches(ctx, store.QueryOpts{})
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestNewProvider_None(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: ProviderNone}, nil)
	require.NoError(t, err)
	assert.Nil(t, p)

	_, err = NewProvider(context.Background(), Config{Provider: "vimeo"}, nil)
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())

	cfg.Provider = ProviderYouTube
	assert.Error(t, cfg.Validate())
	cfg.YouTube.APIKey = "k"
	assert.NoError(t, cfg.Validate())

	cfg.Provider = "vimeo"
	assert.Error(t, cfg.Validate())
}
