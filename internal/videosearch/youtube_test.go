package videosearch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchBody = `{
  "items": [
    {"id": {"kind": "youtube#video", "videoId": "abc"},
     "snippet": {"title": "Go &amp; You", "description": "Learn Go", "channelTitle": "GopherTV"}},
    {"id": {"kind": "youtube#video", "videoId": "def"},
     "snippet": {"title": "Channels", "description": "", "channelTitle": "GopherTV"}},
    {"id": {"kind": "youtube#channel"},
     "snippet": {"title": "not a video"}}
  ]
}`

func newTestYouTube(t *testing.T, h http.HandlerFunc) *YouTubeProvider {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	p, err := NewYouTubeProvider(context.Background(), YouTubeConfig{
		APIKey:   "test-key",
		Endpoint: srv.URL + "/",
	})
	require.NoError(t, err)
	return p
}

func TestYouTubeProvider_Search(t *testing.T) {
	var gotQuery, gotMax, gotType, gotKey string
	p := newTestYouTube(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery, gotMax, gotType, gotKey = q.Get("q"), q.Get("maxResults"), q.Get("type"), q.Get("key")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, searchBody)
	})

	videos, err := p.Search(context.Background(), Request{Query: "go tutorial programming", MaxResults: 5})
	require.NoError(t, err)

	assert.Equal(t, "go tutorial programming", gotQuery)
	assert.Equal(t, "5", gotMax)
	assert.Equal(t, "video", gotType)
	assert.Equal(t, "test-key", gotKey)

	require.Len(t, videos, 2)
	assert.Equal(t, "Go & You", videos[0].Title)
	assert.Equal(t, "https://www.youtube.com/watch?v=abc", videos[0].URL)
	assert.Equal(t, "Tutorial by GopherTV", videos[1].Description)
}

func TestYouTubeProvider_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "rate limited",
			status: http.StatusTooManyRequests,
			body:   `{"error":{"code":429,"message":"slow"}}`,
			check: func(t *testing.T, err error) {
				var rl *ErrRateLimit
				require.True(t, errors.As(err, &rl), "got %T", err)
				assert.Equal(t, 2*time.Second, rl.RetryAfter)
			},
		},
		{
			name:   "quota exceeded",
			status: http.StatusForbidden,
			body:   `{"error":{"code":403,"message":"quota","errors":[{"reason":"quotaExceeded","message":"quota"}]}}`,
			check: func(t *testing.T, err error) {
				var rl *ErrRateLimit
				assert.True(t, errors.As(err, &rl), "got %T", err)
			},
		},
		{
			name:   "server error",
			status: http.StatusInternalServerError,
			body:   `{"error":{"code":500,"message":"oops"}}`,
			check: func(t *testing.T, err error) {
				var un *ErrProviderUnavailable
				assert.True(t, errors.As(err, &un), "got %T", err)
			},
		},
		{
			name:   "bad key",
			status: http.StatusBadRequest,
			body:   `{"error":{"code":400,"message":"API key not valid"}}`,
			check: func(t *testing.T, err error) {
				var bad *ErrBadRequest
				require.True(t, errors.As(err, &bad), "got %T", err)
				assert.Equal(t, 400, bad.Status)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestYouTube(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "2")
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			})
			_, err := p.Search(context.Background(), Request{Query: "go", MaxResults: 3})
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestNewYouTubeProvider_RequiresKey(t *testing.T) {
	_, err := NewYouTubeProvider(context.Background(), YouTubeConfig{})
	assert.Error(t, err)
}
