package videosearch

import (
	"context"

	"github.com/abhisek/coursebuddy/internal/store"
)

// LocalProvider searches the videos embedded in the stored course catalog.
// It serves offline setups where no API key is configured.
type LocalProvider struct {
	courses store.CourseRepo
}

// NewLocalProvider creates a provider backed by the course repository.
func NewLocalProvider(courses store.CourseRepo) *LocalProvider {
	return &LocalProvider{courses: courses}
}

func (p *LocalProvider) Search(ctx context.Context, req Request) ([]Video, error) {
	found, err := p.courses.SearchVideos(ctx, req.Query, req.Limit())
	if err != nil {
		return nil, &ErrProviderUnavailable{Err: err}
	}
	videos := make([]Video, 0, len(found))
	for _, v := range found {
		videos = append(videos, Video{Title: v.Title, Description: v.Description, URL: v.URL})
	}
	return videos, nil
}

func (p *LocalProvider) Name() string {
	return "local"
}
