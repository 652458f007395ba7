package videosearch

import "context"

// MaxResultsLimit is the largest result count a provider is asked for.
const MaxResultsLimit = 10

// Provider is the abstraction over an external video search service.
type Provider interface {
	// Search returns videos matching the query in provider order.
	// Implementations return at most req.MaxResults items.
	Search(ctx context.Context, req Request) ([]Video, error)

	// Name identifies the provider in event logs.
	Name() string
}

// Request describes a single search.
type Request struct {
	Query string

	// MaxResults is clamped to 1..MaxResultsLimit by the providers.
	MaxResults int
}

// Limit returns MaxResults clamped to 1..MaxResultsLimit.
func (r Request) Limit() int {
	return min(max(r.MaxResults, 1), MaxResultsLimit)
}

// Video is one search hit.
type Video struct {
	ID          string
	Title       string
	Description string
	URL         string
	Channel     string
}
