package videosearch

import (
	"fmt"
	"time"
)

// ErrRateLimit indicates the provider returned a rate limit or quota error.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("video provider unavailable: %v", e.Err)
	}
	return "video provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrBadRequest indicates the provider rejected the request (bad key,
// malformed query). Retrying does not help.
type ErrBadRequest struct {
	Status int
	Err    error
}

func (e *ErrBadRequest) Error() string {
	return fmt.Sprintf("video search rejected (HTTP %d): %v", e.Status, e.Err)
}

func (e *ErrBadRequest) Unwrap() error { return e.Err }
