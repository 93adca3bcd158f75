package types

import (
	"context"
	"net/http"
	"time"

	"visahunt/internal/domain"
)

// Response is the part of an HTTP reply the scrapers look at.
type Response struct {
	Status    int
	Body      []byte
	Truncated bool // Body was cut at the fetcher's size cap
}

// Fetcher performs a GET. A zero timeout means no per-request timeout.
// Non-2xx statuses are not errors; callers inspect Status.
type Fetcher interface {
	Get(ctx context.Context, url string, headers http.Header, timeout time.Duration) (Response, error)
}

// Skip records an item that was dropped instead of failing the run.
type Skip struct {
	Source string
	Item   string
	Reason string
}

type ScrapeResult struct {
	Source  string
	Jobs    []domain.JobRecord
	Skipped []Skip
}

// Merge appends other's jobs and skips to r.
func (r *ScrapeResult) Merge(other ScrapeResult) {
	r.Jobs = append(r.Jobs, other.Jobs...)
	r.Skipped = append(r.Skipped, other.Skipped...)
}
