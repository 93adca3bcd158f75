package jobpage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"visahunt/internal/scrape/types"
	"visahunt/internal/scrape/util"
)

// maxBody caps how much of a page is read; longer bodies are cut and flagged.
const maxBody = 8 << 20

// HTTPFetcher is the net/http implementation of types.Fetcher.
type HTTPFetcher struct {
	hc      *http.Client
	limiter *util.HostLimiter
}

// NewHTTPFetcher returns a fetcher without a client-wide timeout; per-request
// timeouts come from Get. limiter may be nil.
func NewHTTPFetcher(limiter *util.HostLimiter) *HTTPFetcher {
	return &HTTPFetcher{
		hc:      &http.Client{},
		limiter: limiter,
	}
}

func (f *HTTPFetcher) Get(ctx context.Context, url string, headers http.Header, timeout time.Duration) (types.Response, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if err := f.limiter.WaitURL(ctx, url); err != nil {
		return types.Response{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return types.Response{}, fmt.Errorf("build request: %w", err)
	}
	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	res, err := f.hc.Do(req)
	if err != nil {
		return types.Response{}, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBody+1))
	if err != nil {
		return types.Response{Status: res.StatusCode}, fmt.Errorf("read body: %w", err)
	}
	out := types.Response{Status: res.StatusCode, Body: body}
	if len(body) > maxBody {
		out.Body = body[:maxBody]
		out.Truncated = true
	}
	return out, nil
}
