package browser

import (
	"context"
	"time"
)

// Browser is the slice of a real browser the Sales Navigator pipeline needs.
// QueryAll returns the outerHTML of every element matching selector so
// callers can parse it without a live page.
type Browser interface {
	Navigate(ctx context.Context, url string) error
	WaitFor(ctx context.Context, selector string, timeout time.Duration) error
	Fill(ctx context.Context, selector, value string) error
	Click(ctx context.Context, selector string) error
	ScrollToBottom(ctx context.Context) error
	QueryAll(ctx context.Context, selector string) ([]string, error)
	Close() error
}
