package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

type Options struct {
	ExecPath string // empty = let chromedp find Chrome
	Headful  bool
}

// Chrome drives one headless Chrome tab through chromedp.
type Chrome struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
}

func allocatorOptions(o Options) []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", !o.Headful),
		chromedp.NoSandbox,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.WindowSize(1920, 1080),
	)
	if o.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(o.ExecPath))
	}
	return opts
}

// NewChrome starts the browser right away so a missing or broken Chrome
// fails here rather than at login.
func NewChrome(ctx context.Context, o Options) (*Chrome, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocatorOptions(o)...)
	bctx, cancel := chromedp.NewContext(allocCtx)

	if err := chromedp.Run(bctx, chromedp.Navigate("about:blank")); err != nil {
		cancel()
		allocCancel()
		return nil, fmt.Errorf("start chrome: %w", err)
	}
	return &Chrome{ctx: bctx, cancel: cancel, allocCancel: allocCancel}, nil
}

// run executes actions on the tab, aborting when either the tab or ctx is done.
func (c *Chrome) run(ctx context.Context, actions ...chromedp.Action) error {
	rctx, cancel := context.WithCancel(c.ctx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	if err := chromedp.Run(rctx, actions...); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

func (c *Chrome) Navigate(ctx context.Context, url string) error {
	if err := c.run(ctx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	return nil
}

func (c *Chrome) WaitFor(ctx context.Context, selector string, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := c.run(ctx, chromedp.WaitReady(selector, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("wait for %s: %w", selector, err)
	}
	return nil
}

func (c *Chrome) Fill(ctx context.Context, selector, value string) error {
	if err := c.run(ctx, chromedp.SendKeys(selector, value, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("fill %s: %w", selector, err)
	}
	return nil
}

func (c *Chrome) Click(ctx context.Context, selector string) error {
	if err := c.run(ctx, chromedp.Click(selector, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("click %s: %w", selector, err)
	}
	return nil
}

const scrollJS = `window.scrollTo(0, document.body.scrollHeight);`

func (c *Chrome) ScrollToBottom(ctx context.Context) error {
	return c.run(ctx, chromedp.Evaluate(scrollJS, nil))
}

func queryAllJS(selector string) string {
	return fmt.Sprintf(`Array.from(document.querySelectorAll(%q)).map(e => e.outerHTML)`, selector)
}

func (c *Chrome) QueryAll(ctx context.Context, selector string) ([]string, error) {
	var out []string
	if err := c.run(ctx, chromedp.Evaluate(queryAllJS(selector), &out)); err != nil {
		return nil, fmt.Errorf("query %s: %w", selector, err)
	}
	return out, nil
}

// Close shuts the tab and the browser process.
func (c *Chrome) Close() error {
	err := chromedp.Cancel(c.ctx)
	c.cancel()
	c.allocCancel()
	return err
}

var _ Browser = (*Chrome)(nil)
