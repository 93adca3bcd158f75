package jobpage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/log"

	"visahunt/internal/rank"
	"visahunt/internal/scrape/types"
	"visahunt/internal/scrape/util"
)

// StatusError is returned for any reply other than 200 OK.
type StatusError struct {
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d from %s", e.Status, e.URL)
}

// IsStatus reports whether err carries a non-200 status.
func IsStatus(err error) bool {
	var se *StatusError
	return errors.As(err, &se)
}

type Options struct {
	UserAgent          string
	SearchTimeout      time.Duration // 0 = none
	DescriptionTimeout time.Duration
	Delay              time.Duration // pause after each classified posting
}

// Client fetches listing and posting pages and classifies postings by
// visa phrases.
type Client struct {
	fetcher types.Fetcher
	matcher rank.PhraseMatcher
	opts    Options
	log     *log.Logger
}

func NewClient(f types.Fetcher, m rank.PhraseMatcher, opts Options, logger *log.Logger) *Client {
	return &Client{
		fetcher: f,
		matcher: m,
		opts:    opts,
		log:     logger.WithPrefix("jd"),
	}
}

func (c *Client) headers() http.Header {
	h := http.Header{}
	if c.opts.UserAgent != "" {
		h.Set("User-Agent", c.opts.UserAgent)
	}
	return h
}

func (c *Client) warnTruncated(url string, res types.Response) {
	if res.Truncated {
		c.log.Warn("page truncated", "url", url, "bytes", len(res.Body))
	}
}

// Listing fetches and parses a search or board page.
func (c *Client) Listing(ctx context.Context, url string) (*goquery.Document, error) {
	res, err := c.fetcher.Get(ctx, url, c.headers(), c.opts.SearchTimeout)
	if err != nil {
		return nil, err
	}
	c.warnTruncated(url, res)
	if res.Status != http.StatusOK {
		return nil, &StatusError{URL: url, Status: res.Status}
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}
	return doc, nil
}

// Description returns the lower-cased visible text of a posting page.
// Failures are logged and yield "".
func (c *Client) Description(ctx context.Context, url string) (string, error) {
	res, err := c.fetcher.Get(ctx, url, c.headers(), c.opts.DescriptionTimeout)
	if err != nil {
		c.log.Error("JD fetch error", "url", url, "err", err)
		return "", err
	}
	if res.Status != http.StatusOK {
		c.log.Warn("JD fetch failed", "status", res.Status, "url", url)
		return "", &StatusError{URL: url, Status: res.Status}
	}
	c.warnTruncated(url, res)
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body))
	if err != nil {
		c.log.Error("JD fetch error", "url", url, "err", err)
		return "", err
	}
	return strings.ToLower(util.VisibleText(doc)), nil
}

// Classify fetches link and reports whether its description mentions a visa
// phrase, then pauses for the configured delay. A fetch failure returns
// (false, err); the caller decides whether to continue. The returned error is
// ctx.Err() only when the parent context is done.
func (c *Client) Classify(ctx context.Context, link string) (bool, error) {
	desc, derr := c.Description(ctx, link)
	matched := desc != "" && c.matcher.Match(desc)

	if err := util.Sleep(ctx, c.opts.Delay); err != nil {
		return matched, err
	}
	if ctx.Err() != nil {
		return matched, ctx.Err()
	}
	return matched, derr
}

// Links collects the href of every element matching selector, up to limit
// elements (limit <= 0 means all). Hrefs are resolved against base. Elements
// without an href become skips.
func Links(doc *goquery.Document, selector, base string, limit int, source string) ([]string, []types.Skip) {
	var links []string
	var skips []types.Skip

	sel := doc.Find(selector)
	if limit > 0 && sel.Length() > limit {
		sel = sel.Slice(0, limit)
	}
	sel.Each(func(i int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if strings.TrimSpace(href) == "" {
			skips = append(skips, types.Skip{
				Source: source,
				Item:   fmt.Sprintf("card #%d", i+1),
				Reason: "missing href",
			})
			return
		}
		links = append(links, util.AbsURL(base, href))
	})
	return links, skips
}

// Aborted reports whether err means the run was cancelled.
func Aborted(ctx context.Context, err error) bool {
	return err != nil && ctx.Err() != nil
}

// Screen classifies links in order and returns those that matched. Postings
// whose description could not be fetched become skips. The error is non-nil
// only when ctx is done.
func (c *Client) Screen(ctx context.Context, source string, links []string, logger *log.Logger) ([]string, []types.Skip, error) {
	var matched []string
	var skips []types.Skip
	for _, link := range links {
		ok, err := c.Classify(ctx, link)
		if Aborted(ctx, err) {
			return matched, skips, ctx.Err()
		}
		if err != nil {
			skips = append(skips, types.Skip{Source: source, Item: link, Reason: "description: " + err.Error()})
			continue
		}
		if ok {
			logger.Info("VISA keyword FOUND", "link", link)
			matched = append(matched, link)
		}
	}
	return matched, skips, nil
}
