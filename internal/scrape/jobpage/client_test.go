package jobpage

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visahunt/internal/logging"
	"visahunt/internal/rank"
	"visahunt/internal/scrape/types"
)

// fakeFetcher serves canned responses keyed by URL.
type fakeFetcher struct {
	pages    map[string]types.Response
	errs     map[string]error
	calls    []string
	timeouts []time.Duration
	agents   []string
}

func (f *fakeFetcher) Get(_ context.Context, url string, h http.Header, timeout time.Duration) (types.Response, error) {
	f.calls = append(f.calls, url)
	f.timeouts = append(f.timeouts, timeout)
	f.agents = append(f.agents, h.Get("User-Agent"))
	if err, ok := f.errs[url]; ok {
		return types.Response{}, err
	}
	if r, ok := f.pages[url]; ok {
		return r, nil
	}
	return types.Response{Status: http.StatusNotFound}, nil
}

func ok(body string) types.Response {
	return types.Response{Status: http.StatusOK, Body: []byte(body)}
}

func newTestClient(f types.Fetcher) *Client {
	return NewClient(f, rank.NewPhraseMatcher([]string{"visa sponsorship", "eu blue card"}), Options{
		UserAgent:          "Mozilla/5.0",
		DescriptionTimeout: 10 * time.Second,
	}, logging.Discard())
}

func TestListing(t *testing.T) {
	f := &fakeFetcher{pages: map[string]types.Response{
		"https://jobs/ok":   ok(`<a class="x" href="/1">one</a>`),
		"https://jobs/deny": {Status: http.StatusForbidden},
	}}
	c := newTestClient(f)

	doc, err := c.Listing(context.Background(), "https://jobs/ok")
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Find("a.x").Length())

	_, err = c.Listing(context.Background(), "https://jobs/deny")
	require.Error(t, err)
	assert.True(t, IsStatus(err))
	assert.Equal(t, "status 403 from https://jobs/deny", err.Error())

	// listing requests carry no timeout by default
	assert.Equal(t, []time.Duration{0, 0}, f.timeouts)
	assert.Equal(t, []string{"Mozilla/5.0", "Mozilla/5.0"}, f.agents)
}

func TestDescription(t *testing.T) {
	f := &fakeFetcher{
		pages: map[string]types.Response{
			"https://jobs/1": ok(`<html><body><h1>SRE</h1><p>EU Blue Card <b>available</b></p></body></html>`),
			"https://jobs/2": {Status: http.StatusInternalServerError},
		},
		errs: map[string]error{"https://jobs/3": errors.New("connection reset")},
	}
	c := newTestClient(f)

	got, err := c.Description(context.Background(), "https://jobs/1")
	require.NoError(t, err)
	assert.Equal(t, "sre eu blue card available", got)

	got, err = c.Description(context.Background(), "https://jobs/2")
	assert.Empty(t, got)
	assert.True(t, IsStatus(err))

	got, err = c.Description(context.Background(), "https://jobs/3")
	assert.Empty(t, got)
	assert.EqualError(t, err, "connection reset")

	assert.Equal(t, 10*time.Second, f.timeouts[0])
}

func TestScreen(t *testing.T) {
	f := &fakeFetcher{
		pages: map[string]types.Response{
			"https://jobs/visa":  ok(`<p>We provide visa sponsorship.</p>`),
			"https://jobs/plain": ok(`<p>Local candidates only.</p>`),
			"https://jobs/quirk": ok(`<p>No visa sponsorship needed for EU citizens</p>`),
		},
	}
	c := newTestClient(f)

	links := []string{"https://jobs/visa", "https://jobs/plain", "https://jobs/gone", "https://jobs/quirk"}
	matched, skips, err := c.Screen(context.Background(), "test", links, logging.Discard())
	require.NoError(t, err)

	assert.Equal(t, []string{"https://jobs/visa", "https://jobs/quirk"}, matched)
	require.Len(t, skips, 1)
	assert.Equal(t, "https://jobs/gone", skips[0].Item)
	assert.Equal(t, links, f.calls)
}

func TestScreenStopsOnCancel(t *testing.T) {
	f := &fakeFetcher{pages: map[string]types.Response{"https://jobs/1": ok("x")}}
	c := newTestClient(f)
	c.opts.Delay = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := c.Screen(ctx, "test", []string{"https://jobs/1", "https://jobs/2"}, logging.Discard())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, f.calls, 1)
}

func TestLinks(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`
<a class="card" href="/a">A</a>
<a class="card">no href</a>
<a class="card" href="https://other.example/b">B</a>
<a class="card" href="/c">C</a>`))
	require.NoError(t, err)

	links, skips := Links(doc, "a.card", "https://www.indeed.com", 3, "indeed")
	assert.Equal(t, []string{"https://www.indeed.com/a", "https://other.example/b"}, links)
	require.Len(t, skips, 1)
	assert.Equal(t, types.Skip{Source: "indeed", Item: "card #2", Reason: "missing href"}, skips[0])

	links, _ = Links(doc, "a.card", "https://www.indeed.com", 0, "indeed")
	assert.Len(t, links, 3)
}

func TestHTTPFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/slow" {
			time.Sleep(200 * time.Millisecond)
		}
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(r.Header.Get("User-Agent")))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(nil)
	h := http.Header{}
	h.Set("User-Agent", "Mozilla/5.0")

	res, err := f.Get(context.Background(), srv.URL+"/", h, 0)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "Mozilla/5.0", string(res.Body))

	res, err = f.Get(context.Background(), srv.URL+"/missing", h, 0)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, res.Status)

	_, err = f.Get(context.Background(), srv.URL+"/slow", h, 20*time.Millisecond)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, res.Truncated)
}

func TestHTTPFetcherFlagsOversizedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("a", maxBody+10)))
	}))
	defer srv.Close()

	res, err := NewHTTPFetcher(nil).Get(context.Background(), srv.URL, nil, 0)
	require.NoError(t, err)
	assert.True(t, res.Truncated)
	assert.Len(t, res.Body, maxBody)
}

func TestDescriptionWarnsOnTruncatedPage(t *testing.T) {
	f := &fakeFetcher{pages: map[string]types.Response{
		"https://jobs/big": {Status: http.StatusOK, Body: []byte("<p>visa sponsorship</p>"), Truncated: true},
	}}
	var buf bytes.Buffer
	c := NewClient(f, rank.NewPhraseMatcher([]string{"visa sponsorship"}), Options{DescriptionTimeout: time.Second}, logging.New(&buf, "info"))

	text, err := c.Description(context.Background(), "https://jobs/big")
	require.NoError(t, err)
	assert.Equal(t, "visa sponsorship", text)
	assert.Contains(t, buf.String(), "page truncated")
}
