package linkedin

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visahunt/internal/domain"
	"visahunt/internal/logging"
	"visahunt/internal/rank"
	"visahunt/internal/scrape/jobpage"
)

func newClient() *jobpage.Client {
	return jobpage.NewClient(
		jobpage.NewHTTPFetcher(nil),
		rank.NewPhraseMatcher([]string{"visa sponsorship", "eu blue card"}),
		jobpage.Options{UserAgent: "Mozilla/5.0", DescriptionTimeout: 10 * time.Second},
		logging.Discard(),
	)
}

func TestSearch(t *testing.T) {
	var jobHits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/jobs/search/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "DevOps Engineer", r.URL.Query().Get("keywords"))
		assert.Equal(t, "Germany", r.URL.Query().Get("location"))
		assert.Equal(t, "Mozilla/5.0", r.Header.Get("User-Agent"))

		var b strings.Builder
		for i := 1; i <= 12; i++ {
			fmt.Fprintf(&b, `<div class="base-card"><a class="base-card__full-link" href="/jobs/view/%d">Job %d</a></div>`, i, i)
		}
		_, _ = w.Write([]byte(b.String()))
	})
	mux.HandleFunc("/jobs/view/", func(w http.ResponseWriter, r *http.Request) {
		jobHits.Add(1)
		switch r.URL.Path {
		case "/jobs/view/2":
			_, _ = w.Write([]byte(`<p>We offer Visa Sponsorship.</p>`))
		case "/jobs/view/11":
			_, _ = w.Write([]byte(`<p>EU Blue Card</p>`)) // beyond the first 10 cards
		case "/jobs/view/5":
			w.WriteHeader(http.StatusGone)
		default:
			_, _ = w.Write([]byte(`<p>Onsite only.</p>`))
		}
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	s := New(Config{SearchURL: srv.URL + "/jobs/search/", MaxCards: 10}, newClient(), logging.Discard())
	res, err := s.Search(context.Background(), domain.SearchTarget{Location: "Germany", Keyword: "DevOps Engineer"})
	require.NoError(t, err)

	assert.EqualValues(t, 10, jobHits.Load())
	require.Len(t, res.Jobs, 1)
	assert.Equal(t, domain.JobRecord{
		Source:  domain.SourceLinkedIn,
		Role:    "DevOps Engineer",
		Country: "Germany",
		Link:    srv.URL + "/jobs/view/2",
	}, res.Jobs[0])
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, srv.URL+"/jobs/view/5", res.Skipped[0].Item)
}

func TestSearchNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	s := New(Config{SearchURL: srv.URL, MaxCards: 10}, newClient(), logging.Discard())
	res, err := s.Search(context.Background(), domain.SearchTarget{Location: "Poland", Keyword: "SRE"})
	require.NoError(t, err)
	assert.Empty(t, res.Jobs)
	require.Len(t, res.Skipped, 1)
	assert.Contains(t, res.Skipped[0].Reason, "status 429")
}

func TestSearchNoCards(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><p>No matching jobs found.</p></body></html>`))
	}))
	defer srv.Close()

	s := New(Config{SearchURL: srv.URL, MaxCards: 10}, newClient(), logging.Discard())
	res, err := s.Search(context.Background(), domain.SearchTarget{Location: "Ireland", Keyword: "SRE"})
	require.NoError(t, err)
	assert.Empty(t, res.Jobs)
	assert.Empty(t, res.Skipped)
}
