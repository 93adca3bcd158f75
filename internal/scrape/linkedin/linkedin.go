package linkedin

import (
	"context"
	"net/url"

	"github.com/charmbracelet/log"

	"visahunt/internal/domain"
	"visahunt/internal/scrape/jobpage"
	"visahunt/internal/scrape/types"
	"visahunt/internal/scrape/util"
)

const (
	DefaultSearchURL = "https://www.linkedin.com/jobs/search/"
	cardSelector     = "a.base-card__full-link"
)

type Config struct {
	SearchURL string // defaults to DefaultSearchURL
	MaxCards  int
}

// Scraper searches the public (logged-out) LinkedIn jobs page.
type Scraper struct {
	cfg    Config
	client *jobpage.Client
	log    *log.Logger
}

func New(cfg Config, client *jobpage.Client, logger *log.Logger) *Scraper {
	if cfg.SearchURL == "" {
		cfg.SearchURL = DefaultSearchURL
	}
	return &Scraper{cfg: cfg, client: client, log: logger.WithPrefix("LinkedIn")}
}

func (s *Scraper) Name() string { return "linkedin" }

func (s *Scraper) searchURL(t domain.SearchTarget) string {
	return util.WithQuery(s.cfg.SearchURL, url.Values{
		"keywords": {t.Keyword},
		"location": {t.Location},
	})
}

// Search looks up one role in one country. Only a cancelled ctx is an error;
// everything else degrades to fewer (or no) results.
func (s *Scraper) Search(ctx context.Context, t domain.SearchTarget) (types.ScrapeResult, error) {
	res := types.ScrapeResult{Source: s.Name()}
	s.log.Info("Searching", "role", t.Keyword, "country", t.Location)

	u := s.searchURL(t)
	doc, err := s.client.Listing(ctx, u)
	if jobpage.Aborted(ctx, err) {
		return res, ctx.Err()
	}
	if err != nil {
		s.log.Error("search failed", "err", err)
		res.Skipped = append(res.Skipped, types.Skip{Source: s.Name(), Item: u, Reason: err.Error()})
		return res, nil
	}

	s.log.Info("Found job cards", "count", doc.Find(cardSelector).Length())
	links, skips := jobpage.Links(doc, cardSelector, u, s.cfg.MaxCards, s.Name())
	res.Skipped = append(res.Skipped, skips...)

	matched, skips, err := s.client.Screen(ctx, s.Name(), links, s.log)
	res.Skipped = append(res.Skipped, skips...)
	for _, link := range matched {
		res.Jobs = append(res.Jobs, domain.JobRecord{
			Source:  domain.SourceLinkedIn,
			Role:    t.Keyword,
			Country: t.Location,
			Link:    link,
		})
	}
	return res, err
}
