package indeed

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
	DefaultBaseURL = "https://www.indeed.com"
	cardSelector   = "a.tapItem"
)

type Config struct {
	BaseURL  string // card hrefs are relative to this; defaults to DefaultBaseURL
	MaxCards int
}

type Scraper struct {
	cfg    Config
	client *jobpage.Client
	log    *log.Logger
}

func New(cfg Config, client *jobpage.Client, logger *log.Logger) *Scraper {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &Scraper{cfg: cfg, client: client, log: logger.WithPrefix("Indeed")}
}

func (s *Scraper) Name() string { return "indeed" }

func (s *Scraper) Search(ctx context.Context, t domain.SearchTarget) (types.ScrapeResult, error) {
	res := types.ScrapeResult{Source: s.Name()}
	s.log.Info("Searching", "role", t.Keyword, "country", t.Location)

	u := util.WithQuery(s.cfg.BaseURL+"/jobs", url.Values{"q": {t.Keyword}, "l": {t.Location}})
	doc, err := s.client.Listing(ctx, u)
	if jobpage.Aborted(ctx, err) {
		return res, ctx.Err()
	}
	if err != nil {
		s.log.Error("Indeed failed", "err", err)
		res.Skipped = append(res.Skipped, types.Skip{Source: s.Name(), Item: u, Reason: err.Error()})
		return res, nil
	}

	s.log.Info("Found job cards", "count", doc.Find(cardSelector).Length())
	links, skips := jobpage.Links(doc, cardSelector, s.cfg.BaseURL, s.cfg.MaxCards, s.Name())
	res.Skipped = append(res.Skipped, skips...)

	matched, skips, err := s.client.Screen(ctx, s.Name(), links, s.log)
	res.Skipped = append(res.Skipped, skips...)
	for _, link := range matched {
		res.Jobs = append(res.Jobs, domain.JobRecord{
			Source:  domain.SourceIndeed,
			Role:    t.Keyword,
			Country: t.Location,
			Link:    link,
		})
	}
	return res, err
}
