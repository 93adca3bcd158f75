package lever

import (
	"context"

	"github.com/charmbracelet/log"

	"visahunt/internal/domain"
	"visahunt/internal/scrape/jobpage"
	"visahunt/internal/scrape/types"
)

const postingSelector = "a.posting-title"

type Board struct {
	Company string
	URL     string // e.g. https://jobs.lever.co/<slug>
}

type Scraper struct {
	client *jobpage.Client
	log    *log.Logger
}

func New(client *jobpage.Client, logger *log.Logger) *Scraper {
	return &Scraper{client: client, log: logger.WithPrefix("Lever")}
}

func (s *Scraper) Name() string { return "lever" }

func (s *Scraper) FetchBoard(ctx context.Context, b Board) (types.ScrapeResult, error) {
	res := types.ScrapeResult{Source: s.Name()}
	s.log.Info("Board", "company", b.Company)

	doc, err := s.client.Listing(ctx, b.URL)
	if jobpage.Aborted(ctx, err) {
		return res, ctx.Err()
	}
	if err != nil {
		s.log.Error("Lever failed", "company", b.Company, "err", err)
		res.Skipped = append(res.Skipped, types.Skip{Source: s.Name(), Item: b.URL, Reason: err.Error()})
		return res, nil
	}

	// Lever posting hrefs are absolute already.
	links, skips := jobpage.Links(doc, postingSelector, b.URL, 0, s.Name())
	res.Skipped = append(res.Skipped, skips...)
	s.log.Info("Found jobs", "count", len(links)+len(skips))

	matched, skips, err := s.client.Screen(ctx, s.Name(), links, s.log)
	res.Skipped = append(res.Skipped, skips...)
	for _, link := range matched {
		res.Jobs = append(res.Jobs, domain.JobRecord{
			Source:  domain.SourceLever,
			Company: b.Company,
			Link:    link,
		})
	}
	return res, err
}
