package salesnav

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"visahunt/internal/domain"
	"visahunt/internal/scrape/types"
	"visahunt/internal/scrape/util"
)

const (
	cardSelector        = "li.search-result"
	companyLinkSelector = "a[data-control-name='view_company']"
	profileSelector     = "li.org-people-profile-card"
	subtitleSelector    = "div.artdeco-entity-lockup__subtitle"
)

func fragment(html string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

// IsRecruiterTitle reports whether a profile title contains any configured
// recruiter term, case-insensitively.
func (s *Scraper) IsRecruiterTitle(title string) bool {
	return s.recruiters.Match(title)
}

// ExtractCompanies reads the company cards on the current results page.
// Cards without a company link or href become skips.
func (s *Scraper) ExtractCompanies(ctx context.Context) ([]domain.CompanyRecord, []types.Skip, error) {
	cards, err := s.b.QueryAll(ctx, cardSelector)
	if err != nil {
		return nil, nil, fmt.Errorf("extract companies: %w", err)
	}

	var out []domain.CompanyRecord
	var skips []types.Skip
	skip := func(i int, reason string) {
		skips = append(skips, types.Skip{Source: "salesnav", Item: fmt.Sprintf("card #%d", i+1), Reason: reason})
	}

	for i, html := range cards {
		doc, err := fragment(html)
		if err != nil {
			skip(i, err.Error())
			continue
		}
		name := doc.Find(companyLinkSelector).First()
		if name.Length() == 0 {
			skip(i, "no company link")
			continue
		}
		href, _ := doc.Find("a").First().Attr("href")
		if strings.TrimSpace(href) == "" {
			skip(i, "missing href")
			continue
		}
		out = append(out, domain.CompanyRecord{
			Name: util.CleanText(name.Text()),
			URL:  util.AbsURL(Origin, href),
		})
	}
	s.log.Info("Found companies", "count", len(out))
	return out, skips, nil
}

// ExtractRecruiters opens the company's people page and returns the
// recruiter-like profiles among the first MaxProfiles cards.
func (s *Scraper) ExtractRecruiters(ctx context.Context, companyURL string) ([]domain.RecruiterMention, []types.Skip, error) {
	people := util.JoinPath(companyURL, "people")
	if err := s.b.Navigate(ctx, people); err != nil {
		return nil, nil, err
	}
	if err := util.Sleep(ctx, s.cfg.Timing.PeopleSettle); err != nil {
		return nil, nil, err
	}

	cards, err := s.b.QueryAll(ctx, profileSelector)
	if err != nil {
		return nil, nil, err
	}
	if s.cfg.MaxProfiles > 0 && len(cards) > s.cfg.MaxProfiles {
		cards = cards[:s.cfg.MaxProfiles]
	}

	var out []domain.RecruiterMention
	var skips []types.Skip
	for i, html := range cards {
		item := fmt.Sprintf("%s profile #%d", people, i+1)
		doc, err := fragment(html)
		if err != nil {
			skips = append(skips, types.Skip{Source: "salesnav", Item: item, Reason: err.Error()})
			continue
		}
		a := doc.Find("a").First()
		sub := doc.Find(subtitleSelector).First()
		if a.Length() == 0 || sub.Length() == 0 {
			skips = append(skips, types.Skip{Source: "salesnav", Item: item, Reason: "no name or title"})
			continue
		}
		title := util.CleanText(sub.Text())
		if s.IsRecruiterTitle(title) {
			out = append(out, domain.NewRecruiterMention(util.CleanText(a.Text()), title))
		}
	}
	return out, skips, nil
}
