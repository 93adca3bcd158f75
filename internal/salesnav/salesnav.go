package salesnav

import (
	"context"
	"fmt"
	"net/url"

	"github.com/charmbracelet/log"

	"visahunt/internal/browser"
	"visahunt/internal/config"
	"visahunt/internal/domain"
	"visahunt/internal/rank"
	"visahunt/internal/scrape/util"
	"visahunt/internal/secrets"
)

const (
	Origin = "https://www.linkedin.com"

	usernameSelector = "#username"
	passwordSelector = "#password"
	submitSelector   = "button[type='submit']"
)

// Scraper drives an authenticated Sales Navigator session.
type Scraper struct {
	b          browser.Browser
	cfg        config.SalesNav
	recruiters rank.PhraseMatcher
	log        *log.Logger
}

func New(b browser.Browser, cfg config.SalesNav, logger *log.Logger) *Scraper {
	return &Scraper{
		b:          b,
		cfg:        cfg,
		recruiters: rank.NewPhraseMatcher(cfg.RecruiterTerms),
		log:        logger.WithPrefix("salesnav"),
	}
}

// Login submits the login form and waits a fixed delay. Whether the login
// actually succeeded is not checked.
func (s *Scraper) Login(ctx context.Context, creds secrets.Credentials) error {
	if err := s.b.Navigate(ctx, s.cfg.LoginURL); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if err := s.b.WaitFor(ctx, usernameSelector, s.cfg.Timing.LoginWait); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if err := s.b.Fill(ctx, usernameSelector, creds.Email); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if err := s.b.Fill(ctx, passwordSelector, creds.Password); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if err := s.b.Click(ctx, submitSelector); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	s.log.Info("Login submitted", "email", creds.Email)
	return util.Sleep(ctx, s.cfg.Timing.AfterLogin)
}

func (s *Scraper) searchURL(keyword string, r domain.Region) string {
	return util.WithQuery(s.cfg.SearchURL, url.Values{
		"keywords":    {keyword},
		"geoIncluded": {r.GeoID},
		"hiring":      {"true"},
	})
}

// Search opens the company search for keyword in region and scrolls a fixed
// number of times to load more cards.
func (s *Scraper) Search(ctx context.Context, keyword string, r domain.Region) error {
	s.log.Info("Searching", "keyword", keyword, "country", r.Country)

	if err := s.b.Navigate(ctx, s.searchURL(keyword, r)); err != nil {
		return fmt.Errorf("search: %w", err)
	}
	if err := util.Sleep(ctx, s.cfg.Timing.SearchSettle); err != nil {
		return err
	}
	pause := s.cfg.Timing.ScrollPause
	for i := 0; i < s.cfg.MaxScrolls; i++ {
		if err := s.b.ScrollToBottom(ctx); err != nil {
			return fmt.Errorf("search: scroll: %w", err)
		}
		if err := util.SleepBetween(ctx, pause.Min, pause.Max); err != nil {
			return err
		}
	}
	return nil
}
