package salesnav

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"visahunt/internal/browser"
	"visahunt/internal/config"
	"visahunt/internal/domain"
	"visahunt/internal/output"
	"visahunt/internal/scrape/types"
	"visahunt/internal/scrape/util"
	"visahunt/internal/secrets"
)

// KeyColumn is the column the company file is de-duplicated on.
const KeyColumn = "Company URL"

type Result struct {
	Rows    []domain.CompanyRow
	Skipped []types.Skip
}

type Summary struct {
	Found      int
	Written    int
	Duplicates int
	Skipped    []types.Skip
	Output     string
}

// Collect runs every region × keyword search in order. A company whose
// people page cannot be read is skipped; navigation failures on the search
// page abort the run.
func (s *Scraper) Collect(ctx context.Context) (Result, error) {
	var res Result
	for _, region := range s.cfg.Regions {
		for _, kw := range s.cfg.Keywords {
			if err := s.Search(ctx, kw, region); err != nil {
				return res, err
			}
			companies, skips, err := s.ExtractCompanies(ctx)
			res.Skipped = append(res.Skipped, skips...)
			if err != nil {
				return res, err
			}

			for _, c := range companies {
				mentions, skips, err := s.ExtractRecruiters(ctx, c.URL)
				res.Skipped = append(res.Skipped, skips...)
				if ctx.Err() != nil {
					return res, ctx.Err()
				}
				if err != nil {
					s.log.Warn("company skipped", "company", c.Name, "err", err)
					res.Skipped = append(res.Skipped, types.Skip{Source: "salesnav", Item: c.URL, Reason: err.Error()})
					continue
				}

				res.Rows = append(res.Rows, domain.CompanyRow{
					Country:    region.Country,
					Keyword:    kw,
					Company:    c,
					Recruiters: mentions,
				})
				p := s.cfg.Timing.CompanyPause
				if err := util.SleepBetween(ctx, p.Min, p.Max); err != nil {
					return res, err
				}
			}
		}
	}
	return res, nil
}

// BuildTable flattens rows into the output table, first row per company URL wins.
func BuildTable(rows []domain.CompanyRow) *output.Table {
	tbl := output.NewTable(KeyColumn)
	for _, r := range rows {
		tbl.Add(r.Fields())
	}
	return tbl
}

// Run logs in, collects every search and writes cfg.Output.
func Run(ctx context.Context, b browser.Browser, creds secrets.Credentials, cfg config.SalesNav, logger *log.Logger) (Summary, error) {
	s := New(b, cfg, logger)
	if err := s.Login(ctx, creds); err != nil {
		return Summary{}, err
	}

	res, err := s.Collect(ctx)
	if err != nil {
		return Summary{}, err
	}

	tbl := BuildTable(res.Rows)
	if err := output.WriteCSV(cfg.Output, tbl); err != nil {
		return Summary{}, fmt.Errorf("write %s: %w", cfg.Output, err)
	}

	for _, sk := range res.Skipped {
		s.log.Debug("skipped", "item", sk.Item, "reason", sk.Reason)
	}
	sum := Summary{
		Found:      len(res.Rows),
		Written:    tbl.Len(),
		Duplicates: tbl.Dropped(),
		Skipped:    res.Skipped,
		Output:     cfg.Output,
	}
	s.log.Info("Saved companies", "count", sum.Written, "duplicates", sum.Duplicates, "skipped", len(sum.Skipped), "file", sum.Output)
	return sum, nil
}
