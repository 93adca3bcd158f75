package scrape

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"visahunt/internal/config"
	"visahunt/internal/domain"
	"visahunt/internal/output"
	"visahunt/internal/rank"
	"visahunt/internal/scrape/greenhouse"
	"visahunt/internal/scrape/indeed"
	"visahunt/internal/scrape/jobpage"
	"visahunt/internal/scrape/lever"
	"visahunt/internal/scrape/linkedin"
	"visahunt/internal/scrape/types"
)

// KeyColumn is the column visa_jobs.csv is de-duplicated on.
const KeyColumn = "job_link"

type Summary struct {
	Found      int
	Written    int
	Duplicates int
	Skipped    []types.Skip
	Output     string
}

// RunOnce sweeps roles × countries over LinkedIn and Indeed, then every
// configured Greenhouse and Lever board, strictly one request at a time.
// Records come back in discovery order. Only a cancelled ctx is an error.
func RunOnce(ctx context.Context, cfg config.Jobs, f types.Fetcher, logger *log.Logger) (types.ScrapeResult, error) {
	client := jobpage.NewClient(f, rank.NewPhraseMatcher(cfg.VisaPhrases), jobpage.Options{
		UserAgent:          cfg.UserAgent,
		SearchTimeout:      cfg.SearchTimeout,
		DescriptionTimeout: cfg.DescriptionTimeout,
		Delay:              cfg.Delay,
	}, logger)

	li := linkedin.New(linkedin.Config{MaxCards: cfg.MaxCards}, client, logger)
	in := indeed.New(indeed.Config{MaxCards: cfg.MaxCards}, client, logger)
	gh := greenhouse.New(client, logger)
	lv := lever.New(client, logger)

	all := types.ScrapeResult{Source: "jobs"}

	for _, role := range cfg.Roles {
		for _, country := range cfg.Countries {
			t := domain.SearchTarget{Location: country, Keyword: role}

			res, err := li.Search(ctx, t)
			all.Merge(res)
			if err != nil {
				return all, err
			}

			res, err = in.Search(ctx, t)
			all.Merge(res)
			if err != nil {
				return all, err
			}
		}
	}

	for _, b := range MapGreenhouseBoards(cfg.Greenhouse) {
		res, err := gh.FetchBoard(ctx, b)
		all.Merge(res)
		if err != nil {
			return all, err
		}
	}
	for _, b := range MapLeverBoards(cfg.Lever) {
		res, err := lv.FetchBoard(ctx, b)
		all.Merge(res)
		if err != nil {
			return all, err
		}
	}

	return all, nil
}

// BuildTable flattens records into the output table, first record per link wins.
func BuildTable(jobs []domain.JobRecord) *output.Table {
	tbl := output.NewTable(KeyColumn)
	for _, j := range jobs {
		tbl.Add(j.Fields())
	}
	return tbl
}

// Run executes RunOnce and writes cfg.Output.
func Run(ctx context.Context, cfg config.Jobs, f types.Fetcher, logger *log.Logger) (Summary, error) {
	res, err := RunOnce(ctx, cfg, f, logger)
	if err != nil {
		return Summary{}, err
	}

	tbl := BuildTable(res.Jobs)
	if err := output.WriteCSV(cfg.Output, tbl); err != nil {
		return Summary{}, fmt.Errorf("write %s: %w", cfg.Output, err)
	}

	sum := Summary{
		Found:      len(res.Jobs),
		Written:    tbl.Len(),
		Duplicates: tbl.Dropped(),
		Skipped:    res.Skipped,
		Output:     cfg.Output,
	}
	for _, s := range res.Skipped {
		logger.Debug("skipped", "source", s.Source, "item", s.Item, "reason", s.Reason)
	}
	logger.Info("TOTAL VISA JOBS FOUND", "count", sum.Written, "duplicates", sum.Duplicates, "skipped", len(sum.Skipped), "file", sum.Output)
	return sum, nil
}
