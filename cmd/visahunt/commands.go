package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"visahunt/internal/browser"
	"visahunt/internal/config"
	"visahunt/internal/salesnav"
	"visahunt/internal/scrape"
	"visahunt/internal/scrape/jobpage"
	"visahunt/internal/scrape/util"
	"visahunt/internal/secrets"
)

// loadConfig reads the config, applies the boards file and validates.
// Warnings are logged; errors are fatal.
func (a *app) loadConfig() (config.Config, error) {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	if err := config.OverlayBoards(&cfg); err != nil {
		return cfg, fmt.Errorf("boards file: %w", err)
	}
	cfg, res := config.NormalizeAndValidate(cfg)
	for _, w := range res.Warnings {
		a.log.Warn("config", "warning", w)
	}
	if !res.OK() {
		return cfg, errors.New("invalid config:\n- " + strings.Join(res.Errors, "\n- "))
	}
	return cfg, nil
}

type SalesnavCmd struct {
	Output  string `help:"Override the output CSV path." type:"path"`
	Headful bool   `help:"Show the browser window."`
}

func (c *SalesnavCmd) Run(a *app) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	if c.Output != "" {
		cfg.SalesNav.Output = c.Output
	}
	return runSalesNav(a, cfg.SalesNav, c.Headful)
}

func runSalesNav(a *app, cfg config.SalesNav, headful bool) error {
	creds, err := secrets.LinkedIn()
	if err != nil {
		return err
	}

	b, err := browser.NewChrome(a.ctx, browser.Options{ExecPath: cfg.ChromePath, Headful: headful})
	if err != nil {
		return err
	}
	defer b.Close()

	_, err = salesnav.Run(a.ctx, b, creds, cfg, a.log)
	return err
}

type JobsCmd struct {
	Output string `help:"Override the output CSV path." type:"path"`
}

func (c *JobsCmd) Run(a *app) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	if c.Output != "" {
		cfg.Jobs.Output = c.Output
	}
	return runJobs(a, cfg.Jobs)
}

func runJobs(a *app, cfg config.Jobs) error {
	f := jobpage.NewHTTPFetcher(util.NewHostLimiter(cfg.RequestsPerSecond, 1))
	_, err := scrape.Run(a.ctx, cfg, f, a.log)
	return err
}

type AllCmd struct {
	Headful bool `help:"Show the browser window."`
}

// Run starts both pipelines. One failing does not stop the other.
func (c *AllCmd) Run(a *app) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	var g errgroup.Group
	g.Go(func() error {
		if err := runSalesNav(a, cfg.SalesNav, c.Headful); err != nil {
			return fmt.Errorf("salesnav: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := runJobs(a, cfg.Jobs); err != nil {
			return fmt.Errorf("jobs: %w", err)
		}
		return nil
	})
	return g.Wait()
}

type ConfigCmd struct {
	Init  ConfigInitCmd  `cmd:"" help:"Write the default config file if none exists."`
	Check ConfigCheckCmd `cmd:"" help:"Validate the config file."`
}

type ConfigInitCmd struct {
	Path string `help:"Where to write the file." default:"visahunt.yml" type:"path"`
}

func (c *ConfigInitCmd) Run(a *app) error {
	created, err := config.EnsureUserConfig(c.Path)
	if err != nil {
		return err
	}
	if created {
		a.log.Info("config written", "path", c.Path)
	} else {
		a.log.Info("config already exists", "path", c.Path)
	}
	return nil
}

type ConfigCheckCmd struct {
	Write bool `help:"Rewrite the file in normalized form."`
}

func (c *ConfigCheckCmd) Run(a *app) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	a.log.Info("config ok",
		"regions", len(cfg.SalesNav.Regions),
		"keywords", len(cfg.SalesNav.Keywords),
		"roles", len(cfg.Jobs.Roles),
		"countries", len(cfg.Jobs.Countries),
		"boards", len(cfg.Jobs.Greenhouse)+len(cfg.Jobs.Lever),
	)
	if !c.Write {
		return nil
	}
	if a.configPath == "" {
		return errors.New("--write needs --config")
	}
	return config.SaveAtomic(a.configPath, cfg)
}

type SecretCmd struct {
	Set    SecretSetCmd    `cmd:"" help:"Store the LinkedIn password (read from stdin) in the keychain."`
	Delete SecretDeleteCmd `cmd:"" help:"Remove the stored LinkedIn password."`
}

type SecretSetCmd struct {
	Email string `arg:"" help:"LinkedIn login e-mail."`
}

var stdin io.Reader = os.Stdin

func (c *SecretSetCmd) Run(a *app) error {
	pw, err := readLine(stdin)
	if err != nil {
		return err
	}
	if err := secrets.SetLinkedInPassword(c.Email, pw); err != nil {
		return err
	}
	a.log.Info("password stored", "account", secrets.KeyringAccount(c.Email))
	return nil
}

type SecretDeleteCmd struct {
	Email string `arg:"" help:"LinkedIn login e-mail."`
}

func (c *SecretDeleteCmd) Run(a *app) error {
	if err := secrets.DeleteLinkedInPassword(c.Email); err != nil {
		return err
	}
	a.log.Info("password removed", "account", secrets.KeyringAccount(c.Email))
	return nil
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
