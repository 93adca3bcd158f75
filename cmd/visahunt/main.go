package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"visahunt/internal/logging"
	"visahunt/internal/secrets"
)

type CLI struct {
	ConfigFile string `name:"config" short:"c" help:"Path to the YAML config file (built-in defaults when empty)." env:"VISAHUNT_CONFIG" type:"path"`
	LogLevel   string `name:"log-level" help:"debug, info, warn or error." env:"LOG_LEVEL"`

	Salesnav SalesnavCmd `cmd:"" help:"Log in to Sales Navigator and list hiring companies with their recruiters."`
	Jobs     JobsCmd     `cmd:"" help:"Scrape job boards for postings that mention visa sponsorship."`
	All      AllCmd      `cmd:"" help:"Run both pipelines side by side."`
	Config   ConfigCmd   `cmd:"" help:"Manage the config file."`
	Secret   SecretCmd   `cmd:"" help:"Manage the LinkedIn password in the OS keychain."`
}

// app carries what every command needs.
type app struct {
	ctx        context.Context
	log        *log.Logger
	configPath string
}

func main() {
	// .env must be loaded before kong reads env-backed flags
	secrets.LoadDotEnv()

	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("visahunt"),
		kong.Description("Find visa-sponsoring employers on LinkedIn and public job boards."),
		kong.UsageOnError(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{
		ctx:        ctx,
		log:        logging.New(os.Stderr, cli.LogLevel),
		configPath: cli.ConfigFile,
	}
	if err := kctx.Run(a); err != nil {
		a.log.Error("fatal", "err", err)
		stop()
		os.Exit(1)
	}
}
