package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tada/internal/book"
	"github.com/idilsaglam/tada/internal/cli"
	"github.com/idilsaglam/tada/internal/config"
	"github.com/idilsaglam/tada/internal/logging"
	"github.com/idilsaglam/tada/internal/store/mongostore"
	"github.com/idilsaglam/tada/internal/tui"
	"github.com/idilsaglam/tada/internal/ui"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Root flags (apply to every subcommand)
	configPath := flag.String("config", "", "path to a TOML config file")
	theme := flag.String("theme", "", "color theme: classic, neon or mono")
	logLevel := flag.String("log-level", "", "log level: debug, info, warn or error")
	group := flag.Bool("group", false, "group books by category")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp(os.Stderr)
		return 2
	}

	cfg, err := config.Load(*configPath, config.Overrides{Theme: *theme, LogLevel: *logLevel})
	if err != nil {
		ui.Fail(os.Stderr, "config: "+err.Error())
		return 2
	}
	ui.SetTheme(cfg.App.Theme)

	logOpts := logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format}
	logger := logging.New(os.Stderr, logOpts)

	// The full-screen app owns the terminal, so it only logs to a file.
	uiLogger, closeLog, err := logging.Open(cfg.Log.File, logOpts)
	if err != nil {
		ui.Fail(os.Stderr, err.Error())
		return 1
	}
	defer func() { _ = closeLog() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoOpts := mongostore.Options{
		URI:        cfg.Mongo.URI,
		Database:   cfg.Mongo.Database,
		Collection: cfg.Mongo.Collection,
		Timeout:    cfg.Mongo.Timeout,
	}

	code := cli.Run(ctx, args, cli.Options{
		Group: *group,
		UI: tui.Options{
			Greeting: tui.Greeting{
				WelcomeName: cfg.App.WelcomeName,
				FirstName:   cfg.App.FirstName,
				LastName:    cfg.App.LastName,
			},
			ClockInterval: cfg.App.ClockInterval,
			Logger:        uiLogger,
		},
		OpenBooks: openBooks(mongoOpts, logger),
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	return code
}

func openBooks(opts mongostore.Options, logger *log.Logger) cli.OpenBooks {
	return func(ctx context.Context) (cli.BookService, func(), error) {
		client, err := mongostore.Connect(ctx, opts, logger)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				logger.Warn("failed to disconnect from mongo", "err", err)
			}
		}
		return book.New(mongostore.Open(client, opts), logger), closeFn, nil
	}
}
