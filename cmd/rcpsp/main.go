package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/rcpsp/internal/cli"
	"github.com/alexanderramin/rcpsp/internal/config"
	"github.com/alexanderramin/rcpsp/internal/db"
	"github.com/alexanderramin/rcpsp/internal/logging"
	"github.com/alexanderramin/rcpsp/internal/repository"
	"github.com/alexanderramin/rcpsp/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(configPath(os.Args[1:]))
	if err != nil {
		return err
	}

	logger, err := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.WithLogger(ctx, logger)

	observer := service.NewLogUseCaseObserver(logger)
	app := &cli.App{
		Datasets: service.NewDatasetService(observer),
		Batch:    service.NewBatchRunner(observer),
		Config:   cfg,
	}

	if cfg.Store.Enabled {
		database, err := db.OpenDB(cfg.DB.Path)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		app.Solver = service.NewSolveService(db.NewSQLiteUnitOfWork(database), observer)
		app.Runs = service.NewRunService(repository.NewSQLiteRunRepo(database))
	} else {
		app.Solver = service.NewSolveService(nil, observer)
	}

	// Detect interactive terminal for the spinner, picker and browser.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

// configPath picks --config out of the arguments before the command tree
// exists, since the services it configures are built first.
func configPath(args []string) string {
	fs := pflag.NewFlagSet("rcpsp", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)
	path := fs.String(cli.ConfigFlag, "", "")
	if err := fs.Parse(args); err != nil && !errors.Is(err, pflag.ErrHelp) {
		return ""
	}
	return *path
}
