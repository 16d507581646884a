package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/prefyhq/prefy/internal/cli"
	"github.com/prefyhq/prefy/internal/config"
	"github.com/prefyhq/prefy/internal/db"
	"github.com/prefyhq/prefy/internal/logging"
	"github.com/prefyhq/prefy/internal/repository"
	"github.com/prefyhq/prefy/internal/service"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	app := &cli.App{}
	var closers []io.Closer
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i].Close()
		}
	}()

	// Detect interactive terminal for the full-screen editor.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Services are wired once flags are parsed so --catalog-db and friends apply.
	app.Setup = func(cmd *cobra.Command) error {
		cfg, err := config.Load(cmd.Flags())
		if err != nil {
			return err
		}

		logger, closer, err := openLogger(cfg)
		if err != nil {
			return err
		}
		if closer != nil {
			closers = append(closers, closer)
		}

		if cfg.CatalogDB != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(cfg.CatalogDB), 0o755); err != nil {
				return fmt.Errorf("creating catalog directory: %w", err)
			}
		}
		database, err := db.OpenDB(cfg.CatalogDB)
		if err != nil {
			return fmt.Errorf("opening template catalog: %w", err)
		}
		closers = append(closers, database)

		observer := service.NewLogUseCaseObserver(logger)

		// Wire repositories and unit of work for transactional operations
		templateRepo := repository.NewSQLiteTemplateRepo(database)
		uow := db.NewSQLiteUnitOfWork(database)

		app.Templates = service.NewTemplateService(templateRepo, uow, cfg.TemplatesDir, logger, observer)
		app.Documents = service.NewDocumentService(logger, time.Now, observer)
		app.DefaultTemplate = cfg.DefaultTemplate
		return nil
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

// openLogger writes to the configured log file, or to stderr. The closer is
// nil when logging to stderr.
func openLogger(cfg config.Config) (zerolog.Logger, io.Closer, error) {
	if cfg.LogFile != "" {
		return logging.Open(cfg.LogFile, cfg.LogLevel)
	}
	logger, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogConsole)
	return logger, nil, err
}
