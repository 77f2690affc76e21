package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/fieldworkhq/leadspider/internal/config"
	"github.com/fieldworkhq/leadspider/internal/crawl"
	"github.com/fieldworkhq/leadspider/internal/database"
	"github.com/fieldworkhq/leadspider/internal/fetch"
	"github.com/fieldworkhq/leadspider/internal/log"
	"github.com/fieldworkhq/leadspider/internal/model"
	"github.com/fieldworkhq/leadspider/internal/report"
)

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl [seed-url]",
		Short: "Crawl a website and extract contact records",
		Long: `Crawl visits pages within the seed URL's origin and extracts contact
records: email addresses paired, where possible, with a person's name,
title, and phone number.

Three modes trade coverage for cost:
- gentle:     fetch only the seed page, no browser
- standard:   up to 10 pages, depth 2 (default)
- aggressive: up to 20 pages, depth 3

Pages whose URL or link text mention staff, contact, or topic keywords
are visited before anything else, so contact-dense pages win the page
budget.

Examples:
  # Crawl with defaults
  leadspider crawl https://rink.example.com

  # Cheap single-page pass without a browser
  leadspider crawl --mode gentle https://rink.example.com

  # Deeper crawl with a JSON report written to a file
  leadspider crawl --mode aggressive --json -o report.json https://rink.example.com

  # Crawl several sites concurrently
  leadspider crawl -b 4 https://a.example.com https://b.example.com

Keyword file (.leadspider) example:
  staff:
    - coach
    - instructors
  topic:
    - hockey
    - skating`,
		Args: cobra.ArbitraryArgs,
		RunE: runCrawlCmd,
	}

	// Crawl behavior flags
	cmd.Flags().StringP("mode", "M", string(config.ModeStandard),
		"Crawl mode: gentle, standard, or aggressive")
	cmd.Flags().IntP("depth", "d", -1,
		"Maximum link depth from the seed (-1 uses the mode default)")
	cmd.Flags().IntP("max-pages", "p", 0,
		"Maximum number of pages to visit (0 uses the mode default)")
	cmd.Flags().Bool("follow-links", false,
		"Force link following on or off (default follows the mode)")
	cmd.Flags().DurationP("nav-timeout", "n", config.DefaultNavigationTimeout,
		"Timeout for each page navigation")
	cmd.Flags().DurationP("timeout", "t", config.DefaultJobTimeout,
		"Wall-clock limit per crawl job")
	cmd.Flags().StringP("engine", "e", string(config.EngineChromium),
		"Browser engine: chromium or firefox")

	// Batch crawling flags
	cmd.Flags().IntP("concurrency", "b", 1,
		"Number of seeds crawled concurrently")

	// Keyword configuration
	cmd.Flags().StringP("keywords", "k", "",
		"Keyword file path (default: .leadspider in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown and --csv)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json and --csv)")
	cmd.Flags().Bool("csv", false,
		"Output CSV report (mutually exclusive with --json and --markdown)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	// Persistence flags
	cmd.Flags().Bool("no-save", false,
		"Do not persist results to the local database")

	return cmd
}

// runCrawlCmd executes the crawl command.
func runCrawlCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging
	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runCrawl(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	mode, err := cmd.Flags().GetString("mode")
	if err != nil {
		return nil, err
	}
	cfg.Mode, err = config.ParseMode(mode)
	if err != nil {
		return nil, err
	}

	cfg.MaxDepth, err = cmd.Flags().GetInt("depth")
	if err != nil {
		return nil, err
	}

	cfg.MaxPages, err = cmd.Flags().GetInt("max-pages")
	if err != nil {
		return nil, err
	}

	// Only treat --follow-links as an override when the user set it,
	// so the mode default survives when the flag is absent.
	if cmd.Flags().Changed("follow-links") {
		follow, err := cmd.Flags().GetBool("follow-links")
		if err != nil {
			return nil, err
		}
		cfg.FollowLinks = &follow
	}

	cfg.NavigationTimeout, err = cmd.Flags().GetDuration("nav-timeout")
	if err != nil {
		return nil, err
	}

	cfg.JobTimeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	engine, err := cmd.Flags().GetString("engine")
	if err != nil {
		return nil, err
	}
	cfg.Engine = config.BrowserEngine(engine)

	cfg.Concurrency, err = cmd.Flags().GetInt("concurrency")
	if err != nil {
		return nil, err
	}

	cfg.KeywordFilePath, err = cmd.Flags().GetString("keywords")
	if err != nil {
		return nil, err
	}

	// Load keyword families from file.
	// If user explicitly specified a keyword file path, error if not found.
	// If no path specified, silently fall back to built-in defaults.
	explicitKeywordPath := cfg.KeywordFilePath != ""
	keywordPath := config.FindKeywordFile(cfg.KeywordFilePath)

	if keywordPath != "" {
		cfg.Keywords, err = config.LoadKeywordFile(keywordPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load keyword file %s: %w", keywordPath, err)
		}
	} else if explicitKeywordPath {
		return nil, fmt.Errorf("keyword file not found: %s", cfg.KeywordFilePath)
	} else {
		cfg.Keywords = config.DefaultKeywords()
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.CSVReport, err = cmd.Flags().GetBool("csv")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, err
	}

	// Save to database using the XDG data directory unless disabled
	cfg.SaveToDB = !noSave
	cfg.DBDir = config.XDGDataDir()

	cfg.Verbose = getVerboseFlag(cmd)

	// Get positional arguments (seed URLs)
	cfg.Seeds = args

	return cfg, nil
}

// runCrawl executes crawl jobs for every seed.
func runCrawl(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting crawl",
		"seeds", cfg.Seeds,
		"mode", cfg.Mode,
		"concurrency", cfg.Concurrency,
		"saveToDB", cfg.SaveToDB,
	)

	// Open database connection if saving is enabled
	var db *database.ContactDB
	if cfg.SaveToDB {
		var err error
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Info("database opened", "dir", cfg.DBDir)
	}

	// Gentle mode never launches a browser. For the other modes one
	// engine is shared across all jobs; each job gets its own isolated
	// browsing context.
	var engine *fetch.Engine
	if cfg.Mode != config.ModeGentle {
		engine = fetch.NewEngine(cfg.Engine, logger)
		defer func() {
			if err := engine.Close(); err != nil {
				logger.Error("failed to close browser engine", "error", err)
			}
		}()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Concurrency)

	var mu sync.Mutex
	for _, seed := range cfg.Seeds {
		g.Go(func() error {
			batch, err := crawlSeed(gctx, cfg, engine, seed, logger)
			if err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()

			fmt.Printf("Crawl of %s completed in %s (%d contacts)\n",
				seed, batch.Duration().Round(time.Millisecond), len(batch.Contacts))

			if err := outputReport(cfg, batch); err != nil {
				logger.Error("report failed", "seed", seed, "error", err)
			}
			if err := saveBatch(gctx, db, batch, logger); err != nil {
				logger.Error("failed to save batch", "seed", seed, "error", err)
			}
			return nil
		})
	}

	return g.Wait()
}

// crawlSeed runs a single crawl job for one seed URL.
func crawlSeed(ctx context.Context, cfg *config.Config, engine *fetch.Engine, seed string, logger *slog.Logger) (*model.Batch, error) {
	fetcher, cleanup, err := newFetcher(cfg, engine, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to start fetcher for %s: %w", seed, err)
	}
	defer cleanup()

	job, err := crawl.NewJob(seed, cfg, fetcher, logger)
	if err != nil {
		return nil, fmt.Errorf("invalid seed %q: %w", seed, err)
	}

	fmt.Printf("Crawling %s...\n", seed)
	return job.Run(ctx), nil
}

// newFetcher builds the fetcher for the configured mode.
// Gentle mode uses plain HTTP; everything else drives a browser page on
// the shared engine. The returned cleanup releases per-job resources.
func newFetcher(cfg *config.Config, engine *fetch.Engine, logger *slog.Logger) (fetch.Fetcher, func(), error) {
	if cfg.Mode == config.ModeGentle {
		return fetch.NewStaticFetcher(cfg), func() {}, nil
	}

	bf, err := fetch.NewBrowserFetcher(engine, cfg.Budget(), logger)
	if err != nil {
		return nil, nil, err
	}
	return bf, bf.Close, nil
}

// outputReport outputs the batch in the requested format.
func outputReport(cfg *config.Config, batch *model.Batch) error {
	// Determine output destination
	var output *os.File
	if cfg.ReportFile != "" {
		// Create directories if they don't exist
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		// Create/overwrite the output file with secure permissions (0600)
		// Contact lists are personal data that should only be readable by the owner
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	writer := newReportWriter(cfg, output)
	_, err := writer.Write(batch)
	return err
}

// newReportWriter selects the report writer for the configured format.
func newReportWriter(cfg *config.Config, output *os.File) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(output)
	case cfg.CSVReport:
		return report.NewCSVWriter(output)
	default:
		return report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}
}

// saveBatch saves the batch to the database if enabled.
//
// If db is nil, this function is a no-op.
func saveBatch(ctx context.Context, db *database.ContactDB, batch *model.Batch, logger *slog.Logger) error {
	if db == nil {
		return nil
	}

	if err := db.SaveBatch(ctx, batch); err != nil {
		return fmt.Errorf("failed to save batch: %w", err)
	}

	logger.Info("batch saved to database", "batch", batch.ID, "seed", batch.SeedURL)
	return nil
}
