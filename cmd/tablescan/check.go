package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/tablescan/internal/config"
	"github.com/nao1215/tablescan/internal/database"
	"github.com/nao1215/tablescan/internal/loader"
	"github.com/nao1215/tablescan/internal/log"
	"github.com/nao1215/tablescan/internal/model"
	"github.com/nao1215/tablescan/internal/pipeline"
	"github.com/nao1215/tablescan/internal/report"
)

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [file...]",
		Short: "Analyze CSV files for data quality issues",
		Long: `Check analyzes tabular data without requiring a schema.

It loads each CSV file, infers the dominant type of every column from the
cell content, and reports:
- Type outliers (values contradicting the established column type)
- Missing values, mixed types, and constant columns
- Schema and range violations when a rules file is supplied

Examples:
  # Analyze a single CSV file
  tablescan check patients.csv

  # Analyze several files concurrently
  tablescan check a.csv b.csv c.csv --batch 4

  # Validate against declared types and ranges
  tablescan check --schema-file rules.yaml patients.csv

  # Output JSON report to a file
  tablescan check --json --output report.json patients.csv

  # Analyze CSV content pasted on stdin
  tablescan check --paste < snippet.csv

Rules file (.tablescan) example:
  minRows: 10
  schema:
    age: integer
    visit_date: date
  rules:
    age:
      min: 0
      max: 120
    gender:
      allowed: [M, F, X]`,
		Args: cobra.ArbitraryArgs,
		RunE: runCheckCmd,
	}

	// Analysis behavior flags
	cmd.Flags().Float64P("threshold", "t", config.DefaultThreshold,
		"Confidence threshold for establishing column types (0-1]")
	cmd.Flags().Int("min-rows", config.DefaultMinRows,
		"Minimum number of data rows required")

	// Batch analysis flags
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent analyses")

	// Rules file
	cmd.Flags().StringP("schema-file", "c", "",
		"Rules file path (default: .tablescan in current or home directory)")

	// Input flags
	cmd.Flags().BoolP("paste", "p", false,
		"Read CSV content from stdin instead of files")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().Bool("no-save", false,
		"Do not save reports to the history database")

	return cmd
}

// runCheckCmd executes the check command.
func runCheckCmd(cmd *cobra.Command, args []string) error {
	// Build config from flags
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging with cell-value masking
	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runCheck(ctx, cfg, logger)
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

	cfg.Threshold, err = cmd.Flags().GetFloat64("threshold")
	if err != nil {
		return nil, err
	}

	cfg.MinRows, err = cmd.Flags().GetInt("min-rows")
	if err != nil {
		return nil, err
	}

	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	cfg.RulesPath, err = cmd.Flags().GetString("schema-file")
	if err != nil {
		return nil, err
	}

	// Load rules from the rules file.
	// If user explicitly specified a rules file path, error if not found.
	// If no path specified, silently skip when no file is found.
	explicitRulesPath := cfg.RulesPath != ""
	rulesPath := config.FindRulesFile(cfg.RulesPath)

	if rulesPath != "" {
		cfg.Rules, err = config.LoadRulesFile(rulesPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load rules file %s: %w", rulesPath, err)
		}
	} else if explicitRulesPath {
		// User explicitly specified a rules file that doesn't exist
		return nil, fmt.Errorf("rules file not found: %s", cfg.RulesPath)
	}

	// A minRows in the rules file applies unless --min-rows was given explicitly
	if cfg.Rules != nil && cfg.Rules.MinRows > 0 && !cmd.Flags().Changed("min-rows") {
		cfg.MinRows = cfg.Rules.MinRows
	}

	cfg.Paste, err = cmd.Flags().GetBool("paste")
	if err != nil {
		return nil, err
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
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
	cfg.SaveToDB = !noSave

	cfg.Verbose = getVerboseFlag(cmd)

	// Get positional arguments (CSV file paths)
	cfg.Targets = args

	return cfg, nil
}

// runCheck executes the analysis.
func runCheck(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting analysis",
		"targets", cfg.Targets,
		"paste", cfg.Paste,
		"threshold", cfg.Threshold,
		"batchSize", cfg.BatchSize,
		"saveToDB", cfg.SaveToDB,
	)

	// Open database connection if saving is enabled
	var db *database.HistoryDB
	if cfg.SaveToDB {
		var err error
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Info("database opened", "dir", cfg.DBDir)
	}

	ld := loader.NewLoader(newLoaderOptions(cfg, logger)...)

	if cfg.Paste {
		return runPasteCheck(ctx, cfg, ld, db, logger)
	}

	// Use batch processor for parallel analysis if multiple files
	if len(cfg.Targets) > 1 && cfg.BatchSize > 1 {
		return runBatchCheck(ctx, cfg, ld, db, logger)
	}

	// Single file or sequential analysis
	return runSequentialCheck(ctx, cfg, ld, db, logger)
}

// newLoaderOptions assembles loader options from the configuration.
func newLoaderOptions(cfg *config.Config, logger *slog.Logger) []loader.Option {
	opts := []loader.Option{loader.WithLogger(logger)}
	if len(cfg.NullTokens) > 0 {
		opts = append(opts, loader.WithNullTokens(cfg.NullTokens))
	}
	return opts
}

// newPipeline creates a fresh pipeline from the configuration.
// Continue-on-error keeps per-step failures (e.g. a schema problem) from
// suppressing the results of the remaining checks.
func newPipeline(cfg *config.Config, logger *slog.Logger) *pipeline.Pipeline {
	settings := pipeline.Settings{
		Threshold:      cfg.Threshold,
		MinShapeValues: cfg.MinShapeValues,
		MinRows:        cfg.MinRows,
		NullTokens:     cfg.NullTokens,
		Logger:         logger,
	}
	if cfg.Rules != nil {
		settings.Schema = cfg.Rules.Schema
		settings.Rules = cfg.Rules.Rules
	}

	return pipeline.Default(settings,
		pipeline.WithLogger(logger),
		pipeline.WithContinueOnError(true),
	)
}

// runPasteCheck analyzes CSV content read from stdin.
func runPasteCheck(ctx context.Context, cfg *config.Config, ld *loader.Loader, db *database.HistoryDB, logger *slog.Logger) error {
	content, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}

	qr := model.NewQualityReport("stdin")

	ds, err := ld.ParseString(string(content), "stdin")
	if err != nil {
		return fmt.Errorf("failed to parse pasted content: %w", err)
	}

	if err := newPipeline(cfg, logger).Execute(ctx, ds, qr); err != nil {
		logger.Error("analysis failed", "source", "stdin", "error", err)
	}

	if err := outputReport(cfg, qr); err != nil {
		return err
	}

	return saveReport(ctx, db, qr, logger)
}

// runSequentialCheck analyzes files one at a time.
func runSequentialCheck(ctx context.Context, cfg *config.Config, ld *loader.Loader, db *database.HistoryDB, logger *slog.Logger) error {
	for _, target := range cfg.Targets {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		fmt.Printf("Analyzing %s...\n", target)
		startTime := time.Now()

		qr := model.NewQualityReport(target)

		ds, err := ld.LoadFile(target)
		if err != nil {
			logger.Error("load failed", "target", target, "error", err)
			fmt.Fprintf(os.Stderr, "Load error for %s: %v\n", target, err)
			continue
		}

		if err := newPipeline(cfg, logger).Execute(ctx, ds, qr); err != nil {
			logger.Error("analysis failed", "target", target, "error", err)
			fmt.Fprintf(os.Stderr, "Analysis error for %s: %v\n", target, err)
			continue
		}

		elapsed := time.Since(startTime)
		fmt.Printf("Analysis completed in %s\n\n", elapsed.Round(time.Millisecond))

		// Generate and output report
		if err := outputReport(cfg, qr); err != nil {
			logger.Error("report failed", "target", target, "error", err)
		}

		// Save to database if enabled
		if err := saveReport(ctx, db, qr, logger); err != nil {
			logger.Error("failed to save report", "target", target, "error", err)
		}
	}

	return nil
}

// runBatchCheck analyzes multiple files concurrently using BatchProcessor.
func runBatchCheck(ctx context.Context, cfg *config.Config, ld *loader.Loader, db *database.HistoryDB, logger *slog.Logger) error {
	fmt.Printf("Starting batch analysis of %d files (concurrency: %d)...\n\n",
		len(cfg.Targets), cfg.BatchSize)

	startTime := time.Now()

	// Create batch processor with pipeline factory
	bp := pipeline.NewBatchProcessor(
		func() *pipeline.Pipeline {
			return newPipeline(cfg, logger)
		},
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLoader(ld),
		pipeline.WithBatchLogger(logger),
	)

	// Process with callback for streaming output
	var mu sync.Mutex
	err := bp.ProcessBatchWithCallback(ctx, cfg.Targets, func(qr *model.QualityReport, index int) {
		mu.Lock()
		defer mu.Unlock()

		fmt.Printf("[%d/%d] Analysis completed: %s\n", index+1, len(cfg.Targets), qr.Source)

		// Generate and output report
		if err := outputReport(cfg, qr); err != nil {
			logger.Error("report failed", "target", qr.Source, "error", err)
		}

		// Save to database if enabled
		if err := saveReport(ctx, db, qr, logger); err != nil {
			logger.Error("failed to save report", "target", qr.Source, "error", err)
		}
	})

	elapsed := time.Since(startTime)
	fmt.Printf("\nBatch analysis completed in %s\n", elapsed.Round(time.Millisecond))

	return err
}

// outputReport outputs the quality report in the requested format.
func outputReport(cfg *config.Config, qr *model.QualityReport) error {
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

		// Create/overwrite the output file with owner-only permissions.
		// Reports quote cell values, which may contain personal data.
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	// JSON output (full report with summary and version metadata)
	if cfg.JSONReport {
		writer := report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint())
		_, err := writer.Write(qr)
		return err
	}

	// Markdown output
	if cfg.MarkdownReport {
		writer := report.NewMarkdownWriter(output)
		_, err := writer.Write(qr)
		return err
	}

	// Human-readable report (default)
	writer := report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	_, err := writer.Write(qr)
	return err
}

// saveReport saves the quality report to the database if enabled.
// If db is nil, this function is a no-op.
func saveReport(ctx context.Context, db *database.HistoryDB, qr *model.QualityReport, logger *slog.Logger) error {
	if db == nil {
		return nil
	}

	if err := db.SaveReport(ctx, qr); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	logger.Info("report saved to database", "source", qr.Source)
	return nil
}
