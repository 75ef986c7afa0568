package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/nao1215/tablescan/internal/loader"
	"github.com/nao1215/tablescan/internal/model"
	"golang.org/x/sync/errgroup"
)

// BatchProcessor handles concurrent analysis of multiple input files.
// It uses errgroup to manage goroutines and respect concurrency limits.
//
// Design decision: We use a separate BatchProcessor rather than adding batch
// functionality to Pipeline because:
// 1. It keeps the Pipeline focused on single-dataset execution
// 2. It allows different batch strategies (e.g., rate limiting, retries)
// 3. It provides cleaner separation of concerns
type BatchProcessor struct {
	// pipelineFactory creates a new pipeline for each file.
	// We use a factory to ensure each analysis gets a fresh pipeline
	// instance.
	pipelineFactory func() *Pipeline

	// loader parses input files into datasets.
	loader *loader.Loader

	// concurrency is the maximum number of files analyzed at once.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger

	// results stores completed reports.
	// Access is synchronized via mutex.
	results []*model.QualityReport
	mu      sync.Mutex
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithBatchLoader sets a custom loader, e.g. one with non-default null
// tokens or a tab delimiter.
func WithBatchLoader(l *loader.Loader) BatchOption {
	return func(b *BatchProcessor) {
		b.loader = l
	}
}

// WithConcurrency sets the maximum number of concurrent analyses.
// Default is 4 if not specified.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor.
//
// The pipelineFactory function is called for each file to create a fresh
// pipeline instance. This ensures that pipeline state doesn't leak between
// analyses and allows for per-file customization if needed.
func NewBatchProcessor(pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     4,
		results:         make([]*model.QualityReport, 0),
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.loader == nil {
		bp.loader = loader.NewLoader()
	}
	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch analyzes multiple files concurrently. It respects the
// configured concurrency limit and context cancellation.
//
// Design decision: We use errgroup.SetLimit rather than a worker pool
// because it's simpler and errgroup handles the concurrency correctly.
// Each file gets its own goroutine, but only 'concurrency' goroutines
// run simultaneously.
//
// Returns one report per file in input order, even for files that failed to
// load; those reports carry the load error. The error return indicates
// cancellation, not per-file failure.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, files []string) ([]*model.QualityReport, error) {
	bp.logger.Info("starting batch processing",
		"total_files", len(files),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()

	// Pre-allocate results slice to maintain order
	bp.results = make([]*model.QualityReport, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			report := bp.analyzeFile(ctx, file, i+1, len(files))

			bp.mu.Lock()
			bp.results[i] = report
			bp.mu.Unlock()

			return nil
		})
	}

	err := g.Wait()

	elapsed := time.Since(startTime)
	bp.logger.Info("batch processing complete",
		"total_files", len(files),
		"elapsed", elapsed,
	)

	return bp.results, err
}

// ProcessBatchWithCallback analyzes multiple files and calls a callback for
// each completed report. This is useful for streaming results.
//
// The callback receives the report and the index of the file in the original
// slice. The callback is called from the goroutine that completed the
// analysis, so it should be thread-safe if it accesses shared state.
func (bp *BatchProcessor) ProcessBatchWithCallback(
	ctx context.Context,
	files []string,
	callback func(report *model.QualityReport, index int),
) error {
	bp.logger.Info("starting batch processing with callback",
		"total_files", len(files),
		"concurrency", bp.concurrency,
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			callback(bp.analyzeFile(ctx, file, i+1, len(files)), i)
			return nil
		})
	}

	return g.Wait()
}

// analyzeFile loads one file and runs a fresh pipeline over it. Load and
// step failures are recorded on the returned report, never returned.
func (bp *BatchProcessor) analyzeFile(ctx context.Context, file string, index, total int) *model.QualityReport {
	bp.logger.Info("analyzing file",
		"file", file,
		"index", index,
		"total", total,
	)

	report := model.NewQualityReport(file)

	ds, err := bp.loader.LoadFile(file)
	if err != nil {
		bp.logger.Warn("load failed", "file", file, "error", err)
		report.Error = err
		report.ErrorMessage = err.Error()
		return report
	}

	if err := bp.pipelineFactory().Execute(ctx, ds, report); err != nil {
		bp.logger.Warn("analysis failed", "file", file, "error", err)
		// Error is already recorded in the report
	}

	return report
}
