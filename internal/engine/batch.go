package engine

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// BatchProcessor runs independent document contexts concurrently. Each
// document gets a fresh Engine from the factory, preserving the
// one-cache-per-document ownership model: engines are never shared
// between goroutines.
type BatchProcessor struct {
	// engineFactory creates a new engine for each document.
	engineFactory func() *Engine

	// concurrency is the maximum number of documents processed at once.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) { b.logger = logger }
}

// WithConcurrency sets the maximum number of concurrent documents.
// Default is 4 if not specified.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a BatchProcessor. The factory is called once
// per document so that no cache or codec state leaks between documents.
func NewBatchProcessor(engineFactory func() *Engine, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		engineFactory: engineFactory,
		concurrency:   4,
	}
	for _, opt := range opts {
		opt(bp)
	}
	if bp.logger == nil {
		bp.logger = slog.Default()
	}
	return bp
}

// Run processes every document with fn, each on its own engine, at most
// the configured number concurrently. The first error cancels the
// remaining documents and is returned.
func (b *BatchProcessor) Run(ctx context.Context, documents []string,
	fn func(ctx context.Context, eng *Engine, document string) error) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for _, doc := range documents {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			b.logger.Debug("processing document", "document", doc)
			return fn(ctx, b.engineFactory(), doc)
		})
	}
	return g.Wait()
}
