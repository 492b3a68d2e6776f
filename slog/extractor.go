// Package slog provides logging decorators for menuscan interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/jwalczak/menuscan"
)

// Ensure LoggingCorpusExtractor implements menuscan.CorpusExtractor.
var _ menuscan.CorpusExtractor = (*LoggingCorpusExtractor)(nil)

// LoggingCorpusExtractor wraps a CorpusExtractor with operation logging.
type LoggingCorpusExtractor struct {
	next   menuscan.CorpusExtractor
	logger *slog.Logger
}

// NewLoggingCorpusExtractor creates a new LoggingCorpusExtractor.
func NewLoggingCorpusExtractor(next menuscan.CorpusExtractor, logger *slog.Logger) *LoggingCorpusExtractor {
	return &LoggingCorpusExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the operation.
func (e *LoggingCorpusExtractor) Extract(ctx context.Context, res *menuscan.Resource) (corpus menuscan.LineCorpus, err error) {
	defer func(begin time.Time) {
		e.logger.Info("corpus extraction",
			"url", res.URL,
			"lines", len(corpus),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(ctx, res)
}
