package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/jwalczak/menuscan"
)

// Ensure LoggingVision implements menuscan.Vision.
var _ menuscan.Vision = (*LoggingVision)(nil)

// LoggingVision wraps a Vision with operation logging.
type LoggingVision struct {
	next   menuscan.Vision
	logger *slog.Logger
}

// NewLoggingVision creates a new LoggingVision.
func NewLoggingVision(next menuscan.Vision, logger *slog.Logger) *LoggingVision {
	return &LoggingVision{next: next, logger: logger}
}

// ExtractMenu delegates to the wrapped vision and logs the operation.
func (v *LoggingVision) ExtractMenu(ctx context.Context, image []byte, mimeType string) (result *menuscan.VisionResult, err error) {
	defer func(begin time.Time) {
		items := 0
		if result != nil {
			items = len(result.Items)
		}
		v.logger.Info("vision extraction",
			"bytes", len(image),
			"mimeType", mimeType,
			"items", items,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return v.next.ExtractMenu(ctx, image, mimeType)
}
