package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/courseaudit/vast"
)

// Ensure LoggingMediaInspector implements vast.MediaInspector.
var _ vast.MediaInspector = (*LoggingMediaInspector)(nil)

// LoggingMediaInspector wraps a MediaInspector with debug logging.
type LoggingMediaInspector struct {
	next   vast.MediaInspector
	logger *slog.Logger
}

// NewLoggingMediaInspector creates a new LoggingMediaInspector.
func NewLoggingMediaInspector(next vast.MediaInspector, logger *slog.Logger) *LoggingMediaInspector {
	return &LoggingMediaInspector{next: next, logger: logger}
}

// Inspect delegates to the wrapped inspector and logs the operation.
func (i *LoggingMediaInspector) Inspect(ctx context.Context, url string) (status string) {
	defer func(begin time.Time) {
		i.logger.Info("media object inspection",
			"url", url,
			"status", status,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return i.next.Inspect(ctx, url)
}
