// Package slog provides logging decorators for the external service
// interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/courseaudit/vast"
)

// Ensure LoggingVideoService implements vast.VideoService.
var _ vast.VideoService = (*LoggingVideoService)(nil)

// LoggingVideoService wraps a VideoService with debug logging.
type LoggingVideoService struct {
	next   vast.VideoService
	logger *slog.Logger
}

// NewLoggingVideoService creates a new LoggingVideoService.
func NewLoggingVideoService(next vast.VideoService, logger *slog.Logger) *LoggingVideoService {
	return &LoggingVideoService{next: next, logger: logger}
}

// Lookup delegates to the wrapped service and logs the operation.
func (s *LoggingVideoService) Lookup(ctx context.Context, videoID string) (duration vast.Duration, tracks []vast.CaptionTrack, err error) {
	defer func(begin time.Time) {
		s.logger.Info("video lookup",
			"video_id", videoID,
			"tracks", len(tracks),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Lookup(ctx, videoID)
}
