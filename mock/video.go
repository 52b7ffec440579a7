package mock

import (
	"context"

	"github.com/courseaudit/vast"
)

var _ vast.VideoService = (*VideoService)(nil)

// VideoService is a mock implementation of vast.VideoService.
type VideoService struct {
	LookupFn func(ctx context.Context, videoID string) (vast.Duration, []vast.CaptionTrack, error)
}

func (s *VideoService) Lookup(ctx context.Context, videoID string) (vast.Duration, []vast.CaptionTrack, error) {
	return s.LookupFn(ctx, videoID)
}
