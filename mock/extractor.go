package mock

import (
	"context"

	"github.com/courseaudit/vast"
)

var _ vast.MediaExtractor = (*MediaExtractor)(nil)

// MediaExtractor is a mock implementation of vast.MediaExtractor.
type MediaExtractor struct {
	ExtractFn func(ctx context.Context, inv *vast.Inventory, html, location string) error
}

func (e *MediaExtractor) Extract(ctx context.Context, inv *vast.Inventory, html, location string) error {
	return e.ExtractFn(ctx, inv, html, location)
}
