package mock

import (
	"context"

	"github.com/courseaudit/vast"
)

var _ vast.MediaInspector = (*MediaInspector)(nil)

// MediaInspector is a mock implementation of vast.MediaInspector.
type MediaInspector struct {
	InspectFn func(ctx context.Context, url string) string
}

func (i *MediaInspector) Inspect(ctx context.Context, url string) string {
	return i.InspectFn(ctx, url)
}
