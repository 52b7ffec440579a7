package mock

import (
	"context"

	"github.com/courseaudit/vast"
)

var _ vast.FileService = (*FileService)(nil)

// FileService is a mock implementation of vast.FileService.
type FileService struct {
	FindFileByIDFn func(ctx context.Context, fileID string) (*vast.File, error)
}

func (s *FileService) FindFileByID(ctx context.Context, fileID string) (*vast.File, error) {
	return s.FindFileByIDFn(ctx, fileID)
}
