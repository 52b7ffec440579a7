package mock

import (
	"context"

	"github.com/courseaudit/vast"
)

var _ vast.CourseService = (*CourseService)(nil)

// CourseService is a mock implementation of vast.CourseService.
type CourseService struct {
	FindCourseByIDFn func(ctx context.Context, courseID string) (*vast.Course, error)
	DocumentsFn      func(ctx context.Context, courseID string, kind vast.DocumentKind) ([]*vast.Document, error)
	ModuleItemsFn    func(ctx context.Context, courseID string) ([]*vast.ModuleItem, error)
}

func (s *CourseService) FindCourseByID(ctx context.Context, courseID string) (*vast.Course, error) {
	return s.FindCourseByIDFn(ctx, courseID)
}

func (s *CourseService) Documents(ctx context.Context, courseID string, kind vast.DocumentKind) ([]*vast.Document, error) {
	return s.DocumentsFn(ctx, courseID, kind)
}

func (s *CourseService) ModuleItems(ctx context.Context, courseID string) ([]*vast.ModuleItem, error) {
	return s.ModuleItemsFn(ctx, courseID)
}
