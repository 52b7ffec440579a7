package mock

import (
	"context"

	"github.com/courseaudit/vast"
)

var _ vast.ReportWriter = (*ReportWriter)(nil)

// ReportWriter is a mock implementation of vast.ReportWriter.
type ReportWriter struct {
	WriteReportFn func(ctx context.Context, report *vast.Report) error
}

func (w *ReportWriter) WriteReport(ctx context.Context, report *vast.Report) error {
	return w.WriteReportFn(ctx, report)
}
