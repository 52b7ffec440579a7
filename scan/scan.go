// Package scan provides course audit orchestration. It coordinates the
// sequential traversal of course content, classification of media
// references, the accessibility rule battery, and the concurrent
// resolution of caption status against external services.
package scan

import (
	"context"
	"strings"

	"github.com/courseaudit/vast"
	"github.com/courseaudit/vast/youtube"
)

// Scanner orchestrates a course audit.
type Scanner struct {
	Courses       vast.CourseService
	Files         vast.FileService
	Extractor     vast.MediaExtractor
	Checker       vast.AccessibilityChecker
	Inspector     vast.MediaInspector
	Videos        vast.VideoService
	RateLimiter   vast.DomainLimiter
	VideoHost     string
	InspectorHost string
	Concurrency   int
}

// ProgressEvent reports progress during a course audit.
type ProgressEvent struct {
	Type     ProgressType
	Section  vast.DocumentKind
	Total    int
	Location string
	Error    error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressSection ProgressType = iota
	ProgressSectionFailed
	ProgressDocumentFailed
	ProgressModules
	ProgressResolving
	ProgressFinished
)

// ProgressFunc is a callback for reporting audit progress.
type ProgressFunc func(event ProgressEvent)

// documentSections is the traversal order for HTML document sections.
// Announcements come last, after the module walk.
var documentSections = []vast.DocumentKind{
	vast.KindPage,
	vast.KindAssignment,
	vast.KindDiscussion,
	vast.KindSyllabus,
}

// ScanCourse audits one course end to end and returns the completed
// report. Course lookup failure aborts the run; every later failure is
// either reported through progress and skipped, or converted into a
// caption status string on the affected reference.
func (s *Scanner) ScanCourse(ctx context.Context, courseID string, progress ProgressFunc) (*vast.Report, error) {
	course, err := s.Courses.FindCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	inv := vast.NewInventory()
	var findings []vast.Finding

	for _, kind := range documentSections {
		findings = append(findings, s.scanSection(ctx, inv, courseID, kind, progress)...)
	}

	s.scanModules(ctx, inv, courseID, progress)

	findings = append(findings, s.scanSection(ctx, inv, courseID, vast.KindAnnouncement, progress)...)

	resolutions := s.resolve(ctx, inv, progress)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished})
	}

	return BuildReport(course, inv, resolutions, findings), nil
}

// scanSection walks one content section: every non-empty document body is
// classified for media references and run through the accessibility
// battery. A failed document is skipped, never fatal.
func (s *Scanner) scanSection(ctx context.Context, inv *vast.Inventory, courseID string, kind vast.DocumentKind, progress ProgressFunc) []vast.Finding {
	if progress != nil {
		progress(ProgressEvent{Type: ProgressSection, Section: kind})
	}

	docs, err := s.Courses.Documents(ctx, courseID, kind)
	if err != nil {
		if progress != nil {
			progress(ProgressEvent{Type: ProgressSectionFailed, Section: kind, Error: err})
		}
		return nil
	}

	var findings []vast.Finding
	for _, doc := range docs {
		if strings.TrimSpace(doc.Body) == "" {
			continue
		}

		if err := s.Extractor.Extract(ctx, inv, doc.Body, doc.Location); err != nil {
			if progress != nil {
				progress(ProgressEvent{Type: ProgressDocumentFailed, Section: kind, Location: doc.Location, Error: err})
			}
			continue
		}

		if s.Checker != nil {
			docFindings, err := s.Checker.Check(doc.Body, doc.Location)
			if err != nil {
				findings = append(findings, vast.Finding{
					Test:     "accessibilityChecks",
					Status:   vast.FindingError,
					Location: doc.Location,
					Details:  vast.ErrorMessage(err),
				})
				continue
			}
			findings = append(findings, docFindings...)
		}
	}

	return findings
}

// scanModules walks every module item. External URLs are matched against
// the video platform pattern and the library domain list independently;
// file items are resolved into linked-file entries. Item failures are
// silent.
func (s *Scanner) scanModules(ctx context.Context, inv *vast.Inventory, courseID string, progress ProgressFunc) {
	if progress != nil {
		progress(ProgressEvent{Type: ProgressModules})
	}

	items, err := s.Courses.ModuleItems(ctx, courseID)
	if err != nil {
		if progress != nil {
			progress(ProgressEvent{Type: ProgressSectionFailed, Error: err})
		}
		return
	}

	for _, item := range items {
		switch item.Type {
		case vast.ModuleItemExternalURL:
			if item.ExternalURL == "" {
				continue
			}
			if youtube.MatchesWatchURL(item.ExternalURL) {
				inv.Add(vast.CategoryYouTube, item.ExternalURL, item.Location)
			}
			if vast.IsLibraryMediaURL(item.ExternalURL) {
				ref := inv.Add(vast.CategoryLibraryMedia, item.ExternalURL, item.Location)
				ref.Status = vast.StatusManualCheck
			}
		case vast.ModuleItemFile:
			if item.ContentID == "" {
				continue
			}
			file, err := s.Files.FindFileByID(ctx, item.ContentID)
			if err != nil || file == nil {
				continue
			}
			inv.AddFile(file, item.Location)
		}
	}
}
