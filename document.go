package vast

import "context"

// Course identifies the course being audited.
type Course struct {
	ID   string
	Name string
}

// DocumentKind names a course content section that yields HTML documents.
type DocumentKind string

// Course content sections scanned by the auditor, in traversal order.
const (
	KindPage         DocumentKind = "pages"
	KindAssignment   DocumentKind = "assignments"
	KindDiscussion   DocumentKind = "discussions"
	KindSyllabus     DocumentKind = "syllabus"
	KindAnnouncement DocumentKind = "announcements"
)

// Document is one HTML fragment from course content together with the
// user-facing location it was found at.
type Document struct {
	Kind     DocumentKind
	Body     string
	Location string
}

// ModuleItemType distinguishes the module item shapes the auditor cares
// about. Other item types carry no scannable media.
type ModuleItemType string

// Module item types.
const (
	ModuleItemExternalURL ModuleItemType = "ExternalUrl"
	ModuleItemFile        ModuleItemType = "File"
)

// ModuleItem is one entry of a course module. Module items are structural
// rather than HTML: external URLs are classified directly and file items
// resolve to linked-file records.
type ModuleItem struct {
	Type        ModuleItemType
	ExternalURL string
	ContentID   string
	Location    string
}

// File is an LMS-hosted file record.
type File struct {
	URL         string
	DisplayName string
	MimeClass   string
}

// CourseService provides course content from the LMS.
type CourseService interface {
	// FindCourseByID retrieves course metadata.
	// Returns ENOTFOUND if the course does not exist or is inaccessible.
	FindCourseByID(ctx context.Context, courseID string) (*Course, error)

	// Documents yields the HTML documents of one content section.
	Documents(ctx context.Context, courseID string, kind DocumentKind) ([]*Document, error)

	// ModuleItems yields every item of every module in the course.
	ModuleItems(ctx context.Context, courseID string) ([]*ModuleItem, error)
}

// FileService resolves LMS file records by ID.
type FileService interface {
	// FindFileByID retrieves a file record.
	// Returns ENOTFOUND if the file does not exist.
	FindFileByID(ctx context.Context, fileID string) (*File, error)
}
