package vast

import "context"

// ReportRow is one flattened line of the media table.
type ReportRow struct {
	Media         string
	CaptionStatus string
	Duration      string // "HH:MM" or empty when unresolved
	Location      string // document locations joined with "; "
	FileLocation  string // linked files only
}

// Fields returns the row's cells. The file-location column is included
// only when the run-global linked-file decision says so, keeping every
// row (including the total row) at the same width.
func (r ReportRow) Fields(withFileLocation bool) []string {
	if withFileLocation {
		return []string{r.Media, r.CaptionStatus, r.Duration, r.Location, r.FileLocation}
	}
	return []string{r.Media, r.CaptionStatus, r.Duration, r.Location}
}

// Finding result statuses. ERROR marks a document whose markup could
// not be checked at all.
const (
	FindingPass  = "PASS"
	FindingFail  = "FAIL"
	FindingError = "ERROR"
)

// Finding is the outcome of one accessibility rule against one document.
type Finding struct {
	Test     string
	Status   string
	Count    int
	Location string
	Details  string
}

// Report is the consolidated output of one audit run.
type Report struct {
	// ID uniquely identifies the run.
	ID string

	CourseName string

	// Columns are the media table headers; their width reflects
	// HasLinkedFiles.
	Columns []string

	// Rows are the media table rows in emission order, with the synthetic
	// "Total Duration" row appended last.
	Rows []ReportRow

	// TotalDuration is the grand total of resolved video durations,
	// rendered as "HH:MM".
	TotalDuration string

	// TotalMinutes is the grand total in whole minutes.
	TotalMinutes int

	// HasLinkedFiles reports whether any linked-file reference exists in
	// the run; it decides the table width once, globally.
	HasLinkedFiles bool

	// FindingColumns are the accessibility table headers.
	FindingColumns []string

	// Findings are the accessibility results in document order.
	Findings []Finding
}

// MediaColumns returns the media table headers for the given column shape.
func MediaColumns(hasLinkedFiles bool) []string {
	cols := []string{"Media", "Caption Status", "Duration (HH:MM)", "Location"}
	if hasLinkedFiles {
		cols = append(cols, "File Location")
	}
	return cols
}

// AccessibilityColumns returns the accessibility table headers.
func AccessibilityColumns() []string {
	return []string{"Test Name", "Status", "Issues Found", "Location", "Details"}
}

// AccessibilityChecker runs the fixed battery of accessibility rules
// against one HTML document. Rules are independent pure predicates with
// no cross-document state.
type AccessibilityChecker interface {
	Check(html, location string) ([]Finding, error)
}

// ReportWriter publishes a completed report.
type ReportWriter interface {
	WriteReport(ctx context.Context, report *Report) error
}
