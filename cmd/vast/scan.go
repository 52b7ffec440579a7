package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/courseaudit/vast"
	"github.com/courseaudit/vast/canvas"
	"github.com/courseaudit/vast/scan"
	"github.com/samber/lo"
)

// sectionLabels maps content sections to their console names.
var sectionLabels = map[vast.DocumentKind]string{
	vast.KindPage:         "Pages",
	vast.KindAssignment:   "Assignments",
	vast.KindDiscussion:   "Discussions",
	vast.KindSyllabus:     "Syllabus",
	vast.KindAnnouncement: "Announcements",
}

// Run executes the scan command.
func (c *ScanCmd) Run(deps *Dependencies) error {
	courseID := canvas.ParseCourseID(c.Course)
	if courseID == "" {
		return fmt.Errorf("could not determine a course ID from %q", c.Course)
	}

	if c.Concurrency > 0 {
		deps.Scanner.Concurrency = c.Concurrency
	}

	progress := func(event scan.ProgressEvent) {
		switch event.Type {
		case scan.ProgressSection:
			fmt.Fprintf(deps.Stdout, "Scanning %s...\n", sectionLabels[event.Section])
		case scan.ProgressModules:
			fmt.Fprintln(deps.Stdout, "Scanning Modules...")
		case scan.ProgressSectionFailed:
			fmt.Fprintf(deps.Stderr, "  skip section: %v\n", event.Error)
		case scan.ProgressDocumentFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.Location, event.Error)
		case scan.ProgressResolving:
			fmt.Fprintf(deps.Stdout, "Resolving %d media references...\n", event.Total)
		}
	}

	report, err := deps.Scanner.ScanCourse(deps.Ctx, courseID, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", vast.ErrorMessage(err))
		return err
	}

	if err := deps.Writer.WriteReport(deps.Ctx, report); err != nil {
		fmt.Fprintf(deps.Stderr, "error writing report: %v\n", err)
		return err
	}

	printSummary(deps.Stdout, report, c.Out)
	return nil
}

// previewRows caps how many media rows the console summary echoes.
const previewRows = 10

func printSummary(w io.Writer, report *vast.Report, outDir string) {
	fmt.Fprintf(w, "\nCourse: %s (run %s)\n", report.CourseName, report.ID)

	// The last row is the synthetic total.
	rows := report.Rows[:len(report.Rows)-1]
	fmt.Fprintf(w, "Media references: %d\n", len(rows))
	for i, row := range rows {
		if i == previewRows {
			fmt.Fprintf(w, "  ... and %d more\n", len(rows)-previewRows)
			break
		}
		fmt.Fprintf(w, "  %s  [%s]\n", row.Media, row.CaptionStatus)
	}
	fmt.Fprintf(w, "Total duration: %s\n", report.TotalDuration)

	tallies := lo.CountValuesBy(report.Findings, func(f vast.Finding) string { return f.Status })
	fmt.Fprintf(w, "Accessibility: %d passed, %d failed, %d errors\n", tallies[vast.FindingPass], tallies[vast.FindingFail], tallies[vast.FindingError])

	failed := lo.Filter(report.Findings, func(f vast.Finding, _ int) bool { return f.Status == vast.FindingFail })
	if len(failed) > 0 {
		counts := lo.CountValuesBy(failed, func(f vast.Finding) string { return f.Test })
		tests := lo.Keys(counts)
		sort.Slice(tests, func(i, j int) bool {
			if counts[tests[i]] != counts[tests[j]] {
				return counts[tests[i]] > counts[tests[j]]
			}
			return tests[i] < tests[j]
		})
		fmt.Fprintln(w, "Top failing checks:")
		for i, test := range tests {
			if i == 5 {
				break
			}
			fmt.Fprintf(w, "  %s (%d)\n", test, counts[test])
		}
	}

	fmt.Fprintf(w, "Report written to %s\n", outDir)
}
