package scan

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/courseaudit/vast"
	"github.com/google/uuid"
)

// ConsolidateTime folds hour, minute and second components into a display
// duration and the minute count contributed to the course total. Seconds
// round the display up a full minute and add one to the total. All-blank
// or unparseable input yields an empty display and a zero contribution.
func ConsolidateTime(hour, minute, second string) (string, int) {
	if hour == "" && minute == "" && second == "" {
		return "", 0
	}

	h, err := parseComponent(hour)
	if err != nil {
		return "", 0
	}
	m, err := parseComponent(minute)
	if err != nil {
		return "", 0
	}
	s, err := parseComponent(second)
	if err != nil {
		return "", 0
	}

	total := h*60 + m
	if s > 0 {
		total++
		m++
		if m >= 60 {
			m -= 60
			h++
		}
	}

	return fmt.Sprintf("%02d:%02d", h, m), total
}

func parseComponent(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

// MinutesToDuration renders a minute total as "HH:MM". Non-positive
// totals render as "00:00".
func MinutesToDuration(total int) string {
	if total <= 0 {
		return "00:00"
	}
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// BuildReport assembles the final report from the inventory, the video
// resolutions (position-indexed against the inventory's video bucket) and
// the accessibility findings. Row order is videos, then the shared media
// bucket, then library media, then linked files, then the total row.
func BuildReport(course *vast.Course, inv *vast.Inventory, resolutions []vast.Resolution, findings []vast.Finding) *vast.Report {
	hasLinkedFiles := inv.HasLinkedFiles()

	report := &vast.Report{
		ID:             uuid.NewString(),
		CourseName:     course.Name,
		Columns:        vast.MediaColumns(hasLinkedFiles),
		HasLinkedFiles: hasLinkedFiles,
		FindingColumns: vast.AccessibilityColumns(),
		Findings:       findings,
	}

	totalMinutes := 0
	for i, ref := range inv.YouTube {
		var res vast.Resolution
		if i < len(resolutions) {
			res = resolutions[i]
		}
		display, minutes := ConsolidateTime(res.Duration.Hours, res.Duration.Minutes, res.Duration.Seconds)
		totalMinutes += minutes
		report.Rows = append(report.Rows, vast.ReportRow{
			Media:         ref.SourceURL,
			CaptionStatus: res.Status,
			Duration:      display,
			Location:      joinLocations(ref),
		})
	}

	for _, ref := range inv.Media {
		report.Rows = append(report.Rows, vast.ReportRow{
			Media:         ref.SourceURL,
			CaptionStatus: ref.Status,
			Location:      joinLocations(ref),
		})
	}

	for _, ref := range inv.Library {
		report.Rows = append(report.Rows, vast.ReportRow{
			Media:         ref.SourceURL,
			CaptionStatus: ref.Status,
			Location:      joinLocations(ref),
		})
	}

	for _, ref := range inv.Linked {
		report.Rows = append(report.Rows, vast.ReportRow{
			Media:         ref.SourceURL,
			CaptionStatus: ref.Status,
			Location:      joinLocations(ref),
			FileLocation:  ref.FileURL,
		})
	}

	report.TotalMinutes = totalMinutes
	report.TotalDuration = MinutesToDuration(totalMinutes)
	report.Rows = append(report.Rows, vast.ReportRow{
		Media:    "Total Duration",
		Duration: report.TotalDuration,
	})

	return report
}

func joinLocations(ref *vast.MediaReference) string {
	return strings.Join(ref.Locations, "; ")
}
