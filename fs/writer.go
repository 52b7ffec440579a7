// Package fs provides file-based report output.
package fs

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/courseaudit/vast"
)

// File names written into the report directory.
const (
	MediaFile         = "media.csv"
	AccessibilityFile = "accessibility.csv"
)

// Ensure Writer implements vast.ReportWriter at compile time.
var _ vast.ReportWriter = (*Writer)(nil)

// Writer writes the media table and the accessibility table as CSV files
// to a directory. A file whose content is unchanged since the previous
// run is left untouched.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteReport writes both report tables, creating the directory if
// needed.
func (w *Writer) WriteReport(ctx context.Context, report *vast.Report) error {
	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return err
	}

	media, err := renderMedia(report)
	if err != nil {
		return err
	}
	if err := w.writeFile(MediaFile, media); err != nil {
		return err
	}

	findings, err := renderFindings(report)
	if err != nil {
		return err
	}
	return w.writeFile(AccessibilityFile, findings)
}

// renderMedia renders the media table. Every row, the total row
// included, has the same width as the header.
func renderMedia(report *vast.Report) ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	if err := cw.Write(report.Columns); err != nil {
		return nil, err
	}
	for _, row := range report.Rows {
		if err := cw.Write(row.Fields(report.HasLinkedFiles)); err != nil {
			return nil, err
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderFindings(report *vast.Report) ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	if err := cw.Write(report.FindingColumns); err != nil {
		return nil, err
	}
	for _, f := range report.Findings {
		record := []string{f.Test, f.Status, strconv.Itoa(f.Count), f.Location, f.Details}
		if err := cw.Write(record); err != nil {
			return nil, err
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeFile writes content unless the existing file already hashes to the
// same value.
func (w *Writer) writeFile(name string, content []byte) error {
	path := filepath.Join(w.baseDir, name)

	if existing, err := os.ReadFile(path); err == nil {
		if xxhash.Sum64(existing) == xxhash.Sum64(content) {
			return nil
		}
	}

	return os.WriteFile(path, content, 0644)
}
