package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nao1215/backlinkreport/internal/model"
)

// Writer defines the interface for report output.
//
// Design decision: every writer renders to an io.Writer, including the
// workbook. Files, stdout and test buffers are then handled the same way.
type Writer interface {
	// Write renders the rows, header included.
	Write(rows []model.ReportRow) error
}

// NewWriter returns the writer for format.
func NewWriter(format model.Format, output io.Writer) Writer {
	switch format {
	case model.FormatCSV:
		return NewCSVWriter(output)
	case model.FormatMarkdown:
		return NewMarkdownWriter(output)
	case model.FormatJSON:
		return NewJSONWriter(output, WithPrettyPrint())
	default:
		return NewXLSXWriter(output)
	}
}

// MultiWriter writes the same rows to several Writers, such as the report
// file and a terminal preview.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the rows to every Writer and stops on the first error.
func (m *MultiWriter) Write(rows []model.ReportRow) error {
	for _, w := range m.writers {
		if err := w.Write(rows); err != nil {
			return err
		}
	}
	return nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// cells returns the plain text cells of a row in column order.
// The affiliate cell is the link label.
func cells(row model.ReportRow) []string {
	return []string{
		row.Affiliate.Label,
		row.Website,
		row.LandingPage,
		row.TrackingLink,
		row.Date,
	}
}

// WriteFile writes rows to path in the given format, creating the parent
// directory when needed. An existing file is replaced.
// extra writers (such as a terminal preview) receive the same rows after
// the file has been written.
func WriteFile(path string, format model.Format, rows []model.ReportRow, extra ...Writer) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(path) //nolint:gosec // Output path is derived from user configuration
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close report file: %w", cerr))
		}
	}()

	writers := append([]Writer{NewWriter(format, f)}, extra...)
	if err := NewMultiWriter(writers...).Write(rows); err != nil {
		return fmt.Errorf("failed to write %s report: %w", format, err)
	}
	return nil
}
