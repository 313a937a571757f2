package report

import (
	"encoding/csv"
	"io"

	"github.com/nao1215/backlinkreport/internal/model"
)

// CSVWriter outputs the report as comma separated text.
// Affiliate links cannot be represented, so the cell holds the label only.
type CSVWriter struct {
	baseWriter
}

// NewCSVWriter creates a CSVWriter that outputs to the given writer.
func NewCSVWriter(output io.Writer) *CSVWriter {
	return &CSVWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the header and one record per row.
func (w *CSVWriter) Write(rows []model.ReportRow) error {
	cw := csv.NewWriter(w.output)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(cells(row)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
