package report

import (
	"fmt"
	"io"

	"github.com/nao1215/backlinkreport/internal/model"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet the report is written to.
const SheetName = "Sheet1"

// maxSheetHyperlinks is the number of hyperlinks Excel allows per worksheet.
// Affiliate cells past the limit are written as plain labels.
const maxSheetHyperlinks = 65530

// XLSXWriter outputs the report as an Excel workbook.
// Affiliate cells show the username and link to the affiliate summary page.
type XLSXWriter struct {
	baseWriter

	// columnWidth is applied to every report column.
	columnWidth float64
}

// XLSXWriterOption configures an XLSXWriter.
type XLSXWriterOption func(*XLSXWriter)

// WithColumnWidth sets the width of the report columns.
func WithColumnWidth(width float64) XLSXWriterOption {
	return func(w *XLSXWriter) {
		w.columnWidth = width
	}
}

// NewXLSXWriter creates an XLSXWriter that outputs to the given writer.
func NewXLSXWriter(output io.Writer, opts ...XLSXWriterOption) *XLSXWriter {
	w := &XLSXWriter{
		baseWriter:  newBaseWriter(output),
		columnWidth: 40,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write renders the workbook and writes it to the output.
func (w *XLSXWriter) Write(rows []model.ReportRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := w.writeHeader(f); err != nil {
		return err
	}

	linkStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "1265BE", Underline: "single"},
	})
	if err != nil {
		return fmt.Errorf("failed to create hyperlink style: %w", err)
	}

	links := 0
	for i, row := range rows {
		r := i + 2 // row 1 is the header
		if err := w.writeRow(f, r, row); err != nil {
			return err
		}
		if row.Affiliate.IsZero() || row.Affiliate.URL == "" || links >= maxSheetHyperlinks {
			continue
		}

		cell, err := excelize.CoordinatesToCellName(1, r)
		if err != nil {
			return err
		}
		if err := f.SetCellHyperLink(SheetName, cell, row.Affiliate.URL, "External"); err != nil {
			return fmt.Errorf("failed to set hyperlink at %s: %w", cell, err)
		}
		if err := f.SetCellStyle(SheetName, cell, cell, linkStyle); err != nil {
			return fmt.Errorf("failed to style hyperlink at %s: %w", cell, err)
		}
		links++
	}

	if err := f.Write(w.output); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// writeHeader writes the bold header row and sets the column widths.
func (w *XLSXWriter) writeHeader(f *excelize.File) error {
	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(Columns), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, "A1", last, bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	lastCol, err := excelize.ColumnNumberToName(len(Columns))
	if err != nil {
		return err
	}
	return f.SetColWidth(SheetName, "A", lastCol, w.columnWidth)
}

// writeRow writes the text cells of one report row.
// Values are stored as strings, so a cell starting with '=' is never
// evaluated as a formula.
func (w *XLSXWriter) writeRow(f *excelize.File, r int, row model.ReportRow) error {
	for c, v := range cells(row) {
		if v == "" {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(c+1, r)
		if err != nil {
			return err
		}
		if err := f.SetCellStr(SheetName, cell, v); err != nil {
			return fmt.Errorf("failed to write cell %s: %w", cell, err)
		}
	}
	return nil
}
