package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/backlinkreport/internal/model"
)

// JSONWriter outputs the report as a JSON array for tool integration.
//
// Design decision: standard encoding/json; the rows are flat records and
// need nothing beyond struct tags.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	indent bool

	indentPrefix string
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint is WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// jsonRow is the serialized form of a report row. The affiliate hyperlink
// is flattened into two fields.
type jsonRow struct {
	Affiliate    string `json:"affiliate"`
	AffiliateURL string `json:"affiliate_url"`
	Website      string `json:"website"`
	LandingPage  string `json:"landing_page"`
	TrackingLink string `json:"tracking_link"`
	Date         string `json:"date"`
}

// Write outputs the rows as a JSON array followed by a newline.
func (w *JSONWriter) Write(rows []model.ReportRow) error {
	out := make([]jsonRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, jsonRow{
			Affiliate:    r.Affiliate.Label,
			AffiliateURL: r.Affiliate.URL,
			Website:      r.Website,
			LandingPage:  r.LandingPage,
			TrackingLink: r.TrackingLink,
			Date:         r.Date,
		})
	}

	var (
		data []byte
		err  error
	)
	if w.indent {
		data, err = json.MarshalIndent(out, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(out)
	}
	if err != nil {
		return err
	}

	data = append(data, '\n')
	_, err = w.output.Write(data)
	return err
}
