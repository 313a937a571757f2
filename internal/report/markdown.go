package report

import (
	"io"
	"strings"

	"github.com/nao1215/backlinkreport/internal/model"
	"github.com/nao1215/markdown"
)

// MarkdownWriter outputs the report as a markdown table.
// Affiliates with an access URL render as inline links.
type MarkdownWriter struct {
	baseWriter

	// title is written as a level one heading above the table when set.
	title string
}

// MarkdownWriterOption configures a MarkdownWriter.
type MarkdownWriterOption func(*MarkdownWriter)

// WithTitle adds a heading above the table.
func WithTitle(title string) MarkdownWriterOption {
	return func(w *MarkdownWriter) {
		w.title = title
	}
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer, opts ...MarkdownWriterOption) *MarkdownWriter {
	w := &MarkdownWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the rows as a markdown table.
func (w *MarkdownWriter) Write(rows []model.ReportRow) error {
	md := markdown.NewMarkdown(w.output)
	if w.title != "" {
		md.H1(w.title)
		md.PlainText("")
	}

	body := make([][]string, 0, len(rows))
	for _, row := range rows {
		body = append(body, []string{
			affiliateCell(row.Affiliate),
			escapeCell(row.Website),
			escapeCell(row.LandingPage),
			escapeCell(row.TrackingLink),
			escapeCell(row.Date),
		})
	}

	md.Table(markdown.TableSet{
		Header: Columns,
		Rows:   body,
	})
	return md.Build()
}

// affiliateCell renders a hyperlink as [label](url), or the bare label
// when there is no URL.
func affiliateCell(h model.Hyperlink) string {
	if h.IsZero() {
		return ""
	}
	if h.URL == "" {
		return escapeCell(h.Label)
	}
	return markdown.Link(escapeCell(h.Label), h.URL)
}

// escapeCell keeps cell text from breaking the table layout.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}
