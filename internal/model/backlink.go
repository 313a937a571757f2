package model

// TokenLength is the exact length of an affiliate token.
const TokenLength = 32

// DateUnavailable is written to the Date column when the source row has no
// last-seen value.
const DateUnavailable = "N/A"

// Token is a 32-character affiliate identifier embedded in a tracking URL.
type Token string

// String returns the token as a plain string.
func (t Token) String() string {
	return string(t)
}

// InputRow is one data line of the exported backlink CSV.
// Rows are read-only once parsed and keep the order of the source file.
type InputRow struct {
	// Line is the 1-based line number in the decoded source text.
	Line int `json:"line"`

	// TargetURL is the "Target URL" column, the tracking link that may
	// carry an affiliate token.
	TargetURL string `json:"target_url"`

	// ReferringPageURL is the "Referring Page URL" column.
	ReferringPageURL string `json:"referring_page_url"`

	// LastSeen is the optional "Last Seen" column.
	// Empty when the column is missing or the cell is blank.
	LastSeen string `json:"last_seen,omitempty"`
}

// Table is the parsed form of an input file.
type Table struct {
	// Header holds the normalized (trimmed, case-folded) column names.
	Header []string `json:"header"`

	// Delimiter is the field separator sniffed from the header line.
	Delimiter rune `json:"delimiter"`

	// Rows are the data rows in file order.
	Rows []InputRow `json:"rows"`

	// SkippedLines counts malformed lines that were dropped while parsing.
	SkippedLines int `json:"skipped_lines"`
}

// DelimiterName returns a printable name for the sniffed delimiter.
func (t *Table) DelimiterName() string {
	switch t.Delimiter {
	case ',':
		return "comma"
	case ';':
		return "semicolon"
	case '\t':
		return "tab"
	default:
		return string(t.Delimiter)
	}
}

// EnrichmentRecord is the metadata the affiliate feed returns for one token.
// Every field may be empty; the zero value is the default record used for
// tokens the feed did not return.
type EnrichmentRecord struct {
	ObjectID          string `json:"object_id,omitempty"`
	Username          string `json:"username"`
	AccessURL         string `json:"access_url"`
	ObjectDescription string `json:"object_description"`
}

// Lookup maps tokens to their enrichment records.
// It is built once per run and not modified afterwards.
type Lookup map[Token]EnrichmentRecord

// Get returns the record for the token. Missing tokens yield the zero
// record and false.
func (l Lookup) Get(t Token) (EnrichmentRecord, bool) {
	rec, ok := l[t]
	return rec, ok
}

// Hyperlink is a display label with a clickable target.
type Hyperlink struct {
	URL   string `json:"url,omitempty"`
	Label string `json:"label,omitempty"`
}

// IsZero reports whether the hyperlink carries no label.
// A link without a label renders as an empty cell.
func (h Hyperlink) IsZero() bool {
	return h.Label == ""
}

// ReportRow is one line of the generated report.
type ReportRow struct {
	Affiliate    Hyperlink `json:"affiliate"`
	Website      string    `json:"website"`
	LandingPage  string    `json:"landing_page"`
	TrackingLink string    `json:"tracking_link"`
	Date         string    `json:"date"`
}
