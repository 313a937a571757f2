package report

import (
	"net/url"
	"strings"
	"time"

	"github.com/nao1215/backlinkreport/internal/model"
	"github.com/nao1215/backlinkreport/internal/token"
	"golang.org/x/net/idna"
)

// Column headers in output order.
const (
	ColumnAffiliate    = "Affiliate"
	ColumnWebsite      = "Website"
	ColumnLandingPage  = "Landing Page"
	ColumnTrackingLink = "Tracking Link"
	ColumnDate         = "Date"
)

// Columns lists the report header in output order.
var Columns = []string{
	ColumnAffiliate,
	ColumnWebsite,
	ColumnLandingPage,
	ColumnTrackingLink,
	ColumnDate,
}

// fileNameSuffix sits between the domain and the date in report file names.
const fileNameSuffix = "_Ahrefs_Report_"

// fileNameDateLayout is DD-MM-YYYY.
const fileNameDateLayout = "02-01-2006"

// unknownHost replaces the domain when the first target URL has no host.
const unknownHost = "unknown"

// Build produces one report row per input row, in input order.
// Rows without a token, or whose token the lookup does not know, get the
// all-empty enrichment record.
func Build(rows []model.InputRow, lookup model.Lookup) []model.ReportRow {
	out := make([]model.ReportRow, 0, len(rows))
	for _, in := range rows {
		var rec model.EnrichmentRecord
		if tok, ok := token.Extract(in.TargetURL); ok {
			rec, _ = lookup.Get(tok)
		}
		out = append(out, newRow(in, rec))
	}
	return out
}

func newRow(in model.InputRow, rec model.EnrichmentRecord) model.ReportRow {
	row := model.ReportRow{
		Website:      in.ReferringPageURL,
		LandingPage:  rec.ObjectDescription,
		TrackingLink: in.TargetURL,
		Date:         in.LastSeen,
	}
	if rec.Username != "" {
		row.Affiliate = model.Hyperlink{URL: rec.AccessURL, Label: rec.Username}
	}
	if row.Date == "" {
		row.Date = model.DateUnavailable
	}
	return row
}

// FileName derives the report file name from the first row's target URL
// and the run date: <domain with dots as underscores>_Ahrefs_Report_<DD-MM-YYYY>.<ext>.
// Internationalized domains are converted to their ASCII form.
func FileName(firstTargetURL string, date time.Time, format model.Format) string {
	return domainLabel(firstTargetURL) + fileNameSuffix + date.Format(fileNameDateLayout) + "." + format.Extension()
}

// domainLabel returns the host of rawURL with '.' replaced by '_'.
func domainLabel(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return unknownHost
	}
	host := u.Hostname()
	if host == "" {
		return unknownHost
	}
	if ascii, err := idna.Punycode.ToASCII(host); err == nil {
		host = ascii
	}
	return strings.ReplaceAll(host, ".", "_")
}

// FirstTargetURL returns the target URL of the first row, or "" for no rows.
func FirstTargetURL(rows []model.InputRow) string {
	if len(rows) == 0 {
		return ""
	}
	return rows[0].TargetURL
}
