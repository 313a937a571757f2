package model

import (
	"fmt"
	"strings"
)

// Format is the output file format of a report.
type Format string

const (
	// FormatXLSX writes an Excel workbook with clickable affiliate links.
	FormatXLSX Format = "xlsx"

	// FormatCSV writes comma separated text; links degrade to their label.
	FormatCSV Format = "csv"

	// FormatMarkdown writes a markdown table with inline links.
	FormatMarkdown Format = "markdown"

	// FormatJSON writes an array of report rows.
	FormatJSON Format = "json"
)

// Formats lists the supported formats in display order.
var Formats = []Format{FormatXLSX, FormatCSV, FormatMarkdown, FormatJSON}

// ParseFormat converts a user supplied name into a Format.
// Matching is case-insensitive and "md" is accepted for markdown.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "xlsx", "excel":
		return FormatXLSX, nil
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported report format %q (supported: xlsx, csv, markdown, json)", s)
	}
}

// Extension returns the file extension for the format, without the dot.
func (f Format) Extension() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatMarkdown:
		return "md"
	case FormatJSON:
		return "json"
	default:
		return "xlsx"
	}
}

// String returns the format name.
func (f Format) String() string {
	return string(f)
}
