package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/nao1215/backlinkreport/internal/model"
	"golang.org/x/text/cases"
)

// Normalized column names.
const (
	ColumnTargetURL        = "target url"
	ColumnReferringPageURL = "referring page url"
	ColumnLastSeen         = "last seen"
)

// requiredColumns must be present in every input header.
var requiredColumns = []string{ColumnTargetURL, ColumnReferringPageURL}

// SniffDelimiter picks the field separator from the header line:
// comma if present, otherwise semicolon, otherwise tab.
func SniffDelimiter(firstLine string) rune {
	switch {
	case strings.ContainsRune(firstLine, ','):
		return ','
	case strings.ContainsRune(firstLine, ';'):
		return ';'
	default:
		return '\t'
	}
}

// NormalizeColumn trims surrounding whitespace (and a stray byte order mark)
// and case-folds a header name.
func NormalizeColumn(name string) string {
	trimmed := strings.TrimFunc(name, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\ufeff'
	})
	return cases.Fold().String(trimmed)
}

// Parse converts decoded CSV text into a Table.
// It returns ErrNoHeader for empty input and a *MissingColumnsError when a
// required column is absent. A header without data rows is not an error here.
func Parse(text string) (*model.Table, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrNoHeader
	}
	firstLine, _, _ := strings.Cut(text, "\n")
	delim := SniffDelimiter(firstLine)

	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	cols := make([]string, len(header))
	index := make(map[string]int, len(header))
	for i, h := range header {
		cols[i] = NormalizeColumn(h)
		if _, dup := index[cols[i]]; !dup {
			index[cols[i]] = i
		}
	}

	var missing []string
	for _, c := range requiredColumns {
		if _, ok := index[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Missing: missing}
	}

	lastSeenIdx, hasLastSeen := index[ColumnLastSeen]

	table := &model.Table{
		Header:    cols,
		Delimiter: delim,
		Rows:      make([]model.InputRow, 0),
	}

	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Broken quoting: drop the line and keep going.
			table.SkippedLines++
			continue
		}
		if len(rec) > len(cols) {
			table.SkippedLines++
			continue
		}
		line, _ := r.FieldPos(0)

		row := model.InputRow{
			Line:             line,
			TargetURL:        field(rec, index[ColumnTargetURL]),
			ReferringPageURL: field(rec, index[ColumnReferringPageURL]),
		}
		if hasLastSeen {
			row.LastSeen = strings.TrimSpace(field(rec, lastSeenIdx))
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// field returns rec[i], or "" for short records.
func field(rec []string, i int) string {
	if i < len(rec) {
		return rec[i]
	}
	return ""
}

// Read decodes r with the given encoding and parses it.
func Read(r io.Reader, enc Encoding) (*model.Table, error) {
	text, err := Decode(r, enc)
	if err != nil {
		return nil, err
	}
	return Parse(text)
}

// ReadFile opens path and parses it with the given encoding.
func ReadFile(path string, enc Encoding) (*model.Table, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided input path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	return Read(f, enc)
}
