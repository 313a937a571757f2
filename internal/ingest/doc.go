// Package ingest reads exported backlink CSV files into a model.Table.
//
// Backlink exports are UTF-16 text with a header row. The field separator
// is not fixed: it is sniffed from the header line (comma, then semicolon,
// then tab). Parsing is lenient:
//   - undecodable bytes become U+FFFD instead of failing the read
//   - lines with more fields than the header, or broken quoting, are skipped
//     and counted in Table.SkippedLines
//   - lines with fewer fields are padded with empty values
//
// Column names are matched after trimming and case folding. "target url" and
// "referring page url" are required; "last seen" is optional.
package ingest
