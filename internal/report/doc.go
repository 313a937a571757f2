// Package report turns input rows and enrichment data into report rows and
// writes them out.
//
// Build joins each input row with the lookup, one report row per input row.
// Writers render the rows in one of the supported formats:
//   - XLSXWriter: Excel workbook with clickable affiliate links (default)
//   - CSVWriter: plain comma separated text, links degrade to their label
//   - MarkdownWriter: markdown table with inline links, also used for the
//     terminal preview
//   - JSONWriter: an array of row objects for tool integration
//
// SummaryWriter prints the plain text summaries shown by the CLI.
//
// Design decision: report data structures live in the model package and
// writers only render them. Adding a format never touches Build.
package report
