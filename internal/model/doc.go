// Package model defines the core data structures shared by the backlink
// report packages.
//
// This package contains the following main types:
//   - InputRow: one data line of an exported backlink CSV
//   - Token: the affiliate identifier embedded in a tracking URL
//   - EnrichmentRecord and Lookup: per-token metadata from the affiliate feed
//   - ReportRow: one line of the generated spreadsheet
//   - RunContext, Run and Result: the inputs, working state and outcome of a
//     single report generation
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. The ingest, feed, report and pipeline packages all need these
// types, so centralizing them prevents import cycles.
package model
