// Package main provides the entry point for the backlinkreport CLI.
//
// backlinkreport turns a backlink export (the CSV a backlink checker
// produces for a site) into an affiliate report. It pulls the affiliate
// token out of every tracking link, asks the affiliate feed who owns each
// token, and writes one spreadsheet row per backlink.
//
// Usage:
//
//	backlinkreport load <file>
//	backlinkreport generate <file>
//	backlinkreport clear
//
// See --help for all available options.
package main

// main is the entry point for backlinkreport.
func main() {
	Execute()
}
