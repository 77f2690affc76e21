// Package export writes stored crawl batches to spreadsheet files.
//
// Export differs from report: reports render a batch that was just
// crawled, while export reads a previously saved batch back out of the
// database and produces a file suited for hand-off (xlsx workbooks for
// CRM import, csv for everything else).
package export
