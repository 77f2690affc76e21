// Package report renders a crawl batch for human or machine consumption.
//
// Four formats exist: a plain-text summary for terminals, JSON for tool
// integration, Markdown for sharing, and CSV for spreadsheet import. All
// implement the same Writer interface, so the CLI picks a format once and
// the rest of the code does not care.
package report
