// Package database provides SQLite-backed persistence of crawl batches.
//
// Every finished crawl becomes one batch row plus one contact row per
// deduplicated record, keyed by the batch's unique ID. The store exists so
// the history and export commands can work with past runs; the crawl
// itself never reads from it.
package database
