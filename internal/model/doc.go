// Package model defines the core data structures used throughout leadspider.
//
// This package contains the following main types:
//   - Contact: A contact record extracted from a crawled page
//   - Batch: The result of one crawl job, keyed by a unique batch ID
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (extract, crawl, database, report) need to
// use these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage.
package model
