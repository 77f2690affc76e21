// Package config holds all configuration for leadspider.
//
// Configuration flows in one direction: CLI flags (and an optional YAML
// file for link-keyword tuning) populate a Config, Validate() checks it
// once before any crawling begins, and the resolved values are passed
// through the application by dependency injection rather than global state.
//
// Design decision: The crawl intensity mode (gentle/standard/aggressive)
// is resolved into an explicit Budget struct exactly once, at job creation.
// Nothing re-reads the mode mid-job, so a job's limits cannot drift while
// it runs.
package config
