package config

import "errors"

// Configuration validation errors.
// These are returned by Config.Validate() and name exactly what is wrong.
//
// Design decision: We use package-level sentinel errors rather than creating
// new error instances in Validate(). This allows callers to use errors.Is()
// for programmatic handling while still providing human-readable messages.
var (
	// ErrNoSeed is returned when no seed URL is provided.
	ErrNoSeed = errors.New("no seed URL specified: provide one or more URLs as arguments")

	// ErrInvalidMode is returned for a mode other than gentle, standard,
	// or aggressive.
	ErrInvalidMode = errors.New("invalid mode: must be gentle, standard, or aggressive")

	// ErrInvalidEngine is returned for a browser engine other than
	// chromium or firefox.
	ErrInvalidEngine = errors.New("invalid browser engine: must be chromium or firefox")

	// ErrInvalidTimeout is returned when a timeout is negative.
	// Use 0 to fall back to the default.
	ErrInvalidTimeout = errors.New("invalid timeout: must be non-negative")

	// ErrInvalidConcurrency is returned when the seed concurrency is not
	// positive. Zero concurrency would mean no crawling at all.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrConflictingReportFormats is returned when more than one of
	// --json, --markdown, and --csv is specified.
	ErrConflictingReportFormats = errors.New("conflicting report formats: choose at most one of --json, --markdown, --csv")
)
