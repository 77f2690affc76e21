// Package log provides structured logging with automatic redaction of
// credential-shaped values, built on top of the standard slog package.
//
// A crawler's debug output quotes URLs, headers, and page fragments from
// sites it does not control. Those strings sometimes carry session cookies,
// signed URLs, or API tokens that have no business ending up in a log file
// someone later attaches to a bug report. The RedactHandler masks such
// values while leaving crawl data (URLs, email addresses, names) intact,
// since that data is the whole point of the output.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//
//	logger.Debug("page fetched",
//	    "url", "https://example.org/staff",
//	    "cookie", "session=abc123", // masked
//	)
package log
