// Package fetch retrieves page content for extraction.
//
// Two tiers exist. The browser tier drives a shared headless browser
// through go-rod: JavaScript executes, image/font/media requests and known
// tracker hosts are blocked for speed, and navigation is retried with
// linear backoff before a page is given up on. The static tier is a plain
// HTTP GET with charset decoding, used by the gentle mode where a single
// page is fetched as fast as possible with no script execution.
//
// The browser process itself is owned by an Engine, a reference-counted
// handle shared across concurrent crawl jobs. Each job gets its own
// isolated incognito context; the underlying process is launched lazily on
// first use and closed when the last job releases it.
package fetch
