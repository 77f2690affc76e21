package fetch

import "errors"

// Design decision: package-level sentinel errors so callers can
// distinguish failure classes with errors.Is(). Launch failure is the only
// one a crawl job treats as fatal; everything else costs a single page.
var (
	// ErrBrowserLaunch is returned when the browser process could not be
	// started or connected to.
	ErrBrowserLaunch = errors.New("browser engine failed to launch")

	// ErrNavigation is returned when a page navigation failed after all
	// retry attempts.
	ErrNavigation = errors.New("page navigation failed")

	// ErrHTTPStatus is returned by the static tier for non-success
	// response codes.
	ErrHTTPStatus = errors.New("unexpected HTTP status")

	// ErrEngineClosed is returned when acquiring a context from an
	// engine that has already been closed.
	ErrEngineClosed = errors.New("browser engine already closed")
)
