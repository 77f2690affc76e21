package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/fieldworkhq/leadspider/internal/config"
)

// navAttempts is the navigation retry ceiling. The second attempt is the
// last; its timeout is reported as a page-level failure.
const navAttempts = 2

// blockedResourceTypes are resource classes a contact crawl never needs.
// Blocking them is a latency optimization, not a correctness requirement.
var blockedResourceTypes = map[proto.NetworkResourceType]bool{
	proto.NetworkResourceTypeImage: true,
	proto.NetworkResourceTypeFont:  true,
	proto.NetworkResourceTypeMedia: true,
}

// blockedHosts are analytics and tracking hosts whose requests only add
// latency and noise.
var blockedHosts = []string{
	"google-analytics.com",
	"googletagmanager.com",
	"doubleclick.net",
	"facebook.net",
	"hotjar.com",
	"segment.io",
	"mixpanel.com",
}

// Result is the content of one successfully fetched page.
type Result struct {
	// HTML is the page markup. For the browser tier this is the rendered
	// DOM after script execution, not the raw response body.
	HTML string
}

// Fetcher retrieves one page. Implementations report every failure as an
// error; the crawl loop decides what is fatal.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Result, error)
}

// BrowserFetcher is the full-traversal tier: it renders pages in an
// isolated browsing context on the shared engine, with retry, resource
// blocking, and a bounded idle wait.
type BrowserFetcher struct {
	engine     *Engine
	browser    *rod.Browser
	navTimeout time.Duration
	idleWait   time.Duration
	logger     *slog.Logger
}

// NewBrowserFetcher acquires a browsing context from the engine. This is
// where a missing or broken browser binary surfaces; that error is the
// only fatal one in the fetch layer. Callers must Close the fetcher when
// the job ends.
func NewBrowserFetcher(engine *Engine, budget config.Budget, logger *slog.Logger) (*BrowserFetcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	browser, err := engine.Acquire()
	if err != nil {
		return nil, err
	}

	return &BrowserFetcher{
		engine:     engine,
		browser:    browser,
		navTimeout: budget.NavigationTimeout,
		idleWait:   config.DefaultIdleWait,
		logger:     logger,
	}, nil
}

// Close disposes the job's browsing context and releases its
// acquisition back to the engine.
func (f *BrowserFetcher) Close() {
	f.engine.Release(f.browser)
	f.browser = nil
}

// Fetch navigates to url and returns the rendered DOM. Transient
// navigation failures are retried up to the attempt ceiling with linear
// backoff (1s times the attempt number); the last attempt's failure is
// returned wrapped in ErrNavigation.
func (f *BrowserFetcher) Fetch(ctx context.Context, url string) (*Result, error) {
	var lastErr error

	for attempt := 1; attempt <= navAttempts; attempt++ {
		if attempt > 1 {
			backoff := time.Duration(attempt-1) * time.Second
			f.logger.Debug("retrying navigation", "url", url, "attempt", attempt, "backoff", backoff)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %s: %v", ErrNavigation, url, ctx.Err())
			}
		}

		html, err := f.navigate(ctx, url)
		if err == nil {
			return &Result{HTML: html}, nil
		}
		lastErr = err
	}

	return nil, fmt.Errorf("%w: %s: %v", ErrNavigation, url, lastErr)
}

// navigate performs one navigation attempt in a fresh page.
func (f *BrowserFetcher) navigate(ctx context.Context, url string) (string, error) {
	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer func() {
		if err := page.Close(); err != nil {
			f.logger.Debug("closing page", "url", url, "error", err)
		}
	}()

	router := page.HijackRequests()
	err = router.Add("*", "", func(h *rod.Hijack) {
		if shouldBlock(h.Request) {
			h.Response.Fail(proto.NetworkErrorReasonBlockedByClient)
			return
		}
		h.ContinueRequest(&proto.FetchContinueRequest{})
	})
	if err != nil {
		return "", err
	}
	go router.Run()
	defer func() {
		if err := router.Stop(); err != nil {
			f.logger.Debug("stopping hijack router", "error", err)
		}
	}()

	// The timeout-bound handle is separate so the deferred Close above
	// still works after the navigation deadline passes.
	timed := page.Context(ctx).Timeout(f.navTimeout)
	if err := timed.Navigate(url); err != nil {
		return "", err
	}
	if err := timed.WaitLoad(); err != nil {
		return "", err
	}

	// Soft wait for network quiescence. Pages that never settle are
	// harvested as-is; this wait is never a failure.
	if err := page.WaitIdle(f.idleWait); err != nil {
		f.logger.Debug("page did not reach idle, proceeding", "url", url)
	}

	return page.HTML()
}

// shouldBlock reports whether a request is for a blocked resource class or
// a tracking host.
func shouldBlock(req *rod.HijackRequest) bool {
	if blockedResourceTypes[req.Type()] {
		return true
	}

	host := req.URL().Hostname()
	for _, blocked := range blockedHosts {
		if host == blocked || strings.HasSuffix(host, "."+blocked) {
			return true
		}
	}
	return false
}
