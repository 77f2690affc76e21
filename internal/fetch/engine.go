package fetch

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"

	"github.com/fieldworkhq/leadspider/internal/config"
)

// Engine owns the shared headless browser process. It launches lazily on
// the first Acquire and is shared by every job running in the process;
// each job receives its own isolated incognito context. Close tears the
// browser down once no more jobs will run.
//
// Design decision: We reference-count acquisitions instead of exposing the
// *rod.Browser directly:
//  1. Concurrent jobs share one browser process for resource efficiency
//  2. A job releasing its context must not kill the process under another
//  3. Launch failure is remembered, so every job observes the same error
type Engine struct {
	mu       sync.Mutex
	browser  *rod.Browser
	launched bool
	closed   bool
	refs     int
	logger   *slog.Logger
	kind     config.BrowserEngine
}

// NewEngine creates an Engine for the given browser kind. No process is
// started until the first Acquire.
func NewEngine(kind config.BrowserEngine, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{kind: kind, logger: logger}
}

// Acquire returns an isolated browsing context for one crawl job,
// launching the browser process if this is the first acquisition. The
// caller must call Release exactly once when the job is done.
func (e *Engine) Acquire() (*rod.Browser, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil, ErrEngineClosed
	}

	if !e.launched {
		if err := e.launch(); err != nil {
			return nil, err
		}
		e.launched = true
	}

	ctx, err := e.browser.Incognito()
	if err != nil {
		return nil, fmt.Errorf("%w: creating browsing context: %v", ErrBrowserLaunch, err)
	}

	e.refs++
	return ctx, nil
}

// Release closes one job's browsing context and gives back its
// acquisition. The browser process stays up for reuse by later jobs
// until Close is called.
func (e *Engine) Release(ctx *rod.Browser) {
	if ctx != nil {
		// Close on an incognito browser disposes only that browsing
		// context; the shared process is unaffected.
		if err := ctx.Close(); err != nil {
			e.logger.Debug("closing browsing context", "error", err)
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.refs > 0 {
		e.refs--
	}
}

// Close shuts the browser process down. Safe to call when the engine was
// never launched. Callers must ensure no job is still using a context.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.closed = true
	if e.browser == nil {
		return nil
	}

	if e.refs > 0 {
		e.logger.Warn("closing browser engine with active contexts", "refs", e.refs)
	}

	browser := e.browser
	e.browser = nil
	return browser.Close()
}

// launch starts the browser process and connects to it. Called with e.mu
// held.
func (e *Engine) launch() error {
	if e.kind == config.EngineFirefox {
		// The launcher manages Chromium binaries only; honoring a
		// firefox request means falling back.
		e.logger.Warn("firefox engine not available, falling back to chromium")
	}

	l := launcher.New().
		Headless(true).
		Set("ignore-certificate-errors")

	controlURL, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserLaunch, err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("%w: connecting: %v", ErrBrowserLaunch, err)
	}

	e.browser = browser
	e.logger.Debug("browser engine launched", "control_url", controlURL)
	return nil
}
