package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These are chosen for polite single-site crawling: short enough that a
// crawl finishes in minutes, generous enough that slow shared hosting does
// not produce spurious timeouts.
const (
	// DefaultNavigationTimeout is the per-page navigation timeout.
	// 30 seconds covers slow shared hosting and heavy JavaScript sites
	// without letting a single dead page stall the crawl for long.
	DefaultNavigationTimeout = 30 * time.Second

	// DefaultJobTimeout is the wall-clock budget for one crawl job.
	// The budget is checked once per frontier pop, so a job may overshoot
	// by up to one navigation timeout. That overshoot is an accepted bound.
	DefaultJobTimeout = 5 * time.Minute

	// DefaultIdleWait is the bounded best-effort wait for network
	// quiescence after navigation. If the page never settles we proceed
	// with whatever has rendered; this wait is never a hard failure.
	DefaultIdleWait = 5 * time.Second

	// DefaultMaxBodySize limits the response body read by the static
	// fetcher. 5MB is sufficient for any HTML page while preventing
	// memory exhaustion from unexpected large responses.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// DefaultUserAgent identifies leadspider in HTTP requests.
	// A descriptive User-Agent lets site operators identify crawler
	// traffic in their logs.
	DefaultUserAgent = "leadspider/1.0 (+https://github.com/fieldworkhq/leadspider)"

	// AppName is the application name used for XDG directory paths.
	AppName = "leadspider"
)

// Mode is the crawl intensity requested by the caller.
// Each mode maps to a fixed Budget; the mapping lives in ResolveBudget.
type Mode string

const (
	// ModeGentle fetches only the seed page with JavaScript disabled.
	// Optimized purely for speed; link following is off.
	ModeGentle Mode = "gentle"

	// ModeStandard follows links two levels deep across up to ten pages
	// with full JavaScript rendering. The default.
	ModeStandard Mode = "standard"

	// ModeAggressive follows links three levels deep across up to twenty
	// pages. Use for sites that bury contact pages.
	ModeAggressive Mode = "aggressive"
)

// ParseMode converts a mode string to a Mode, returning ErrInvalidMode
// for anything other than the three known modes.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeGentle, ModeStandard, ModeAggressive:
		return Mode(s), nil
	default:
		return "", ErrInvalidMode
	}
}

// Budget is the set of limits bounding one crawl job.
// It is fixed for the duration of a job: resolved once from the mode (plus
// any explicit overrides) at job creation and never re-read mid-job.
type Budget struct {
	// MaxDepth is the maximum link-follow depth from the seed.
	// Depth 0 means only the seed page.
	MaxDepth int

	// MaxPages is the maximum number of pages to fetch.
	MaxPages int

	// FollowLinks enables discovery and queueing of outbound links.
	FollowLinks bool

	// NavigationTimeout bounds a single page navigation.
	NavigationTimeout time.Duration

	// JobTimeout bounds the whole job's wall-clock time.
	JobTimeout time.Duration
}

// modeBudgets is the mode-to-budget table.
// These are the documented mode defaults; explicit flag overrides are
// applied on top by ResolveBudget.
var modeBudgets = map[Mode]Budget{
	ModeGentle:     {MaxDepth: 0, MaxPages: 1, FollowLinks: false},
	ModeStandard:   {MaxDepth: 2, MaxPages: 10, FollowLinks: true},
	ModeAggressive: {MaxDepth: 3, MaxPages: 20, FollowLinks: true},
}

// ResolveBudget returns the Budget for a mode with the given overrides
// applied. An override of -1 (or 0 for timeouts) means "use the mode
// default". followLinks is a tri-state: nil keeps the mode default.
func ResolveBudget(mode Mode, maxDepth, maxPages int, followLinks *bool, navTimeout, jobTimeout time.Duration) Budget {
	b := modeBudgets[mode]

	if maxDepth >= 0 {
		b.MaxDepth = maxDepth
	}
	if maxPages > 0 {
		b.MaxPages = maxPages
	}
	if followLinks != nil {
		b.FollowLinks = *followLinks
	}

	b.NavigationTimeout = navTimeout
	if b.NavigationTimeout <= 0 {
		b.NavigationTimeout = DefaultNavigationTimeout
	}
	b.JobTimeout = jobTimeout
	if b.JobTimeout <= 0 {
		b.JobTimeout = DefaultJobTimeout
	}

	return b
}

// BrowserEngine selects which browser binary the fetch engine launches.
type BrowserEngine string

const (
	// EngineChromium is the default browser engine.
	EngineChromium BrowserEngine = "chromium"

	// EngineFirefox is accepted for compatibility with callers that
	// request it; the launcher falls back to Chromium when no Firefox
	// binary is available.
	EngineFirefox BrowserEngine = "firefox"
)

// Config holds all configuration options for leadspider.
// It is populated from CLI flags and passed through the application via
// dependency injection rather than global state.
type Config struct {
	// Seeds is the list of seed URLs to crawl. Each seed becomes one
	// independent crawl job with its own frontier and visited set.
	Seeds []string

	// Mode is the requested crawl intensity.
	Mode Mode

	// MaxDepth overrides the mode's depth limit when >= 0.
	MaxDepth int

	// MaxPages overrides the mode's page limit when > 0.
	MaxPages int

	// FollowLinks overrides the mode's link-following default when set.
	FollowLinks *bool

	// NavigationTimeout bounds each page navigation. Zero uses the default.
	NavigationTimeout time.Duration

	// JobTimeout bounds each job's wall clock. Zero uses the default.
	JobTimeout time.Duration

	// Engine selects the browser engine for the full-traversal tier.
	Engine BrowserEngine

	// Concurrency is the number of seeds crawled in parallel. Each job
	// gets its own isolated browsing context on the shared engine.
	Concurrency int

	// KeywordFilePath points to an optional YAML file tuning the link
	// classification keyword families. Empty means built-in defaults.
	KeywordFilePath string

	// Keywords holds the resolved link-classification keyword families.
	Keywords *Keywords

	// Verbose enables debug-level log output.
	Verbose bool

	// JSONReport, MarkdownReport, and CSVReport select the output format.
	// At most one may be set; the default is a human-readable summary.
	JSONReport     bool
	MarkdownReport bool
	CSVReport      bool

	// ReportFile is the output file path for the report. Empty means stdout.
	ReportFile string

	// DBDir is the directory for the SQLite results store. When set,
	// every batch is persisted for later history/export commands.
	DBDir string

	// SaveToDB indicates whether to persist batches.
	SaveToDB bool

	// UserAgent is the User-Agent header sent with static-tier requests.
	UserAgent string

	// MaxBodySize limits static-tier response bodies, in bytes.
	MaxBodySize int64
}

// NewConfig creates a Config with default values.
//
// Design decision: We use a constructor instead of relying on zero values
// because most defaults are non-zero, and the constructor doubles as
// documentation of what those defaults are.
func NewConfig() *Config {
	return &Config{
		Mode:              ModeStandard,
		MaxDepth:          -1,
		MaxPages:          0,
		NavigationTimeout: DefaultNavigationTimeout,
		JobTimeout:        DefaultJobTimeout,
		Engine:            EngineChromium,
		Concurrency:       1,
		UserAgent:         DefaultUserAgent,
		MaxBodySize:       DefaultMaxBodySize,
	}
}

// Budget resolves this configuration into the fixed Budget for a job.
func (c *Config) Budget() Budget {
	return ResolveBudget(c.Mode, c.MaxDepth, c.MaxPages, c.FollowLinks, c.NavigationTimeout, c.JobTimeout)
}

// XDGDataDir returns the XDG data directory for leadspider.
// On Linux: ~/.local/share/leadspider
// On macOS: ~/Library/Application Support/leadspider
// On Windows: %LOCALAPPDATA%\leadspider
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for leadspider.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first error found rather than collecting all errors,
// because fixing one error often makes others irrelevant. Called once
// after CLI parsing, before any crawling begins.
func (c *Config) Validate() error {
	if len(c.Seeds) == 0 {
		return ErrNoSeed
	}

	if _, err := ParseMode(string(c.Mode)); err != nil {
		return err
	}

	if c.Engine != EngineChromium && c.Engine != EngineFirefox {
		return ErrInvalidEngine
	}

	if c.NavigationTimeout < 0 || c.JobTimeout < 0 {
		return ErrInvalidTimeout
	}

	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	// Only one report format may be selected.
	formats := 0
	for _, set := range []bool{c.JSONReport, c.MarkdownReport, c.CSVReport} {
		if set {
			formats++
		}
	}
	if formats > 1 {
		return ErrConflictingReportFormats
	}

	return nil
}
