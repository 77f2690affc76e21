package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/net/html/charset"

	"github.com/fieldworkhq/leadspider/internal/config"
)

// StaticFetcher is the gentle tier: one plain HTTP GET with no script
// execution, optimized purely for speed. Response bodies are decoded from
// their declared charset and capped at a byte limit.
type StaticFetcher struct {
	client      *http.Client
	userAgent   string
	maxBodySize int64
}

// NewStaticFetcher creates a static fetcher bounded by the budget's
// navigation timeout.
func NewStaticFetcher(cfg *config.Config) *StaticFetcher {
	timeout := cfg.Budget().NavigationTimeout
	if timeout <= 0 {
		timeout = config.DefaultNavigationTimeout
	}

	return &StaticFetcher{
		client: &http.Client{
			Timeout: timeout,
		},
		userAgent:   cfg.UserAgent,
		maxBodySize: cfg.MaxBodySize,
	}
}

// Fetch performs a single GET. There is no retry; the gentle tier spends
// at most one request per page.
func (f *StaticFetcher) Fetch(ctx context.Context, url string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNavigation, url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNavigation, url, err)
	}
	defer resp.Body.Close() //nolint:errcheck // Response body close error is not actionable

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: %s: %d", ErrHTTPStatus, url, resp.StatusCode)
	}

	limited := io.LimitReader(resp.Body, f.maxBodySize)
	decoded, err := charset.NewReader(limited, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNavigation, url, err)
	}

	body, err := io.ReadAll(decoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNavigation, url, err)
	}

	return &Result{HTML: string(body)}, nil
}

// Timeout returns the per-request timeout, for logging.
func (f *StaticFetcher) Timeout() time.Duration {
	return f.client.Timeout
}
