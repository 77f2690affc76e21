package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/fieldworkhq/leadspider/internal/config"
	"github.com/fieldworkhq/leadspider/internal/extract"
	"github.com/fieldworkhq/leadspider/internal/fetch"
	"github.com/fieldworkhq/leadspider/internal/frontier"
	"github.com/fieldworkhq/leadspider/internal/model"
)

// State is the lifecycle phase of a crawl job.
type State string

const (
	// StateInitializing means the job exists but the loop has not started.
	StateInitializing State = "initializing"

	// StateRunning means the frontier loop is active.
	StateRunning State = "running"

	// StateSucceeded means the frontier was exhausted or the page budget
	// reached before the wall clock ran out.
	StateSucceeded State = "succeeded"

	// StateTimedOut means the wall-clock budget expired mid-crawl. The
	// contacts gathered so far are still returned; this is a partial
	// success, not an error.
	StateTimedOut State = "timed_out"
)

// Job crawls one seed URL to completion under a fixed budget. Every field
// is owned by the single loop in Run; a Job must not be shared between
// goroutines.
type Job struct {
	seed     *url.URL
	mode     config.Mode
	budget   config.Budget
	keywords *config.Keywords
	fetcher  fetch.Fetcher
	logger   *slog.Logger

	frontier *frontier.Frontier
	visited  map[string]bool
	contacts *extract.Set

	state        State
	pagesVisited int
}

// NewJob creates a job for one seed. The fetcher is injected so gentle
// jobs run on the static tier and standard/aggressive jobs on a browser
// context; tests substitute a fake.
func NewJob(seedURL string, cfg *config.Config, fetcher fetch.Fetcher, logger *slog.Logger) (*Job, error) {
	seed, err := url.Parse(seedURL)
	if err != nil {
		return nil, fmt.Errorf("parsing seed URL %q: %w", seedURL, err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Job{
		seed:     seed,
		mode:     cfg.Mode,
		budget:   cfg.Budget(),
		keywords: cfg.Keywords,
		fetcher:  fetcher,
		logger:   logger,
		frontier: frontier.New(),
		visited:  make(map[string]bool),
		contacts: extract.NewSet(),
		state:    StateInitializing,
	}, nil
}

// State returns the job's current lifecycle phase.
func (j *Job) State() State {
	return j.state
}

// Run executes the crawl loop and returns the batch of contacts found.
// Budget exhaustion of any kind is a normal terminal condition reflected
// in the batch status; per-page failures are logged and absorbed. The
// ctx bounds the whole job and canceling it counts as a wall-clock stop.
func (j *Job) Run(ctx context.Context) *model.Batch {
	started := time.Now()
	deadline := started.Add(j.budget.JobTimeout)

	j.state = StateRunning
	j.frontier.Push(frontier.Entry{
		URL:      j.seed.String(),
		Depth:    0,
		Priority: frontier.PriorityInitial,
	})

	// The budget is checked once per frontier pop, never mid-fetch, so a
	// job can overshoot the wall clock by up to one navigation timeout.
	for j.pagesVisited < j.budget.MaxPages {
		if time.Now().After(deadline) || ctx.Err() != nil {
			j.state = StateTimedOut
			break
		}

		entry, ok := j.frontier.Pop()
		if !ok {
			break
		}

		normalized := NormalizeURL(entry.URL)
		if j.visited[normalized] {
			continue
		}

		target, err := url.Parse(entry.URL)
		if err != nil || !fetchable(target) {
			// Filtered before spending a fetch; costs no page slot.
			j.visited[normalized] = true
			continue
		}

		j.visited[normalized] = true
		j.visitPage(ctx, entry)
	}

	if j.state == StateRunning {
		j.state = StateSucceeded
	}

	status := model.StatusSucceeded
	if j.state == StateTimedOut {
		status = model.StatusTimedOut
	}

	return &model.Batch{
		ID:           uuid.NewString(),
		SeedURL:      j.seed.String(),
		Mode:         string(j.mode),
		Status:       status,
		Contacts:     j.contacts.Contacts(),
		PagesVisited: j.pagesVisited,
		StartedAt:    started,
		FinishedAt:   time.Now(),
	}
}

// visitPage fetches one page, extracts contacts, and queues outbound
// links. A fetch failure consumes the page slot but records nothing.
func (j *Job) visitPage(ctx context.Context, entry frontier.Entry) {
	j.pagesVisited++

	result, err := j.fetcher.Fetch(ctx, entry.URL)
	if err != nil {
		j.logger.Warn("page fetch failed", "url", entry.URL, "error", err)
		return
	}

	found := extract.Assemble(result.HTML, entry.URL)
	for _, contact := range found {
		j.contacts.Merge(contact)
	}
	j.logger.Debug("page visited",
		"url", entry.URL,
		"depth", entry.Depth,
		"priority", entry.Priority.String(),
		"contacts", len(found),
	)

	if j.budget.FollowLinks && entry.Depth < j.budget.MaxDepth {
		j.discoverLinks(entry.URL, result.HTML, entry.Depth)
	}
}

// discoverLinks queues unseen same-origin links from a fetched page.
// Relative hrefs resolve against the page they appear on, but origin is
// always compared against the seed, not the current page.
func (j *Job) discoverLinks(pageURL, htmlContent string, depth int) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return
	}

	for _, link := range ParseLinks(htmlContent, base) {
		if !sameOrigin(j.seed, link.URL) {
			continue
		}
		if j.visited[NormalizeURL(link.URL)] {
			continue
		}

		j.frontier.Push(frontier.Entry{
			URL:      link.URL,
			Depth:    depth + 1,
			Priority: frontier.Classify(link.URL, link.AnchorText, j.keywords),
		})
	}
}
