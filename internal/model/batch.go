package model

import "time"

// BatchStatus is the terminal state of a crawl job.
type BatchStatus string

const (
	// StatusSucceeded means the frontier was exhausted or the page budget
	// was reached without hitting the job wall-clock limit.
	StatusSucceeded BatchStatus = "succeeded"

	// StatusTimedOut means the wall-clock budget expired mid-crawl.
	// The batch still carries every contact gathered up to that point;
	// a timeout is a normal terminal condition, not an error.
	StatusTimedOut BatchStatus = "timed_out"
)

// Batch is the result of one crawl job. It is keyed by a unique ID so the
// persistence layer can store and retrieve historical runs.
type Batch struct {
	// ID uniquely identifies this crawl run.
	ID string `json:"id"`

	// SeedURL is the URL the crawl started from.
	SeedURL string `json:"seed_url"`

	// Mode is the crawl intensity mode the budget was derived from
	// (gentle, standard, aggressive).
	Mode string `json:"mode"`

	// Status records how the job terminated.
	Status BatchStatus `json:"status"`

	// Contacts is the deduplicated contact set, one entry per normalized
	// email. The order of entries is unspecified; callers must not depend
	// on it.
	Contacts []Contact `json:"contacts"`

	// PagesVisited is the number of pages actually fetched.
	PagesVisited int `json:"pages_visited"`

	// StartedAt is when the crawl began.
	StartedAt time.Time `json:"started_at"`

	// FinishedAt is when the crawl terminated.
	FinishedAt time.Time `json:"finished_at"`
}

// Duration returns the wall-clock time the job ran for.
func (b *Batch) Duration() time.Duration {
	return b.FinishedAt.Sub(b.StartedAt)
}
