package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fieldworkhq/leadspider/internal/model"
)

func testBatch(id string) *model.Batch {
	started := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	return &model.Batch{
		ID:      id,
		SeedURL: "https://club.org/",
		Mode:    "standard",
		Status:  model.StatusSucceeded,
		Contacts: []model.Contact{
			{
				Email:      "jane@club.org",
				Name:       "Jane Doe",
				Title:      "Head Coach",
				Phone:      "(416) 555-0149",
				SourceURL:  "https://club.org/staff",
				Method:     model.MethodStandard,
				Confidence: model.ConfidenceConfirmed,
			},
			{
				Email:      "info@club.org",
				SourceURL:  "https://club.org/",
				Method:     model.MethodMailto,
				Confidence: model.ConfidenceConfirmed,
			},
		},
		PagesVisited: 4,
		StartedAt:    started,
		FinishedAt:   started.Add(90 * time.Second),
	}
}

// TestSaveAndGetBatch tests the batch round trip.
func TestSaveAndGetBatch(t *testing.T) {
	t.Parallel()

	db, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	want := testBatch("batch-1")

	if err := db.SaveBatch(ctx, want); err != nil {
		t.Fatalf("SaveBatch: %v", err)
	}

	got, err := db.GetBatch(ctx, "batch-1")
	if err != nil {
		t.Fatalf("GetBatch: %v", err)
	}

	if got.SeedURL != want.SeedURL || got.Mode != want.Mode || got.Status != want.Status {
		t.Errorf("batch metadata mismatch: got %+v", got)
	}
	if got.PagesVisited != want.PagesVisited {
		t.Errorf("PagesVisited = %d, want %d", got.PagesVisited, want.PagesVisited)
	}
	if len(got.Contacts) != 2 {
		t.Fatalf("expected 2 contacts, got %d", len(got.Contacts))
	}
	if got.Contacts[0].Email != "jane@club.org" || got.Contacts[0].Name != "Jane Doe" {
		t.Errorf("unexpected first contact: %+v", got.Contacts[0])
	}
	if got.Contacts[1].Method != model.MethodMailto {
		t.Errorf("unexpected second contact: %+v", got.Contacts[1])
	}
	if !got.StartedAt.Equal(want.StartedAt) {
		t.Errorf("StartedAt = %v, want %v", got.StartedAt, want.StartedAt)
	}
}

// TestGetBatchNotFound tests the missing-batch error.
func TestGetBatchNotFound(t *testing.T) {
	t.Parallel()

	db, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.GetBatch(context.Background(), "no-such-batch"); !errors.Is(err, ErrBatchNotFound) {
		t.Errorf("expected ErrBatchNotFound, got %v", err)
	}
}

// TestSaveBatchReplaces tests that re-saving a batch replaces its
// contacts instead of duplicating them.
func TestSaveBatchReplaces(t *testing.T) {
	t.Parallel()

	db, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	batch := testBatch("batch-1")

	if err := db.SaveBatch(ctx, batch); err != nil {
		t.Fatalf("first SaveBatch: %v", err)
	}

	batch.Contacts = batch.Contacts[:1]
	batch.Status = model.StatusTimedOut
	if err := db.SaveBatch(ctx, batch); err != nil {
		t.Fatalf("second SaveBatch: %v", err)
	}

	got, err := db.GetBatch(ctx, "batch-1")
	if err != nil {
		t.Fatalf("GetBatch: %v", err)
	}
	if len(got.Contacts) != 1 {
		t.Errorf("expected 1 contact after replace, got %d", len(got.Contacts))
	}
	if got.Status != model.StatusTimedOut {
		t.Errorf("expected updated status, got %q", got.Status)
	}
}

// TestListBatches tests history listing order and counts.
func TestListBatches(t *testing.T) {
	t.Parallel()

	db, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()

	older := testBatch("older")
	newer := testBatch("newer")
	newer.StartedAt = older.StartedAt.Add(time.Hour)
	newer.FinishedAt = newer.StartedAt.Add(time.Minute)

	if err := db.SaveBatch(ctx, older); err != nil {
		t.Fatalf("SaveBatch older: %v", err)
	}
	if err := db.SaveBatch(ctx, newer); err != nil {
		t.Fatalf("SaveBatch newer: %v", err)
	}

	got, err := db.ListBatches(ctx, 10)
	if err != nil {
		t.Fatalf("ListBatches: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 batches, got %d", len(got))
	}
	if got[0].ID != "newer" || got[1].ID != "older" {
		t.Errorf("unexpected order: %s, %s", got[0].ID, got[1].ID)
	}
	if got[0].ContactCount != 2 {
		t.Errorf("ContactCount = %d, want 2", got[0].ContactCount)
	}
}

// TestOpenWithoutCreate tests that a missing database is an error when
// creation is disabled.
func TestOpenWithoutCreate(t *testing.T) {
	t.Parallel()

	opts := Options{CreateIfNotExists: false, EnableWAL: true}
	if _, err := Open(t.TempDir(), opts); err == nil {
		t.Error("expected error opening missing database without create")
	}
}
