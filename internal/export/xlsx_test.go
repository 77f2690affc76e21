package export

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/fieldworkhq/leadspider/internal/model"
)

func testBatch() *model.Batch {
	started := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	return &model.Batch{
		ID:      "export-test",
		SeedURL: "https://rink.example.com",
		Mode:    "standard",
		Status:  model.StatusSucceeded,
		Contacts: []model.Contact{
			{
				Email:      "jane@rink.example.com",
				Name:       "Jane Smith",
				Title:      "Head Coach",
				Phone:      "(416) 555-0149",
				SourceURL:  "https://rink.example.com/staff",
				Method:     model.MethodMailto,
				Confidence: model.ConfidenceConfirmed,
			},
			{
				Email:      "info@rink.example.com",
				SourceURL:  "https://rink.example.com",
				Method:     model.MethodStandard,
				Confidence: model.ConfidenceGenerated,
			},
		},
		PagesVisited: 4,
		StartedAt:    started,
		FinishedAt:   started.Add(12 * time.Second),
	}
}

// TestXLSXExporter tests workbook generation.
func TestXLSXExporter(t *testing.T) {
	t.Parallel()

	t.Run("writes header and contact rows", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "contacts.xlsx")
		exporter := NewXLSXExporter()

		if err := exporter.Export(testBatch(), path); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		f, err := excelize.OpenFile(path)
		if err != nil {
			t.Fatalf("failed to open workbook: %v", err)
		}
		t.Cleanup(func() { _ = f.Close() })

		rows, err := f.GetRows(sheetName)
		if err != nil {
			t.Fatalf("failed to read rows: %v", err)
		}
		if len(rows) != 3 {
			t.Fatalf("rows = %d, want header plus 2 contacts", len(rows))
		}
		if rows[0][0] != "Email" {
			t.Errorf("header starts with %q, want Email", rows[0][0])
		}
		if rows[1][0] != "jane@rink.example.com" {
			t.Errorf("first contact email = %q", rows[1][0])
		}
		if rows[1][2] != "Head Coach" {
			t.Errorf("first contact title = %q", rows[1][2])
		}
		if rows[2][0] != "info@rink.example.com" {
			t.Errorf("second contact email = %q", rows[2][0])
		}
	})

	t.Run("removes default sheet", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "contacts.xlsx")
		exporter := NewXLSXExporter()

		if err := exporter.Export(testBatch(), path); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		f, err := excelize.OpenFile(path)
		if err != nil {
			t.Fatalf("failed to open workbook: %v", err)
		}
		t.Cleanup(func() { _ = f.Close() })

		for _, name := range f.GetSheetList() {
			if name == "Sheet1" {
				t.Error("expected default sheet to be removed")
			}
		}
	})

	t.Run("empty batch yields header only", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "contacts.xlsx")
		batch := testBatch()
		batch.Contacts = nil

		if err := NewXLSXExporter().Export(batch, path); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		f, err := excelize.OpenFile(path)
		if err != nil {
			t.Fatalf("failed to open workbook: %v", err)
		}
		t.Cleanup(func() { _ = f.Close() })

		rows, err := f.GetRows(sheetName)
		if err != nil {
			t.Fatalf("failed to read rows: %v", err)
		}
		if len(rows) != 1 {
			t.Errorf("rows = %d, want header only", len(rows))
		}
	})

	t.Run("fails on unwritable path", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		// A directory at the target path makes SaveAs fail.
		path := filepath.Join(dir, "taken")
		if err := os.Mkdir(path, 0o750); err != nil {
			t.Fatal(err)
		}

		if err := NewXLSXExporter().Export(testBatch(), path); err == nil {
			t.Error("expected error for unwritable path")
		}
	})
}
