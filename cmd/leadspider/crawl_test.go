package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/fieldworkhq/leadspider/internal/config"
	"github.com/fieldworkhq/leadspider/internal/model"
	"github.com/fieldworkhq/leadspider/internal/report"
)

// TestNewCrawlCmd tests the crawl command creation.
func TestNewCrawlCmd(t *testing.T) {
	t.Parallel()

	cmd := NewCrawlCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "crawl [seed-url]" {
			t.Errorf("expected use 'crawl [seed-url]', got %q", cmd.Use)
		}
	})

	t.Run("has mode flag with standard default", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("mode")
		if flag == nil {
			t.Fatal("expected mode flag")
		}
		if flag.DefValue != "standard" {
			t.Errorf("expected default 'standard', got %q", flag.DefValue)
		}
	})

	t.Run("has depth flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("depth")
		if flag == nil {
			t.Fatal("expected depth flag")
		}
		if flag.Shorthand != "d" {
			t.Errorf("expected shorthand 'd', got %q", flag.Shorthand)
		}
	})

	t.Run("has max-pages flag", func(t *testing.T) {
		t.Parallel()
		if cmd.Flags().Lookup("max-pages") == nil {
			t.Error("expected max-pages flag")
		}
	})

	t.Run("has concurrency flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("concurrency")
		if flag == nil {
			t.Fatal("expected concurrency flag")
		}
		if flag.DefValue != "1" {
			t.Errorf("expected default '1', got %q", flag.DefValue)
		}
	})

	t.Run("has report format flags", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{"json", "markdown", "csv", "output"} {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("expected %s flag", name)
			}
		}
	})
}

// TestBuildConfig tests flag-to-config translation.
func TestBuildConfig(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		cmd := NewCrawlCmd()
		if err := cmd.ParseFlags(nil); err != nil {
			t.Fatal(err)
		}

		cfg, err := buildConfig(cmd, []string{"https://example.org"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Mode != config.ModeStandard {
			t.Errorf("mode = %q, want standard", cfg.Mode)
		}
		if cfg.MaxDepth != -1 {
			t.Errorf("max depth = %d, want -1", cfg.MaxDepth)
		}
		if cfg.FollowLinks != nil {
			t.Error("expected follow-links override to be unset")
		}
		if !cfg.SaveToDB {
			t.Error("expected save to db by default")
		}
		if cfg.Keywords == nil {
			t.Fatal("expected keywords to be resolved")
		}
		if len(cfg.Seeds) != 1 || cfg.Seeds[0] != "https://example.org" {
			t.Errorf("seeds = %v", cfg.Seeds)
		}
	})

	t.Run("flag overrides", func(t *testing.T) {
		t.Parallel()

		cmd := NewCrawlCmd()
		args := []string{
			"--mode", "aggressive",
			"--depth", "1",
			"--max-pages", "5",
			"--follow-links=false",
			"--timeout", "90s",
			"--no-save",
		}
		if err := cmd.ParseFlags(args); err != nil {
			t.Fatal(err)
		}

		cfg, err := buildConfig(cmd, []string{"https://example.org"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Mode != config.ModeAggressive {
			t.Errorf("mode = %q, want aggressive", cfg.Mode)
		}
		if cfg.MaxDepth != 1 || cfg.MaxPages != 5 {
			t.Errorf("budget overrides = (%d, %d), want (1, 5)", cfg.MaxDepth, cfg.MaxPages)
		}
		if cfg.FollowLinks == nil || *cfg.FollowLinks {
			t.Error("expected follow-links override to be false")
		}
		if cfg.JobTimeout != 90*time.Second {
			t.Errorf("job timeout = %s, want 90s", cfg.JobTimeout)
		}
		if cfg.SaveToDB {
			t.Error("expected --no-save to disable persistence")
		}
	})

	t.Run("invalid mode rejected", func(t *testing.T) {
		t.Parallel()

		cmd := NewCrawlCmd()
		if err := cmd.ParseFlags([]string{"--mode", "turbo"}); err != nil {
			t.Fatal(err)
		}

		if _, err := buildConfig(cmd, []string{"https://example.org"}); err == nil {
			t.Error("expected error for unknown mode")
		}
	})

	t.Run("missing explicit keyword file rejected", func(t *testing.T) {
		t.Parallel()

		cmd := NewCrawlCmd()
		missing := filepath.Join(t.TempDir(), "nope.yml")
		if err := cmd.ParseFlags([]string{"--keywords", missing}); err != nil {
			t.Fatal(err)
		}

		if _, err := buildConfig(cmd, []string{"https://example.org"}); err == nil {
			t.Error("expected error for missing keyword file")
		}
	})

	t.Run("keyword file loaded when present", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "keywords.yml")
		content := "staff:\n  - crew\n"
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}

		cmd := NewCrawlCmd()
		if err := cmd.ParseFlags([]string{"--keywords", path}); err != nil {
			t.Fatal(err)
		}

		cfg, err := buildConfig(cmd, []string{"https://example.org"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(cfg.Keywords.Staff) != 1 || cfg.Keywords.Staff[0] != "crew" {
			t.Errorf("staff keywords = %v, want [crew]", cfg.Keywords.Staff)
		}
	})
}

// TestNewReportWriter tests output format selection.
func TestNewReportWriter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{
			name:   "default is simple",
			mutate: func(*config.Config) {},
			want:   "*report.SimpleWriter",
		},
		{
			name:   "json",
			mutate: func(c *config.Config) { c.JSONReport = true },
			want:   "*report.JSONWriter",
		},
		{
			name:   "markdown",
			mutate: func(c *config.Config) { c.MarkdownReport = true },
			want:   "*report.MarkdownWriter",
		},
		{
			name:   "csv",
			mutate: func(c *config.Config) { c.CSVReport = true },
			want:   "*report.CSVWriter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			tt.mutate(cfg)

			w := newReportWriter(cfg, os.Stdout)
			var got string
			switch w.(type) {
			case *report.SimpleWriter:
				got = "*report.SimpleWriter"
			case *report.JSONWriter:
				got = "*report.JSONWriter"
			case *report.MarkdownWriter:
				got = "*report.MarkdownWriter"
			case *report.CSVWriter:
				got = "*report.CSVWriter"
			}
			if got != tt.want {
				t.Errorf("writer type = %s, want %s", got, tt.want)
			}
		})
	}
}

// TestOutputReport tests report file creation.
func TestOutputReport(t *testing.T) {
	t.Parallel()

	batch := &model.Batch{
		ID:      "output-test",
		SeedURL: "https://rink.example.com",
		Mode:    "gentle",
		Status:  model.StatusSucceeded,
		Contacts: []model.Contact{
			{Email: "info@rink.example.com", Confidence: model.ConfidenceGenerated},
		},
		PagesVisited: 1,
		StartedAt:    time.Now(),
		FinishedAt:   time.Now(),
	}

	t.Run("writes json report to nested path", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.JSONReport = true
		cfg.ReportFile = filepath.Join(t.TempDir(), "reports", "out.json")

		if err := outputReport(cfg, batch); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(cfg.ReportFile)
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}

		var decoded model.Batch
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("report is not valid JSON: %v", err)
		}
		if decoded.SeedURL != batch.SeedURL {
			t.Errorf("seed URL = %q, want %q", decoded.SeedURL, batch.SeedURL)
		}
	})

	t.Run("report file has owner-only permissions", func(t *testing.T) {
		t.Parallel()

		if runtime.GOOS == "windows" {
			t.Skip("file permissions are not meaningful on Windows")
		}

		cfg := config.NewConfig()
		cfg.CSVReport = true
		cfg.ReportFile = filepath.Join(t.TempDir(), "out.csv")

		if err := outputReport(cfg, batch); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		info, err := os.Stat(cfg.ReportFile)
		if err != nil {
			t.Fatal(err)
		}
		if perm := info.Mode().Perm(); perm != 0o600 {
			t.Errorf("permissions = %o, want 600", perm)
		}
	})

	t.Run("csv report contains contact row", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.CSVReport = true
		cfg.ReportFile = filepath.Join(t.TempDir(), "out.csv")

		if err := outputReport(cfg, batch); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(cfg.ReportFile)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(data), "info@rink.example.com") {
			t.Error("expected contact email in csv output")
		}
	})
}
