package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/fieldworkhq/leadspider/internal/config"
	"github.com/fieldworkhq/leadspider/internal/database"
)

// NewHistoryCmd creates the history command.
// This command lists crawl batches stored in the local database.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored crawl batches",
		Long: `History lists previously saved crawl batches, newest first.

Each crawl saves its results to a local SQLite database unless --no-save
was given. Use the batch ID shown here with 'leadspider export' to write
a stored batch to a spreadsheet.

Examples:
  # List the most recent batches
  leadspider history

  # List more batches
  leadspider history --limit 100

  # Machine-readable listing
  leadspider history --json`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "l", 0,
		"Maximum number of batches to list (0 uses the default)")
	cmd.Flags().BoolP("json", "j", false,
		"Output listing in JSON format")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	db, err := database.Open(config.XDGDataDir(), database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	summaries, err := db.ListBatches(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("failed to list batches: %w", err)
	}

	if jsonOutput {
		return writeHistoryJSON(cmd.OutOrStdout(), summaries)
	}
	return writeHistoryTable(cmd.OutOrStdout(), summaries)
}

// writeHistoryJSON writes the batch listing as pretty-printed JSON.
func writeHistoryJSON(out io.Writer, summaries []database.BatchSummary) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(summaries)
}

// writeHistoryTable writes the batch listing as an aligned text table.
func writeHistoryTable(out io.Writer, summaries []database.BatchSummary) error {
	if len(summaries) == 0 {
		_, err := fmt.Fprintln(out, "No stored batches found. Run 'leadspider crawl' first.")
		return err
	}

	fmt.Fprintf(out, "Stored batches (%d):\n\n", len(summaries))
	fmt.Fprintf(out, "  %-36s  %-19s  %-10s  %-9s  %8s  %5s  %s\n",
		"ID", "Started", "Mode", "Status", "Contacts", "Pages", "Seed URL")

	for _, s := range summaries {
		fmt.Fprintf(out, "  %-36s  %-19s  %-10s  %-9s  %8d  %5d  %s\n",
			s.ID,
			s.StartedAt.Format("2006-01-02 15:04:05"),
			s.Mode,
			string(s.Status),
			s.ContactCount,
			s.PagesVisited,
			s.SeedURL,
		)
	}
	return nil
}
