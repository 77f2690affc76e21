package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fieldworkhq/leadspider/internal/config"
	"github.com/fieldworkhq/leadspider/internal/database"
	"github.com/fieldworkhq/leadspider/internal/export"
	"github.com/fieldworkhq/leadspider/internal/model"
	"github.com/fieldworkhq/leadspider/internal/report"
)

// NewExportCmd creates the export command.
// This command writes a stored batch to a spreadsheet file.
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [batch-id]",
		Short: "Export a stored batch to a spreadsheet",
		Long: `Export reads a previously saved crawl batch from the local database and
writes its contacts to a file.

The output format follows the file extension: .xlsx produces an Excel
workbook, anything else produces CSV. Use 'leadspider history' to find
batch IDs.

Examples:
  # Export to an Excel workbook
  leadspider export 3f2a9c1e-8b4d-4f60-9d2e-1c5a7b9e0f12 -o contacts.xlsx

  # Export to CSV
  leadspider export 3f2a9c1e-8b4d-4f60-9d2e-1c5a7b9e0f12 -o contacts.csv`,
		Args: cobra.ExactArgs(1),
		RunE: runExportCmd,
	}

	cmd.Flags().StringP("output", "o", "",
		"Output file path (required; extension selects the format)")
	if err := cmd.MarkFlagRequired("output"); err != nil {
		// MarkFlagRequired only fails for unknown flag names.
		panic(err)
	}

	return cmd
}

// runExportCmd executes the export command.
func runExportCmd(cmd *cobra.Command, args []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	db, err := database.Open(config.XDGDataDir(), database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	batch, err := db.GetBatch(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to load batch %s: %w", args[0], err)
	}

	if dir := filepath.Dir(outputPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if strings.EqualFold(filepath.Ext(outputPath), ".xlsx") {
		if err := export.NewXLSXExporter().Export(batch, outputPath); err != nil {
			return err
		}
	} else {
		if err := exportCSV(batch, outputPath); err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d contacts to %s\n", len(batch.Contacts), outputPath)
	return nil
}

// exportCSV writes the batch contacts to a CSV file.
func exportCSV(batch *model.Batch, path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if _, err := report.NewCSVWriter(f).Write(batch); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}
