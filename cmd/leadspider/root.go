// Package main provides the entry point for the leadspider CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for leadspider.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leadspider",
		Short: "Contact discovery crawler for websites",
		Long: `Leadspider crawls a website within its own origin and extracts contact
records: email addresses paired, where possible, with a person's name,
title, and phone number.

Pages likely to list people (staff, contact, about) are visited first,
so the most valuable contacts surface even under tight page budgets.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewCrawlCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewExportCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
