// Package main provides the entry point for the pagesift CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	pagesiftlog "github.com/pagesift/pagesift/internal/log"
)

// NewRootCmd creates the root command for pagesift.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pagesift",
		Short: "Declarative web scraping with selector rules",
		Long: `pagesift crawls from a seed URL breadth-first and extracts structured
content from every visited page using CSS selector rules.

A job is a seed URL, an optional follow pattern, a depth bound, and a
list of searches. Each search pairs a selector with attribute specs:
literal HTML attribute names, or one of the pseudo-attributes
TextContent, HtmlContent, InnerHtml, and Html2Text.

Without a follow pattern the crawl visits only the seed page.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewScrapeCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewHistoryCmd())
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

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates the structured logger used by all commands.
// Records pass through a TrimHandler so oversized page fragments and
// credential-bearing headers never reach the log sink verbatim.
func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(pagesiftlog.NewTrimHandler(handler))
}
