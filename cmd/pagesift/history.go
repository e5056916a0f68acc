package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pagesift/pagesift/internal/config"
	"github.com/pagesift/pagesift/internal/history"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [id]",
		Short: "List archived scrape jobs or replay one result",
		Long: `History lists jobs archived by previous scrape runs and API calls.

Without arguments it prints a table of recent jobs. With an ID it
prints that job's stored result table as JSON, exactly as the HTTP
API returned it.

Examples:
  pagesift history
  pagesift history --limit 50
  pagesift history 17`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", 20, "Maximum number of jobs to list")
	cmd.Flags().String("dir", "", "History database directory (default: XDG data directory)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		return err
	}
	if dir == "" {
		dir = config.XDGDataDir()
	}

	store, err := history.Open(dir, history.Options{CreateIfNotExists: false})
	if err != nil {
		return fmt.Errorf("no history found: %w", err)
	}
	defer store.Close()

	if len(args) == 1 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid job id %q: %w", args[0], err)
		}
		return showEntry(cmd, store, id)
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	return listEntries(cmd, store, limit)
}

// showEntry prints one archived result table as JSON.
func showEntry(cmd *cobra.Command, store *history.Store, id int64) error {
	entry, err := store.Get(cmd.Context(), id)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(entry.Table, "", "  ")
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

// listEntries prints a table of recent jobs.
func listEntries(cmd *cobra.Command, store *history.Store, limit int) error {
	entries, err := store.Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no archived jobs")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSEED\tDEPTH\tPAGES\tTOOK\tWHEN")
	for _, entry := range entries {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%s\t%s\n",
			entry.ID,
			entry.Job.URL,
			entry.Job.MaxDepth,
			entry.PagesFetched,
			entry.Took,
			entry.CreatedAt.Format("2006-01-02 15:04:05"),
		)
	}
	return w.Flush()
}
