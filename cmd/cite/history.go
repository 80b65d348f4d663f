package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cosmik-network/citefetch/internal/config"
	"github.com/cosmik-network/citefetch/internal/history"
)

var historyLimit int

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", history.DefaultListLimit, "Maximum number of entries to show")
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past queries",
	Long: `Show past queries, newest first.

Only query metadata is recorded (input, routing, format, source, HTTP
status); fetched citation data is never stored.

Examples:
  cite history
  cite history --limit 5 --human
  cite history clear`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

// HistoryResult is the JSON output for cite history.
type HistoryResult struct {
	Entries []history.Entry `json:"entries"`
}

func openHistory() *history.Store {
	dbPath := config.HistoryDBPath()
	if dbPath == "" {
		exitWithError(ExitConfigError, "cannot determine history database path")
	}
	store, err := history.Open(dbPath)
	if err != nil {
		exitWithError(ExitError, "opening history: %v", err)
	}
	return store
}

func runHistory(cmd *cobra.Command, args []string) error {
	store := openHistory()
	defer store.Close()

	entries, err := store.List(historyLimit)
	if err != nil {
		exitWithError(ExitError, "listing history: %v", err)
	}

	if humanOutput {
		if len(entries) == 0 {
			fmt.Println("No queries recorded.")
			return nil
		}
		for _, e := range entries {
			fmt.Printf("%s  %-10s %3d  %-20s %s\n",
				e.FetchedAt.Format("2006-01-02 15:04"), e.Source, e.StatusCode, e.Format, e.Input)
		}
	} else {
		if entries == nil {
			entries = []history.Entry{}
		}
		outputJSON(HistoryResult{Entries: entries})
	}
	return nil
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded queries",
	Args:  cobra.NoArgs,
	RunE:  runHistoryClear,
}

// ClearResult is the JSON output for cite history clear.
type ClearResult struct {
	Removed int64 `json:"removed"`
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	store := openHistory()
	defer store.Close()

	n, err := store.Clear()
	if err != nil {
		exitWithError(ExitError, "clearing history: %v", err)
	}

	if humanOutput {
		fmt.Printf("Removed %d entries.\n", n)
	} else {
		outputJSON(ClearResult{Removed: n})
	}
	return nil
}
