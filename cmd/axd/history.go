package main

import (
	"fmt"

	"github.com/matsen/axd/internal/history"
	"github.com/spf13/cobra"
)

var historyDays int

func init() {
	historyCmd.Flags().IntVarP(&historyDays, "days", "n", 14, "Number of days to show (0 for all)")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show filter statistics of past runs per day",
	Long: `Show per-day totals of past runs: papers shown, rejections by reason,
failed fetches and downloads. Only counts are recorded, never paper ids.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	root := cfg.DownloadRoot()

	db, err := history.OpenDB(history.DBPath(root))
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	defer db.Close()

	if _, err := db.RebuildFromJSONL(history.LogPath(root)); err != nil {
		exitWithError(ExitDataError, "rebuilding history: %v", err)
	}

	days, err := db.Days(historyDays)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if !humanOutput {
		if days == nil {
			days = []history.Day{}
		}
		return outputJSON(days)
	}

	if len(days) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}
	fmt.Print(formatHistory(days))
	return nil
}

// formatHistory formats per-day totals as a table.
func formatHistory(days []history.Day) string {
	out := fmt.Sprintf("%-10s  %4s  %5s  %5s  %5s  %5s  %5s  %5s  %4s\n",
		"Date", "Runs", "Shown", "Dup", "Cat", "Key", "Repl", "Total", "DL")
	failed := false
	for _, d := range days {
		date := d.Date
		if d.Failed > 0 {
			date += "*"
			failed = true
		}
		out += fmt.Sprintf("%-10s  %4d  %5d  %5d  %5d  %5d  %5d  %5d  %4d\n",
			date, d.Runs, d.Accepted, d.Duplicate, d.Category, d.Keyword, d.Replaced, d.Total(), d.Downloaded)
	}
	if failed {
		out += "\n* some categories could not be fetched that day\n"
	}
	return out
}
