package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/linktidy/linktidy/internal/storage"
)

var statsLimit int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show recent cleanup runs",
	Long: `List recent dedupe runs from the history database, newest first.

Example:
  linktidy stats
  linktidy stats --limit=5`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		appCfg, err := loadConfig()
		if err != nil {
			fatalf("%v", err)
		}

		store, err := storage.Open(appCfg.Database)
		if err != nil {
			fatalf("%v", err)
		}
		defer store.Close()

		runs, err := store.ListRuns(context.Background(), statsLimit)
		if err != nil {
			fatalf("%v", err)
		}
		if len(runs) == 0 {
			fmt.Println("No runs recorded yet.")
			return
		}

		cyan := color.New(color.FgCyan).SprintFunc()
		gray := color.New(color.FgHiBlack).SprintFunc()
		fmt.Printf("\nRecent runs:\n\n")
		for _, run := range runs {
			fmt.Printf("  %s  %s/%s  %d records, %d groups, %d removed  %s\n",
				run.CreatedAt.Local().Format("2006-01-02 15:04"),
				cyan(run.Strategy), run.KeepRule,
				run.TotalRecords, run.GroupCount, run.RemovedCount,
				gray(shortID(run.ID)))
		}
		fmt.Println()
	},
}

// shortID abbreviates a run ID for display. IDs come from uuid.NewString
// in practice, but the database is user-editable.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	statsCmd.Flags().IntVar(&statsLimit, "limit", 10, "maximum number of runs to show")
	rootCmd.AddCommand(statsCmd)
}
