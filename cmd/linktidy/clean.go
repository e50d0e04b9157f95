package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/linktidy/linktidy/internal/bookmark"
	"github.com/linktidy/linktidy/internal/dedup"
	"github.com/linktidy/linktidy/internal/netscape"
)

var cleanCmd = &cobra.Command{
	Use:   "clean <bookmarks.html>",
	Short: "Dedupe and relabel a bookmark export in one pass",
	Long: `Run the full cleanup pipeline: remove duplicates, rewrite every title
into a short "domain | page" label, and write the result as a new bookmark
file ready to import.

Output lands in a job_<timestamp> folder next to the input:
  cleaned.html   the cleaned bookmark file
  original.html  untouched copy of the input
  summary.json   machine-readable run summary
  report.txt     duplicate analysis (with --report)
  removed.txt    the bookmarks that were dropped

Example:
  linktidy clean bookmarks.html
  linktidy clean bookmarks.html --strategy=domain-scoped --report`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		appCfg, err := loadConfig()
		if err != nil {
			fatalf("%v", err)
		}

		cfg, err := dedupeConfig(cmd, appCfg)
		if err != nil {
			fatalf("%v", err)
		}

		records, err := readBookmarkFile(args[0])
		if err != nil {
			fatalf("%v", err)
		}
		if len(records) == 0 {
			fatalf("no bookmarks found in %s", args[0])
		}

		result, err := dedup.Deduplicate(records, cfg)
		if err != nil {
			fatalf("%v", err)
		}

		survivors := result.Survivors
		bookmark.FormatLabels(survivors)

		dir, err := makeJobDir(args[0])
		if err != nil {
			fatalf("%v", err)
		}

		// Rewrite labels inside the original document so folder
		// structure, icons, and dates survive untouched.
		raw, err := os.ReadFile(args[0])
		if err != nil {
			fatalf("reading %s: %v", args[0], err)
		}

		// Keep an untouched copy of the input next to the output.
		if _, err := writeJobFile(dir, "original.html", string(raw)); err != nil {
			fatalf("%v", err)
		}

		cleaned, err := rewriteDocument(string(raw), records, result, survivors)
		if err != nil {
			fatalf("%v", err)
		}
		outPath, err := writeJobFile(dir, "cleaned.html", cleaned)
		if err != nil {
			fatalf("%v", err)
		}

		if cfg.WantReport {
			if _, err := writeJobFile(dir, "report.txt", result.Report); err != nil {
				fatalf("%v", err)
			}
		}
		if result.Stats.RemovedCount > 0 {
			if _, err := writeJobFile(dir, "removed.txt", removedListing(records, result)); err != nil {
				fatalf("%v", err)
			}
		}

		summary, err := cleanSummaryJSON(cfg, result, survivors)
		if err != nil {
			fatalf("%v", err)
		}
		if _, err := writeJobFile(dir, "summary.json", summary); err != nil {
			fatalf("%v", err)
		}

		if !dedupeNoDB {
			if err := recordRun(appCfg, cfg, result); err != nil {
				fmt.Printf("%s could not record run: %v\n", color.YellowString("!"), err)
			}
		}

		green := color.New(color.FgGreen).SprintFunc()
		cyan := color.New(color.FgCyan).SprintFunc()
		fmt.Printf("\n%s Cleaned %d bookmarks\n\n", green("✓"), result.Stats.TotalRecords)
		fmt.Printf("  Duplicates removed: %d\n", result.Stats.RemovedCount)
		fmt.Printf("  Labels rewritten: %d\n", len(survivors))
		fmt.Printf("  Output: %s\n\n", cyan(outPath))
	},
}

// rewriteDocument applies the dedupe result and the freshly formatted
// labels to the original export, keeping its structure intact. Survivors
// line up with the non-removed records in order, which is how the dedupe
// result is built.
func rewriteDocument(raw string, records []bookmark.Record, result *dedup.Result, survivors []bookmark.Record) (string, error) {
	removed := make(map[int]bool)
	for gi, group := range result.Groups {
		for _, idx := range group {
			if idx != result.Kept[gi] {
				removed[idx] = true
			}
		}
	}

	labels := make(map[int]string, len(survivors))
	next := 0
	for i := range records {
		if removed[i] {
			continue
		}
		if next < len(survivors) {
			labels[i] = survivors[next].Label
		}
		next++
	}

	return netscape.RewriteDocument(strings.NewReader(raw), func(i int) (string, bool) {
		if removed[i] {
			return "", false
		}
		return labels[i], true
	})
}

// cleanSummaryJSON renders the machine-readable run summary.
func cleanSummaryJSON(cfg dedup.Config, result *dedup.Result, survivors []bookmark.Record) (string, error) {
	summary := struct {
		RunID     string            `json:"run_id"`
		Strategy  string            `json:"strategy"`
		KeepRule  string            `json:"keep_rule"`
		Stats     dedup.Stats       `json:"stats"`
		Survivors []bookmark.Record `json:"survivors"`
	}{
		RunID:     uuid.NewString(),
		Strategy:  string(cfg.Strategy),
		KeepRule:  string(cfg.KeepRule),
		Stats:     result.Stats,
		Survivors: survivors,
	}
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding summary: %w", err)
	}
	return string(data), nil
}

// removedListing produces the removed.txt artifact, one dropped bookmark
// per line.
func removedListing(records []bookmark.Record, result *dedup.Result) string {
	kept := make(map[int]bool, len(result.Kept))
	for _, idx := range result.Kept {
		kept[idx] = true
	}

	var b strings.Builder
	b.WriteString("Removed bookmarks\n=================\n\n")
	for _, group := range result.Groups {
		for _, idx := range group {
			if kept[idx] {
				continue
			}
			rec := records[idx]
			title := rec.Label
			if title == "" {
				title = rec.OriginalTitle
			}
			fmt.Fprintf(&b, "%s <%s>\n", title, rec.URL)
		}
	}
	return b.String()
}

func init() {
	cleanCmd.Flags().StringVar(&dedupeStrategy, "strategy", "exact-url",
		"grouping strategy: exact-url, exact-title, domain-scoped, fuzzy")
	cleanCmd.Flags().Float64Var(&dedupeThreshold, "threshold", 0.85,
		"fuzzy similarity threshold in [0, 1]")
	cleanCmd.Flags().StringVar(&dedupeKeep, "keep", "first",
		"which duplicate survives: first, last, shortest-label, longest-label")
	cleanCmd.Flags().BoolVar(&dedupeReport, "report", false,
		"write a duplicate analysis report")
	cleanCmd.Flags().BoolVar(&dedupeNoDB, "no-db", false,
		"skip recording the run in the history database")
	rootCmd.AddCommand(cleanCmd)
}
