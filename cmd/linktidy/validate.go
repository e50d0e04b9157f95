package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/linktidy/linktidy/internal/bookmark"
	"github.com/linktidy/linktidy/internal/config"
	"github.com/linktidy/linktidy/internal/storage"
	"github.com/linktidy/linktidy/internal/validate"
)

var (
	validateConcurrency int
	validateTimeout     time.Duration
	validateNoCache     bool
	validateRemoveDead  bool
)

var validateCmd = &cobra.Command{
	Use:   "validate <bookmarks.html>",
	Short: "Check which bookmarks still resolve",
	Long: `Probe every bookmark over HTTP and report the dead ones. Results are
cached in the local database so repeated runs skip recently checked URLs
(tune with cache_max_age in linktidy.yaml).

With --remove-dead, also write a bookmark file with the dead links dropped.

Example:
  linktidy validate bookmarks.html
  linktidy validate bookmarks.html --concurrency=16 --remove-dead`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		appCfg, err := loadConfig()
		if err != nil {
			fatalf("%v", err)
		}

		vcfg, err := appCfg.ValidateSettings()
		if err != nil {
			fatalf("%v", err)
		}
		if cmd.Flags().Changed("concurrency") {
			vcfg.Concurrency = validateConcurrency
		}
		if cmd.Flags().Changed("timeout") {
			vcfg.Timeout = validateTimeout
		}

		records, err := readBookmarkFile(args[0])
		if err != nil {
			fatalf("%v", err)
		}
		if len(records) == 0 {
			fatalf("no bookmarks found in %s", args[0])
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		store, err := storage.Open(appCfg.Database)
		if err != nil {
			fatalf("%v", err)
		}
		defer store.Close()

		// Fill in cached results first so only unknown URLs get probed.
		cached := 0
		if !validateNoCache {
			cached, err = applyCache(ctx, store, appCfg, records)
			if err != nil {
				fmt.Printf("%s validation cache unavailable: %v\n", color.YellowString("!"), err)
			}
		}

		toCheck := pendingRecords(records)
		if len(toCheck) > 0 {
			v, err := validate.New(vcfg)
			if err != nil {
				fatalf("%v", err)
			}
			if _, err := v.Run(ctx, toCheck); err != nil {
				fatalf("%v", err)
			}
			copyResults(records, toCheck)

			// Persist only what was actually probed; rewriting
			// cache-served rows would refresh their timestamps and
			// keep stale results alive past the cache window.
			if err := store.SaveValidations(ctx, toCheck); err != nil {
				fmt.Printf("%s could not cache results: %v\n", color.YellowString("!"), err)
			}
		}

		printValidationReport(records, cached)

		if validateRemoveDead {
			alive := make([]bookmark.Record, 0, len(records))
			for _, rec := range records {
				if rec.Valid == nil || *rec.Valid {
					alive = append(alive, rec)
				}
			}
			dir, err := makeJobDir(args[0])
			if err != nil {
				fatalf("%v", err)
			}
			outPath, err := writeJobFile(dir, "alive.html", renderFlat(alive))
			if err != nil {
				fatalf("%v", err)
			}
			fmt.Printf("  Output: %s\n\n", color.CyanString(outPath))
		}
	},
}

// applyCache fills validation fields from the database for URLs checked
// within the cache window. Returns how many records were served from cache.
func applyCache(ctx context.Context, store *storage.Store, appCfg *config.Config, records []bookmark.Record) (int, error) {
	maxAge, err := appCfg.CacheMaxAge()
	if err != nil {
		return 0, err
	}
	if maxAge == 0 {
		return 0, nil
	}

	cached, err := store.LoadValidations(ctx, maxAge)
	if err != nil {
		return 0, err
	}

	hits := 0
	for i := range records {
		if entry, ok := cached[records[i].URL]; ok {
			valid := entry.Valid
			records[i].Valid = &valid
			records[i].StatusCode = entry.StatusCode
			hits++
		}
	}
	return hits, nil
}

// pendingRecords returns copies of the records that still need probing.
func pendingRecords(records []bookmark.Record) []bookmark.Record {
	var pending []bookmark.Record
	for i := range records {
		if records[i].Valid == nil {
			pending = append(pending, records[i])
		}
	}
	return pending
}

// copyResults merges probe results back into the full record slice by URL.
func copyResults(records, checked []bookmark.Record) {
	byURL := make(map[string]*bookmark.Record, len(checked))
	for i := range checked {
		byURL[checked[i].URL] = &checked[i]
	}
	for i := range records {
		if records[i].Valid != nil {
			continue
		}
		if res, ok := byURL[records[i].URL]; ok {
			records[i].Valid = res.Valid
			records[i].StatusCode = res.StatusCode
		}
	}
}

func printValidationReport(records []bookmark.Record, cached int) {
	alive, dead := 0, 0
	var deadRecords []bookmark.Record
	for _, rec := range records {
		if rec.Valid != nil && *rec.Valid {
			alive++
		} else {
			dead++
			deadRecords = append(deadRecords, rec)
		}
	}

	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	fmt.Printf("\n%s Checked %d bookmarks (%d from cache)\n\n", green("✓"), len(records), cached)
	fmt.Printf("  Alive: %d\n", alive)
	fmt.Printf("  Dead:  %d\n", dead)

	if len(deadRecords) > 0 {
		fmt.Println()
		for _, rec := range deadRecords {
			status := "unreachable"
			if rec.StatusCode != nil {
				status = fmt.Sprintf("HTTP %d", *rec.StatusCode)
			}
			title := rec.OriginalTitle
			if title == "" {
				title = rec.URL
			}
			fmt.Printf("  %s %s <%s> (%s)\n", red("✗"), title, rec.URL, status)
		}
	}
	fmt.Println()
}

func init() {
	validateCmd.Flags().IntVar(&validateConcurrency, "concurrency", 8,
		"maximum number of in-flight requests")
	validateCmd.Flags().DurationVar(&validateTimeout, "timeout", 10*time.Second,
		"per-request timeout")
	validateCmd.Flags().BoolVar(&validateNoCache, "no-cache", false,
		"ignore cached validation results")
	validateCmd.Flags().BoolVar(&validateRemoveDead, "remove-dead", false,
		"also write a bookmark file with dead links removed")
	rootCmd.AddCommand(validateCmd)
}
