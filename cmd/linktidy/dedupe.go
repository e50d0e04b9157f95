package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/linktidy/linktidy/internal/config"
	"github.com/linktidy/linktidy/internal/dedup"
	"github.com/linktidy/linktidy/internal/storage"
)

var (
	dedupeStrategy  string
	dedupeThreshold float64
	dedupeKeep      string
	dedupeReport    bool
	dedupeNoDB      bool
	dedupeDryRun    bool
	dedupeOutput    string
)

var dedupeCmd = &cobra.Command{
	Use:   "dedupe <bookmarks.html>",
	Short: "Remove duplicate bookmarks from an export",
	Long: `Remove duplicate bookmarks and write the survivors as a new bookmark file.

Strategies:
  exact-url      same URL after canonicalization (default)
  exact-title    same title, case-insensitive
  domain-scoped  exact-url, but only within the same domain
  fuzzy          weighted URL/title/domain similarity above --threshold

Keep rules decide which member of a duplicate group survives:
  first, last, shortest-label, longest-label

Example:
  linktidy dedupe bookmarks.html
  linktidy dedupe bookmarks.html --strategy=fuzzy --threshold=0.7 --report`,
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

		result, err := dedup.Deduplicate(records, cfg)
		if err != nil {
			fatalf("%v", err)
		}

		if dedupeDryRun {
			printDedupeSummary(result, "(dry run, nothing written)")
			if cfg.WantReport {
				fmt.Println(result.Report)
			}
			return
		}

		var outPath string
		if dedupeOutput != "" {
			outPath = dedupeOutput
			if err := os.WriteFile(outPath, []byte(renderFlat(result.Survivors)), 0644); err != nil {
				fatalf("writing %s: %v", outPath, err)
			}
		} else {
			dir, err := makeJobDir(args[0])
			if err != nil {
				fatalf("%v", err)
			}
			outPath, err = writeJobFile(dir, "deduped.html", renderFlat(result.Survivors))
			if err != nil {
				fatalf("%v", err)
			}
			if cfg.WantReport {
				if _, err := writeJobFile(dir, "report.txt", result.Report); err != nil {
					fatalf("%v", err)
				}
			}
		}

		if !dedupeNoDB {
			if err := recordRun(appCfg, cfg, result); err != nil {
				// The cleanup itself succeeded; a failed history write
				// is only worth a warning.
				fmt.Printf("%s could not record run: %v\n", color.YellowString("!"), err)
			}
		}

		printDedupeSummary(result, color.CyanString(outPath))
	},
}

func printDedupeSummary(result *dedup.Result, output string) {
	green := color.New(color.FgGreen).SprintFunc()
	fmt.Printf("\n%s Deduplicated %d bookmarks\n\n", green("✓"), result.Stats.TotalRecords)
	fmt.Printf("  Duplicate groups: %d\n", result.Stats.GroupCount)
	fmt.Printf("  Removed: %d\n", result.Stats.RemovedCount)
	fmt.Printf("  Survivors: %d\n", result.Stats.SurvivorCount)
	fmt.Printf("  Output: %s\n\n", output)
}

// dedupeConfig layers CLI flags over the YAML config.
func dedupeConfig(cmd *cobra.Command, appCfg *config.Config) (dedup.Config, error) {
	cfg, err := appCfg.DedupSettings()
	if err != nil {
		return dedup.Config{}, err
	}
	if cmd.Flags().Changed("strategy") {
		cfg.Strategy = dedup.Strategy(dedupeStrategy)
	}
	if cmd.Flags().Changed("threshold") {
		cfg.SimilarityThreshold = dedupeThreshold
	}
	if cmd.Flags().Changed("keep") {
		cfg.KeepRule = dedup.KeepRule(dedupeKeep)
	}
	if cmd.Flags().Changed("report") {
		cfg.WantReport = dedupeReport
	}
	if err := cfg.Validate(); err != nil {
		return dedup.Config{}, err
	}
	return cfg, nil
}

// recordRun appends the run to the history database.
func recordRun(appCfg *config.Config, cfg dedup.Config, result *dedup.Result) error {
	store, err := storage.Open(appCfg.Database)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.SaveRun(context.Background(), storage.Run{
		ID:           uuid.NewString(),
		Strategy:     string(cfg.Strategy),
		KeepRule:     string(cfg.KeepRule),
		TotalRecords: result.Stats.TotalRecords,
		RemovedCount: result.Stats.RemovedCount,
		GroupCount:   result.Stats.GroupCount,
	})
}

func init() {
	dedupeCmd.Flags().StringVar(&dedupeStrategy, "strategy", "exact-url",
		"grouping strategy: exact-url, exact-title, domain-scoped, fuzzy")
	dedupeCmd.Flags().Float64Var(&dedupeThreshold, "threshold", 0.85,
		"fuzzy similarity threshold in [0, 1]")
	dedupeCmd.Flags().StringVar(&dedupeKeep, "keep", "first",
		"which duplicate survives: first, last, shortest-label, longest-label")
	dedupeCmd.Flags().BoolVar(&dedupeReport, "report", false,
		"write a duplicate analysis report")
	dedupeCmd.Flags().BoolVar(&dedupeNoDB, "no-db", false,
		"skip recording the run in the history database")
	dedupeCmd.Flags().BoolVar(&dedupeDryRun, "dry-run", false,
		"analyze only, write nothing")
	dedupeCmd.Flags().StringVarP(&dedupeOutput, "output", "o", "",
		"write the deduped file here instead of a job folder")
	rootCmd.AddCommand(dedupeCmd)
}
