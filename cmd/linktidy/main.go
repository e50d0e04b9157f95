// Command linktidy cleans up browser bookmark exports: it removes
// duplicates, rewrites titles into short readable labels, checks for dead
// links, and round-trips collections through a markdown listing for
// AI-assisted curation.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "linktidy",
	Short: "Clean up browser bookmark exports",
	Long: `linktidy takes the bookmark HTML file your browser exports and turns it
into something worth importing back: duplicates removed, titles rewritten
into short "domain | page" labels, dead links flagged.

Typical workflow:
  linktidy clean bookmarks.html        # dedupe + relabel, writes a job folder
  linktidy validate bookmarks.html     # probe every link, list the dead ones
  linktidy export bookmarks.html       # markdown listing for AI curation
  linktidy import-ai curated.md        # turn the curated listing back into HTML`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"path to linktidy.yaml (default: ./linktidy.yaml if present)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
