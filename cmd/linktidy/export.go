package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/linktidy/linktidy/internal/aiformat"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export <bookmarks.html>",
	Short: "Export bookmarks as a markdown listing",
	Long: `Convert a bookmark export into a compact markdown listing, one
"- [label](url)" line per bookmark under its "## Folder" heading.

Paste the listing into an AI chat for curation, then bring the edited
version back with "linktidy import-ai".

Example:
  linktidy export bookmarks.html                 # prints to stdout
  linktidy export bookmarks.html -o listing.md`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		records, err := readBookmarkFile(args[0])
		if err != nil {
			fatalf("%v", err)
		}
		if len(records) == 0 {
			fatalf("no bookmarks found in %s", args[0])
		}

		var b strings.Builder
		if err := aiformat.Export(&b, records); err != nil {
			fatalf("%v", err)
		}

		if exportOutput == "" {
			fmt.Print(b.String())
			return
		}
		if err := os.WriteFile(exportOutput, []byte(b.String()), 0644); err != nil {
			fatalf("writing %s: %v", exportOutput, err)
		}
		fmt.Printf("\n%s Exported %d bookmarks to %s\n\n",
			color.GreenString("✓"), len(records), color.CyanString(exportOutput))
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "",
		"write the listing to a file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}
