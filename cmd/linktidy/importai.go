package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/linktidy/linktidy/internal/aiformat"
	"github.com/linktidy/linktidy/internal/bookmark"
	"github.com/linktidy/linktidy/internal/netscape"
)

var importOutput string

var importAICmd = &cobra.Command{
	Use:   "import-ai <listing.md> [original.html]",
	Short: "Turn a curated markdown listing back into a bookmark file",
	Long: `Parse a markdown listing (as produced by "linktidy export", possibly
edited by hand or by an AI) and render it as a bookmark HTML file any
browser can import. Commentary lines around the listing are ignored.

When the original export is given as a second argument, icons and add
dates are recovered from it by URL.

Example:
  linktidy import-ai curated.md
  linktidy import-ai curated.md bookmarks.html -o organized.html`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		data, err := os.ReadFile(args[0])
		if err != nil {
			fatalf("reading %s: %v", args[0], err)
		}

		records, err := aiformat.Import(strings.NewReader(string(data)))
		if err != nil {
			fatalf("%v", err)
		}
		if len(records) == 0 {
			fatalf("no bookmark lines found in %s", args[0])
		}

		if len(args) == 2 {
			original, err := readBookmarkFile(args[1])
			if err != nil {
				fatalf("%v", err)
			}
			mergeAttrs(records, original)
		}

		folders := make(map[string][]bookmark.Record)
		for _, rec := range records {
			folders[rec.Folder] = append(folders[rec.Folder], rec)
		}
		html := netscape.Render(folders, "Bookmarks")

		outPath := importOutput
		if outPath == "" {
			base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			outPath = base + ".html"
		}
		if err := os.WriteFile(outPath, []byte(html), 0644); err != nil {
			fatalf("writing %s: %v", outPath, err)
		}

		fmt.Printf("\n%s Imported %d bookmarks to %s\n\n",
			color.GreenString("✓"), len(records), color.CyanString(outPath))
	},
}

// mergeAttrs copies icons and add dates from the original export onto the
// imported records, matched by URL.
func mergeAttrs(records, original []bookmark.Record) {
	byURL := make(map[string]*bookmark.Record, len(original))
	for i := range original {
		byURL[original[i].URL] = &original[i]
	}
	for i := range records {
		orig, ok := byURL[records[i].URL]
		if !ok {
			continue
		}
		records[i].Icon = orig.Icon
		records[i].AddDate = orig.AddDate
	}
}

func init() {
	importAICmd.Flags().StringVarP(&importOutput, "output", "o", "",
		"output bookmark file (default: <listing>.html)")
	rootCmd.AddCommand(importAICmd)
}
