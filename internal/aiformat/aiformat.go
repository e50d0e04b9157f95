// Package aiformat converts bookmark collections to and from a compact
// markdown listing. The format is meant to be pasted into a chat with an
// LLM for manual curation and then re-imported: one "## Folder" heading
// per folder, one "- [label](url)" line per bookmark.
package aiformat

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/linktidy/linktidy/internal/bookmark"
)

const rootHeading = "(no folder)"

// Export writes the records grouped by folder. Folders appear in sorted
// order with unfiled records first, so the same collection always produces
// the same text.
func Export(w io.Writer, records []bookmark.Record) error {
	folders := make(map[string][]bookmark.Record)
	for _, rec := range records {
		folders[rec.Folder] = append(folders[rec.Folder], rec)
	}

	paths := make([]string, 0, len(folders))
	for path := range folders {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for i, path := range paths {
		heading := path
		if heading == "" {
			heading = rootHeading
		}
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "## %s\n", heading); err != nil {
			return err
		}
		for _, rec := range folders[path] {
			label := rec.Label
			if label == "" {
				label = rec.CleanTitle
			}
			if _, err := fmt.Fprintf(w, "- [%s](%s)\n", label, rec.URL); err != nil {
				return err
			}
		}
	}
	return nil
}

var (
	headingPattern = regexp.MustCompile(`^#{1,6}\s+(.+?)\s*$`)
	linkPattern    = regexp.MustCompile(`^[-*]\s*\[(.*)\]\((.+)\)\s*$`)
)

// Import parses the markdown listing back into records. Heading lines set
// the folder for the links that follow; anything that is neither a heading
// nor a link line is ignored, which lets the text survive an LLM adding
// commentary around it.
func Import(r io.Reader) ([]bookmark.Record, error) {
	var records []bookmark.Record
	folder := ""

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if m := headingPattern.FindStringSubmatch(line); m != nil {
			folder = m[1]
			if folder == rootHeading {
				folder = ""
			}
			continue
		}
		m := linkPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		label := strings.TrimSpace(m[1])
		url := strings.TrimSpace(m[2])
		if url == "" {
			continue
		}
		records = append(records, bookmark.Record{
			URL:           url,
			Label:         label,
			OriginalTitle: label,
			CleanTitle:    bookmark.CleanTitle(label),
			Domain:        bookmark.ExtractDomain(url),
			Folder:        folder,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading bookmark listing: %w", err)
	}
	return records, nil
}
