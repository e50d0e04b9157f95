package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/linktidy/linktidy/internal/bookmark"
	"github.com/linktidy/linktidy/internal/config"
	"github.com/linktidy/linktidy/internal/netscape"
)

// loadConfig reads the YAML config, falling back to defaults when the
// file is absent.
func loadConfig() (*config.Config, error) {
	return config.Load(configPath)
}

// readBookmarkFile parses a browser bookmark export into records.
func readBookmarkFile(path string) ([]bookmark.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	records, err := netscape.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return records, nil
}

// makeJobDir creates a timestamped output directory next to the input
// file so successive runs never clobber each other.
func makeJobDir(inputPath string) (string, error) {
	stamp := time.Now().Format("20060102_150405")
	dir := filepath.Join(filepath.Dir(inputPath), fmt.Sprintf("job_%s", stamp))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	return dir, nil
}

// writeJobFile writes one output artifact into the job directory.
func writeJobFile(dir, name, content string) (string, error) {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// renderFlat renders records as a bookmark file, grouped back into their
// original folders.
func renderFlat(records []bookmark.Record) string {
	folders := make(map[string][]bookmark.Record)
	for _, rec := range records {
		folders[rec.Folder] = append(folders[rec.Folder], rec)
	}
	return netscape.Render(folders, "Bookmarks")
}

// fatalf prints an error and exits, matching cobra's error prefix.
func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
