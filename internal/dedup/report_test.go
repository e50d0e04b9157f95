package dedup

import (
	"strings"
	"testing"

	"github.com/linktidy/linktidy/internal/bookmark"
)

func TestBuildReportSnapshot(t *testing.T) {
	records := []bookmark.Record{
		rec("https://github.com", "GitHub", "github.com"),
		rec("https://github.com?utm_source=x", "GitHub Home", "github.com"),
	}
	cfg := Config{Strategy: StrategyFuzzy, SimilarityThreshold: 0.6, KeepRule: KeepFirst}

	got := buildReport(records, [][]int{{0, 1}}, []int{0}, cfg, 1)

	want := strings.Join([]string{
		"Duplicate Analysis Report",
		"=========================",
		"Strategy: fuzzy",
		"Similarity threshold: 0.60",
		"Keep rule: first",
		"Duplicate groups: 1",
		"Records removed: 1",
		"",
		"Group 1 (2 members, kept #0):",
		"  + [0] GitHub <https://github.com>",
		"  - [1] GitHub Home <https://github.com?utm_source=x>",
		"",
	}, "\n")

	if got != want {
		t.Errorf("report mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

// The threshold line only appears for the fuzzy strategy; it is meaningless
// for the exact strategies.
func TestBuildReportThresholdOnlyForFuzzy(t *testing.T) {
	records := []bookmark.Record{
		rec("https://a.com", "A", "a.com"),
		rec("https://a.com/", "A Again", "a.com"),
	}
	cfg := Config{Strategy: StrategyExactURL, SimilarityThreshold: 0.85, KeepRule: KeepFirst}

	report := buildReport(records, [][]int{{0, 1}}, []int{0}, cfg, 1)
	if strings.Contains(report, "threshold") {
		t.Errorf("exact-url report mentions a threshold:\n%s", report)
	}
}

func TestBuildReportEmptyLabel(t *testing.T) {
	records := []bookmark.Record{
		{URL: "https://a.com"},
		{URL: "https://a.com/"},
	}
	cfg := DefaultConfig()

	report := buildReport(records, [][]int{{0, 1}}, []int{0}, cfg, 1)
	if !strings.Contains(report, "(no label)") {
		t.Errorf("report does not mark missing labels:\n%s", report)
	}
}
