package dedup

import (
	"fmt"
	"strings"

	"github.com/linktidy/linktidy/internal/bookmark"
)

// buildReport renders a human-readable duplicate analysis report from the
// exact group data used for filtering. Pure formatting, no side effects;
// identical inputs always produce identical text, so the output is safe to
// snapshot in tests.
func buildReport(records []bookmark.Record, groups [][]int, kept []int, cfg Config, removed int) string {
	var b strings.Builder

	b.WriteString("Duplicate Analysis Report\n")
	b.WriteString("=========================\n")
	fmt.Fprintf(&b, "Strategy: %s\n", cfg.Strategy)
	if cfg.Strategy == StrategyFuzzy {
		fmt.Fprintf(&b, "Similarity threshold: %.2f\n", cfg.SimilarityThreshold)
	}
	fmt.Fprintf(&b, "Keep rule: %s\n", cfg.KeepRule)
	fmt.Fprintf(&b, "Duplicate groups: %d\n", len(groups))
	fmt.Fprintf(&b, "Records removed: %d\n", removed)

	for gi, group := range groups {
		fmt.Fprintf(&b, "\nGroup %d (%d members, kept #%d):\n", gi+1, len(group), kept[gi])
		for _, idx := range group {
			marker := "-"
			if idx == kept[gi] {
				marker = "+"
			}
			fmt.Fprintf(&b, "  %s [%d] %s\n", marker, idx, describeRecord(records[idx]))
		}
	}

	return b.String()
}

func describeRecord(rec bookmark.Record) string {
	label := rec.Label
	if label == "" {
		label = "(no label)"
	}
	if rec.URL == "" {
		return label
	}
	return fmt.Sprintf("%s <%s>", label, rec.URL)
}
