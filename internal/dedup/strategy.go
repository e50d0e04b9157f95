package dedup

import (
	"strings"

	"github.com/linktidy/linktidy/internal/bookmark"
)

// Fuzzy strategy component weights. URL identity dominates, title token
// overlap carries most of the rest, and a shared domain breaks near-misses.
const (
	fuzzyURLWeight    = 0.5
	fuzzyTitleWeight  = 0.3
	fuzzyDomainWeight = 0.2
)

// groupRecords dispatches to the grouping strategy named in cfg. Every
// strategy returns groups of input indices with at least two members each,
// disjoint across groups, anchors in input order.
func groupRecords(records []bookmark.Record, cfg Config) [][]int {
	switch cfg.Strategy {
	case StrategyExactURL:
		return groupExactURL(records, allIndices(len(records)))
	case StrategyExactTitle:
		return groupExactTitle(records)
	case StrategyDomainScoped:
		return groupDomainScoped(records)
	case StrategyFuzzy:
		return groupFuzzy(records, cfg.SimilarityThreshold)
	}
	// Unreachable: config is validated at the facade.
	return nil
}

func allIndices(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

// groupExactURL runs a single left-to-right scan over the given record
// indices, grouping records whose canonicalized URLs are byte-equal. The
// first record seen for a canonical URL anchors its group.
func groupExactURL(records []bookmark.Record, indices []int) [][]int {
	anchors := make(map[string]int) // canonical URL -> position in groups
	var groups [][]int

	for _, i := range indices {
		key := CanonicalURL(records[i].URL)
		if pos, seen := anchors[key]; seen {
			groups[pos] = append(groups[pos], i)
		} else {
			anchors[key] = len(groups)
			groups = append(groups, []int{i})
		}
	}

	return dropSingletons(groups)
}

// groupExactTitle runs the same scan keyed on the lower-cased, trimmed
// label. Records with empty labels never group: an absent title is not
// evidence of duplication.
func groupExactTitle(records []bookmark.Record) [][]int {
	anchors := make(map[string]int)
	var groups [][]int

	for i, rec := range records {
		key := strings.ToLower(strings.TrimSpace(rec.Label))
		if key == "" {
			continue
		}
		if pos, seen := anchors[key]; seen {
			groups[pos] = append(groups[pos], i)
		} else {
			anchors[key] = len(groups)
			groups = append(groups, []int{i})
		}
	}

	return dropSingletons(groups)
}

// groupDomainScoped partitions records by domain and runs the exact-url
// scan independently within each partition. Canonical URLs never match
// across domains, even if the strings coincide; the domain field is taken
// as ground truth. Records with no domain form one shared partition.
func groupDomainScoped(records []bookmark.Record) [][]int {
	partitions := make(map[string][]int)
	var order []string
	for i, rec := range records {
		if _, seen := partitions[rec.Domain]; !seen {
			order = append(order, rec.Domain)
		}
		partitions[rec.Domain] = append(partitions[rec.Domain], i)
	}

	var groups [][]int
	for _, domain := range order {
		indices := partitions[domain]
		if len(indices) <= 1 {
			continue
		}
		groups = append(groups, groupExactURL(records, indices)...)
	}
	return groups
}

// groupFuzzy clusters records by a weighted similarity score. For each
// unprocessed record in input order, every later unprocessed record scoring
// at or above the threshold joins its group and is marked processed, so no
// record ever lands in two groups.
//
// This is a greedy, order-dependent, single-pass clustering, not a
// transitive closure: two records each similar to a common third are only
// grouped together if they are directly compared while both are still
// unprocessed. That trade of recall for simplicity and determinism is
// intentional.
func groupFuzzy(records []bookmark.Record, threshold float64) [][]int {
	n := len(records)
	processed := make([]bool, n)
	canonical := make([]string, n)
	for i, rec := range records {
		canonical[i] = CanonicalURL(rec.URL)
	}

	var groups [][]int
	for i := 0; i < n; i++ {
		if processed[i] {
			continue
		}
		group := []int{i}
		for j := i + 1; j < n; j++ {
			if processed[j] {
				continue
			}
			if fuzzyScore(records[i], records[j], canonical[i], canonical[j]) >= threshold {
				group = append(group, j)
				processed[j] = true
			}
		}
		processed[i] = true
		if len(group) >= 2 {
			groups = append(groups, group)
		}
	}
	return groups
}

// fuzzyScore combines URL identity, title token overlap, and domain
// identity into one weighted similarity score in [0.0, 1.0].
func fuzzyScore(a, b bookmark.Record, canonA, canonB string) float64 {
	urlSim := 0.0
	if canonA == canonB {
		urlSim = 1.0
	}
	titleSim := TokenSimilarity(a.Label, b.Label)
	domainSim := 0.0
	if a.Domain == b.Domain {
		domainSim = 1.0
	}
	return fuzzyURLWeight*urlSim + fuzzyTitleWeight*titleSim + fuzzyDomainWeight*domainSim
}

func dropSingletons(groups [][]int) [][]int {
	var out [][]int
	for _, g := range groups {
		if len(g) >= 2 {
			out = append(out, g)
		}
	}
	return out
}
