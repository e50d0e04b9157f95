// Package dedup removes duplicate bookmarks from an extracted record
// sequence.
//
// # Overview
//
// Browser bookmark exports accumulate near-identical entries: the same page
// saved with and without www, with tracking parameters, or under slightly
// different titles. This package detects those duplicates with one of four
// interchangeable strategies and resolves which record in each group
// survives.
//
// # Strategies
//
//   - exact-url: canonicalized URLs compared byte-for-byte
//   - exact-title: lower-cased trimmed labels compared byte-for-byte
//   - domain-scoped: the exact-url scan run independently per domain
//   - fuzzy: weighted URL/title/domain similarity against a threshold
//
// The fuzzy strategy is a greedy single-pass clustering, deliberately not a
// transitive closure; see groupFuzzy for the exact semantics.
//
// # Usage
//
//	cfg := dedup.DefaultConfig()
//	cfg.Strategy = dedup.StrategyFuzzy
//	cfg.SimilarityThreshold = 0.8
//	cfg.WantReport = true
//
//	result, err := dedup.Deduplicate(records, cfg)
//	if err != nil {
//	    return fmt.Errorf("dedup failed: %w", err)
//	}
//	fmt.Printf("removed %d duplicates\n", result.Stats.RemovedCount)
//	fmt.Print(result.Report)
//
// The engine is purely computational: no I/O, no shared state between
// calls, and no goroutines. The only latency concern is the O(n^2) cost of
// the fuzzy strategy on large inputs.
package dedup
