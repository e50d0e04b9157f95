package dedup

import (
	"fmt"
	"time"

	"github.com/linktidy/linktidy/internal/bookmark"
)

// Result holds the outcome of one deduplication run.
type Result struct {
	// Survivors are the input records minus removed duplicates, in their
	// original relative order
	Survivors []bookmark.Record `json:"survivors"`

	// Groups are the duplicate groups found, each a list of input indices
	// in ascending order with at least two members; no index appears in
	// two groups
	Groups [][]int `json:"groups,omitempty"`

	// Kept holds, per group, the input index that survived
	Kept []int `json:"kept,omitempty"`

	// Report is the plain-text analysis report, empty unless the config
	// requested one
	Report string `json:"report,omitempty"`

	// Stats summarizes the run
	Stats Stats `json:"stats"`
}

// Stats provides metrics about a deduplication run
type Stats struct {
	// TotalRecords is the number of input records
	TotalRecords int `json:"total_records"`

	// SurvivorCount is the number of records kept
	SurvivorCount int `json:"survivor_count"`

	// RemovedCount is the number of records dropped as duplicates
	RemovedCount int `json:"removed_count"`

	// GroupCount is the number of duplicate groups found
	GroupCount int `json:"group_count"`

	// ProcessingTimeMs is the time taken for the run in milliseconds
	ProcessingTimeMs int64 `json:"processing_time_ms"`
}

// Validate checks internal consistency of a result: stats match the data,
// group members are in range, unique within their group, and disjoint
// across groups.
func (r *Result) Validate() error {
	if r.Stats.SurvivorCount != len(r.Survivors) {
		return fmt.Errorf("stats.survivor_count (%d) does not match survivors length (%d)",
			r.Stats.SurvivorCount, len(r.Survivors))
	}
	if r.Stats.GroupCount != len(r.Groups) {
		return fmt.Errorf("stats.group_count (%d) does not match groups length (%d)",
			r.Stats.GroupCount, len(r.Groups))
	}
	if len(r.Kept) != len(r.Groups) {
		return fmt.Errorf("kept length (%d) does not match groups length (%d)",
			len(r.Kept), len(r.Groups))
	}
	if r.Stats.TotalRecords != r.Stats.SurvivorCount+r.Stats.RemovedCount {
		return fmt.Errorf("stats.total_records (%d) does not equal survivors + removed (%d)",
			r.Stats.TotalRecords, r.Stats.SurvivorCount+r.Stats.RemovedCount)
	}

	seen := make(map[int]bool)
	for gi, group := range r.Groups {
		if len(group) < 2 {
			return fmt.Errorf("group %d has %d members (minimum 2)", gi, len(group))
		}
		keptInGroup := false
		for _, idx := range group {
			if idx < 0 || idx >= r.Stats.TotalRecords {
				return fmt.Errorf("group %d contains out-of-range index %d (total: %d)",
					gi, idx, r.Stats.TotalRecords)
			}
			if seen[idx] {
				return fmt.Errorf("index %d appears in more than one group", idx)
			}
			seen[idx] = true
			if idx == r.Kept[gi] {
				keptInGroup = true
			}
		}
		if !keptInGroup {
			return fmt.Errorf("kept index %d is not a member of group %d", r.Kept[gi], gi)
		}
	}
	return nil
}

// Deduplicate removes duplicate records from the input sequence according
// to the configured strategy and keep rule.
//
// The engine holds no state between calls: the same records and config
// always produce the same result, and concurrent calls are safe as long as
// each caller owns its input slice. Empty input returns an empty result
// immediately; an invalid config is rejected with a descriptive error
// rather than silently degraded, since a misread strategy or threshold
// would corrupt results invisibly.
func Deduplicate(records []bookmark.Record, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	startTime := time.Now()

	if len(records) == 0 {
		return &Result{
			Survivors: []bookmark.Record{},
			Stats: Stats{
				ProcessingTimeMs: time.Since(startTime).Milliseconds(),
			},
		}, nil
	}

	groups := groupRecords(records, cfg)

	kept := make([]int, len(groups))
	removed := make(map[int]bool)
	for gi, group := range groups {
		kept[gi] = resolveKeep(group, records, cfg.KeepRule)
		for _, idx := range group {
			if idx != kept[gi] {
				removed[idx] = true
			}
		}
	}

	// Stable filter: survivors keep their original relative order.
	survivors := make([]bookmark.Record, 0, len(records)-len(removed))
	for i, rec := range records {
		if !removed[i] {
			survivors = append(survivors, rec)
		}
	}

	result := &Result{
		Survivors: survivors,
		Groups:    groups,
		Kept:      kept,
		Stats: Stats{
			TotalRecords:     len(records),
			SurvivorCount:    len(survivors),
			RemovedCount:     len(removed),
			GroupCount:       len(groups),
			ProcessingTimeMs: time.Since(startTime).Milliseconds(),
		},
	}

	// The report is built from the same group data used for filtering,
	// never recomputed, so report and result cannot diverge.
	if cfg.WantReport {
		result.Report = buildReport(records, groups, kept, cfg, len(removed))
	}

	return result, nil
}
