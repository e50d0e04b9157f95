package dedup

import "github.com/linktidy/linktidy/internal/bookmark"

// resolveKeep picks the surviving index of a duplicate group per the keep
// rule. Group indices arrive in ascending input order, so "ties broken
// toward the lowest index" falls out of a strict < comparison.
func resolveKeep(group []int, records []bookmark.Record, rule KeepRule) int {
	switch rule {
	case KeepFirst:
		return group[0]
	case KeepLast:
		return group[len(group)-1]
	case KeepShortestLabel:
		best := group[0]
		for _, idx := range group[1:] {
			if labelLen(records[idx]) < labelLen(records[best]) {
				best = idx
			}
		}
		return best
	case KeepLongestLabel:
		best := group[0]
		for _, idx := range group[1:] {
			if labelLen(records[idx]) > labelLen(records[best]) {
				best = idx
			}
		}
		return best
	}
	// Unreachable: config is validated at the facade.
	return group[0]
}

func labelLen(rec bookmark.Record) int {
	return len([]rune(rec.Label))
}
