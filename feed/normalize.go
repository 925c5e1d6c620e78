package feed

import (
	"sort"
	"time"

	"snapfix/types"
)

// Normalize returns a new slice ordered newest first. Records with equal
// timestamps keep their input order; unparsable timestamps sort last.
func Normalize(records []types.AnalysisRecord) []types.AnalysisRecord {
	type keyed struct {
		rec types.AnalysisRecord
		at  time.Time
	}
	items := make([]keyed, len(records))
	for i, r := range records {
		items[i] = keyed{rec: r, at: r.Time()}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].at.After(items[j].at)
	})

	out := make([]types.AnalysisRecord, len(items))
	for i, item := range items {
		out[i] = item.rec
	}
	return out
}
