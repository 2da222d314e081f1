package domain

import (
	m "symdiff.dev/pkg/symdiff/internal/model"
)

// ComputeStats walks a classified forest and counts every node except
// Unchanged ones exactly once, by type and by impact level.
func ComputeStats(files []m.FileChange) m.Stats {
	var stats m.Stats

	for _, fc := range files {
		for _, c := range Flatten(fc.Changes) {
			countChange(&stats, c)
		}
	}

	return stats
}

func countChange(stats *m.Stats, c *m.Change) {
	switch c.Type {
	case m.Added:
		stats.Additions++
	case m.Removed:
		stats.Deletions++
	case m.Modified:
		stats.Modifications++
	case m.Moved:
		stats.Moves++
	case m.Renamed:
		stats.Renames++
	case m.Unchanged:
		return
	default:
		return
	}

	switch c.Impact {
	case m.BreakingPublicAPI:
		stats.BreakingPublic++
	case m.BreakingInternalAPI:
		stats.BreakingInternal++
	case m.FormattingOnly:
		stats.FormattingOnly++
	case m.NonBreaking:
		stats.NonBreaking++
	default:
		stats.NonBreaking++
	}
}
