package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	m "symdiff.dev/pkg/symdiff/internal/model"
)

func TestComputeStatsCountsByTypeAndImpact(t *testing.T) {
	files := []m.FileChange{{
		Path: "x.go",
		Changes: []*m.Change{
			{Type: m.Added, Kind: m.KindFunction, Impact: m.NonBreaking},
			{Type: m.Removed, Kind: m.KindFunction, Impact: m.BreakingPublicAPI},
			{Type: m.Modified, Kind: m.KindMethod, Impact: m.BreakingInternalAPI},
			{Type: m.Moved, Kind: m.KindMethod, Impact: m.NonBreaking},
			{Type: m.Renamed, Kind: m.KindVar, Impact: m.FormattingOnly},
		},
	}}

	stats := ComputeStats(files)

	assert.Equal(t, 1, stats.Additions)
	assert.Equal(t, 1, stats.Deletions)
	assert.Equal(t, 1, stats.Modifications)
	assert.Equal(t, 1, stats.Moves)
	assert.Equal(t, 1, stats.Renames)
	assert.Equal(t, 1, stats.BreakingPublic)
	assert.Equal(t, 1, stats.BreakingInternal)
	assert.Equal(t, 2, stats.NonBreaking)
	assert.Equal(t, 1, stats.FormattingOnly)
	assert.Equal(t, 5, stats.Total())
	assert.True(t, stats.HasChanges())
}

func TestComputeStatsCountsNestedChanges(t *testing.T) {
	root := &m.Change{Type: m.Modified, Kind: m.KindClass, Impact: m.NonBreaking}
	root.Children = []*m.Change{
		{Type: m.Added, Kind: m.KindMethod, Impact: m.NonBreaking},
		{Type: m.Unchanged, Kind: m.KindMethod},
	}

	stats := ComputeStats([]m.FileChange{{Path: "y.go", Changes: []*m.Change{root}}})

	assert.Equal(t, 1, stats.Modifications)
	assert.Equal(t, 1, stats.Additions)
	assert.Equal(t, 2, stats.Total())
}

func TestComputeStatsSkipsUnchanged(t *testing.T) {
	stats := ComputeStats([]m.FileChange{{
		Path:    "z.go",
		Changes: []*m.Change{{Type: m.Unchanged, Kind: m.KindFunction}},
	}})

	assert.False(t, stats.HasChanges())
	assert.Equal(t, 0, stats.Total())
}

// A change without a classifier stamp still counts, bucketed non-breaking.
func TestComputeStatsUnstampedImpact(t *testing.T) {
	stats := ComputeStats([]m.FileChange{{
		Path:    "w.go",
		Changes: []*m.Change{{Type: m.Added, Kind: m.KindFunction}},
	}})

	assert.Equal(t, 1, stats.Additions)
	assert.Equal(t, 1, stats.NonBreaking)
}

func TestStatsAdd(t *testing.T) {
	a := m.Stats{Additions: 1, BreakingPublic: 1}
	b := m.Stats{Additions: 2, Deletions: 1, NonBreaking: 2}

	a.Add(b)

	assert.Equal(t, 3, a.Additions)
	assert.Equal(t, 1, a.Deletions)
	assert.Equal(t, 1, a.BreakingPublic)
	assert.Equal(t, 2, a.NonBreaking)
	assert.Equal(t, 4, a.Total())
}
