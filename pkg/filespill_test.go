package pkg

import (
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "symdiff.dev/pkg/symdiff/internal/model"
)

func newTestSpill[T any](t *testing.T) FileSpill[T] {
	t.Helper()

	file, err := os.CreateTemp(t.TempDir(), SpillFilePattern)
	require.NoError(t, err)

	return NewFileSpill[T](file)
}

func TestFileSpillAppendAndRange(t *testing.T) {
	spill := newTestSpill[m.FileChange](t)
	defer spill.Close()

	fcs := []m.FileChange{
		{Path: "a.go", Changes: []*m.Change{{Type: m.Added, Kind: m.KindFunction, NewName: "A", AppliesTo: m.AllVariants()}}},
		{Path: "b.go", Changes: []*m.Change{{Type: m.Removed, Kind: m.KindMethod, OldName: "B", AppliesTo: m.SomeVariants("net8")}}},
	}

	for _, fc := range fcs {
		require.NoError(t, spill.Append(fc))
	}

	assert.Equal(t, uint64(2), spill.Len())

	var got []m.FileChange
	err := spill.Range(func(index uint64, item m.FileChange) error {
		assert.Equal(t, uint64(len(got)), index)
		got = append(got, item)
		return nil
	})
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "a.go", got[0].Path)
	assert.Equal(t, m.AppliesToAll, got[0].Changes[0].AppliesTo.State())
	assert.Equal(t, []string{"net8"}, got[1].Changes[0].AppliesTo.Variants())
}

func TestFileSpillEmptyRange(t *testing.T) {
	spill := newTestSpill[int](t)
	defer spill.Close()

	called := false
	require.NoError(t, spill.Range(func(_ uint64, _ int) error {
		called = true
		return nil
	}))
	assert.False(t, called)
}

func TestFileSpillRangeCallbackError(t *testing.T) {
	spill := newTestSpill[int](t)
	defer spill.Close()

	require.NoError(t, spill.Append(1))
	require.NoError(t, spill.Append(2))

	wantErr := errors.New("stop")
	err := spill.Range(func(_ uint64, _ int) error { return wantErr })
	require.ErrorIs(t, err, wantErr)
}

func TestFileSpillConcurrentAppend(t *testing.T) {
	spill := newTestSpill[int](t)
	defer spill.Close()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				assert.NoError(t, spill.Append(j))
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(200), spill.Len())
}

func TestFileSpillCloseRemovesFile(t *testing.T) {
	spill := newTestSpill[int](t)

	path := spill.Path()
	_, err := os.Stat(path)
	require.NoError(t, err)

	require.NoError(t, spill.Close())

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Closing twice is harmless.
	assert.NoError(t, spill.Close())
}
