package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "symdiff.dev/pkg/symdiff/internal/model"
)

func TestDiffCmd_PassesArguments(t *testing.T) {
	fake := &fakeWorkflow{result: emptyResult()}
	cmd, _, _ := newTestRoot(t, fake)

	cmd.SetArgs([]string{"diff", "v1", "v2", "--variants", "net8,net10", "--parallel", "3"})
	require.NoError(t, cmd.Execute())

	require.True(t, fake.compareCalled)
	assert.Equal(t, m.Path("v1"), fake.compareArgs.OldPath)
	assert.Equal(t, m.Path("v2"), fake.compareArgs.NewPath)
	assert.Equal(t, []string{"net8", "net10"}, fake.compareArgs.Variants)
	assert.Equal(t, 3, fake.compareArgs.Threads)
}

func TestDiffCmd_DefaultsToTableUI(t *testing.T) {
	fake := &fakeWorkflow{result: emptyResult()}
	cmd, _, fakeOut := newTestRoot(t, fake)

	cmd.SetArgs([]string{"diff", "v1", "v2"})
	require.NoError(t, cmd.Execute())

	require.Len(t, fakeOut.displayed, 1)
	assert.Equal(t, "old", fakeOut.displayed[0].OldPath)
}

func TestDiffCmd_YAMLFormat(t *testing.T) {
	fake := &fakeWorkflow{result: emptyResult()}
	cmd, out, fakeOut := newTestRoot(t, fake)

	cmd.SetArgs([]string{"diff", "v1", "v2", "--format", "yaml"})
	require.NoError(t, cmd.Execute())

	assert.Empty(t, fakeOut.displayed)
	assert.Contains(t, out.String(), "old_path: old")
	assert.Contains(t, out.String(), "variants: []")
}

func TestDiffCmd_JSONFormat(t *testing.T) {
	fake := &fakeWorkflow{result: emptyResult()}
	cmd, out, _ := newTestRoot(t, fake)

	cmd.SetArgs([]string{"diff", "v1", "v2", "--format", "json"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), `"old_path": "old"`)
}

func TestDiffCmd_UnknownFormat(t *testing.T) {
	fake := &fakeWorkflow{result: emptyResult()}
	cmd, _, _ := newTestRoot(t, fake)

	cmd.SetArgs([]string{"diff", "v1", "v2", "--format", "xml"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestDiffCmd_ExitCodeFlag(t *testing.T) {
	result := emptyResult()
	result.Stats = m.Stats{Additions: 1, NonBreaking: 1}

	t.Run("changes found", func(t *testing.T) {
		fake := &fakeWorkflow{result: result}
		cmd, _, _ := newTestRoot(t, fake)

		cmd.SetArgs([]string{"diff", "v1", "v2", "--exit-code"})
		err := cmd.Execute()
		require.ErrorIs(t, err, errChangesDetected)
	})

	t.Run("no changes", func(t *testing.T) {
		fake := &fakeWorkflow{result: emptyResult()}
		cmd, _, _ := newTestRoot(t, fake)

		cmd.SetArgs([]string{"diff", "v1", "v2", "--exit-code"})
		require.NoError(t, cmd.Execute())
	})
}

func TestDiffCmd_SavesReportWithOutputFlag(t *testing.T) {
	fake := &fakeWorkflow{result: emptyResult()}
	cmd, _, _ := newTestRoot(t, fake)

	target := filepath.Join(t.TempDir(), "report.yaml")

	cmd.SetArgs([]string{"diff", "v1", "v2", "--output", target})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "old_path: old")
}

func TestDiffCmd_RequiresTwoArguments(t *testing.T) {
	fake := &fakeWorkflow{result: emptyResult()}
	cmd, _, _ := newTestRoot(t, fake)

	cmd.SetArgs([]string{"diff", "onlyone"})
	assert.Error(t, cmd.Execute())
	assert.False(t, fake.compareCalled)
}
