package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"symdiff.dev/pkg/symdiff/internal/domain"
	m "symdiff.dev/pkg/symdiff/internal/model"
)

// fakeWorkflow records the arguments commands pass through and returns a
// canned result.
type fakeWorkflow struct {
	compareArgs   domain.CompareArgs
	compareCalled bool
	mergeArgs     domain.MergeReportsArgs
	mergeCalled   bool
	result        m.DiffResult
	err           error
}

func (f *fakeWorkflow) Compare(_ context.Context, args domain.CompareArgs) (m.DiffResult, error) {
	f.compareCalled = true
	f.compareArgs = args

	return f.result, f.err
}

func (f *fakeWorkflow) MergeReports(_ context.Context, args domain.MergeReportsArgs) (m.DiffResult, error) {
	f.mergeCalled = true
	f.mergeArgs = args

	return f.result, f.err
}

// fakeUI records displayed results.
type fakeUI struct {
	displayed []m.DiffResult
}

func (f *fakeUI) DisplayResult(_ context.Context, result m.DiffResult) error {
	f.displayed = append(f.displayed, result)
	return nil
}

// swapWorkflow installs a fake workflow and UI for one test.
func swapWorkflow(t *testing.T, fake *fakeWorkflow) *fakeUI {
	t.Helper()

	originalWorkflow := workflow
	originalUI := ui

	fakeOut := &fakeUI{}
	workflow = fake
	ui = fakeOut

	t.Cleanup(func() {
		workflow = originalWorkflow
		ui = originalUI
	})

	return fakeOut
}

// newTestRoot builds a root command with every subcommand re-created, so
// each test starts from default flag values in viper's bindings.
func newTestRoot(t *testing.T, fake *fakeWorkflow) (*cobra.Command, *bytes.Buffer, *fakeUI) {
	t.Helper()

	fakeOut := swapWorkflow(t, fake)

	cmd := newRootCmd()
	cmd.AddCommand(newDiffCmd(), newMergeCmd(), newViewCmd(), newInitCmd(), newVersionCmd())

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})

	return cmd, &out, fakeOut
}

func emptyResult() m.DiffResult {
	return m.DiffResult{OldPath: "old", NewPath: "new", Mode: m.ModeFile, Variants: []string{}}
}

func TestParsePaths(t *testing.T) {
	assert.Empty(t, parsePaths(nil))
	assert.Equal(t, []m.Path{"a", "b"}, parsePaths([]string{"a", "b"}))
}

func TestRootCmdShowsHelp(t *testing.T) {
	cmd := newRootCmd()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "symdiff")
}
