package controller

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "symdiff.dev/pkg/symdiff/internal/model"
)

// SimpleUI implements UI using the cobra command's output stream.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayResult prints a per-file summary table followed by the change
// detail listing.
func (s *SimpleUI) DisplayResult(ctx context.Context, result m.DiffResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.cmd.Print(RenderReport(result))

	return nil
}

// RenderReport builds the plain-text report shared by the simple UI and
// the interactive viewer.
func RenderReport(result m.DiffResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Comparing %s -> %s (%s)\n", result.OldPath, result.NewPath, result.Mode)

	if len(result.Variants) > 0 {
		fmt.Fprintf(&b, "Variants: %s\n", strings.Join(result.Variants, ", "))
	}

	b.WriteString("\n")

	if !result.Stats.HasChanges() {
		b.WriteString("No changes detected.\n")
		return b.String()
	}

	b.WriteString(renderSummaryTable(result))
	b.WriteString("\n")
	b.WriteString(renderImpactTotals(result.Stats))
	b.WriteString("\n")

	for _, fc := range result.Files {
		fmt.Fprintf(&b, "%s:\n", fc.Path)
		renderChanges(&b, fc.Changes, 1)
		b.WriteString("\n")
	}

	return b.String()
}

func renderSummaryTable(result m.DiffResult) string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Path", "Added", "Removed", "Modified", "Moved", "Renamed"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
	})

	var totals m.Stats

	for _, fc := range result.Files {
		stats := fileStats(fc)
		totals.Add(stats)

		table.Append([]string{
			fc.Path,
			fmt.Sprintf("%d", stats.Additions),
			fmt.Sprintf("%d", stats.Deletions),
			fmt.Sprintf("%d", stats.Modifications),
			fmt.Sprintf("%d", stats.Moves),
			fmt.Sprintf("%d", stats.Renames),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(result.Files)),
		fmt.Sprintf("%d", totals.Additions),
		fmt.Sprintf("%d", totals.Deletions),
		fmt.Sprintf("%d", totals.Modifications),
		fmt.Sprintf("%d", totals.Moves),
		fmt.Sprintf("%d", totals.Renames),
	})

	table.Render()

	return buf.String()
}

func renderImpactTotals(stats m.Stats) string {
	return fmt.Sprintf(
		"Impact: %d breaking public, %d breaking internal, %d non-breaking, %d formatting-only\n",
		stats.BreakingPublic, stats.BreakingInternal, stats.NonBreaking, stats.FormattingOnly,
	)
}

func renderChanges(b *strings.Builder, changes []*m.Change, depth int) {
	indent := strings.Repeat("  ", depth)

	for _, c := range changes {
		if c.Type == m.Unchanged {
			continue
		}

		fmt.Fprintf(b, "%s[%s] %s %s %s%s%s\n",
			indent, c.Impact, c.Type, c.Kind, changeName(c), changeSpan(c), changeVariants(c))

		for _, caveat := range c.Caveats {
			fmt.Fprintf(b, "%s    caveat: %s\n", indent, caveat)
		}

		for _, issue := range c.WhitespaceIssues {
			fmt.Fprintf(b, "%s    whitespace: %s\n", indent, issue)
		}

		renderChanges(b, c.Children, depth+1)
	}
}

func changeName(c *m.Change) string {
	if c.Type == m.Renamed && c.OldName != "" && c.NewName != "" {
		return c.OldName + " -> " + c.NewName
	}

	if name := c.Name(); name != "" {
		return name
	}

	return "(lines)"
}

func changeSpan(c *m.Change) string {
	switch {
	case c.OldLocation != nil && c.NewLocation != nil:
		return fmt.Sprintf(" (old:%d new:%d)", c.OldLocation.StartLine, c.NewLocation.StartLine)
	case c.NewLocation != nil:
		return fmt.Sprintf(" (new:%d)", c.NewLocation.StartLine)
	case c.OldLocation != nil:
		return fmt.Sprintf(" (old:%d)", c.OldLocation.StartLine)
	default:
		return ""
	}
}

func changeVariants(c *m.Change) string {
	if text := formatApplicability(c.AppliesTo); text != "" {
		return " [" + text + "]"
	}

	return ""
}

func fileStats(fc m.FileChange) m.Stats {
	var stats m.Stats

	var walk func([]*m.Change)
	walk = func(changes []*m.Change) {
		for _, c := range changes {
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
			}

			walk(c.Children)
		}
	}

	walk(fc.Changes)

	return stats
}
