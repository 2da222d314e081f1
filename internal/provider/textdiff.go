package provider

import (
	"context"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	m "symdiff.dev/pkg/symdiff/internal/model"
)

// TextProvider diffs any file line by line. It reports Line-kind changes
// with Local visibility, which classify as non-breaking; its value is the
// whitespace analysis and the formatting-only short-circuit.
type TextProvider struct{}

// NewTextProvider constructs a TextProvider.
func NewTextProvider() *TextProvider {
	return &TextProvider{}
}

// Name implements domain.Provider.
func (p *TextProvider) Name() string {
	return "text"
}

// Supports implements domain.Provider. The text provider is the fallback
// for every path.
func (p *TextProvider) Supports(_ string) bool {
	return true
}

// Changes implements domain.Provider.
func (p *TextProvider) Changes(ctx context.Context, _ string, pair m.FilePair, oldContent, newContent []byte) ([]*m.Change, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if oldContent == nil && newContent == nil {
		return nil, nil
	}

	if oldContent == nil {
		return []*m.Change{fileLevelChange(m.Added, pair, newContent)}, nil
	}

	if newContent == nil {
		return []*m.Change{fileLevelChange(m.Removed, pair, oldContent)}, nil
	}

	return p.diffLines(pair, string(oldContent), string(newContent)), nil
}

func fileLevelChange(changeType m.ChangeType, pair m.FilePair, content []byte) *m.Change {
	c := &m.Change{
		Type:       changeType,
		Kind:       m.KindFile,
		Visibility: m.VisibilityLocal,
	}

	lines := strings.Count(string(content), "\n") + 1

	loc := &m.Location{File: pair.RelPath, StartLine: 1, EndLine: lines}

	switch changeType {
	case m.Added:
		c.NewName = pair.RelPath
		c.NewLocation = loc
		c.NewContent = string(content)
	case m.Removed:
		c.OldName = pair.RelPath
		c.OldLocation = loc
		c.OldContent = string(content)
	default:
	}

	return c
}

func (p *TextProvider) diffLines(pair m.FilePair, old, new string) []*m.Change {
	return diffLineBlocks(pair.RelPath, old, new, 1, 1)
}

// diffLineBlocks produces Line-kind changes for contiguous blocks that
// differ between the two texts. oldStart/newStart anchor the block line
// numbers in the enclosing file (1 for whole-file diffs, the body's first
// line for function-body diffs).
func diffLineBlocks(file, old, new string, oldStart, newStart int) []*m.Change {
	oldLines := difflib.SplitLines(old)
	newLines := difflib.SplitLines(new)

	matcher := difflib.NewMatcher(oldLines, newLines)

	var changes []*m.Change

	for _, op := range matcher.GetOpCodes() {
		if op.Tag == 'e' {
			continue
		}

		oldBlock := strings.Join(oldLines[op.I1:op.I2], "")
		newBlock := strings.Join(newLines[op.J1:op.J2], "")

		c := &m.Change{
			Kind:       m.KindLine,
			Visibility: m.VisibilityLocal,
		}

		switch op.Tag {
		case 'r':
			c.Type = m.Modified
			c.OldContent = oldBlock
			c.NewContent = newBlock
			c.OldLocation = &m.Location{File: file, StartLine: oldStart + op.I1, EndLine: oldStart + op.I2 - 1}
			c.NewLocation = &m.Location{File: file, StartLine: newStart + op.J1, EndLine: newStart + op.J2 - 1}
			c.Hints.WhitespaceOnly = IsWhitespaceOnly(oldBlock, newBlock)
			c.WhitespaceIssues = AnalyzeWhitespace(oldBlock, newBlock)
		case 'd':
			c.Type = m.Removed
			c.OldContent = oldBlock
			c.OldLocation = &m.Location{File: file, StartLine: oldStart + op.I1, EndLine: oldStart + op.I2 - 1}
			c.Hints.WhitespaceOnly = strings.TrimSpace(oldBlock) == ""
		case 'i':
			c.Type = m.Added
			c.NewContent = newBlock
			c.NewLocation = &m.Location{File: file, StartLine: newStart + op.J1, EndLine: newStart + op.J2 - 1}
			c.Hints.WhitespaceOnly = strings.TrimSpace(newBlock) == ""
		default:
			continue
		}

		changes = append(changes, c)
	}

	return changes
}
