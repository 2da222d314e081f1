// Package provider implements the built-in change providers: a go/parser
// based symbol differ for Go files and a line differ for everything else.
package provider

import (
	"strings"

	m "symdiff.dev/pkg/symdiff/internal/model"
)

// IsWhitespaceOnly reports whether two texts differ only in whitespace.
// Lines are compared after trimming leading and trailing whitespace and
// dropping blank lines, so an edit inside a line's content (a quoted
// string, say) never counts as whitespace-only.
func IsWhitespaceOnly(old, new string) bool {
	if old == new {
		return false
	}

	return trimmedLines(old) == trimmedLines(new)
}

func trimmedLines(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, line := range strings.Split(normalizeLineEndings(s), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		b.WriteString(trimmed)
		b.WriteByte('\n')
	}

	return b.String()
}

// AnalyzeWhitespace compares two texts and flags the whitespace findings
// between them. The flags are informational; classification only consults
// the whitespace-only determination.
func AnalyzeWhitespace(old, new string) []m.WhitespaceIssue {
	if old == new {
		return nil
	}

	var issues []m.WhitespaceIssue

	addIssue := func(issue m.WhitespaceIssue) {
		for _, existing := range issues {
			if existing == issue {
				return
			}
		}

		issues = append(issues, issue)
	}

	if strings.Contains(old, "\r\n") != strings.Contains(new, "\r\n") {
		addIssue(m.LineEndingChanged)
	}

	oldLines := strings.Split(normalizeLineEndings(old), "\n")
	newLines := strings.Split(normalizeLineEndings(new), "\n")

	n := len(oldLines)
	if len(newLines) < n {
		n = len(newLines)
	}

	for i := 0; i < n; i++ {
		oldLine, newLine := oldLines[i], newLines[i]
		if oldLine == newLine {
			continue
		}

		oldIndent := leadingWhitespace(oldLine)
		newIndent := leadingWhitespace(newLine)

		if oldIndent != newIndent && strings.TrimSpace(oldLine) == strings.TrimSpace(newLine) {
			addIssue(m.IndentationChanged)

			if usesTabs(oldIndent) != usesTabs(newIndent) {
				addIssue(m.AmbiguousTabWidth)
			}
		}

		if hasTrailingWhitespace(newLine) && !hasTrailingWhitespace(oldLine) {
			addIssue(m.TrailingWhitespace)
		}
	}

	for _, line := range newLines {
		indent := leadingWhitespace(line)
		if strings.Contains(indent, "\t") && strings.Contains(indent, " ") {
			addIssue(m.MixedTabsSpaces)
			break
		}
	}

	return issues
}

func normalizeLineEndings(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

func leadingWhitespace(line string) string {
	for i, r := range line {
		if r != ' ' && r != '\t' {
			return line[:i]
		}
	}

	return line
}

func usesTabs(indent string) bool {
	return strings.Contains(indent, "\t")
}

func hasTrailingWhitespace(line string) bool {
	trimmed := strings.TrimRight(line, " \t")
	return trimmed != line
}
