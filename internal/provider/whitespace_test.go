package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	m "symdiff.dev/pkg/symdiff/internal/model"
)

func TestIsWhitespaceOnly(t *testing.T) {
	t.Run("identical texts are not a whitespace change", func(t *testing.T) {
		assert.False(t, IsWhitespaceOnly("func f() {}\n", "func f() {}\n"))
	})

	t.Run("reindentation is whitespace only", func(t *testing.T) {
		assert.True(t, IsWhitespaceOnly("  x := 1\n", "\tx := 1\n"))
	})

	t.Run("line ending change is whitespace only", func(t *testing.T) {
		assert.True(t, IsWhitespaceOnly("a\nb\n", "a\r\nb\r\n"))
	})

	t.Run("content change is not whitespace only", func(t *testing.T) {
		assert.False(t, IsWhitespaceOnly("x := 1\n", "x := 2\n"))
	})

	t.Run("mixed content and whitespace change is not whitespace only", func(t *testing.T) {
		assert.False(t, IsWhitespaceOnly("  x := 1\n", "\tx := 2\n"))
	})

	t.Run("edit inside quoted text is not whitespace only", func(t *testing.T) {
		assert.False(t, IsWhitespaceOnly("msg = \"a b\"\n", "msg = \"ab\"\n"))
	})

	t.Run("blank line insertion is whitespace only", func(t *testing.T) {
		assert.True(t, IsWhitespaceOnly("a\nb\n", "a\n\nb\n"))
	})
}

func TestAnalyzeWhitespace(t *testing.T) {
	t.Run("identical texts yield no findings", func(t *testing.T) {
		assert.Nil(t, AnalyzeWhitespace("a\n", "a\n"))
	})

	t.Run("indentation change", func(t *testing.T) {
		issues := AnalyzeWhitespace("    return x\n", "        return x\n")
		assert.Contains(t, issues, m.IndentationChanged)
		assert.NotContains(t, issues, m.AmbiguousTabWidth)
	})

	t.Run("spaces replaced by tabs", func(t *testing.T) {
		issues := AnalyzeWhitespace("  return x\n", "\treturn x\n")
		assert.Contains(t, issues, m.IndentationChanged)
		assert.Contains(t, issues, m.AmbiguousTabWidth)
	})

	t.Run("line ending change", func(t *testing.T) {
		issues := AnalyzeWhitespace("a\nb\n", "a\r\nb\r\n")
		assert.Contains(t, issues, m.LineEndingChanged)
	})

	t.Run("new trailing whitespace", func(t *testing.T) {
		issues := AnalyzeWhitespace("x := 1\n", "x := 1  \n")
		assert.Contains(t, issues, m.TrailingWhitespace)
	})

	t.Run("mixed tabs and spaces in new indent", func(t *testing.T) {
		issues := AnalyzeWhitespace("\tx := 1\n", "\t  x := 1\n")
		assert.Contains(t, issues, m.MixedTabsSpaces)
	})

	t.Run("each finding reported once", func(t *testing.T) {
		issues := AnalyzeWhitespace("  a\n  b\n", "\ta\n\tb\n")

		count := 0
		for _, issue := range issues {
			if issue == m.IndentationChanged {
				count++
			}
		}

		assert.Equal(t, 1, count)
	})
}
