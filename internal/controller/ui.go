// Package controller provides output controllers for displaying
// comparison reports.
package controller

import (
	"context"
	"os"

	"golang.org/x/term"

	m "symdiff.dev/pkg/symdiff/internal/model"
)

// UI displays a finished comparison report. Implementations can print a
// plain summary or run an interactive browser.
type UI interface {
	DisplayResult(ctx context.Context, result m.DiffResult) error
}

// IsTTY reports whether the file is an interactive terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// formatApplicability renders the tri-state for humans.
func formatApplicability(a m.Applicability) string {
	switch a.State() {
	case m.AppliesToAll:
		return "all variants"
	case m.AppliesToSome:
		out := ""
		for i, v := range a.Variants() {
			if i > 0 {
				out += ", "
			}

			out += v
		}

		return out
	default:
		return ""
	}
}
