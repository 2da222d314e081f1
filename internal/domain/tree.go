// Package domain contains the change classification and variant
// reconciliation engine.
package domain

import (
	m "symdiff.dev/pkg/symdiff/internal/model"
)

// NewChange constructs a leaf change node.
func NewChange(changeType m.ChangeType, kind m.ElementKind) *m.Change {
	return &m.Change{Type: changeType, Kind: kind}
}

// AttachChild appends a nested change, keeping sibling order.
func AttachChild(parent, child *m.Change) {
	parent.Children = append(parent.Children, child)
}

// Flatten returns a depth-first traversal of a forest, parents before
// children, siblings in order.
func Flatten(changes []*m.Change) []*m.Change {
	var out []*m.Change

	var walk func(*m.Change)
	walk = func(c *m.Change) {
		out = append(out, c)
		for _, child := range c.Children {
			walk(child)
		}
	}

	for _, c := range changes {
		walk(c)
	}

	return out
}

// CloneChange deep-copies a change node and all descendants so callers can
// retain and mutate inputs without aliasing the copy.
func CloneChange(c *m.Change) *m.Change {
	if c == nil {
		return nil
	}

	out := *c

	if c.OldLocation != nil {
		loc := *c.OldLocation
		out.OldLocation = &loc
	}

	if c.NewLocation != nil {
		loc := *c.NewLocation
		out.NewLocation = &loc
	}

	if c.Caveats != nil {
		out.Caveats = append([]string(nil), c.Caveats...)
	}

	if c.WhitespaceIssues != nil {
		out.WhitespaceIssues = append([]m.WhitespaceIssue(nil), c.WhitespaceIssues...)
	}

	if c.Children != nil {
		out.Children = make([]*m.Change, 0, len(c.Children))
		for _, child := range c.Children {
			out.Children = append(out.Children, CloneChange(child))
		}
	}

	return &out
}

// CloneForest deep-copies a list of root changes.
func CloneForest(changes []*m.Change) []*m.Change {
	if changes == nil {
		return nil
	}

	out := make([]*m.Change, 0, len(changes))
	for _, c := range changes {
		out = append(out, CloneChange(c))
	}

	return out
}

// CloneResult deep-copies a DiffResult, including every change node.
func CloneResult(result m.DiffResult) m.DiffResult {
	out := result

	if result.Variants != nil {
		out.Variants = append([]string(nil), result.Variants...)
	}

	if result.Files != nil {
		out.Files = make([]m.FileChange, 0, len(result.Files))
		for _, fc := range result.Files {
			out.Files = append(out.Files, m.FileChange{
				Path:    fc.Path,
				Changes: CloneForest(fc.Changes),
			})
		}
	}

	return out
}
