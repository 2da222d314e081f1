package domain

import (
	m "symdiff.dev/pkg/symdiff/internal/model"
)

// Advisory caveat texts attached by the classifier. They flag blind spots
// of static analysis, never error conditions.
const (
	CaveatParameterRename   = "Parameter rename may break callers using named arguments"
	CaveatPrivateRename     = "Private member rename may break reflection or serialization"
	CaveatSameScopeReorder  = "Code reordering within same scope"
	CaveatUnknownVisibility = "Visibility could not be determined; classified conservatively as internal API"
)

// classificationRule is one row of the decision table. Rows are evaluated
// in order and the first match wins, so each row can be tested on its own.
type classificationRule struct {
	name    string
	matches func(c *m.Change, hints m.Hints) bool
	impact  m.Impact
	caveats []string
}

func isPublicAPI(v m.Visibility) bool {
	return v == m.VisibilityPublic || v == m.VisibilityProtected || v == m.VisibilityProtectedInternal
}

func isInternalAPI(v m.Visibility) bool {
	return v == m.VisibilityInternal || v == m.VisibilityPrivateProtected
}

func isUnknown(v m.Visibility) bool {
	return v == m.VisibilityUnknown || v == ""
}

func isEdit(t m.ChangeType) bool {
	return t == m.Added || t == m.Removed || t == m.Modified
}

// classificationRules implements the decision order of the engine:
// whitespace short-circuit, then renames, then add/remove/modify, then
// moves, then the fail-open fallback. Unknown visibility classifies
// conservatively as internal-breaking where visibility decides the row.
var classificationRules = []classificationRule{
	{
		name: "whitespace-only",
		matches: func(_ *m.Change, hints m.Hints) bool {
			return hints.WhitespaceOnly
		},
		impact: m.FormattingOnly,
	},
	{
		name: "rename-public",
		matches: func(c *m.Change, _ m.Hints) bool {
			return c.Type == m.Renamed && isPublicAPI(c.Visibility)
		},
		impact: m.BreakingPublicAPI,
	},
	{
		name: "rename-internal",
		matches: func(c *m.Change, _ m.Hints) bool {
			return c.Type == m.Renamed && isInternalAPI(c.Visibility)
		},
		impact: m.BreakingInternalAPI,
	},
	{
		name: "rename-parameter",
		matches: func(c *m.Change, _ m.Hints) bool {
			return c.Type == m.Renamed && c.Kind == m.KindParameter
		},
		impact:  m.NonBreaking,
		caveats: []string{CaveatParameterRename},
	},
	{
		name: "rename-private",
		matches: func(c *m.Change, _ m.Hints) bool {
			return c.Type == m.Renamed && c.Visibility == m.VisibilityPrivate
		},
		impact:  m.NonBreaking,
		caveats: []string{CaveatPrivateRename},
	},
	{
		name: "rename-unknown-visibility",
		matches: func(c *m.Change, _ m.Hints) bool {
			return c.Type == m.Renamed && isUnknown(c.Visibility)
		},
		impact:  m.BreakingInternalAPI,
		caveats: []string{CaveatUnknownVisibility},
	},
	{
		name: "rename-local",
		matches: func(c *m.Change, _ m.Hints) bool {
			return c.Type == m.Renamed
		},
		impact: m.NonBreaking,
	},
	{
		name: "edit-signature-public",
		matches: func(c *m.Change, hints m.Hints) bool {
			return isEdit(c.Type) && hints.SignatureAffecting && isPublicAPI(c.Visibility)
		},
		impact: m.BreakingPublicAPI,
	},
	{
		name: "edit-signature-internal",
		matches: func(c *m.Change, hints m.Hints) bool {
			return isEdit(c.Type) && hints.SignatureAffecting && isInternalAPI(c.Visibility)
		},
		impact: m.BreakingInternalAPI,
	},
	{
		name: "edit-signature-unknown-visibility",
		matches: func(c *m.Change, hints m.Hints) bool {
			return isEdit(c.Type) && hints.SignatureAffecting && isUnknown(c.Visibility)
		},
		impact:  m.BreakingInternalAPI,
		caveats: []string{CaveatUnknownVisibility},
	},
	{
		name: "edit-body-only",
		matches: func(c *m.Change, _ m.Hints) bool {
			return isEdit(c.Type)
		},
		impact: m.NonBreaking,
	},
	{
		name: "move-same-scope",
		matches: func(c *m.Change, hints m.Hints) bool {
			return c.Type == m.Moved && hints.SameScope
		},
		impact:  m.NonBreaking,
		caveats: []string{CaveatSameScopeReorder},
	},
	{
		name: "move-cross-scope-public",
		matches: func(c *m.Change, _ m.Hints) bool {
			return c.Type == m.Moved &&
				(c.Visibility == m.VisibilityPublic || c.Visibility == m.VisibilityProtected)
		},
		impact: m.BreakingPublicAPI,
	},
	{
		name: "move-cross-scope-internal",
		matches: func(c *m.Change, _ m.Hints) bool {
			return c.Type == m.Moved && c.Visibility == m.VisibilityInternal
		},
		impact: m.BreakingInternalAPI,
	},
	{
		name: "move-cross-scope-other",
		matches: func(c *m.Change, _ m.Hints) bool {
			return c.Type == m.Moved
		},
		impact: m.NonBreaking,
	},
}

// Classify maps one change plus its structural hints to an impact level
// and advisory caveats. It is total: unanticipated combinations fall open
// to NonBreaking so the pipeline never aborts on an unrecognized
// construct.
func Classify(c *m.Change, hints m.Hints) (m.Impact, []string) {
	for _, rule := range classificationRules {
		if rule.matches(c, hints) {
			return rule.impact, append([]string(nil), rule.caveats...)
		}
	}

	return m.NonBreaking, nil
}

// ClassifyTree stamps impact and caveats on every node of a forest using
// the hints the provider attached. Nodes are annotated in place.
func ClassifyTree(changes []*m.Change) {
	for _, c := range Flatten(changes) {
		impact, caveats := Classify(c, c.Hints)
		c.Impact = impact
		c.Caveats = caveats
	}
}
