// Package model defines the data structures for structural source comparison.
package model

// ChangeType represents the category of a detected change.
type ChangeType string

const (
	// Added indicates an element present only in the new version.
	Added ChangeType = "added"
	// Removed indicates an element present only in the old version.
	Removed ChangeType = "removed"
	// Modified indicates an element whose content differs between versions.
	Modified ChangeType = "modified"
	// Moved indicates an element relocated without content changes.
	Moved ChangeType = "moved"
	// Renamed indicates an element whose identifier changed.
	Renamed ChangeType = "renamed"
	// Unchanged indicates an element emitted for context only. Unchanged
	// nodes are excluded from statistics and from merge equivalence.
	Unchanged ChangeType = "unchanged"
)

// ElementKind categorizes the source element a change affects.
type ElementKind string

// Available ElementKind values.
const (
	KindNamespace ElementKind = "namespace"
	KindClass     ElementKind = "class"
	KindInterface ElementKind = "interface"
	KindStruct    ElementKind = "struct"
	KindType      ElementKind = "type"
	KindFunction  ElementKind = "function"
	KindMethod    ElementKind = "method"
	KindProperty  ElementKind = "property"
	KindField     ElementKind = "field"
	KindConst     ElementKind = "const"
	KindVar       ElementKind = "var"
	KindParameter ElementKind = "parameter"
	KindStatement ElementKind = "statement"
	KindLine      ElementKind = "line"
	KindFile      ElementKind = "file"
	KindComment   ElementKind = "comment"
)

// Impact is the coarse classification of whether a change can affect
// consumers outside its declaring scope. Set exclusively by the classifier.
type Impact string

const (
	// BreakingPublicAPI marks changes that can break external consumers.
	BreakingPublicAPI Impact = "breaking-public-api"
	// BreakingInternalAPI marks changes that can break same-assembly or
	// same-module consumers.
	BreakingInternalAPI Impact = "breaking-internal-api"
	// NonBreaking marks changes with no consumer-visible contract impact.
	NonBreaking Impact = "non-breaking"
	// FormattingOnly marks whitespace or comment-only changes.
	FormattingOnly Impact = "formatting-only"
)

// Visibility is the declared accessibility of the affected element,
// supplied by the upstream provider and read-only to the engine.
type Visibility string

// Available Visibility values.
const (
	VisibilityPublic            Visibility = "public"
	VisibilityProtected         Visibility = "protected"
	VisibilityInternal          Visibility = "internal"
	VisibilityProtectedInternal Visibility = "protected-internal"
	VisibilityPrivateProtected  Visibility = "private-protected"
	VisibilityPrivate           Visibility = "private"
	VisibilityLocal             Visibility = "local"
	// VisibilityUnknown is reported when the provider cannot resolve
	// accessibility for an element.
	VisibilityUnknown Visibility = "unknown"
)

// WhitespaceIssue flags an informational whitespace finding on a change.
type WhitespaceIssue string

// Available WhitespaceIssue values.
const (
	IndentationChanged WhitespaceIssue = "indentation-changed"
	MixedTabsSpaces    WhitespaceIssue = "mixed-tabs-spaces"
	TrailingWhitespace WhitespaceIssue = "trailing-whitespace"
	LineEndingChanged  WhitespaceIssue = "line-ending-changed"
	AmbiguousTabWidth  WhitespaceIssue = "ambiguous-tab-width"
)

// Location identifies a span of source text. Compared by value everywhere.
type Location struct {
	File      string `json:"file" yaml:"file"`
	StartLine int    `json:"start_line" yaml:"start_line"`
	StartCol  int    `json:"start_col,omitempty" yaml:"start_col,omitempty"`
	EndLine   int    `json:"end_line,omitempty" yaml:"end_line,omitempty"`
	EndCol    int    `json:"end_col,omitempty" yaml:"end_col,omitempty"`
}

// Hints carries structural facts the provider derives from the raw change
// for the classifier. They are analysis inputs, not report output, and are
// never serialized.
type Hints struct {
	// SignatureAffecting is true when the edit touches the element's
	// declared signature rather than only its body.
	SignatureAffecting bool
	// SameScope is true for Moved changes that stay within the same
	// containing scope.
	SameScope bool
	// WhitespaceOnly is true when the change consists entirely of
	// whitespace or comment edits.
	WhitespaceOnly bool
}

// Change is one detected structural difference. Children are exclusively
// owned by their parent; a forest has no sharing and no cycles.
type Change struct {
	Type             ChangeType        `json:"type" yaml:"type"`
	Kind             ElementKind       `json:"kind" yaml:"kind"`
	OldName          string            `json:"old_name,omitempty" yaml:"old_name,omitempty"`
	NewName          string            `json:"new_name,omitempty" yaml:"new_name,omitempty"`
	OldLocation      *Location         `json:"old_location,omitempty" yaml:"old_location,omitempty"`
	NewLocation      *Location         `json:"new_location,omitempty" yaml:"new_location,omitempty"`
	OldContent       string            `json:"old_content,omitempty" yaml:"old_content,omitempty"`
	NewContent       string            `json:"new_content,omitempty" yaml:"new_content,omitempty"`
	Impact           Impact            `json:"impact,omitempty" yaml:"impact,omitempty"`
	Visibility       Visibility        `json:"visibility,omitempty" yaml:"visibility,omitempty"`
	Caveats          []string          `json:"caveats,omitempty" yaml:"caveats,omitempty"`
	WhitespaceIssues []WhitespaceIssue `json:"whitespace_issues,omitempty" yaml:"whitespace_issues,omitempty"`
	Children         []*Change         `json:"children,omitempty" yaml:"children,omitempty"`
	AppliesTo        Applicability     `json:"applicable_to_variants,omitzero" yaml:"applicable_to_variants,omitempty"`

	Hints Hints `json:"-" yaml:"-"`
}

// Name returns the element's identifier, preferring the new name.
func (c *Change) Name() string {
	if c.NewName != "" {
		return c.NewName
	}

	return c.OldName
}
