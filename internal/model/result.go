package model

// Stats aggregates counts over a change forest. Unchanged nodes are never
// counted. After a merge each deduplicated node contributes exactly once
// regardless of how many variants exhibited it.
type Stats struct {
	Additions     int `json:"additions" yaml:"additions"`
	Deletions     int `json:"deletions" yaml:"deletions"`
	Modifications int `json:"modifications" yaml:"modifications"`
	Moves         int `json:"moves" yaml:"moves"`
	Renames       int `json:"renames" yaml:"renames"`

	BreakingPublic   int `json:"breaking_public_api" yaml:"breaking_public_api"`
	BreakingInternal int `json:"breaking_internal_api" yaml:"breaking_internal_api"`
	NonBreaking      int `json:"non_breaking" yaml:"non_breaking"`
	FormattingOnly   int `json:"formatting_only" yaml:"formatting_only"`
}

// Total is the number of counted changes across all types.
func (s Stats) Total() int {
	return s.Additions + s.Deletions + s.Modifications + s.Moves + s.Renames
}

// HasChanges reports whether any change was counted.
func (s Stats) HasChanges() bool {
	return s.Total() > 0
}

// Add accumulates another Stats value.
func (s *Stats) Add(other Stats) {
	s.Additions += other.Additions
	s.Deletions += other.Deletions
	s.Modifications += other.Modifications
	s.Moves += other.Moves
	s.Renames += other.Renames
	s.BreakingPublic += other.BreakingPublic
	s.BreakingInternal += other.BreakingInternal
	s.NonBreaking += other.NonBreaking
	s.FormattingOnly += other.FormattingOnly
}

// FileChange is a file path plus its root-level changes.
type FileChange struct {
	Path    string    `json:"path" yaml:"path"`
	Changes []*Change `json:"changes,omitempty" yaml:"changes,omitempty"`
}

// DiffResult is the unit of output consumed by formatters. Variants lists
// the analyzed variant labels in input order; it is empty (not nil in
// serialized form) when no multi-variant analysis ran.
type DiffResult struct {
	OldPath  string       `json:"old_path" yaml:"old_path"`
	NewPath  string       `json:"new_path" yaml:"new_path"`
	Mode     CompareMode  `json:"mode" yaml:"mode"`
	Files    []FileChange `json:"files,omitempty" yaml:"files,omitempty"`
	Stats    Stats        `json:"stats" yaml:"stats"`
	Variants []string     `json:"variants" yaml:"variants"`
}
