package domain

import (
	"context"

	m "symdiff.dev/pkg/symdiff/internal/model"
)

// Provider produces a raw change forest for one old/new content pair under
// one build variant. Implementations own all language-specific parsing and
// symbol matching, attach visibility and whitespace issues to every node,
// and fill in the structural hints the classifier consumes. Variant labels
// are opaque here; how a provider interprets them (build tags, framework
// monikers) is its own business.
type Provider interface {
	// Name identifies the provider in logs.
	Name() string

	// Supports reports whether the provider can diff the given file path.
	Supports(path string) bool

	// Changes returns the root-level changes between the two contents.
	// Either content may be nil when the file exists on only one side.
	// A parse failure is fatal for the whole multi-variant comparison.
	Changes(ctx context.Context, variant string, pair m.FilePair, oldContent, newContent []byte) ([]*m.Change, error)
}
