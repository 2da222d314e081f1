package model

// Path represents a file system path.
type Path string

// CompareMode tags how a DiffResult was produced.
type CompareMode string

const (
	// ModeFile compares a single pair of files.
	ModeFile CompareMode = "file"
	// ModeDirectory compares two directory trees paired by relative path.
	ModeDirectory CompareMode = "directory"
)

// FilePair is one old/new file pairing produced by the filesystem adapter.
// OldPath or NewPath is empty when the file exists on only one side.
type FilePair struct {
	RelPath string
	OldPath Path
	NewPath Path
}
