// Package adapter contains filesystem and persistence adapters for the
// symdiff CLI.
package adapter

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	m "symdiff.dev/pkg/symdiff/internal/model"
)

// SourceFS abstracts the filesystem operations the workflow relies on so
// the comparison logic can be tested without touching the disk.
type SourceFS interface {
	// ReadFile loads a file from disk and returns its contents.
	ReadFile(ctx context.Context, path m.Path) ([]byte, error)

	// PairFiles resolves the old/new arguments into file pairs. Two files
	// yield a single pair; two directories are walked and paired by
	// relative path, with one-sided pairs for files present in only one
	// tree.
	PairFiles(ctx context.Context, oldPath, newPath m.Path) ([]m.FilePair, m.CompareMode, error)

	// CreateTempFile creates a temporary file for spill buffers.
	CreateTempFile(pattern string) (*os.File, error)
}

// LocalSourceFS implements SourceFS against the local disk.
type LocalSourceFS struct{}

// NewLocalSourceFS constructs a LocalSourceFS.
func NewLocalSourceFS() *LocalSourceFS {
	return &LocalSourceFS{}
}

// ReadFile implements SourceFS.
func (a *LocalSourceFS) ReadFile(ctx context.Context, path m.Path) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return os.ReadFile(string(path))
}

// CreateTempFile implements SourceFS.
func (a *LocalSourceFS) CreateTempFile(pattern string) (*os.File, error) {
	return os.CreateTemp("", pattern)
}

// PairFiles implements SourceFS.
func (a *LocalSourceFS) PairFiles(ctx context.Context, oldPath, newPath m.Path) ([]m.FilePair, m.CompareMode, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	oldInfo, err := os.Stat(string(oldPath))
	if err != nil {
		return nil, "", fmt.Errorf("old path: %w", err)
	}

	newInfo, err := os.Stat(string(newPath))
	if err != nil {
		return nil, "", fmt.Errorf("new path: %w", err)
	}

	if oldInfo.IsDir() != newInfo.IsDir() {
		return nil, "", fmt.Errorf("cannot compare a file with a directory: %s vs %s", oldPath, newPath)
	}

	if !oldInfo.IsDir() {
		pair := m.FilePair{
			RelPath: filepath.Base(string(newPath)),
			OldPath: oldPath,
			NewPath: newPath,
		}

		return []m.FilePair{pair}, m.ModeFile, nil
	}

	pairs, err := a.pairTrees(oldPath, newPath)
	if err != nil {
		return nil, "", err
	}

	return pairs, m.ModeDirectory, nil
}

func (a *LocalSourceFS) pairTrees(oldRoot, newRoot m.Path) ([]m.FilePair, error) {
	oldFiles, err := listTree(string(oldRoot))
	if err != nil {
		return nil, fmt.Errorf("walk old tree: %w", err)
	}

	newFiles, err := listTree(string(newRoot))
	if err != nil {
		return nil, fmt.Errorf("walk new tree: %w", err)
	}

	rels := make([]string, 0, len(oldFiles)+len(newFiles))
	seen := make(map[string]struct{}, len(oldFiles)+len(newFiles))

	for rel := range oldFiles {
		seen[rel] = struct{}{}
		rels = append(rels, rel)
	}

	for rel := range newFiles {
		if _, ok := seen[rel]; !ok {
			rels = append(rels, rel)
		}
	}

	sort.Strings(rels)

	pairs := make([]m.FilePair, 0, len(rels))

	for _, rel := range rels {
		pair := m.FilePair{RelPath: rel}

		if _, ok := oldFiles[rel]; ok {
			pair.OldPath = m.Path(filepath.Join(string(oldRoot), rel))
		}

		if _, ok := newFiles[rel]; ok {
			pair.NewPath = m.Path(filepath.Join(string(newRoot), rel))
		}

		pairs = append(pairs, pair)
	}

	return pairs, nil
}

// listTree collects the relative paths of regular files, skipping hidden
// directories such as .git.
func listTree(root string) (map[string]struct{}, error) {
	files := make(map[string]struct{})

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		name := d.Name()

		if d.IsDir() {
			if path != root && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}

			return nil
		}

		if !d.Type().IsRegular() || strings.HasPrefix(name, ".") {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}

		files[rel] = struct{}{}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}
