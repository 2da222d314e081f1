// Package pkg provides small reusable utilities for symdiff.
package pkg

import (
	"encoding/gob"
	"fmt"
	"log/slog"
	"os"
	"sync"
)

// SpillFilePattern is the name pattern spill buffers expect their backing
// temporary file to be created with.
const SpillFilePattern = "symdiff-spill-*.gob"

// FileSpill buffers items of type T in a temporary file so concurrent
// per-variant passes over large directory trees do not keep every change
// forest resident at once. Items come back in append order via Range.
type FileSpill[T any] interface {
	Len() uint64
	Path() string
	Append(item T) error
	Range(fn func(index uint64, item T) error) error
	Close() error
}

type fileSpill[T any] struct {
	path    string
	file    *os.File
	encoder *gob.Encoder
	mu      sync.Mutex
	length  uint64
}

// NewFileSpill wraps a freshly created temporary file as a spill buffer.
// The buffer takes ownership of the file: Close closes and removes it.
func NewFileSpill[T any](file *os.File) FileSpill[T] {
	slog.Debug("created spill buffer", "path", file.Name())

	return &fileSpill[T]{
		path:    file.Name(),
		file:    file,
		encoder: gob.NewEncoder(file),
	}
}

func (f *fileSpill[T]) Path() string {
	return f.path
}

func (f *fileSpill[T]) Len() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.length
}

func (f *fileSpill[T]) Append(item T) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.encoder.Encode(item); err != nil {
		return fmt.Errorf("encode spill item %d: %w", f.length, err)
	}

	f.length++

	return nil
}

func (f *fileSpill[T]) Range(fn func(index uint64, item T) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	reader, err := os.Open(f.path)
	if err != nil {
		return fmt.Errorf("open spill file: %w", err)
	}

	defer func() {
		if closeErr := reader.Close(); closeErr != nil {
			slog.Error("failed to close spill file", "path", f.path, "error", closeErr)
		}
	}()

	decoder := gob.NewDecoder(reader)

	for i := uint64(0); i < f.length; i++ {
		var item T
		if err := decoder.Decode(&item); err != nil {
			return fmt.Errorf("decode spill item %d: %w", i, err)
		}

		if err := fn(i, item); err != nil {
			return err
		}
	}

	return nil
}

// Close closes and removes the backing file.
func (f *fileSpill[T]) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.file == nil {
		return nil
	}

	if err := f.file.Close(); err != nil {
		return fmt.Errorf("close spill file: %w", err)
	}

	f.file = nil

	if err := os.Remove(f.path); err != nil {
		slog.Warn("failed to remove spill file", "path", f.path, "error", err)
	}

	return nil
}
