package adapter

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	m "symdiff.dev/pkg/symdiff/internal/model"
)

// ReportStore persists DiffResults so separate invocations can analyze one
// variant each and reconcile later with the merge command.
type ReportStore interface {
	SaveResult(path m.Path, result m.DiffResult) error
	LoadResult(path m.Path) (m.DiffResult, error)
}

// YAMLReportStore stores reports as YAML files. The applicability
// tri-state round-trips losslessly: a missing field stays "not analyzed",
// an empty list stays "applies to all".
type YAMLReportStore struct{}

// NewReportStore constructs a YAMLReportStore.
func NewReportStore() *YAMLReportStore {
	return &YAMLReportStore{}
}

const reportFileMode = 0o644

// SaveResult implements ReportStore.
func (s *YAMLReportStore) SaveResult(path m.Path, result m.DiffResult) error {
	data, err := yaml.Marshal(result)
	if err != nil {
		slog.Error("failed to encode report", "path", path, "error", err)
		return fmt.Errorf("encode report: %w", err)
	}

	if err := os.WriteFile(string(path), data, reportFileMode); err != nil {
		slog.Error("failed to write report", "path", path, "error", err)
		return fmt.Errorf("write report %s: %w", path, err)
	}

	return nil
}

// LoadResult implements ReportStore.
func (s *YAMLReportStore) LoadResult(path m.Path) (m.DiffResult, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return m.DiffResult{}, fmt.Errorf("read report %s: %w", path, err)
	}

	var result m.DiffResult
	if err := yaml.Unmarshal(data, &result); err != nil {
		slog.Error("failed to decode report", "path", path, "error", err)
		return m.DiffResult{}, fmt.Errorf("decode report %s: %w", path, err)
	}

	return result, nil
}
