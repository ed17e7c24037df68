package adapter

import (
	"encoding/json"
	"fmt"
	"os"

	m "github.com/imp-refactor/imp-refactor/internal/model"
)

// ReportStore persists and retrieves detection results as JSON, keyed
// by an on-disk path (typically ".imprefactor/reports/<run-id>.json").
type ReportStore interface {
	Save(path string, result m.DetectionResult) error
	Load(path string) (m.DetectionResult, error)
}

type jsonReportStore struct{}

// NewReportStore constructs the real JSON-backed ReportStore.
func NewReportStore() ReportStore { return &jsonReportStore{} }

func (s *jsonReportStore) Save(path string, result m.DetectionResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}

func (s *jsonReportStore) Load(path string) (m.DetectionResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return m.DetectionResult{}, fmt.Errorf("read report %s: %w", path, err)
	}
	var result m.DetectionResult
	if err := json.Unmarshal(data, &result); err != nil {
		return m.DetectionResult{}, fmt.Errorf("unmarshal report %s: %w", path, err)
	}
	return result, nil
}
