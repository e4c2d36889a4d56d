package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// OutputManager organizes per-run output directories under a base dir.
type OutputManager struct {
	BaseOutputDir string
}

func NewOutputManager(baseOutputDir string) *OutputManager {
	return &OutputManager{BaseOutputDir: baseOutputDir}
}

// JobDir creates (if needed) and returns the output directory for a run.
func (om *OutputManager) JobDir(jobID string) (string, error) {
	dir := filepath.Join(om.BaseOutputDir, jobID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create job output directory: %w", err)
	}
	return dir, nil
}

// DownloadURL is the API path serving a run's output file.
func (om *OutputManager) DownloadURL(jobID string) string {
	return fmt.Sprintf("/api/v1/etl/%s/download", jobID)
}

// FileSize returns the size of a file in bytes.
func (om *OutputManager) FileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
