package pipeline

import (
	"encoding/json"
	"fmt"
	"os"

	"nbafetch/pkg/storage"
)

// reportVersion guards against format changes in the run report.
const reportVersion = 1

// report is the persisted form of a run summary, written next to the data
// files so a later inspection can tell what a run produced without the logs.
type report struct {
	Version int `json:"version"`
	Summary
}

func reportFileName(season string) string {
	return fmt.Sprintf("run_report_%s.json", season)
}

// writeReport persists the summary as JSON through a temp file and rename.
func writeReport(store *storage.Manager, s *Summary) (string, error) {
	data, err := json.MarshalIndent(report{Version: reportVersion, Summary: *s}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal run report: %w", err)
	}

	path := store.Path(reportFileName(s.Season))
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write run report: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("failed to move run report into place: %w", err)
	}
	return path, nil
}

// ReadReport loads a previously written run report.
func ReadReport(path string) (*Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read run report: %w", err)
	}
	var r report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse run report: %w", err)
	}
	if r.Version != reportVersion {
		return nil, fmt.Errorf("unsupported run report version %d", r.Version)
	}
	return &r.Summary, nil
}
