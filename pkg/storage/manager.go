package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"nbafetch/pkg/logger"
	"nbafetch/pkg/table"
)

// Manager persists output datasets as CSV files and tracks what was written.
// Files are overwritten wholesale on each run; there is no incremental
// update.
type Manager struct {
	dataDir string
	written []string
	logger  logger.Logger
}

// NewManager creates a storage manager rooted at dataDir, creating the
// directory if needed.
func NewManager(dataDir string, log logger.Logger) (*Manager, error) {
	if log == nil {
		log = logger.GetLogger()
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Manager{dataDir: dataDir, logger: log}, nil
}

// DataDir returns the output directory.
func (m *Manager) DataDir() string {
	return m.dataDir
}

// Path returns the full path for a dataset file name.
func (m *Manager) Path(name string) string {
	return filepath.Join(m.dataDir, name)
}

// SaveCSV writes a table to name under the data directory. The write goes
// through a temp file and rename so a crash never leaves a half-written
// dataset behind.
func (m *Manager) SaveCSV(t *table.Table, name string) (string, error) {
	path := m.Path(name)

	tmp, err := os.CreateTemp(m.dataDir, name+".tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := csv.NewWriter(tmp)
	writeErr := w.Write(t.Columns())
	if writeErr == nil {
		for i := 0; i < t.NumRows() && writeErr == nil; i++ {
			writeErr = w.Write(t.Row(i))
		}
	}
	if writeErr == nil {
		w.Flush()
		writeErr = w.Error()
	}
	closeErr := tmp.Close()

	if writeErr != nil || closeErr != nil {
		os.Remove(tmpName)
		if writeErr == nil {
			writeErr = closeErr
		}
		return "", fmt.Errorf("failed to write %s: %w", name, writeErr)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to move %s into place: %w", name, err)
	}

	m.written = append(m.written, path)
	m.logger.InfoWithFields("saved dataset", map[string]interface{}{
		"path": path,
		"rows": t.NumRows(),
		"cols": t.NumCols(),
	})
	return path, nil
}

// FilesWritten returns the paths written so far, in write order. A run that
// crashes mid-way leaves this as a strict prefix of the intended output set.
func (m *Manager) FilesWritten() []string {
	return append([]string(nil), m.written...)
}
