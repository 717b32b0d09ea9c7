package files

import (
	"fmt"
	"log/slog"
	"os"
)

// Manager provides directory management for the results folder
type Manager struct {
	logger *slog.Logger
}

// NewManager creates a new file manager
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{logger: logger}
}

// EnsureDirectory creates path if it doesn't exist. An existing directory is
// left untouched; an existing file at path is an error.
func (m *Manager) EnsureDirectory(path string) error {
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return nil
	case err == nil:
		return fmt.Errorf("%s exists and is not a directory", path)
	case !os.IsNotExist(err):
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	m.logger.Debug("Creating directory", slog.String("path", path))
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}
