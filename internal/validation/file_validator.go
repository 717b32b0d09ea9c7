package validation

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apperrors "gcpeaks/internal/errors"
)

// FileValidator checks the folders a batch run reads and writes
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger,
	}
}

// ValidateInputDirectory checks that dir exists and is a directory and
// reports how many entries end with ext. Finding none is not an error.
func (v *FileValidator) ValidateInputDirectory(dir string, ext string) error {
	info, err := os.Stat(dir)
	if errors.Is(err, os.ErrNotExist) {
		v.logger.Error("Input directory does not exist",
			slog.String("directory", dir))
		return apperrors.NewNotFoundError("input directory", err).WithContext("directory", dir)
	}
	if err != nil {
		v.logger.Error("Failed to stat input directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError(fmt.Sprintf("failed to stat directory %s", dir), err)
	}
	if !info.IsDir() {
		v.logger.Error("Input path is not a directory",
			slog.String("path", dir))
		return apperrors.NewValidationError(fmt.Sprintf("%s is not a directory", dir), nil).
			WithContext("directory", dir)
	}

	if ext == "" {
		return nil
	}

	count, err := v.CountFiles(dir, ext)
	if err != nil {
		return apperrors.NewStorageError("failed to list input directory", err).WithContext("directory", dir)
	}
	if count == 0 {
		v.logger.Warn("No raw files found",
			slog.String("directory", dir),
			slog.String("extension", ext))
		return nil
	}

	v.logger.Debug("Input directory validated",
		slog.String("directory", dir),
		slog.Int("files_found", count),
		slog.String("extension", ext))
	return nil
}

// ValidateOutputDirectory ensures output directory exists or can be created
// and is writable
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError(fmt.Sprintf("failed to create output directory %s", dir), err)
	}

	// Verify it's writable by creating a test file
	testFile := filepath.Join(dir, ".write_test")
	file, err := os.Create(testFile)
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError(fmt.Sprintf("output directory %s is not writable", dir), err)
	}
	file.Close()
	os.Remove(testFile)

	v.logger.Debug("Output directory validated",
		slog.String("directory", dir))
	return nil
}

// CountFiles counts regular files in dir whose name ends with ext
func (v *FileValidator) CountFiles(dir string, ext string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ext) {
			count++
		}
	}
	return count, nil
}
