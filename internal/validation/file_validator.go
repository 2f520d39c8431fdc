package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gradebook/internal/errors"
)

// FileValidator checks input and output paths before the pipelines touch them
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

// ValidateFile checks that a specific file exists and is readable
func (v *FileValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("File does not exist",
			slog.String("file", path))
		return errors.NewFileError(fmt.Sprintf("file %s does not exist", path), err).WithContext("path", path)
	}
	if err != nil {
		v.logger.Error("Failed to stat file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return errors.NewFileError(fmt.Sprintf("failed to stat file %s", path), err).WithContext("path", path)
	}
	if info.IsDir() {
		v.logger.Error("Path is a directory, not a file",
			slog.String("path", path))
		return errors.NewFileError(fmt.Sprintf("%s is a directory, not a file", path), nil).WithContext("path", path)
	}

	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("File is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return errors.NewFileError(fmt.Sprintf("file %s is not readable", path), err).WithContext("path", path)
	}
	file.Close()

	v.logger.Debug("File validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateRoster checks a roster input file. Lock files Excel leaves next to
// an open workbook are refused.
func (v *FileValidator) ValidateRoster(path string) error {
	if strings.HasPrefix(filepath.Base(path), "~$") {
		v.logger.Warn("Refusing temporary Excel file",
			slog.String("file", path))
		return errors.NewValidationError(fmt.Sprintf("file %s is a temporary Excel file", path), nil).WithContext("path", path)
	}
	return v.ValidateFile(path)
}

// ValidateOutputDirectory checks that dir exists, or could be created, and is
// writable. Nothing is created: a missing directory is judged by its nearest
// existing ancestor.
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	base, err := existingAncestor(dir)
	if err != nil {
		v.logger.Error("Output directory cannot be created",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return errors.NewStorageError(fmt.Sprintf("output directory %s cannot be created", dir), err).WithContext("path", dir)
	}

	// Verify it's writable by creating a test file
	file, err := os.CreateTemp(base, ".write_test")
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", base),
			slog.String("error", err.Error()))
		return errors.NewStorageError(fmt.Sprintf("output directory %s is not writable", dir), err).WithContext("path", dir)
	}
	file.Close()
	os.Remove(file.Name())

	v.logger.Debug("Output directory validated",
		slog.String("directory", dir),
		slog.String("existing", base))
	return nil
}

// EnsureOutputDirectory creates the directory that will hold path.
func (v *FileValidator) EnsureOutputDirectory(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return errors.NewStorageError(fmt.Sprintf("failed to create output directory %s", dir), err).WithContext("path", dir)
	}
	return nil
}

// existingAncestor returns dir or its closest existing parent, which must be a
// directory.
func existingAncestor(dir string) (string, error) {
	for {
		info, err := os.Stat(dir)
		switch {
		case err == nil && info.IsDir():
			return dir, nil
		case err == nil:
			return "", fmt.Errorf("%s is not a directory", dir)
		case !os.IsNotExist(err):
			return "", err
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", err
		}
		dir = parent
	}
}

// ValidateOutputFile checks that path carries one of the allowed extensions
// and that its directory is, or can become, writable.
func (v *FileValidator) ValidateOutputFile(path string, extensions ...string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if len(extensions) > 0 && !contains(extensions, ext) {
		v.logger.Error("Unsupported output file extension",
			slog.String("file", path),
			slog.String("extension", ext))
		return errors.NewValidationError(
			fmt.Sprintf("output file %s must end in one of %s", path, strings.Join(extensions, ", ")), nil).
			WithContext("path", path)
	}
	return v.ValidateOutputDirectory(filepath.Dir(path))
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
