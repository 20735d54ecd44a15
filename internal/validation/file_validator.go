package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SpreadsheetExtensions lists the input formats the analyzer reads
var SpreadsheetExtensions = []string{".xlsx", ".xlsm", ".csv"}

// FileValidator validates command line inputs and outputs
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

// IsSpreadsheet reports whether the name carries a supported extension and
// is not an office lock file
func IsSpreadsheet(name string) bool {
	base := filepath.Base(name)
	if strings.HasPrefix(base, "~$") {
		return false
	}
	ext := strings.ToLower(filepath.Ext(base))
	for _, e := range SpreadsheetExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// ValidateOutputDirectory ensures output directory exists or can be created
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	// Verify it's writable by creating a probe file
	probe, err := os.CreateTemp(dir, ".write_test")
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("output directory %s is not writable: %w", dir, err)
	}
	probe.Close()
	os.Remove(probe.Name())

	v.logger.Debug("Output directory validated",
		slog.String("directory", dir))
	return nil
}

// ValidateFile checks if a specific file exists and is readable
func (v *FileValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("File does not exist",
			slog.String("file", path))
		return fmt.Errorf("file %s does not exist", path)
	}
	if err != nil {
		v.logger.Error("Failed to stat file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	if info.IsDir() {
		v.logger.Error("Path is a directory, not a file",
			slog.String("path", path))
		return fmt.Errorf("%s is a directory, not a file", path)
	}

	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("File is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return fmt.Errorf("file %s is not readable: %w", path, err)
	}
	file.Close()

	v.logger.Debug("File validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateSpreadsheet checks that a file exists and has a supported
// spreadsheet extension
func (v *FileValidator) ValidateSpreadsheet(path string) error {
	if err := v.ValidateFile(path); err != nil {
		return err
	}

	if !IsSpreadsheet(path) {
		ext := strings.ToLower(filepath.Ext(path))
		v.logger.Error("File is not a supported spreadsheet",
			slog.String("file", path),
			slog.String("extension", ext))
		return fmt.Errorf("file %s is not a supported spreadsheet (extension: %q, want one of %s)",
			path, ext, strings.Join(SpreadsheetExtensions, ", "))
	}
	return nil
}

// ExpandInputs resolves command line arguments to spreadsheet paths.
// Files are validated and kept in argument order; a directory contributes
// its spreadsheets sorted by name. Duplicates are dropped.
func (v *FileValidator) ExpandInputs(args []string) ([]string, error) {
	var (
		out  []string
		seen = make(map[string]bool)
	)
	add := func(p string) {
		key := filepath.Clean(p)
		if !seen[key] {
			seen[key] = true
			out = append(out, p)
		}
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err == nil && info.IsDir() {
			files, err := v.listSpreadsheets(arg)
			if err != nil {
				return nil, err
			}
			for _, f := range files {
				add(f)
			}
			continue
		}
		if err := v.ValidateSpreadsheet(arg); err != nil {
			return nil, err
		}
		add(arg)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no spreadsheets to analyze")
	}
	return out, nil
}

func (v *FileValidator) listSpreadsheets(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		v.logger.Error("Failed to read input directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !IsSpreadsheet(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)

	if len(files) == 0 {
		v.logger.Warn("No spreadsheets found in directory",
			slog.String("directory", dir))
	} else {
		v.logger.Info("Input directory scanned",
			slog.String("directory", dir),
			slog.Int("files_found", len(files)))
	}
	return files, nil
}
