package exporter

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"kwlens/pkg/contracts/domain"
)

// Exporter writes an analysis result in one file format.
type Exporter interface {
	Export(w io.Writer, result *domain.AnalysisResult) error
}

// New returns the exporter for format.
func New(format Format) (Exporter, error) {
	switch format {
	case FormatXLSX:
		return NewXLSXExporter(), nil
	case FormatCSV:
		return NewCSVWriter(), nil
	}
	return nil, fmt.Errorf("unsupported export format %q", format)
}

// OutputPath returns the export path for a source file inside dir:
// the source name without extension, suffixed with "_analysis".
func OutputPath(dir, source string, format Format) string {
	base := filepath.Base(source)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" || stem == "." {
		stem = "keywords"
	}
	return filepath.Join(dir, stem+"_analysis"+format.Extension())
}

// WriteFile exports result to OutputPath(dir, result.Source, format),
// creating dir when needed, and returns the written path. The export is
// written to a temporary file in dir and renamed into place, so a reader
// never sees a partial file.
func WriteFile(dir string, format Format, result *domain.AnalysisResult) (string, error) {
	exp, err := New(format)
	if err != nil {
		return "", err
	}

	fullPath := OutputPath(dir, result.Source, format)

	slog.Info("Writing analysis export",
		slog.String("source", result.Source),
		slog.String("full_path", fullPath),
		slog.Int("record_count", result.Table.Len()))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(fullPath), "."+filepath.Base(fullPath)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := exp.Export(tmp, result); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return "", fmt.Errorf("failed to set file mode: %w", err)
	}
	if err := os.Rename(tmp.Name(), fullPath); err != nil {
		return "", fmt.Errorf("failed to move export into place: %w", err)
	}
	return fullPath, nil
}
