package http

import (
	"context"
	"io"

	"kwlens/internal/exporter"
	"kwlens/pkg/contracts/domain"
)

// AnalysisServiceInterface defines the interface for the analysis service
type AnalysisServiceInterface interface {
	Analyze(ctx context.Context, name string, r io.Reader, opts domain.AnalysisOptions) (*domain.AnalysisResult, error)
	Export(ctx context.Context, w io.Writer, result *domain.AnalysisResult, format exporter.Format) error
}
