package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"kwlens/internal/dataprocessing"
	apierrors "kwlens/internal/errors"
	"kwlens/internal/exporter"
	"kwlens/internal/infrastructure"
	"kwlens/pkg/contracts/domain"
)

// AnalysisService loads keyword sheets, runs the analysis pipeline and
// exports the result. Every call works on its own table; the service holds
// no per-request state and is safe for concurrent use.
type AnalysisService struct {
	tracer  trace.Tracer
	metrics *infrastructure.BusinessMetrics
	logger  *slog.Logger
	load    dataprocessing.LoadOptions
}

// NewAnalysisService creates the service. tracer and metrics may be nil;
// sheet selects the worksheet read from workbooks (empty for the first).
func NewAnalysisService(tracer trace.Tracer, metrics *infrastructure.BusinessMetrics, logger *slog.Logger, sheet string) *AnalysisService {
	if tracer == nil {
		tracer = otel.Tracer(infrastructure.MeterName)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalysisService{
		tracer:  tracer,
		metrics: metrics,
		logger:  logger.With(slog.String("service", "analysis")),
		load:    dataprocessing.LoadOptions{Sheet: sheet},
	}
}

// Analyze parses the spreadsheet in r, named name, and runs the pipeline.
func (s *AnalysisService) Analyze(ctx context.Context, name string, r io.Reader, opts domain.AnalysisOptions) (*domain.AnalysisResult, error) {
	if r == nil {
		return nil, ErrNoUpload
	}
	return s.run(ctx, name, opts, func() (domain.Table, error) {
		return dataprocessing.ParseReader(name, r, s.load)
	})
}

// AnalyzeFile reads the spreadsheet at path and runs the pipeline.
func (s *AnalysisService) AnalyzeFile(ctx context.Context, path string, opts domain.AnalysisOptions) (*domain.AnalysisResult, error) {
	return s.run(ctx, path, opts, func() (domain.Table, error) {
		return dataprocessing.ParseFile(path, s.load)
	})
}

func (s *AnalysisService) run(ctx context.Context, source string, opts domain.AnalysisOptions, load func() (domain.Table, error)) (result *domain.AnalysisResult, err error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "analysis.run",
		trace.WithAttributes(attribute.String("analysis.source", source)))
	defer span.End()

	logger := s.logger.With(slog.String("source", source))
	rows := 0
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			logger.WarnContext(ctx, "analysis failed", slog.String("error", err.Error()))
		}
		infrastructure.RecordAnalysisMetrics(ctx, s.metrics, source, rows, time.Since(start), err)
	}()

	_, loadSpan := s.tracer.Start(ctx, "analysis.load")
	table, err := load()
	loadSpan.End()
	if err != nil {
		return nil, classify(err)
	}
	rows = table.Len()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err = dataprocessing.NewPipeline(s.stageObserver(ctx)).Process(table, opts)
	if err != nil {
		return nil, classify(err)
	}
	result.Source = source

	span.SetAttributes(
		attribute.Int("analysis.rows", rows),
		attribute.Int("analysis.ranked", result.RankedCount),
		attribute.Int("analysis.unranked", result.UnrankedCount),
	)
	logger.InfoContext(ctx, "analysis completed",
		slog.Int("rows", rows),
		slog.Int("ranked", result.RankedCount),
		slog.Int("unranked", result.UnrankedCount),
		slog.Duration("duration", time.Since(start)))

	return result, nil
}

// classify wraps loader failures in the application error taxonomy. The
// original *SchemaError or *ParseError stays reachable through errors.As.
func classify(err error) error {
	var schemaErr *dataprocessing.SchemaError
	if errors.As(err, &schemaErr) {
		return apierrors.NewSchemaError("sheet failed column validation", err).
			WithContext("missing_columns", schemaErr.Missing)
	}

	var parseErr *dataprocessing.ParseError
	if errors.As(err, &parseErr) {
		return apierrors.NewParsingError("file could not be read as a spreadsheet", err)
	}

	return err
}

// stageObserver opens one child span per pipeline stage.
func (s *AnalysisService) stageObserver(ctx context.Context) dataprocessing.StageObserver {
	return func(stage string) func() {
		_, span := s.tracer.Start(ctx, "analysis."+stage)
		return func() { span.End() }
	}
}

// Export writes result to w in the given format.
func (s *AnalysisService) Export(ctx context.Context, w io.Writer, result *domain.AnalysisResult, format exporter.Format) error {
	ctx, span := s.tracer.Start(ctx, "analysis.export",
		trace.WithAttributes(attribute.String("export.format", string(format))))
	defer span.End()

	exp, err := exporter.New(format)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err := exp.Export(w, result); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return apierrors.NewExportError(fmt.Sprintf("failed to export %s", format), err).
			WithContext("format", string(format))
	}

	infrastructure.RecordExport(ctx, s.metrics, string(format))
	return nil
}

// ExportFile writes result next to the other exports in dir and returns
// the path written.
func (s *AnalysisService) ExportFile(ctx context.Context, dir string, result *domain.AnalysisResult, format exporter.Format) (string, error) {
	ctx, span := s.tracer.Start(ctx, "analysis.export_file",
		trace.WithAttributes(attribute.String("export.format", string(format))))
	defer span.End()

	path, err := exporter.WriteFile(dir, format, result)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", apierrors.NewStorageError(fmt.Sprintf("failed to write export to %s", dir), err)
	}

	infrastructure.RecordExport(ctx, s.metrics, string(format))
	s.logger.InfoContext(ctx, "analysis exported", slog.String("path", path))
	return path, nil
}
