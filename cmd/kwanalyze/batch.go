package main

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"kwlens/internal/exporter"
	"kwlens/internal/services"
	"kwlens/pkg/contracts/domain"
)

// fileReport is the outcome for one input file
type fileReport struct {
	path     string
	result   *domain.AnalysisResult
	exported string
	err      error
}

// batch analyzes files in parallel. Each goroutine owns its file and
// table; reports land in their input slot so output order is stable.
type batch struct {
	service     *services.AnalysisService
	options     domain.AnalysisOptions
	format      exporter.Format
	outDir      string
	concurrency int
	logger      *slog.Logger
}

// run returns one report per input. A failing file does not stop the
// others; only cancellation of ctx aborts the batch.
func (b *batch) run(ctx context.Context, inputs []string) ([]fileReport, error) {
	if err := b.checkOutputs(inputs); err != nil {
		return nil, err
	}

	reports := make([]fileReport, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for i, path := range inputs {
		reports[i].path = path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			reports[i] = b.analyze(gctx, path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func (b *batch) analyze(ctx context.Context, path string) fileReport {
	rep := fileReport{path: path}

	result, err := b.service.AnalyzeFile(ctx, path, b.options)
	if err != nil {
		b.logger.WarnContext(ctx, "file failed",
			slog.String("file", path),
			slog.String("error", err.Error()))
		rep.err = err
		return rep
	}
	rep.result = result

	if b.outDir != "" {
		if rep.exported, err = b.service.ExportFile(ctx, b.outDir, result, b.format); err != nil {
			rep.err = err
		}
	}
	return rep
}

// checkOutputs rejects batches where two inputs would export to the same
// file, since they would be written concurrently.
func (b *batch) checkOutputs(inputs []string) error {
	if b.outDir == "" {
		return nil
	}

	owner := make(map[string]string, len(inputs))
	for _, path := range inputs {
		out := exporter.OutputPath(b.outDir, path, b.format)
		if prev, ok := owner[out]; ok {
			return fmt.Errorf("%s and %s would both export to %s; rename one or run them separately", prev, path, out)
		}
		owner[out] = path
	}
	return nil
}
