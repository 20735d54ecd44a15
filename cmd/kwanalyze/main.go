// Command kwanalyze runs the keyword analysis over one or more ranking
// spreadsheets and prints a report per file.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"kwlens/internal/config"
	"kwlens/internal/exporter"
	"kwlens/internal/infrastructure"
	"kwlens/internal/presentation"
	"kwlens/internal/services"
	"kwlens/internal/validation"
	"kwlens/pkg/contracts"
)

const (
	flagConfig              = "config"
	flagTitle               = "title"
	flagSubtitle            = "subtitle"
	flagKeywordField        = "keyword-field"
	flagKeywordField2       = "keyword-field-2"
	flagProbe               = "probe"
	flagTopKeywordWords     = "top-keyword-words"
	flagTopAppSubtitleWords = "top-app-subtitle-words"
	flagTopUnranked         = "top-unranked"
	flagSheet               = "sheet"
	flagFormat              = "format"
	flagOut                 = "out"
	flagShowTable           = "show-table"
	flagConcurrency         = "concurrency"
	flagLogLevel            = "log-level"
)

func newCommand(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "kwanalyze",
		Usage:     "Analyze keyword ranking spreadsheets for app-store optimization",
		ArgsUsage: "FILE|DIR...",
		Version:   contracts.Version,
		Writer:    stdout,
		ErrWriter: stderr,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return run(ctx, cmd, stdout, stderr)
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Sources: cli.EnvVars(config.ConfigFileEnv),
			},
			&cli.StringFlag{Name: flagTitle, Usage: "App title to check keywords against"},
			&cli.StringFlag{Name: flagSubtitle, Usage: "App subtitle to check keywords against"},
			&cli.StringFlag{Name: flagKeywordField, Usage: "Keyword field to check keywords against"},
			&cli.StringFlag{Name: flagKeywordField2, Usage: "Second keyword field"},
			&cli.StringFlag{Name: flagProbe, Usage: "Text every keyword is tested for"},
			&cli.IntFlag{Name: flagTopKeywordWords, Usage: "Size of the top keyword words summary"},
			&cli.IntFlag{Name: flagTopAppSubtitleWords, Usage: "Size of the top app name and subtitle words summary"},
			&cli.IntFlag{Name: flagTopUnranked, Usage: "Size of the top unranked keywords summary"},
			&cli.StringFlag{Name: flagSheet, Usage: "Worksheet to read (default: first sheet)"},
			&cli.StringFlag{Name: flagFormat, Usage: "Export format: xlsx or csv"},
			&cli.StringFlag{Name: flagOut, Aliases: []string{"o"}, Usage: "Write the annotated table to this directory"},
			&cli.BoolFlag{Name: flagShowTable, Usage: "Print the full annotated table"},
			&cli.IntFlag{Name: flagConcurrency, Value: 4, Usage: "Files analyzed in parallel"},
			&cli.StringFlag{Name: flagLogLevel, Usage: "Log level: debug, info, warn or error"},
		},
	}
}

func run(ctx context.Context, cmd *cli.Command, stdout, stderr io.Writer) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := infrastructure.InitializeLoggerTo(cfg.Logging, stderr)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer infrastructure.CloseLogFile()
	logger = infrastructure.WithComponent(logger, "kwanalyze")

	validator := validation.NewFileValidator(logger)
	inputs, err := validator.ExpandInputs(cmd.Args().Slice())
	if err != nil {
		return err
	}

	format, err := exporter.ParseFormat(cfg.Analysis.ExportFormat)
	if err != nil {
		return err
	}
	outDir := cmd.String(flagOut)
	if outDir != "" {
		if err := validator.ValidateOutputDirectory(outDir); err != nil {
			return err
		}
	}

	service := services.NewAnalysisService(nil, nil, logger, cfg.Analysis.Sheet)
	b := &batch{
		service:     service,
		options:     cfg.Analysis.Options(),
		format:      format,
		outDir:      outDir,
		concurrency: int(cmd.Int(flagConcurrency)),
		logger:      logger,
	}

	logger.InfoContext(ctx, "batch starting",
		slog.Int("files", len(inputs)),
		slog.Int("concurrency", b.concurrency),
		slog.String("out", outDir))

	reports, err := b.run(ctx, inputs)
	if err != nil {
		return err
	}
	return writeReports(stdout, reports, presentation.NewTextRenderer(cmd.Bool(flagShowTable)))
}

// loadConfig reads the config file and environment, then applies flags set
// on the command line
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path := cmd.String(flagConfig); path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if cmd.IsSet(flagLogLevel) {
		cfg.Logging.Level = cmd.String(flagLogLevel)
	}

	a := &cfg.Analysis
	setString(cmd, flagTitle, &a.Title)
	setString(cmd, flagSubtitle, &a.Subtitle)
	setString(cmd, flagKeywordField, &a.KeywordField)
	setString(cmd, flagKeywordField2, &a.KeywordField2)
	setString(cmd, flagProbe, &a.Probe)
	setString(cmd, flagSheet, &a.Sheet)
	setString(cmd, flagFormat, &a.ExportFormat)
	setInt(cmd, flagTopKeywordWords, &a.TopKeywordWords)
	setInt(cmd, flagTopAppSubtitleWords, &a.TopAppSubtitleWords)
	setInt(cmd, flagTopUnranked, &a.TopUnranked)

	for name, n := range map[string]int{
		flagTopKeywordWords:     a.TopKeywordWords,
		flagTopAppSubtitleWords: a.TopAppSubtitleWords,
		flagTopUnranked:         a.TopUnranked,
	} {
		if n < 0 {
			return nil, fmt.Errorf("--%s must not be negative", name)
		}
	}
	if cmd.Int(flagConcurrency) < 1 {
		return nil, fmt.Errorf("--%s must be at least 1", flagConcurrency)
	}
	return cfg, nil
}

func setString(cmd *cli.Command, name string, dst *string) {
	if cmd.IsSet(name) {
		*dst = cmd.String(name)
	}
}

func setInt(cmd *cli.Command, name string, dst *int) {
	if cmd.IsSet(name) {
		*dst = int(cmd.Int(name))
	}
}

// writeReports renders each report in input order. Failed files are
// reported inline and turn the exit status non-zero.
func writeReports(w io.Writer, reports []fileReport, renderer presentation.Renderer) error {
	failed := 0
	for i, rep := range reports {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if rep.err != nil {
			failed++
			if _, err := fmt.Fprintf(w, "== %s ==\n\nerror: %v\n", rep.path, rep.err); err != nil {
				return err
			}
			continue
		}
		if err := renderer.Render(w, rep.result); err != nil {
			return err
		}
		if rep.exported != "" {
			if _, err := fmt.Fprintf(w, "Exported: %s\n", rep.exported); err != nil {
				return err
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(reports))
	}
	return nil
}

func main() {
	if err := newCommand(os.Stdout, os.Stderr).Run(context.Background(), os.Args); err != nil {
		slog.Error("kwanalyze failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
