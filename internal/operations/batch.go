package operations

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"gcpeaks/internal/config"
	apperrors "gcpeaks/internal/errors"
	"gcpeaks/internal/exporter"
	"gcpeaks/internal/files"
	"gcpeaks/internal/infrastructure"
	"gcpeaks/internal/validation"
	"gcpeaks/pkg/contracts/domain"
)

// Batch runs the analysis over every raw export of one data folder
type Batch struct {
	analysis  config.AnalysisConfig
	output    config.OutputConfig
	paths     *config.Paths
	discovery *files.Discovery
	manager   *files.Manager
	validator *validation.FileValidator
	analyzer  *Analyzer
	summary   *exporter.SummaryExporter
	tracer    *BatchTracer
	reporter  *ConsoleReporter
	logger    *slog.Logger
}

// NewBatch wires a batch run from configuration. Operator progress goes to
// stdout; providers may be nil.
func NewBatch(cfg *config.Config, providers *infrastructure.TelemetryProviders, stdout io.Writer, logger *slog.Logger) (*Batch, error) {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	logger = infrastructure.WithComponent(logger, "batch")

	tracer, err := NewBatchTracer(providers)
	if err != nil {
		return nil, apperrors.NewConfigError("failed to set up telemetry", err)
	}

	paths := config.NewPaths(cfg.Analysis)
	paths.LogPathResolution(logger)

	return &Batch{
		analysis:  cfg.Analysis,
		output:    cfg.Output,
		paths:     paths,
		discovery: files.NewDiscovery(paths.DataDir),
		manager:   files.NewManager(logger),
		validator: validation.NewFileValidator(logger),
		analyzer:  NewAnalyzer(cfg.Analysis, tracer, logger),
		summary:   exporter.NewSummaryExporter(paths),
		tracer:    tracer,
		reporter:  NewConsoleReporter(stdout),
		logger:    logger,
	}, nil
}

// Paths returns the resolved run paths
func (b *Batch) Paths() *config.Paths {
	return b.paths
}

// Run analyses every matching file in name order and writes the summary.
// The first error aborts the run before any summary is written.
func (b *Batch) Run(ctx context.Context) (result *domain.BatchResult, err error) {
	ctx = infrastructure.EnsureRunID(ctx)
	started := time.Now()

	result = &domain.BatchResult{
		Folder:    filepath.Base(b.analysis.Name),
		PeakNames: b.analysis.Peaks.Names(),
		Interval:  b.analysis.Interval,
		StartedAt: started,
	}

	ctx, span := b.tracer.TraceBatch(ctx, b.paths.DataDir, len(b.analysis.Peaks))
	defer func() {
		b.tracer.RecordBatchCompletion(ctx, span, len(result.Rows), time.Since(started), err)
		span.End()
	}()

	b.logBatchStart(ctx)

	if err := b.validator.ValidateInputDirectory(b.paths.DataDir, b.analysis.Extension); err != nil {
		b.logBatchError(ctx, err)
		return result, err
	}
	if err := b.manager.EnsureDirectory(b.paths.ResultsDir); err != nil {
		err = apperrors.NewStorageError("failed to create results folder", err).
			WithContext("directory", b.paths.ResultsDir)
		b.logBatchError(ctx, err)
		return result, err
	}
	if err := b.validator.ValidateOutputDirectory(b.paths.ResultsDir); err != nil {
		b.logBatchError(ctx, err)
		return result, err
	}

	raw, err := b.discovery.FindRawFiles(b.paths.DataDir, b.analysis.Extension)
	if err != nil {
		err = apperrors.NewStorageError("failed to list data folder", err).WithContext("directory", b.paths.DataDir)
		b.logBatchError(ctx, err)
		return result, err
	}

	progress := NewProgressTracker("analyze", len(raw))
	for i, f := range raw {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("batch cancelled: %w", err)
		}

		b.reporter.FileStarted(f.Name)
		row, err := b.analyzer.analyze(ctx, b.paths.DataDir, b.paths.ResultsDir, f.Name, b.analysis.Peaks, i)
		if err != nil {
			b.logFileError(ctx, f.Name, err)
			return result, err
		}

		result.Rows = append(result.Rows, row)
		progress.Increment(f.Name)
		b.logFileComplete(ctx, progress, row)
	}

	if err := b.summary.WriteSummary(result); err != nil {
		b.logBatchError(ctx, err)
		return result, err
	}
	if b.output.Workbook {
		if err := b.summary.WriteWorkbook(result); err != nil {
			b.logBatchError(ctx, err)
			return result, err
		}
	}

	result.FinishedAt = time.Now()
	b.reporter.Finished(result.Duration())
	b.logBatchComplete(ctx, progress, result)

	return result, nil
}
