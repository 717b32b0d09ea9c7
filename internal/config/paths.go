package config

import (
	"log/slog"
	"path/filepath"
	"strings"
)

// Paths contains every file system location one batch run touches.
// It is derived from AnalysisConfig and is the single source of truth for
// output naming.
type Paths struct {
	DataDir         string
	ResultsDir      string
	SummaryCSV      string
	SummaryWorkbook string

	extension string
}

// NewPaths resolves the run paths for an analysis configuration
func NewPaths(cfg AnalysisConfig) *Paths {
	dataDir := filepath.Join(cfg.Root, cfg.Name)
	resultsDir := filepath.Join(dataDir, cfg.ResultsDir)
	summaryBase := SummaryPrefix + filepath.Base(cfg.Name)

	return &Paths{
		DataDir:         dataDir,
		ResultsDir:      resultsDir,
		SummaryCSV:      filepath.Join(resultsDir, summaryBase+SummaryCSVExt),
		SummaryWorkbook: filepath.Join(resultsDir, summaryBase+SummaryXLSXExt),
		extension:       cfg.Extension,
	}
}

// GetPlotPath returns the PNG path for a raw export in the results folder
func (p *Paths) GetPlotPath(filename string) string {
	return filepath.Join(p.ResultsDir, PlotFileName(filename, p.extension))
}

// PlotFileName strips the raw extension from filename and appends .png
func PlotFileName(filename, extension string) string {
	return strings.TrimSuffix(filepath.Base(filename), extension) + PlotExt
}

// LogPathResolution logs the resolved paths at debug level
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("Resolved run paths",
		slog.Group("paths",
			slog.String("data_dir", p.DataDir),
			slog.String("results_dir", p.ResultsDir),
			slog.String("summary_csv", p.SummaryCSV),
			slog.String("summary_workbook", p.SummaryWorkbook),
		),
	)
}
