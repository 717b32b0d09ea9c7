package exporter

import (
	"log/slog"

	"gcpeaks/internal/config"
	apperrors "gcpeaks/internal/errors"
	"gcpeaks/pkg/contracts/domain"
)

// SummaryExporter writes the per-file peak area table of a batch
type SummaryExporter struct {
	paths  *config.Paths
	writer *CSVWriter
}

// NewSummaryExporter creates a summary exporter writing into paths.ResultsDir
func NewSummaryExporter(paths *config.Paths) *SummaryExporter {
	return &SummaryExporter{paths: paths, writer: NewCSVWriter(paths)}
}

// SummaryRecords returns one record per processed file: the synthetic time
// value followed by the areas in peak order
func SummaryRecords(result *domain.BatchResult) [][]string {
	records := make([][]string, 0, len(result.Rows))
	for i, row := range result.Rows {
		record := make([]string, 0, len(row.Areas)+1)
		record = append(record, formatFloat(result.TimeValue(i)))
		for _, area := range row.Areas {
			record = append(record, formatFloat(area))
		}
		records = append(records, record)
	}
	return records
}

// WriteSummary writes the summary CSV. No index column, no BOM.
func (s *SummaryExporter) WriteSummary(result *domain.BatchResult) error {
	err := s.writer.WriteCSV(s.paths.SummaryCSV, WriteOptions{
		Headers: result.Header(),
		Records: SummaryRecords(result),
	})
	if err != nil {
		return apperrors.NewStorageError("failed to write summary", err).WithContext("path", s.paths.SummaryCSV)
	}

	slog.Info("Summary written",
		slog.String("path", s.paths.SummaryCSV),
		slog.Int("rows", len(result.Rows)),
		slog.Int("peaks", len(result.PeakNames)))
	return nil
}
