package exporter

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"gcpeaks/internal/config"
	apperrors "gcpeaks/internal/errors"
	"gcpeaks/pkg/contracts/domain"
)

// WriteWorkbook writes the summary table to an .xlsx workbook with numeric
// cells on a single sheet
func (s *SummaryExporter) WriteWorkbook(result *domain.BatchResult) error {
	if err := writeWorkbook(s.paths.SummaryWorkbook, result); err != nil {
		return apperrors.NewStorageError("failed to write summary workbook", err).
			WithContext("path", s.paths.SummaryWorkbook)
	}

	slog.Info("Summary workbook written",
		slog.String("path", s.paths.SummaryWorkbook),
		slog.Int("rows", len(result.Rows)))
	return nil
}

func writeWorkbook(path string, result *domain.BatchResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), config.SummarySheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := result.Header()
	headerRow := make([]interface{}, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(config.SummarySheet, "A1", &headerRow); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range result.Rows {
		values := make([]interface{}, 0, len(row.Areas)+1)
		values = append(values, result.TimeValue(i))
		for _, area := range row.Areas {
			values = append(values, area)
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(config.SummarySheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	return f.SaveAs(path)
}
