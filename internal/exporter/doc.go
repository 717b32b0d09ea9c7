// Package exporter writes the batch summary table.
//
// CSVWriter is the low-level writer; paths relative to it resolve into the
// results folder. SummaryExporter turns a domain.BatchResult into the
// "Peak areas <folder>.csv" table and, optionally, an .xlsx workbook with
// the same rows.
//
// Example usage:
//
//	summary := exporter.NewSummaryExporter(paths)
//	if err := summary.WriteSummary(result); err != nil {
//	    return err
//	}
package exporter
