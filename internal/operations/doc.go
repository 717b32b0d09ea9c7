// Package operations runs the peak analysis over a folder of exports.
//
// Core Components:
//
// Analyzer: processes one export. It loads the trace, integrates every
// configured window in order, shades each integrated peak on a fresh figure
// and saves the PNG into the results folder.
//
// Batch: processes a whole folder. It validates the input folder, creates
// the results folder, discovers the raw files in name order, analyses them
// one at a time and writes the summary table. The first failing file aborts
// the run and no summary is written.
//
// BatchTracer: wraps both in OpenTelemetry spans and records the batch
// metrics.
//
// ConsoleReporter: prints the operator-facing progress lines (one file name
// per processed file and the final run time).
//
// Example usage:
//
//	batch, err := operations.NewBatch(cfg, providers, os.Stdout, logger)
//	if err != nil {
//	    return err
//	}
//	result, err := batch.Run(ctx)
package operations
