package operations

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gcpeaks/internal/config"
	apperrors "gcpeaks/internal/errors"
	"gcpeaks/internal/infrastructure"
	"gcpeaks/internal/shared/testutil"
)

func batchConfig(root string) *config.Config {
	cfg := config.Default()
	cfg.Analysis.Root = root
	cfg.Analysis.Name = "example_data"
	cfg.Analysis.Interval = 0.5
	cfg.Analysis.Peaks = config.Peaks{
		{Name: "Peak2", Start: 1, End: 3},
		{Name: "Peak1", Start: 0, End: 4},
	}
	return cfg
}

func newTestBatch(t *testing.T, cfg *config.Config, providers *infrastructure.TelemetryProviders) (*Batch, *bytes.Buffer, *testutil.BufferedSlogHandler) {
	t.Helper()
	logger, handler := testutil.NewTestLogger(t)
	var stdout bytes.Buffer
	batch, err := NewBatch(cfg, providers, &stdout, logger)
	require.NoError(t, err)
	return batch, &stdout, handler
}

func TestBatchRun(t *testing.T) {
	root := testutil.WriteTraceFolder(t, "example_data", testutil.PeakTrace(), "c.CSV", "a.CSV", "e.CSV")
	dataDir := filepath.Join(root, "example_data")
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "b.txt"), []byte("not a trace"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "d.csv"), []byte("wrong case"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dataDir, "f.CSV"), 0755))

	batch, stdout, handler := newTestBatch(t, batchConfig(root), nil)

	result, err := batch.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Rows, 3)
	for i, want := range []string{"a.CSV", "c.CSV", "e.CSV"} {
		row := result.Rows[i]
		assert.Equal(t, want, row.Name)
		assert.Equal(t, i, row.Sequence)
		assert.Equal(t, []float64{10, 10}, row.Areas)
		assert.Equal(t, batch.Paths().GetPlotPath(row.Name), row.PlotPath)
		assert.FileExists(t, row.PlotPath)
	}
	assert.Equal(t, []float64{0, 0.5, 1.0}, []float64{result.TimeValue(0), result.TimeValue(1), result.TimeValue(2)})

	pngs, err := filepath.Glob(filepath.Join(dataDir, "results", "*.png"))
	require.NoError(t, err)
	assert.Len(t, pngs, 3)

	summary, err := os.ReadFile(filepath.Join(dataDir, "results", "Peak areas example_data.csv"))
	require.NoError(t, err)
	assert.Equal(t,
		"Time,Peak2,Peak1\n0.0,10.0,10.0\n0.5,10.0,10.0\n1.0,10.0,10.0\n",
		string(summary))
	assert.NoFileExists(t, filepath.Join(dataDir, "results", "Peak areas example_data.xlsx"))

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"a.CSV", "c.CSV", "e.CSV"}, lines[:3])
	assert.True(t, strings.HasPrefix(lines[3], "Run time: "))

	testutil.AssertNoErrors(t, handler)
	testutil.AssertLogContains(t, handler, slog.LevelDebug, "Output directory validated")
	assert.NoFileExists(t, filepath.Join(dataDir, "results", ".write_test"))
	assert.Equal(t, 3, countMessages(handler, "file_complete"))

	// No tracer configured, so records carry no trace id
	for _, r := range recordsWithMessage(handler, "file_complete") {
		assert.NotContains(t, r.Attrs, "trace_id")
	}
	complete := recordsWithMessage(handler, "batch_complete")
	require.Len(t, complete, 1)
	assert.Contains(t, complete[0].Attrs, "analysis_time")
	assert.Contains(t, complete[0].Attrs, "duration")
}

func TestBatchRunIsRepeatable(t *testing.T) {
	root := testutil.WriteTraceFolder(t, "example_data", testutil.PeakTrace(), "a.CSV")
	cfg := batchConfig(root)

	batch, _, _ := newTestBatch(t, cfg, nil)
	_, err := batch.Run(context.Background())
	require.NoError(t, err)

	// Results folder already present
	second, _, _ := newTestBatch(t, cfg, nil)
	result, err := second.Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, result.Rows, 1)
}

func TestBatchRunWorkbook(t *testing.T) {
	root := testutil.WriteTraceFolder(t, "example_data", testutil.PeakTrace(), "a.CSV", "b.CSV")
	cfg := batchConfig(root)
	cfg.Output.Workbook = true

	batch, _, _ := newTestBatch(t, cfg, nil)
	_, err := batch.Run(context.Background())
	require.NoError(t, err)

	assert.FileExists(t, batch.Paths().SummaryWorkbook)
}

func TestBatchRunAbortsOnBadFile(t *testing.T) {
	root := testutil.WriteTraceFolder(t, "example_data", testutil.PeakTrace(), "a.CSV", "c.CSV")
	dataDir := filepath.Join(root, "example_data")
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "b.CSV"), []byte("h1\nh2\n1,0\n"), 0644))

	batch, stdout, handler := newTestBatch(t, batchConfig(root), nil)

	result, err := batch.Run(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
	assert.Len(t, result.Rows, 1)

	assert.NoFileExists(t, batch.Paths().SummaryCSV)
	assert.NotContains(t, stdout.String(), "c.CSV")
	assert.NotContains(t, stdout.String(), "Run time")
	testutil.AssertLogAttr(t, handler, "file", "b.CSV")
}

func TestBatchRunMissingFolder(t *testing.T) {
	cfg := batchConfig(t.TempDir())

	batch, _, _ := newTestBatch(t, cfg, nil)
	_, err := batch.Run(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNotFound))
	assert.NoDirExists(t, batch.Paths().ResultsDir)
}

func TestBatchRunCancelled(t *testing.T) {
	root := testutil.WriteTraceFolder(t, "example_data", testutil.PeakTrace(), "a.CSV")
	batch, _, _ := newTestBatch(t, batchConfig(root), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := batch.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, batch.Paths().SummaryCSV)
}

func TestBatchRunTelemetry(t *testing.T) {
	root := testutil.WriteTraceFolder(t, "example_data", testutil.PeakTrace(), "a.CSV", "b.CSV")
	telemetryDir := t.TempDir()
	tcfg := config.TelemetryConfig{
		ServiceName: "gcpeaks-test",
		TraceFile:   filepath.Join(telemetryDir, "trace.json"),
		MetricsFile: filepath.Join(telemetryDir, "metrics.prom"),
	}
	logger, _ := testutil.NewTestLogger(t)
	providers, err := infrastructure.InitializeTelemetry(tcfg, logger)
	require.NoError(t, err)

	batch, _, handler := newTestBatch(t, batchConfig(root), providers)
	_, err = batch.Run(infrastructure.WithRunID(context.Background(), "run-1"))
	require.NoError(t, err)
	require.NoError(t, providers.Shutdown(context.Background()))

	spans, err := os.ReadFile(tcfg.TraceFile)
	require.NoError(t, err)

	files := recordsWithMessage(handler, "file_complete")
	require.Len(t, files, 2)
	for _, r := range files {
		traceID, ok := r.Attrs["trace_id"].(string)
		require.True(t, ok, "file_complete without trace_id: %v", r.Attrs)
		assert.Len(t, traceID, 32)
		assert.Contains(t, string(spans), traceID)
	}
	assert.Contains(t, string(spans), BatchSpanName)
	assert.Contains(t, string(spans), FileSpanName)
	assert.Contains(t, string(spans), PeakEventName)
	assert.Contains(t, string(spans), "file.samples")
	assert.Contains(t, string(spans), "run-1")

	metrics, err := os.ReadFile(tcfg.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "gcpeaks_files_processed_total")
	assert.Contains(t, string(metrics), "gcpeaks_peaks_integrated_total")
}

func countMessages(handler *testutil.BufferedSlogHandler, message string) int {
	return len(recordsWithMessage(handler, message))
}

func recordsWithMessage(handler *testutil.BufferedSlogHandler, message string) []testutil.LogRecord {
	var out []testutil.LogRecord
	for _, r := range handler.GetRecords() {
		if r.Message == message {
			out = append(out, r)
		}
	}
	return out
}
