package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "gcpeaks/internal/errors"
	"gcpeaks/internal/infrastructure"
	"gcpeaks/internal/shared/testutil"
)

func writeYAML(t *testing.T, root, logFile string) string {
	t.Helper()
	content := fmt.Sprintf(`
analysis:
  root: %q
  name: example_data
  peaks:
    Main: [1, 3]
    Wide: [0, 4]
  interval: 2
logging:
  level: info
  output: file
  file_path: %q
`, root, logFile)
	path := filepath.Join(t.TempDir(), "gcpeaks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRun(t *testing.T) {
	infrastructure.ResetLoggerForTesting()
	defer infrastructure.ResetLoggerForTesting()

	root := testutil.WriteTraceFolder(t, "example_data", testutil.PeakTrace(), "s1.CSV", "s2.CSV")
	logFile := filepath.Join(t.TempDir(), "gcpeaks.log")

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-config", writeYAML(t, root, logFile)}, &stdout, &stderr)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stdout.String(), "s1.CSV\ns2.CSV\nRun time: "), stdout.String())

	summary, err := os.ReadFile(filepath.Join(root, "example_data", "results", "Peak areas example_data.csv"))
	require.NoError(t, err)
	assert.Equal(t, "Time,Main,Wide\n0.0,10.0,10.0\n2.0,10.0,10.0\n", string(summary))

	require.NoError(t, infrastructure.CloseLogFile())
	logs, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(logs), `"run_id"`)
	assert.Contains(t, string(logs), "batch_complete")
}

func TestRunFlagOverrides(t *testing.T) {
	infrastructure.ResetLoggerForTesting()
	defer infrastructure.ResetLoggerForTesting()

	configured := testutil.WriteTraceFolder(t, "example_data", testutil.PeakTrace(), "a.CSV")
	override := testutil.WriteTraceFolder(t, "other", testutil.PeakTrace(), "b.CSV")
	logFile := filepath.Join(t.TempDir(), "gcpeaks.log")

	var stdout, stderr bytes.Buffer
	err := run(context.Background(),
		[]string{"-config", writeYAML(t, configured, logFile), "-root", override, "-name", "other"},
		&stdout, &stderr)
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), "b.CSV")
	assert.FileExists(t, filepath.Join(override, "other", "results", "Peak areas other.csv"))
	assert.NoDirExists(t, filepath.Join(configured, "example_data", "results"))
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name     string
		args     func(t *testing.T) []string
		wantType apperrors.ErrorType
	}{
		{
			name: "missing config file",
			args: func(t *testing.T) []string {
				return []string{"-config", filepath.Join(t.TempDir(), "absent.yaml")}
			},
			wantType: apperrors.ErrTypeNotFound,
		},
		{
			name: "missing data folder",
			args: func(t *testing.T) []string {
				return []string{"-config", writeYAML(t, t.TempDir(), filepath.Join(t.TempDir(), "l.log"))}
			},
			wantType: apperrors.ErrTypeNotFound,
		},
		{
			name: "malformed trace",
			args: func(t *testing.T) []string {
				root := testutil.WriteTraceFolder(t, "example_data", testutil.PeakTrace(), "a.CSV")
				bad := filepath.Join(root, "example_data", "b.CSV")
				require.NoError(t, os.WriteFile(bad, []byte("h\nh\n1,abc,2\n"), 0644))
				return []string{"-config", writeYAML(t, root, filepath.Join(t.TempDir(), "l.log"))}
			},
			wantType: apperrors.ErrTypeParsing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			infrastructure.ResetLoggerForTesting()
			defer infrastructure.ResetLoggerForTesting()

			var stdout, stderr bytes.Buffer
			err := run(context.Background(), tt.args(t), &stdout, &stderr)
			require.Error(t, err)
			assert.Equal(t, tt.wantType, apperrors.TypeOf(err))
			assert.NotContains(t, stdout.String(), "Run time")
		})
	}
}

func TestRunBadFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-interval", "2"}, &stdout, &stderr)
	require.Error(t, err)
	assert.Contains(t, stderr.String(), "flag provided but not defined")
}

func TestRunHelp(t *testing.T) {
	for _, arg := range []string{"-h", "-help"} {
		t.Run(arg, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			require.NoError(t, run(context.Background(), []string{arg}, &stdout, &stderr))
			assert.Contains(t, stderr.String(), "-config")
			assert.Empty(t, stdout.String())
		})
	}
}

func TestRunVersion(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"-version"}, &stdout, &stderr))
	assert.True(t, strings.HasPrefix(stdout.String(), "gcpeaks v"), stdout.String())
}
