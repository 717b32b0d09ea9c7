package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Sample is one time/signal pair of a fixture trace
type Sample struct {
	Time   float64
	Signal float64
}

// PeakTrace is the flat trace [(0,0),(1,0),(2,10),(3,0),(4,0)]; the window
// (1, 3) over it has area 10
func PeakTrace() []Sample {
	return []Sample{{0, 0}, {1, 0}, {2, 10}, {3, 0}, {4, 0}}
}

// TraceCSV renders samples in the export layout: two header rows, then
// "point,time,signal" rows
func TraceCSV(samples []Sample) string {
	var b strings.Builder
	b.WriteString("Sample,fixture\n")
	b.WriteString("Point,Time,Signal\n")
	for i, s := range samples {
		fmt.Fprintf(&b, "%d,%g,%g\n", i+1, s.Time, s.Signal)
	}
	return b.String()
}

// WriteTraceFile writes samples as an export named name in dir
func WriteTraceFile(t *testing.T, dir, name string, samples []Sample) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(TraceCSV(samples)), 0644); err != nil {
		t.Fatalf("failed to write trace fixture %s: %v", path, err)
	}
	return path
}

// WriteTraceFolder creates root/folder holding one export per name and
// returns root
func WriteTraceFolder(t *testing.T, folder string, samples []Sample, names ...string) string {
	t.Helper()

	root := t.TempDir()
	dir := filepath.Join(root, folder)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create fixture folder: %v", err)
	}
	for _, name := range names {
		WriteTraceFile(t, dir, name, samples)
	}
	return root
}
