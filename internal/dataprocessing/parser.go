package dataprocessing

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gcpeaks/internal/config"
	apperrors "gcpeaks/internal/errors"
	"gcpeaks/pkg/contracts/domain"
)

var errNonFinite = errors.New("value is not finite")

// ParseFile reads a chromatogram export from disk.
func ParseFile(filePath string) (*domain.Trace, error) {
	f, err := os.Open(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperrors.NewNotFoundError("trace file", err).WithContext("file", filePath)
		}
		return nil, apperrors.NewStorageError("failed to open trace file", err).WithContext("file", filePath)
	}
	defer f.Close()

	return ParseTrace(f, filepath.Base(filePath))
}

// ParseTrace reads comma-separated rows from r. The first two records are
// header; every later record carries time in field 1 and signal in field 2.
// A time value seen earlier in the file is dropped, keeping the first signal.
func ParseTrace(r io.Reader, source string) (*domain.Trace, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.ReuseRecord = true

	var (
		times      []float64
		signals    []float64
		seen       = make(map[float64]struct{})
		rows       int
		duplicates int
	)

	for record := 0; ; record++ {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.NewParsingError("failed to read trace", err).WithContext("file", source)
		}
		if record < config.HeaderRows {
			continue
		}
		rows++

		line, _ := reader.FieldPos(0)
		if len(fields) <= config.SignalField {
			return nil, malformedRow(source, line, fmt.Sprintf("expected at least %d fields, got %d", config.SignalField+1, len(fields)))
		}

		t, err := parseValue(fields[config.TimeField])
		if err != nil {
			return nil, malformedRow(source, line, fmt.Sprintf("time %q is not a finite number", fields[config.TimeField]))
		}
		v, err := parseValue(fields[config.SignalField])
		if err != nil {
			return nil, malformedRow(source, line, fmt.Sprintf("signal %q is not a finite number", fields[config.SignalField]))
		}

		if _, dup := seen[t]; dup {
			duplicates++
			continue
		}
		if n := len(times); n > 0 && t < times[n-1] {
			return nil, apperrors.NewParsingError("trace is not ordered by time",
				fmt.Errorf("%w: t=%g follows t=%g", domain.ErrNonMonotonicTrace, t, times[n-1])).
				WithContext("file", source).
				WithContext("line", line)
		}

		seen[t] = struct{}{}
		times = append(times, t)
		signals = append(signals, v)
	}

	if len(times) == 0 {
		return nil, apperrors.NewParsingError("trace has no data rows", domain.ErrEmptyTrace).WithContext("file", source)
	}

	slog.Debug("Parsed trace",
		slog.String("file", source),
		slog.Int("rows", rows),
		slog.Int("samples", len(times)),
		slog.Int("duplicates", duplicates))

	return &domain.Trace{Source: source, Time: times, Signal: signals}, nil
}

// parseValue accepts finite numbers only; NaN and Inf break time ordering
// and duplicate detection.
func parseValue(field string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errNonFinite
	}
	return v, nil
}

func malformedRow(source string, line int, detail string) error {
	return apperrors.NewParsingError(fmt.Sprintf("%s line %d", source, line),
		fmt.Errorf("%w: %s", domain.ErrMalformedRow, detail)).
		WithContext("file", source).
		WithContext("line", line)
}
