package exporter

import (
	"math"
	"strconv"
	"strings"
)

// formatFloat writes the shortest representation that round-trips, keeping a
// ".0" on integral values and switching to exponent form outside
// [1e-4, 1e16), so 0 is "0.0" and 1234.5678 is "1234.5678". NaN is empty.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ""
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
