// Package plotting renders a chromatogram trace with its integrated peaks
// shaded between the signal and their baselines, using go-chart.
package plotting
