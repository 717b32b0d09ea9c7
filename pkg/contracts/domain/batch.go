package domain

import "time"

// TimeColumn is the first column of every summary table.
const TimeColumn = "Time"

// FileResult holds the per-peak areas of one processed export, in
// peak-definition order.
type FileResult struct {
	Name     string       `json:"name"`
	Path     string       `json:"path"`
	PlotPath string       `json:"plot_path"`
	Sequence int          `json:"sequence"`
	Samples  int          `json:"samples"`
	Areas    []float64    `json:"areas"`
	Peaks    []PeakResult `json:"peaks"`
}

// BatchResult is the summary of one folder run. Rows are in processing
// order and Sequence counts processed files only.
type BatchResult struct {
	Folder     string       `json:"folder"`
	PeakNames  []string     `json:"peak_names"`
	Interval   float64      `json:"interval"`
	Rows       []FileResult `json:"rows"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
}

// Header returns the summary table header: Time followed by peak names.
func (b *BatchResult) Header() []string {
	header := make([]string, 0, len(b.PeakNames)+1)
	header = append(header, TimeColumn)
	return append(header, b.PeakNames...)
}

// TimeValue returns the synthetic sequencing time for the given row.
// It is a proxy for acquisition order, not a measured timestamp.
func (b *BatchResult) TimeValue(row int) float64 {
	return float64(row) * b.Interval
}

// Duration returns the wall-clock run time.
func (b *BatchResult) Duration() time.Duration {
	return b.FinishedAt.Sub(b.StartedAt)
}
