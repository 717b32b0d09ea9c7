package plotting

import (
	"errors"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// band fills the polygon between the trace and a peak baseline over the
// samples in (from, to].
type band struct {
	name     string
	time     []float64
	signal   []float64
	baseline []float64
	from, to int
	color    drawing.Color
}

func (b band) GetName() string { return b.name }
func (b band) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }
func (b band) GetStyle() chart.Style { return chart.Style{FillColor: b.color} }

func (b band) Validate() error {
	if len(b.baseline) != len(b.time) || len(b.signal) != len(b.time) {
		return errors.New("band " + b.name + ": baseline and trace lengths differ")
	}
	if b.from < 0 || b.to >= len(b.time) || b.from > b.to {
		return errors.New("band " + b.name + ": sample range out of bounds")
	}
	return nil
}

// Render draws the band. Fewer than two covered samples enclose no area.
func (b band) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, _ chart.Style) {
	first := b.from + 1
	if b.to-first < 1 {
		return
	}

	point := func(x, y float64) (int, int) {
		px := canvasBox.Left + xrange.Translate(x)
		py := canvasBox.Bottom - yrange.Translate(y)
		return clamp(px, canvasBox.Left, canvasBox.Right), clamp(py, canvasBox.Top, canvasBox.Bottom)
	}

	r.SetFillColor(b.color)
	r.SetStrokeWidth(0)

	x, y := point(b.time[first], b.signal[first])
	r.MoveTo(x, y)
	for i := first + 1; i <= b.to; i++ {
		r.LineTo(point(b.time[i], b.signal[i]))
	}
	for i := b.to; i >= first; i-- {
		r.LineTo(point(b.time[i], b.baseline[i]))
	}
	r.Close()
	r.Fill()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
