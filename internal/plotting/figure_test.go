package plotting

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	chart "github.com/wcharczuk/go-chart/v2"

	"gcpeaks/internal/config"
	"gcpeaks/internal/dataprocessing"
	apperrors "gcpeaks/internal/errors"
	"gcpeaks/pkg/contracts/domain"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func sampleTrace(t *testing.T) *domain.Trace {
	t.Helper()
	trace, err := domain.NewTrace("sample.CSV",
		[]float64{0, 1, 2, 3, 4, 5, 6, 7, 8},
		[]float64{1, 1, 4, 9, 4, 1, 6, 1, 1})
	require.NoError(t, err)
	return trace
}

func integrated(t *testing.T, trace *domain.Trace, w domain.PeakWindow) domain.PeakResult {
	t.Helper()
	result, err := dataprocessing.Integrate(trace, w)
	require.NoError(t, err)
	return result
}

func TestFigureRender(t *testing.T) {
	trace := sampleTrace(t)
	fig := NewFigure(trace, Options{Width: 400, Height: 200})

	require.NoError(t, fig.ShadePeak(integrated(t, trace, domain.PeakWindow{Name: "a", Start: 1, End: 5})))
	require.NoError(t, fig.ShadePeak(integrated(t, trace, domain.PeakWindow{Name: "b", Start: 5, End: 7})))
	assert.Equal(t, 2, fig.Bands())

	var buf bytes.Buffer
	require.NoError(t, fig.Render(&buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))

	img, err := png.Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())
}

func TestFigureDefaultsAndRanges(t *testing.T) {
	trace := sampleTrace(t)
	fig := NewFigure(trace, Options{
		XRange: &config.AxisRange{Min: 1, Max: 6},
		YRange: &config.AxisRange{Min: -2, Max: 12},
	})
	assert.Equal(t, config.PlotWidth, fig.opts.Width)
	assert.Equal(t, config.PlotHeight, fig.opts.Height)

	require.NoError(t, fig.ShadePeak(integrated(t, trace, domain.PeakWindow{Name: "a", Start: 1, End: 5})))

	path := filepath.Join(t.TempDir(), "sample.png")
	require.NoError(t, fig.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, pngMagic))
}

func TestShadePeakColors(t *testing.T) {
	trace := sampleTrace(t)
	fig := NewFigure(trace, Options{})

	for _, w := range []domain.PeakWindow{
		{Name: "a", Start: 1, End: 3},
		{Name: "b", Start: 3, End: 5},
		{Name: "c", Start: 5, End: 7},
	} {
		require.NoError(t, fig.ShadePeak(integrated(t, trace, w)))
	}

	for i, b := range fig.bands {
		assert.Equal(t, chart.GetDefaultColor(i), b.color)
		assert.NoError(t, b.Validate())
	}
	assert.Equal(t, 1, fig.bands[0].from)
	assert.Equal(t, 3, fig.bands[0].to)
}

func TestShadePeakRejectsForeignResult(t *testing.T) {
	trace := sampleTrace(t)

	other, err := domain.NewTrace("other.CSV", []float64{0, 1, 2}, []float64{0, 5, 0})
	require.NoError(t, err)
	foreign := integrated(t, other, domain.PeakWindow{Name: "p", Start: 0, End: 2})

	tests := []struct {
		name   string
		result domain.PeakResult
	}{
		{"empty baseline", domain.PeakResult{Window: domain.PeakWindow{Name: "x", Start: 1, End: 3}, StartIndex: 1, FinishIndex: 3}},
		{"baseline of another trace", foreign},
		{"finish past end", domain.PeakResult{Window: domain.PeakWindow{Name: "x", Start: 1, End: 50}, StartIndex: 1, FinishIndex: 50, Baseline: make([]float64, trace.Len())}},
		{"inverted indices", domain.PeakResult{Window: domain.PeakWindow{Name: "x", Start: 1, End: 3}, StartIndex: 3, FinishIndex: 1, Baseline: make([]float64, trace.Len())}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fig := NewFigure(trace, Options{})
			err := fig.ShadePeak(tt.result)
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.ErrTypeRender))
			assert.Zero(t, fig.Bands())
		})
	}
}

func TestShadePeakUsesResultIndices(t *testing.T) {
	trace := sampleTrace(t)
	result := integrated(t, trace, domain.PeakWindow{Name: "Peak1", Start: 1, End: 5})

	fig := NewFigure(trace, Options{})
	require.NoError(t, fig.ShadePeak(result))
	require.Equal(t, 1, fig.Bands())
	assert.Equal(t, result.StartIndex, fig.bands[0].from)
	assert.Equal(t, result.FinishIndex, fig.bands[0].to)
}

func TestBandValidate(t *testing.T) {
	tests := []struct {
		name    string
		b       band
		wantErr bool
	}{
		{"valid", band{time: []float64{0, 1}, signal: []float64{0, 1}, baseline: []float64{0, 0}, from: 0, to: 1}, false},
		{"short baseline", band{time: []float64{0, 1}, signal: []float64{0, 1}, baseline: []float64{0}, from: 0, to: 1}, true},
		{"range past end", band{time: []float64{0, 1}, signal: []float64{0, 1}, baseline: []float64{0, 0}, from: 0, to: 2}, true},
		{"inverted range", band{time: []float64{0, 1}, signal: []float64{0, 1}, baseline: []float64{0, 0}, from: 1, to: 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.b.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveUnwritablePath(t *testing.T) {
	fig := NewFigure(sampleTrace(t), Options{Width: 200, Height: 100})
	err := fig.Save(filepath.Join(t.TempDir(), "missing", "dir", "plot.png"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeStorage))
}
