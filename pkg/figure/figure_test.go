package figure

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staticdash/staticdash"
)

// Compile-time capability checks: charts are resizable raster figures, HTML
// wrappers are vector figures.
var (
	_ staticdash.RasterFigure    = (*LineChart)(nil)
	_ staticdash.ResizableFigure = (*LineChart)(nil)
	_ staticdash.RasterFigure    = (*BarChart)(nil)
	_ staticdash.ResizableFigure = (*BarChart)(nil)
	_ staticdash.VectorFigure    = (*HTML)(nil)
	_ staticdash.RasterFigure    = (*PNG)(nil)
)

func decodeSize(t *testing.T, data []byte) (int, int) {
	t.Helper()
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	return cfg.Width, cfg.Height
}

func TestFromHTML(t *testing.T) {
	markup, err := FromHTML("<svg></svg>").EmbedHTML()
	require.NoError(t, err)
	assert.Equal(t, "<svg></svg>", markup)

	_, err = FromHTML("").EmbedHTML()
	require.Error(t, err)
}

func TestFromPNGValidatesData(t *testing.T) {
	chart := NewLineChart("")
	chart.AddSeries("", []float64{1, 2})
	valid, err := chart.RenderPNG()
	require.NoError(t, err)

	out, err := FromPNG(valid).RenderPNG()
	require.NoError(t, err)
	assert.Equal(t, valid, out)

	_, err = FromPNG([]byte("not a png")).RenderPNG()
	require.Error(t, err)
}

func TestLineChartRendersAtSize(t *testing.T) {
	c := NewLineChart("Latency")
	c.AddSeries("p50", []float64{1, 2, 3, 2})
	c.AddSeries("p99", []float64{4, 6, 5, 7})

	data, err := c.RenderPNG()
	require.NoError(t, err)
	w, h := decodeSize(t, data)
	assert.Equal(t, defaultChartWidth, w)
	assert.Equal(t, defaultChartHeight, h)
}

func TestLineChartResize(t *testing.T) {
	c := NewLineChart("")
	c.AddSeries("", []float64{0, 1})

	c.Resize(320, 200)
	data, err := c.RenderPNG()
	require.NoError(t, err)
	w, h := decodeSize(t, data)
	assert.Equal(t, 320, w)
	assert.Equal(t, 200, h)

	// Non-positive dimensions leave the current size in place.
	c.Resize(0, -5)
	w, h = c.Size()
	assert.Equal(t, 320, w)
	assert.Equal(t, 200, h)
}

func TestLineChartErrors(t *testing.T) {
	_, err := NewLineChart("empty").RenderPNG()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no series")

	c := NewLineChart("short")
	c.AddSeries("x", []float64{42})
	_, err = c.RenderPNG()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least two points")
}

func TestLineChartFlatSeries(t *testing.T) {
	c := NewLineChart("flat")
	c.AddSeries("const", []float64{5, 5, 5})
	_, err := c.RenderPNG()
	assert.NoError(t, err)
}

func TestBarChartRenders(t *testing.T) {
	c := NewBarChart("Counts")
	c.AddBar("a", 3)
	c.AddBar("b", 0)
	c.AddBar("c", -1)

	data, err := c.RenderPNG()
	require.NoError(t, err)
	w, h := decodeSize(t, data)
	assert.Equal(t, defaultChartWidth, w)
	assert.Equal(t, defaultChartHeight, h)
}

func TestBarChartEmpty(t *testing.T) {
	_, err := NewBarChart("empty").RenderPNG()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no bars")
}

func TestBarChartAllZero(t *testing.T) {
	c := NewBarChart("zeros")
	c.AddBar("a", 0)
	c.AddBar("b", 0)
	_, err := c.RenderPNG()
	assert.NoError(t, err)
}
