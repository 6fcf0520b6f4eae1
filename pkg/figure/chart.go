package figure

import (
	"bytes"
	"fmt"
	"math"

	"github.com/fogleman/gg"
)

const (
	defaultChartWidth  = 800
	defaultChartHeight = 450
	chartMargin        = 48.0
)

// seriesColors is the palette cycled through by multi-series charts.
var seriesColors = [][3]float64{
	{0.24, 0.49, 0.69},
	{0.85, 0.37, 0.22},
	{0.30, 0.62, 0.34},
	{0.58, 0.40, 0.68},
	{0.55, 0.55, 0.20},
}

// chartBase carries the mutable pixel size shared by the chart types, so a
// plot block can apply a temporary size override and restore it afterwards.
type chartBase struct {
	width  int
	height int
}

// Size returns the chart's pixel dimensions.
func (c *chartBase) Size() (int, int) { return c.width, c.height }

// Resize sets the chart's pixel dimensions.
func (c *chartBase) Resize(width, height int) {
	if width > 0 {
		c.width = width
	}
	if height > 0 {
		c.height = height
	}
}

// Series is one named line in a line chart. Points are plotted at equally
// spaced x positions in value order.
type Series struct {
	Name   string
	Values []float64
}

// LineChart is a raster figure plotting one or more float series.
type LineChart struct {
	chartBase
	Title  string
	series []Series
}

// NewLineChart creates an empty line chart at the default size.
func NewLineChart(title string) *LineChart {
	return &LineChart{
		chartBase: chartBase{width: defaultChartWidth, height: defaultChartHeight},
		Title:     title,
	}
}

// AddSeries appends a named series.
func (c *LineChart) AddSeries(name string, values []float64) {
	c.series = append(c.series, Series{Name: name, Values: values})
}

// RenderPNG draws the chart and encodes it as PNG.
func (c *LineChart) RenderPNG() ([]byte, error) {
	if len(c.series) == 0 {
		return nil, fmt.Errorf("line chart %q has no series", c.Title)
	}

	maxLen := 0
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range c.series {
		if len(s.Values) > maxLen {
			maxLen = len(s.Values)
		}
		for _, v := range s.Values {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if maxLen < 2 {
		return nil, fmt.Errorf("line chart %q needs at least two points", c.Title)
	}
	if lo == hi {
		lo, hi = lo-1, hi+1
	}

	dc := newChartContext(c.width, c.height, c.Title)
	plotW := float64(c.width) - 2*chartMargin
	plotH := float64(c.height) - 2*chartMargin

	xAt := func(i int) float64 {
		return chartMargin + plotW*float64(i)/float64(maxLen-1)
	}
	yAt := func(v float64) float64 {
		return chartMargin + plotH*(1-(v-lo)/(hi-lo))
	}

	drawAxes(dc, c.width, c.height)
	for si, s := range c.series {
		col := seriesColors[si%len(seriesColors)]
		dc.SetRGB(col[0], col[1], col[2])
		dc.SetLineWidth(2)
		for i := 1; i < len(s.Values); i++ {
			dc.DrawLine(xAt(i-1), yAt(s.Values[i-1]), xAt(i), yAt(s.Values[i]))
		}
		dc.Stroke()
		if s.Name != "" {
			dc.DrawStringAnchored(s.Name, float64(c.width)-chartMargin, chartMargin+float64(si)*14, 1, 0)
		}
	}

	return encodeContext(dc)
}

// BarChart is a raster figure plotting labeled values as vertical bars.
type BarChart struct {
	chartBase
	Title  string
	labels []string
	values []float64
}

// NewBarChart creates an empty bar chart at the default size.
func NewBarChart(title string) *BarChart {
	return &BarChart{
		chartBase: chartBase{width: defaultChartWidth, height: defaultChartHeight},
		Title:     title,
	}
}

// AddBar appends one labeled bar.
func (c *BarChart) AddBar(label string, value float64) {
	c.labels = append(c.labels, label)
	c.values = append(c.values, value)
}

// RenderPNG draws the chart and encodes it as PNG.
func (c *BarChart) RenderPNG() ([]byte, error) {
	if len(c.values) == 0 {
		return nil, fmt.Errorf("bar chart %q has no bars", c.Title)
	}

	hi := 0.0
	for _, v := range c.values {
		if v > hi {
			hi = v
		}
	}
	if hi == 0 {
		hi = 1
	}

	dc := newChartContext(c.width, c.height, c.Title)
	drawAxes(dc, c.width, c.height)

	plotW := float64(c.width) - 2*chartMargin
	plotH := float64(c.height) - 2*chartMargin
	slot := plotW / float64(len(c.values))
	barW := slot * 0.7

	for i, v := range c.values {
		if v < 0 {
			v = 0
		}
		h := plotH * v / hi
		x := chartMargin + slot*float64(i) + (slot-barW)/2
		y := float64(c.height) - chartMargin - h

		col := seriesColors[0]
		dc.SetRGB(col[0], col[1], col[2])
		dc.DrawRectangle(x, y, barW, h)
		dc.Fill()

		dc.SetRGB(0.2, 0.2, 0.2)
		dc.DrawStringAnchored(c.labels[i], x+barW/2, float64(c.height)-chartMargin+14, 0.5, 0.5)
	}

	return encodeContext(dc)
}

func newChartContext(width, height int, title string) *gg.Context {
	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	if title != "" {
		dc.SetRGB(0.1, 0.1, 0.1)
		dc.DrawStringAnchored(title, float64(width)/2, chartMargin/2, 0.5, 0.5)
	}
	return dc
}

func drawAxes(dc *gg.Context, width, height int) {
	dc.SetRGB(0.4, 0.4, 0.4)
	dc.SetLineWidth(1)
	dc.DrawLine(chartMargin, chartMargin, chartMargin, float64(height)-chartMargin)
	dc.DrawLine(chartMargin, float64(height)-chartMargin, float64(width)-chartMargin, float64(height)-chartMargin)
	dc.Stroke()
}

func encodeContext(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode chart png: %w", err)
	}
	return buf.Bytes(), nil
}
