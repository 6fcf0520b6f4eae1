package staticdash

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithFigureSizeAppliesAndRestores(t *testing.T) {
	fig := newFakeRasterFigure() // starts at 10x10

	err := withFigureSize(fig, 640, 480, func() error {
		w, h := fig.Size()
		assert.Equal(t, 640, w)
		assert.Equal(t, 480, h)
		return nil
	})
	require.NoError(t, err)

	w, h := fig.Size()
	assert.Equal(t, 10, w, "width must be restored")
	assert.Equal(t, 10, h, "height must be restored")
}

func TestWithFigureSizeRestoresOnError(t *testing.T) {
	fig := newFakeRasterFigure()

	err := withFigureSize(fig, 200, 100, func() error {
		return errors.New("render failed")
	})
	require.Error(t, err)

	w, h := fig.Size()
	assert.Equal(t, 10, w)
	assert.Equal(t, 10, h)
}

func TestWithFigureSizePartialOverrideKeepsOtherDimension(t *testing.T) {
	fig := newFakeRasterFigure()

	err := withFigureSize(fig, 0, 300, func() error {
		w, h := fig.Size()
		assert.Equal(t, 10, w)
		assert.Equal(t, 300, h)
		return nil
	})
	require.NoError(t, err)
}

func TestWithFigureSizeNonResizable(t *testing.T) {
	// Figures without the resize capability render at their own size.
	err := withFigureSize(brokenFigure{}, 100, 100, func() error { return nil })
	require.NoError(t, err)
}

func TestPlotRenderUsesTemporarySize(t *testing.T) {
	fig := newFakeRasterFigure()
	r := &htmlRenderer{}
	out := r.renderPlot(&PlotBlock{Figure: fig, WidthPx: 64, HeightPx: 32})

	assert.Contains(t, out, "data:image/png;base64,")
	require.Len(t, fig.renderedAt, 1)
	assert.Equal(t, "64x32", fig.renderedAt[0])

	w, h := fig.Size()
	assert.Equal(t, 10, w)
	assert.Equal(t, 10, h)
}
