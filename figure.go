package staticdash

// Figure is an opaque chart or image handle attached with AddPlot. A useful
// figure implements at least one of VectorFigure or RasterFigure; the
// capability is probed when the block is rendered, so AddPlot itself never
// fails on an unsuitable figure.
type Figure interface{}

// VectorFigure produces web-embeddable markup. The markup may reference a
// charting library loaded once per page; implementations must not embed their
// own copy of the library per figure.
type VectorFigure interface {
	EmbedHTML() (string, error)
}

// RasterFigure produces a PNG image. The PDF backend requires this
// capability; the HTML backend falls back to it when a figure is not
// web-embeddable.
type RasterFigure interface {
	RenderPNG() ([]byte, error)
}

// ResizableFigure lets a plot block apply an explicit pixel size while the
// figure is serialized. Figures are shared mutable objects: the override is
// applied, the figure rendered, and the original size restored, so the change
// never leaks into caller-held references. This apply-restore sequence is not
// safe for concurrent renders of the same figure object.
type ResizableFigure interface {
	Size() (width, height int)
	Resize(width, height int)
}

// withFigureSize runs render with the figure temporarily resized to the given
// pixel dimensions. A zero dimension keeps the figure's own value. The
// original size is restored even when render fails.
func withFigureSize(fig Figure, widthPx, heightPx int, render func() error) error {
	r, ok := fig.(ResizableFigure)
	if !ok || (widthPx == 0 && heightPx == 0) {
		return render()
	}
	origW, origH := r.Size()
	w, h := widthPx, heightPx
	if w == 0 {
		w = origW
	}
	if h == 0 {
		h = origH
	}
	r.Resize(w, h)
	defer r.Resize(origW, origH)
	return render()
}
