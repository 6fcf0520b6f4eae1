package staticdash

// Block is a single typed content unit held by a container. The set of block
// kinds is closed: each rendering backend dispatches on the concrete type.
// Blocks are append-only; once added to a container they are never mutated or
// removed through the public API.
type Block interface {
	// WidthFraction is the per-block width override as a fraction of the
	// container's effective width (0 < f <= 1), or 0 when the block spans the
	// full container width.
	WidthFraction() float64

	blockNode()
}

// blockBase carries the fields shared by every block kind.
type blockBase struct {
	widthFrac float64
}

func (b *blockBase) WidthFraction() float64 { return b.widthFrac }
func (b *blockBase) blockNode()             {}

// Alignment positions a plot inside its container slot.
type Alignment int

const (
	AlignCenter Alignment = iota
	AlignLeft
	AlignRight
)

// HeaderBlock is a section heading with a semantic level between 1 and 4.
type HeaderBlock struct {
	blockBase
	Text  string
	Level int
}

// TextBlock holds markdown text. Interpretation is deferred to render time:
// the HTML backend converts it to markup with $...$ and $$...$$ math spans
// passed through verbatim for client-side typesetting, while the PDF backend
// walks the markdown tree into styled paragraphs.
type TextBlock struct {
	blockBase
	Markdown string
}

// PlotBlock holds an opaque figure handle. The figure's rendering capability
// (web-embeddable markup vs. raster image) is probed at render time, not at
// append time.
type PlotBlock struct {
	blockBase
	Figure   Figure
	WidthPx  int // explicit pixel width, 0 = figure's own
	HeightPx int // explicit pixel height, 0 = figure's own
	Align    Alignment
}

// TableBlock holds tabular data rendered as an HTML table or a PDF grid.
type TableBlock struct {
	blockBase
	Data Table
}

// DownloadBlock links a staged copy of a source file. The source path was
// verified to exist when the block was appended.
type DownloadBlock struct {
	blockBase
	Path  string
	Label string
}

// SyntaxBlock holds a code listing. Language is a free-form highlighting hint.
type SyntaxBlock struct {
	blockBase
	Code     string
	Language string
}

// MiniPageBlock nests a row container inside its parent. The child is
// rendered in place and inherits the parent's effective width.
type MiniPageBlock struct {
	blockBase
	Mini *MiniPage
}

// BlockOption adjusts an appended block.
type BlockOption func(*blockOptions)

type blockOptions struct {
	widthFrac float64
	widthPx   int
	heightPx  int
	align     Alignment
}

// WithWidth sets the block's width as a fraction of the container's effective
// width. The block is centered inside the remaining space. Fractions outside
// (0, 1] are ignored.
func WithWidth(fraction float64) BlockOption {
	return func(o *blockOptions) {
		if fraction > 0 && fraction <= 1 {
			o.widthFrac = fraction
		}
	}
}

// WithPixelSize sets an explicit pixel size for a plot. Zero leaves the
// corresponding dimension at the figure's own size. Ignored by other kinds.
func WithPixelSize(width, height int) BlockOption {
	return func(o *blockOptions) {
		o.widthPx = width
		o.heightPx = height
	}
}

// WithAlign sets the horizontal alignment of a plot. Ignored by other kinds.
func WithAlign(a Alignment) BlockOption {
	return func(o *blockOptions) {
		o.align = a
	}
}

func applyBlockOptions(opts []BlockOption) blockOptions {
	var o blockOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
