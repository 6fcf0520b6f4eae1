package staticdash

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/staticdash/staticdash/internal/markdown"
)

// PDFOptions configures the optional front matter of a PDF report.
type PDFOptions struct {
	// Title overrides the dashboard title on the title page.
	Title       string
	Author      string
	Affiliation string
	Date        string

	// TitlePage inserts a title page before the first page's content.
	TitlePage bool

	// TOC inserts a table-of-contents page listing the page tree, with each
	// entry linked to its section.
	TOC bool
}

// PublishPDF linearizes the page tree depth-first into a single paginated
// PDF report at path. Each page contributes a heading at a depth-derived
// level followed by its blocks; every heading becomes an outline bookmark.
// Plots always embed as raster images since the PDF medium cannot execute
// scripts.
func (d *Dashboard) PublishPDF(path string, opts PDFOptions) error {
	if err := d.validate(); err != nil {
		return err
	}
	w := newPDFWriter(d, opts)
	w.run()
	if err := w.pdf.Error(); err != nil {
		return fmt.Errorf("compose pdf: %w", err)
	}
	if err := w.pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

const (
	pdfBodySize = 10.5
	pdfLineHt   = 14
	pdfCodeSize = 9
	ptPerPx     = 0.75
)

type pdfWriter struct {
	dash *Dashboard
	opts PDFOptions
	pdf  *fpdf.Fpdf
	tr   func(string) string

	outline  outlineTracker
	links    map[string]int // page slug -> internal link id
	imageSeq int
}

func newPDFWriter(d *Dashboard, opts PDFOptions) *pdfWriter {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(54, 64, 54)
	pdf.SetAutoPageBreak(true, 64)

	w := &pdfWriter{
		dash:  d,
		opts:  opts,
		pdf:   pdf,
		tr:    pdf.UnicodeTranslatorFromDescriptor(""),
		links: make(map[string]int),
	}

	// The single linear document carries one overlay; per-page overrides
	// only apply to the HTML backend. No marking resolves to no overlay.
	if d.Marking != "" {
		marking := w.tr(d.Marking)
		distribution := w.tr(d.Distribution)
		pdf.SetHeaderFuncMode(func() {
			pdf.SetFont("Helvetica", "B", 8)
			pdf.SetTextColor(176, 58, 46)
			pdf.CellFormat(0, 12, marking, "", 1, "C", false, 0, "")
			pdf.SetTextColor(0, 0, 0)
			pdf.SetY(40)
		}, true)
		pdf.SetFooterFunc(func() {
			pdf.SetY(-40)
			pdf.SetFont("Helvetica", "B", 8)
			pdf.SetTextColor(176, 58, 46)
			pdf.CellFormat(0, 10, marking, "", 1, "C", false, 0, "")
			if distribution != "" {
				pdf.SetFont("Helvetica", "", 7)
				pdf.CellFormat(0, 9, distribution, "", 1, "C", false, 0, "")
			}
			pdf.SetTextColor(0, 0, 0)
		})
	} else {
		pdf.SetFooterFunc(func() {
			pdf.SetY(-36)
			pdf.SetFont("Helvetica", "", 8)
			pdf.SetTextColor(120, 120, 120)
			pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
			pdf.SetTextColor(0, 0, 0)
		})
	}

	title := opts.Title
	if title == "" {
		title = d.Title
	}
	pdf.SetTitle(title, true)
	if opts.Author != "" {
		pdf.SetAuthor(opts.Author, true)
	}
	return w
}

func (w *pdfWriter) usableWidth() float64 {
	pageW, _ := w.pdf.GetPageSize()
	left, _, right, _ := w.pdf.GetMargins()
	return pageW - left - right
}

func (w *pdfWriter) run() {
	walkPages(w.dash.pages, 0, func(p *Page, depth int) {
		w.links[p.Slug] = w.pdf.AddLink()
	})

	if w.opts.TitlePage {
		w.renderTitlePage()
	}
	if w.opts.TOC {
		w.renderTOC()
	}

	// Each top-level page's subtree starts on a fresh page; this is also the
	// explicit page break between consecutive subtrees.
	for _, p := range w.dash.pages {
		w.pdf.AddPage()
		w.renderPageTree(p, 0)
	}
}

func (w *pdfWriter) renderTitlePage() {
	pdf := w.pdf
	pdf.AddPage()

	title := w.opts.Title
	if title == "" {
		title = w.dash.Title
	}
	pdf.SetY(280)
	pdf.SetFont("Helvetica", "B", 28)
	pdf.MultiCell(0, 34, w.tr(title), "", "C", false)
	pdf.Ln(18)
	pdf.SetFont("Helvetica", "", 13)
	if w.opts.Author != "" {
		pdf.MultiCell(0, 18, w.tr(w.opts.Author), "", "C", false)
	}
	if w.opts.Affiliation != "" {
		pdf.MultiCell(0, 18, w.tr(w.opts.Affiliation), "", "C", false)
	}
	if w.opts.Date != "" {
		pdf.Ln(10)
		pdf.MultiCell(0, 18, w.tr(w.opts.Date), "", "C", false)
	}
}

func (w *pdfWriter) renderTOC() {
	pdf := w.pdf
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 24, "Contents", "", "L", false)
	pdf.Ln(8)

	walkPages(w.dash.pages, 0, func(p *Page, depth int) {
		pdf.SetFont("Helvetica", "", 11)
		pdf.SetX(54 + float64(depth)*18)
		pdf.CellFormat(0, 16, w.tr(p.Title), "", 1, "L", false, w.links[p.Slug], "")
	})
}

// renderPageTree emits one page's section and recurses into its children.
func (w *pdfWriter) renderPageTree(p *Page, depth int) {
	level := depth + 1
	if level > 4 {
		level = 4
	}
	w.pdf.SetLink(w.links[p.Slug], -1, -1)
	w.emitHeading(p.Title, level)

	blocks := p.blocks
	// NewPage prepends the title as a level-1 header block; the linear flow
	// already emitted the depth-derived section heading for it.
	if len(blocks) > 0 {
		if h, ok := blocks[0].(*HeaderBlock); ok && h.Level == 1 && h.Text == p.Title {
			blocks = blocks[1:]
		}
	}
	w.renderBlocks(blocks)

	for _, child := range p.children {
		w.pdf.Ln(10)
		w.renderPageTree(child, depth+1)
	}
}

func (w *pdfWriter) renderBlocks(blocks []Block) {
	for _, b := range blocks {
		w.renderBlock(b)
	}
}

// renderBlock dispatches one block into the flow. A failing block degrades
// to an inline diagnostic so the rest of the report still renders.
func (w *pdfWriter) renderBlock(b Block) {
	switch blk := b.(type) {
	case *HeaderBlock:
		w.emitHeading(blk.Text, blk.Level)
	case *TextBlock:
		w.renderMarkdown(blk.Markdown)
	case *PlotBlock:
		if err := w.renderPlot(blk); err != nil {
			w.renderErrorLine("plot", err)
		}
	case *TableBlock:
		if blk.Data == nil {
			w.renderErrorLine("table", fmt.Errorf("table data is nil"))
			return
		}
		w.renderTable(blk.Data)
	case *DownloadBlock:
		label := blk.Label
		if label == "" {
			label = filepath.Base(blk.Path)
		}
		w.pdf.SetFont("Helvetica", "I", pdfBodySize)
		w.pdf.MultiCell(0, pdfLineHt, w.tr(fmt.Sprintf("Attachment: %s (%s)", label, filepath.Base(blk.Path))), "", "L", false)
		w.pdf.Ln(4)
	case *SyntaxBlock:
		w.renderCode(blk.Code)
	case *MiniPageBlock:
		// The paginated flow has no horizontal row layout; nested container
		// content is linearized in block order.
		w.renderBlocks(blk.Mini.blocks)
	}
}

// emitHeading writes a section heading and records it as an outline entry at
// a contiguity-clamped depth.
func (w *pdfWriter) emitHeading(text string, level int) {
	sizes := map[int]float64{1: 20, 2: 16, 3: 13, 4: 11.5}
	size, ok := sizes[level]
	if !ok {
		size = 11.5
	}
	w.pdf.Ln(6)
	w.pdf.SetFont("Helvetica", "B", size)
	w.pdf.MultiCell(0, size*1.3, w.tr(text), "", "L", false)
	w.pdf.Bookmark(w.tr(text), w.outline.next(level), -1)
	w.pdf.Ln(4)
}

func (w *pdfWriter) renderMarkdown(src string) {
	for _, para := range markdown.Flatten(src) {
		switch para.Kind {
		case markdown.KindHeading:
			level := para.Level
			if level > 4 {
				level = 4
			}
			w.emitHeading(spanText(para.Spans), level)
		case markdown.KindCode:
			w.renderCode(spanText(para.Spans))
		case markdown.KindBullet:
			w.pdf.SetFont("Helvetica", "", pdfBodySize)
			w.pdf.SetX(66)
			w.pdf.Write(pdfLineHt, w.tr("• "))
			w.writeSpans(para.Spans)
			w.pdf.Ln(pdfLineHt)
		default:
			w.writeSpans(para.Spans)
			w.pdf.Ln(pdfLineHt + 4)
		}
	}
}

func (w *pdfWriter) writeSpans(spans []markdown.Span) {
	for _, s := range spans {
		if s.Code {
			w.pdf.SetFont("Courier", "", pdfBodySize)
		} else {
			style := ""
			if s.Bold {
				style += "B"
			}
			if s.Italic {
				style += "I"
			}
			w.pdf.SetFont("Helvetica", style, pdfBodySize)
		}
		w.pdf.Write(pdfLineHt, w.tr(s.Text))
	}
}

func spanText(spans []markdown.Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

func (w *pdfWriter) renderCode(code string) {
	w.pdf.SetFont("Courier", "", pdfCodeSize)
	w.pdf.SetFillColor(240, 240, 240)
	w.pdf.MultiCell(0, pdfCodeSize*1.4, w.tr(code), "", "L", true)
	w.pdf.Ln(6)
}

// renderPlot embeds the figure as a PNG. A vector-only figure cannot appear
// in the paginated medium and degrades to a diagnostic.
func (w *pdfWriter) renderPlot(blk *PlotBlock) error {
	raster, ok := blk.Figure.(RasterFigure)
	if !ok {
		return fmt.Errorf("figure %T has no raster capability", blk.Figure)
	}

	var png []byte
	err := withFigureSize(blk.Figure, blk.WidthPx, blk.HeightPx, func() error {
		var rerr error
		png, rerr = raster.RenderPNG()
		return rerr
	})
	if err != nil {
		return err
	}

	usable := w.usableWidth()
	width := usable
	if blk.WidthPx > 0 {
		width = float64(blk.WidthPx) * ptPerPx
		if width > usable {
			width = usable
		}
	}
	left, _, _, _ := w.pdf.GetMargins()
	x := left
	switch blk.Align {
	case AlignCenter:
		x = left + (usable-width)/2
	case AlignRight:
		x = left + usable - width
	}

	w.imageSeq++
	name := fmt.Sprintf("plot-%d", w.imageSeq)
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	w.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
	w.pdf.ImageOptions(name, x, 0, width, 0, true, opts, 0, "")
	w.pdf.Ln(8)
	return w.pdf.Error()
}

func (w *pdfWriter) renderTable(data Table) {
	cols := data.Columns()
	if len(cols) == 0 {
		return
	}
	colW := w.usableWidth() / float64(len(cols))

	w.pdf.SetFont("Helvetica", "B", pdfBodySize-0.5)
	w.pdf.SetFillColor(238, 241, 244)
	for _, col := range cols {
		w.pdf.CellFormat(colW, 18, w.tr(col), "1", 0, "L", true, 0, "")
	}
	w.pdf.Ln(-1)

	w.pdf.SetFont("Helvetica", "", pdfBodySize-0.5)
	for _, row := range data.Rows() {
		for i := range cols {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			w.pdf.CellFormat(colW, 16, w.tr(cell), "1", 0, "L", false, 0, "")
		}
		w.pdf.Ln(-1)
	}
	w.pdf.Ln(8)
}

func (w *pdfWriter) renderErrorLine(what string, err error) {
	w.pdf.SetFont("Helvetica", "I", pdfBodySize)
	w.pdf.SetTextColor(169, 68, 66)
	w.pdf.MultiCell(0, pdfLineHt, w.tr(fmt.Sprintf("[failed to render %s: %s]", what, err)), "", "L", false)
	w.pdf.SetTextColor(0, 0, 0)
	w.pdf.Ln(4)
}
