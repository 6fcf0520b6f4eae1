package staticdash

import (
	"encoding/base64"
	"fmt"
	"html"
	"path/filepath"
	"strings"

	"github.com/staticdash/staticdash/internal/markdown"
)

// renderBlock dispatches one block to its markup. Render failures never
// abort the page: a failing block becomes an inline diagnostic and the rest
// of the container still renders.
func (r *htmlRenderer) renderBlock(b Block, inh inherited, assetPrefix string) string {
	var inner string
	switch blk := b.(type) {
	case *HeaderBlock:
		inner = fmt.Sprintf("<h%d>%s</h%d>\n", blk.Level, html.EscapeString(blk.Text), blk.Level)
	case *TextBlock:
		frag, err := markdown.Render(blk.Markdown)
		if err != nil {
			inner = renderError("text", err)
		} else {
			inner = "<div class=\"text-block\">\n" + frag + "</div>\n"
		}
	case *PlotBlock:
		inner = r.renderPlot(blk)
	case *TableBlock:
		inner = renderTable(blk.Data)
	case *DownloadBlock:
		inner = r.renderDownload(blk, assetPrefix)
	case *SyntaxBlock:
		inner = renderSyntax(blk)
	case *MiniPageBlock:
		inner = r.renderMiniPage(blk.Mini, inh, assetPrefix)
	default:
		inner = renderError("block", fmt.Errorf("unknown block kind %T", b))
	}
	return wrapWidth(inner, b.WidthFraction())
}

// wrapWidth centers a block scaled to a fraction of its container's width.
func wrapWidth(inner string, frac float64) string {
	if frac <= 0 {
		return inner
	}
	return fmt.Sprintf("<div class=\"block-outer\"><div style=\"width: %g%%;\">\n%s</div></div>\n",
		frac*100, inner)
}

// renderMiniPage lays the child container out as a horizontal row of cells,
// bounded by its own effective width.
func (r *htmlRenderer) renderMiniPage(mini *MiniPage, inh inherited, assetPrefix string) string {
	width := mini.effectiveWidth(inh.width)
	childInh := inh
	childInh.width = width

	var b strings.Builder
	fmt.Fprintf(&b, "<div class=\"minipage-row\" style=\"max-width: %dpx; margin: 0 auto; width: 100%%;\">\n", width)
	for _, blk := range mini.blocks {
		b.WriteString("<div class=\"minipage-cell\">\n")
		b.WriteString(r.renderBlock(blk, childInh, assetPrefix))
		b.WriteString("</div>\n")
	}
	b.WriteString("</div>\n")
	return b.String()
}

// renderPlot probes the figure's capability: embeddable markup first, raster
// fallback. An explicit pixel size is applied for the duration of the
// serialization only.
func (r *htmlRenderer) renderPlot(blk *PlotBlock) string {
	var markup string
	err := withFigureSize(blk.Figure, blk.WidthPx, blk.HeightPx, func() error {
		switch fig := blk.Figure.(type) {
		case VectorFigure:
			frag, err := fig.EmbedHTML()
			if err != nil {
				return err
			}
			markup = frag
			return nil
		case RasterFigure:
			png, err := fig.RenderPNG()
			if err != nil {
				return err
			}
			markup = fmt.Sprintf("<img alt=\"plot\" src=\"data:image/png;base64,%s\">",
				base64.StdEncoding.EncodeToString(png))
			return nil
		default:
			return fmt.Errorf("figure %T supports neither embeddable markup nor raster output", blk.Figure)
		}
	})
	if err != nil {
		return renderError("plot", err)
	}
	return fmt.Sprintf("<div class=\"%s\">\n%s\n</div>\n", alignClass(blk.Align), markup)
}

func alignClass(a Alignment) string {
	switch a {
	case AlignLeft:
		return "plot-left"
	case AlignRight:
		return "plot-right"
	default:
		return "plot-center"
	}
}

func renderTable(data Table) string {
	if data == nil {
		return renderError("table", fmt.Errorf("table data is nil"))
	}
	cols := data.Columns()
	rows := data.Rows()

	var b strings.Builder
	b.WriteString("<table class=\"dash-table table-striped table-hover sortable\">\n<thead>\n<tr>")
	for _, col := range cols {
		fmt.Fprintf(&b, "<th>%s</th>", html.EscapeString(col))
	}
	b.WriteString("</tr>\n</thead>\n<tbody>\n")
	for _, row := range rows {
		b.WriteString("<tr>")
		for _, cell := range row {
			fmt.Fprintf(&b, "<td>%s</td>", html.EscapeString(cell))
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</tbody>\n</table>\n")
	return b.String()
}

func (r *htmlRenderer) renderDownload(blk *DownloadBlock, assetPrefix string) string {
	name, err := r.sink.Stage(blk.Path)
	if err != nil {
		return renderError("download", err)
	}
	label := blk.Label
	if label == "" {
		label = filepath.Base(blk.Path)
	}
	return fmt.Sprintf("<div><a class=\"download-button\" href=\"%sdownloads/%s\" download>%s</a></div>\n",
		assetPrefix, html.EscapeString(name), html.EscapeString(label))
}

func renderSyntax(blk *SyntaxBlock) string {
	return fmt.Sprintf("<pre class=\"syntax-block\"><code class=\"language-%s\">%s</code></pre>\n",
		html.EscapeString(blk.Language), html.EscapeString(blk.Code))
}

func renderError(what string, err error) string {
	return fmt.Sprintf("<div class=\"render-error\">failed to render %s: %s</div>\n",
		what, html.EscapeString(err.Error()))
}
