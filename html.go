package staticdash

import (
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/staticdash/staticdash/internal/assets"
)

// CDN references included in every page head. MathJax typesets the math
// spans the markdown converter passes through; Prism highlights syntax
// blocks; the plot loader is only referenced when the tree holds at least
// one web-embeddable figure.
const (
	mathJaxSrc   = "https://cdn.jsdelivr.net/npm/mathjax@3/es5/tex-mml-chtml.js"
	prismCSSHref = "https://cdn.jsdelivr.net/npm/prismjs@1.29.0/themes/prism-tomorrow.min.css"
	prismCoreSrc = "https://cdn.jsdelivr.net/npm/prismjs@1.29.0/components/prism-core.min.js"
	prismAutoSrc = "https://cdn.jsdelivr.net/npm/prismjs@1.29.0/plugins/autoloader/prism-autoloader.min.js"
	plotLibSrc   = "https://cdn.plot.ly/plotly-2.32.0.min.js"
)

// Publish renders the page tree as a multi-page HTML site under outputDir:
// index.html for the entry page, pages/<slug>.html for every page in the
// tree, plus the copied asset bundle and staged download artifacts.
func (d *Dashboard) Publish(outputDir string) error {
	if err := d.validate(); err != nil {
		return err
	}

	outputDir, err := filepath.Abs(outputDir)
	if err != nil {
		return fmt.Errorf("resolve output dir: %w", err)
	}
	pagesDir := filepath.Join(outputDir, "pages")
	downloadsDir := filepath.Join(outputDir, "downloads")
	for _, dir := range []string{pagesDir, downloadsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := assets.WriteTo(filepath.Join(outputDir, "assets")); err != nil {
		return fmt.Errorf("write assets: %w", err)
	}

	r := &htmlRenderer{
		dash:      d,
		sink:      &downloadSink{dir: downloadsDir, newID: d.newID, staged: make(map[string]string)},
		hasVector: pagesHaveVectorFigure(d.pages),
	}

	rootInh := inherited{
		width:        d.PageWidth,
		marking:      d.Marking,
		distribution: d.Distribution,
	}
	for _, p := range d.pages {
		if err := r.writeTree(pagesDir, p, rootInh); err != nil {
			return err
		}
	}

	// The entry page is duplicated at the site root with root-relative links.
	entry := d.pages[0]
	entryInh := rootInh
	doc := r.renderDocument(entry, resolvePage(entry, entryInh), "", "pages/")
	if err := os.WriteFile(filepath.Join(outputDir, "index.html"), []byte(doc), 0o644); err != nil {
		return fmt.Errorf("write index.html: %w", err)
	}
	return nil
}

// inherited carries the values that cascade down the page tree during a
// render: the effective width of the parent container and the resolved
// marking and distribution strings.
type inherited struct {
	width        int
	marking      string
	distribution string
}

// resolvePage applies a page's overrides to the inherited cascade. The
// result inherits the parent's resolved values, not the root defaults.
func resolvePage(p *Page, inh inherited) inherited {
	return inherited{
		width:        p.effectiveWidth(inh.width),
		marking:      p.marking.resolve(inh.marking),
		distribution: p.distribution.resolve(inh.distribution),
	}
}

type htmlRenderer struct {
	dash      *Dashboard
	sink      *downloadSink
	hasVector bool

	// emitted records the slugs written, in order. Rendering is depth-first:
	// a parent's file is written before any descendant's.
	emitted []string
}

// writeTree writes one page file and recurses into its children with this
// page's resolved cascade.
func (r *htmlRenderer) writeTree(pagesDir string, p *Page, inh inherited) error {
	res := resolvePage(p, inh)
	doc := r.renderDocument(p, res, "../", "")
	name := filepath.Join(pagesDir, p.Slug+".html")
	if err := os.WriteFile(name, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("write page %s: %w", p.Slug, err)
	}
	r.emitted = append(r.emitted, p.Slug)
	for _, child := range p.children {
		if err := r.writeTree(pagesDir, child, res); err != nil {
			return err
		}
	}
	return nil
}

// renderDocument produces the full HTML document for one page. assetPrefix
// is the relative path from the page file to the site root; navPrefix is the
// relative path to the pages directory.
func (r *htmlRenderer) renderDocument(p *Page, res inherited, assetPrefix, navPrefix string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(p.Title))
	fmt.Fprintf(&b, "<link rel=\"stylesheet\" href=\"%sassets/css/style.css\">\n", assetPrefix)
	fmt.Fprintf(&b, "<script defer src=\"%sassets/js/script.js\"></script>\n", assetPrefix)
	fmt.Fprintf(&b, "<script defer src=\"%s\"></script>\n", mathJaxSrc)
	fmt.Fprintf(&b, "<link rel=\"stylesheet\" href=\"%s\">\n", prismCSSHref)
	fmt.Fprintf(&b, "<script defer src=\"%s\"></script>\n", prismCoreSrc)
	fmt.Fprintf(&b, "<script defer src=\"%s\"></script>\n", prismAutoSrc)
	if r.hasVector {
		fmt.Fprintf(&b, "<script src=\"%s\"></script>\n", plotLibSrc)
	}
	b.WriteString("</head>\n")

	if res.marking != "" {
		b.WriteString("<body class=\"has-marking\">\n")
		fmt.Fprintf(&b, "<div class=\"marking-banner top\">%s</div>\n", html.EscapeString(res.marking))
	} else {
		b.WriteString("<body>\n")
	}

	r.renderSidebar(&b, p.Slug, assetPrefix, navPrefix)

	b.WriteString("<div id=\"content\">\n<div class=\"content-inner\">\n")
	b.WriteString(r.renderPageBody(p, res, assetPrefix))
	b.WriteString("</div>\n</div>\n")

	if res.marking != "" {
		fmt.Fprintf(&b, "<div class=\"marking-banner bottom\">%s", html.EscapeString(res.marking))
		if res.distribution != "" {
			fmt.Fprintf(&b, "<span class=\"distribution\">%s</span>", html.EscapeString(res.distribution))
		}
		b.WriteString("</div>\n")
	}

	b.WriteString("</body>\n</html>\n")
	return b.String()
}

// renderPageBody wraps the page's blocks in a single width-bounded vertical
// stack.
func (r *htmlRenderer) renderPageBody(p *Page, res inherited, assetPrefix string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<div class=\"page-wrapper\" style=\"max-width: %dpx;\">\n", res.width)
	for _, blk := range p.blocks {
		b.WriteString(r.renderBlock(blk, res, assetPrefix))
	}
	b.WriteString("</div>\n")
	return b.String()
}

// renderSidebar emits the navigation panel. Nav state is pre-rendered: the
// open page's link is active, and every ancestor group of the active page is
// open. Everything else starts collapsed.
func (r *htmlRenderer) renderSidebar(w io.Writer, currentSlug, assetPrefix, navPrefix string) {
	fmt.Fprintf(w, "<div id=\"sidebar\">\n")
	fmt.Fprintf(w, "<a class=\"sidebar-title\" href=\"%sindex.html\">%s</a>\n",
		assetPrefix, html.EscapeString(r.dash.Title))
	renderNavItems(w, r.dash.pages, currentSlug, navPrefix)
	fmt.Fprintf(w, "<div id=\"sidebar-footer\"><a href=\"https://github.com/staticdash/staticdash\" target=\"_blank\">Produced by staticdash</a></div>\n")
	fmt.Fprintf(w, "</div>\n")
}

func renderNavItems(w io.Writer, pages []*Page, currentSlug, navPrefix string) {
	for _, p := range pages {
		href := navPrefix + p.Slug + ".html"
		active := p.Slug == currentSlug

		linkClass := "nav-link"
		if active {
			linkClass += " active"
		}

		if len(p.children) == 0 {
			fmt.Fprintf(w, "<a class=\"%s\" href=\"%s\">%s</a>\n",
				linkClass, html.EscapeString(href), html.EscapeString(p.Title))
			continue
		}

		groupClass := "sidebar-group"
		if active || hasActiveDescendant(p, currentSlug) {
			groupClass += " open"
		}
		fmt.Fprintf(w, "<div class=\"%s\">\n", groupClass)
		fmt.Fprintf(w, "<a class=\"%s sidebar-parent\" href=\"%s\"><span class=\"sidebar-arrow\">▶</span>%s</a>\n",
			linkClass, html.EscapeString(href), html.EscapeString(p.Title))
		fmt.Fprintf(w, "<div class=\"sidebar-children\">\n")
		renderNavItems(w, p.children, currentSlug, navPrefix)
		fmt.Fprintf(w, "</div>\n</div>\n")
	}
}

func hasActiveDescendant(p *Page, currentSlug string) bool {
	for _, child := range p.children {
		if child.Slug == currentSlug || hasActiveDescendant(child, currentSlug) {
			return true
		}
	}
	return false
}

// pagesHaveVectorFigure reports whether any plot in the tree can embed
// itself as markup, which decides whether the chart library is loaded.
func pagesHaveVectorFigure(pages []*Page) bool {
	found := false
	walkPages(pages, 0, func(p *Page, depth int) {
		if blocksHaveVectorFigure(p.blocks) {
			found = true
		}
	})
	return found
}

func blocksHaveVectorFigure(blocks []Block) bool {
	for _, b := range blocks {
		switch blk := b.(type) {
		case *PlotBlock:
			if _, ok := blk.Figure.(VectorFigure); ok {
				return true
			}
		case *MiniPageBlock:
			if blocksHaveVectorFigure(blk.Mini.blocks) {
				return true
			}
		}
	}
	return false
}

// downloadSink stages download sources into the site's downloads directory
// under a unique name. Each distinct source path is copied once per publish,
// so repeated references share one artifact and repeated publishes to the
// same state differ only in the generated ids.
type downloadSink struct {
	dir    string
	newID  func() string
	staged map[string]string // source path -> stored file name
}

// Stage copies the source file into the downloads directory and returns the
// stored file name.
func (s *downloadSink) Stage(srcPath string) (string, error) {
	if name, ok := s.staged[srcPath]; ok {
		return name, nil
	}
	name := s.newID() + "_" + filepath.Base(srcPath)

	src, err := os.Open(srcPath)
	if err != nil {
		return "", fmt.Errorf("open download source: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("stage download: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("copy download: %w", err)
	}
	s.staged[srcPath] = name
	return name, nil
}
