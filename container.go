package staticdash

import "os"

// container is the shared base of Page and MiniPage: an ordered, append-only
// block sequence plus an optional explicit pixel width.
type container struct {
	width  int
	blocks []Block
}

// SetWidth sets an explicit render width in pixels. Zero restores the
// default inherit-from-parent behavior.
func (c *container) SetWidth(px int) {
	c.width = px
}

// Blocks returns the container's blocks in display order.
func (c *container) Blocks() []Block {
	return c.blocks
}

// effectiveWidth resolves the width cascade: own explicit width, else the
// width inherited from the rendering parent, else the global default.
func (c *container) effectiveWidth(inherited int) int {
	if c.width > 0 {
		return c.width
	}
	if inherited > 0 {
		return inherited
	}
	return DefaultPageWidth
}

// AddHeader appends a heading. Level must be 1, 2, 3, or 4.
func (c *container) AddHeader(text string, level int, opts ...BlockOption) error {
	if level < 1 || level > 4 {
		return &InvalidLevelError{Level: level}
	}
	o := applyBlockOptions(opts)
	c.blocks = append(c.blocks, &HeaderBlock{
		blockBase: blockBase{widthFrac: o.widthFrac},
		Text:      text,
		Level:     level,
	})
	return nil
}

// AddText appends markdown text. The text is interpreted at render time, so
// appending is backend-agnostic and never fails.
func (c *container) AddText(markdown string, opts ...BlockOption) {
	o := applyBlockOptions(opts)
	c.blocks = append(c.blocks, &TextBlock{
		blockBase: blockBase{widthFrac: o.widthFrac},
		Markdown:  markdown,
	})
}

// AddPlot appends a figure. The figure's rendering capability is not checked
// here; an unusable figure turns into an inline error placeholder at render
// time rather than failing the append.
func (c *container) AddPlot(fig Figure, opts ...BlockOption) {
	o := applyBlockOptions(opts)
	c.blocks = append(c.blocks, &PlotBlock{
		blockBase: blockBase{widthFrac: o.widthFrac},
		Figure:    fig,
		WidthPx:   o.widthPx,
		HeightPx:  o.heightPx,
		Align:     o.align,
	})
}

// AddTable appends tabular data.
func (c *container) AddTable(data Table, opts ...BlockOption) {
	o := applyBlockOptions(opts)
	c.blocks = append(c.blocks, &TableBlock{
		blockBase: blockBase{widthFrac: o.widthFrac},
		Data:      data,
	})
}

// AddDownload appends a download link for the file at path. The file must
// exist now; publishing later copies it into the site's downloads area under
// a fresh unique name. An empty label defaults to the file's base name at
// render time.
func (c *container) AddDownload(path, label string, opts ...BlockOption) error {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return &FileNotFoundError{Path: path}
	}
	o := applyBlockOptions(opts)
	c.blocks = append(c.blocks, &DownloadBlock{
		blockBase: blockBase{widthFrac: o.widthFrac},
		Path:      path,
		Label:     label,
	})
	return nil
}

// AddSyntax appends a code listing with a highlighting language hint.
func (c *container) AddSyntax(code, language string, opts ...BlockOption) {
	o := applyBlockOptions(opts)
	c.blocks = append(c.blocks, &SyntaxBlock{
		blockBase: blockBase{widthFrac: o.widthFrac},
		Code:      code,
		Language:  language,
	})
}

// AddMiniPage nests a row container. The mini page is rendered in place as a
// horizontal row of cells; it keeps its identity, so the same structure could
// be shared, but reparenting a container into its own descendant is not
// expressible through this API.
func (c *container) AddMiniPage(mini *MiniPage, opts ...BlockOption) {
	o := applyBlockOptions(opts)
	c.blocks = append(c.blocks, &MiniPageBlock{
		blockBase: blockBase{widthFrac: o.widthFrac},
		Mini:      mini,
	})
}
