package staticdash

// overrideValue is a tri-state string override: unset (inherit the parent's
// resolved value), set to text, or set to empty (explicitly suppress).
type overrideValue struct {
	set  bool
	text string
}

func (v overrideValue) resolve(inherited string) string {
	if v.set {
		return v.text
	}
	return inherited
}

// Page is a top-level or nested site page: a vertical stack of blocks with an
// identity used for navigation and file naming. Pages may own child pages,
// forming the navigation tree.
type Page struct {
	container

	Slug  string
	Title string

	marking      overrideValue
	distribution overrideValue
	children     []*Page
}

// NewPage creates a page. The slug becomes the output file name stem and must
// be unique within a dashboard tree; Publish rejects collisions. The title is
// prepended as a level-1 header block.
func NewPage(slug, title string) *Page {
	p := &Page{Slug: slug, Title: title}
	p.blocks = append(p.blocks, &HeaderBlock{Text: title, Level: 1})
	return p
}

// AddSubpage appends a child page. Children render as nested entries under
// this page in the navigation tree and inherit its resolved marking,
// distribution, and width.
func (p *Page) AddSubpage(child *Page) {
	p.children = append(p.children, child)
}

// Subpages returns the child pages in insertion order.
func (p *Page) Subpages() []*Page {
	return p.children
}

// SetMarking overrides the marking banner for this page and its descendants.
func (p *Page) SetMarking(text string) {
	p.marking = overrideValue{set: true, text: text}
}

// ClearMarking suppresses the marking banner for this page and its
// descendants even when an ancestor or the dashboard sets one. No marking
// means no overlay at all; there is no placeholder text.
func (p *Page) ClearMarking() {
	p.marking = overrideValue{set: true}
}

// SetDistribution overrides the distribution statement shown in the footer
// banner alongside the marking.
func (p *Page) SetDistribution(text string) {
	p.distribution = overrideValue{set: true, text: text}
}

// ClearDistribution suppresses the distribution statement for this page and
// its descendants.
func (p *Page) ClearDistribution() {
	p.distribution = overrideValue{set: true}
}

// MiniPage is a nested row container: its blocks lay out side by side as
// equal-opportunity cells instead of stacking vertically. Wrapping N blocks
// in one mini page is the idiom for "N things next to each other". Mini pages
// have no identity and no marking of their own; only pages carry those.
type MiniPage struct {
	container
}

// NewMiniPage creates an empty row container. It inherits its render width
// from the container it is added to unless SetWidth is called.
func NewMiniPage() *MiniPage {
	return &MiniPage{}
}
