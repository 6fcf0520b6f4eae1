package staticdash

import "github.com/google/uuid"

// Dashboard is the aggregation root: an ordered list of top-level pages plus
// the site-wide defaults every page inherits. Construct it once, append
// pages, then call Publish (HTML site) or PublishPDF (paginated report) as
// often as needed; both are pure functions of the current tree state.
type Dashboard struct {
	Title string

	// PageWidth is the default content width in pixels for pages that do not
	// set their own. Zero falls back to DefaultPageWidth.
	PageWidth int

	// Marking, when non-empty, is shown as a fixed banner above and below
	// every page's content unless a page overrides or suppresses it.
	Marking string

	// Distribution, when non-empty, is appended to the footer banner. It is
	// only shown when a marking is also resolved.
	Distribution string

	// NewID generates the unique prefix for staged download file names.
	// Defaults to uuid.NewString; tests inject a deterministic generator.
	NewID func() string

	pages []*Page
}

// NewDashboard creates a dashboard with the default page width.
func NewDashboard(title string) *Dashboard {
	return &Dashboard{Title: title, PageWidth: DefaultPageWidth}
}

// AddPage appends a top-level page. The first page added becomes the site's
// entry document.
func (d *Dashboard) AddPage(p *Page) {
	d.pages = append(d.pages, p)
}

// Pages returns the top-level pages in insertion order.
func (d *Dashboard) Pages() []*Page {
	return d.pages
}

func (d *Dashboard) newID() string {
	if d.NewID != nil {
		return d.NewID()
	}
	return uuid.NewString()
}

// validate checks the publish preconditions: at least one page, and slugs
// unique across the whole tree.
func (d *Dashboard) validate() error {
	if len(d.pages) == 0 {
		return ErrEmptyDashboard
	}
	seen := make(map[string]bool)
	var dup error
	walkPages(d.pages, 0, func(p *Page, depth int) {
		if dup == nil && seen[p.Slug] {
			dup = &DuplicateSlugError{Slug: p.Slug}
		}
		seen[p.Slug] = true
	})
	return dup
}

// walkPages visits pages depth-first in display order, parents before
// children. depth is 0 for top-level pages.
func walkPages(pages []*Page, depth int, fn func(p *Page, depth int)) {
	for _, p := range pages {
		fn(p, depth)
		walkPages(p.children, depth+1, fn)
	}
}
