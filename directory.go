package staticdash

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
)

// Directory aggregates independent dashboards under one landing page. Each
// dashboard publishes into its own subtree named after its slug; the landing
// index links to every entry in registration order.
type Directory struct {
	Title   string
	entries []directoryEntry
}

type directoryEntry struct {
	slug string
	dash *Dashboard
}

// NewDirectory creates an empty directory.
func NewDirectory(title string) *Directory {
	return &Directory{Title: title}
}

// Add registers a dashboard under a slug. The slug becomes the output
// subdirectory name and must be unique; a repeated slug replaces the earlier
// registration.
func (dir *Directory) Add(slug string, d *Dashboard) {
	for i := range dir.entries {
		if dir.entries[i].slug == slug {
			dir.entries[i].dash = d
			return
		}
	}
	dir.entries = append(dir.entries, directoryEntry{slug: slug, dash: d})
}

// Publish writes the landing page and every registered dashboard's full site.
func (dir *Directory) Publish(outputDir string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	for _, e := range dir.entries {
		if err := e.dash.Publish(filepath.Join(outputDir, e.slug)); err != nil {
			return fmt.Errorf("publish dashboard %q: %w", e.slug, err)
		}
	}
	return dir.writeLanding(outputDir)
}

func (dir *Directory) writeLanding(outputDir string) error {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(dir.Title))
	b.WriteString("<style>\n" + landingCSS + "</style>\n")
	b.WriteString("</head>\n<body>\n")
	fmt.Fprintf(&b, "<h1>%s</h1>\n<ul class=\"directory-list\">\n", html.EscapeString(dir.Title))
	for _, e := range dir.entries {
		title := e.dash.Title
		if title == "" {
			title = e.slug
		}
		fmt.Fprintf(&b, "<li><a href=\"%s/index.html\">%s</a></li>\n",
			html.EscapeString(e.slug), html.EscapeString(title))
	}
	b.WriteString("</ul>\n</body>\n</html>\n")
	return os.WriteFile(filepath.Join(outputDir, "index.html"), []byte(b.String()), 0o644)
}

const landingCSS = `body { font-family: system-ui, sans-serif; max-width: 640px; margin: 4rem auto; padding: 0 1rem; }
.directory-list { list-style: none; padding: 0; }
.directory-list li { margin: 0.5rem 0; }
.directory-list a { display: block; padding: 0.75rem 1rem; border: 1px solid #ddd; border-radius: 6px; text-decoration: none; color: #1a5276; }
.directory-list a:hover { background: #f4f6f7; }
`
