package staticdash

import (
	"errors"
	"fmt"
)

// ErrEmptyDashboard is returned by Publish and PublishPDF when the dashboard
// holds no pages. The first top-level page doubles as the site entry document,
// so an empty dashboard has nothing to publish.
var ErrEmptyDashboard = errors.New("dashboard has no pages")

// InvalidLevelError reports a header level outside the supported range 1-4.
type InvalidLevelError struct {
	Level int
}

func (e *InvalidLevelError) Error() string {
	return fmt.Sprintf("header level must be 1, 2, 3, or 4, got %d", e.Level)
}

// FileNotFoundError reports a download source path that did not exist when
// AddDownload was called. Download links are validated eagerly: a link whose
// source is already gone at build time is never worth publishing.
type FileNotFoundError struct {
	Path string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("download source not found: %s", e.Path)
}

// DuplicateSlugError reports two pages in the same dashboard tree sharing a
// slug. Slugs become output file names, so a collision would silently
// overwrite one page with the other.
type DuplicateSlugError struct {
	Slug string
}

func (e *DuplicateSlugError) Error() string {
	return fmt.Sprintf("duplicate page slug %q", e.Slug)
}
