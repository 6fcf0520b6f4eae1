// Package figure provides ready-made figure implementations for staticdash
// plot blocks: simple raster charts drawn in-process, plus wrappers for
// pre-rendered PNG data and raw embeddable markup.
package figure

import (
	"bytes"
	"fmt"
	"image/png"
)

// HTML is a vector figure built from pre-rendered embeddable markup, for
// charts produced by an external charting library. The markup may reference
// the page-level chart loader but must not bundle its own copy.
type HTML struct {
	Markup string
}

// FromHTML wraps embeddable markup as a figure.
func FromHTML(markup string) *HTML {
	return &HTML{Markup: markup}
}

// EmbedHTML returns the markup verbatim.
func (h *HTML) EmbedHTML() (string, error) {
	if h.Markup == "" {
		return "", fmt.Errorf("empty figure markup")
	}
	return h.Markup, nil
}

// PNG is a raster figure built from pre-rendered PNG data.
type PNG struct {
	Data []byte
}

// FromPNG wraps PNG bytes as a figure. The data is validated lazily when the
// figure is rendered.
func FromPNG(data []byte) *PNG {
	return &PNG{Data: data}
}

// RenderPNG returns the wrapped image after checking it decodes as PNG.
func (p *PNG) RenderPNG() ([]byte, error) {
	if _, err := png.DecodeConfig(bytes.NewReader(p.Data)); err != nil {
		return nil, fmt.Errorf("invalid png data: %w", err)
	}
	return p.Data, nil
}
