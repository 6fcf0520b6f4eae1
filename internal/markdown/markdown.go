// Package markdown converts markdown text to HTML fragments while keeping
// TeX math spans out of the markdown transformation.
package markdown

import (
	"bytes"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	ghtml "github.com/yuin/goldmark/renderer/html"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(
		ghtml.WithUnsafe(),
	),
)

// mathPattern matches display math first so $$...$$ is never split into two
// inline spans. Inline math must stay on one line; display math may wrap.
var mathPattern = regexp.MustCompile(`(?s)\$\$.+?\$\$|\$[^$\n]+?\$`)

// Render converts markdown to an HTML fragment. $...$ and $$...$$ spans are
// masked before conversion and restored afterwards, HTML-escaped but
// otherwise verbatim, so markdown syntax inside math (underscores, asterisks)
// is preserved for the client-side typesetter.
func Render(src string) (string, error) {
	masked, spans := maskMath(src)

	var buf bytes.Buffer
	if err := md.Convert([]byte(masked), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}

	out := buf.String()
	for i, span := range spans {
		out = strings.Replace(out, mathToken(i), html.EscapeString(span), 1)
	}
	return out, nil
}

// maskMath replaces each math span with an opaque token that markdown leaves
// untouched, returning the masked text and the original spans in order.
func maskMath(src string) (string, []string) {
	var spans []string
	masked := mathPattern.ReplaceAllStringFunc(src, func(span string) string {
		spans = append(spans, span)
		return mathToken(len(spans) - 1)
	})
	return masked, spans
}

func mathToken(i int) string {
	return fmt.Sprintf("sdmathspan%dx", i)
}
