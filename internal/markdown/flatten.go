package markdown

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Span is a run of text with uniform styling.
type Span struct {
	Text   string
	Bold   bool
	Italic bool
	Code   bool
}

// ParagraphKind tells a backend how to lay a flattened paragraph out.
type ParagraphKind int

const (
	KindParagraph ParagraphKind = iota
	KindHeading
	KindBullet
	KindCode
)

// Paragraph is one block-level unit of flattened markdown.
type Paragraph struct {
	Kind  ParagraphKind
	Level int // heading level, when Kind is KindHeading
	Spans []Span
}

// Flatten parses markdown into a flat list of styled paragraphs for backends
// that have no HTML renderer, keeping emphasis, strong, inline code, bullet
// items, and fenced code blocks. Structure the PDF medium cannot express
// (links keep their text, images are dropped) degrades to plain text.
func Flatten(src string) []Paragraph {
	source := []byte(src)
	doc := md.Parser().Parse(text.NewReader(source))

	var out []Paragraph
	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		out = append(out, flattenBlock(node, source)...)
	}
	return out
}

func flattenBlock(node ast.Node, source []byte) []Paragraph {
	switch n := node.(type) {
	case *ast.Heading:
		return []Paragraph{{
			Kind:  KindHeading,
			Level: n.Level,
			Spans: inlineSpans(n, source, Span{}),
		}}
	case *ast.Paragraph, *ast.TextBlock:
		spans := inlineSpans(node, source, Span{})
		if len(spans) == 0 {
			return nil
		}
		return []Paragraph{{Kind: KindParagraph, Spans: spans}}
	case *ast.FencedCodeBlock:
		return []Paragraph{{Kind: KindCode, Spans: []Span{{Text: codeLines(n, source), Code: true}}}}
	case *ast.CodeBlock:
		return []Paragraph{{Kind: KindCode, Spans: []Span{{Text: codeLines(n, source), Code: true}}}}
	case *ast.List:
		var out []Paragraph
		for item := n.FirstChild(); item != nil; item = item.NextSibling() {
			for child := item.FirstChild(); child != nil; child = child.NextSibling() {
				paras := flattenBlock(child, source)
				for i := range paras {
					if paras[i].Kind == KindParagraph {
						paras[i].Kind = KindBullet
					}
				}
				out = append(out, paras...)
			}
		}
		return out
	case *ast.Blockquote:
		var out []Paragraph
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			out = append(out, flattenBlock(child, source)...)
		}
		return out
	default:
		spans := inlineSpans(node, source, Span{})
		if len(spans) == 0 {
			return nil
		}
		return []Paragraph{{Kind: KindParagraph, Spans: spans}}
	}
}

// inlineSpans walks a block's inline children, carrying the inherited style.
func inlineSpans(node ast.Node, source []byte, style Span) []Span {
	var spans []Span
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch n := child.(type) {
		case *ast.Text:
			t := string(n.Segment.Value(source))
			if t == "" {
				continue
			}
			s := style
			s.Text = t
			spans = append(spans, s)
			if n.SoftLineBreak() || n.HardLineBreak() {
				s.Text = " "
				spans = append(spans, s)
			}
		case *ast.Emphasis:
			s := style
			if n.Level >= 2 {
				s.Bold = true
			} else {
				s.Italic = true
			}
			spans = append(spans, inlineSpans(n, source, s)...)
		case *ast.CodeSpan:
			s := style
			s.Code = true
			s.Text = string(n.Text(source))
			spans = append(spans, s)
		default:
			spans = append(spans, inlineSpans(child, source, style)...)
		}
	}
	return spans
}

func codeLines(node ast.Node, source []byte) string {
	var b strings.Builder
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(source))
	}
	return strings.TrimRight(b.String(), "\n")
}
