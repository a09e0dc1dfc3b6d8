package parser

import (
	"bytes"
	"io"

	"github.com/dgallion1/haikuwriter/internal/corpus"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark. Headings, paragraphs
// and list items contribute their rendered text; each source line of a block
// stays a separate line. Code blocks are skipped.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*corpus.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	out := &corpus.Document{Title: titleFromFilename(filename)}

	err = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindFencedCodeBlock, ast.KindCodeBlock, ast.KindHTMLBlock:
			return ast.WalkSkipChildren, nil
		case ast.KindHeading, ast.KindParagraph, ast.KindTextBlock:
			out.AddText(inlineText(n, src))
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// inlineText renders the inline children of n as plain text, keeping soft and
// hard line breaks.
func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		case *ast.String:
			buf.Write(t.Value)
		default:
			// Emphasis, links and code spans.
			buf.WriteString(inlineText(c, src))
		}
	}
	return buf.String()
}
