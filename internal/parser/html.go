package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/haikuwriter/internal/corpus"
	"golang.org/x/net/html"
)

// HTMLParser handles HTML files. Text inside block elements becomes lines;
// <br> splits a line, which keeps verse laid out with line breaks intact.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*corpus.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	doc := &corpus.Document{Title: titleFromFilename(filename)}

	// Extract title from <title> tag if present.
	if title := findTitle(root); title != "" {
		doc.Title = title
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "nav", "footer", "header", "pre", "code":
				return
			case "p", "li", "td", "blockquote", "h1", "h2", "h3", "h4", "h5", "h6":
				doc.AddText(textContent(n))
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	// Find <body> or use whole document.
	if body := findBody(root); body != nil {
		walk(body)
	} else {
		walk(root)
	}

	return doc, nil
}

// textContent concatenates the text below n, turning <br> into a newline.
func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			buf.WriteString(strings.ReplaceAll(n.Data, "\n", " "))
		case n.Type == html.ElementNode && n.Data == "br":
			buf.WriteByte('\n')
		case n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style"):
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		return textContent(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
