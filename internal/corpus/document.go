// Package corpus holds parsed sample text and the manifest naming the corpora
// a deployment offers.
package corpus

import "strings"

// Document is a parsed corpus. Each line is one unit of word adjacency: words
// on different lines are never linked.
type Document struct {
	Title string   // From metadata or filename
	Lines []string // Non-empty text lines in source order
}

// Text joins the lines with newlines, the form the haiku engine ingests.
func (d *Document) Text() string {
	if d == nil {
		return ""
	}
	return strings.Join(d.Lines, "\n")
}

// WordCount returns the number of whitespace-separated words.
func (d *Document) WordCount() int {
	if d == nil {
		return 0
	}
	n := 0
	for _, l := range d.Lines {
		n += len(strings.Fields(l))
	}
	return n
}

// AddText appends the non-blank lines of text, trimmed.
func (d *Document) AddText(text string) {
	for l := range strings.SplitSeq(text, "\n") {
		l = strings.TrimSpace(l)
		if l != "" {
			d.Lines = append(d.Lines, l)
		}
	}
}
