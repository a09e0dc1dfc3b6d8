package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/haikuwriter/internal/corpus"
)

// TextParser handles plain text files. Every non-blank physical line is kept.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*corpus.Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	doc := &corpus.Document{
		Title: titleFromFilename(filename),
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		doc.Lines = append(doc.Lines, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return doc, nil
}
