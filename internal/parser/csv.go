package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/haikuwriter/internal/corpus"
)

// textColumns are header names that hold the prose in lyric and quote dumps.
var textColumns = []string{"text", "line", "lyric", "lyrics", "quote", "verse"}

// CSVParser handles CSV files. The first row is a header. When one of the
// header names is a known text column only that column is kept, otherwise
// all cells of a row are joined into one line.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) (*corpus.Document, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	doc := &corpus.Document{Title: titleFromFilename(filename)}
	if len(records) == 0 {
		return doc, nil
	}

	col := textColumn(records[0])
	for _, row := range records[1:] {
		if col >= 0 {
			if col < len(row) {
				doc.AddText(row[col])
			}
			continue
		}
		doc.AddText(strings.Join(row, " "))
	}

	return doc, nil
}

func textColumn(headers []string) int {
	for i, h := range headers {
		h = strings.ToLower(strings.TrimSpace(h))
		for _, name := range textColumns {
			if h == name {
				return i
			}
		}
	}
	return -1
}
