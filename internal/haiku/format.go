package haiku

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const lineEnd = "...\n"

// Words that make a poor line opener.
var badBeginnings = map[string]bool{
	"": true, "and": true, "didn't": true, "as": true, "out": true,
}

// Words that leave a line hanging.
var badEndings = map[string]bool{
	"and": true, "i": true, "as": true, "a": true, "my": true, "the": true,
	"it": true, "on": true, "just": true, "they": true, "your": true, "an": true,
	"by": true, "to": true, "with": true, "or": true, "these": true, "like": true,
	"you": true, "for": true, "but": true, "we": true, "at": true, "in": true,
	"of": true, "were": true, "was": true, "from": true, "she": true, "are": true,
	"he": true, "whose": true, "our": true, "has": true, "no": true, "that": true,
	"than": true, "is": true, "their": true,
}

var capitalized = map[string]string{
	"i":    "I",
	"i'll": "I'll",
	"i'm":  "I'm",
	"i've": "I've",
	"i'd":  "I'd",
}

func isBadBeginning(word string) bool {
	return badBeginnings[word]
}

// isBadEnding also rejects any contraction.
func isBadEnding(word string) bool {
	return badEndings[word] || strings.ContainsRune(word, '\'')
}

// capitalize applies the first-person pronoun table; other words are returned
// unchanged.
func capitalize(word string) string {
	if c, ok := capitalized[word]; ok {
		return c
	}
	return word
}

func formatLine(words []string) string {
	return upperFirst(strings.Join(words, " ")) + lineEnd
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Finish replaces the ellipsis and newline closing the last line of a haiku
// with a full stop.
func Finish(haiku string) string {
	if !strings.HasSuffix(haiku, lineEnd) {
		return haiku
	}
	return strings.TrimSuffix(haiku, lineEnd) + "."
}

// Lines splits a haiku into its lines, dropping the newlines.
func Lines(haiku string) []string {
	var out []string
	for l := range strings.SplitSeq(strings.TrimRight(haiku, "\n"), "\n") {
		out = append(out, l)
	}
	return out
}
