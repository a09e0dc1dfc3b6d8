// Package syllable estimates English syllable counts with a vowel-group heuristic.
package syllable

import (
	"strings"
	"unicode"
)

// Count estimates the number of syllables in word.
//
// Empty input counts as 0. Any other token counts as at least 1, including tokens
// with no letters at all ("123", "--"), so every word occupies time in a line.
func Count(word string) int {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return 0
	}

	w := letters(word)
	if len(w) == 0 {
		return 1
	}

	rs := []rune(w)
	n := vowelGroups(rs)
	switch {
	case strings.HasSuffix(w, "es") && droppableES(rs) && n > 1:
		n--
	case strings.HasSuffix(w, "ed") && droppableED(rs) && n > 1:
		n--
	case strings.HasSuffix(w, "e") && silentE(rs) && n > 1:
		n--
	}

	// didn't, wasn't, couldn't: the n't adds a syllable after a consonant.
	if strings.HasSuffix(word, "n't") {
		stem := []rune(letters(strings.TrimSuffix(word, "n't")))
		if len(stem) > 0 && !isVowel(stem[len(stem)-1], len(stem)-1) {
			n++
		}
	}

	if n < 1 {
		n = 1
	}
	return n
}

// letters keeps only the lowercase letters of s.
func letters(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		} else if unicode.IsLetter(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// isVowel treats y as a vowel except at the start of a word.
func isVowel(r rune, pos int) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	case 'y':
		return pos > 0
	}
	return false
}

func vowelGroups(w []rune) int {
	groups := 0
	inGroup := false
	for i, r := range w {
		if isVowel(r, i) {
			if !inGroup {
				groups++
			}
			inGroup = true
		} else {
			inGroup = false
		}
	}
	return groups
}

// droppableES reports whether a trailing "es" is silent (makes, leaves) rather
// than voiced (boxes, horses, watches, pages).
func droppableES(w []rune) bool {
	if len(w) < 3 {
		return false
	}
	stem := w[:len(w)-2]
	if len(stem) >= 2 {
		if last2 := string(stem[len(stem)-2:]); last2 == "ch" || last2 == "sh" {
			return false
		}
	}
	switch stem[len(stem)-1] {
	case 's', 'x', 'z', 'c', 'g':
		return false
	case 'a', 'e', 'i', 'o', 'u':
		return false
	}
	return true
}

// droppableED reports whether a trailing "ed" is silent (jumped) rather than
// voiced (wanted, faded, agreed).
func droppableED(w []rune) bool {
	if len(w) < 3 {
		return false
	}
	switch w[len(w)-3] {
	case 't', 'd', 'a', 'e', 'i', 'o', 'u':
		return false
	}
	return true
}

// silentE reports whether a trailing "e" is silent (make) rather than voiced
// (table, free).
func silentE(w []rune) bool {
	if len(w) < 2 {
		return false
	}
	prev := w[len(w)-2]
	if prev == 'e' {
		return false
	}
	if prev == 'l' && len(w) >= 3 && !isVowel(w[len(w)-3], len(w)-3) {
		return false
	}
	return true
}
