// Package haiku builds a word-adjacency graph from sample text and walks it to
// write haiku: three lines of 5, 7 and 5 syllables.
//
// Every adjacent pair of words on an ingested line becomes a directed edge.
// Lines are generated by a randomized depth-first search that must land exactly
// on the syllable target, backtracking through each word's successors in a
// shuffled order that cycles before repeating.
//
// An Engine is not safe for concurrent use.
package haiku

import (
	"errors"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/dgallion1/haikuwriter/internal/syllable"
)

var (
	// ErrEmptyVocabulary is returned when generation is requested before any
	// text was ingested.
	ErrEmptyVocabulary = errors.New("haiku: empty vocabulary")

	// ErrCorpusTooSparse is returned when WithMaxAttempts is set and no line
	// reached its syllable target within the budget.
	ErrCorpusTooSparse = errors.New("haiku: corpus too sparse")
)

// SyllableCounter returns the number of syllables in a word. Words it counts
// as zero are dropped during ingestion.
type SyllableCounter func(word string) int

// Option configures an Engine.
type Option func(*Engine)

// WithSyllableCounter replaces the default syllable.Count heuristic.
func WithSyllableCounter(fn SyllableCounter) Option {
	return func(e *Engine) {
		if fn != nil {
			e.count = fn
		}
	}
}

// WithSeed makes starter selection and branch shuffling reproducible: two
// engines with the same seed and the same ingested text write the same haiku.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithMaxAttempts bounds the number of starter words tried per line. Zero, the
// default, retries until a line is found.
func WithMaxAttempts(n int) Option {
	return func(e *Engine) {
		if n >= 0 {
			e.maxAttempts = n
		}
	}
}

// Engine owns the vocabulary graph and writes haiku from it.
type Engine struct {
	vocabulary map[string]*WordNode
	keys       []string

	count       SyllableCounter
	rng         *rand.Rand
	maxAttempts int
}

// NewEngine returns an Engine with an empty vocabulary.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		vocabulary: make(map[string]*WordNode),
		count:      syllable.Count,
		rng:        rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Ingest adds raw text to the graph line by line and returns the number of
// words consumed. Lines are never linked to each other, and empty input adds
// nothing.
func (e *Engine) Ingest(raw string) int {
	words := 0
	for line := range strings.SplitSeq(raw, "\n") {
		words += e.ingestLine(line)
	}
	e.refreshKeys()
	return words
}

// apostrophes folds typographic apostrophes, common in docx, html and pdf
// text, into the ASCII one so contractions are recognized.
var apostrophes = strings.NewReplacer("\u2019", "'", "\u2018", "'", "\u02bc", "'")

func (e *Engine) ingestLine(line string) int {
	tokens := strings.Fields(strings.ToLower(apostrophes.Replace(line)))
	words := 0

	var leading *WordNode
	for _, tok := range tokens {
		trailing := e.getOrCreate(tok)
		if trailing == nil {
			// A word with no syllables breaks the chain.
			leading = nil
			continue
		}
		if leading != nil {
			leading.AddBranch(trailing.text)
		}
		leading = trailing
		words++
	}
	return words
}

// getOrCreate returns the node for word, creating it on first sight. It
// returns nil for words the counter scores as zero syllables.
func (e *Engine) getOrCreate(word string) *WordNode {
	if n, ok := e.vocabulary[word]; ok {
		return n
	}
	syl := e.count(word)
	if syl <= 0 {
		return nil
	}
	n := newWordNode(word, syl, e.rng)
	e.vocabulary[word] = n
	return n
}

func (e *Engine) refreshKeys() {
	keys := make([]string, 0, len(e.vocabulary))
	for k := range e.vocabulary {
		keys = append(keys, k)
	}
	// Sorted so a seeded rng picks the same starters on every run.
	slices.Sort(keys)
	e.keys = keys
}

// Reset discards the whole vocabulary.
func (e *Engine) Reset() {
	e.vocabulary = make(map[string]*WordNode)
	e.keys = nil
}

// Shuffle reshuffles every node's branches so the first traversal cycle is
// not the ingestion order.
func (e *Engine) Shuffle() {
	for _, k := range e.keys {
		e.vocabulary[k].Shuffle()
	}
}

// Size returns the number of distinct words.
func (e *Engine) Size() int {
	return len(e.vocabulary)
}

// Node returns the node for word, if present.
func (e *Engine) Node(word string) (*WordNode, bool) {
	n, ok := e.vocabulary[word]
	return n, ok
}
