package haiku

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCounter scores listed words from counts and everything else as one.
func stubCounter(counts map[string]int) SyllableCounter {
	return func(w string) int {
		if c, ok := counts[w]; ok {
			return c
		}
		return 1
	}
}

func newTestEngine(counts map[string]int, opts ...Option) *Engine {
	base := []Option{WithSyllableCounter(stubCounter(counts)), WithSeed(42)}
	return NewEngine(append(base, opts...)...)
}

func branchSets(e *Engine) map[string][]string {
	out := make(map[string][]string, e.Size())
	for word, n := range e.vocabulary {
		bs := n.Branches()
		sort.Strings(bs)
		out[word] = bs
	}
	return out
}

func TestEngine_IngestOldPond(t *testing.T) {
	e := newTestEngine(nil)
	words := e.Ingest("old pond a frog jumps in")

	assert.Equal(t, 6, words)
	require.Equal(t, 6, e.Size())

	edges := map[string]string{
		"old":   "pond",
		"pond":  "a",
		"a":     "frog",
		"frog":  "jumps",
		"jumps": "in",
	}
	for from, to := range edges {
		n, ok := e.Node(from)
		require.True(t, ok, from)
		assert.Equal(t, []string{to}, n.Branches(), from)
		assert.Equal(t, 1, n.Syllables())
	}
	in, ok := e.Node("in")
	require.True(t, ok)
	assert.False(t, in.HasBranches())
}

func TestEngine_IngestLowercases(t *testing.T) {
	e := newTestEngine(nil)
	e.Ingest("The Frog\tJUMPS")

	_, ok := e.Node("the")
	assert.True(t, ok)
	n, ok := e.Node("frog")
	require.True(t, ok)
	assert.Equal(t, []string{"jumps"}, n.Branches())
}

func TestEngine_IngestDoesNotLinkLines(t *testing.T) {
	e := newTestEngine(nil)
	e.Ingest("cold wind\nbare tree\r\nsnow falls")

	for _, last := range []string{"wind", "tree", "falls"} {
		n, ok := e.Node(last)
		require.True(t, ok, last)
		assert.False(t, n.HasBranches(), "%q must not branch across a line", last)
	}
}

func TestEngine_IngestEmptyAndBlankLines(t *testing.T) {
	e := newTestEngine(nil)
	assert.Zero(t, e.Ingest(""))
	assert.Zero(t, e.Ingest("\n   \n\t\n"))
	assert.Zero(t, e.Size())

	assert.Equal(t, 2, e.Ingest("\n\nsoft rain\n\n"))
	assert.Equal(t, 2, e.Size())
}

func TestEngine_IngestDeduplicatesBranches(t *testing.T) {
	e := newTestEngine(nil)
	e.Ingest("la de la de la de")
	e.Ingest("la de")

	la, _ := e.Node("la")
	de, _ := e.Node("de")
	assert.Equal(t, []string{"de"}, la.Branches())
	assert.Equal(t, []string{"la"}, de.Branches())
}

func TestEngine_IngestDropsZeroSyllableWords(t *testing.T) {
	e := newTestEngine(map[string]int{"ghost": 0})
	words := e.Ingest("a ghost walks by")

	assert.Equal(t, 3, words)
	_, ok := e.Node("ghost")
	assert.False(t, ok)

	a, _ := e.Node("a")
	assert.False(t, a.HasBranches(), "chain restarts after a dropped word")
	walks, _ := e.Node("walks")
	assert.Equal(t, []string{"by"}, walks.Branches())
}

func TestEngine_EdgesMatchAdjacentPairs(t *testing.T) {
	text := "the river flows on\nunder the old bridge the river sleeps\nflows the night"
	e := newTestEngine(nil)
	e.Ingest(text)

	want := map[string]map[string]bool{}
	for _, line := range []string{"the river flows on", "under the old bridge the river sleeps", "flows the night"} {
		ws := splitWords(line)
		for i := 0; i+1 < len(ws); i++ {
			if want[ws[i]] == nil {
				want[ws[i]] = map[string]bool{}
			}
			want[ws[i]][ws[i+1]] = true
		}
	}

	for word, n := range e.vocabulary {
		for _, b := range n.Branches() {
			assert.True(t, want[word][b], "unexpected edge %s -> %s", word, b)
		}
		assert.Equal(t, len(want[word]), n.BranchCount(), word)
	}
}

func TestEngine_ResetRoundTrip(t *testing.T) {
	text := "old pond a frog jumps in\nthe sound of water\nthe frog sleeps in the pond"
	e := newTestEngine(nil, WithMaxAttempts(1000))
	e.Ingest(text)
	before := branchSets(e)

	// Walk a bit so branch order and cursors move.
	e.Shuffle()
	for range 5 {
		_, _ = e.WriteLine(3)
	}

	e.Reset()
	assert.Zero(t, e.Size())
	_, err := e.WriteLine(5)
	assert.ErrorIs(t, err, ErrEmptyVocabulary)

	e.Ingest(text)
	assert.Equal(t, before, branchSets(e))
}

func TestEngine_ShufflePreservesBranchSets(t *testing.T) {
	e := newTestEngine(nil)
	e.Ingest("a b\na c\na d\na e")
	before := branchSets(e)
	e.Shuffle()
	assert.Equal(t, before, branchSets(e))
}

func TestEngine_KeysRefreshedPerIngest(t *testing.T) {
	e := newTestEngine(nil)
	e.Ingest("one two")
	assert.Len(t, e.keys, 2)
	e.Ingest("three four")
	assert.Len(t, e.keys, 4)
	assert.Equal(t, []string{"four", "one", "three", "two"}, e.keys)
}

func TestEngine_IngestFoldsTypographicApostrophes(t *testing.T) {
	e := newTestEngine(nil)
	e.Ingest("don\u2019t stop\nit\u02bcs late")

	for _, w := range []string{"don't", "it's"} {
		_, ok := e.Node(w)
		assert.True(t, ok, w)
	}
	_, ok := e.Node("don\u2019t")
	assert.False(t, ok)
}
