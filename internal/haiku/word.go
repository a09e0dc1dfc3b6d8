package haiku

import "math/rand/v2"

// WordNode is one distinct lowercase word in the vocabulary together with the
// distinct words observed to follow it.
//
// Branches are stored as word text and resolved through the owning Engine, so
// nodes never reference each other directly.
type WordNode struct {
	text      string
	syllables int

	branches []string
	seen     map[string]struct{}
	cursor   int

	rng *rand.Rand
}

func newWordNode(text string, syllables int, rng *rand.Rand) *WordNode {
	return &WordNode{
		text:      text,
		syllables: syllables,
		seen:      make(map[string]struct{}),
		rng:       rng,
	}
}

// Text returns the literal lowercase word.
func (n *WordNode) Text() string { return n.text }

// Syllables returns the syllable count computed at construction.
func (n *WordNode) Syllables() int { return n.syllables }

// BranchCount returns the number of distinct successors.
func (n *WordNode) BranchCount() int { return len(n.branches) }

// HasBranches reports whether any successor has been recorded.
func (n *WordNode) HasBranches() bool { return len(n.branches) > 0 }

// Branches returns a copy of the successors in their current order.
func (n *WordNode) Branches() []string {
	out := make([]string, len(n.branches))
	copy(out, n.branches)
	return out
}

// AddBranch records word as a successor. Repeated words are ignored, so every
// distinct successor is equally likely regardless of how often it was seen.
func (n *WordNode) AddBranch(word string) {
	if _, ok := n.seen[word]; ok {
		return
	}
	n.seen[word] = struct{}{}
	n.branches = append(n.branches, word)
}

// NextBranch returns the successor under the cursor and advances it. Once every
// branch has been returned the branches are reshuffled and a new cycle starts.
// The bool is false when the node has no branches.
func (n *WordNode) NextBranch() (string, bool) {
	if len(n.branches) == 0 {
		return "", false
	}
	if n.cursor >= len(n.branches) {
		n.Shuffle()
	}
	b := n.branches[n.cursor]
	n.cursor++
	return b, true
}

// Shuffle permutes the branches and rewinds the cursor.
func (n *WordNode) Shuffle() {
	n.rng.Shuffle(len(n.branches), func(i, j int) {
		n.branches[i], n.branches[j] = n.branches[j], n.branches[i]
	})
	n.cursor = 0
}
