package haiku

import (
	"fmt"
	"strings"
)

// LinePattern holds the syllable target of each haiku line.
var LinePattern = [3]int{5, 7, 5}

// WriteHaiku writes three lines following LinePattern. Each line ends with an
// ellipsis and a newline.
//
// Like WriteLine it may never return on a vocabulary that cannot reach a
// target unless the Engine was built WithMaxAttempts.
func (e *Engine) WriteHaiku() (string, error) {
	var sb strings.Builder
	for _, target := range LinePattern {
		line, err := e.WriteLine(target)
		if err != nil {
			return "", err
		}
		sb.WriteString(line)
	}
	return sb.String(), nil
}

// Compose writes a haiku and closes it with a full stop in place of the last
// line's ellipsis.
func (e *Engine) Compose() (string, error) {
	raw, err := e.WriteHaiku()
	if err != nil {
		return "", err
	}
	return Finish(raw), nil
}

// WriteLine writes one line of exactly target syllables.
//
// A random starter is drawn from the vocabulary and walked depth-first; when
// the walk fails another starter is drawn. Without WithMaxAttempts this loops
// until it succeeds, which never happens on a vocabulary too sparse to reach
// target. Callers embedding the engine in a service should set a budget.
func (e *Engine) WriteLine(target int) (string, error) {
	if len(e.keys) == 0 {
		return "", ErrEmptyVocabulary
	}
	for attempt := 0; e.maxAttempts == 0 || attempt < e.maxAttempts; attempt++ {
		start, ok := e.starter(target)
		if !ok {
			continue
		}
		if words, ok := e.attemptLine(start, target); ok {
			return formatLine(words), nil
		}
	}
	return "", fmt.Errorf("%w: no %d-syllable line in %d attempts", ErrCorpusTooSparse, target, e.maxAttempts)
}

// starter draws one word uniformly at random and reports whether it may open
// a line of target syllables.
func (e *Engine) starter(target int) (*WordNode, bool) {
	n := e.vocabulary[e.keys[e.rng.IntN(len(e.keys))]]
	if n == nil || isBadBeginning(n.text) {
		return nil, false
	}
	if !n.HasBranches() && n.syllables != target {
		return nil, false
	}
	return n, true
}

// attemptLine walks from node with remaining syllables to spend and returns
// the words of the line on success, node first.
func (e *Engine) attemptLine(node *WordNode, remaining int) ([]string, bool) {
	delta := remaining - node.syllables
	switch {
	case delta == 0:
		if isBadEnding(node.text) {
			return nil, false
		}
		return []string{capitalize(node.text)}, true

	case delta > 0:
		for range node.BranchCount() {
			name, ok := node.NextBranch()
			if !ok {
				break
			}
			next, ok := e.vocabulary[name]
			if !ok {
				continue
			}
			if rest, ok := e.attemptLine(next, delta); ok {
				return append([]string{capitalize(node.text)}, rest...), true
			}
		}
	}
	return nil, false
}
