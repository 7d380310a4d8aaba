package canonical

import "github.com/morxa/mtlsyn/region"

// TimeStep pairs a canonical word with Delta, the number of elementary
// region-successor steps elapsed since the word it was derived from.
type TimeStep struct {
	Delta int
	Word  Word
}

// successor computes the single next word reached by elapsing an
// infinitesimal amount of time from w:
// if the last (highest-index) group is already an integer region, every
// group elapses together and every index advances by one; otherwise only
// the last, maximal-fractional group crosses over into the next integer
// region, and every other group's index is unchanged. A saturated last
// group keeps its index while the groups below it elapse by the same rule.
// ok is false if w is empty or already fully saturated.
func (w Word) successor(k int) (Word, bool) {
	if len(w) == 0 {
		return nil, false
	}
	last := w[len(w)-1]
	if last.Index.IsSaturated(k) {
		rest, ok := w[:len(w)-1].successor(k)
		if !ok {
			return nil, false
		}
		return mergeGroups(append(append([]Group{}, rest...), last)), true
	}
	if last.Index.IsInteger() {
		next := make([]Group, len(w))
		for i, g := range w {
			next[i] = g.withIndex(g.Index + 1)
		}
		return mergeGroups(next), true
	}
	rest := append([]Group{}, w[:len(w)-1]...)
	crossed := last.withIndex(last.Index + 1)
	return mergeGroups(append(rest, crossed)), true
}

// mergeGroups sorts groups ascending by index, merging any whose indices
// coincide.
func mergeGroups(groups []Group) Word {
	byIndex := map[region.Index][]RegionState{}
	for _, g := range groups {
		byIndex[g.Index] = append(byIndex[g.Index], g.States...)
	}
	var states []RegionState
	for _, ss := range byIndex {
		states = append(states, ss...)
	}
	return New(states)
}

// isFullySaturated reports whether every group in w sits in the beyond-K
// class, i.e. time has nothing left to elapse.
func (w Word) isFullySaturated(k int) bool {
	for _, g := range w {
		if !g.Index.IsSaturated(k) {
			return false
		}
	}
	return len(w) > 0
}

// GetTimeSuccessors produces the finite sequence of canonical words
// reachable from w by elapsing time, each paired with the number of
// elementary region steps taken to reach it, stopping once the word is
// fully saturated.
func GetTimeSuccessors(w Word, k int) []TimeStep {
	var out []TimeStep
	cur := w
	delta := 0
	for {
		next, ok := cur.successor(k)
		if !ok {
			return out
		}
		delta++
		out = append(out, TimeStep{Delta: delta, Word: next})
		cur = next
		if cur.isFullySaturated(k) {
			return out
		}
	}
}
