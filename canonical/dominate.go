package canonical

import (
	"strings"

	"golang.org/x/exp/slices"
)

// regAEntry is one position of a word's controller-visible projection: the
// TA region states of a single group (the part the controller can
// observe), paired with that same group's ATA region states (kept around
// only to evaluate domination, not part of the projection's identity).
type regAEntry struct {
	ta  []RegionState
	ata []RegionState
}

// regA computes reg_a(w): the projection of w onto its TA region states,
// dropping every group that carries no TA state. Two words
// have "equal reg_a projections" when their controller-visible clock
// groupings and ordering coincide, regardless of absolute region index or
// of which ATA states accompany each group.
func (w Word) regA() []regAEntry {
	var out []regAEntry
	for _, g := range w {
		var ta, ataStates []RegionState
		for _, s := range g.States {
			if s.IsTA {
				ta = append(ta, s)
			} else {
				ataStates = append(ataStates, s)
			}
		}
		if len(ta) == 0 {
			continue
		}
		out = append(out, regAEntry{ta: ta, ata: ataStates})
	}
	return out
}

// RegAKey identifies w's controller-visible projection, for use as the
// partition key when the search engine groups successors by reg_a.
func (w Word) RegAKey() string {
	entries := w.regA()
	parts := make([]string, len(entries))
	for i, e := range entries {
		keys := make([]string, len(e.ta))
		for j, s := range e.ta {
			keys[j] = s.controllerKey()
		}
		slices.Sort(keys)
		parts[i] = strings.Join(keys, ",")
	}
	return strings.Join(parts, "|")
}

// Dominates reports whether w monotonically dominates other: their reg_a projections are equal, and every ATA region state
// that appears in one of w's groups also appears, by location, in the
// corresponding group of other — i.e. w is a safe, later-in-time
// approximation of the same controller-observable behavior.
func (w Word) Dominates(other Word) bool {
	a, b := w.regA(), other.regA()
	if w.RegAKey() != other.RegAKey() || len(a) != len(b) {
		return false
	}
	for i := range a {
		if !ataSubset(a[i].ata, b[i].ata) {
			return false
		}
	}
	return true
}

func ataSubset(a, b []RegionState) bool {
	present := map[string]struct{}{}
	for _, s := range b {
		present[s.ATALoc.Key()] = struct{}{}
	}
	for _, s := range a {
		if _, ok := present[s.ATALoc.Key()]; !ok {
			return false
		}
	}
	return true
}

// DominatesSet reports whether, for every word in nodeWords, some word in
// ancestorWords dominates it.
func DominatesSet(ancestorWords, nodeWords []Word) bool {
	for _, nw := range nodeWords {
		dominated := false
		for _, aw := range ancestorWords {
			if aw.Dominates(nw) {
				dominated = true
				break
			}
		}
		if !dominated {
			return false
		}
	}
	return true
}
