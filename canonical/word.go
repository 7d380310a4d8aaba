// Package canonical implements the canonical AB word:
// an ordered partition of TA and ATA region states that represents a joint
// TA x ATA configuration up to region equivalence, together with its
// time-successor enumeration and monotonic domination.
package canonical

import (
	"fmt"
	"strings"

	"github.com/morxa/mtlsyn/ata"
	"github.com/morxa/mtlsyn/region"
	"github.com/morxa/mtlsyn/ta"
	"golang.org/x/exp/slices"
)

// RegionState is either a TARegionState(location, clockName, regionIndex)
// or an ATARegionState(formula, regionIndex).
type RegionState struct {
	IsTA   bool
	TALoc  ta.Location
	Clock  string
	ATALoc ata.Location
	Index  region.Index
}

// TAState builds a TA region state.
func TAState(loc ta.Location, clockName string, idx region.Index) RegionState {
	return RegionState{IsTA: true, TALoc: loc, Clock: clockName, Index: idx}
}

// ATAState builds an ATA region state.
func ATAState(loc ata.Location, idx region.Index) RegionState {
	return RegionState{IsTA: false, ATALoc: loc, Index: idx}
}

// Key identifies a region state for set/map deduplication, including its
// region index.
func (s RegionState) Key() string {
	if s.IsTA {
		return fmt.Sprintf("TA:%s@%s#%d", s.TALoc, s.Clock, s.Index)
	}
	return fmt.Sprintf("ATA:%s#%d", s.ATALoc.Key(), s.Index)
}

// controllerKey identifies the controller-visible (reg_a) part of a TA
// region state, deliberately omitting the region index: the controller
// observes which clocks tie together, not the raw region magnitude, so
// that a node later in time with the same observable grouping can still be
// recognized as equivalent for domination.
func (s RegionState) controllerKey() string {
	return fmt.Sprintf("%s@%s", s.TALoc, s.Clock)
}

func (s RegionState) String() string {
	if s.IsTA {
		return fmt.Sprintf("(%s,%s,%d)", s.TALoc, s.Clock, s.Index)
	}
	return fmt.Sprintf("(%s,%d)", s.ATALoc, s.Index)
}

// Group is a non-empty set of region states that all share the same region
// index.
type Group struct {
	Index  region.Index
	States []RegionState
}

func (g Group) String() string {
	parts := make([]string, len(g.States))
	for i, s := range g.States {
		parts[i] = s.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// withIndex returns a copy of g with every state's Index updated to idx.
func (g Group) withIndex(idx region.Index) Group {
	states := make([]RegionState, len(g.States))
	for i, s := range g.States {
		s.Index = idx
		states[i] = s
	}
	return Group{Index: idx, States: states}
}

// Word is an ordered partition of region states into groups, sorted by
// strictly increasing region index.
type Word []Group

func (w Word) String() string {
	parts := make([]string, len(w))
	for i, g := range w {
		parts[i] = g.String()
	}
	return "[" + strings.Join(parts, " < ") + "]"
}

// Key is a canonical string identity for w, suitable for deduplicating
// words in a successor set.
func (w Word) Key() string {
	parts := make([]string, len(w))
	for i, g := range w {
		keys := make([]string, len(g.States))
		for j, s := range g.States {
			keys[j] = s.Key()
		}
		slices.Sort(keys)
		parts[i] = fmt.Sprintf("%d:%s", g.Index, strings.Join(keys, ","))
	}
	return strings.Join(parts, "|")
}

// New assembles a word from a set of region states, grouping states that
// share an identical region index and sorting groups ascending by index.
// This both implements GetCanonicalWord's grouping step and is reused to
// rebuild a word after a time or symbol successor has been computed.
func New(states []RegionState) Word {
	byIndex := map[region.Index][]RegionState{}
	for _, s := range states {
		byIndex[s.Index] = append(byIndex[s.Index], s)
	}
	indices := make([]region.Index, 0, len(byIndex))
	for idx := range byIndex {
		indices = append(indices, idx)
	}
	slices.Sort(indices)
	out := make(Word, len(indices))
	for i, idx := range indices {
		out[i] = Group{Index: idx, States: dedupStates(byIndex[idx])}
	}
	return out
}

func dedupStates(states []RegionState) []RegionState {
	seen := map[string]struct{}{}
	var out []RegionState
	for _, s := range states {
		k := s.Key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	return out
}

// GetCanonicalWord builds the canonical AB word for a concrete TA and ATA
// configuration pair under maximal constant k.
func GetCanonicalWord(taCfg ta.Configuration, ataCfg ata.Configuration, k int) Word {
	var states []RegionState
	for clockName, v := range taCfg.Clocks {
		idx := region.Of(v, k)
		states = append(states, TAState(taCfg.Location, clockName, idx))
	}
	for _, s := range ataCfg {
		idx := region.Of(s.Value, k)
		states = append(states, ATAState(s.Loc, idx))
	}
	return New(states)
}
