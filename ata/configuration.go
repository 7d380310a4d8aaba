package ata

import (
	"fmt"
	"math/big"
	"sort"
	"strings"
)

// State pairs an ATA location with the clock valuation that the alternating
// run has associated with it; a configuration is a set of such pairs.
type State struct {
	Loc   Location
	Value *big.Rat
}

func (s State) Key() string {
	return fmt.Sprintf("%s@%s", s.Loc.Key(), s.Value.RatString())
}

func (s State) String() string {
	return fmt.Sprintf("(%s, %s)", s.Loc, s.Value.RatString())
}

// Configuration is an unordered set of ATA states, deduplicated by key.
type Configuration []State

// NewConfiguration builds a configuration, deduplicating states with equal
// keys.
func NewConfiguration(states ...State) Configuration {
	seen := map[string]State{}
	for _, s := range states {
		seen[s.Key()] = s
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make(Configuration, len(keys))
	for i, k := range keys {
		out[i] = seen[k]
	}
	return out
}

func (c Configuration) String() string {
	parts := make([]string, len(c))
	for i, s := range c {
		parts[i] = s.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (c Configuration) Key() string {
	parts := make([]string, len(c))
	for i, s := range c {
		parts[i] = s.Key()
	}
	return strings.Join(parts, "|")
}

// IsAcceptingConfiguration reports whether every state in c has an accepting location:
// a run configuration is accepting iff it contains no state whose
// location is non-accepting.
func (a *ATA) IsAcceptingConfiguration(c Configuration) bool {
	for _, s := range c {
		if s.Loc.IsSink() {
			return false
		}
		if !a.IsAccepting(s.Loc) {
			return false
		}
	}
	return true
}

// InitialConfiguration returns the singleton configuration {(Initial, 0)}.
func (a *ATA) InitialConfiguration() Configuration {
	return NewConfiguration(State{Loc: a.Initial, Value: big.NewRat(0, 1)})
}

// Successors computes the set of configurations reachable from c on symbol
// by choosing, for every state in c, one minimal model of its transition
// formula and unioning the resulting atoms into a new configuration.
func (a *ATA) Successors(c Configuration, symbol string) []Configuration {
	if len(c) == 0 {
		return []Configuration{NewConfiguration()}
	}
	choices := make([][]Model, len(c))
	for i, s := range c {
		models := admissibleModels(GetMinimalModels(a.TransitionFormula(s.Loc, symbol)), s.Value)
		if len(models) == 0 {
			// No model satisfies this state's transition formula at its
			// current clock value: the run cannot continue through this
			// state, so it contributes no successor configurations at all.
			return nil
		}
		choices[i] = models
	}
	var results []Configuration
	var rec func(idx int, acc []State)
	rec = func(idx int, acc []State) {
		if idx == len(c) {
			results = append(results, NewConfiguration(acc...))
			return
		}
		v := c[idx].Value
		for _, m := range choices[idx] {
			next := append(append([]State{}, acc...), modelStates(m, v)...)
			rec(idx+1, next)
		}
	}
	rec(0, nil)
	return dedupConfigurations(results)
}

// admissibleModels filters models to those whose constraint atoms are
// satisfied by v, the clock value the chosen model will actually be
// evaluated against.
func admissibleModels(models []Model, v *big.Rat) []Model {
	var out []Model
	for _, m := range models {
		if SatisfiesConstraints(m, v) {
			out = append(out, m)
		}
	}
	return out
}

func modelStates(m Model, v *big.Rat) []State {
	out := make([]State, 0, len(m))
	for _, atom := range m {
		if !atom.IsLoc {
			continue
		}
		val := v
		if atom.Reset {
			val = big.NewRat(0, 1)
		}
		out = append(out, State{Loc: atom.Loc, Value: val})
	}
	return out
}

func dedupConfigurations(cs []Configuration) []Configuration {
	seen := map[string]struct{}{}
	var out []Configuration
	for _, c := range cs {
		k := c.Key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, c)
	}
	return out
}

// SatisfiesConstraints reports whether every constraint atom referenced by
// the minimal model m holds for value v; used by Successors to filter which
// minimal models are admissible for a concrete, already-decided clock
// valuation rather than an abstract region.
func SatisfiesConstraints(m Model, v *big.Rat) bool {
	for _, atom := range m {
		if !atom.IsLoc && !atom.Con.Satisfied(v) {
			return false
		}
	}
	return true
}
