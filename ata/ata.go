package ata

import "golang.org/x/exp/slices"

// Transition is a single ATA transition: from Source on Symbol, move to the
// configuration described by the minimal models of Formula.
type Transition struct {
	Source Location
	Symbol string
	Formula Formula
}

// ATA is an Alternating Timed Automaton over a single implicit clock
//: locations are MTL subformulas, transitions carry positive
// boolean formulas over location atoms, clock constraints and resets, and
// acceptance is defined over sets of (location, value) pairs.
type ATA struct {
	Alphabet    []string
	Initial     Location
	Accepting   map[string]bool // keyed by Location.Key(); true if accepting
	transitions map[string][]Transition
	Sink        Location
}

// New builds an ATA with the given alphabet and initial location; the sink
// location is added implicitly and is never accepting.
func New(alphabet []string, initial Location) *ATA {
	sink := SinkLocation()
	a := &ATA{
		Alphabet:    alphabet,
		Initial:     initial,
		Accepting:   map[string]bool{},
		transitions: map[string][]Transition{},
		Sink:        sink,
	}
	// The sink is absorbing: on every symbol it transitions to itself,
	// unconditionally and without resetting. It is implicit and
	// non-accepting.
	for _, sym := range alphabet {
		a.AddTransition(sink, sym, Loc(sink))
	}
	return a
}

// AddTransition registers a transition. Multiple calls for the same
// (source, symbol) pair accumulate as alternative disjuncts, matching how
// the translation in the translate package builds transitions incrementally.
func (a *ATA) AddTransition(source Location, symbol string, f Formula) {
	key := transitionKey(source.Key(), symbol)
	a.transitions[key] = append(a.transitions[key], Transition{Source: source, Symbol: symbol, Formula: f})
}

// SetAccepting marks l as an accepting location.
func (a *ATA) SetAccepting(l Location, accepting bool) {
	a.Accepting[l.Key()] = accepting
}

// IsAccepting reports whether l is marked accepting.
func (a *ATA) IsAccepting(l Location) bool {
	return a.Accepting[l.Key()]
}

func transitionKey(locKey, symbol string) string { return locKey + "\x00" + symbol }

// TransitionFormula returns the combined transition formula for (source,
// symbol): the disjunction of every formula registered via AddTransition,
// or FALSE if none were registered.
func (a *ATA) TransitionFormula(source Location, symbol string) Formula {
	key := transitionKey(source.Key(), symbol)
	ts := a.transitions[key]
	if len(ts) == 0 {
		return FALSE()
	}
	operands := make([]Formula, len(ts))
	for i, t := range ts {
		operands[i] = t.Formula
	}
	if len(operands) == 1 {
		return operands[0]
	}
	return Or(operands[0], operands[1:]...)
}

// Locations returns every location that appears as a transition source,
// plus the initial and sink locations, sorted by key for deterministic
// iteration.
func (a *ATA) Locations() []Location {
	set := map[string]Location{}
	set[a.Initial.Key()] = a.Initial
	set[a.Sink.Key()] = a.Sink
	for _, ts := range a.transitions {
		for _, t := range ts {
			set[t.Source.Key()] = t.Source
		}
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	out := make([]Location, len(keys))
	for i, k := range keys {
		out[i] = set[k]
	}
	return out
}
