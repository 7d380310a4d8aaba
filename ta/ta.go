// Package ta implements timed automata: locations, guarded and
// clock-resetting transitions, acceptance, and concrete symbolic successors.
// Both the plant automaton and the extracted controller are represented by
// this package.
package ta

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/morxa/mtlsyn/clock"
	"golang.org/x/exp/slices"
)

// Location identifies a TA location by name.
type Location string

// Transition is (source, action, target, guard, resets): guard is a
// multimap from clock name to the constraints that clock's value must
// satisfy; resets is the set of clocks reset to 0 on firing.
type Transition struct {
	Source Location
	Action string
	Target Location
	Guard  map[string][]clock.Constraint
	Resets map[string]bool
}

// NewTransition builds a transition with no guard or resets; use
// AddGuard/AddReset to populate them.
func NewTransition(source Location, action string, target Location) *Transition {
	return &Transition{Source: source, Action: action, Target: target, Guard: map[string][]clock.Constraint{}, Resets: map[string]bool{}}
}

// AddGuard adds a constraint on clock c to the transition's guard.
func (t *Transition) AddGuard(c string, con clock.Constraint) *Transition {
	t.Guard[c] = append(t.Guard[c], con)
	return t
}

// AddReset marks clock c as reset by this transition.
func (t *Transition) AddReset(c string) *Transition {
	t.Resets[c] = true
	return t
}

// Satisfied reports whether valuation satisfies every constraint in the
// transition's guard.
func (t *Transition) Satisfied(valuation map[string]*big.Rat) bool {
	for c, cons := range t.Guard {
		v, ok := valuation[c]
		if !ok {
			v = big.NewRat(0, 1)
		}
		for _, con := range cons {
			if !con.Satisfied(v) {
				return false
			}
		}
	}
	return true
}

// Apply returns the clock valuation reached by firing this transition from
// valuation: every reset clock becomes 0, every other clock is unchanged.
func (t *Transition) Apply(valuation map[string]*big.Rat) map[string]*big.Rat {
	out := make(map[string]*big.Rat, len(valuation))
	for c, v := range valuation {
		if t.Resets[c] {
			out[c] = big.NewRat(0, 1)
		} else {
			out[c] = v
		}
	}
	return out
}

// TimedAutomaton is (Locations, Alphabet, Clocks, Initial, Accepting,
// Transitions).
type TimedAutomaton struct {
	Locations  []Location
	Alphabet   []string
	Clocks     []string
	Initial    Location
	Accepting  map[Location]bool
	transitions []*Transition
}

// New builds an empty TA with the given locations, alphabet, clocks and
// initial location.
func New(locations []Location, alphabet, clocks []string, initial Location) *TimedAutomaton {
	return &TimedAutomaton{
		Locations: locations,
		Alphabet:  alphabet,
		Clocks:    clocks,
		Initial:   initial,
		Accepting: map[Location]bool{},
	}
}

// AddTransition registers t.
func (a *TimedAutomaton) AddTransition(t *Transition) { a.transitions = append(a.transitions, t) }

// SetAccepting marks l as accepting.
func (a *TimedAutomaton) SetAccepting(l Location, accepting bool) { a.Accepting[l] = accepting }

// Transitions returns every registered transition.
func (a *TimedAutomaton) Transitions() []*Transition { return a.transitions }

// TransitionsFrom returns the transitions leaving source on action.
func (a *TimedAutomaton) TransitionsFrom(source Location, action string) []*Transition {
	var out []*Transition
	for _, t := range a.transitions {
		if t.Source == source && t.Action == action {
			out = append(out, t)
		}
	}
	return out
}

// Configuration is a concrete TA state: a location plus a clock valuation.
type Configuration struct {
	Location Location
	Clocks   map[string]*big.Rat
}

// InitialConfiguration returns the TA's initial location with every clock
// at 0.
func (a *TimedAutomaton) InitialConfiguration() Configuration {
	clocks := make(map[string]*big.Rat, len(a.Clocks))
	for _, c := range a.Clocks {
		clocks[c] = big.NewRat(0, 1)
	}
	return Configuration{Location: a.Initial, Clocks: clocks}
}

// Accepts reports whether c's location is accepting.
func (a *TimedAutomaton) Accepts(c Configuration) bool { return a.Accepting[c.Location] }

// Successor is a single concrete successor of a Configuration: the firing
// transition and the resulting configuration.
type Successor struct {
	Transition *Transition
	Config     Configuration
}

// Successors returns every configuration reachable from c by firing a
// transition labeled action whose guard is satisfied by c's valuation.
func (a *TimedAutomaton) Successors(c Configuration, action string) []Successor {
	var out []Successor
	for _, t := range a.TransitionsFrom(c.Location, action) {
		if !t.Satisfied(c.Clocks) {
			continue
		}
		out = append(out, Successor{Transition: t, Config: Configuration{Location: t.Target, Clocks: t.Apply(c.Clocks)}})
	}
	return out
}

func (c Configuration) String() string {
	names := make([]string, 0, len(c.Clocks))
	for n := range c.Clocks {
		names = append(names, n)
	}
	slices.Sort(names)
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = fmt.Sprintf("%s=%s", n, c.Clocks[n].RatString())
	}
	return fmt.Sprintf("(%s, {%s})", c.Location, strings.Join(parts, ", "))
}
