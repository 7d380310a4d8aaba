// Package controller implements controller extraction:
// given a search tree root labeled TOP, build a timed automaton whose
// locations are sets of canonical AB words and whose transitions mirror
// the TOP-labeled subtree's winning moves.
package controller

import (
	"fmt"
	"math/big"

	"github.com/morxa/mtlsyn/clock"
	"github.com/morxa/mtlsyn/search"
	"github.com/morxa/mtlsyn/ta"
)

// the single clock of an extracted controller automaton. A controller TA
// inherits the plant's action alphabet but re-derives its own, separate
// clock to track elapsed region steps along the winning strategy; reusing
// the plant's clock names would conflate two automata's independent timing.
const controllerClock = "t"

// Extract walks the TOP-labeled subtree rooted at root and builds the
// corresponding controller TA. It returns an error if any node reachable
// from root by a TOP-labeled step is not itself TOP.
func Extract(root *search.Node) (*ta.TimedAutomaton, error) {
	if root.Payload().Label != search.LabelTop {
		return nil, fmt.Errorf("controller: root is not TOP (label=%v)", root.Payload().Label)
	}

	locationName := func(n *search.Node) ta.Location {
		return ta.Location(n.Payload().String() + fmt.Sprintf("#%p", n))
	}

	automaton := ta.New(nil, nil, []string{controllerClock}, locationName(root))
	visited := map[*search.Node]bool{}

	var walk func(n *search.Node) error
	walk = func(n *search.Node) error {
		if n.Payload().Label != search.LabelTop {
			return fmt.Errorf("controller: reached a non-TOP node while walking the winning subtree (label=%v)", n.Payload().Label)
		}
		name := locationName(n)
		if visited[n] {
			return nil
		}
		visited[n] = true
		automaton.Locations = append(automaton.Locations, name)
		automaton.SetAccepting(name, true)

		for _, child := range n.Children() {
			if child.Payload().Label != search.LabelTop {
				continue
			}
			childName := locationName(child)
			for _, ia := range child.Payload().Incoming {
				automaton.Alphabet = appendUnique(automaton.Alphabet, ia.Action)
				t := ta.NewTransition(name, ia.Action, childName)
				for _, c := range guardFor(ia.Delta) {
					t.AddGuard(controllerClock, c)
				}
				// Resets are intentionally left empty: the search tree's
				// incoming actions record a region-step increment, not a
				// concrete clock reset decision, and reconstructing resets
				// from that alone would be guesswork (see DESIGN.md).
				automaton.AddTransition(t)
			}
			if err := walk(child); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(root); err != nil {
		return nil, err
	}
	return automaton, nil
}

// guardFor builds the clock constraints restricting the controller clock to
// the region window the winning move was taken in: delta counts the number
// of elapsed region steps since the controller clock was last reset, so an
// even delta pins the clock to the integer point delta/2, and an odd delta
// opens the interval between the two integers it falls between.
func guardFor(delta int) []clock.Constraint {
	if delta == 0 {
		return nil
	}
	if delta%2 == 0 {
		return []clock.Constraint{clock.New(clock.Equal, big.NewRat(int64(delta), 2))}
	}
	return []clock.Constraint{
		clock.New(clock.GreaterThan, big.NewRat(int64(delta-1), 2)),
		clock.New(clock.LessThan, big.NewRat(int64(delta+1), 2)),
	}
}

func appendUnique(ss []string, s string) []string {
	for _, existing := range ss {
		if existing == s {
			return ss
		}
	}
	return append(ss, s)
}
