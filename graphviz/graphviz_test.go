package graphviz

import (
	"strings"
	"testing"

	"github.com/morxa/mtlsyn/ata"
	"github.com/morxa/mtlsyn/clock"
	"github.com/morxa/mtlsyn/heuristic"
	"github.com/morxa/mtlsyn/mtl"
	"github.com/morxa/mtlsyn/pool"
	"github.com/morxa/mtlsyn/search"
	"github.com/morxa/mtlsyn/ta"
	"math/big"
)

func TestTimedAutomatonRendersAcceptingLocationAndGuard(t *testing.T) {
	automaton := ta.New([]ta.Location{"l0", "l1"}, []string{"a"}, []string{"x"}, "l0")
	automaton.SetAccepting("l1", true)
	tr := ta.NewTransition("l0", "a", "l1")
	tr.AddGuard("x", clock.New(clock.GreaterOrEqual, big.NewRat(2, 1)))
	automaton.AddTransition(tr)

	dot := TimedAutomaton(automaton)
	if !strings.Contains(dot, "doublecircle") {
		t.Fatalf("expected accepting location to render doublecircle, got:\n%s", dot)
	}
	if !strings.Contains(dot, `"l0" -> "l1"`) {
		t.Fatalf("expected an edge from l0 to l1, got:\n%s", dot)
	}
}

func TestSearchTreeRendersLabelColors(t *testing.T) {
	automaton := ta.New([]ta.Location{"l0"}, []string{"a"}, []string{"x"}, "l0")
	automaton.SetAccepting("l0", true)
	l0 := ata.NewLocation(mtl.Atomic("init"))
	atm := ata.New([]string{"a"}, l0)
	atm.SetAccepting(l0, true)

	p := pool.New(2)
	e := search.New(search.Config{
		Automaton:          automaton,
		Automata:           atm,
		K:                  1,
		ControllerActions:  map[string]bool{"a": true},
		EnvironmentActions: map[string]bool{},
		Heuristic:          heuristic.BFS(),
		Pool:               p,
	})
	e.Run()

	dot := SearchTree(e.Root())
	if !strings.Contains(dot, "fillcolor=red") {
		t.Fatalf("expected the BOTTOM root to render red, got:\n%s", dot)
	}
}
