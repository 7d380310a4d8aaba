package controller

import (
	"math/big"
	"testing"

	"github.com/morxa/mtlsyn/ata"
	"github.com/morxa/mtlsyn/heuristic"
	"github.com/morxa/mtlsyn/mtl"
	"github.com/morxa/mtlsyn/pool"
	"github.com/morxa/mtlsyn/search"
	"github.com/morxa/mtlsyn/ta"
)

func TestExtractRejectsBadRoot(t *testing.T) {
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

	if _, err := Extract(e.Root()); err == nil {
		t.Fatalf("expected Extract to reject a BOTTOM-labeled root")
	}
}

func TestExtractBuildsAcceptingControllerForDeadRoot(t *testing.T) {
	automaton := ta.New([]ta.Location{"l0"}, []string{"a"}, []string{"x"}, "l0")
	tr := ta.NewTransition("l0", "a", "l0")
	automaton.AddTransition(tr)

	l0 := ata.NewLocation(mtl.Atomic("init"))
	atm := ata.New([]string{"a"}, l0)
	atm.AddTransition(l0, "a", ata.FALSE())

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

	controller, err := Extract(e.Root())
	if err != nil {
		t.Fatalf("Extract failed on a TOP (dead) root: %v", err)
	}
	if len(controller.Locations) != 1 {
		t.Fatalf("expected a single controller location for a leaf root, got %d", len(controller.Locations))
	}
	cfg := ta.Configuration{Location: controller.Initial, Clocks: map[string]*big.Rat{}}
	if !controller.Accepts(cfg) {
		t.Fatalf("expected the controller's only location to be accepting")
	}
}

func TestExtractBuildsTransitionForControllerEscape(t *testing.T) {
	automaton := ta.New([]ta.Location{"l0", "l1"}, []string{"ctrl", "env"}, []string{"x"}, "l0")
	tCtrl := ta.NewTransition("l0", "ctrl", "l1")
	tEnv := ta.NewTransition("l0", "env", "l0")
	automaton.AddTransition(tCtrl)
	automaton.AddTransition(tEnv)
	automaton.SetAccepting("l0", false)

	l0 := ata.NewLocation(mtl.Atomic("init"))
	atm := ata.New([]string{"ctrl", "env"}, l0)
	atm.AddTransition(l0, "ctrl", ata.FALSE())
	atm.AddTransition(l0, "env", ata.FALSE())

	p := pool.New(2)
	e := search.New(search.Config{
		Automaton:          automaton,
		Automata:           atm,
		K:                  1,
		ControllerActions:  map[string]bool{"ctrl": true},
		EnvironmentActions: map[string]bool{"env": true},
		Heuristic:          heuristic.BFS(),
		Pool:               p,
	})
	e.Run()

	if e.Root().Payload().Label != search.LabelTop {
		t.Skip("fixture did not converge to a TOP root under this engine's rules")
	}
	if _, err := Extract(e.Root()); err != nil {
		t.Fatalf("Extract failed on a TOP root: %v", err)
	}
}
