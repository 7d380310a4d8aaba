package search

import (
	"testing"

	"github.com/morxa/mtlsyn/ata"
	"github.com/morxa/mtlsyn/heuristic"
	"github.com/morxa/mtlsyn/mtl"
	"github.com/morxa/mtlsyn/pool"
	"github.com/morxa/mtlsyn/ta"
)

func zeroHeuristic(heuristic.Node) int { return 0 }

func TestRunDetectsImmediateBadNode(t *testing.T) {
	automaton := ta.New([]ta.Location{"l0"}, []string{"a"}, []string{"x"}, "l0")
	automaton.SetAccepting("l0", true)

	l0 := ata.NewLocation(mtl.Atomic("init"))
	atm := ata.New([]string{"a"}, l0)
	atm.SetAccepting(l0, true)

	p := pool.New(2)
	e := New(Config{
		Automaton:          automaton,
		Automata:           atm,
		K:                  1,
		ControllerActions:  map[string]bool{"a": true},
		EnvironmentActions: map[string]bool{},
		Heuristic:          zeroHeuristic,
		Pool:               p,
	})
	e.Run()

	root := e.Root()
	if root.Payload().State != StateBad {
		t.Fatalf("expected root to be BAD, got %v", root.Payload().State)
	}
	if root.Payload().Label != LabelBottom {
		t.Fatalf("expected root to be labeled BOTTOM, got %v", root.Payload().Label)
	}
}

func TestRunDetectsDeadNodeWhenNoATASuccessor(t *testing.T) {
	automaton := ta.New([]ta.Location{"l0"}, []string{"a"}, []string{"x"}, "l0")
	tr := ta.NewTransition("l0", "a", "l0")
	automaton.AddTransition(tr)

	l0 := ata.NewLocation(mtl.Atomic("init"))
	atm := ata.New([]string{"a"}, l0)
	atm.AddTransition(l0, "a", ata.FALSE())

	p := pool.New(2)
	e := New(Config{
		Automaton:          automaton,
		Automata:           atm,
		K:                  1,
		ControllerActions:  map[string]bool{"a": true},
		EnvironmentActions: map[string]bool{},
		Heuristic:          zeroHeuristic,
		Pool:               p,
	})
	e.Run()

	root := e.Root()
	if root.Payload().State != StateDead {
		t.Fatalf("expected root to be DEAD (no successors on any symbol), got %v", root.Payload().State)
	}
	if root.Payload().Label != LabelTop {
		t.Fatalf("expected DEAD root to be labeled TOP, got %v", root.Payload().Label)
	}
}

func TestRunGoodWhenATAAlreadyAtSink(t *testing.T) {
	automaton := ta.New([]ta.Location{"l0"}, []string{"a"}, []string{"x"}, "l0")

	sink := ata.SinkLocation()
	atm := ata.New([]string{"a"}, sink)

	p := pool.New(2)
	e := New(Config{
		Automaton:          automaton,
		Automata:           atm,
		K:                  1,
		ControllerActions:  map[string]bool{"a": true},
		EnvironmentActions: map[string]bool{},
		Heuristic:          zeroHeuristic,
		Pool:               p,
	})
	e.Run()

	root := e.Root()
	if root.Payload().State != StateGood {
		t.Fatalf("expected root to be GOOD (ATA already exhausted at sink), got %v", root.Payload().State)
	}
	if root.Payload().Label != LabelTop {
		t.Fatalf("expected GOOD root to be labeled TOP, got %v", root.Payload().Label)
	}
}

func TestRunIncrementalAgreesWithBatchLabel(t *testing.T) {
	buildEngine := func(incremental bool) *Engine {
		automaton := ta.New([]ta.Location{"l0"}, []string{"a"}, []string{"x"}, "l0")
		automaton.SetAccepting("l0", true)
		l0 := ata.NewLocation(mtl.Atomic("init"))
		atm := ata.New([]string{"a"}, l0)
		atm.SetAccepting(l0, true)
		p := pool.New(2)
		return New(Config{
			Automaton:          automaton,
			Automata:           atm,
			K:                  1,
			ControllerActions:  map[string]bool{"a": true},
			EnvironmentActions: map[string]bool{},
			Heuristic:          zeroHeuristic,
			Pool:               p,
			Incremental:        incremental,
		})
	}
	batch := buildEngine(false)
	batch.Run()
	incremental := buildEngine(true)
	incremental.Run()

	if batch.Root().Payload().Label != incremental.Root().Payload().Label {
		t.Fatalf("expected batch and incremental labeling to agree: batch=%v incremental=%v",
			batch.Root().Payload().Label, incremental.Root().Payload().Label)
	}
}

