package ta

import (
	"math/big"
	"testing"

	"github.com/morxa/mtlsyn/clock"
)

func TestSuccessorsAppliesGuardAndReset(t *testing.T) {
	a := New([]Location{"l0", "l1"}, []string{"tick"}, []string{"x"}, "l0")
	tr := NewTransition("l0", "tick", "l1")
	tr.AddGuard("x", clock.New(clock.GreaterOrEqual, big.NewRat(1, 1)))
	tr.AddReset("x")
	a.AddTransition(tr)
	a.SetAccepting("l1", true)

	cfg := Configuration{Location: "l0", Clocks: map[string]*big.Rat{"x": big.NewRat(0, 1)}}
	if succs := a.Successors(cfg, "tick"); len(succs) != 0 {
		t.Fatalf("expected guard to block transition at x=0, got %v", succs)
	}

	cfg.Clocks["x"] = big.NewRat(2, 1)
	succs := a.Successors(cfg, "tick")
	if len(succs) != 1 {
		t.Fatalf("expected 1 successor, got %d", len(succs))
	}
	if succs[0].Config.Clocks["x"].Sign() != 0 {
		t.Fatalf("expected reset clock to be 0, got %v", succs[0].Config.Clocks["x"])
	}
	if !a.Accepts(succs[0].Config) {
		t.Fatalf("expected l1 to be accepting")
	}
}

func TestInitialConfigurationZeroesAllClocks(t *testing.T) {
	a := New([]Location{"l0"}, nil, []string{"x", "y"}, "l0")
	cfg := a.InitialConfiguration()
	if cfg.Clocks["x"].Sign() != 0 || cfg.Clocks["y"].Sign() != 0 {
		t.Fatalf("expected all clocks to start at 0, got %v", cfg.Clocks)
	}
}
