package canonical

import (
	"math/big"
	"testing"

	"github.com/morxa/mtlsyn/ata"
	"github.com/morxa/mtlsyn/mtl"
	"github.com/morxa/mtlsyn/ta"
)

func TestGetCanonicalWordGroupsBySharedIndex(t *testing.T) {
	taCfg := ta.Configuration{Location: "l0", Clocks: map[string]*big.Rat{"x": big.NewRat(1, 1)}}
	ataCfg := ata.NewConfiguration(ata.State{Loc: ata.NewLocation(mtl.Atomic("p")), Value: big.NewRat(1, 1)})
	w := GetCanonicalWord(taCfg, ataCfg, 5)
	if len(w) != 1 {
		t.Fatalf("expected both states at index 2 to share one group, got %v", w)
	}
	if len(w[0].States) != 2 {
		t.Fatalf("expected 2 states in the shared group, got %v", w[0].States)
	}
}

func TestGetCanonicalWordOrdersGroupsByIndex(t *testing.T) {
	taCfg := ta.Configuration{Location: "l0", Clocks: map[string]*big.Rat{"x": big.NewRat(3, 2)}}
	ataCfg := ata.NewConfiguration(ata.State{Loc: ata.NewLocation(mtl.Atomic("p")), Value: big.NewRat(1, 1)})
	w := GetCanonicalWord(taCfg, ataCfg, 5)
	if len(w) != 2 {
		t.Fatalf("expected 2 groups, got %v", w)
	}
	if w[0].Index >= w[1].Index {
		t.Fatalf("expected ascending index order, got %v", w)
	}
}

func TestWordKeyIsOrderSensitiveButStateOrderInsensitive(t *testing.T) {
	s1 := TAState("l0", "x", 2)
	s2 := TAState("l0", "y", 2)
	w1 := New([]RegionState{s1, s2})
	w2 := New([]RegionState{s2, s1})
	if w1.Key() != w2.Key() {
		t.Fatalf("expected state order within a group not to affect Key, got %q vs %q", w1.Key(), w2.Key())
	}
}

func TestGetCandidateRoundTripsIntegerRegion(t *testing.T) {
	w := New([]RegionState{TAState("l0", "x", 4)}) // index 4 -> integer value 2
	cfg, _ := GetCandidate(w)
	if cfg.Clocks["x"].Cmp(big.NewRat(2, 1)) != 0 {
		t.Fatalf("expected reconstructed value 2, got %s", cfg.Clocks["x"].RatString())
	}
}

func TestGetCandidateProducesFractionalForOpenRegion(t *testing.T) {
	w := New([]RegionState{TAState("l0", "x", 5)}) // index 5 -> open interval (2,3)
	cfg, _ := GetCandidate(w)
	v := cfg.Clocks["x"]
	if v.Cmp(big.NewRat(2, 1)) <= 0 || v.Cmp(big.NewRat(3, 1)) >= 0 {
		t.Fatalf("expected value strictly between 2 and 3, got %s", v.RatString())
	}
}
