package mtl

import (
	"math/big"
	"testing"
)

func TestPNFPushesNegationToAtoms(t *testing.T) {
	f := NotF(AndF(Atomic("a"), Atomic("b")))
	got := f.ToPNF()
	if !IsPNF(got) {
		t.Fatalf("expected PNF, got %v", got)
	}
	want := OrF(NotF(Atomic("a")), NotF(Atomic("b")))
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestPNFUntilDuality(t *testing.T) {
	i := NewInterval(big.NewRat(2, 1), Weak, nil, Infty)
	f := NotF(UntilF(Atomic("a"), Atomic("b"), i))
	got := f.ToPNF()
	if got.Op() != DualUntil {
		t.Fatalf("expected dual-until at the top, got %v", got.Op())
	}
	if got.Operands()[0].Op() != Not || got.Operands()[1].Op() != Not {
		t.Fatalf("expected negated operands, got %v", got)
	}
}

func TestPNFIdempotent(t *testing.T) {
	f := AndF(Atomic("a"), NotF(Atomic("b")))
	if !f.ToPNF().Equal(f.ToPNF().ToPNF()) {
		t.Fatalf("PNF should be idempotent")
	}
}

func TestFinallyGloballySugar(t *testing.T) {
	i := Unbounded()
	fin := FinallyF(Atomic("a"), i)
	if fin.Op() != Until || fin.Operands()[0].Op() != True {
		t.Fatalf("Finally should desugar to TRUE U phi, got %v", fin)
	}
	glob := GloballyF(Atomic("a"), i)
	if glob.Op() != DualUntil || glob.Operands()[0].Op() != True {
		t.Fatalf("Globally should desugar to TRUE ~U phi, got %v", glob)
	}
}

func TestEqualityStructuralAfterPNF(t *testing.T) {
	a := NotF(NotF(Atomic("a")))
	// !!a reduces to "a" under PNF; the check below is on the De Morgan
	// rewrite: !(a || b) should equal !a && !b.
	if a.Op() != Not {
		t.Fatalf("sanity check failed")
	}
	lhs := NotF(OrF(Atomic("a"), Atomic("b")))
	rhs := AndF(NotF(Atomic("a")), NotF(Atomic("b")))
	if !lhs.ToPNF().Equal(rhs) {
		t.Fatalf("De Morgan rewrite should make these equal: %v vs %v", lhs.ToPNF(), rhs.ToPNF())
	}
}

func TestClosureCollectsUntilAndDualUntil(t *testing.T) {
	i := Unbounded()
	u := UntilF(Atomic("a"), Atomic("b"), i)
	du := DualUntilF(Atomic("c"), Atomic("d"), i)
	f := AndF(u, du)
	closure := f.Closure()
	if len(closure) != 2 {
		t.Fatalf("expected 2 subformulas in closure, got %d: %v", len(closure), closure)
	}
}

func TestAlphabet(t *testing.T) {
	i := Unbounded()
	f := UntilF(Atomic("a"), OrF(Atomic("b"), NotF(Atomic("c"))), i)
	alphabet := f.Alphabet()
	if len(alphabet) != 3 {
		t.Fatalf("expected 3 atomic propositions, got %v", alphabet)
	}
}
