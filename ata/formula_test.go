package ata

import (
	"math/big"
	"testing"

	"github.com/morxa/mtlsyn/clock"
	"github.com/morxa/mtlsyn/mtl"
)

func TestGetMinimalModelsOr(t *testing.T) {
	l1 := NewLocation(mtl.Atomic("l1"))
	l2 := NewLocation(mtl.Atomic("l2"))
	f := Or(Loc(l1), Loc(l2))
	models := GetMinimalModels(f)
	if len(models) != 2 {
		t.Fatalf("expected 2 minimal models, got %d: %v", len(models), models)
	}
}

func TestGetMinimalModelsAndUnionsAtoms(t *testing.T) {
	l1 := NewLocation(mtl.Atomic("l1"))
	l2 := NewLocation(mtl.Atomic("l2"))
	f := And(Loc(l1), Loc(l2))
	models := GetMinimalModels(f)
	if len(models) != 1 || len(models[0]) != 2 {
		t.Fatalf("expected 1 model with 2 atoms, got %v", models)
	}
}

func TestGetMinimalModelsTrueIsEmptyModel(t *testing.T) {
	models := GetMinimalModels(TRUE())
	if len(models) != 1 || len(models[0]) != 0 {
		t.Fatalf("expected single empty model, got %v", models)
	}
}

func TestGetMinimalModelsFalseIsEmpty(t *testing.T) {
	if models := GetMinimalModels(FALSE()); len(models) != 0 {
		t.Fatalf("expected no models, got %v", models)
	}
}

func TestGetMinimalModelsResetMarksAtoms(t *testing.T) {
	l1 := NewLocation(mtl.Atomic("l1"))
	models := GetMinimalModels(Reset(Loc(l1)))
	if len(models) != 1 || !models[0][0].Reset {
		t.Fatalf("expected reset atom, got %v", models)
	}
}

func TestGetMinimalModelsPrunesNonMinimal(t *testing.T) {
	l1 := NewLocation(mtl.Atomic("l1"))
	l2 := NewLocation(mtl.Atomic("l2"))
	// (l1) || (l1 && l2) should leave only {l1} after minimization.
	f := Or(Loc(l1), And(Loc(l1), Loc(l2)))
	models := GetMinimalModels(f)
	if len(models) != 1 || len(models[0]) != 1 {
		t.Fatalf("expected single minimal model {l1}, got %v", models)
	}
}

func TestSuccessorsComputesCrossProduct(t *testing.T) {
	l1 := NewLocation(mtl.Atomic("l1"))
	l2 := NewLocation(mtl.Atomic("l2"))
	l3 := NewLocation(mtl.Atomic("l3"))
	a := New([]string{"a"}, l1)
	a.AddTransition(l1, "a", Or(Loc(l2), Loc(l3)))
	cfg := NewConfiguration(State{Loc: l1, Value: big.NewRat(0, 1)})
	succs := a.Successors(cfg, "a")
	if len(succs) != 2 {
		t.Fatalf("expected 2 successor configurations, got %d: %v", len(succs), succs)
	}
}

func TestSuccessorsNoModelYieldsNoSuccessors(t *testing.T) {
	l1 := NewLocation(mtl.Atomic("l1"))
	a := New([]string{"a"}, l1)
	a.AddTransition(l1, "a", FALSE())
	cfg := NewConfiguration(State{Loc: l1, Value: big.NewRat(0, 1)})
	if succs := a.Successors(cfg, "a"); len(succs) != 0 {
		t.Fatalf("expected no successors, got %v", succs)
	}
}

func TestSatisfiesConstraints(t *testing.T) {
	c := clock.New(clock.LessThan, big.NewRat(2, 1))
	m := Model{{Con: c}}
	if !SatisfiesConstraints(m, big.NewRat(1, 1)) {
		t.Fatalf("expected 1 < 2 to satisfy constraint")
	}
	if SatisfiesConstraints(m, big.NewRat(3, 1)) {
		t.Fatalf("expected 3 < 2 to fail constraint")
	}
}

