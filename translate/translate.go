// Package translate implements the MTL-to-ATA translation: given an MTL
// formula and an alphabet, build an alternating timed automaton that
// accepts exactly the timed words satisfying the formula.
package translate

import (
	"fmt"

	"github.com/morxa/mtlsyn/ata"
	"github.com/morxa/mtlsyn/clock"
	"github.com/morxa/mtlsyn/mtl"
)

// Translate builds A(phi): an ATA that accepts a timed word w iff w models
// phi. If alphabet is empty, the atomic propositions of PNF(phi) are used.
// It is an error if alphabet contains the reserved initial-location name.
func Translate(phi mtl.Formula, alphabet []string) (*ata.ATA, error) {
	pnf := phi.ToPNF()

	if len(alphabet) == 0 {
		alphabet = pnf.Alphabet()
	}
	for _, a := range alphabet {
		if a == ata.InitialLocationName {
			return nil, fmt.Errorf("translate: alphabet may not contain the reserved location name %q", ata.InitialLocationName)
		}
	}

	closure := pnf.Closure()
	a := ata.New(alphabet, ata.InitialLocation())
	for _, psi := range closure {
		if psi.Op() == mtl.DualUntil {
			a.SetAccepting(ata.NewLocation(psi), true)
		}
	}

	for _, sym := range alphabet {
		initF, err := initFormula(pnf, sym, true)
		if err != nil {
			return nil, err
		}
		a.AddTransition(ata.InitialLocation(), sym, initF)

		for _, psi := range closure {
			f, err := transitionFormula(psi, sym)
			if err != nil {
				return nil, err
			}
			a.AddTransition(ata.NewLocation(psi), sym, f)
		}
	}
	return a, nil
}

// transitionFormula computes delta(psi, a) for psi = phi1 U_I phi2 or
// phi1 DualUntil_I phi2.
func transitionFormula(psi mtl.Formula, a string) (ata.Formula, error) {
	phi1, phi2 := psi.Operands()[0], psi.Operands()[1]
	i1, err := initFormula(phi1, a, false)
	if err != nil {
		return ata.Formula{}, err
	}
	i2, err := initFormula(phi2, a, false)
	if err != nil {
		return ata.Formula{}, err
	}
	loc := ata.Loc(ata.NewLocation(psi))

	switch psi.Op() {
	case mtl.Until:
		return ata.Or(ata.And(i2, contains(psi.Interval())), ata.And(i1, loc)), nil
	case mtl.DualUntil:
		return ata.And(ata.Or(i2, notContains(psi.Interval())), ata.Or(i1, loc)), nil
	default:
		return ata.Formula{}, fmt.Errorf("translate: %v is not an until/dual-until subformula", psi)
	}
}

// initFormula implements init(psi, a, first). psi must be in positive
// normal form.
func initFormula(psi mtl.Formula, a string, first bool) (ata.Formula, error) {
	switch psi.Op() {
	case mtl.True:
		return ata.TRUE(), nil
	case mtl.False:
		return ata.FALSE(), nil
	case mtl.AP:
		if psi.AP() == a {
			return ata.TRUE(), nil
		}
		return ata.FALSE(), nil
	case mtl.Not:
		operand := psi.Operands()[0]
		switch operand.Op() {
		case mtl.AP:
			if operand.AP() == a {
				return ata.FALSE(), nil
			}
			return ata.TRUE(), nil
		case mtl.True:
			return ata.FALSE(), nil
		case mtl.False:
			return ata.TRUE(), nil
		default:
			return ata.Formula{}, fmt.Errorf("translate: %v is not in positive normal form", psi)
		}
	case mtl.And, mtl.Or:
		operands := psi.Operands()
		fs := make([]ata.Formula, len(operands))
		for j, o := range operands {
			f, err := initFormula(o, a, first)
			if err != nil {
				return ata.Formula{}, err
			}
			fs[j] = f
		}
		if psi.Op() == mtl.And {
			return ata.And(fs[0], fs[1:]...), nil
		}
		return ata.Or(fs[0], fs[1:]...), nil
	case mtl.Until, mtl.DualUntil:
		loc := ata.Loc(ata.NewLocation(psi))
		if first {
			return loc, nil
		}
		return ata.Reset(loc), nil
	default:
		return ata.Formula{}, fmt.Errorf("translate: unhandled operator %v", psi.Op())
	}
}

// contains builds the clock-constraint formula asserting that the ATA's
// implicit clock value lies within interval i.
func contains(i mtl.Interval) ata.Formula {
	var conjuncts []ata.Formula
	if i.LowerType != mtl.Infty {
		op := clock.GreaterOrEqual
		if i.LowerType == mtl.Strict {
			op = clock.GreaterThan
		}
		conjuncts = append(conjuncts, ata.ConstraintF(clock.New(op, i.LowerBound)))
	}
	if i.UpperType != mtl.Infty {
		op := clock.LessOrEqual
		if i.UpperType == mtl.Strict {
			op = clock.LessThan
		}
		conjuncts = append(conjuncts, ata.ConstraintF(clock.New(op, i.UpperBound)))
	}
	if len(conjuncts) == 0 {
		return ata.TRUE()
	}
	if len(conjuncts) == 1 {
		return conjuncts[0]
	}
	return ata.And(conjuncts[0], conjuncts[1:]...)
}

// notContains builds ¬contains(I) as the disjunction of the negated,
// flipped-comparator bound constraints (De Morgan dual of contains).
func notContains(i mtl.Interval) ata.Formula {
	var disjuncts []ata.Formula
	if i.LowerType != mtl.Infty {
		op := clock.LessThan
		if i.LowerType == mtl.Strict {
			op = clock.LessOrEqual
		}
		disjuncts = append(disjuncts, ata.ConstraintF(clock.New(op, i.LowerBound)))
	}
	if i.UpperType != mtl.Infty {
		op := clock.GreaterOrEqual
		if i.UpperType == mtl.Weak {
			op = clock.GreaterThan
		}
		disjuncts = append(disjuncts, ata.ConstraintF(clock.New(op, i.UpperBound)))
	}
	if len(disjuncts) == 0 {
		return ata.FALSE()
	}
	if len(disjuncts) == 1 {
		return disjuncts[0]
	}
	return ata.Or(disjuncts[0], disjuncts[1:]...)
}
