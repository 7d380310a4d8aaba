// Package mtl implements Metric Temporal Logic formulas: the tagged AST,
// positive normal form, subformula extraction, and structural equality.
package mtl

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/exp/slices"
)

// Op tags the kind of an MTL formula node.
type Op int

const (
	True Op = iota
	False
	AP
	And
	Or
	Not
	Until
	DualUntil
)

func (op Op) String() string {
	switch op {
	case True:
		return "TRUE"
	case False:
		return "FALSE"
	case AP:
		return "AP"
	case And:
		return "AND"
	case Or:
		return "OR"
	case Not:
		return "NOT"
	case Until:
		return "UNTIL"
	case DualUntil:
		return "DUAL_UNTIL"
	default:
		return "?"
	}
}

// Formula is an immutable MTL formula node. The zero value is not a valid
// formula; use the constructors below.
type Formula struct {
	op       Op
	ap       string
	operands []Formula
	interval Interval
}

// TrueF returns the TRUE formula.
func TrueF() Formula { return Formula{op: True} }

// FalseF returns the FALSE formula.
func FalseF() Formula { return Formula{op: False} }

// Atomic returns the atomic proposition AP(a).
func Atomic(a string) Formula { return Formula{op: AP, ap: a} }

// AndF returns the conjunction of the given formulas; requires at least two.
func AndF(f1 Formula, rest ...Formula) Formula {
	return Formula{op: And, operands: append([]Formula{f1}, rest...)}
}

// OrF returns the disjunction of the given formulas; requires at least two.
func OrF(f1 Formula, rest ...Formula) Formula {
	return Formula{op: Or, operands: append([]Formula{f1}, rest...)}
}

// NotF returns the negation of f.
func NotF(f Formula) Formula { return Formula{op: Not, operands: []Formula{f}} }

// UntilF returns phi1 U_I phi2.
func UntilF(phi1, phi2 Formula, i Interval) Formula {
	return Formula{op: Until, operands: []Formula{phi1, phi2}, interval: i}
}

// DualUntilF returns phi1 ~U_I phi2 (the dual/release operator).
func DualUntilF(phi1, phi2 Formula, i Interval) Formula {
	return Formula{op: DualUntil, operands: []Formula{phi1, phi2}, interval: i}
}

// FinallyF returns the "finally" sugar: TRUE U_I phi.
func FinallyF(phi Formula, i Interval) Formula {
	return UntilF(TrueF(), phi, i)
}

// GloballyF returns the "globally" sugar: TRUE ~U_I phi.
func GloballyF(phi Formula, i Interval) Formula {
	return DualUntilF(TrueF(), phi, i)
}

// Op returns the formula's operator tag.
func (f Formula) Op() Op { return f.op }

// AP returns the atomic proposition name; only meaningful if Op() == AP.
func (f Formula) AP() string { return f.ap }

// Operands returns the formula's direct subformulas.
func (f Formula) Operands() []Formula { return f.operands }

// Interval returns the formula's timing interval; only meaningful for
// Until/DualUntil.
func (f Formula) Interval() Interval { return f.interval }

// IsTemporal reports whether f is an until or dual-until node.
func (f Formula) IsTemporal() bool { return f.op == Until || f.op == DualUntil }

func (f Formula) String() string {
	switch f.op {
	case True:
		return "TRUE"
	case False:
		return "FALSE"
	case AP:
		return f.ap
	case Not:
		return "!" + f.operands[0].String()
	case And:
		return "(" + joinFormulas(f.operands, " && ") + ")"
	case Or:
		return "(" + joinFormulas(f.operands, " || ") + ")"
	case Until:
		return fmt.Sprintf("(%s U_%s %s)", f.operands[0], f.interval, f.operands[1])
	case DualUntil:
		return fmt.Sprintf("(%s ~U_%s %s)", f.operands[0], f.interval, f.operands[1])
	default:
		return "?"
	}
}

func joinFormulas(fs []Formula, sep string) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = f.String()
	}
	return strings.Join(parts, sep)
}

// Key returns a canonical string representation of f, suitable for use as a
// map key or as a stable location identity (formulas are compared via Key
// after positive normal form).
func (f Formula) Key() string {
	switch f.op {
	case True:
		return "T"
	case False:
		return "F"
	case AP:
		return "A(" + f.ap + ")"
	case Not:
		return "!(" + f.operands[0].Key() + ")"
	case And:
		return "&(" + joinKeys(f.operands) + ")"
	case Or:
		return "|(" + joinKeys(f.operands) + ")"
	case Until:
		return fmt.Sprintf("U[%s](%s,%s)", f.interval, f.operands[0].Key(), f.operands[1].Key())
	case DualUntil:
		return fmt.Sprintf("R[%s](%s,%s)", f.interval, f.operands[0].Key(), f.operands[1].Key())
	default:
		return "?"
	}
}

func joinKeys(fs []Formula) string {
	keys := make([]string, len(fs))
	for i, f := range fs {
		keys[i] = f.Key()
	}
	return strings.Join(keys, ",")
}

// Equal reports whether two formulas are structurally equal after positive
// normal form.
func (f Formula) Equal(o Formula) bool {
	return f.ToPNF().Key() == o.ToPNF().Key()
}

// Alphabet returns the set of atomic propositions occurring in f, sorted.
func (f Formula) Alphabet() []string {
	set := map[string]struct{}{}
	f.collectAlphabet(set)
	out := make([]string, 0, len(set))
	for a := range set {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

func (f Formula) collectAlphabet(set map[string]struct{}) {
	switch f.op {
	case AP:
		set[f.ap] = struct{}{}
	case Not, Until, DualUntil, And, Or:
		for _, op := range f.operands {
			op.collectAlphabet(set)
		}
	}
}

// Closure returns the set of until and dual-until subformulas of f,
// deduplicated by Key.
func (f Formula) Closure() []Formula {
	set := map[string]Formula{}
	f.collectClosure(set)
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Formula, len(keys))
	for i, k := range keys {
		out[i] = set[k]
	}
	return out
}

func (f Formula) collectClosure(set map[string]Formula) {
	switch f.op {
	case Until, DualUntil:
		set[f.Key()] = f
		for _, op := range f.operands {
			op.collectClosure(set)
		}
	case Not, And, Or:
		for _, op := range f.operands {
			op.collectClosure(set)
		}
	}
}

// SubformulasOfType returns the until (if op == Until) or dual-until (if op
// == DualUntil) subformulas of f.
func (f Formula) SubformulasOfType(op Op) []Formula {
	out := []Formula{}
	for _, sub := range f.Closure() {
		if sub.op == op {
			out = append(out, sub)
		}
	}
	return out
}

// ContainsAP reports whether a is in f's alphabet.
func (f Formula) ContainsAP(a string) bool {
	return slices.Contains(f.Alphabet(), a)
}
