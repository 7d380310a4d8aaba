package ata

import (
	"fmt"
	"strings"

	"github.com/morxa/mtlsyn/clock"
)

// FOp tags the kind of an ATA transition formula node: a
// positive boolean combination of location atoms, clock constraints, and a
// single-clock reset wrapper.
type FOp int

const (
	FTrue FOp = iota
	FFalse
	FLoc
	FConstraint
	FReset
	FAnd
	FOr
)

// Formula is an ATA transition formula: TRUE | FALSE | loc(l) | constraint
// | RESET(f) | f1 AND f2 | f1 OR f2. Resets carry no clock name because the
// ATA operates over a single implicit clock.
type Formula struct {
	op         FOp
	loc        Location
	constraint clock.Constraint
	operands   []Formula
}

// TRUE returns the formula that is satisfied by every configuration.
func TRUE() Formula { return Formula{op: FTrue} }

// FALSE returns the formula that is satisfied by no configuration.
func FALSE() Formula { return Formula{op: FFalse} }

// Loc returns the atom "the configuration contains (l, v)" for the current
// clock valuation v, unresettable.
func Loc(l Location) Formula { return Formula{op: FLoc, loc: l} }

// ConstraintF returns the atom "the current clock valuation satisfies c".
func ConstraintF(c clock.Constraint) Formula { return Formula{op: FConstraint, constraint: c} }

// Reset wraps f so that any Loc atom beneath it is paired with clock value 0
// instead of the ambient valuation.
func Reset(f Formula) Formula { return Formula{op: FReset, operands: []Formula{f}} }

// And returns the conjunction of the given formulas.
func And(f1 Formula, rest ...Formula) Formula {
	return Formula{op: FAnd, operands: append([]Formula{f1}, rest...)}
}

// Or returns the disjunction of the given formulas.
func Or(f1 Formula, rest ...Formula) Formula {
	return Formula{op: FOr, operands: append([]Formula{f1}, rest...)}
}

func (f Formula) Op() FOp                   { return f.op }
func (f Formula) Location() Location        { return f.loc }
func (f Formula) Constraint() clock.Constraint { return f.constraint }
func (f Formula) Operands() []Formula       { return f.operands }

func (f Formula) String() string {
	switch f.op {
	case FTrue:
		return "TRUE"
	case FFalse:
		return "FALSE"
	case FLoc:
		return f.loc.String()
	case FConstraint:
		return f.constraint.String()
	case FReset:
		return "RESET(" + f.operands[0].String() + ")"
	case FAnd:
		return "(" + joinF(f.operands, " && ") + ")"
	case FOr:
		return "(" + joinF(f.operands, " || ") + ")"
	default:
		return "?"
	}
}

func joinF(fs []Formula, sep string) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = f.String()
	}
	return strings.Join(parts, sep)
}

// Key returns a canonical string identity for f, used to deduplicate
// minimal models.
func (f Formula) Key() string {
	switch f.op {
	case FTrue:
		return "T"
	case FFalse:
		return "F"
	case FLoc:
		return "L(" + f.loc.Key() + ")"
	case FConstraint:
		return "C(" + f.constraint.Key() + ")"
	case FReset:
		return "RST(" + f.operands[0].Key() + ")"
	case FAnd:
		return "&(" + joinKeysF(f.operands) + ")"
	case FOr:
		return "|(" + joinKeysF(f.operands) + ")"
	default:
		return "?"
	}
}

func joinKeysF(fs []Formula) string {
	keys := make([]string, len(fs))
	for i, f := range fs {
		keys[i] = f.Key()
	}
	return strings.Join(keys, ",")
}

// Atom is a single conjunct of a minimal model: either a location atom
// (optionally reset) or a clock constraint.
type Atom struct {
	IsLoc bool
	Loc   Location
	Reset bool
	Con   clock.Constraint
}

func (a Atom) String() string {
	if a.IsLoc {
		if a.Reset {
			return "RESET(" + a.Loc.String() + ")"
		}
		return a.Loc.String()
	}
	return a.Con.String()
}

func (a Atom) Key() string {
	if a.IsLoc {
		if a.Reset {
			return "RST:" + a.Loc.Key()
		}
		return "L:" + a.Loc.Key()
	}
	return "C:" + a.Con.Key()
}

// Model is a minimal model of a transition formula: a conjunction of atoms,
// every one of which must be satisfied by the successor configuration.
type Model []Atom

func (m Model) Key() string {
	keys := make([]string, len(m))
	for i, a := range m {
		keys[i] = a.Key()
	}
	return fmt.Sprintf("{%s}", strings.Join(keys, ","))
}

// GetMinimalModels computes the minimal models of f: the minimal sets of
// atoms whose conjunction implies f. Minimality is enforced at the And/Or
// combination points: Or takes the union of its operands' model sets and
// And takes the pairwise union of one model from each operand; both then
// prune any resulting set that is a strict superset of another.
func GetMinimalModels(f Formula) []Model {
	switch f.op {
	case FTrue:
		return []Model{{}}
	case FFalse:
		return nil
	case FLoc:
		return []Model{{{IsLoc: true, Loc: f.loc}}}
	case FConstraint:
		return []Model{{{Con: f.constraint}}}
	case FReset:
		inner := GetMinimalModels(f.operands[0])
		out := make([]Model, len(inner))
		for i, m := range inner {
			out[i] = resetModel(m)
		}
		return out
	case FOr:
		var out []Model
		for _, o := range f.operands {
			out = append(out, GetMinimalModels(o)...)
		}
		return minimize(out)
	case FAnd:
		models := []Model{{}}
		for _, o := range f.operands {
			models = crossUnion(models, GetMinimalModels(o))
		}
		return minimize(models)
	default:
		return nil
	}
}

func resetModel(m Model) Model {
	out := make(Model, len(m))
	for i, a := range m {
		if a.IsLoc {
			a.Reset = true
		}
		out[i] = a
	}
	return out
}

func crossUnion(left, right []Model) []Model {
	if len(left) == 0 || len(right) == 0 {
		return nil
	}
	out := make([]Model, 0, len(left)*len(right))
	for _, l := range left {
		for _, r := range right {
			out = append(out, union(l, r))
		}
	}
	return out
}

func union(a, b Model) Model {
	seen := map[string]Atom{}
	for _, x := range a {
		seen[x.Key()] = x
	}
	for _, x := range b {
		seen[x.Key()] = x
	}
	out := make(Model, 0, len(seen))
	for _, x := range seen {
		out = append(out, x)
	}
	return out
}

// minimize removes every model that is a (non-strict) superset of another
// distinct model in the set, leaving only the ⊆-minimal ones.
func minimize(models []Model) []Model {
	isSubset := func(a, b Model) bool {
		bset := map[string]struct{}{}
		for _, x := range b {
			bset[x.Key()] = struct{}{}
		}
		for _, x := range a {
			if _, ok := bset[x.Key()]; !ok {
				return false
			}
		}
		return true
	}
	var out []Model
	for i, m := range models {
		dominated := false
		for j, other := range models {
			if i == j || len(other) >= len(m) {
				continue
			}
			if isSubset(other, m) {
				dominated = true
				break
			}
		}
		if !dominated {
			out = append(out, m)
		}
	}
	return dedupModels(out)
}

func dedupModels(models []Model) []Model {
	seen := map[string]struct{}{}
	var out []Model
	for _, m := range models {
		k := m.Key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, m)
	}
	return out
}
