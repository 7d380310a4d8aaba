// Package clock implements clock constraints over rational-valued time
// points: a comparison operator paired with a bound, satisfied by comparing
// a clock valuation against that bound.
package clock

import (
	"fmt"
	"math/big"
)

// Op is a clock constraint comparison operator.
type Op int

const (
	LessThan Op = iota
	LessOrEqual
	Equal
	NotEqual
	GreaterOrEqual
	GreaterThan
)

func (op Op) String() string {
	switch op {
	case LessThan:
		return "<"
	case LessOrEqual:
		return "<="
	case Equal:
		return "=="
	case NotEqual:
		return "!="
	case GreaterOrEqual:
		return ">="
	case GreaterThan:
		return ">"
	default:
		return "?"
	}
}

// Flip returns the operator obtained by swapping the two sides of the
// comparison, e.g., Flip(LessThan) = GreaterThan.
func (op Op) Flip() Op {
	switch op {
	case LessThan:
		return GreaterThan
	case LessOrEqual:
		return GreaterOrEqual
	case GreaterOrEqual:
		return LessOrEqual
	case GreaterThan:
		return LessThan
	default:
		return op
	}
}

// Negate returns the operator satisfying exactly the complementary set of
// values, e.g., Negate(LessThan) = GreaterOrEqual.
func (op Op) Negate() Op {
	switch op {
	case LessThan:
		return GreaterOrEqual
	case LessOrEqual:
		return GreaterThan
	case GreaterOrEqual:
		return LessThan
	case GreaterThan:
		return LessOrEqual
	case Equal:
		return NotEqual
	case NotEqual:
		return Equal
	default:
		return op
	}
}

// Constraint is an atomic clock constraint (op, c): satisfied by a clock
// valuation v iff "v op c" holds.
type Constraint struct {
	Op    Op
	Bound *big.Rat
}

// New creates a new clock constraint.
func New(op Op, bound *big.Rat) Constraint {
	return Constraint{Op: op, Bound: bound}
}

// Satisfied reports whether the clock valuation v satisfies the constraint.
func (c Constraint) Satisfied(v *big.Rat) bool {
	cmp := v.Cmp(c.Bound)
	switch c.Op {
	case LessThan:
		return cmp < 0
	case LessOrEqual:
		return cmp <= 0
	case Equal:
		return cmp == 0
	case NotEqual:
		return cmp != 0
	case GreaterOrEqual:
		return cmp >= 0
	case GreaterThan:
		return cmp > 0
	default:
		return false
	}
}

// Negated returns a constraint satisfied by exactly the valuations that do
// not satisfy c.
func (c Constraint) Negated() Constraint {
	return Constraint{Op: c.Op.Negate(), Bound: c.Bound}
}

func (c Constraint) String() string {
	return fmt.Sprintf("x %s %s", c.Op, c.Bound.RatString())
}

// Key returns a canonical string usable to compare constraints for equality
// or to use them as map keys.
func (c Constraint) Key() string {
	return fmt.Sprintf("%d:%s", c.Op, c.Bound.RatString())
}
