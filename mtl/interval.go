package mtl

import (
	"fmt"
	"math/big"
)

// BoundType tags how a TimeInterval endpoint is to be interpreted.
type BoundType int

const (
	// Weak denotes a closed (non-strict, >= or <=) endpoint.
	Weak BoundType = iota
	// Strict denotes an open (strict, > or <) endpoint.
	Strict
	// Infty denotes an absent (unbounded) endpoint.
	Infty
)

func (b BoundType) String() string {
	switch b {
	case Weak:
		return "weak"
	case Strict:
		return "strict"
	case Infty:
		return "infty"
	default:
		return "?"
	}
}

// Interval is a timed-interval bound [lower, upper] (possibly open or
// unbounded) used by until/dual-until/finally/globally operators.
type Interval struct {
	LowerBound *big.Rat
	LowerType  BoundType
	UpperBound *big.Rat
	UpperType  BoundType
}

// NewInterval creates a new timed interval. bound arguments are ignored when
// the matching type is Infty.
func NewInterval(lower *big.Rat, lowerType BoundType, upper *big.Rat, upperType BoundType) Interval {
	return Interval{LowerBound: lower, LowerType: lowerType, UpperBound: upper, UpperType: upperType}
}

// Unbounded returns the interval [0, infinity).
func Unbounded() Interval {
	return NewInterval(big.NewRat(0, 1), Weak, nil, Infty)
}

// Contains reports whether the given non-negative time distance lies within
// the interval.
func (i Interval) Contains(d *big.Rat) bool {
	if i.LowerType != Infty {
		cmp := d.Cmp(i.LowerBound)
		if i.LowerType == Weak && cmp < 0 {
			return false
		}
		if i.LowerType == Strict && cmp <= 0 {
			return false
		}
	}
	if i.UpperType != Infty {
		cmp := d.Cmp(i.UpperBound)
		if i.UpperType == Weak && cmp > 0 {
			return false
		}
		if i.UpperType == Strict && cmp >= 0 {
			return false
		}
	}
	return true
}

func (i Interval) String() string {
	lo := "0"
	loBracket := "["
	if i.LowerType != Infty {
		lo = i.LowerBound.RatString()
		if i.LowerType == Strict {
			loBracket = "("
		}
	}
	hi := "infty"
	hiBracket := ")"
	if i.UpperType != Infty {
		hi = i.UpperBound.RatString()
		if i.UpperType == Weak {
			hiBracket = "]"
		}
	}
	return fmt.Sprintf("%s%s,%s%s", loBracket, lo, hi, hiBracket)
}

// Equal reports whether two intervals denote the same set of time distances.
func (i Interval) Equal(o Interval) bool {
	if i.LowerType != o.LowerType || i.UpperType != o.UpperType {
		return false
	}
	if i.LowerType != Infty && i.LowerBound.Cmp(o.LowerBound) != 0 {
		return false
	}
	if i.UpperType != Infty && i.UpperBound.Cmp(o.UpperBound) != 0 {
		return false
	}
	return true
}
