// Package region implements the Alur-Dill region abstraction used to make
// the infinite space of clock valuations finite for a fixed maximal
// constant K.
package region

import "math/big"

// Index is a region index: for maximal constant K, valid indices range over
// 0..2K+1, where even indices are integer regions (fractional part 0) and
// odd indices are open regions strictly between two integers; 2K+1 is the
// saturated "beyond K" class.
type Index int

// Of computes the region index of value v for maximal constant K:
// 2*floor(v) if v is an integer and v <= K; 2*floor(v)+1 if v has a
// fractional part and v < K+1; otherwise the saturated class 2K+1.
func Of(v *big.Rat, k int) Index {
	maxIndex := Index(2*k + 1)
	kPlusOne := big.NewRat(int64(k+1), 1)
	if v.Cmp(kPlusOne) >= 0 {
		return maxIndex
	}
	intPart := new(big.Int).Div(v.Num(), v.Denom())
	isInteger := v.IsInt()
	idx := Index(2 * intPart.Int64())
	if !isInteger {
		idx++
	}
	return idx
}

// IsInteger reports whether idx denotes an integer (fractional part 0)
// region.
func (idx Index) IsInteger() bool { return idx%2 == 0 }

// IsSaturated reports whether idx is the beyond-K class for maximal
// constant k.
func (idx Index) IsSaturated(k int) bool { return idx == Index(2*k+1) }

// IntegerPart returns floor(v) for a value with this region index, i.e.
// idx/2.
func (idx Index) IntegerPart() int { return int(idx) / 2 }

// Successor is one step of the time-successor relation on a single region
// index: Delta is the step's symbolic weight (used by search heuristics to
// order results, not a concrete time distance) and Next is the resulting
// region index.
type Successor struct {
	Delta int
	Next  Index
}

// TimeSuccessors returns the (possibly empty, in saturation) sequence of
// successor steps for idx under maximal constant k: first exhausting the
// open interval above idx's integer part (odd-indexed increments), then the
// move into the next integer region, stopping once 2k+1 is reached.
func TimeSuccessors(idx Index, k int) []Successor {
	max := Index(2*k + 1)
	if idx >= max {
		return nil
	}
	var out []Successor
	delta := 1
	for cur := idx; cur < max; cur++ {
		out = append(out, Successor{Delta: delta, Next: cur + 1})
		delta++
	}
	return out
}
