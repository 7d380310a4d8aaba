package canonical

import (
	"math/big"

	"github.com/morxa/mtlsyn/ata"
	"github.com/morxa/mtlsyn/ta"
)

// GetCandidate picks concrete clock values realizing w: group i (0-based)
// gets fractional part (i+1)/(|groups|+1) if its region is an open
// interval, or 0 if it is an integer region; the integer part is always
// floor(regionIndex/2). The TA location and ATA locations
// are taken directly from the region states; when w contains more than
// one TA location (which should not happen for a well-formed word), the
// last one encountered is used.
func GetCandidate(w Word) (ta.Configuration, ata.Configuration) {
	taCfg := ta.Configuration{Clocks: map[string]*big.Rat{}}
	var ataStates []ata.State

	denom := int64(len(w) + 1)
	for i, g := range w {
		intPart := big.NewRat(int64(g.Index.IntegerPart()), 1)
		var frac *big.Rat
		if g.Index.IsInteger() {
			frac = big.NewRat(0, 1)
		} else {
			frac = big.NewRat(int64(i+1), denom)
		}
		v := new(big.Rat).Add(intPart, frac)
		for _, s := range g.States {
			if s.IsTA {
				taCfg.Location = s.TALoc
				taCfg.Clocks[s.Clock] = v
			} else {
				ataStates = append(ataStates, ata.State{Loc: s.ATALoc, Value: v})
			}
		}
	}
	return taCfg, ata.NewConfiguration(ataStates...)
}
