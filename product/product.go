// Package product implements the symbolic product step: taking a
// concrete candidate configuration and a symbol, compute every canonical
// AB word reachable by firing a matching TA transition together with an
// ATA minimal model.
package product

import (
	"github.com/morxa/mtlsyn/ata"
	"github.com/morxa/mtlsyn/canonical"
	"github.com/morxa/mtlsyn/ta"
)

// Candidate is a concrete (TA, ATA) configuration pair, typically produced
// by canonical.GetCandidate.
type Candidate struct {
	TA  ta.Configuration
	ATA ata.Configuration
}

// GetNextCanonicalWords returns the set (duplicates collapsed) of canonical
// words reached from candidate by firing symbol: for every TA transition
// whose guard is satisfied by candidate.TA and every ATA minimal model for
// symbol, the resulting TA and ATA successor configurations are combined
// into a canonical word.
func GetNextCanonicalWords(automaton *ta.TimedAutomaton, atm *ata.ATA, candidate Candidate, symbol string, k int) []canonical.Word {
	taSuccs := automaton.Successors(candidate.TA, symbol)
	ataSuccs := atm.Successors(candidate.ATA, symbol)
	if len(taSuccs) == 0 || len(ataSuccs) == 0 {
		return nil
	}
	seen := map[string]struct{}{}
	var words []canonical.Word
	for _, ts := range taSuccs {
		for _, as := range ataSuccs {
			w := canonical.GetCanonicalWord(ts.Config, as, k)
			key := w.Key()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			words = append(words, w)
		}
	}
	return words
}
