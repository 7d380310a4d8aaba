package pbcodec

import (
	"github.com/morxa/mtlsyn/mtl"
	"github.com/morxa/mtlsyn/ta"
)

// MarshalFormula encodes f as a standalone MTLFormula message.
func MarshalFormula(f mtl.Formula) []byte {
	return EncodeMTLFormula(nil, f)
}

// UnmarshalFormula decodes a standalone MTLFormula message.
func UnmarshalFormula(buf []byte) (mtl.Formula, error) {
	return DecodeMTLFormula(buf)
}

// MarshalTimedAutomaton encodes a as a standalone TimedAutomaton message.
func MarshalTimedAutomaton(a *ta.TimedAutomaton) []byte {
	return EncodeTimedAutomaton(nil, a)
}

// UnmarshalTimedAutomaton decodes a standalone TimedAutomaton message.
func UnmarshalTimedAutomaton(buf []byte) (*ta.TimedAutomaton, error) {
	return DecodeTimedAutomaton(buf)
}
