// Package ata implements Alternating Timed Automata over a single implicit
// clock: positive boolean combination formulas with clock constraints and
// resets, and minimal-model based configuration semantics.
package ata

import "github.com/morxa/mtlsyn/mtl"

// Location identifies an ATA location. ATA locations are themselves MTL
// subformulas; the distinguished initial location and the sink location
// are represented as pseudo-atomic-propositions.
type Location struct {
	formula mtl.Formula
}

// NewLocation wraps an MTL (sub)formula as an ATA location.
func NewLocation(f mtl.Formula) Location { return Location{formula: f} }

// Formula returns the MTL subformula this location represents.
func (l Location) Formula() mtl.Formula { return l.formula }

// Key returns a canonical, comparable identity for the location.
func (l Location) Key() string { return l.formula.Key() }

func (l Location) String() string { return l.formula.String() }

// InitialLocationName is the name of the pseudo-atomic-proposition used to
// identify the ATA's distinguished initial location ℓ₀.
const InitialLocationName = "ℓ₀"

// SinkLocationName is the name of the pseudo-atomic-proposition used to
// identify the ATA's absorbing, non-accepting sink location.
const SinkLocationName = "sink"

// InitialLocation returns the distinguished initial location ℓ₀.
func InitialLocation() Location { return NewLocation(mtl.Atomic(InitialLocationName)) }

// SinkLocation returns the absorbing sink location.
func SinkLocation() Location { return NewLocation(mtl.Atomic(SinkLocationName)) }

// IsSink reports whether l is the sink location.
func (l Location) IsSink() bool {
	return l.formula.Op() == mtl.AP && l.formula.AP() == SinkLocationName
}
