package mtl

// ToPNF rewrites f into positive normal form: negation pushed down so that
// it appears only directly above atomic propositions, and finally/globally
// expanded into their until/dual-until definitions.
func (f Formula) ToPNF() Formula {
	return pnf(f, false)
}

// pnf rewrites f, additionally negating it if negate is true.
func pnf(f Formula, negate bool) Formula {
	switch f.op {
	case True:
		if negate {
			return FalseF()
		}
		return TrueF()
	case False:
		if negate {
			return TrueF()
		}
		return FalseF()
	case AP:
		if negate {
			return NotF(f)
		}
		return f
	case Not:
		return pnf(f.operands[0], !negate)
	case And:
		if negate {
			return pnfOr(f.operands, true)
		}
		return pnfAnd(f.operands, false)
	case Or:
		if negate {
			return pnfAnd(f.operands, true)
		}
		return pnfOr(f.operands, false)
	case Until:
		if negate {
			// not (phi1 U_I phi2) == (not phi1) ~U_I (not phi2), the classical
			// until/release duality.
			return DualUntilF(pnf(f.operands[0], true), pnf(f.operands[1], true), f.interval)
		}
		return UntilF(pnf(f.operands[0], false), pnf(f.operands[1], false), f.interval)
	case DualUntil:
		if negate {
			return UntilF(pnf(f.operands[0], true), pnf(f.operands[1], true), f.interval)
		}
		return DualUntilF(pnf(f.operands[0], false), pnf(f.operands[1], false), f.interval)
	default:
		return f
	}
}

func pnfAnd(operands []Formula, negate bool) Formula {
	rewritten := make([]Formula, len(operands))
	for i, o := range operands {
		rewritten[i] = pnf(o, negate)
	}
	return Formula{op: And, operands: rewritten}
}

func pnfOr(operands []Formula, negate bool) Formula {
	rewritten := make([]Formula, len(operands))
	for i, o := range operands {
		rewritten[i] = pnf(o, negate)
	}
	return Formula{op: Or, operands: rewritten}
}

// IsPNF reports whether f is already in positive normal form, i.e.,
// negation occurs only directly above an atomic proposition.
func IsPNF(f Formula) bool {
	switch f.op {
	case True, False, AP:
		return true
	case Not:
		return f.operands[0].op == AP
	case And, Or:
		for _, o := range f.operands {
			if !IsPNF(o) {
				return false
			}
		}
		return true
	case Until, DualUntil:
		return IsPNF(f.operands[0]) && IsPNF(f.operands[1])
	default:
		return false
	}
}
