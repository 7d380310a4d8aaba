package pbcodec

import (
	"fmt"

	"github.com/morxa/mtlsyn/mtl"
	"google.golang.org/protobuf/encoding/protowire"
)

// MTLFormula field numbers form a oneof: exactly one of these is set on any
// given encoded formula, selecting the formula's operator.
const (
	fieldFormulaTrue      = 1
	fieldFormulaFalse     = 2
	fieldFormulaAP        = 3
	fieldFormulaNot       = 4
	fieldFormulaAnd       = 5
	fieldFormulaOr        = 6
	fieldFormulaUntil     = 7
	fieldFormulaDualUntil = 8
)

// binaryTemporal field numbers, used inside Until/DualUntil submessages.
const (
	fieldBinaryLHS      = 1
	fieldBinaryRHS      = 2
	fieldBinaryInterval = 3
)

// EncodeMTLFormula appends f's wire encoding to buf.
func EncodeMTLFormula(buf []byte, f mtl.Formula) []byte {
	switch f.Op() {
	case mtl.True:
		return appendMessage(buf, fieldFormulaTrue, func(b []byte) []byte { return b })
	case mtl.False:
		return appendMessage(buf, fieldFormulaFalse, func(b []byte) []byte { return b })
	case mtl.AP:
		return appendMessage(buf, fieldFormulaAP, func(b []byte) []byte { return encodeAtomicProposition(b, f.AP()) })
	case mtl.Not:
		return appendMessage(buf, fieldFormulaNot, func(b []byte) []byte { return EncodeMTLFormula(b, f.Operands()[0]) })
	case mtl.And:
		return appendMessage(buf, fieldFormulaAnd, func(b []byte) []byte { return encodeFormulaList(b, f.Operands()) })
	case mtl.Or:
		return appendMessage(buf, fieldFormulaOr, func(b []byte) []byte { return encodeFormulaList(b, f.Operands()) })
	case mtl.Until:
		return appendMessage(buf, fieldFormulaUntil, func(b []byte) []byte { return encodeBinaryTemporal(b, f) })
	case mtl.DualUntil:
		return appendMessage(buf, fieldFormulaDualUntil, func(b []byte) []byte { return encodeBinaryTemporal(b, f) })
	default:
		return buf
	}
}

func encodeAtomicProposition(buf []byte, name string) []byte {
	buf = protowire.AppendTag(buf, 1, protowire.BytesType)
	return protowire.AppendString(buf, name)
}

func encodeFormulaList(buf []byte, operands []mtl.Formula) []byte {
	for i, op := range operands {
		buf = appendMessage(buf, protowire.Number(i+1), func(b []byte) []byte { return EncodeMTLFormula(b, op) })
	}
	return buf
}

func encodeBinaryTemporal(buf []byte, f mtl.Formula) []byte {
	ops := f.Operands()
	buf = appendMessage(buf, fieldBinaryLHS, func(b []byte) []byte { return EncodeMTLFormula(b, ops[0]) })
	buf = appendMessage(buf, fieldBinaryRHS, func(b []byte) []byte { return EncodeMTLFormula(b, ops[1]) })
	buf = appendMessage(buf, fieldBinaryInterval, func(b []byte) []byte { return EncodeInterval(b, f.Interval()) })
	return buf
}

// DecodeMTLFormula decodes an MTLFormula message's payload.
func DecodeMTLFormula(buf []byte) (mtl.Formula, error) {
	for len(buf) > 0 {
		fieldNum, wireType, n := protowire.ConsumeTag(buf)
		if n < 0 {
			return mtl.Formula{}, fmt.Errorf("pbcodec: invalid formula tag: %w", protowire.ParseError(n))
		}
		buf = buf[n:]
		if wireType != protowire.BytesType {
			n := protowire.ConsumeFieldValue(fieldNum, wireType, buf)
			if n < 0 {
				return mtl.Formula{}, fmt.Errorf("pbcodec: invalid field in formula: %w", protowire.ParseError(n))
			}
			buf = buf[n:]
			continue
		}
		payload, n, err := consumeEmbedded(buf)
		if err != nil {
			return mtl.Formula{}, err
		}
		buf = buf[n:]
		switch fieldNum {
		case fieldFormulaTrue:
			return mtl.TrueF(), nil
		case fieldFormulaFalse:
			return mtl.FalseF(), nil
		case fieldFormulaAP:
			name, err := decodeAtomicProposition(payload)
			if err != nil {
				return mtl.Formula{}, err
			}
			return mtl.Atomic(name), nil
		case fieldFormulaNot:
			inner, err := DecodeMTLFormula(payload)
			if err != nil {
				return mtl.Formula{}, err
			}
			return mtl.NotF(inner), nil
		case fieldFormulaAnd:
			operands, err := decodeFormulaList(payload)
			if err != nil {
				return mtl.Formula{}, err
			}
			if len(operands) < 2 {
				return mtl.Formula{}, fmt.Errorf("pbcodec: AND formula needs at least two operands, got %d", len(operands))
			}
			return mtl.AndF(operands[0], operands[1:]...), nil
		case fieldFormulaOr:
			operands, err := decodeFormulaList(payload)
			if err != nil {
				return mtl.Formula{}, err
			}
			if len(operands) < 2 {
				return mtl.Formula{}, fmt.Errorf("pbcodec: OR formula needs at least two operands, got %d", len(operands))
			}
			return mtl.OrF(operands[0], operands[1:]...), nil
		case fieldFormulaUntil:
			lhs, rhs, interval, err := decodeBinaryTemporal(payload)
			if err != nil {
				return mtl.Formula{}, err
			}
			return mtl.UntilF(lhs, rhs, interval), nil
		case fieldFormulaDualUntil:
			lhs, rhs, interval, err := decodeBinaryTemporal(payload)
			if err != nil {
				return mtl.Formula{}, err
			}
			return mtl.DualUntilF(lhs, rhs, interval), nil
		}
		// Unknown oneof variant: already skipped via consumeEmbedded above.
	}
	return mtl.Formula{}, fmt.Errorf("pbcodec: empty MTLFormula message (no oneof variant set)")
}

func decodeAtomicProposition(buf []byte) (string, error) {
	for len(buf) > 0 {
		fieldNum, wireType, n := protowire.ConsumeTag(buf)
		if n < 0 {
			return "", fmt.Errorf("pbcodec: invalid atomic proposition tag: %w", protowire.ParseError(n))
		}
		buf = buf[n:]
		if fieldNum == 1 && wireType == protowire.BytesType {
			s, n := protowire.ConsumeString(buf)
			if n < 0 {
				return "", fmt.Errorf("pbcodec: invalid atomic proposition name: %w", protowire.ParseError(n))
			}
			return s, nil
		}
		n = protowire.ConsumeFieldValue(fieldNum, wireType, buf)
		if n < 0 {
			return "", fmt.Errorf("pbcodec: invalid field in atomic proposition: %w", protowire.ParseError(n))
		}
		buf = buf[n:]
	}
	return "", fmt.Errorf("pbcodec: atomic proposition missing name field")
}

func decodeFormulaList(buf []byte) ([]mtl.Formula, error) {
	var out []mtl.Formula
	for len(buf) > 0 {
		fieldNum, wireType, n := protowire.ConsumeTag(buf)
		if n < 0 {
			return nil, fmt.Errorf("pbcodec: invalid formula list tag: %w", protowire.ParseError(n))
		}
		buf = buf[n:]
		if wireType != protowire.BytesType {
			n := protowire.ConsumeFieldValue(fieldNum, wireType, buf)
			if n < 0 {
				return nil, fmt.Errorf("pbcodec: invalid field in formula list: %w", protowire.ParseError(n))
			}
			buf = buf[n:]
			continue
		}
		payload, n, err := consumeEmbedded(buf)
		if err != nil {
			return nil, err
		}
		buf = buf[n:]
		f, err := DecodeMTLFormula(payload)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func decodeBinaryTemporal(buf []byte) (mtl.Formula, mtl.Formula, mtl.Interval, error) {
	var lhs, rhs mtl.Formula
	var interval mtl.Interval
	haveLHS, haveRHS := false, false
	for len(buf) > 0 {
		fieldNum, wireType, n := protowire.ConsumeTag(buf)
		if n < 0 {
			return mtl.Formula{}, mtl.Formula{}, mtl.Interval{}, fmt.Errorf("pbcodec: invalid binary-temporal tag: %w", protowire.ParseError(n))
		}
		buf = buf[n:]
		if wireType != protowire.BytesType {
			n := protowire.ConsumeFieldValue(fieldNum, wireType, buf)
			if n < 0 {
				return mtl.Formula{}, mtl.Formula{}, mtl.Interval{}, fmt.Errorf("pbcodec: invalid field in binary temporal: %w", protowire.ParseError(n))
			}
			buf = buf[n:]
			continue
		}
		payload, n, err := consumeEmbedded(buf)
		if err != nil {
			return mtl.Formula{}, mtl.Formula{}, mtl.Interval{}, err
		}
		buf = buf[n:]
		switch fieldNum {
		case fieldBinaryLHS:
			if lhs, err = DecodeMTLFormula(payload); err != nil {
				return mtl.Formula{}, mtl.Formula{}, mtl.Interval{}, err
			}
			haveLHS = true
		case fieldBinaryRHS:
			if rhs, err = DecodeMTLFormula(payload); err != nil {
				return mtl.Formula{}, mtl.Formula{}, mtl.Interval{}, err
			}
			haveRHS = true
		case fieldBinaryInterval:
			if interval, err = DecodeInterval(payload); err != nil {
				return mtl.Formula{}, mtl.Formula{}, mtl.Interval{}, err
			}
		}
	}
	if !haveLHS || !haveRHS {
		return mtl.Formula{}, mtl.Formula{}, mtl.Interval{}, fmt.Errorf("pbcodec: binary temporal formula missing an operand")
	}
	return lhs, rhs, interval, nil
}
