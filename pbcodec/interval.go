package pbcodec

import (
	"fmt"
	"math/big"

	"github.com/morxa/mtlsyn/clock"
	"github.com/morxa/mtlsyn/mtl"
	"google.golang.org/protobuf/encoding/protowire"
)

const (
	fieldIntervalLowerBound = 1
	fieldIntervalLowerType  = 2
	fieldIntervalUpperBound = 3
	fieldIntervalUpperType  = 4
)

// EncodeInterval appends i's wire encoding to buf.
func EncodeInterval(buf []byte, i mtl.Interval) []byte {
	if i.LowerType != mtl.Infty {
		buf = appendMessage(buf, fieldIntervalLowerBound, func(b []byte) []byte { return EncodeRational(b, i.LowerBound) })
	}
	buf = protowire.AppendTag(buf, fieldIntervalLowerType, protowire.VarintType)
	buf = protowire.AppendVarint(buf, uint64(i.LowerType))
	if i.UpperType != mtl.Infty {
		buf = appendMessage(buf, fieldIntervalUpperBound, func(b []byte) []byte { return EncodeRational(b, i.UpperBound) })
	}
	buf = protowire.AppendTag(buf, fieldIntervalUpperType, protowire.VarintType)
	buf = protowire.AppendVarint(buf, uint64(i.UpperType))
	return buf
}

// DecodeInterval decodes an Interval message's payload.
func DecodeInterval(buf []byte) (mtl.Interval, error) {
	var lb, ub *big.Rat
	lt, ut := mtl.Infty, mtl.Infty
	for len(buf) > 0 {
		fieldNum, wireType, n := protowire.ConsumeTag(buf)
		if n < 0 {
			return mtl.Interval{}, fmt.Errorf("pbcodec: invalid interval tag: %w", protowire.ParseError(n))
		}
		buf = buf[n:]
		switch fieldNum {
		case fieldIntervalLowerBound:
			payload, n, err := consumeEmbedded(buf)
			if err != nil {
				return mtl.Interval{}, err
			}
			if lb, err = DecodeRational(payload); err != nil {
				return mtl.Interval{}, err
			}
			buf = buf[n:]
		case fieldIntervalUpperBound:
			payload, n, err := consumeEmbedded(buf)
			if err != nil {
				return mtl.Interval{}, err
			}
			if ub, err = DecodeRational(payload); err != nil {
				return mtl.Interval{}, err
			}
			buf = buf[n:]
		case fieldIntervalLowerType:
			v, n := protowire.ConsumeVarint(buf)
			if n < 0 {
				return mtl.Interval{}, fmt.Errorf("pbcodec: invalid interval lower type: %w", protowire.ParseError(n))
			}
			lt = mtl.BoundType(v)
			buf = buf[n:]
		case fieldIntervalUpperType:
			v, n := protowire.ConsumeVarint(buf)
			if n < 0 {
				return mtl.Interval{}, fmt.Errorf("pbcodec: invalid interval upper type: %w", protowire.ParseError(n))
			}
			ut = mtl.BoundType(v)
			buf = buf[n:]
		default:
			n := protowire.ConsumeFieldValue(fieldNum, wireType, buf)
			if n < 0 {
				return mtl.Interval{}, fmt.Errorf("pbcodec: invalid field in interval: %w", protowire.ParseError(n))
			}
			buf = buf[n:]
		}
	}
	return mtl.NewInterval(lb, lt, ub, ut), nil
}

const (
	fieldConstraintOp    = 1
	fieldConstraintBound = 2
)

// EncodeClockConstraint appends c's wire encoding to buf.
func EncodeClockConstraint(buf []byte, c clock.Constraint) []byte {
	buf = protowire.AppendTag(buf, fieldConstraintOp, protowire.VarintType)
	buf = protowire.AppendVarint(buf, uint64(c.Op))
	buf = appendMessage(buf, fieldConstraintBound, func(b []byte) []byte { return EncodeRational(b, c.Bound) })
	return buf
}

// DecodeClockConstraint decodes a ClockConstraint message's payload.
func DecodeClockConstraint(buf []byte) (clock.Constraint, error) {
	var op clock.Op
	var bound *big.Rat
	for len(buf) > 0 {
		fieldNum, wireType, n := protowire.ConsumeTag(buf)
		if n < 0 {
			return clock.Constraint{}, fmt.Errorf("pbcodec: invalid constraint tag: %w", protowire.ParseError(n))
		}
		buf = buf[n:]
		switch fieldNum {
		case fieldConstraintOp:
			v, n := protowire.ConsumeVarint(buf)
			if n < 0 {
				return clock.Constraint{}, fmt.Errorf("pbcodec: invalid constraint op: %w", protowire.ParseError(n))
			}
			op = clock.Op(v)
			buf = buf[n:]
		case fieldConstraintBound:
			payload, n, err := consumeEmbedded(buf)
			if err != nil {
				return clock.Constraint{}, err
			}
			if bound, err = DecodeRational(payload); err != nil {
				return clock.Constraint{}, err
			}
			buf = buf[n:]
		default:
			n := protowire.ConsumeFieldValue(fieldNum, wireType, buf)
			if n < 0 {
				return clock.Constraint{}, fmt.Errorf("pbcodec: invalid field in constraint: %w", protowire.ParseError(n))
			}
			buf = buf[n:]
		}
	}
	return clock.New(op, bound), nil
}

// consumeEmbedded reads a LEN-delimited field's payload (the tag must
// already have been consumed) and returns the payload plus the number of
// bytes consumed from buf for the length prefix and payload together.
func consumeEmbedded(buf []byte) ([]byte, int, error) {
	payload, n := protowire.ConsumeBytes(buf)
	if n < 0 {
		return nil, 0, fmt.Errorf("pbcodec: invalid embedded message: %w", protowire.ParseError(n))
	}
	return payload, n, nil
}
