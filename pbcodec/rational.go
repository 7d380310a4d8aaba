// Package pbcodec implements a hand-rolled protocol-buffers wire codec for
// the timed-automaton and MTL-formula data that crosses the process
// boundary: no .proto file or protoc step, just
// google.golang.org/protobuf/encoding/protowire used directly, with
// defensive unknown-field skipping on every decode so the wire format can
// grow new fields without breaking older readers.
//
// Every message type below follows the same shape: Encode appends the
// message's own tagged fields to a buffer (the caller wraps it in a LEN
// field when embedding it in a parent message), and Decode consumes
// exactly the message's own payload bytes (already unwrapped by the
// caller) and returns the decoded value.
package pbcodec

import (
	"fmt"
	"math/big"

	"google.golang.org/protobuf/encoding/protowire"
)

const (
	fieldRationalNum = 1
	fieldRationalDen = 2
)

// EncodeRational appends r's wire encoding to buf.
func EncodeRational(buf []byte, r *big.Rat) []byte {
	buf = protowire.AppendTag(buf, fieldRationalNum, protowire.VarintType)
	buf = protowire.AppendVarint(buf, protowire.EncodeZigZag(r.Num().Int64()))
	buf = protowire.AppendTag(buf, fieldRationalDen, protowire.VarintType)
	buf = protowire.AppendVarint(buf, r.Denom().Uint64())
	return buf
}

// DecodeRational decodes a Rational message's payload.
func DecodeRational(buf []byte) (*big.Rat, error) {
	num, den := int64(0), uint64(1)
	for len(buf) > 0 {
		fieldNum, wireType, n := protowire.ConsumeTag(buf)
		if n < 0 {
			return nil, fmt.Errorf("pbcodec: invalid rational tag: %w", protowire.ParseError(n))
		}
		buf = buf[n:]
		switch fieldNum {
		case fieldRationalNum:
			v, n := protowire.ConsumeVarint(buf)
			if n < 0 {
				return nil, fmt.Errorf("pbcodec: invalid rational numerator: %w", protowire.ParseError(n))
			}
			num = protowire.DecodeZigZag(v)
			buf = buf[n:]
		case fieldRationalDen:
			v, n := protowire.ConsumeVarint(buf)
			if n < 0 {
				return nil, fmt.Errorf("pbcodec: invalid rational denominator: %w", protowire.ParseError(n))
			}
			den = v
			buf = buf[n:]
		default:
			n := protowire.ConsumeFieldValue(fieldNum, wireType, buf)
			if n < 0 {
				return nil, fmt.Errorf("pbcodec: invalid field in rational: %w", protowire.ParseError(n))
			}
			buf = buf[n:]
		}
	}
	if den == 0 {
		den = 1
	}
	return new(big.Rat).SetFrac(big.NewInt(num), new(big.Int).SetUint64(den)), nil
}

// appendMessage wraps a submessage's payload (built by build) in a
// length-delimited field.
func appendMessage(buf []byte, field protowire.Number, build func([]byte) []byte) []byte {
	buf = protowire.AppendTag(buf, field, protowire.BytesType)
	return protowire.AppendBytes(buf, build(nil))
}

// appendString appends a tagged string field.
func appendString(buf []byte, field protowire.Number, s string) []byte {
	buf = protowire.AppendTag(buf, field, protowire.BytesType)
	return protowire.AppendString(buf, s)
}

// consumeString reads a LEN-delimited string field's value (the tag must
// already have been consumed) and returns it plus the bytes consumed.
func consumeString(buf []byte) (string, int, error) {
	s, n := protowire.ConsumeString(buf)
	if n < 0 {
		return "", 0, fmt.Errorf("pbcodec: invalid string field: %w", protowire.ParseError(n))
	}
	return s, n, nil
}
