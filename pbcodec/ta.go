package pbcodec

import (
	"fmt"

	"github.com/morxa/mtlsyn/clock"
	"github.com/morxa/mtlsyn/ta"
	"google.golang.org/protobuf/encoding/protowire"
)

const (
	fieldTransitionSource = 1
	fieldTransitionAction = 2
	fieldTransitionTarget = 3
	fieldTransitionGuard  = 4
	fieldTransitionReset  = 5
)

const (
	fieldGuardClock      = 1
	fieldGuardConstraint = 2
)

// EncodeTransition appends t's wire encoding to buf.
func EncodeTransition(buf []byte, t *ta.Transition) []byte {
	buf = appendString(buf, fieldTransitionSource, string(t.Source))
	buf = appendString(buf, fieldTransitionAction, t.Action)
	buf = appendString(buf, fieldTransitionTarget, string(t.Target))
	for clockName, cons := range t.Guard {
		for _, c := range cons {
			buf = appendMessage(buf, fieldTransitionGuard, func(b []byte) []byte {
				b = appendString(b, fieldGuardClock, clockName)
				return appendMessage(b, fieldGuardConstraint, func(b []byte) []byte { return EncodeClockConstraint(b, c) })
			})
		}
	}
	for clockName, reset := range t.Resets {
		if reset {
			buf = appendString(buf, fieldTransitionReset, clockName)
		}
	}
	return buf
}

// DecodeTransition decodes a Transition message's payload.
func DecodeTransition(buf []byte) (*ta.Transition, error) {
	var source, action, target string
	t := (*ta.Transition)(nil)
	for len(buf) > 0 {
		fieldNum, wireType, n := protowire.ConsumeTag(buf)
		if n < 0 {
			return nil, fmt.Errorf("pbcodec: invalid transition tag: %w", protowire.ParseError(n))
		}
		buf = buf[n:]
		switch fieldNum {
		case fieldTransitionSource:
			s, n, err := consumeString(buf)
			if err != nil {
				return nil, err
			}
			source, buf = s, buf[n:]
		case fieldTransitionAction:
			s, n, err := consumeString(buf)
			if err != nil {
				return nil, err
			}
			action, buf = s, buf[n:]
		case fieldTransitionTarget:
			s, n, err := consumeString(buf)
			if err != nil {
				return nil, err
			}
			target, buf = s, buf[n:]
			t = ta.NewTransition(ta.Location(source), action, ta.Location(target))
		case fieldTransitionGuard:
			payload, n, err := consumeEmbedded(buf)
			if err != nil {
				return nil, err
			}
			buf = buf[n:]
			clockName, con, err := decodeGuardEntry(payload)
			if err != nil {
				return nil, err
			}
			if t == nil {
				return nil, fmt.Errorf("pbcodec: transition guard field before source/action/target")
			}
			t.AddGuard(clockName, con)
		case fieldTransitionReset:
			s, n, err := consumeString(buf)
			if err != nil {
				return nil, err
			}
			buf = buf[n:]
			if t == nil {
				return nil, fmt.Errorf("pbcodec: transition reset field before source/action/target")
			}
			t.AddReset(s)
		default:
			n := protowire.ConsumeFieldValue(fieldNum, wireType, buf)
			if n < 0 {
				return nil, fmt.Errorf("pbcodec: invalid field in transition: %w", protowire.ParseError(n))
			}
			buf = buf[n:]
		}
	}
	if t == nil {
		return nil, fmt.Errorf("pbcodec: transition missing source/action/target")
	}
	return t, nil
}

func decodeGuardEntry(buf []byte) (string, clock.Constraint, error) {
	var clockName string
	var con clock.Constraint
	for len(buf) > 0 {
		fieldNum, wireType, n := protowire.ConsumeTag(buf)
		if n < 0 {
			return "", clock.Constraint{}, fmt.Errorf("pbcodec: invalid guard entry tag: %w", protowire.ParseError(n))
		}
		buf = buf[n:]
		switch fieldNum {
		case fieldGuardClock:
			s, n, err := consumeString(buf)
			if err != nil {
				return "", clock.Constraint{}, err
			}
			clockName, buf = s, buf[n:]
		case fieldGuardConstraint:
			payload, n, err := consumeEmbedded(buf)
			if err != nil {
				return "", clock.Constraint{}, err
			}
			if con, err = DecodeClockConstraint(payload); err != nil {
				return "", clock.Constraint{}, err
			}
			buf = buf[n:]
		default:
			n := protowire.ConsumeFieldValue(fieldNum, wireType, buf)
			if n < 0 {
				return "", clock.Constraint{}, fmt.Errorf("pbcodec: invalid field in guard entry: %w", protowire.ParseError(n))
			}
			buf = buf[n:]
		}
	}
	return clockName, con, nil
}

const (
	fieldAutomatonLocation   = 1
	fieldAutomatonAlphabet   = 2
	fieldAutomatonClock      = 3
	fieldAutomatonInitial    = 4
	fieldAutomatonAccepting  = 5
	fieldAutomatonTransition = 6
)

// EncodeTimedAutomaton appends a's wire encoding to buf.
func EncodeTimedAutomaton(buf []byte, a *ta.TimedAutomaton) []byte {
	for _, l := range a.Locations {
		buf = appendString(buf, fieldAutomatonLocation, string(l))
	}
	for _, s := range a.Alphabet {
		buf = appendString(buf, fieldAutomatonAlphabet, s)
	}
	for _, c := range a.Clocks {
		buf = appendString(buf, fieldAutomatonClock, c)
	}
	buf = appendString(buf, fieldAutomatonInitial, string(a.Initial))
	for l, accepting := range a.Accepting {
		if accepting {
			buf = appendString(buf, fieldAutomatonAccepting, string(l))
		}
	}
	for _, t := range a.Transitions() {
		buf = appendMessage(buf, fieldAutomatonTransition, func(b []byte) []byte { return EncodeTransition(b, t) })
	}
	return buf
}

// DecodeTimedAutomaton decodes a TimedAutomaton message's payload.
func DecodeTimedAutomaton(buf []byte) (*ta.TimedAutomaton, error) {
	var locations []ta.Location
	var alphabet, clocks []string
	var initial ta.Location
	var accepting []ta.Location
	var transitions []*ta.Transition
	for len(buf) > 0 {
		fieldNum, wireType, n := protowire.ConsumeTag(buf)
		if n < 0 {
			return nil, fmt.Errorf("pbcodec: invalid automaton tag: %w", protowire.ParseError(n))
		}
		buf = buf[n:]
		switch fieldNum {
		case fieldAutomatonLocation:
			s, n, err := consumeString(buf)
			if err != nil {
				return nil, err
			}
			locations, buf = append(locations, ta.Location(s)), buf[n:]
		case fieldAutomatonAlphabet:
			s, n, err := consumeString(buf)
			if err != nil {
				return nil, err
			}
			alphabet, buf = append(alphabet, s), buf[n:]
		case fieldAutomatonClock:
			s, n, err := consumeString(buf)
			if err != nil {
				return nil, err
			}
			clocks, buf = append(clocks, s), buf[n:]
		case fieldAutomatonInitial:
			s, n, err := consumeString(buf)
			if err != nil {
				return nil, err
			}
			initial, buf = ta.Location(s), buf[n:]
		case fieldAutomatonAccepting:
			s, n, err := consumeString(buf)
			if err != nil {
				return nil, err
			}
			accepting, buf = append(accepting, ta.Location(s)), buf[n:]
		case fieldAutomatonTransition:
			payload, n, err := consumeEmbedded(buf)
			if err != nil {
				return nil, err
			}
			buf = buf[n:]
			t, err := DecodeTransition(payload)
			if err != nil {
				return nil, err
			}
			transitions = append(transitions, t)
		default:
			n := protowire.ConsumeFieldValue(fieldNum, wireType, buf)
			if n < 0 {
				return nil, fmt.Errorf("pbcodec: invalid field in automaton: %w", protowire.ParseError(n))
			}
			buf = buf[n:]
		}
	}
	a := ta.New(locations, alphabet, clocks, initial)
	for _, l := range accepting {
		a.SetAccepting(l, true)
	}
	for _, t := range transitions {
		a.AddTransition(t)
	}
	return a, nil
}
