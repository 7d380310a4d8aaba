// Package invariant checks predicates over a search tree: a depth-first
// walk evaluating predicates at every node, stopping at the first violation
// and reporting the sequence of nodes that led to it.
package invariant

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/morxa/mtlsyn/canonical"
	"github.com/morxa/mtlsyn/search"
)

// Predicate is a function evaluated on a search node; it returns true if the
// invariant holds there.
type Predicate func(n *search.Node) bool

// Eventually turns pred into a predicate that is only evaluated at leaf
// (unexpanded or terminal-state) nodes, and holds trivially everywhere else
// — the natural reading of "eventually" over a tree that is only fully
// determined at its leaves.
func Eventually(pred Predicate) Predicate {
	return func(n *search.Node) bool {
		if len(n.Children()) > 0 {
			return true
		}
		return pred(n)
	}
}

// ForAllWords lifts a per-word condition to a node-level Predicate: it holds
// iff cond holds for every canonical word the node carries.
func ForAllWords(cond func(canonical.Word) bool) Predicate {
	return func(n *search.Node) bool {
		for _, w := range n.Payload().Words {
			if !cond(w) {
				return false
			}
		}
		return true
	}
}

// Response is the result of checking a tree against a set of predicates.
type Response struct {
	Result   bool
	Sequence []*search.Node
	Failed   int // index of the violated predicate, -1 if Result is true
}

// Report formats a human-readable description of the response, listing the
// node sequence leading to the violation when one occurred.
func (r Response) Report() string {
	if r.Result {
		return "all invariants hold"
	}
	var buf bytes.Buffer
	wrt := tabwriter.NewWriter(&buf, 4, 4, 0, ' ', 0)
	out := fmt.Sprintf("invariant %d violated, path:\n", r.Failed)
	for _, n := range r.Sequence {
		fmt.Fprintf(wrt, "-> %v\n", n.Payload())
	}
	wrt.Flush()
	return out + buf.String()
}

// Checker walks a search tree depth-first, evaluating every predicate at
// every node, and stops at the first violation.
type Checker struct {
	predicates []Predicate
}

// NewChecker builds a Checker from the given predicates.
func NewChecker(predicates ...Predicate) *Checker {
	return &Checker{predicates: predicates}
}

// Check walks root and returns the first violation found, or a successful
// Response if none of the predicates are ever broken.
func (c *Checker) Check(root *search.Node) Response {
	if resp := c.checkNode(root, nil); resp != nil {
		return *resp
	}
	return Response{Result: true, Failed: -1}
}

func (c *Checker) checkNode(n *search.Node, sequence []*search.Node) *Response {
	sequence = append(sequence, n)
	for i, pred := range c.predicates {
		if !pred(n) {
			return &Response{Result: false, Sequence: sequence, Failed: i}
		}
	}
	for _, child := range n.Children() {
		if resp := c.checkNode(child, sequence); resp != nil {
			return resp
		}
	}
	return nil
}
