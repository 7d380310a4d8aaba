// Package heuristic implements search-order cost functions: each maps a
// search node to a signed cost consumed by the priority pool (lower cost
// dequeues first).
package heuristic

import "sync/atomic"

// Node is the minimal view of a search tree node a heuristic needs,
// satisfied by *search.Node without heuristic importing search (which
// would create an import cycle, since search consumes heuristics).
type Node interface {
	// IncomingDeltas returns the region-step increments of every
	// (delta, action) pair that reaches this node from its parent.
	IncomingDeltas() []int
	// IncomingActions returns the action half of every incoming
	// (delta, action) pair that reaches this node from its parent.
	IncomingActions() []string
	// NumWords returns the number of canonical words this node holds.
	NumWords() int
	// Parent returns the node's parent, or nil at the root.
	Parent() Node
}

// Heuristic assigns a cost to a node; the search engine enqueues the node
// with the cost as its pool priority (lower runs sooner), so heuristics that want shallow
// nodes explored first should return increasing costs and heuristics that
// want deep nodes explored first should return decreasing costs.
type Heuristic func(n Node) int

// BFS returns a monotonically increasing counter on every call, biasing
// the pool toward breadth-first exploration.
func BFS() Heuristic {
	var counter int64
	return func(Node) int {
		return int(atomic.AddInt64(&counter, 1))
	}
}

// DFS returns a monotonically decreasing counter on every call, biasing
// the pool toward depth-first exploration.
func DFS() Heuristic {
	var counter int64
	return func(Node) int {
		return int(atomic.AddInt64(&counter, -1))
	}
}

// Time sums, over the path from the root to n, the smallest region-step
// increment among each ancestor's incoming actions.
func Time() Heuristic {
	return func(n Node) int {
		total := 0
		for cur := n; cur != nil; cur = cur.Parent() {
			deltas := cur.IncomingDeltas()
			if len(deltas) == 0 {
				continue
			}
			min := deltas[0]
			for _, d := range deltas[1:] {
				if d < min {
					min = d
				}
			}
			total += min
		}
		return total
	}
}

// PreferEnvironmentAction returns 0 if n was reached by an environment
// action (biasing the pool to explore it first) and 1 otherwise.
func PreferEnvironmentAction(environmentActions map[string]bool) Heuristic {
	return func(n Node) int {
		for _, a := range n.IncomingActions() {
			if environmentActions[a] {
				return 0
			}
		}
		return 1
	}
}

// NumCanonicalWords returns the number of canonical words held by n.
func NumCanonicalWords() Heuristic {
	return func(n Node) int { return n.NumWords() }
}

// Weighted pairs a heuristic with its contribution weight in a Composite.
type Weighted struct {
	Weight    int
	Heuristic Heuristic
}

// Composite returns the weighted sum of the given sub-heuristics.
func Composite(terms ...Weighted) Heuristic {
	return func(n Node) int {
		total := 0
		for _, t := range terms {
			total += t.Weight * t.Heuristic(n)
		}
		return total
	}
}
