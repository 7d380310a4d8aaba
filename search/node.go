// Package search implements the priority-scheduled game-tree search engine:
// node expansion, bad/good/dead detection, monotonic domination pruning,
// and batch and incremental TOP/BOTTOM labeling.
package search

import (
	"fmt"
	"sync"

	"github.com/morxa/mtlsyn/canonical"
	"github.com/morxa/mtlsyn/heuristic"
	"github.com/morxa/mtlsyn/tree"
)

// State is a search node's exploration state.
type State int

const (
	StateUnknown State = iota
	StateGood
	StateBad
	StateDead
)

func (s State) String() string {
	switch s {
	case StateGood:
		return "GOOD"
	case StateBad:
		return "BAD"
	case StateDead:
		return "DEAD"
	default:
		return "UNKNOWN"
	}
}

// Label is a search node's game-theoretic verdict.
type Label int

const (
	LabelUnlabeled Label = iota
	LabelTop
	LabelBottom
	LabelCanceled
)

func (l Label) String() string {
	switch l {
	case LabelTop:
		return "TOP"
	case LabelBottom:
		return "BOTTOM"
	case LabelCanceled:
		return "CANCELED"
	default:
		return "UNLABELED"
	}
}

// IncomingAction is one (region-step increment, action) pair that reaches a
// node from its parent.
type IncomingAction struct {
	Delta  int
	Action string
}

// NodeData is the payload of a search tree node: the node's symbolic
// state and its concurrency-guarded lifecycle fields. Nodes are never
// moved once placed; the tree owns them, parent links are non-owning.
type NodeData struct {
	mu sync.Mutex

	Words    []canonical.Word
	Incoming []IncomingAction

	State       State
	Label       Label
	LabelReason string
	IsExpanded  bool

	node *tree.Tree[*NodeData]
}

// Node is a search tree node: a generic tree specialized to *NodeData
// payloads, backed by a generic owning-tree container.
type Node = tree.Tree[*NodeData]

// newNodeData builds a node payload for the given words and the actions
// that reached it.
func newNodeData(words []canonical.Word, incoming []IncomingAction) *NodeData {
	return &NodeData{Words: words, Incoming: incoming}
}

func sameNodeData(a, b *NodeData) bool { return a == b }

func newTree(data *NodeData) *Node {
	t := tree.New[*NodeData](data, sameNodeData)
	data.node = &t
	return &t
}

func addChild(parent *Node, data *NodeData) *Node {
	child := parent.AddChild(data)
	data.node = child
	return child
}

func (d *NodeData) snapshot() (State, Label, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.State, d.Label, d.IsExpanded
}

// IncomingDeltas implements heuristic.Node.
func (d *NodeData) IncomingDeltas() []int {
	out := make([]int, len(d.Incoming))
	for i, ia := range d.Incoming {
		out[i] = ia.Delta
	}
	return out
}

// IncomingActions implements heuristic.Node.
func (d *NodeData) IncomingActions() []string {
	out := make([]string, len(d.Incoming))
	for i, ia := range d.Incoming {
		out[i] = ia.Action
	}
	return out
}

// NumWords implements heuristic.Node.
func (d *NodeData) NumWords() int { return len(d.Words) }

// Parent implements heuristic.Node.
func (d *NodeData) Parent() heuristic.Node {
	if d.node == nil {
		return nil
	}
	parent := d.node.Parent()
	if parent == nil {
		return nil
	}
	return parent.Payload()
}

func (d *NodeData) String() string {
	return fmt.Sprintf("state=%s label=%s words=%d", d.State, d.Label, len(d.Words))
}
