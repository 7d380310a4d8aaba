package search

import (
	"fmt"
	"log"

	"github.com/morxa/mtlsyn/ata"
	"github.com/morxa/mtlsyn/canonical"
	"github.com/morxa/mtlsyn/heuristic"
	"github.com/morxa/mtlsyn/pool"
	"github.com/morxa/mtlsyn/product"
	"github.com/morxa/mtlsyn/ta"
)

// Config bundles everything the search engine needs to expand and label a
// game tree over a plant TA and an undesired-behavior ATA.
type Config struct {
	Automaton           *ta.TimedAutomaton
	Automata            *ata.ATA
	K                   int
	ControllerActions   map[string]bool
	EnvironmentActions  map[string]bool
	Heuristic           heuristic.Heuristic
	Pool                *pool.Pool
	Incremental         bool
	TerminateEarly      bool
	// Verbose, when set, logs one line per node expansion, enqueue, and
	// terminal-state detection via the standard log package.
	Verbose bool
}

// Engine owns a search tree rooted at the initial canonical word and drives
// its expansion through a priority pool.
type Engine struct {
	cfg  Config
	root *Node
}

// New creates an engine; call Run to build and label the tree.
func New(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Root returns the search tree's root node. Valid only after Run.
func (e *Engine) Root() *Node { return e.root }

// Run builds the initial canonical word, expands the tree to completion via
// the configured pool, and (unless incremental labeling already decided
// it) performs a final batch labeling pass.
func (e *Engine) Run() {
	initial := canonical.GetCanonicalWord(e.cfg.Automaton.InitialConfiguration(), e.cfg.Automata.InitialConfiguration(), e.cfg.K)
	e.root = newTree(newNodeData([]canonical.Word{initial}, nil))

	e.cfg.Pool.Start()
	e.enqueue(e.root)
	e.cfg.Pool.Wait()

	if d := e.root.Payload(); d.Label == LabelUnlabeled {
		e.labelBatch(e.root)
	}
}

func (e *Engine) enqueue(node *Node) {
	cost := e.cfg.Heuristic(node.Payload())
	if e.cfg.Verbose {
		log.Printf("search: enqueue node=%p words=%d cost=%d", node, node.Payload().NumWords(), cost)
	}
	e.cfg.Pool.AddJob(func() { e.expand(node) }, cost)
}

// expand carries out node expansion: bad/good/dead detection, domination
// pruning against ancestors, and enqueuing the node's successors.
func (e *Engine) expand(node *Node) {
	d := node.Payload()

	d.mu.Lock()
	if d.IsExpanded || d.Label != LabelUnlabeled {
		d.mu.Unlock()
		return
	}
	d.mu.Unlock()

	if e.cfg.Verbose {
		log.Printf("search: expand node=%p words=%d", node, d.NumWords())
	}

	if reason, bad := e.isBadNode(d.Words); bad {
		e.finishTerminal(node, StateBad, LabelBottom, reason)
		return
	}
	if allWordsExhausted(d.Words) {
		e.finishTerminal(node, StateGood, LabelTop, "every word's ATA component reached the sink")
		return
	}
	if e.dominatedByAncestor(node) {
		e.finishTerminal(node, StateGood, LabelTop, "dominated by an ancestor node")
		return
	}

	childWords, childIncoming := e.computeSuccessors(d.Words)

	d.mu.Lock()
	canceled := d.Label == LabelCanceled
	d.IsExpanded = true
	d.mu.Unlock()
	if canceled {
		if e.cfg.Verbose {
			log.Printf("search: node=%p was canceled mid-expansion, discarding successors", node)
		}
		return
	}

	if len(childWords) == 0 {
		d.mu.Lock()
		d.State = StateDead
		d.mu.Unlock()
		if e.cfg.Verbose {
			log.Printf("search: node=%p is dead (no successors on any symbol)", node)
		}
		if e.cfg.Incremental {
			e.setLabel(node, LabelTop, "dead node: no successors on any symbol")
			e.propagate(node)
		}
		return
	}

	for key, words := range childWords {
		child := addChild(node, newNodeData(words, childIncoming[key]))
		e.enqueue(child)
	}
}

// finishTerminal marks a leaf-by-detection node (bad/good/dead-at-expansion)
// and, if incremental labeling is on, immediately propagates its label.
func (e *Engine) finishTerminal(node *Node, state State, label Label, reason string) {
	d := node.Payload()
	d.mu.Lock()
	d.State = state
	d.IsExpanded = true
	d.mu.Unlock()
	if e.cfg.Verbose {
		log.Printf("search: node=%p terminal state=%s reason=%q", node, state, reason)
	}
	if e.cfg.Incremental {
		e.setLabel(node, label, reason)
		e.propagate(node)
	}
}

// isBadNode reports whether some word in words has a candidate whose TA
// and ATA components are both accepting.
func (e *Engine) isBadNode(words []canonical.Word) (string, bool) {
	for _, w := range words {
		taC, ataC := canonical.GetCandidate(w)
		if e.cfg.Automaton.Accepts(taC) && e.cfg.Automata.IsAcceptingConfiguration(ataC) {
			return "reaches a jointly TA- and ATA-accepting configuration", true
		}
	}
	return "", false
}

// allWordsExhausted reports whether every ATA region state in every word
// is the sink location.
func allWordsExhausted(words []canonical.Word) bool {
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		for _, g := range w {
			for _, s := range g.States {
				if !s.IsTA && !s.ATALoc.IsSink() {
					return false
				}
			}
		}
	}
	return true
}

// dominatedByAncestor reports whether some ancestor's word set
// monotonically dominates node's word set.
func (e *Engine) dominatedByAncestor(node *Node) bool {
	for cur := node.Parent(); cur != nil; cur = cur.Parent() {
		if canonical.DominatesSet(cur.Payload().Words, node.Payload().Words) {
			return true
		}
	}
	return false
}

// computeSuccessors expands every word in words on every symbol and every
// cached time-successor step, then partitions the results by reg_a into
// per-child word sets and incoming-action sets.
func (e *Engine) computeSuccessors(words []canonical.Word) (map[string][]canonical.Word, map[string][]IncomingAction) {
	childWords := map[string][]canonical.Word{}
	childIncoming := map[string][]IncomingAction{}
	seenWord := map[string]map[string]struct{}{}
	seenIncoming := map[string]map[string]struct{}{}

	for _, symbol := range e.cfg.Automaton.Alphabet {
		for _, w := range words {
			for _, step := range timeStepsWithZero(w, e.cfg.K) {
				candTA, candATA := canonical.GetCandidate(step.Word)
				cand := product.Candidate{TA: candTA, ATA: candATA}
				for _, next := range product.GetNextCanonicalWords(e.cfg.Automaton, e.cfg.Automata, cand, symbol, e.cfg.K) {
					key := next.RegAKey()
					if seenWord[key] == nil {
						seenWord[key] = map[string]struct{}{}
						seenIncoming[key] = map[string]struct{}{}
					}
					if _, ok := seenWord[key][next.Key()]; !ok {
						seenWord[key][next.Key()] = struct{}{}
						childWords[key] = append(childWords[key], next)
					}
					iaKey := fmt.Sprintf("%d:%s", step.Delta, symbol)
					if _, ok := seenIncoming[key][iaKey]; !ok {
						seenIncoming[key][iaKey] = struct{}{}
						childIncoming[key] = append(childIncoming[key], IncomingAction{Delta: step.Delta, Action: symbol})
					}
				}
			}
		}
	}
	return childWords, childIncoming
}

// timeStepsWithZero prepends the zero-delta "no time elapsed" step to w's
// time successors, since a symbol may fire at the node's own point in time.
func timeStepsWithZero(w canonical.Word, k int) []canonical.TimeStep {
	steps := make([]canonical.TimeStep, 0, 1)
	steps = append(steps, canonical.TimeStep{Delta: 0, Word: w})
	steps = append(steps, canonical.GetTimeSuccessors(w, k)...)
	return steps
}
