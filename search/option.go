package search

import (
	"github.com/morxa/mtlsyn/ata"
	"github.com/morxa/mtlsyn/heuristic"
	"github.com/morxa/mtlsyn/pool"
	"github.com/morxa/mtlsyn/ta"
)

// Option configures an Engine built via NewFromOptions, following the
// teacher's marker-interface functional-option pattern: one small type per
// knob, applied in sequence onto a Config.
type Option interface {
	apply(*Config)
}

type heuristicOption struct{ h heuristic.Heuristic }

func (o heuristicOption) apply(c *Config) { c.Heuristic = o.h }

// WithHeuristic sets the cost function used to order node expansion.
// Default is a constant cost of 0, under which the pool gives no order
// among queued nodes.
func WithHeuristic(h heuristic.Heuristic) Option { return heuristicOption{h} }

type incrementalOption struct{ on bool }

func (o incrementalOption) apply(c *Config) { c.Incremental = o.on }

// WithIncremental enables incremental (propagate-on-resolve) labeling
// instead of a final batch pass. Default is batch labeling.
func WithIncremental(on bool) Option { return incrementalOption{on} }

type terminateEarlyOption struct{ on bool }

func (o terminateEarlyOption) apply(c *Config) { c.TerminateEarly = o.on }

// WithTerminateEarly cancels sibling subtrees once incremental labeling
// resolves their parent. Default is off; only meaningful combined with
// WithIncremental(true).
func WithTerminateEarly(on bool) Option { return terminateEarlyOption{on} }

type verboseOption struct{ on bool }

func (o verboseOption) apply(c *Config) { c.Verbose = o.on }

// WithVerbose logs one line per node enqueue, expansion, terminal-state
// detection, and label propagation. Default is off.
func WithVerbose(on bool) Option { return verboseOption{on} }

type actionsOption struct {
	controller  map[string]bool
	environment map[string]bool
}

func (o actionsOption) apply(c *Config) {
	c.ControllerActions = o.controller
	c.EnvironmentActions = o.environment
}

// WithActions partitions the plant alphabet into controller- and
// environment-owned actions.
func WithActions(controller, environment map[string]bool) Option {
	return actionsOption{controller, environment}
}

// NewFromOptions builds an Engine from its mandatory inputs plus a set of
// Options, for callers that prefer the option idiom over a literal Config.
func NewFromOptions(automaton *ta.TimedAutomaton, atm *ata.ATA, k int, p *pool.Pool, opts ...Option) *Engine {
	cfg := Config{Automaton: automaton, Automata: atm, K: k, Pool: p, Heuristic: func(heuristic.Node) int { return 0 }}
	for _, opt := range opts {
		opt.apply(&cfg)
	}
	return New(cfg)
}
