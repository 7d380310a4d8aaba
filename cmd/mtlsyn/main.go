// Command mtlsyn synthesizes a controller timed automaton that avoids an
// undesired-behavior MTL specification against a plant timed automaton,
// wiring together the MTL-to-ATA translator, the canonical-word search
// engine, and controller extraction.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/morxa/mtlsyn/controller"
	"github.com/morxa/mtlsyn/graphviz"
	"github.com/morxa/mtlsyn/heuristic"
	"github.com/morxa/mtlsyn/mtl"
	"github.com/morxa/mtlsyn/pbcodec"
	"github.com/morxa/mtlsyn/pool"
	"github.com/morxa/mtlsyn/search"
	"github.com/morxa/mtlsyn/ta"
	"github.com/morxa/mtlsyn/translate"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

type config struct {
	taPath             string
	mtlPath            string
	controllerActions  string
	environmentActions string
	k                  int
	incremental        bool
	terminateEarly     bool
	heuristicName      string
	weights            weightList
	outPath            string
	dotPath            string
	verbose            bool
}

// weightList collects repeatable -weight name=w flags for the composite
// heuristic.
type weightList []string

func (w *weightList) String() string { return strings.Join(*w, ",") }
func (w *weightList) Set(v string) error {
	*w = append(*w, v)
	return nil
}

func run(args []string) error {
	var cfg config
	fs := flag.NewFlagSet("mtlsyn", flag.ContinueOnError)
	fs.StringVar(&cfg.taPath, "ta", "", "path to the protobuf-encoded plant timed automaton (- for stdin)")
	fs.StringVar(&cfg.mtlPath, "mtl", "", "path to the protobuf-encoded undesired-behavior MTL formula (- for stdin)")
	fs.StringVar(&cfg.controllerActions, "controller", "", "comma-separated controller-owned actions")
	fs.StringVar(&cfg.environmentActions, "environment", "", "comma-separated environment-owned actions")
	fs.IntVar(&cfg.k, "k", 1, "maximal constant K for the region abstraction")
	fs.BoolVar(&cfg.incremental, "incremental", false, "use incremental labeling instead of a final batch pass")
	fs.BoolVar(&cfg.terminateEarly, "terminate-early", false, "cancel sibling subtrees once incremental labeling resolves their parent")
	fs.StringVar(&cfg.heuristicName, "heuristic", "bfs", "search order: bfs, dfs, time, prefer-env, words")
	fs.Var(&cfg.weights, "weight", "name=weight pair for the composite heuristic; repeatable")
	fs.StringVar(&cfg.outPath, "out", "-", "where to write the resulting controller TA (- for stdout)")
	fs.StringVar(&cfg.dotPath, "dot", "", "optional DOT export of the final search tree")
	fs.BoolVar(&cfg.verbose, "v", false, "log one line per node expansion")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return synthesize(cfg)
}

func synthesize(cfg config) error {
	automaton, err := readAutomaton(cfg.taPath)
	if err != nil {
		return fmt.Errorf("mtlsyn: reading plant TA: %w", err)
	}
	formula, err := readFormula(cfg.mtlPath)
	if err != nil {
		return fmt.Errorf("mtlsyn: reading MTL formula: %w", err)
	}

	controllerActions, environmentActions, err := partitionAlphabet(automaton, cfg.controllerActions, cfg.environmentActions)
	if err != nil {
		return fmt.Errorf("mtlsyn: invalid action partition: %w", err)
	}

	atm, err := translate.Translate(formula, automaton.Alphabet)
	if err != nil {
		return fmt.Errorf("mtlsyn: translating MTL to ATA: %w", err)
	}

	h, err := buildHeuristic(cfg.heuristicName, cfg.weights, environmentActions)
	if err != nil {
		return fmt.Errorf("mtlsyn: %w", err)
	}

	p := pool.New(4)
	engine := search.New(search.Config{
		Automaton:          automaton,
		Automata:           atm,
		K:                  cfg.k,
		ControllerActions:  controllerActions,
		EnvironmentActions: environmentActions,
		Heuristic:          h,
		Pool:               p,
		Incremental:        cfg.incremental,
		TerminateEarly:     cfg.terminateEarly,
		Verbose:            cfg.verbose,
	})
	if cfg.verbose {
		log.Println("mtlsyn: starting search")
	}
	engine.Run()
	if cfg.verbose {
		log.Printf("mtlsyn: search finished, root label=%v", engine.Root().Payload().Label)
	}

	if cfg.dotPath != "" {
		if err := writeFile(cfg.dotPath, []byte(graphviz.SearchTree(engine.Root()))); err != nil {
			return fmt.Errorf("mtlsyn: writing DOT export: %w", err)
		}
	}

	if engine.Root().Payload().Label != search.LabelTop {
		fmt.Println("no controller exists: the environment can always force the undesired behavior")
		return nil
	}

	result, err := controller.Extract(engine.Root())
	if err != nil {
		return fmt.Errorf("mtlsyn: extracting controller: %w", err)
	}
	if err := writeFile(cfg.outPath, pbcodec.MarshalTimedAutomaton(result)); err != nil {
		return fmt.Errorf("mtlsyn: writing controller: %w", err)
	}
	return nil
}

func readAutomaton(path string) (*ta.TimedAutomaton, error) {
	buf, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return pbcodec.UnmarshalTimedAutomaton(buf)
}

func readFormula(path string) (mtl.Formula, error) {
	buf, err := readFile(path)
	if err != nil {
		return mtl.Formula{}, err
	}
	return pbcodec.UnmarshalFormula(buf)
}

func readFile(path string) ([]byte, error) {
	if path == "" {
		return nil, fmt.Errorf("no path given")
	}
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeFile(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func partitionAlphabet(automaton *ta.TimedAutomaton, controllerCSV, environmentCSV string) (map[string]bool, map[string]bool, error) {
	controllerActions := splitCSV(controllerCSV)
	environmentActions := splitCSV(environmentCSV)
	for a := range controllerActions {
		if environmentActions[a] {
			return nil, nil, fmt.Errorf("action %q is both controller- and environment-owned", a)
		}
	}
	for _, a := range automaton.Alphabet {
		if !controllerActions[a] && !environmentActions[a] {
			return nil, nil, fmt.Errorf("action %q is not assigned to the controller or the environment", a)
		}
	}
	return controllerActions, environmentActions, nil
}

func splitCSV(csv string) map[string]bool {
	out := map[string]bool{}
	if csv == "" {
		return out
	}
	for _, s := range strings.Split(csv, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			out[s] = true
		}
	}
	return out
}

func buildHeuristic(name string, weights weightList, environmentActions map[string]bool) (heuristic.Heuristic, error) {
	base := map[string]heuristic.Heuristic{
		"bfs":        heuristic.BFS(),
		"dfs":        heuristic.DFS(),
		"time":       heuristic.Time(),
		"prefer-env": heuristic.PreferEnvironmentAction(environmentActions),
		"words":      heuristic.NumCanonicalWords(),
	}
	if len(weights) == 0 {
		h, ok := base[name]
		if !ok {
			return nil, fmt.Errorf("unknown heuristic %q", name)
		}
		return h, nil
	}
	var terms []heuristic.Weighted
	for _, w := range weights {
		parts := strings.SplitN(w, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("malformed -weight %q, want name=weight", w)
		}
		h, ok := base[parts[0]]
		if !ok {
			return nil, fmt.Errorf("unknown heuristic %q in -weight", parts[0])
		}
		var weight int
		if _, err := fmt.Sscanf(parts[1], "%d", &weight); err != nil {
			return nil, fmt.Errorf("malformed weight in %q: %w", w, err)
		}
		terms = append(terms, heuristic.Weighted{Weight: weight, Heuristic: h})
	}
	return heuristic.Composite(terms...), nil
}
