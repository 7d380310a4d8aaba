package main

import (
	"testing"

	"github.com/morxa/mtlsyn/ta"
)

func TestPartitionAlphabetRejectsOverlap(t *testing.T) {
	automaton := ta.New([]ta.Location{"l0"}, []string{"a", "b"}, nil, "l0")
	if _, _, err := partitionAlphabet(automaton, "a", "a,b"); err == nil {
		t.Fatalf("expected an error for an action assigned to both sides")
	}
}

func TestPartitionAlphabetRejectsUnassignedSymbol(t *testing.T) {
	automaton := ta.New([]ta.Location{"l0"}, []string{"a", "b"}, nil, "l0")
	if _, _, err := partitionAlphabet(automaton, "a", ""); err == nil {
		t.Fatalf("expected an error for an unassigned alphabet symbol")
	}
}

func TestPartitionAlphabetAccepts(t *testing.T) {
	automaton := ta.New([]ta.Location{"l0"}, []string{"a", "b"}, nil, "l0")
	controller, environment, err := partitionAlphabet(automaton, "a", "b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !controller["a"] || !environment["b"] {
		t.Fatalf("expected a to be controller-owned and b environment-owned, got %v / %v", controller, environment)
	}
}

func TestBuildHeuristicUnknownName(t *testing.T) {
	if _, err := buildHeuristic("nonsense", nil, nil); err == nil {
		t.Fatalf("expected an error for an unknown heuristic name")
	}
}

func TestBuildHeuristicComposite(t *testing.T) {
	h, err := buildHeuristic("bfs", weightList{"bfs=2", "dfs=1"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h == nil {
		t.Fatalf("expected a composite heuristic")
	}
}
