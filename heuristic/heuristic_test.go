package heuristic

import "testing"

type fakeNode struct {
	deltas  []int
	actions []string
	words   int
	parent  *fakeNode
}

func (n *fakeNode) IncomingDeltas() []int    { return n.deltas }
func (n *fakeNode) IncomingActions() []string { return n.actions }
func (n *fakeNode) NumWords() int            { return n.words }
func (n *fakeNode) Parent() Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func TestBFSIncreasesMonotonically(t *testing.T) {
	h := BFS()
	a := h(&fakeNode{})
	b := h(&fakeNode{})
	if b <= a {
		t.Fatalf("expected BFS costs to increase, got %d then %d", a, b)
	}
}

func TestDFSDecreasesMonotonically(t *testing.T) {
	h := DFS()
	a := h(&fakeNode{})
	b := h(&fakeNode{})
	if b >= a {
		t.Fatalf("expected DFS costs to decrease, got %d then %d", a, b)
	}
}

func TestTimeSumsMinimumDeltaPerAncestor(t *testing.T) {
	root := &fakeNode{}
	child := &fakeNode{deltas: []int{3, 1}, parent: root}
	grandchild := &fakeNode{deltas: []int{2}, parent: child}
	if got := Time()(grandchild); got != 3 {
		t.Fatalf("expected 1 (child's min) + 2 (grandchild's min) = 3, got %d", got)
	}
}

func TestPreferEnvironmentAction(t *testing.T) {
	h := PreferEnvironmentAction(map[string]bool{"env": true})
	if h(&fakeNode{actions: []string{"env"}}) != 0 {
		t.Fatalf("expected cost 0 for an environment action")
	}
	if h(&fakeNode{actions: []string{"ctrl"}}) != 1 {
		t.Fatalf("expected cost 1 for a controller action")
	}
}

func TestNumCanonicalWords(t *testing.T) {
	if got := NumCanonicalWords()(&fakeNode{words: 7}); got != 7 {
		t.Fatalf("expected 7, got %d", got)
	}
}

func TestComposite(t *testing.T) {
	h := Composite(
		Weighted{Weight: 2, Heuristic: NumCanonicalWords()},
		Weighted{Weight: 1, Heuristic: func(n Node) int { return 10 }},
	)
	if got := h(&fakeNode{words: 3}); got != 16 {
		t.Fatalf("expected 2*3+1*10=16, got %d", got)
	}
}
