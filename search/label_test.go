package search

import "testing"

func buildChild(parent *Node, delta int, action string, state State, label Label) *Node {
	child := addChild(parent, newNodeData(nil, []IncomingAction{{Delta: delta, Action: action}}))
	d := child.Payload()
	d.State = state
	d.Label = label
	d.IsExpanded = true
	return child
}

func TestLabelBatchGoodAndDeadLeavesBecomeTop(t *testing.T) {
	e := &Engine{cfg: Config{}}
	root := newTree(newNodeData(nil, nil))
	root.Payload().State = StateGood
	if got := e.labelBatch(root); got != LabelTop {
		t.Fatalf("expected GOOD leaf to label TOP, got %v", got)
	}

	root2 := newTree(newNodeData(nil, nil))
	root2.Payload().State = StateDead
	if got := e.labelBatch(root2); got != LabelTop {
		t.Fatalf("expected DEAD leaf to label TOP, got %v", got)
	}
}

func TestLabelBatchBadLeafBecomesBottom(t *testing.T) {
	e := &Engine{cfg: Config{}}
	root := newTree(newNodeData(nil, nil))
	root.Payload().State = StateBad
	if got := e.labelBatch(root); got != LabelBottom {
		t.Fatalf("expected BAD leaf to label BOTTOM, got %v", got)
	}
}

func TestLabelBatchControllerEscapeBeatsEnvironmentThreat(t *testing.T) {
	e := &Engine{cfg: Config{
		ControllerActions:  map[string]bool{"ctrl": true},
		EnvironmentActions: map[string]bool{"env": true},
	}}
	root := newTree(newNodeData(nil, nil))
	buildChild(root, 1, "ctrl", StateGood, LabelTop)
	buildChild(root, 2, "env", StateBad, LabelBottom)
	if got := e.labelBatch(root); got != LabelTop {
		t.Fatalf("expected controller's earlier escape to win, got %v", got)
	}
}

func TestLabelBatchEnvironmentThreatBeatsLateController(t *testing.T) {
	e := &Engine{cfg: Config{
		ControllerActions:  map[string]bool{"ctrl": true},
		EnvironmentActions: map[string]bool{"env": true},
	}}
	root := newTree(newNodeData(nil, nil))
	buildChild(root, 2, "ctrl", StateGood, LabelTop)
	buildChild(root, 1, "env", StateBad, LabelBottom)
	if got := e.labelBatch(root); got != LabelBottom {
		t.Fatalf("expected environment's earlier threat to win, got %v", got)
	}
}

func TestLabelBatchNoEnvironmentThreatIsTop(t *testing.T) {
	e := &Engine{cfg: Config{
		ControllerActions:  map[string]bool{"ctrl": true},
		EnvironmentActions: map[string]bool{"env": true},
	}}
	root := newTree(newNodeData(nil, nil))
	buildChild(root, 5, "ctrl", StateGood, LabelTop)
	if got := e.labelBatch(root); got != LabelTop {
		t.Fatalf("expected TOP when no environment threat exists, got %v", got)
	}
}

func TestTryResolveAgreesWithBatchOnceAllChildrenSettled(t *testing.T) {
	e := &Engine{cfg: Config{
		ControllerActions:  map[string]bool{"ctrl": true},
		EnvironmentActions: map[string]bool{"env": true},
	}}
	root := newTree(newNodeData(nil, nil))
	buildChild(root, 1, "ctrl", StateGood, LabelTop)
	buildChild(root, 2, "env", StateBad, LabelBottom)

	if !e.tryResolve(root) {
		t.Fatalf("expected tryResolve to decide the parent once children settled")
	}
	if root.Payload().Label != LabelTop {
		t.Fatalf("expected incremental resolution to agree with batch (TOP), got %v", root.Payload().Label)
	}
}

func TestTryResolveWaitsForEarlierUnlabeledController(t *testing.T) {
	e := &Engine{cfg: Config{
		ControllerActions:  map[string]bool{"ctrl": true},
		EnvironmentActions: map[string]bool{"env": true},
	}}
	root := newTree(newNodeData(nil, nil))
	buildChild(root, 1, "ctrl", StateUnknown, LabelUnlabeled) // could still resolve TOP before step 2
	buildChild(root, 2, "env", StateBad, LabelBottom)

	if e.tryResolve(root) {
		t.Fatalf("expected no decision while an earlier controller option is still unresolved")
	}
	if root.Payload().Label != LabelUnlabeled {
		t.Fatalf("expected parent to remain unlabeled, got %v", root.Payload().Label)
	}
}
