package search

import (
	"fmt"
	"log"
)

// setLabel assigns label to node unless it is already decided (TOP,
// BOTTOM or CANCELED are all terminal).
func (e *Engine) setLabel(node *Node, label Label, reason string) bool {
	d := node.Payload()
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.Label != LabelUnlabeled {
		return false
	}
	d.Label = label
	d.LabelReason = reason
	return true
}

// labelBatch performs a post-order batch labeling pass over the tree.
func (e *Engine) labelBatch(node *Node) Label {
	d := node.Payload()
	d.mu.Lock()
	if d.Label == LabelTop || d.Label == LabelBottom {
		lbl := d.Label
		d.mu.Unlock()
		return lbl
	}
	state := d.State
	d.mu.Unlock()

	switch state {
	case StateGood, StateDead:
		e.setLabel(node, LabelTop, "batch: good or dead leaf")
		return LabelTop
	case StateBad:
		e.setLabel(node, LabelBottom, "batch: bad leaf")
		return LabelBottom
	}

	type childStep struct {
		delta  int
		action string
		label  Label
	}
	var steps []childStep
	for _, c := range node.Children() {
		lbl := e.labelBatch(c)
		for _, ia := range c.Payload().Incoming {
			steps = append(steps, childStep{delta: ia.Delta, action: ia.Action, label: lbl})
		}
	}

	firstGoodController, haveGoodController := 0, false
	firstBadEnvironment, haveBadEnvironment := 0, false
	for _, s := range steps {
		if s.label == LabelTop && e.cfg.ControllerActions[s.action] {
			if !haveGoodController || s.delta < firstGoodController {
				firstGoodController, haveGoodController = s.delta, true
			}
		}
		if s.label == LabelBottom && e.cfg.EnvironmentActions[s.action] {
			if !haveBadEnvironment || s.delta < firstBadEnvironment {
				firstBadEnvironment, haveBadEnvironment = s.delta, true
			}
		}
	}

	if !haveBadEnvironment || (haveGoodController && firstGoodController < firstBadEnvironment) {
		e.setLabel(node, LabelTop, "batch: controller secures a win before any environment threat")
		return LabelTop
	}
	e.setLabel(node, LabelBottom, "batch: environment forces a loss before the controller can respond")
	return LabelBottom
}

// propagate re-evaluates ancestors after a child's label just settled,
// walking up as far as decisions continue to resolve, canceling siblings
// along the way when terminate-early is configured.
func (e *Engine) propagate(node *Node) {
	for cur := node.Parent(); cur != nil; {
		if !e.tryResolve(cur) {
			return
		}
		if e.cfg.Verbose {
			log.Printf("search: propagate resolved node=%p label=%s reason=%q", cur, cur.Payload().Label, cur.Payload().LabelReason)
		}
		if e.cfg.TerminateEarly {
			e.cancelOtherChildren(cur, nil)
		}
		cur = cur.Parent()
	}
}

// tryResolve attempts to decide node's label from its currently known
// children. It returns true iff it newly decided node's label.
func (e *Engine) tryResolve(node *Node) bool {
	d := node.Payload()
	d.mu.Lock()
	alreadyDecided := d.Label != LabelUnlabeled
	d.mu.Unlock()
	if alreadyDecided {
		return false
	}

	type step struct {
		delta  int
		action string
		label  Label
	}
	var steps []step
	for _, c := range node.Children() {
		cd := c.Payload()
		cd.mu.Lock()
		lbl := cd.Label
		cd.mu.Unlock()
		for _, ia := range cd.Incoming {
			steps = append(steps, step{delta: ia.Delta, action: ia.Action, label: lbl})
		}
	}
	if len(steps) == 0 {
		return false
	}

	// BOTTOM: some environment action is already lost at step d_e, and no
	// controller action (decided TOP, or still unlabeled and thus possibly
	// TOP in the best case) can reach a win earlier.
	bottomDelta, haveBottom := 0, false
	for _, s := range steps {
		if e.cfg.EnvironmentActions[s.action] && s.label == LabelBottom {
			if !haveBottom || s.delta < bottomDelta {
				bottomDelta, haveBottom = s.delta, true
			}
		}
	}
	if haveBottom {
		rival := false
		for _, s := range steps {
			if e.cfg.ControllerActions[s.action] && s.delta < bottomDelta && s.label != LabelBottom {
				rival = true
				break
			}
		}
		if !rival {
			e.setLabel(node, LabelBottom, fmt.Sprintf("environment wins at step %d with no earlier controller escape", bottomDelta))
			return true
		}
	}

	// TOP: some controller action already wins at step d_c, and no
	// environment action (decided BOTTOM, or still unlabeled and thus
	// possibly BOTTOM in the worst case) can force a loss at or before it.
	topDelta, haveTop := 0, false
	for _, s := range steps {
		if e.cfg.ControllerActions[s.action] && s.label == LabelTop {
			if !haveTop || s.delta < topDelta {
				topDelta, haveTop = s.delta, true
			}
		}
	}
	if haveTop {
		rival := false
		for _, s := range steps {
			if e.cfg.EnvironmentActions[s.action] && s.delta <= topDelta && s.label != LabelTop {
				rival = true
				break
			}
		}
		if !rival {
			e.setLabel(node, LabelTop, fmt.Sprintf("controller wins at step %d with no environment threat in time", topDelta))
			return true
		}
	}

	// Once every child has settled, fall back to the same rule labelBatch
	// uses: with no environment action ever reaching BOTTOM, the node is
	// TOP regardless of whether any controller action itself reached TOP.
	// Without this, a node whose controller moves are all BOTTOM (or
	// absent) and whose environment moves are all TOP would otherwise
	// never resolve here, even though nothing in it can go wrong.
	if !haveBottom {
		allResolved := true
		for _, s := range steps {
			if s.label == LabelUnlabeled {
				allResolved = false
				break
			}
		}
		if allResolved {
			e.setLabel(node, LabelTop, "all children settled with no environment threat")
			return true
		}
	}
	return false
}

// cancelOtherChildren marks every still-unlabeled descendant of node's
// children (other than skip, if non-nil) as CANCELED, stopping recursion
// at nodes not yet expanded since their descendants do not exist yet.
func (e *Engine) cancelOtherChildren(node *Node, skip *Node) {
	if e.cfg.Verbose && len(node.Children()) > 1 {
		log.Printf("search: canceling sibling subtrees of node=%p (terminate-early)", node)
	}
	for _, c := range node.Children() {
		if c == skip {
			continue
		}
		e.cancelSubtree(c)
	}
}

func (e *Engine) cancelSubtree(node *Node) {
	d := node.Payload()
	d.mu.Lock()
	canceled := false
	if d.Label == LabelUnlabeled {
		d.Label = LabelCanceled
		canceled = true
	}
	expanded := d.IsExpanded
	d.mu.Unlock()
	if e.cfg.Verbose && canceled {
		log.Printf("search: canceled node=%p", node)
	}
	if !expanded {
		return
	}
	for _, c := range node.Children() {
		e.cancelSubtree(c)
	}
}
