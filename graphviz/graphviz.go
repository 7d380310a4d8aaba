// Package graphviz renders search trees and timed automata as Graphviz DOT,
// one strings.Builder statement per node or edge.
package graphviz

import (
	"fmt"
	"strings"

	"github.com/morxa/mtlsyn/search"
	"github.com/morxa/mtlsyn/ta"
)

// SearchTree renders root's tree as a DOT digraph: one record node per
// search node (label reason, incoming actions, canonical words), colored
// green for TOP, red for BOTTOM, and left default otherwise.
func SearchTree(root *search.Node) string {
	var sb strings.Builder
	sb.WriteString("digraph SearchTree {\n")
	sb.WriteString("  node [shape=record];\n\n")
	writeSearchNode(&sb, root, 0)
	sb.WriteString("}\n")
	return sb.String()
}

func writeSearchNode(sb *strings.Builder, n *search.Node, id int) int {
	d := n.Payload()
	name := fmt.Sprintf("n%d", id)

	words := make([]string, len(d.Words))
	for i, w := range d.Words {
		words[i] = escape(w.String())
	}
	actions := make([]string, len(d.Incoming))
	for i, ia := range d.Incoming {
		actions[i] = fmt.Sprintf("%d:%s", ia.Delta, ia.Action)
	}
	label := fmt.Sprintf("%s|%s|%s", escape(d.LabelReason), strings.Join(actions, ","), strings.Join(words, "\\n"))

	color := ""
	switch d.Label {
	case search.LabelTop:
		color = ", style=filled, fillcolor=green"
	case search.LabelBottom:
		color = ", style=filled, fillcolor=red"
	}
	sb.WriteString(fmt.Sprintf("  %s [label=\"{%s}\"%s];\n", name, label, color))

	next := id + 1
	for _, child := range n.Children() {
		childID := next
		next = writeSearchNode(sb, child, childID)
		sb.WriteString(fmt.Sprintf("  %s -> n%d;\n", name, childID))
	}
	return next
}

// TimedAutomaton renders a as a standard finite-automaton digraph: an
// invisible start point into the initial location, double-circled
// accepting locations, and one labeled edge per transition (including its
// guard and resets, when present).
func TimedAutomaton(a *ta.TimedAutomaton) string {
	var sb strings.Builder
	sb.WriteString("digraph TimedAutomaton {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=circle];\n\n")

	sb.WriteString("  start [shape=point];\n")
	sb.WriteString(fmt.Sprintf("  start -> \"%s\";\n\n", escape(string(a.Initial))))

	for _, l := range a.Locations {
		shape := "circle"
		if a.Accepting[l] {
			shape = "doublecircle"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\" [shape=%s];\n", escape(string(l)), shape))
	}
	sb.WriteString("\n")

	for _, t := range a.Transitions() {
		sb.WriteString(fmt.Sprintf("  \"%s\" -> \"%s\" [label=\"%s\"];\n",
			escape(string(t.Source)), escape(string(t.Target)), escape(transitionLabel(t))))
	}

	sb.WriteString("}\n")
	return sb.String()
}

func transitionLabel(t *ta.Transition) string {
	var parts []string
	parts = append(parts, t.Action)
	for clockName, cons := range t.Guard {
		for _, c := range cons {
			parts = append(parts, fmt.Sprintf("%s %s", clockName, c))
		}
	}
	var resets []string
	for clockName, reset := range t.Resets {
		if reset {
			resets = append(resets, clockName+":=0")
		}
	}
	if len(resets) > 0 {
		parts = append(parts, strings.Join(resets, ", "))
	}
	return strings.Join(parts, "\\n")
}

func escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}
