package diagfile

import (
	"fmt"
	"strings"

	"fsmdraw/pkg/diagram"
)

var dotShapes = map[diagram.Shape]string{
	diagram.ShapeDot:      "circle",
	diagram.ShapeTriangle: "triangle",
	diagram.ShapeSquare:   "box",
	diagram.ShapePentagon: "pentagon",
	diagram.ShapeHexagon:  "hexagon",
}

// GenerateDOT converts a diagram to Graphviz DOT format. Layout is left
// to Graphviz; only the graph structure and styling survive.
func GenerateDOT(d *diagram.Diagram, title string) string {
	var sb strings.Builder

	sb.WriteString("digraph diagram {\n")
	sb.WriteString("    rankdir=LR;\n")
	sb.WriteString("    node [fontname=\"Helvetica\", fontsize=11];\n")
	sb.WriteString("    edge [fontname=\"Helvetica\", fontsize=10];\n")
	sb.WriteString("\n")

	if title != "" {
		sb.WriteString("    labelloc=\"t\";\n")
		sb.WriteString(fmt.Sprintf("    label=\"%s\";\n", escapeDOT(title)))
		sb.WriteString("\n")
	}

	for _, n := range d.Nodes {
		attrs := []string{fmt.Sprintf("shape=%s", dotShapes[n.Shape])}
		if n.Accept {
			if n.Shape == diagram.ShapeDot {
				attrs[0] = "shape=doublecircle"
			} else {
				attrs = append(attrs, "peripheries=2")
			}
		}
		if n.Text != "" && n.Text != n.ID {
			attrs = append(attrs, fmt.Sprintf("label=\"%s\"", escapeDOT(n.Text)))
		}
		if n.Color != "" {
			attrs = append(attrs, fmt.Sprintf("color=\"%s\"", escapeDOT(n.Color)))
		}
		sb.WriteString(fmt.Sprintf("    \"%s\" [%s];\n", escapeDOT(n.ID), strings.Join(attrs, ", ")))
	}
	sb.WriteString("\n")

	entry := 0
	for _, l := range d.Links {
		switch l := l.(type) {
		case *diagram.Transition:
			writeDOTEdge(&sb, l.From.ID, l.To.ID, l.Text)
		case *diagram.SelfTransition:
			writeDOTEdge(&sb, l.Node.ID, l.Node.ID, l.Text)
		case *diagram.EntryArrow:
			// Invisible source node marks the entry point.
			start := fmt.Sprintf("__start%d", entry)
			entry++
			sb.WriteString(fmt.Sprintf("    %s [shape=none, label=\"\", width=0, height=0];\n", start))
			writeDOTEdge(&sb, start, l.Node.ID, l.Text)
		}
	}

	sb.WriteString("}\n")
	return sb.String()
}

func writeDOTEdge(sb *strings.Builder, from, to, label string) {
	if label != "" {
		sb.WriteString(fmt.Sprintf("    \"%s\" -> \"%s\" [label=\"%s\"];\n",
			escapeDOT(from), escapeDOT(to), escapeDOT(label)))
		return
	}
	sb.WriteString(fmt.Sprintf("    \"%s\" -> \"%s\";\n", escapeDOT(from), escapeDOT(to)))
}

func escapeDOT(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return s
}
