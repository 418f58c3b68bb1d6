// Package diagram holds the entities of a state diagram: nodes, the
// three link variants, and the container that owns them. All geometry
// is derived from live node positions on every use, so rendering and
// hit-testing can never disagree.
package diagram

import (
	"fmt"

	"fsmdraw/pkg/geom"
)

// Diagram owns every node and link on the canvas. Draw order is slice
// order; hit-testing walks the slices backwards so the topmost entity
// wins.
type Diagram struct {
	Nodes []*Node
	Links []Link
}

// New returns an empty diagram.
func New() *Diagram {
	return &Diagram{}
}

// AddNode appends a node to the diagram.
func (d *Diagram) AddNode(n *Node) {
	d.Nodes = append(d.Nodes, n)
}

// AddLink appends a link to the diagram.
func (d *Diagram) AddLink(l Link) {
	d.Links = append(d.Links, l)
}

// RemoveNode deletes a node and every link that references it, and
// returns the removed links.
func (d *Diagram) RemoveNode(n *Node) []Link {
	var removed []Link
	kept := d.Links[:0]
	for _, l := range d.Links {
		if l.Involves(n) {
			removed = append(removed, l)
		} else {
			kept = append(kept, l)
		}
	}
	d.Links = kept

	for i, cand := range d.Nodes {
		if cand == n {
			d.Nodes = append(d.Nodes[:i], d.Nodes[i+1:]...)
			break
		}
	}
	return removed
}

// RemoveLink deletes a single link.
func (d *Diagram) RemoveLink(l Link) {
	for i, cand := range d.Links {
		if cand == l {
			d.Links = append(d.Links[:i], d.Links[i+1:]...)
			return
		}
	}
}

// NodeAt returns the topmost node containing p, or nil.
func (d *Diagram) NodeAt(p geom.Point) *Node {
	for i := len(d.Nodes) - 1; i >= 0; i-- {
		if d.Nodes[i].ContainsPoint(p) {
			return d.Nodes[i]
		}
	}
	return nil
}

// LinkAt returns the topmost link hit by p, or nil.
func (d *Diagram) LinkAt(p geom.Point) Link {
	for i := len(d.Links) - 1; i >= 0; i-- {
		if d.Links[i].ContainsPoint(p) {
			return d.Links[i]
		}
	}
	return nil
}

// EntityAt returns the topmost entity at p, preferring nodes over
// links, or nil for empty canvas.
func (d *Diagram) EntityAt(p geom.Point) Entity {
	if n := d.NodeAt(p); n != nil {
		return n
	}
	if l := d.LinkAt(p); l != nil {
		return l
	}
	return nil
}

// NodesInRect returns every node whose center lies inside the rectangle
// spanned by two opposite corners, in any corner order.
func (d *Diagram) NodesInRect(a, b geom.Point) []*Node {
	minX, maxX := a.X, b.X
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	minY, maxY := a.Y, b.Y
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	var out []*Node
	for _, n := range d.Nodes {
		if n.X >= minX && n.X <= maxX && n.Y >= minY && n.Y <= maxY {
			out = append(out, n)
		}
	}
	return out
}

// NodeByID returns the node with the given id, or nil.
func (d *Diagram) NodeByID(id string) *Node {
	for _, n := range d.Nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// Validate checks that the diagram is well-formed: every link endpoint
// must be a node owned by this diagram.
func (d *Diagram) Validate() error {
	owns := func(n *Node) bool {
		for _, cand := range d.Nodes {
			if cand == n {
				return true
			}
		}
		return false
	}
	for i, l := range d.Links {
		switch l := l.(type) {
		case *Transition:
			if l.From == nil || !owns(l.From) {
				return fmt.Errorf("link %d: from node not in diagram", i)
			}
			if l.To == nil || !owns(l.To) {
				return fmt.Errorf("link %d: to node not in diagram", i)
			}
		case *SelfTransition:
			if l.Node == nil || !owns(l.Node) {
				return fmt.Errorf("link %d: node not in diagram", i)
			}
		case *EntryArrow:
			if l.Node == nil || !owns(l.Node) {
				return fmt.Errorf("link %d: node not in diagram", i)
			}
		default:
			return fmt.Errorf("link %d: unknown link type %T", i, l)
		}
	}
	return nil
}
