package diagram

import (
	"math"

	"fsmdraw/pkg/geom"
)

// EntryArrow marks a node as an entry point: a straight arrow from a
// free point (stored as an offset from the node) to the node boundary.
type EntryArrow struct {
	Node   *Node
	DeltaX float64
	DeltaY float64
	Text   string
}

// NewEntryArrow returns an entry arrow whose tail starts at p.
func NewEntryArrow(n *Node, p geom.Point) *EntryArrow {
	e := &EntryArrow{Node: n}
	e.SetAnchorPoint(p)
	return e
}

// AnchorPoint returns the arrow's tail in absolute coordinates.
func (e *EntryArrow) AnchorPoint() geom.Point {
	return geom.Point{X: e.Node.X + e.DeltaX, Y: e.Node.Y + e.DeltaY}
}

// SetAnchorPoint moves the arrow's tail to p. Each axis offset snaps to
// zero independently so the arrow aligns through the node center.
func (e *EntryArrow) SetAnchorPoint(p geom.Point) {
	e.DeltaX = p.X - e.Node.X
	e.DeltaY = p.Y - e.Node.Y
	if math.Abs(e.DeltaX) < snapPadding {
		e.DeltaX = 0
	}
	if math.Abs(e.DeltaY) < snapPadding {
		e.DeltaY = 0
	}
}

// DeriveGeometry computes the straight segment from the tail to the
// node boundary. Entry arrows never curve.
func (e *EntryArrow) DeriveGeometry() LinkGeometry {
	start := e.AnchorPoint()
	return LinkGeometry{
		Kind: Straight,
		From: start,
		To:   e.Node.BoundaryPointTowards(start),
	}
}

// ContainsPoint reports whether p hits the arrow's segment within the
// hit tolerance.
func (e *EntryArrow) ContainsPoint(p geom.Point) bool {
	g := e.DeriveGeometry()
	dx := g.To.X - g.From.X
	dy := g.To.Y - g.From.Y
	length := math.Hypot(dx, dy)
	if length < 1e-9 {
		return false
	}
	percent := (dx*(p.X-g.From.X) + dy*(p.Y-g.From.Y)) / (length * length)
	distance := (dx*(p.Y-g.From.Y) - dy*(p.X-g.From.X)) / length
	return percent > 0 && percent < 1 && math.Abs(distance) < hitPadding
}

// Involves reports whether the arrow points at the node.
func (e *EntryArrow) Involves(n *Node) bool {
	return e.Node == n
}

// Label returns the arrow's text.
func (e *EntryArrow) Label() string { return e.Text }

// SetLabel replaces the arrow's text.
func (e *EntryArrow) SetLabel(s string) { e.Text = s }
