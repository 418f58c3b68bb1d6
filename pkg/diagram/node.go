package diagram

import (
	"fmt"
	"math"

	"fsmdraw/pkg/geom"
)

// NodeRadius is the circumradius of every node outline in world units.
const NodeRadius = 30.0

// Shape selects the outline drawn for a node.
type Shape int

const (
	ShapeDot Shape = iota
	ShapeTriangle
	ShapeSquare
	ShapePentagon
	ShapeHexagon
)

// shapeTable drives vertex generation for polygon shapes. Rotation is
// the angle of the first vertex; -π/2 points it straight up on a
// y-down canvas. Dot has no entry and is handled as a circle.
var shapeTable = map[Shape]struct {
	sides    int
	rotation float64
}{
	ShapeTriangle: {3, -math.Pi / 2},
	ShapeSquare:   {4, -math.Pi / 4},
	ShapePentagon: {5, -math.Pi / 2},
	ShapeHexagon:  {6, 0},
}

// String returns the shape name used in file formats.
func (s Shape) String() string {
	switch s {
	case ShapeDot:
		return "dot"
	case ShapeTriangle:
		return "triangle"
	case ShapeSquare:
		return "square"
	case ShapePentagon:
		return "pentagon"
	case ShapeHexagon:
		return "hexagon"
	}
	return "unknown"
}

// ParseShape converts a file-format shape name back to a Shape.
func ParseShape(name string) (Shape, error) {
	switch name {
	case "dot", "":
		return ShapeDot, nil
	case "triangle":
		return ShapeTriangle, nil
	case "square":
		return ShapeSquare, nil
	case "pentagon":
		return ShapePentagon, nil
	case "hexagon":
		return ShapeHexagon, nil
	}
	return ShapeDot, fmt.Errorf("unknown shape %q", name)
}

// Node is a state on the canvas.
type Node struct {
	ID     string
	X, Y   float64
	Shape  Shape
	Color  string
	Text   string
	Accept bool
}

// Center returns the node's position as a point.
func (n *Node) Center() geom.Point {
	return geom.Point{X: n.X, Y: n.Y}
}

// MoveTo repositions the node. Attached transitions re-derive their
// geometry from the new position on the next draw.
func (n *Node) MoveTo(x, y float64) {
	n.X = x
	n.Y = y
}

// Vertices returns the polygon outline for shaped nodes, or nil for
// ShapeDot. Vertices are ordered counterclockwise in world coordinates.
func (n *Node) Vertices() []geom.Point {
	desc, ok := shapeTable[n.Shape]
	if !ok {
		return nil
	}
	verts := make([]geom.Point, desc.sides)
	for i := range verts {
		a := desc.rotation + 2*math.Pi*float64(i)/float64(desc.sides)
		verts[i] = geom.Point{
			X: n.X + NodeRadius*math.Cos(a),
			Y: n.Y + NodeRadius*math.Sin(a),
		}
	}
	return verts
}

// BoundaryPointTowards returns the point on the node's outline where a
// line toward the target would connect. For ShapeDot this is the circle
// intersection; for polygon shapes it is the closest boundary point to
// the target.
func (n *Node) BoundaryPointTowards(target geom.Point) geom.Point {
	if n.Shape == ShapeDot {
		dx := target.X - n.X
		dy := target.Y - n.Y
		scale := math.Hypot(dx, dy)
		if scale < 1e-9 {
			return geom.Point{X: n.X + NodeRadius, Y: n.Y}
		}
		return geom.Point{
			X: n.X + dx*NodeRadius/scale,
			Y: n.Y + dy*NodeRadius/scale,
		}
	}
	return geom.ClosestPointOnPolygon(target, n.Vertices())
}

// ContainsPoint reports whether p lies on the node.
func (n *Node) ContainsPoint(p geom.Point) bool {
	switch n.Shape {
	case ShapeDot:
		return geom.Dist(p, n.Center()) <= NodeRadius
	case ShapeTriangle:
		v := n.Vertices()
		return geom.PointInTriangle(p, v[0], v[1], v[2])
	default:
		return geom.PointInPolygon(p, n.Vertices())
	}
}

// Label returns the node's text.
func (n *Node) Label() string { return n.Text }

// SetLabel replaces the node's text.
func (n *Node) SetLabel(s string) { n.Text = s }
