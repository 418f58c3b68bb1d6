package diagram

import (
	"math"
	"testing"

	"fsmdraw/pkg/geom"
)

func TestParseShapeRoundTrip(t *testing.T) {
	shapes := []Shape{ShapeDot, ShapeTriangle, ShapeSquare, ShapePentagon, ShapeHexagon}
	for _, s := range shapes {
		got, err := ParseShape(s.String())
		if err != nil {
			t.Errorf("ParseShape(%q): %v", s.String(), err)
		}
		if got != s {
			t.Errorf("ParseShape(%q) = %v, want %v", s.String(), got, s)
		}
	}
	if _, err := ParseShape("blob"); err == nil {
		t.Error("ParseShape(\"blob\") should fail")
	}
}

func TestVertices(t *testing.T) {
	tests := []struct {
		shape Shape
		sides int
	}{
		{ShapeDot, 0},
		{ShapeTriangle, 3},
		{ShapeSquare, 4},
		{ShapePentagon, 5},
		{ShapeHexagon, 6},
	}
	for _, tt := range tests {
		t.Run(tt.shape.String(), func(t *testing.T) {
			n := &Node{X: 100, Y: 200, Shape: tt.shape}
			verts := n.Vertices()
			if len(verts) != tt.sides {
				t.Fatalf("got %d vertices, want %d", len(verts), tt.sides)
			}
			for i, v := range verts {
				if d := geom.Dist(v, n.Center()); math.Abs(d-NodeRadius) > 1e-9 {
					t.Errorf("vertex %d at distance %.4f from center, want %.1f", i, d, NodeRadius)
				}
			}
		})
	}
}

func TestBoundaryPointTowardsDot(t *testing.T) {
	n := &Node{X: 100, Y: 100, Shape: ShapeDot}

	got := n.BoundaryPointTowards(geom.Point{X: 200, Y: 100})
	want := geom.Point{X: 100 + NodeRadius, Y: 100}
	if geom.Dist(got, want) > 1e-9 {
		t.Errorf("got (%.2f, %.2f), want (%.2f, %.2f)", got.X, got.Y, want.X, want.Y)
	}

	// Degenerate target at the center still yields a boundary point.
	got = n.BoundaryPointTowards(n.Center())
	if d := geom.Dist(got, n.Center()); math.Abs(d-NodeRadius) > 1e-9 {
		t.Errorf("center probe: boundary point at distance %.4f, want %.1f", d, NodeRadius)
	}
}

func TestBoundaryPointTowardsPolygon(t *testing.T) {
	for _, shape := range []Shape{ShapeTriangle, ShapeSquare, ShapePentagon, ShapeHexagon} {
		t.Run(shape.String(), func(t *testing.T) {
			n := &Node{X: 100, Y: 100, Shape: shape}
			probe := geom.Point{X: 300, Y: 100}
			got := n.BoundaryPointTowards(probe)

			// The connection point must lie on the outline: it is its own
			// closest boundary point.
			again := geom.ClosestPointOnPolygon(got, n.Vertices())
			if geom.Dist(got, again) > 1e-6 {
				t.Errorf("connection point (%.2f, %.2f) not on boundary", got.X, got.Y)
			}
			// And it must be nearer the probe than the center is.
			if geom.Dist(got, probe) >= geom.Dist(n.Center(), probe) {
				t.Errorf("connection point no closer to probe than center")
			}
		})
	}
}

func TestContainsPoint(t *testing.T) {
	for _, shape := range []Shape{ShapeDot, ShapeTriangle, ShapeSquare, ShapePentagon, ShapeHexagon} {
		t.Run(shape.String(), func(t *testing.T) {
			n := &Node{X: 100, Y: 100, Shape: shape}
			if !n.ContainsPoint(geom.Point{X: 100, Y: 100}) {
				t.Error("center should be contained")
			}
			if n.ContainsPoint(geom.Point{X: 100 + 2*NodeRadius, Y: 100}) {
				t.Error("point beyond the outline should not be contained")
			}
		})
	}

	// Triangle is narrower than its circumcircle near the base corners.
	n := &Node{X: 100, Y: 100, Shape: ShapeTriangle}
	p := geom.Point{X: 100 + NodeRadius*0.95, Y: 100 - NodeRadius*0.5}
	if n.ContainsPoint(p) {
		t.Error("point inside circumcircle but outside triangle should not be contained")
	}
}

func TestMoveTo(t *testing.T) {
	n := &Node{X: 10, Y: 20, Shape: ShapeSquare}
	n.MoveTo(300, 400)
	if n.X != 300 || n.Y != 400 {
		t.Errorf("moved to (%.1f, %.1f), want (300, 400)", n.X, n.Y)
	}
	verts := n.Vertices()
	for i, v := range verts {
		if d := geom.Dist(v, n.Center()); math.Abs(d-NodeRadius) > 1e-9 {
			t.Errorf("vertex %d did not follow the move (distance %.4f)", i, d)
		}
	}
}
