package diagram

import (
	"math"
	"testing"

	"fsmdraw/pkg/geom"
)

func twoNodes() (*Node, *Node) {
	a := &Node{ID: "a", X: 500, Y: 500, Shape: ShapeDot}
	b := &Node{ID: "b", X: 1000, Y: 1000, Shape: ShapeDot}
	return a, b
}

func TestStraightTransitionGeometry(t *testing.T) {
	a, b := twoNodes()
	tr := NewTransition(a, b)

	g := tr.DeriveGeometry()
	if g.Kind != Straight {
		t.Fatalf("kind = %v, want Straight", g.Kind)
	}

	// Connection points sit on each boundary along the center line.
	d := NodeRadius / math.Sqrt2
	wantFrom := geom.Point{X: 500 + d, Y: 500 + d}
	wantTo := geom.Point{X: 1000 - d, Y: 1000 - d}
	if geom.Dist(g.From, wantFrom) > 1e-6 {
		t.Errorf("From = (%.2f, %.2f), want (%.2f, %.2f)", g.From.X, g.From.Y, wantFrom.X, wantFrom.Y)
	}
	if geom.Dist(g.To, wantTo) > 1e-6 {
		t.Errorf("To = (%.2f, %.2f), want (%.2f, %.2f)", g.To.X, g.To.Y, wantTo.X, wantTo.Y)
	}
}

func TestCurvedTransitionGeometry(t *testing.T) {
	a, b := twoNodes()
	tr := NewTransition(a, b)

	// Drag the anchor well off the baseline.
	anchor := geom.Point{X: 800, Y: 650}
	tr.SetAnchorPoint(anchor)
	if tr.PerpendicularPart == 0 {
		t.Fatal("anchor far from baseline should not snap to straight")
	}

	g := tr.DeriveGeometry()
	if g.Kind != Arc {
		t.Fatalf("kind = %v, want Arc", g.Kind)
	}

	// The circle passes through the raw anchor and both connection points.
	center := geom.Point{X: g.Circle.X, Y: g.Circle.Y}
	for _, p := range []geom.Point{anchor, g.From, g.To} {
		if math.Abs(geom.Dist(center, p)-g.Circle.R) > 1e-6 {
			t.Errorf("point (%.2f, %.2f) not on derived circle", p.X, p.Y)
		}
	}

	// Connection points sit on each node's boundary. The angular offset
	// is a chord approximation, so allow a small error.
	if math.Abs(geom.Dist(g.From, a.Center())-NodeRadius) > 0.05 {
		t.Errorf("From not on node a's boundary")
	}
	if math.Abs(geom.Dist(g.To, b.Center())-NodeRadius) > 0.05 {
		t.Errorf("To not on node b's boundary")
	}
}

func TestAnchorRoundTrip(t *testing.T) {
	a, b := twoNodes()
	tr := NewTransition(a, b)

	anchor := geom.Point{X: 650, Y: 900}
	tr.SetAnchorPoint(anchor)
	got := tr.AnchorPoint()
	if geom.Dist(got, anchor) > 1e-6 {
		t.Errorf("round trip gave (%.4f, %.4f), want (%.1f, %.1f)", got.X, got.Y, anchor.X, anchor.Y)
	}
}

func TestSnapToStraight(t *testing.T) {
	a, b := twoNodes()
	tr := NewTransition(a, b)

	// Baseline runs (500,500)→(1000,1000); a point 3 units off it and
	// between the endpoints snaps to a pure straight line.
	mid := geom.Midpoint(a.Center(), b.Center())
	off := 3.0 / math.Sqrt2
	tr.SetAnchorPoint(geom.Point{X: mid.X - off, Y: mid.Y + off})

	if tr.PerpendicularPart != 0 {
		t.Errorf("PerpendicularPart = %.4f, want exact 0", tr.PerpendicularPart)
	}
	if tr.DeriveGeometry().Kind != Straight {
		t.Error("snapped transition should derive Straight geometry")
	}
	if tr.StraightBias != 0 {
		t.Errorf("StraightBias = %.4f, want 0 for a nudge from the positive side", tr.StraightBias)
	}

	// Nudge from the other side records the opposite bias.
	tr.SetAnchorPoint(geom.Point{X: mid.X + off, Y: mid.Y - off})
	if tr.PerpendicularPart != 0 {
		t.Errorf("PerpendicularPart = %.4f, want exact 0", tr.PerpendicularPart)
	}
	if tr.StraightBias != math.Pi {
		t.Errorf("StraightBias = %.4f, want π for a nudge from the negative side", tr.StraightBias)
	}

	// Outside the endpoints the snap never applies, however close.
	tr.SetAnchorPoint(geom.Point{X: 400, Y: 400})
	if tr.PerpendicularPart == 0 && tr.ParallelPart > 0 && tr.ParallelPart < 1 {
		t.Error("point before the start endpoint must not snap")
	}
}

func TestCurveFollowsEndpoints(t *testing.T) {
	a, b := twoNodes()
	tr := NewTransition(a, b)
	tr.SetAnchorPoint(geom.Point{X: 800, Y: 650})

	parallel := tr.ParallelPart
	perpendicular := tr.PerpendicularPart
	before := tr.AnchorPoint()

	b.MoveTo(1200, 800)

	if tr.ParallelPart != parallel || tr.PerpendicularPart != perpendicular {
		t.Error("relative curvature must survive endpoint drags")
	}
	after := tr.AnchorPoint()
	if geom.Dist(before, after) < 1 {
		t.Error("absolute anchor should move with the endpoint")
	}
	if tr.DeriveGeometry().Kind != Arc {
		t.Error("curve should remain an arc after the drag")
	}
}

func TestTransitionContainsPoint(t *testing.T) {
	a, b := twoNodes()

	t.Run("straight", func(t *testing.T) {
		tr := NewTransition(a, b)
		g := tr.DeriveGeometry()
		mid := geom.Midpoint(g.From, g.To)
		if !tr.ContainsPoint(mid) {
			t.Error("midpoint of the segment should hit")
		}
		// Perpendicular offset of 2×tolerance misses.
		miss := geom.Point{X: mid.X - 2*hitPadding/math.Sqrt2, Y: mid.Y + 2*hitPadding/math.Sqrt2}
		if tr.ContainsPoint(miss) {
			t.Error("point 2×tolerance off the segment should miss")
		}
		// Beyond the endpoints the projection parameter leaves (0,1).
		if tr.ContainsPoint(geom.Point{X: 400, Y: 400}) {
			t.Error("point before the start should miss")
		}
	})

	t.Run("arc", func(t *testing.T) {
		tr := NewTransition(a, b)
		anchor := geom.Point{X: 800, Y: 650}
		tr.SetAnchorPoint(anchor)
		if !tr.ContainsPoint(anchor) {
			t.Error("the anchor lies on the arc and should hit")
		}

		g := tr.DeriveGeometry()
		// A point on the circle but on the far side, outside the arc's
		// angular span, must miss.
		farAngle := math.Atan2(anchor.Y-g.Circle.Y, anchor.X-g.Circle.X) + math.Pi
		far := geom.Point{
			X: g.Circle.X + g.Circle.R*math.Cos(farAngle),
			Y: g.Circle.Y + g.Circle.R*math.Sin(farAngle),
		}
		if tr.ContainsPoint(far) {
			t.Error("point on the circle outside the arc span should miss")
		}
		// Radially 2×tolerance off the circle misses.
		ang := math.Atan2(anchor.Y-g.Circle.Y, anchor.X-g.Circle.X)
		off := geom.Point{
			X: g.Circle.X + (g.Circle.R + 2*hitPadding) * math.Cos(ang),
			Y: g.Circle.Y + (g.Circle.R + 2*hitPadding) * math.Sin(ang),
		}
		if tr.ContainsPoint(off) {
			t.Error("point 2×tolerance off the circle should miss")
		}
	})
}

func TestTrimmedTo(t *testing.T) {
	a, b := twoNodes()

	t.Run("straight", func(t *testing.T) {
		tr := NewTransition(a, b)
		g := tr.DeriveGeometry()
		trimmed := g.TrimmedTo(ArrowTriangle.HeadGap())
		if math.Abs(geom.Dist(trimmed, g.To)-headGapTriangle) > 1e-6 {
			t.Errorf("trimmed point %.4f units from To, want %.1f", geom.Dist(trimmed, g.To), headGapTriangle)
		}
		// Tee heads leave a smaller gap.
		tee := g.TrimmedTo(ArrowTee.HeadGap())
		if geom.Dist(tee, g.To) >= geom.Dist(trimmed, g.To) {
			t.Error("tee gap should be smaller than triangle gap")
		}
	})

	t.Run("arc stays on circle", func(t *testing.T) {
		tr := NewTransition(a, b)
		tr.SetAnchorPoint(geom.Point{X: 800, Y: 650})
		g := tr.DeriveGeometry()
		trimmed := g.TrimmedTo(ArrowTriangle.HeadGap())
		d := geom.Dist(trimmed, geom.Point{X: g.Circle.X, Y: g.Circle.Y})
		if math.Abs(d-g.Circle.R) > 1e-6 {
			t.Error("trimmed point left the circle")
		}
		if geom.Dist(trimmed, g.To) > headGapTriangle+1 {
			t.Errorf("trimmed point %.2f units from To along chord, want about %.1f", geom.Dist(trimmed, g.To), headGapTriangle)
		}
	})
}

func TestSelfTransitionSnap(t *testing.T) {
	n := &Node{X: 100, Y: 100, Shape: ShapeDot}
	s := NewSelfTransition(n, 47*math.Pi/180)

	// A point at 92° from the node center snaps the anchor to 90°.
	a := 92 * math.Pi / 180
	s.SetAnchorPoint(geom.Point{X: 100 + 50*math.Cos(a), Y: 100 + 50*math.Sin(a)})
	if math.Abs(s.AnchorAngle-math.Pi/2) > 1e-9 {
		t.Errorf("AnchorAngle = %.4f rad, want π/2", s.AnchorAngle)
	}

	// 60° is outside the snap tolerance and stays put.
	a = 60 * math.Pi / 180
	s.SetAnchorPoint(geom.Point{X: 100 + 50*math.Cos(a), Y: 100 + 50*math.Sin(a)})
	if math.Abs(s.AnchorAngle-a) > 1e-9 {
		t.Errorf("AnchorAngle = %.4f rad, want %.4f", s.AnchorAngle, a)
	}

	// The stored angle always lands in [-π, π].
	s.SetAnchorPoint(geom.Point{X: 40, Y: 99})
	if s.AnchorAngle < -math.Pi || s.AnchorAngle > math.Pi {
		t.Errorf("AnchorAngle = %.4f rad, outside [-π, π]", s.AnchorAngle)
	}
}

func TestSelfTransitionGeometry(t *testing.T) {
	n := &Node{X: 100, Y: 100, Shape: ShapeDot}
	s := NewSelfTransition(n, 0)

	g := s.DeriveGeometry()
	if g.Kind != Arc {
		t.Fatalf("kind = %v, want Arc", g.Kind)
	}
	wantCenter := geom.Point{X: 100 + 1.5*NodeRadius, Y: 100}
	if geom.Dist(geom.Point{X: g.Circle.X, Y: g.Circle.Y}, wantCenter) > 1e-9 {
		t.Errorf("loop center (%.2f, %.2f), want (%.2f, %.2f)", g.Circle.X, g.Circle.Y, wantCenter.X, wantCenter.Y)
	}
	if math.Abs(g.Circle.R-0.75*NodeRadius) > 1e-9 {
		t.Errorf("loop radius %.2f, want %.2f", g.Circle.R, 0.75*NodeRadius)
	}
	if math.Abs((g.EndAngle-g.StartAngle)-1.6*math.Pi) > 1e-9 {
		t.Errorf("arc span %.4f rad, want 1.6π", g.EndAngle-g.StartAngle)
	}

	// Hit anywhere on the loop circle, no angular bound.
	for _, a := range []float64{0, math.Pi / 3, math.Pi, -math.Pi / 2} {
		p := geom.Point{
			X: g.Circle.X + g.Circle.R*math.Cos(a),
			Y: g.Circle.Y + g.Circle.R*math.Sin(a),
		}
		if !s.ContainsPoint(p) {
			t.Errorf("point at angle %.2f on the loop should hit", a)
		}
	}
	if s.ContainsPoint(geom.Point{X: g.Circle.X, Y: g.Circle.Y}) {
		t.Error("loop center should miss")
	}
}

func TestEntryArrow(t *testing.T) {
	n := &Node{X: 100, Y: 100, Shape: ShapeDot}
	e := NewEntryArrow(n, geom.Point{X: 20, Y: 100})

	// The Y offset was within tolerance of zero and snapped; the arrow
	// now aligns through the node center.
	if e.DeltaY != 0 {
		t.Errorf("DeltaY = %.2f, want snapped 0", e.DeltaY)
	}
	if e.DeltaX != -80 {
		t.Errorf("DeltaX = %.2f, want -80", e.DeltaX)
	}

	g := e.DeriveGeometry()
	if g.Kind != Straight {
		t.Fatalf("kind = %v, want Straight", g.Kind)
	}
	if geom.Dist(g.From, geom.Point{X: 20, Y: 100}) > 1e-9 {
		t.Errorf("From = (%.2f, %.2f), want (20, 100)", g.From.X, g.From.Y)
	}
	if geom.Dist(g.To, geom.Point{X: 100 - NodeRadius, Y: 100}) > 1e-9 {
		t.Errorf("To = (%.2f, %.2f), want on the boundary at (70, 100)", g.To.X, g.To.Y)
	}

	if !e.ContainsPoint(geom.Point{X: 45, Y: 101}) {
		t.Error("point on the segment should hit")
	}
	if e.ContainsPoint(geom.Point{X: 45, Y: 120}) {
		t.Error("point far off the segment should miss")
	}

	// Axes snap independently.
	e.SetAnchorPoint(geom.Point{X: 97, Y: 40})
	if e.DeltaX != 0 {
		t.Errorf("DeltaX = %.2f, want snapped 0", e.DeltaX)
	}
	if e.DeltaY != -60 {
		t.Errorf("DeltaY = %.2f, want -60", e.DeltaY)
	}
}

func TestCurvedConnectionRefinesOntoPolygon(t *testing.T) {
	a := &Node{ID: "a", X: 500, Y: 500, Shape: ShapeSquare}
	b := &Node{ID: "b", X: 1000, Y: 1000, Shape: ShapeDot}
	tr := NewTransition(a, b)
	tr.SetAnchorPoint(geom.Point{X: 800, Y: 650})

	g := tr.DeriveGeometry()
	if g.Kind != Arc {
		t.Fatalf("kind = %v, want Arc", g.Kind)
	}
	// The start point must lie on the square's outline, not the
	// circumcircle approximation.
	refined := geom.ClosestPointOnPolygon(g.From, a.Vertices())
	if geom.Dist(g.From, refined) > 1e-6 {
		t.Errorf("start point (%.2f, %.2f) not on the square outline", g.From.X, g.From.Y)
	}
}
