package diagram

import (
	"math"

	"fsmdraw/pkg/geom"
)

// Self-loop proportions relative to NodeRadius, and the arc span either
// side of the anchor angle. The gap left in the loop hosts the arrow.
const (
	loopCenterScale = 1.5
	loopRadiusScale = 0.75
	loopHalfSpan    = 0.8 * math.Pi
	loopAngleSnap   = 0.1 // radians within which the anchor snaps to 90° steps
)

// SelfTransition is a loop from a node back to itself. The loop circle
// sits at a fixed radial offset from the node at AnchorAngle.
type SelfTransition struct {
	Node        *Node
	AnchorAngle float64
	Text        string
	Arrow       ArrowKind
	Color       string
}

// NewSelfTransition returns a loop anchored at the given angle.
func NewSelfTransition(n *Node, angle float64) *SelfTransition {
	return &SelfTransition{Node: n, AnchorAngle: geom.NormalizeAngle(angle)}
}

// AnchorPoint returns the loop circle's center, which is what drags.
func (s *SelfTransition) AnchorPoint() geom.Point {
	return geom.Point{
		X: s.Node.X + loopCenterScale*NodeRadius*math.Cos(s.AnchorAngle),
		Y: s.Node.Y + loopCenterScale*NodeRadius*math.Sin(s.AnchorAngle),
	}
}

// SetAnchorPoint re-anchors the loop toward p, snapping to the nearest
// multiple of 90° within loopAngleSnap and wrapping into [-π, π] so the
// hit test's angle arithmetic stays well-defined.
func (s *SelfTransition) SetAnchorPoint(p geom.Point) {
	angle := math.Atan2(p.Y-s.Node.Y, p.X-s.Node.X)
	snap := math.Round(angle/(math.Pi/2)) * (math.Pi / 2)
	if math.Abs(angle-snap) < loopAngleSnap {
		angle = snap
	}
	s.AnchorAngle = geom.NormalizeAngle(angle)
}

// DeriveGeometry computes the loop's circle and arc span. The arc runs
// nearly the full circle, leaving a gap for the arrow head.
func (s *SelfTransition) DeriveGeometry() LinkGeometry {
	c := s.AnchorPoint()
	circle := geom.Circle{X: c.X, Y: c.Y, R: loopRadiusScale * NodeRadius}
	startAngle := s.AnchorAngle - loopHalfSpan
	endAngle := s.AnchorAngle + loopHalfSpan
	return LinkGeometry{
		Kind: Arc,
		From: geom.Point{
			X: circle.X + circle.R*math.Cos(startAngle),
			Y: circle.Y + circle.R*math.Sin(startAngle),
		},
		To: geom.Point{
			X: circle.X + circle.R*math.Cos(endAngle),
			Y: circle.Y + circle.R*math.Sin(endAngle),
		},
		Circle:     circle,
		StartAngle: startAngle,
		EndAngle:   endAngle,
		Clockwise:  false,
	}
}

// ContainsPoint reports whether p lies on the loop's circle within the
// hit tolerance. No angular bound: the loop spans nearly the full
// circle, so any point on it counts.
func (s *SelfTransition) ContainsPoint(p geom.Point) bool {
	g := s.DeriveGeometry()
	d := geom.Dist(p, geom.Point{X: g.Circle.X, Y: g.Circle.Y})
	return math.Abs(d-g.Circle.R) < hitPadding
}

// Involves reports whether the loop is attached to the node.
func (s *SelfTransition) Involves(n *Node) bool {
	return s.Node == n
}

// Label returns the loop's text.
func (s *SelfTransition) Label() string { return s.Text }

// SetLabel replaces the loop's text.
func (s *SelfTransition) SetLabel(text string) { s.Text = text }
