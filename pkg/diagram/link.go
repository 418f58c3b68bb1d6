package diagram

import (
	"math"

	"fsmdraw/pkg/geom"
)

// Tolerances in world units. hitPadding is the stroke hit-test slack;
// snapPadding is the distance within which anchors snap to straight
// lines and entry offsets snap to the node center.
const (
	hitPadding  = 6.0
	snapPadding = 6.0
)

// ArrowKind selects the arrow head drawn at a link's destination.
type ArrowKind int

const (
	ArrowTriangle ArrowKind = iota
	ArrowTee
)

// Head gaps: how far short of the connection point the stroke stops so
// the arrow head is not overdrawn.
const (
	headGapTriangle = 8.0
	headGapTee      = 4.0
)

// HeadGap returns the stroke-shortening distance for an arrow kind.
func (a ArrowKind) HeadGap() float64 {
	if a == ArrowTee {
		return headGapTee
	}
	return headGapTriangle
}

// GeometryKind distinguishes straight links from circular arcs.
type GeometryKind int

const (
	Straight GeometryKind = iota
	Arc
)

// LinkGeometry is the concrete drawable/hit-testable form of a link,
// re-derived from live node positions on every use. For Arc kind the
// path runs from StartAngle to EndAngle on Circle; Clockwise means the
// angle decreases along the path.
type LinkGeometry struct {
	Kind       GeometryKind
	From, To   geom.Point
	Circle     geom.Circle
	StartAngle float64
	EndAngle   float64
	Clockwise  bool
}

// TrimmedTo returns the point gap world units before To along the path,
// used to stop the stroke short of the arrow head.
func (g LinkGeometry) TrimmedTo(gap float64) geom.Point {
	if g.Kind == Straight {
		length := geom.Dist(g.From, g.To)
		if length < 1e-9 || gap >= length {
			return g.From
		}
		t := (length - gap) / length
		return geom.Point{
			X: g.From.X + (g.To.X-g.From.X)*t,
			Y: g.From.Y + (g.To.Y-g.From.Y)*t,
		}
	}
	da := gap / g.Circle.R
	a := g.EndAngle
	if g.Clockwise {
		a += da
	} else {
		a -= da
	}
	return geom.Point{
		X: g.Circle.X + g.Circle.R*math.Cos(a),
		Y: g.Circle.Y + g.Circle.R*math.Sin(a),
	}
}

// Labeled is implemented by every entity carrying editable text.
type Labeled interface {
	Label() string
	SetLabel(string)
}

// Entity is anything selectable on the canvas.
type Entity interface {
	Labeled
	ContainsPoint(p geom.Point) bool
}

// Link is a directed edge on the canvas: a bound transition, a
// self-transition, or an entry arrow.
type Link interface {
	Entity
	DeriveGeometry() LinkGeometry
	SetAnchorPoint(p geom.Point)
	AnchorPoint() geom.Point
	Involves(n *Node) bool
}

// Transition is a directed edge between two nodes. Curvature is stored
// relative to the live endpoint positions: ParallelPart is fractional
// progress along the A→B baseline, PerpendicularPart an offset in world
// units. Zero PerpendicularPart means a straight segment; anything else
// a circular arc through both endpoints and the derived anchor.
type Transition struct {
	From, To          *Node
	Text              string
	Arrow             ArrowKind
	Color             string
	ParallelPart      float64
	PerpendicularPart float64

	// StraightBias records which side the anchor was nudged from when
	// it last snapped to straight; it only rotates the label on a
	// straight line, never the curvature.
	StraightBias float64
}

// NewTransition returns a straight transition with the anchor at the
// baseline midpoint.
func NewTransition(from, to *Node) *Transition {
	return &Transition{From: from, To: to, ParallelPart: 0.5}
}

// AnchorPoint returns the absolute curvature control point implied by
// the relative parts and the current endpoint positions.
func (t *Transition) AnchorPoint() geom.Point {
	a := t.From.Center()
	b := t.To.Center()
	dx := b.X - a.X
	dy := b.Y - a.Y
	scale := math.Hypot(dx, dy)
	if scale < 1e-9 {
		return a
	}
	return geom.Point{
		X: a.X + dx*t.ParallelPart - dy*t.PerpendicularPart/scale,
		Y: a.Y + dy*t.ParallelPart + dx*t.PerpendicularPart/scale,
	}
}

// SetAnchorPoint projects an absolute point back into the relative
// curvature parts. A point strictly between the endpoints and within
// snapPadding of the baseline snaps to a pure straight line, recording
// which side it was nudged from in StraightBias.
func (t *Transition) SetAnchorPoint(p geom.Point) {
	a := t.From.Center()
	b := t.To.Center()
	dx := b.X - a.X
	dy := b.Y - a.Y
	scale := math.Hypot(dx, dy)
	if scale < 1e-9 {
		return
	}
	t.ParallelPart = (dx*(p.X-a.X) + dy*(p.Y-a.Y)) / (scale * scale)
	t.PerpendicularPart = (dx*(p.Y-a.Y) - dy*(p.X-a.X)) / scale
	if t.ParallelPart > 0 && t.ParallelPart < 1 && math.Abs(t.PerpendicularPart) < snapPadding {
		if t.PerpendicularPart < 0 {
			t.StraightBias = math.Pi
		} else {
			t.StraightBias = 0
		}
		t.PerpendicularPart = 0
	}
}

// DeriveGeometry computes the drawable form of the transition from the
// live endpoint positions. Rendering and hit-testing both consume this;
// neither re-derives on its own.
func (t *Transition) DeriveGeometry() LinkGeometry {
	a := t.From.Center()
	b := t.To.Center()

	if t.PerpendicularPart == 0 {
		mid := geom.Midpoint(a, b)
		return LinkGeometry{
			Kind: Straight,
			From: t.From.BoundaryPointTowards(mid),
			To:   t.To.BoundaryPointTowards(mid),
		}
	}

	anchor := t.AnchorPoint()
	circle, ok := geom.CircleThroughPoints(a, anchor, b)
	if !ok {
		// Coincident endpoints; nothing sensible to draw.
		return LinkGeometry{Kind: Straight, From: a, To: b}
	}

	clockwise := t.PerpendicularPart > 0
	side := -1.0
	if clockwise {
		side = 1.0
	}
	// Offset each endpoint's raw angle by the angular width of the node
	// radius on this circle, in the traversal direction, to approximate
	// where the outline crosses the arc.
	startAngle := math.Atan2(a.Y-circle.Y, a.X-circle.X) - side*NodeRadius/circle.R
	endAngle := math.Atan2(b.Y-circle.Y, b.X-circle.X) + side*NodeRadius/circle.R

	start := geom.Point{
		X: circle.X + circle.R*math.Cos(startAngle),
		Y: circle.Y + circle.R*math.Sin(startAngle),
	}
	end := geom.Point{
		X: circle.X + circle.R*math.Cos(endAngle),
		Y: circle.Y + circle.R*math.Sin(endAngle),
	}
	// The circle approximation is exact for dots; shaped nodes refine
	// onto the actual outline.
	if t.From.Shape != ShapeDot {
		start = geom.ClosestPointOnPolygon(start, t.From.Vertices())
	}
	if t.To.Shape != ShapeDot {
		end = geom.ClosestPointOnPolygon(end, t.To.Vertices())
	}

	return LinkGeometry{
		Kind:       Arc,
		From:       start,
		To:         end,
		Circle:     circle,
		StartAngle: startAngle,
		EndAngle:   endAngle,
		Clockwise:  clockwise,
	}
}

// ContainsPoint reports whether p hits the transition's stroke within
// the hit tolerance.
func (t *Transition) ContainsPoint(p geom.Point) bool {
	g := t.DeriveGeometry()
	if g.Kind == Arc {
		dx := p.X - g.Circle.X
		dy := p.Y - g.Circle.Y
		if math.Abs(math.Hypot(dx, dy)-g.Circle.R) >= hitPadding {
			return false
		}
		return geom.AngleOnArc(math.Atan2(dy, dx), g.StartAngle, g.EndAngle, g.Clockwise)
	}
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

// Involves reports whether the transition touches the node.
func (t *Transition) Involves(n *Node) bool {
	return t.From == n || t.To == n
}

// Label returns the transition's text.
func (t *Transition) Label() string { return t.Text }

// SetLabel replaces the transition's text.
func (t *Transition) SetLabel(s string) { t.Text = s }
