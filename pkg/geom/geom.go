// Geometric primitives for state-diagram rendering and hit-testing.
// Everything operates in world coordinates; callers own any screen mapping.

package geom

import "math"

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Circle is a center plus radius.
type Circle struct {
	X, Y, R float64
}

// Dist returns the Euclidean distance between two points.
func Dist(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Point) Point {
	return Point{(a.X + b.X) / 2, (a.Y + b.Y) / 2}
}

// CircleThroughPoints returns the circle passing through a, b and c.
// The second return value is false when the points are collinear and no
// such circle exists; callers must not use the circle in that case.
func CircleThroughPoints(a, b, c Point) (Circle, bool) {
	// Perpendicular bisector intersection, solved via determinants.
	d := 2 * (a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y))
	if math.Abs(d) < 1e-9 {
		return Circle{}, false
	}
	aSq := a.X*a.X + a.Y*a.Y
	bSq := b.X*b.X + b.Y*b.Y
	cSq := c.X*c.X + c.Y*c.Y
	cx := (aSq*(b.Y-c.Y) + bSq*(c.Y-a.Y) + cSq*(a.Y-b.Y)) / d
	cy := (aSq*(c.X-b.X) + bSq*(a.X-c.X) + cSq*(b.X-a.X)) / d
	center := Point{cx, cy}
	return Circle{cx, cy, Dist(center, a)}, true
}

// ClosestPointOnSegment returns the point on segment ab closest to p.
func ClosestPointOnSegment(p, a, b Point) Point {
	dx := b.X - a.X
	dy := b.Y - a.Y
	lenSq := dx*dx + dy*dy
	if lenSq < 1e-12 {
		return a
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return Point{a.X + t*dx, a.Y + t*dy}
}

// ClosestPointOnPolygon returns the point on the polygon's boundary
// closest to p. The polygon is given as an ordered vertex list; the
// closing edge from the last vertex back to the first is implied.
func ClosestPointOnPolygon(p Point, verts []Point) Point {
	if len(verts) == 0 {
		return p
	}
	best := verts[0]
	bestDist := math.MaxFloat64
	for i := range verts {
		a := verts[i]
		b := verts[(i+1)%len(verts)]
		cand := ClosestPointOnSegment(p, a, b)
		if d := Dist(p, cand); d < bestDist {
			bestDist = d
			best = cand
		}
	}
	return best
}

// PointInPolygon reports whether p lies inside the polygon, using the
// even-odd ray casting rule.
func PointInPolygon(p Point, verts []Point) bool {
	inside := false
	n := len(verts)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		vi, vj := verts[i], verts[j]
		if (vi.Y > p.Y) != (vj.Y > p.Y) &&
			p.X < (vj.X-vi.X)*(p.Y-vi.Y)/(vj.Y-vi.Y)+vi.X {
			inside = !inside
		}
	}
	return inside
}

// PointInTriangle reports whether p lies inside triangle abc, via the
// half-plane sign test.
func PointInTriangle(p, a, b, c Point) bool {
	sign := func(p1, p2, p3 Point) float64 {
		return (p1.X-p3.X)*(p2.Y-p3.Y) - (p2.X-p3.X)*(p1.Y-p3.Y)
	}
	d1 := sign(p, a, b)
	d2 := sign(p, b, c)
	d3 := sign(p, c, a)
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

// NormalizeAngle wraps an angle into [-π, π].
func NormalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// AngleOnArc reports whether angle lies within the arc that runs from
// start to end in the given direction. All angles may be outside
// [-π, π]; comparison is wraparound-aware.
func AngleOnArc(angle, start, end float64, clockwise bool) bool {
	if clockwise {
		start, end = end, start
	}
	// Rotate so the arc starts at zero, then check the swept extent.
	span := math.Mod(end-start, 2*math.Pi)
	if span < 0 {
		span += 2 * math.Pi
	}
	off := math.Mod(angle-start, 2*math.Pi)
	if off < 0 {
		off += 2 * math.Pi
	}
	return off <= span
}
