package geom

import (
	"math"
	"testing"
)

func TestCircleThroughPoints(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c Point
		wantX   float64
		wantY   float64
		wantR   float64
		ok      bool
	}{
		{
			name: "unit circle cardinal points",
			a:    Point{1, 0}, b: Point{0, 1}, c: Point{-1, 0},
			wantX: 0, wantY: 0, wantR: 1, ok: true,
		},
		{
			name: "offset circle",
			a:    Point{110, 50}, b: Point{100, 60}, c: Point{90, 50},
			wantX: 100, wantY: 50, wantR: 10, ok: true,
		},
		{
			name: "collinear points",
			a:    Point{0, 0}, b: Point{5, 5}, c: Point{10, 10},
			ok: false,
		},
		{
			name: "coincident points",
			a:    Point{3, 3}, b: Point{3, 3}, c: Point{3, 3},
			ok: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CircleThroughPoints(tt.a, tt.b, tt.c)
			if ok != tt.ok {
				t.Fatalf("ok=%v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if math.Abs(got.X-tt.wantX) > 1e-6 || math.Abs(got.Y-tt.wantY) > 1e-6 {
				t.Errorf("center=(%.4f, %.4f), want (%.4f, %.4f)", got.X, got.Y, tt.wantX, tt.wantY)
			}
			if math.Abs(got.R-tt.wantR) > 1e-6 {
				t.Errorf("radius=%.4f, want %.4f", got.R, tt.wantR)
			}
			// All three inputs must sit on the result.
			for _, p := range []Point{tt.a, tt.b, tt.c} {
				d := Dist(Point{got.X, got.Y}, p)
				if math.Abs(d-got.R) > 1e-6 {
					t.Errorf("point (%.1f, %.1f) at distance %.4f from center, radius %.4f", p.X, p.Y, d, got.R)
				}
			}
		})
	}
}

func TestClosestPointOnSegment(t *testing.T) {
	a := Point{0, 0}
	b := Point{10, 0}

	tests := []struct {
		name string
		p    Point
		want Point
	}{
		{"projects onto interior", Point{5, 3}, Point{5, 0}},
		{"clamps before start", Point{-4, 2}, Point{0, 0}},
		{"clamps past end", Point{15, -2}, Point{10, 0}},
		{"on the segment", Point{7, 0}, Point{7, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClosestPointOnSegment(tt.p, a, b)
			if Dist(got, tt.want) > 1e-9 {
				t.Errorf("got (%.4f, %.4f), want (%.4f, %.4f)", got.X, got.Y, tt.want.X, tt.want.Y)
			}
		})
	}

	// Degenerate segment collapses to its endpoint.
	got := ClosestPointOnSegment(Point{3, 4}, a, a)
	if Dist(got, a) > 1e-9 {
		t.Errorf("degenerate segment: got (%.4f, %.4f), want (0, 0)", got.X, got.Y)
	}
}

func TestClosestPointOnPolygon(t *testing.T) {
	square := []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}

	// Probe to the right of the square hits the right edge.
	got := ClosestPointOnPolygon(Point{15, 5}, square)
	want := Point{10, 5}
	if Dist(got, want) > 1e-9 {
		t.Errorf("got (%.4f, %.4f), want (%.4f, %.4f)", got.X, got.Y, want.X, want.Y)
	}

	// Probe beyond a corner snaps to the corner, including across the
	// implied closing edge.
	got = ClosestPointOnPolygon(Point{-3, 14}, square)
	want = Point{0, 10}
	if Dist(got, want) > 1e-9 {
		t.Errorf("corner probe: got (%.4f, %.4f), want (%.4f, %.4f)", got.X, got.Y, want.X, want.Y)
	}
}

func TestPointInPolygon(t *testing.T) {
	pentagon := make([]Point, 5)
	for i := range pentagon {
		a := 2 * math.Pi * float64(i) / 5
		pentagon[i] = Point{100 + 30*math.Cos(a), 100 + 30*math.Sin(a)}
	}

	if !PointInPolygon(Point{100, 100}, pentagon) {
		t.Error("center should be inside")
	}
	if PointInPolygon(Point{140, 100}, pentagon) {
		t.Error("point beyond circumradius should be outside")
	}
	if PointInPolygon(Point{100, 200}, pentagon) {
		t.Error("far point should be outside")
	}
}

func TestPointInTriangle(t *testing.T) {
	a := Point{0, 0}
	b := Point{10, 0}
	c := Point{5, 10}

	if !PointInTriangle(Point{5, 3}, a, b, c) {
		t.Error("interior point should be inside")
	}
	if PointInTriangle(Point{5, -1}, a, b, c) {
		t.Error("point below base should be outside")
	}
	// Winding order must not matter.
	if !PointInTriangle(Point{5, 3}, c, b, a) {
		t.Error("reversed winding should not change containment")
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi / 2, math.Pi / 2},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
		{5 * math.Pi, math.Pi},
	}
	for _, tt := range tests {
		got := NormalizeAngle(tt.in)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("NormalizeAngle(%.4f) = %.4f, want %.4f", tt.in, got, tt.want)
		}
	}
}

func TestAngleOnArc(t *testing.T) {
	tests := []struct {
		name      string
		angle     float64
		start     float64
		end       float64
		clockwise bool
		want      bool
	}{
		{"inside ccw quarter", math.Pi / 4, 0, math.Pi / 2, false, true},
		{"outside ccw quarter", math.Pi, 0, math.Pi / 2, false, false},
		{"inside cw quarter", math.Pi / 4, math.Pi / 2, 0, true, true},
		{"wraps across -pi", -math.Pi + 0.1, 3, -3, false, true},
		{"complement not hit", 0, 3, -3, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AngleOnArc(tt.angle, tt.start, tt.end, tt.clockwise)
			if got != tt.want {
				t.Errorf("AngleOnArc(%.3f, %.3f, %.3f, cw=%v) = %v, want %v",
					tt.angle, tt.start, tt.end, tt.clockwise, got, tt.want)
			}
		})
	}
}
