package diagfile

import (
	"fmt"
	"html"
	"math"
	"strings"

	"fsmdraw/pkg/diagram"
	"fsmdraw/pkg/geom"
)

// SVGOptions controls SVG export.
type SVGOptions struct {
	Padding   float64 // margin around the diagram's bounding box
	FontSize  int     // node and link label size
	Title     string  // optional document title
	Stroke    string  // default stroke color when an entity has none
	LineWidth float64
}

// DefaultSVGOptions returns sensible defaults.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		Padding:   50,
		FontSize:  14,
		Stroke:    "#333",
		LineWidth: 2,
	}
}

// GenerateSVG renders the diagram to an SVG document. All geometry
// comes from each link's DeriveGeometry, so the export matches what
// the editor draws and hit-tests.
func GenerateSVG(d *diagram.Diagram, opts SVGOptions) string {
	if opts.Padding == 0 {
		opts.Padding = 50
	}
	if opts.FontSize == 0 {
		opts.FontSize = 14
	}
	if opts.Stroke == "" {
		opts.Stroke = "#333"
	}
	if opts.LineWidth == 0 {
		opts.LineWidth = 2
	}

	minX, minY, maxX, maxY := bounds(d)
	minX -= opts.Padding
	minY -= opts.Padding
	maxX += opts.Padding
	maxY += opts.Padding

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f">`+"\n",
		minX, minY, maxX-minX, maxY-minY)
	if opts.Title != "" {
		fmt.Fprintf(&sb, "  <title>%s</title>\n", html.EscapeString(opts.Title))
	}

	for _, l := range d.Links {
		writeLink(&sb, l, opts)
	}
	for _, n := range d.Nodes {
		writeNode(&sb, n, opts)
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

func bounds(d *diagram.Diagram) (minX, minY, maxX, maxY float64) {
	if len(d.Nodes) == 0 {
		return 0, 0, 100, 100
	}
	minX, minY = math.MaxFloat64, math.MaxFloat64
	maxX, maxY = -math.MaxFloat64, -math.MaxFloat64
	grow := func(p geom.Point, pad float64) {
		minX = math.Min(minX, p.X-pad)
		minY = math.Min(minY, p.Y-pad)
		maxX = math.Max(maxX, p.X+pad)
		maxY = math.Max(maxY, p.Y+pad)
	}
	for _, n := range d.Nodes {
		grow(n.Center(), diagram.NodeRadius)
	}
	for _, l := range d.Links {
		grow(l.AnchorPoint(), diagram.NodeRadius)
	}
	return
}

func writeNode(sb *strings.Builder, n *diagram.Node, opts SVGOptions) {
	stroke := n.Color
	if stroke == "" {
		stroke = opts.Stroke
	}
	if n.Shape == diagram.ShapeDot {
		fmt.Fprintf(sb, `  <circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="%s" stroke-width="%.1f"/>`+"\n",
			n.X, n.Y, diagram.NodeRadius, stroke, opts.LineWidth)
		if n.Accept {
			fmt.Fprintf(sb, `  <circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="%s" stroke-width="%.1f"/>`+"\n",
				n.X, n.Y, diagram.NodeRadius-5, stroke, opts.LineWidth)
		}
	} else {
		writePolygon(sb, n.Vertices(), stroke, opts.LineWidth)
		if n.Accept {
			// Inner outline at 5/6 scale marks accepting states.
			inner := make([]geom.Point, 0, 6)
			for _, v := range n.Vertices() {
				inner = append(inner, geom.Point{
					X: n.X + (v.X-n.X)*(diagram.NodeRadius-5)/diagram.NodeRadius,
					Y: n.Y + (v.Y-n.Y)*(diagram.NodeRadius-5)/diagram.NodeRadius,
				})
			}
			writePolygon(sb, inner, stroke, opts.LineWidth)
		}
	}
	if n.Text != "" {
		fmt.Fprintf(sb, `  <text x="%.1f" y="%.1f" font-size="%d" text-anchor="middle" dominant-baseline="middle" fill="%s">%s</text>`+"\n",
			n.X, n.Y, opts.FontSize, stroke, html.EscapeString(n.Text))
	}
}

func writePolygon(sb *strings.Builder, verts []geom.Point, stroke string, width float64) {
	pts := make([]string, len(verts))
	for i, v := range verts {
		pts[i] = fmt.Sprintf("%.1f,%.1f", v.X, v.Y)
	}
	fmt.Fprintf(sb, `  <polygon points="%s" fill="none" stroke="%s" stroke-width="%.1f"/>`+"\n",
		strings.Join(pts, " "), stroke, width)
}

func writeLink(sb *strings.Builder, l diagram.Link, opts SVGOptions) {
	stroke := opts.Stroke
	arrow := diagram.ArrowTriangle
	switch l := l.(type) {
	case *diagram.Transition:
		if l.Color != "" {
			stroke = l.Color
		}
		arrow = l.Arrow
	case *diagram.SelfTransition:
		if l.Color != "" {
			stroke = l.Color
		}
		arrow = l.Arrow
	}

	g := l.DeriveGeometry()
	end := g.TrimmedTo(arrow.HeadGap())

	if g.Kind == diagram.Straight {
		fmt.Fprintf(sb, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.1f"/>`+"\n",
			g.From.X, g.From.Y, end.X, end.Y, stroke, opts.LineWidth)
	} else {
		// Sweep flag 1 draws with increasing angle, which is the
		// non-clockwise traversal in this geometry's convention.
		sweep := 1
		span := math.Mod(g.EndAngle-g.StartAngle, 2*math.Pi)
		if g.Clockwise {
			sweep = 0
			span = -span
		}
		if span < 0 {
			span += 2 * math.Pi
		}
		large := 0
		if span > math.Pi {
			large = 1
		}
		fmt.Fprintf(sb, `  <path d="M %.1f %.1f A %.1f %.1f 0 %d %d %.1f %.1f" fill="none" stroke="%s" stroke-width="%.1f"/>`+"\n",
			g.From.X, g.From.Y, g.Circle.R, g.Circle.R, large, sweep, end.X, end.Y, stroke, opts.LineWidth)
	}

	writeArrowHead(sb, g, arrow, stroke, opts)
	writeLinkLabel(sb, l, g, stroke, opts)
}

// endTangent returns the unit travel direction at the link's tip.
func endTangent(g diagram.LinkGeometry) (float64, float64) {
	if g.Kind == diagram.Straight {
		dx := g.To.X - g.From.X
		dy := g.To.Y - g.From.Y
		length := math.Hypot(dx, dy)
		if length < 1e-9 {
			return 1, 0
		}
		return dx / length, dy / length
	}
	if g.Clockwise {
		return math.Sin(g.EndAngle), -math.Cos(g.EndAngle)
	}
	return -math.Sin(g.EndAngle), math.Cos(g.EndAngle)
}

func writeArrowHead(sb *strings.Builder, g diagram.LinkGeometry, arrow diagram.ArrowKind, stroke string, opts SVGOptions) {
	dx, dy := endTangent(g)
	x, y := g.To.X, g.To.Y
	if arrow == diagram.ArrowTee {
		fmt.Fprintf(sb, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.1f"/>`+"\n",
			x-6*dy, y+6*dx, x+6*dy, y-6*dx, stroke, opts.LineWidth)
		return
	}
	fmt.Fprintf(sb, `  <polygon points="%.1f,%.1f %.1f,%.1f %.1f,%.1f" fill="%s"/>`+"\n",
		x, y,
		x-8*dx+5*dy, y-8*dy-5*dx,
		x-8*dx-5*dy, y-8*dy+5*dx,
		stroke)
}

func writeLinkLabel(sb *strings.Builder, l diagram.Link, g diagram.LinkGeometry, stroke string, opts SVGOptions) {
	text := l.Label()
	if text == "" {
		return
	}
	var at geom.Point
	switch l := l.(type) {
	case *diagram.Transition:
		if g.Kind == diagram.Arc {
			// Radially outward from the circle at the anchor.
			a := l.AnchorPoint()
			ang := math.Atan2(a.Y-g.Circle.Y, a.X-g.Circle.X)
			at = geom.Point{
				X: g.Circle.X + (g.Circle.R+12)*math.Cos(ang),
				Y: g.Circle.Y + (g.Circle.R+12)*math.Sin(ang),
			}
		} else {
			// Perpendicular offset; the recorded bias picks the side
			// the anchor was last nudged from.
			mid := geom.Midpoint(g.From, g.To)
			dx, dy := endTangent(g)
			side := 1.0
			if l.StraightBias != 0 {
				side = -1.0
			}
			at = geom.Point{X: mid.X - side*12*dy, Y: mid.Y + side*12*dx}
		}
	case *diagram.SelfTransition:
		c := l.AnchorPoint()
		at = geom.Point{
			X: c.X + (0.75*diagram.NodeRadius+12)*math.Cos(l.AnchorAngle),
			Y: c.Y + (0.75*diagram.NodeRadius+12)*math.Sin(l.AnchorAngle),
		}
	default:
		at = geom.Midpoint(g.From, g.To)
		at.Y -= 8
	}
	fmt.Fprintf(sb, `  <text x="%.1f" y="%.1f" font-size="%d" text-anchor="middle" dominant-baseline="middle" fill="%s">%s</text>`+"\n",
		at.X, at.Y, opts.FontSize, stroke, html.EscapeString(text))
}
