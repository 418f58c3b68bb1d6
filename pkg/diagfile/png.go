// Native PNG rendering for diagram documents. Mirrors the SVG output
// using Go's image packages, with supersampled drawing for smooth
// strokes.

package diagfile

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"fsmdraw/pkg/diagram"
	"fsmdraw/pkg/geom"
)

// PNGOptions configures PNG rendering.
type PNGOptions struct {
	Width    int
	Height   int
	Padding  int
	FontSize int
	Title    string
}

// DefaultPNGOptions returns sensible defaults for PNG rendering.
func DefaultPNGOptions() PNGOptions {
	return PNGOptions{
		Width:    800,
		Height:   600,
		Padding:  40,
		FontSize: 14,
	}
}

var (
	pngWhite = color.RGBA{255, 255, 255, 255}
	pngBlack = color.RGBA{51, 51, 51, 255} // #333

	// Named colors accepted in entity color fields.
	pngPalette = map[string]color.RGBA{
		"black":  pngBlack,
		"red":    {198, 40, 40, 255},
		"green":  {46, 125, 50, 255},
		"blue":   {21, 101, 192, 255},
		"orange": {230, 81, 0, 255},
		"purple": {106, 27, 154, 255},
	}
)

func strokeColor(name string) color.RGBA {
	if c, ok := pngPalette[name]; ok {
		return c
	}
	return pngBlack
}

// renderContext holds the image, world→pixel transform and stroke
// parameters shared by the drawing helpers.
type renderContext struct {
	img       *image.RGBA
	scale     float64 // world units → pixels
	offsetX   float64
	offsetY   float64
	lineWidth float64
	face      font.Face
}

func (ctx *renderContext) toPixel(p geom.Point) (float64, float64) {
	return p.X*ctx.scale + ctx.offsetX, p.Y*ctx.scale + ctx.offsetY
}

// RenderPNG renders a diagram to PNG. Draws at 4x size and downsamples
// for smoother output.
func RenderPNG(d *diagram.Diagram, w io.Writer, opts PNGOptions) error {
	if opts.Width == 0 {
		opts.Width = 800
	}
	if opts.Height == 0 {
		opts.Height = 600
	}
	if opts.Padding == 0 {
		opts.Padding = 40
	}
	if opts.FontSize == 0 {
		opts.FontSize = 14
	}

	super := 4
	large := renderInternal(d, opts, super)

	final := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.CatmullRom.Scale(final, final.Bounds(), large, large.Bounds(), draw.Over, nil)
	return png.Encode(w, final)
}

func renderInternal(d *diagram.Diagram, opts PNGOptions, super int) *image.RGBA {
	width := opts.Width * super
	height := opts.Height * super
	padding := float64(opts.Padding * super)

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, pngWhite)
		}
	}

	minX, minY, maxX, maxY := bounds(d)
	titleSpace := 0.0
	if opts.Title != "" {
		titleSpace = 30 * float64(super)
	}
	availW := float64(width) - 2*padding
	availH := float64(height) - 2*padding - titleSpace
	fit := math.Min(availW/(maxX-minX), availH/(maxY-minY))

	ctx := &renderContext{
		img:       img,
		scale:     fit,
		offsetX:   padding + (availW-(maxX-minX)*fit)/2 - minX*fit,
		offsetY:   padding + titleSpace + (availH-(maxY-minY)*fit)/2 - minY*fit,
		lineWidth: 2 * float64(super),
		face:      newFace(float64(opts.FontSize * super)),
	}

	if opts.Title != "" {
		drawTextCentered(ctx, float64(width)/2, 20*float64(super), opts.Title, pngBlack)
	}

	for _, l := range d.Links {
		drawLinkPNG(ctx, l)
	}
	for _, n := range d.Nodes {
		drawNodePNG(ctx, n)
	}
	return img
}

func newFace(size float64) font.Face {
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		panic(err) // embedded font always parses
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		panic(err)
	}
	return face
}

func drawNodePNG(ctx *renderContext, n *diagram.Node) {
	c := strokeColor(n.Color)
	if n.Shape == diagram.ShapeDot {
		drawCircleOutline(ctx, n.Center(), diagram.NodeRadius, c)
		if n.Accept {
			drawCircleOutline(ctx, n.Center(), diagram.NodeRadius-5, c)
		}
	} else {
		verts := n.Vertices()
		drawPolygonOutline(ctx, verts, c)
		if n.Accept {
			inner := make([]geom.Point, len(verts))
			for i, v := range verts {
				inner[i] = geom.Point{
					X: n.X + (v.X-n.X)*(diagram.NodeRadius-5)/diagram.NodeRadius,
					Y: n.Y + (v.Y-n.Y)*(diagram.NodeRadius-5)/diagram.NodeRadius,
				}
			}
			drawPolygonOutline(ctx, inner, c)
		}
	}
	if n.Text != "" {
		x, y := ctx.toPixel(n.Center())
		drawTextCentered(ctx, x, y, n.Text, c)
	}
}

func drawLinkPNG(ctx *renderContext, l diagram.Link) {
	c := pngBlack
	arrow := diagram.ArrowTriangle
	switch l := l.(type) {
	case *diagram.Transition:
		c = strokeColor(l.Color)
		arrow = l.Arrow
	case *diagram.SelfTransition:
		c = strokeColor(l.Color)
		arrow = l.Arrow
	}

	g := l.DeriveGeometry()
	end := g.TrimmedTo(arrow.HeadGap())

	if g.Kind == diagram.Straight {
		x1, y1 := ctx.toPixel(g.From)
		x2, y2 := ctx.toPixel(end)
		drawLine(ctx, x1, y1, x2, y2, c)
	} else {
		drawArcStroke(ctx, g, arrow.HeadGap(), c)
	}
	drawHead(ctx, g, arrow, c)

	if l.Label() != "" {
		at := pngLabelPoint(l, g)
		x, y := ctx.toPixel(at)
		drawTextCentered(ctx, x, y, l.Label(), c)
	}
}

func pngLabelPoint(l diagram.Link, g diagram.LinkGeometry) geom.Point {
	switch l := l.(type) {
	case *diagram.SelfTransition:
		c := l.AnchorPoint()
		return geom.Point{
			X: c.X + (g.Circle.R+12)*math.Cos(l.AnchorAngle),
			Y: c.Y + (g.Circle.R+12)*math.Sin(l.AnchorAngle),
		}
	case *diagram.Transition:
		if g.Kind == diagram.Arc {
			a := l.AnchorPoint()
			ang := math.Atan2(a.Y-g.Circle.Y, a.X-g.Circle.X)
			return geom.Point{
				X: g.Circle.X + (g.Circle.R+12)*math.Cos(ang),
				Y: g.Circle.Y + (g.Circle.R+12)*math.Sin(ang),
			}
		}
	}
	at := geom.Midpoint(g.From, g.To)
	at.Y -= 10
	return at
}

// drawArcStroke samples the derived arc from its start angle to the
// trimmed end, in the traversal direction.
func drawArcStroke(ctx *renderContext, g diagram.LinkGeometry, gap float64, c color.RGBA) {
	span := math.Mod(g.EndAngle-g.StartAngle, 2*math.Pi)
	if g.Clockwise {
		span = -span
	}
	if span < 0 {
		span += 2 * math.Pi
	}
	span -= gap / g.Circle.R

	steps := int(span*g.Circle.R*ctx.scale/3) + 8
	var prevX, prevY float64
	for i := 0; i <= steps; i++ {
		da := span * float64(i) / float64(steps)
		if g.Clockwise {
			da = -da
		}
		a := g.StartAngle + da
		x, y := ctx.toPixel(geom.Point{
			X: g.Circle.X + g.Circle.R*math.Cos(a),
			Y: g.Circle.Y + g.Circle.R*math.Sin(a),
		})
		if i > 0 {
			drawLine(ctx, prevX, prevY, x, y, c)
		}
		prevX, prevY = x, y
	}
}

func drawHead(ctx *renderContext, g diagram.LinkGeometry, arrow diagram.ArrowKind, c color.RGBA) {
	dx, dy := endTangent(g)
	x, y := ctx.toPixel(g.To)
	s := ctx.scale

	if arrow == diagram.ArrowTee {
		drawLine(ctx, x-6*s*dy, y+6*s*dx, x+6*s*dy, y-6*s*dx, c)
		return
	}
	ax1 := x - (8*dx-5*dy)*s
	ay1 := y - (8*dy+5*dx)*s
	ax2 := x - (8*dx+5*dy)*s
	ay2 := y - (8*dy-5*dx)*s
	for t := 0.0; t <= 1.0; t += 0.05 {
		drawLine(ctx, x, y, ax1+(ax2-ax1)*t, ay1+(ay2-ay1)*t, c)
	}
}

func drawCircleOutline(ctx *renderContext, center geom.Point, r float64, c color.RGBA) {
	cx, cy := ctx.toPixel(center)
	rp := r * ctx.scale
	thickness := ctx.lineWidth
	for angle := 0.0; angle < 2*math.Pi; angle += 0.005 {
		x := cx + rp*math.Cos(angle)
		y := cy + rp*math.Sin(angle)
		for t := -thickness / 2; t <= thickness/2; t += 0.5 {
			ctx.img.Set(int(x+math.Cos(angle)*t), int(y+math.Sin(angle)*t), c)
		}
	}
}

func drawPolygonOutline(ctx *renderContext, verts []geom.Point, c color.RGBA) {
	for i := range verts {
		x1, y1 := ctx.toPixel(verts[i])
		x2, y2 := ctx.toPixel(verts[(i+1)%len(verts)])
		drawLine(ctx, x1, y1, x2, y2, c)
	}
}

// drawLine draws a thick line by stepping along its length and
// painting across the perpendicular.
func drawLine(ctx *renderContext, x1, y1, x2, y2 float64, c color.Color) {
	dx := x2 - x1
	dy := y2 - y1
	steps := math.Max(math.Abs(dx), math.Abs(dy))
	if steps < 1 {
		steps = 1
	}
	dist := math.Hypot(dx, dy)
	halfThick := ctx.lineWidth / 2
	if dist < 1 {
		for ty := -halfThick; ty <= halfThick; ty++ {
			for tx := -halfThick; tx <= halfThick; tx++ {
				ctx.img.Set(int(x1+tx), int(y1+ty), c)
			}
		}
		return
	}
	perpX := -dy / dist
	perpY := dx / dist
	for i := 0.0; i <= steps; i++ {
		t := i / steps
		cx := x1 + dx*t
		cy := y1 + dy*t
		for offset := -halfThick; offset <= halfThick; offset += 0.5 {
			ctx.img.Set(int(cx+perpX*offset), int(cy+perpY*offset), c)
		}
	}
}

func drawTextCentered(ctx *renderContext, x, y float64, text string, c color.Color) {
	width := font.MeasureString(ctx.face, text).Ceil()
	ascent := ctx.face.Metrics().Ascent.Ceil()
	d := &font.Drawer{
		Dst:  ctx.img,
		Src:  image.NewUniform(c),
		Face: ctx.face,
		Dot: fixed.Point26_6{
			X: fixed.I(int(x) - width/2),
			Y: fixed.I(int(y) + int(float64(ascent)*0.35)),
		},
	}
	d.DrawString(text)
}
