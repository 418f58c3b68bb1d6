package main

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"fsmdraw/pkg/diagram"
	"fsmdraw/pkg/geom"
)

var (
	styleNode     = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleNodeSel  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleNodeMul  = tcell.StyleDefault.Foreground(tcell.ColorPurple).Bold(true)
	styleLink     = tcell.StyleDefault.Foreground(tcell.ColorTeal)
	styleLinkSel  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleLabel    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleCaret    = tcell.StyleDefault.Reverse(true)
	styleRubber   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleStatus   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleMsgError = tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorNavy).Bold(true)
	styleMsgGood  = tcell.StyleDefault.Foreground(tcell.ColorGreen).Background(tcell.ColorNavy)
	styleHelp     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleWarn     = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow).Bold(true)
)

var nodeColors = map[string]tcell.Color{
	"red":    tcell.ColorRed,
	"green":  tcell.ColorGreen,
	"blue":   tcell.ColorBlue,
	"orange": tcell.ColorOrange,
	"purple": tcell.ColorPurple,
}

func (ed *Editor) draw() {
	ed.screen.Clear()
	w, h := ed.screen.Size()
	canvasH := h - 2

	for _, l := range ed.session.Diagram().Links {
		ed.drawLink(l, w, canvasH)
	}
	for _, n := range ed.session.Diagram().Nodes {
		ed.drawNode(n, w, canvasH)
	}
	ed.drawRubberBand(w, canvasH)
	ed.drawHelpBar(w, h)
	ed.drawStatusBar(w, h)
}

// plot sets a canvas cell, clipping to the canvas area.
func (ed *Editor) plot(x, y, w, canvasH int, ch rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= w || y >= canvasH {
		return
	}
	ed.screen.SetContent(x, y, ch, nil, style)
}

func (ed *Editor) plotWorld(p geom.Point, w, canvasH int, ch rune, style tcell.Style) {
	x, y := ed.cellAt(p)
	ed.plot(x, y, w, canvasH, ch, style)
}

func (ed *Editor) nodeStyle(n *diagram.Node) tcell.Style {
	if ed.session.Selected() == diagram.Entity(n) {
		return styleNodeSel
	}
	for _, m := range ed.session.MultiSelection() {
		if m == n {
			return styleNodeMul
		}
	}
	if c, ok := nodeColors[n.Color]; ok {
		return tcell.StyleDefault.Foreground(c)
	}
	return styleNode
}

func (ed *Editor) drawNode(n *diagram.Node, w, canvasH int) {
	style := ed.nodeStyle(n)

	if n.Shape == diagram.ShapeDot {
		ed.strokeCircle(n.Center(), diagram.NodeRadius, w, canvasH, style)
		if n.Accept {
			ed.strokeCircle(n.Center(), diagram.NodeRadius-8, w, canvasH, style)
		}
	} else {
		verts := n.Vertices()
		for i := range verts {
			ed.strokeSegment(verts[i], verts[(i+1)%len(verts)], w, canvasH, '·', style)
		}
		if n.Accept {
			for i := range verts {
				a := shrinkTowards(verts[i], n.Center())
				b := shrinkTowards(verts[(i+1)%len(verts)], n.Center())
				ed.strokeSegment(a, b, w, canvasH, '·', style)
			}
		}
	}

	ed.drawLabelAt(n.Center(), n.Text, n, w, canvasH)
}

func shrinkTowards(v, c geom.Point) geom.Point {
	k := (diagram.NodeRadius - 8) / diagram.NodeRadius
	return geom.Point{X: c.X + (v.X-c.X)*k, Y: c.Y + (v.Y-c.Y)*k}
}

func (ed *Editor) strokeCircle(c geom.Point, r float64, w, canvasH int, style tcell.Style) {
	for a := 0.0; a < 2*math.Pi; a += 0.05 {
		ed.plotWorld(geom.Point{X: c.X + r*math.Cos(a), Y: c.Y + r*math.Sin(a)}, w, canvasH, '·', style)
	}
}

func (ed *Editor) strokeSegment(a, b geom.Point, w, canvasH int, ch rune, style tcell.Style) {
	steps := int(geom.Dist(a, b)/(cellWidth/2)) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		ed.plotWorld(geom.Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}, w, canvasH, ch, style)
	}
}

func (ed *Editor) drawLink(l diagram.Link, w, canvasH int) {
	style := styleLink
	if ed.session.Selected() == diagram.Entity(l) {
		style = styleLinkSel
	}

	g := l.DeriveGeometry()
	if g.Kind == diagram.Straight {
		ed.strokeSegment(g.From, g.To, w, canvasH, '·', style)
	} else {
		ed.strokeArc(g, w, canvasH, style)
	}
	ed.drawHead(g, w, canvasH, style)

	at := linkLabelPoint(l, g)
	ed.drawLabelAt(at, l.Label(), l, w, canvasH)
}

func (ed *Editor) strokeArc(g diagram.LinkGeometry, w, canvasH int, style tcell.Style) {
	span := math.Mod(g.EndAngle-g.StartAngle, 2*math.Pi)
	if g.Clockwise {
		span = -span
	}
	if span < 0 {
		span += 2 * math.Pi
	}
	steps := int(span*g.Circle.R/(cellWidth/2)) + 4
	for i := 0; i <= steps; i++ {
		da := span * float64(i) / float64(steps)
		if g.Clockwise {
			da = -da
		}
		a := g.StartAngle + da
		ed.plotWorld(geom.Point{
			X: g.Circle.X + g.Circle.R*math.Cos(a),
			Y: g.Circle.Y + g.Circle.R*math.Sin(a),
		}, w, canvasH, '·', style)
	}
}

// drawHead places a direction glyph at the link tip.
func (ed *Editor) drawHead(g diagram.LinkGeometry, w, canvasH int, style tcell.Style) {
	var dx, dy float64
	if g.Kind == diagram.Straight {
		dx, dy = g.To.X-g.From.X, g.To.Y-g.From.Y
	} else if g.Clockwise {
		dx, dy = math.Sin(g.EndAngle), -math.Cos(g.EndAngle)
	} else {
		dx, dy = -math.Sin(g.EndAngle), math.Cos(g.EndAngle)
	}

	ch := '▶'
	// Cells are taller than wide, so favor the horizontal glyphs.
	if math.Abs(dy) > 2*math.Abs(dx) {
		if dy > 0 {
			ch = '▼'
		} else {
			ch = '▲'
		}
	} else if dx < 0 {
		ch = '◀'
	}
	ed.plotWorld(g.To, w, canvasH, ch, style)
}

func linkLabelPoint(l diagram.Link, g diagram.LinkGeometry) geom.Point {
	switch l := l.(type) {
	case *diagram.SelfTransition:
		c := l.AnchorPoint()
		return geom.Point{
			X: c.X + (0.75*diagram.NodeRadius+cellHeight)*math.Cos(l.AnchorAngle),
			Y: c.Y + (0.75*diagram.NodeRadius+cellHeight)*math.Sin(l.AnchorAngle),
		}
	case *diagram.Transition:
		if g.Kind == diagram.Arc {
			a := l.AnchorPoint()
			ang := math.Atan2(a.Y-g.Circle.Y, a.X-g.Circle.X)
			return geom.Point{
				X: g.Circle.X + (g.Circle.R+cellHeight/2)*math.Cos(ang),
				Y: g.Circle.Y + (g.Circle.R+cellHeight/2)*math.Sin(ang),
			}
		}
	}
	mid := geom.Midpoint(g.From, g.To)
	mid.Y -= cellHeight
	return mid
}

// drawLabelAt renders entity text centered on a world point. When the
// entity is being edited, the caret cell is highlighted in its blink
// phase (a trailing space marks an end-of-text caret).
func (ed *Editor) drawLabelAt(at geom.Point, text string, owner diagram.Entity, w, canvasH int) {
	s := ed.session
	editing := s.CanEditText() && s.Selected() == owner
	if text == "" && !editing {
		return
	}

	runes := []rune(text)
	if editing {
		runes = append(runes, ' ')
	}
	cx, cy := ed.cellAt(at)
	startX := cx - len(runes)/2

	for i, r := range runes {
		style := styleLabel
		if editing && i == s.CursorOffset() && s.CaretVisible() {
			style = styleCaret
		}
		ed.plot(startX+i, cy, w, canvasH, r, style)
	}
}

func (ed *Editor) drawRubberBand(w, canvasH int) {
	from, to, active := ed.session.RubberBand()
	if !active {
		return
	}
	x1, y1 := ed.cellAt(from)
	x2, y2 := ed.cellAt(to)
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for x := x1; x <= x2; x++ {
		ed.plot(x, y1, w, canvasH, '─', styleRubber)
		ed.plot(x, y2, w, canvasH, '─', styleRubber)
	}
	for y := y1; y <= y2; y++ {
		ed.plot(x1, y, w, canvasH, '│', styleRubber)
		ed.plot(x2, y, w, canvasH, '│', styleRubber)
	}
}

func (ed *Editor) drawHelpBar(w, h int) {
	help := "dbl-click: add/edit  t: link  e: entry  a: accept  c: color  1-5: shape  del: delete  ^S: save  ^Q: quit"
	if ed.session.CanEditText() {
		help = "type to edit  ←→ home end: move caret  enter/esc: done"
	} else if ed.linkFrom != nil {
		help = "click a node to finish the link  esc: cancel"
	}
	for i, r := range []rune(help) {
		if i >= w {
			break
		}
		ed.screen.SetContent(i, h-2, r, nil, styleHelp)
	}
}

func (ed *Editor) drawStatusBar(w, h int) {
	for x := 0; x < w; x++ {
		ed.screen.SetContent(x, h-1, ' ', nil, styleStatus)
	}

	name := ed.filename
	if name == "" {
		name = "(unsaved)"
	}
	mark := ""
	if ed.modified {
		mark = " *"
	}
	left := fmt.Sprintf(" %s%s  [%s]", name, mark, ed.session.Mode())
	for i, r := range []rune(left) {
		if i >= w {
			break
		}
		ed.screen.SetContent(i, h-1, r, nil, styleStatus)
	}

	if ed.fileChanged {
		warn := " file changed on disk (^S to overwrite) "
		x := w - len([]rune(warn))
		for i, r := range []rune(warn) {
			if x+i >= 0 {
				ed.screen.SetContent(x+i, h-1, r, nil, styleWarn)
			}
		}
		return
	}
	if ed.message != "" {
		style := styleStatus
		switch ed.messageType {
		case MsgError:
			style = styleMsgError
		case MsgSuccess:
			style = styleMsgGood
		}
		msg := ed.message + " "
		x := w - len([]rune(msg))
		for i, r := range []rune(msg) {
			if x+i >= 0 {
				ed.screen.SetContent(x+i, h-1, r, nil, style)
			}
		}
	}
}
