// Command fsmdrawedit is an interactive terminal editor for state
// diagrams. Click to select, double-click empty canvas to add a node,
// double-click a selected entity to edit its label, drag nodes and link
// anchors, rubber-band empty canvas to multi-select.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gdamore/tcell/v2"

	"fsmdraw/pkg/diagfile"
	"fsmdraw/pkg/diagram"
	"fsmdraw/pkg/editor"
	"fsmdraw/pkg/geom"
)

// World units per terminal cell. Cells are roughly twice as tall as
// wide, so the vertical scale is doubled to keep shapes round.
const (
	cellWidth  = 12.0
	cellHeight = 24.0
)

// doubleClickMs is the maximum gap between clicks for a double click.
const doubleClickMs = 400

type MessageType int

const (
	MsgInfo MessageType = iota
	MsgSuccess
	MsgError
)

type Editor struct {
	screen  tcell.Screen
	session *editor.Session

	filename string
	modified bool

	// viewport: world coordinate of the top-left cell
	offsetX float64
	offsetY float64

	// mouse state
	leftMouseDown bool
	downX, downY  int
	moved         bool
	lastClickTime int64 // Unix milliseconds of previous click release
	lastClickX    int
	lastClickY    int
	lastDrag      geom.Point // previous drag position for multiselect deltas

	// pending link creation: next node click completes the link
	linkFrom *diagram.Node

	message     string
	messageType MessageType

	watcher      *fsnotify.Watcher
	fileChanged  bool
	lastSaveTime int64
}

func main() {
	d := diagram.New()
	ed := &Editor{}

	if len(os.Args) > 1 {
		ed.filename = os.Args[1]
		if loaded, err := diagfile.ReadFile(ed.filename); err == nil {
			d = loaded
		} else if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", ed.filename, err)
			os.Exit(1)
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing screen: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse()
	screen.Clear()

	ed.screen = screen
	ed.session = editor.NewSession(d, func() {
		screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	ed.centerViewport()
	ed.startWatcher()

	ed.run()

	ed.session.Close()
	if ed.watcher != nil {
		ed.watcher.Close()
	}
	screen.Fini()
}

// centerViewport places the diagram's first node near the middle of the
// screen, or a fixed origin for an empty diagram.
func (ed *Editor) centerViewport() {
	w, h := ed.screen.Size()
	cx, cy := 0.0, 0.0
	if nodes := ed.session.Diagram().Nodes; len(nodes) > 0 {
		cx, cy = nodes[0].X, nodes[0].Y
	}
	ed.offsetX = cx - float64(w)/2*cellWidth
	ed.offsetY = cy - float64(h)/2*cellHeight
}

// startWatcher watches the open file and flags external modification.
// Events within a second of our own save are the save itself.
func (ed *Editor) startWatcher() {
	if ed.filename == "" {
		return
	}
	if _, err := os.Stat(ed.filename); err != nil {
		return
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return
	}
	if err := w.Add(ed.filename); err != nil {
		w.Close()
		return
	}
	ed.watcher = w
	go func() {
		for ev := range w.Events {
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if time.Now().UnixMilli()-ed.lastSaveTime < 1000 {
				continue
			}
			ed.fileChanged = true
			ed.screen.PostEvent(tcell.NewEventInterrupt(nil))
		}
	}()
}

func (ed *Editor) run() {
	for {
		ed.draw()
		ed.screen.Show()

		ev := ed.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			ed.screen.Sync()
		case *tcell.EventKey:
			if ed.handleKey(ev) {
				return
			}
		case *tcell.EventMouse:
			ed.handleMouse(ev)
		case *tcell.EventInterrupt:
			// caret blink or watcher wakeup, just redraw
		}
	}
}

// worldAt converts a cell position to the world point at its center.
func (ed *Editor) worldAt(x, y int) geom.Point {
	return geom.Point{
		X: ed.offsetX + (float64(x)+0.5)*cellWidth,
		Y: ed.offsetY + (float64(y)+0.5)*cellHeight,
	}
}

// cellAt converts a world point to its cell position.
func (ed *Editor) cellAt(p geom.Point) (int, int) {
	return int((p.X - ed.offsetX) / cellWidth), int((p.Y - ed.offsetY) / cellHeight)
}

func (ed *Editor) handleKey(ev *tcell.EventKey) bool {
	s := ed.session

	// Global shortcuts work in every mode.
	switch ev.Key() {
	case tcell.KeyCtrlQ:
		return true
	case tcell.KeyCtrlS:
		ed.save()
		return false
	}

	if s.CanEditText() {
		ed.handleEditKey(ev)
		return false
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		ed.linkFrom = nil
		s.PressEscape()
		return false
	case tcell.KeyEnter:
		s.PressEnter()
		return false
	case tcell.KeyDelete, tcell.KeyBackspace, tcell.KeyBackspace2:
		if s.Mode() != editor.ModeCanvas {
			s.DeleteSelected()
			ed.modified = true
			ed.showMessage("Deleted", MsgInfo)
		}
		return false
	case tcell.KeyUp, tcell.KeyDown, tcell.KeyLeft, tcell.KeyRight:
		ed.handleArrow(ev.Key())
		return false
	}

	switch ev.Rune() {
	case 'q':
		return true
	case 't':
		ed.startLink()
	case 'e':
		ed.addEntryArrow()
	case 'a':
		if s.CanRestyle() {
			s.ToggleAccept()
			ed.modified = true
		}
	case 'c':
		ed.cycleColor()
	case '1', '2', '3', '4', '5':
		ed.applyShape(ev.Rune())
	}
	return false
}

// handleArrow nudges the selection by one cell, or pans the viewport
// when nothing is selected.
func (ed *Editor) handleArrow(key tcell.Key) {
	dx, dy := 0.0, 0.0
	switch key {
	case tcell.KeyUp:
		dy = -cellHeight
	case tcell.KeyDown:
		dy = cellHeight
	case tcell.KeyLeft:
		dx = -cellWidth
	case tcell.KeyRight:
		dx = cellWidth
	}

	s := ed.session
	switch s.Mode() {
	case editor.ModeSelection:
		if n, ok := s.Selected().(*diagram.Node); ok {
			s.DragTo(geom.Point{X: n.X + dx, Y: n.Y + dy})
			ed.modified = true
		}
	case editor.ModeMultiselect:
		s.DragBy(dx, dy)
		ed.modified = true
	default:
		ed.offsetX += dx
		ed.offsetY += dy
	}
}

func (ed *Editor) handleEditKey(ev *tcell.EventKey) {
	s := ed.session
	switch ev.Key() {
	case tcell.KeyEscape:
		s.PressEscape()
	case tcell.KeyEnter:
		s.PressEscape() // commit the label
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		s.Backspace()
		ed.modified = true
	case tcell.KeyDelete:
		s.DeleteForward()
		ed.modified = true
	case tcell.KeyLeft:
		s.CursorLeft()
	case tcell.KeyRight:
		s.CursorRight()
	case tcell.KeyHome:
		s.CursorHome()
	case tcell.KeyEnd:
		s.CursorEnd()
	case tcell.KeyRune:
		s.InsertRune(ev.Rune())
		ed.modified = true
	}
}

func (ed *Editor) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons()
	s := ed.session
	p := ed.worldAt(x, y)

	if buttons&tcell.Button1 != 0 {
		if !ed.leftMouseDown {
			// press
			ed.leftMouseDown = true
			ed.downX, ed.downY = x, y
			ed.moved = false
			ed.lastDrag = p

			if ed.linkFrom != nil {
				ed.completeLink(p)
				return
			}
			s.ClickAt(p)
			return
		}

		// motion with the button held
		if x != ed.downX || y != ed.downY {
			ed.moved = true
		}
		if !ed.moved {
			return
		}
		if _, _, active := s.RubberBand(); active {
			s.DragRubberTo(p)
			return
		}
		if !s.CanDrag() {
			return
		}
		switch s.Mode() {
		case editor.ModeSelection:
			s.DragTo(p)
			ed.modified = true
		case editor.ModeMultiselect:
			s.DragBy(p.X-ed.lastDrag.X, p.Y-ed.lastDrag.Y)
			ed.modified = true
		}
		ed.lastDrag = p
		return
	}

	// release
	if !ed.leftMouseDown {
		return
	}
	ed.leftMouseDown = false

	if _, _, active := s.RubberBand(); active {
		s.ReleaseRubberBand()
		if ed.moved {
			return
		}
	}
	if ed.moved {
		return
	}

	// Click without motion: check for a double click at the same spot.
	now := time.Now().UnixMilli()
	sameSpot := abs(x-ed.lastClickX) <= 1 && abs(y-ed.lastClickY) <= 1
	if sameSpot && now-ed.lastClickTime < doubleClickMs {
		s.DoubleClickAt(ed.worldAt(ed.downX, ed.downY))
		ed.modified = true
		ed.lastClickTime = 0 // prevent triple-click chains
		return
	}
	ed.lastClickTime = now
	ed.lastClickX = x
	ed.lastClickY = y
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// startLink arms link creation from the selected node; the next node
// click completes it.
func (ed *Editor) startLink() {
	n, ok := ed.session.Selected().(*diagram.Node)
	if !ok {
		ed.showMessage("Select a node first", MsgError)
		return
	}
	ed.linkFrom = n
	ed.showMessage("Click a target node to link (same node for a self loop)", MsgInfo)
}

func (ed *Editor) completeLink(p geom.Point) {
	from := ed.linkFrom
	ed.linkFrom = nil

	d := ed.session.Diagram()
	to := d.NodeAt(p)
	if to == nil {
		ed.showMessage("Link cancelled", MsgInfo)
		return
	}
	if to == from {
		d.AddLink(diagram.NewSelfTransition(from, 0))
		ed.showMessage("Self loop added", MsgSuccess)
	} else {
		d.AddLink(&diagram.Transition{From: from, To: to})
		ed.showMessage("Transition added", MsgSuccess)
	}
	ed.modified = true
}

func (ed *Editor) addEntryArrow() {
	n, ok := ed.session.Selected().(*diagram.Node)
	if !ok {
		ed.showMessage("Select a node first", MsgError)
		return
	}
	ed.session.Diagram().AddLink(&diagram.EntryArrow{
		Node:   n,
		DeltaX: -3 * diagram.NodeRadius,
	})
	ed.modified = true
	ed.showMessage("Entry marker added", MsgSuccess)
}

var colorCycle = []string{"", "red", "green", "blue", "orange", "purple"}

func (ed *Editor) cycleColor() {
	s := ed.session
	if !s.CanRestyle() {
		return
	}
	current := ""
	if n, ok := s.Selected().(*diagram.Node); ok {
		current = n.Color
	} else if m := s.MultiSelection(); len(m) > 0 {
		current = m[0].Color
	}
	next := colorCycle[0]
	for i, c := range colorCycle {
		if c == current {
			next = colorCycle[(i+1)%len(colorCycle)]
			break
		}
	}
	s.SetColor(next)
	ed.modified = true
}

func (ed *Editor) applyShape(r rune) {
	s := ed.session
	if !s.CanRestyle() {
		return
	}
	shapes := map[rune]diagram.Shape{
		'1': diagram.ShapeDot,
		'2': diagram.ShapeTriangle,
		'3': diagram.ShapeSquare,
		'4': diagram.ShapePentagon,
		'5': diagram.ShapeHexagon,
	}
	s.SetShape(shapes[r])
	ed.modified = true
}

func (ed *Editor) save() {
	if ed.filename == "" {
		ed.showMessage("No filename (start fsmdrawedit with a path)", MsgError)
		return
	}
	ed.lastSaveTime = time.Now().UnixMilli()
	if err := diagfile.WriteFile(ed.filename, ed.session.Diagram()); err != nil {
		ed.showMessage(fmt.Sprintf("Save failed: %v", err), MsgError)
		return
	}
	ed.modified = false
	ed.fileChanged = false
	if ed.watcher == nil {
		ed.startWatcher()
	}
	ed.showMessage("Saved "+ed.filename, MsgSuccess)
}

func (ed *Editor) showMessage(msg string, msgType MessageType) {
	ed.message = msg
	ed.messageType = msgType
}
