// Package editor implements the selection and mode state machine that
// gates every mutation of a diagram. Input layers translate raw
// pointer/keyboard events into Session calls and ask the capability
// predicates before mutating anything; nothing else is allowed to
// reason about selection state directly.
package editor

import (
	"fmt"

	"fsmdraw/pkg/diagram"
	"fsmdraw/pkg/geom"
)

// Mode is the editor's interaction mode.
type Mode int

const (
	// ModeCanvas: nothing selected.
	ModeCanvas Mode = iota
	// ModeSelection: exactly one node or link selected.
	ModeSelection
	// ModeMultiselect: a set of nodes selected as a group.
	ModeMultiselect
	// ModeEditingText: the selected entity's text is being edited.
	ModeEditingText
)

// String returns the mode name for status displays.
func (m Mode) String() string {
	switch m {
	case ModeCanvas:
		return "canvas"
	case ModeSelection:
		return "selection"
	case ModeMultiselect:
		return "multiselect"
	case ModeEditingText:
		return "editing"
	}
	return "unknown"
}

// Session is the single authority on what is selected and which
// operations are currently legal. One instance lives for the whole
// editor session; all calls happen on the UI event loop.
type Session struct {
	diagram  *diagram.Diagram
	mode     Mode
	selected diagram.Entity
	multi    []*diagram.Node
	cursor   int // rune offset into the selected entity's text

	rubberActive bool
	rubberFrom   geom.Point
	rubberTo     geom.Point

	blinker *Blinker
	nextID  int
}

// NewSession creates a session over the diagram. The redraw callback is
// invoked by the caret blinker whenever the caret toggles.
func NewSession(d *diagram.Diagram, redraw func()) *Session {
	return &Session{
		diagram: d,
		blinker: NewBlinker(CaretBlinkPeriod, redraw),
	}
}

// Diagram returns the diagram the session edits.
func (s *Session) Diagram() *diagram.Diagram { return s.diagram }

// Mode returns the current interaction mode.
func (s *Session) Mode() Mode { return s.mode }

// Selected returns the single selected entity, or nil.
func (s *Session) Selected() diagram.Entity { return s.selected }

// MultiSelection returns the multi-selected node set; empty unless the
// mode is ModeMultiselect.
func (s *Session) MultiSelection() []*diagram.Node { return s.multi }

// CursorOffset returns the text cursor position while editing.
func (s *Session) CursorOffset() int { return s.cursor }

// CaretVisible reports the caret's current blink phase.
func (s *Session) CaretVisible() bool { return s.blinker.Visible() }

// Close releases the blink timer. Call once when the editor shuts down.
func (s *Session) Close() { s.blinker.Stop() }

// CanEditText reports whether text keystrokes may be applied.
func (s *Session) CanEditText() bool { return s.mode == ModeEditingText }

// CanDrag reports whether the current selection may be dragged.
func (s *Session) CanDrag() bool {
	return s.mode == ModeSelection || s.mode == ModeMultiselect
}

// CanRestyle reports whether shape/color shortcuts may be applied: a
// single selected node, or every member of a multi-selection.
func (s *Session) CanRestyle() bool {
	if s.mode == ModeMultiselect {
		return true
	}
	if s.mode != ModeSelection {
		return false
	}
	_, isNode := s.selected.(*diagram.Node)
	return isNode
}

// ClickAt processes a pointer-down at p. It resolves the hit target and
// applies the transition table: selecting an entity, clearing the
// selection on empty canvas, collapsing a multi-selection, or leaving
// text editing.
func (s *Session) ClickAt(p geom.Point) {
	if s.mode == ModeEditingText {
		s.exitEditing()
	}

	entity := s.diagram.EntityAt(p)
	if entity == nil {
		wasCanvas := s.mode == ModeCanvas
		s.clearSelection()
		if wasCanvas {
			s.rubberActive = true
			s.rubberFrom = p
			s.rubberTo = p
		}
		return
	}
	s.multi = nil
	s.selected = entity
	s.mode = ModeSelection
}

// DoubleClickAt processes a double click at p: on empty canvas it
// creates and selects a new node; on the already-selected entity it
// enters text editing with the cursor at the end of the text.
func (s *Session) DoubleClickAt(p geom.Point) {
	entity := s.diagram.EntityAt(p)
	if entity == nil {
		n := &diagram.Node{ID: s.freshID(), X: p.X, Y: p.Y}
		s.diagram.AddNode(n)
		s.multi = nil
		s.selected = n
		s.mode = ModeSelection
		return
	}
	if s.mode == ModeSelection && entity == s.selected {
		s.enterEditing()
		return
	}
	s.multi = nil
	s.selected = entity
	s.mode = ModeSelection
}

// DragRubberTo extends the rubber-band rectangle while the pointer is
// held down on empty canvas.
func (s *Session) DragRubberTo(p geom.Point) {
	if s.rubberActive {
		s.rubberTo = p
	}
}

// ReleaseRubberBand finishes the rubber-band gesture. Catching at least
// one node enters multiselect; otherwise the mode stays canvas.
func (s *Session) ReleaseRubberBand() {
	if !s.rubberActive {
		return
	}
	s.rubberActive = false
	caught := s.diagram.NodesInRect(s.rubberFrom, s.rubberTo)
	if len(caught) == 0 {
		return
	}
	s.selected = nil
	s.multi = caught
	s.mode = ModeMultiselect
}

// RubberBand returns the live rubber-band rectangle corners; active is
// false when no band is being dragged.
func (s *Session) RubberBand() (from, to geom.Point, active bool) {
	return s.rubberFrom, s.rubberTo, s.rubberActive
}

// PressEnter enters text editing from a single selection.
func (s *Session) PressEnter() {
	if s.mode == ModeSelection && s.selected != nil {
		s.enterEditing()
	}
}

// PressEscape backs out one level: editing keeps the selection, any
// selection clears to canvas.
func (s *Session) PressEscape() {
	switch s.mode {
	case ModeEditingText:
		s.exitEditing()
	case ModeSelection, ModeMultiselect:
		s.clearSelection()
	}
}

// DragTo moves the single selected entity: a node's center, or a
// link's curvature anchor. Callers must check CanDrag first.
func (s *Session) DragTo(p geom.Point) {
	if s.mode != ModeSelection {
		return
	}
	switch e := s.selected.(type) {
	case *diagram.Node:
		e.MoveTo(p.X, p.Y)
	case diagram.Link:
		e.SetAnchorPoint(p)
	}
}

// DragBy shifts every multi-selected node by a delta.
func (s *Session) DragBy(dx, dy float64) {
	if s.mode != ModeMultiselect {
		return
	}
	for _, n := range s.multi {
		n.MoveTo(n.X+dx, n.Y+dy)
	}
}

// SetShape applies a shape to the selected node or every member of the
// multi-selection. Callers must check CanRestyle first.
func (s *Session) SetShape(shape diagram.Shape) {
	for _, n := range s.restyleTargets() {
		n.Shape = shape
	}
}

// SetColor applies a color to the selected node or every member of the
// multi-selection. Callers must check CanRestyle first.
func (s *Session) SetColor(color string) {
	for _, n := range s.restyleTargets() {
		n.Color = color
	}
}

// ToggleAccept flips the accept flag on the restyle targets.
func (s *Session) ToggleAccept() {
	for _, n := range s.restyleTargets() {
		n.Accept = !n.Accept
	}
}

func (s *Session) restyleTargets() []*diagram.Node {
	if !s.CanRestyle() {
		return nil
	}
	if s.mode == ModeMultiselect {
		return s.multi
	}
	n := s.selected.(*diagram.Node)
	return []*diagram.Node{n}
}

// DeleteSelected removes the selected entity (cascading for nodes) or
// the whole multi-selected set, then returns to canvas mode.
func (s *Session) DeleteSelected() {
	switch s.mode {
	case ModeSelection:
		switch e := s.selected.(type) {
		case *diagram.Node:
			s.diagram.RemoveNode(e)
		case diagram.Link:
			s.diagram.RemoveLink(e)
		}
	case ModeMultiselect:
		for _, n := range s.multi {
			s.diagram.RemoveNode(n)
		}
	default:
		return
	}
	s.clearSelection()
}

func (s *Session) enterEditing() {
	s.cursor = len([]rune(s.selected.Label()))
	s.mode = ModeEditingText
	s.blinker.Restart()
}

func (s *Session) exitEditing() {
	s.mode = ModeSelection
	s.cursor = 0
	s.blinker.Stop()
}

func (s *Session) clearSelection() {
	s.selected = nil
	s.multi = nil
	s.mode = ModeCanvas
}

func (s *Session) freshID() string {
	for {
		id := fmt.Sprintf("s%d", s.nextID)
		s.nextID++
		if s.diagram.NodeByID(id) == nil {
			return id
		}
	}
}
