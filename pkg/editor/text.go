package editor

// Text-cursor editing. Every operation is rune-based, clamps the
// cursor into [0, len(text)], and restarts the caret blink so the
// caret is visible immediately after each keystroke.

// InsertRune splices r into the selected entity's text at the cursor
// and advances the cursor past it.
func (s *Session) InsertRune(r rune) {
	if !s.CanEditText() {
		return
	}
	text := []rune(s.selected.Label())
	out := make([]rune, 0, len(text)+1)
	out = append(out, text[:s.cursor]...)
	out = append(out, r)
	out = append(out, text[s.cursor:]...)
	s.selected.SetLabel(string(out))
	s.cursor++
	s.blinker.Restart()
}

// Backspace removes the rune before the cursor.
func (s *Session) Backspace() {
	if !s.CanEditText() || s.cursor == 0 {
		return
	}
	text := []rune(s.selected.Label())
	s.selected.SetLabel(string(append(text[:s.cursor-1:s.cursor-1], text[s.cursor:]...)))
	s.cursor--
	s.blinker.Restart()
}

// DeleteForward removes the rune at the cursor.
func (s *Session) DeleteForward() {
	if !s.CanEditText() {
		return
	}
	text := []rune(s.selected.Label())
	if s.cursor >= len(text) {
		return
	}
	s.selected.SetLabel(string(append(text[:s.cursor:s.cursor], text[s.cursor+1:]...)))
	s.blinker.Restart()
}

// CursorLeft moves the cursor one rune left.
func (s *Session) CursorLeft() {
	if !s.CanEditText() || s.cursor == 0 {
		return
	}
	s.cursor--
	s.blinker.Restart()
}

// CursorRight moves the cursor one rune right.
func (s *Session) CursorRight() {
	if !s.CanEditText() {
		return
	}
	if s.cursor < len([]rune(s.selected.Label())) {
		s.cursor++
	}
	s.blinker.Restart()
}

// CursorHome jumps the cursor to the start of the text.
func (s *Session) CursorHome() {
	if !s.CanEditText() {
		return
	}
	s.cursor = 0
	s.blinker.Restart()
}

// CursorEnd jumps the cursor to the end of the text.
func (s *Session) CursorEnd() {
	if !s.CanEditText() {
		return
	}
	s.cursor = len([]rune(s.selected.Label()))
	s.blinker.Restart()
}
