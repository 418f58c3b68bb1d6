package editor

import (
	"sync"
	"time"
)

// CaretBlinkPeriod is the caret toggle interval while editing text.
const CaretBlinkPeriod = 500 * time.Millisecond

// Blinker is the repeating caret-blink timer. Restart forces the caret
// visible and realigns the blink phase, so the caret always reappears
// in sync with user activity. The tick goroutine only flips the
// visibility flag and asks for a redraw; all real mutation stays on the
// event loop.
type Blinker struct {
	period  time.Duration
	onBlink func()

	mu      sync.Mutex
	visible bool
	done    chan struct{}
}

// NewBlinker returns a stopped blinker. onBlink runs on the timer
// goroutine after each toggle and should only request a redraw.
func NewBlinker(period time.Duration, onBlink func()) *Blinker {
	if onBlink == nil {
		onBlink = func() {}
	}
	return &Blinker{period: period, onBlink: onBlink, visible: true}
}

// Restart cancels any running timer, forces the caret visible and
// starts a fresh blink cycle.
func (b *Blinker) Restart() {
	b.Stop()
	b.mu.Lock()
	b.visible = true
	b.done = make(chan struct{})
	done := b.done
	b.mu.Unlock()

	go func() {
		ticker := time.NewTicker(b.period)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				b.mu.Lock()
				b.visible = !b.visible
				b.mu.Unlock()
				b.onBlink()
			}
		}
	}()
}

// Stop cancels the timer and leaves the caret visible, so a stopped
// editor never hides text under an invisible caret.
func (b *Blinker) Stop() {
	b.mu.Lock()
	if b.done != nil {
		close(b.done)
		b.done = nil
	}
	b.visible = true
	b.mu.Unlock()
}

// Visible reports the caret's current blink phase.
func (b *Blinker) Visible() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.visible
}
