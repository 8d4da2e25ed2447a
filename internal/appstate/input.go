package appstate

import (
	"image"
	"time"
	"unicode"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/touch"

	"github.com/example/markup/internal/editor"
)

const (
	// clickSlop is how far the pointer may travel between press and
	// release for the pair to count as a click.
	clickSlop           = 4
	doubleClickInterval = 400 * time.Millisecond
)

// clickTracker synthesises click and double click events from press and
// release pairs, since shiny only reports the raw transitions.
type clickTracker struct {
	pressed bool
	down    image.Point
	last    time.Time
	lastAt  image.Point
}

func near(a, b image.Point) bool {
	d := a.Sub(b)
	return d.X >= -clickSlop && d.X <= clickSlop && d.Y >= -clickSlop && d.Y <= clickSlop
}

func (c *clickTracker) press(p image.Point) {
	c.pressed = true
	c.down = p
}

// release returns the synthetic events that follow a release at p.
func (c *clickTracker) release(p image.Point, now time.Time) []editor.EventKind {
	if !c.pressed {
		return nil
	}
	c.pressed = false
	if !near(p, c.down) {
		c.last = time.Time{}
		return nil
	}
	kinds := []editor.EventKind{editor.EventClick}
	if !c.last.IsZero() && now.Sub(c.last) <= doubleClickInterval && near(p, c.lastAt) {
		kinds = append(kinds, editor.EventDoubleClick)
		c.last = time.Time{}
		return kinds
	}
	c.last = now
	c.lastAt = p
	return kinds
}

func mouseButton(b mouse.Button) editor.Button {
	switch b {
	case mouse.ButtonMiddle:
		return editor.ButtonMiddle
	case mouse.ButtonRight:
		return editor.ButtonSecondary
	}
	return editor.ButtonPrimary
}

// mouseKind maps a shiny mouse transition to an editor event kind. ok is
// false for wheel events and for motion while no button is held.
func mouseKind(e mouse.Event, dragging bool) (editor.EventKind, bool) {
	if e.Button.IsWheel() {
		return 0, false
	}
	switch e.Direction {
	case mouse.DirPress:
		return editor.EventPress, true
	case mouse.DirRelease:
		return editor.EventRelease, true
	case mouse.DirNone:
		return editor.EventMove, dragging
	}
	return 0, false
}

func touchKind(t touch.Type) editor.EventKind {
	switch t {
	case touch.TypeBegin:
		return editor.EventPress
	case touch.TypeEnd:
		return editor.EventRelease
	}
	return editor.EventMove
}

// translateKey maps a key press to the editor's key model.
func translateKey(e key.Event) (editor.KeyEvent, bool) {
	if e.Direction == key.DirRelease {
		return editor.KeyEvent{}, false
	}
	switch e.Code {
	case key.CodeReturnEnter, key.CodeKeypadEnter:
		return editor.KeyEvent{Code: editor.KeyEnter}, true
	case key.CodeEscape:
		return editor.KeyEvent{Code: editor.KeyEscape}, true
	case key.CodeDeleteBackspace:
		return editor.KeyEvent{Code: editor.KeyBackspace}, true
	case key.CodeDeleteForward:
		return editor.KeyEvent{Code: editor.KeyDelete}, true
	}
	if e.Modifiers&(key.ModControl|key.ModMeta) != 0 {
		return editor.KeyEvent{}, false
	}
	if e.Rune > 0 && unicode.IsPrint(e.Rune) {
		return editor.KeyEvent{Code: editor.KeyRune, Rune: e.Rune}, true
	}
	return editor.KeyEvent{}, false
}
