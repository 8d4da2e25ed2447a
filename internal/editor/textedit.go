package editor

import "errors"

// ErrNoTextSession is returned when committing or cancelling while no text
// shape is being edited.
var ErrNoTextSession = errors.New("no text edit session")

// TextField is the editable overlay placed over a Text shape. Left and Top
// are page coordinates.
type TextField struct {
	Left, Top float64
	Width     float64
	Value     string
	FontSize  float64
}

// Insert appends r to the field value.
func (f *TextField) Insert(r rune) { f.Value += string(r) }

// Height is the page height the field covers for its current value.
func (f *TextField) Height() float64 {
	t := Text{Width: f.Width, Text: f.Value, FontSize: f.FontSize}
	return t.Height()
}

// Contains reports whether the page point p lies on the field.
func (f *TextField) Contains(p Point) bool {
	b := Bounds{Point{f.Left, f.Top}, Point{f.Left + f.Width, f.Top + f.Height()}}
	return b.Contains(p)
}

// Backspace drops the last rune of the value.
func (f *TextField) Backspace() {
	if f.Value == "" {
		return
	}
	rs := []rune(f.Value)
	f.Value = string(rs[:len(rs)-1])
}

type textSession struct {
	shape    *Shape
	text     *Text
	field    *TextField
	original string
}

func openTextSession(sh *Shape, t *Text, c Container) *textSession {
	return &textSession{
		shape: sh,
		text:  t,
		field: &TextField{
			Left:     c.Left + t.X,
			Top:      c.Top + t.Y,
			Width:    t.Width,
			Value:    t.Text,
			FontSize: t.FontSize,
		},
		original: t.Text,
	}
}
