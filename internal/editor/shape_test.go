package editor

import (
	"image/color"
	"testing"
)

func TestSegment(t *testing.T) {
	tests := []struct {
		name           string
		press, release Point
		a, b           Point
	}{
		{"drag", Point{0, 0}, Point{200, 0}, Point{0, 0}, Point{200, 0}},
		{"short drag", Point{0, 0}, Point{10, 0}, Point{-100, 0}, Point{100, 0}},
		{"threshold", Point{0, 0}, Point{60, 40}, Point{0, 0}, Point{60, 40}},
		{"diagonal short", Point{50, 50}, Point{99, 99}, Point{-50, 50}, Point{150, 50}},
	}
	for _, tc := range tests {
		a, b := Segment(tc.press, tc.release)
		if a != tc.a || b != tc.b {
			t.Errorf("%s: got %v-%v, want %v-%v", tc.name, a, b, tc.a, tc.b)
		}
	}
}

func TestConstructors(t *testing.T) {
	p := Point{300, 300}
	if r := RectAt(p); *r != (Rect{X: 200, Y: 250, Width: 200, Height: 100}) {
		t.Errorf("RectAt = %+v", *r)
	}
	if c := CircleAt(p); c.X != 300 || c.Y != 300 || c.Bounds().Height() != 100 {
		t.Errorf("CircleAt = %+v", *c)
	}
	txt := TextAt(p, 0)
	if txt.X != 200 || txt.Y != 300 || txt.Width != 200 || txt.Text != "Edit Me" || txt.FontSize != 20 {
		t.Errorf("TextAt = %+v", *txt)
	}
	f := StrokeAt(p)
	if len(f.Points) != 2 || f.Points[0] != p || f.Points[1] != p {
		t.Errorf("StrokeAt = %+v", f.Points)
	}
	arrow := ArrowBetween(Point{10, 10}, Point{110, 60})
	if abs := arrow.Abs(); abs[0] != (Point{10, 10}) || abs[1] != (Point{110, 60}) {
		t.Errorf("arrow end points = %v", abs)
	}
}

func TestShapeContains(t *testing.T) {
	line := NewShape(LineBetween(Point{0, 0}, Point{100, 0}), Style{StrokeWidth: 4})
	if !line.Contains(Point{50, 4}, hitTolerance) {
		t.Errorf("expected near-line point to hit")
	}
	if line.Contains(Point{50, 20}, hitTolerance) {
		t.Errorf("expected far point to miss")
	}

	rect := NewShape(&Rect{X: 0, Y: 0, Width: 100, Height: 20}, Style{})
	rect.Rotation = 90
	// rotated about (50, 10) the rectangle spans y -40..60 at x 40..60
	if !rect.Contains(Point{50, -30}, 0) {
		t.Errorf("expected rotated rect to contain (50,-30)")
	}
	if rect.Contains(Point{5, 10}, 0) {
		t.Errorf("expected rotated rect to miss (5,10)")
	}
}

func TestShapeFit(t *testing.T) {
	txt := NewShape(&Text{X: 0, Y: 0, Width: 200, Text: "a", FontSize: 20}, Style{})
	h := txt.Bounds().Height()
	txt.Fit(Bounds{Point{10, 10}, Point{110, 10 + 2*h}})
	g := txt.Geometry.(*Text)
	if g.FontSize != 40 || g.Width != 100 || g.X != 10 {
		t.Errorf("text after fit = %+v", *g)
	}

	line := NewShape(LineBetween(Point{0, 0}, Point{100, 50}), Style{})
	line.Fit(Bounds{Point{0, 0}, Point{200, 100}})
	pts := line.Geometry.(*Line).Points
	if pts[1] != (Point{200, 100}) {
		t.Errorf("line after fit = %v", pts)
	}
}

func TestApplyColor(t *testing.T) {
	red := color.RGBA{R: 0xff, A: 0xff}
	tests := []struct {
		g      Geometry
		stroke bool
		fill   bool
		kind   Kind
	}{
		{&Rect{}, true, false, KindRect},
		{&Circle{}, true, false, KindCircle},
		{&Line{}, true, false, KindLine},
		{&Freehand{}, true, false, KindFreehand},
		{&Arrow{}, true, true, KindArrow},
		{&Text{}, false, true, KindText},
	}
	for _, tc := range tests {
		sh := NewShape(tc.g, Style{})
		applyColor(sh, red)
		if sh.Kind() != tc.kind {
			t.Errorf("kind = %v, want %v", sh.Kind(), tc.kind)
		}
		if (sh.Style.Stroke == red) != tc.stroke {
			t.Errorf("%v: stroke = %v", tc.kind, sh.Style.Stroke)
		}
		if (sh.Style.Fill == red) != tc.fill {
			t.Errorf("%v: fill = %v", tc.kind, sh.Style.Fill)
		}
	}
}
