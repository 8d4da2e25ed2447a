package editor

import "testing"

func TestOffsetY(t *testing.T) {
	m := NewMapper(FixedContainer{Top: 50, Width: 800, Height: 600})
	if got := m.OffsetY(120); got != 70 {
		t.Fatalf("OffsetY(120) = %v, want 70", got)
	}
}

func TestToCanvas(t *testing.T) {
	m := NewMapper(FixedContainer{Left: 10, Top: 50, Width: 800, Height: 600})
	tests := []struct {
		name string
		ev   InputEvent
		want Point
	}{
		{"mouse", MouseAt(EventClick, 110, 120), Point{100, 70}},
		{"touch", TouchAt(EventPress, 20, 60), Point{10, 10}},
		{"touch uses first changed point", InputEvent{Kind: EventPress, Device: DeviceTouch, Touches: []Point{{30, 70}, {500, 500}}}, Point{20, 20}},
		{"mouse without position", InputEvent{Kind: EventClick}, Point{400, 300}},
		{"touch without points", InputEvent{Kind: EventPress, Device: DeviceTouch}, Point{400, 300}},
	}
	for _, tc := range tests {
		if got := m.ToCanvas(tc.ev); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestToImage(t *testing.T) {
	m := NewMapper(FixedContainer{Width: 800, Height: 300})
	pl := ContainFit(800, 300, 400, 200)
	got := m.ToImage(Point{100 + 300, 150}, pl)
	if got != (Point{200, 100}) {
		t.Fatalf("ToImage = %v, want {200 100}", got)
	}
}
