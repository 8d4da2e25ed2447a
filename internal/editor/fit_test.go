package editor

import (
	"image"
	"testing"
)

func TestContainFit(t *testing.T) {
	tests := []struct {
		w, h   float64
		iw, ih int
		want   Placement
	}{
		{800, 300, 400, 200, Placement{Scale: 1.5, X: 100, Y: 0, Width: 600, Height: 300}},
		{800, 600, 400, 200, Placement{Scale: 2, X: 0, Y: 100, Width: 800, Height: 400}},
		{100, 100, 100, 100, Placement{Scale: 1, Width: 100, Height: 100}},
		{200, 400, 1000, 1000, Placement{Scale: 0.2, X: 0, Y: 100, Width: 200, Height: 200}},
		{800, 600, 0, 0, Placement{}},
	}
	for _, tc := range tests {
		got := ContainFit(tc.w, tc.h, tc.iw, tc.ih)
		if got != tc.want {
			t.Errorf("ContainFit(%v, %v, %d, %d) = %+v, want %+v", tc.w, tc.h, tc.iw, tc.ih, got, tc.want)
		}
		if got.Width > tc.w || got.Height > tc.h {
			t.Errorf("placement %+v overflows %vx%v", got, tc.w, tc.h)
		}
	}
}

func TestRefitReplacesBackgroundNode(t *testing.T) {
	surf := newRecordingSurface()
	geom := &FixedContainer{Width: 800, Height: 300}
	e := New(WithSurface(surf), WithContainer(geom))

	e.SetImage(image.NewRGBA(image.Rect(0, 0, 400, 200)))
	first := e.Scene().Background()
	if first.Placement.Scale != 1.5 {
		t.Fatalf("scale = %v, want 1.5", first.Placement.Scale)
	}

	geom.Width, geom.Height = 400, 400
	e.Resize()
	bg := e.Scene().Background()
	if bg == first {
		t.Fatalf("resize reused the old background node")
	}
	if bg.Placement.Width != 400 || bg.Placement.Height != 200 {
		t.Fatalf("placement after resize = %+v", bg.Placement)
	}
	if n := len(surf.layers[LayerBackground]); n != 1 {
		t.Fatalf("background layer has %d children, want 1", n)
	}
}
