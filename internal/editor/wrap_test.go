package editor

import (
	"reflect"
	"testing"
)

// every rune is 10 wide
func tenPerRune(s string) float64 { return float64(len([]rune(s))) * 10 }

func TestWrapText(t *testing.T) {
	tests := []struct {
		in    string
		width float64
		want  []string
	}{
		{"Edit Me", 200, []string{"Edit Me"}},
		{"one two three", 80, []string{"one two", "three"}},
		{"a\n\nb", 200, []string{"a", "", "b"}},
		{"enormousword x", 50, []string{"enormousword", "x"}},
		{"no limit at all", 0, []string{"no limit at all"}},
	}
	for _, tc := range tests {
		if got := WrapText(tc.in, tc.width, tenPerRune); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("WrapText(%q, %v) = %q, want %q", tc.in, tc.width, got, tc.want)
		}
	}
}

func TestTextBoundsFollowWrapping(t *testing.T) {
	SetTextMeasure(func(s string, size float64) float64 { return tenPerRune(s) * size / 20 })
	t.Cleanup(func() { SetTextMeasure(nil) })

	sh := NewShape(&Text{Width: 200, Text: "the quick brown fox jumps over the lazy dog again", FontSize: 20}, Style{})
	g := sh.Geometry.(*Text)
	want := []string{"the quick brown fox", "jumps over the lazy", "dog again"}
	if got := g.Lines(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Lines() = %q, want %q", got, want)
	}
	if h := sh.Bounds().Height(); h != 72 {
		t.Errorf("Bounds().Height() = %v, want 72", h)
	}
	if !sh.Contains(Point{50, 36}, 0) {
		t.Errorf("expected second line to be hit at (50,36)")
	}
	if !sh.Contains(Point{50, 60}, 0) {
		t.Errorf("expected third line to be hit at (50,60)")
	}
	if sh.Contains(Point{50, 80}, 0) {
		t.Errorf("expected (50,80) below the block to miss")
	}
}

func TestTextMeasureDefault(t *testing.T) {
	SetTextMeasure(nil)
	g := &Text{Width: 200, Text: "the quick brown fox jumps over the lazy dog again", FontSize: 20}
	if n := len(g.Lines()); n != 3 {
		t.Errorf("estimated layout has %d lines, want 3", n)
	}
	short := &Text{Width: 200, Text: "Edit Me", FontSize: 20}
	if h := short.Height(); h != 24 {
		t.Errorf("single line height = %v, want 24", h)
	}
}
