package script

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/markup/internal/editor"
	"github.com/example/markup/internal/export"
)

type mapLoader map[string]image.Image

func (m mapLoader) Load(_ context.Context, source string) (image.Image, error) {
	img, ok := m[source]
	if !ok {
		return nil, errors.New("no such image")
	}
	return img, nil
}

func newTestSession(t *testing.T, opts ...Option) (*Session, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	blue := image.NewRGBA(image.Rect(0, 0, 40, 30))
	for i := 0; i < len(blue.Pix); i += 4 {
		copy(blue.Pix[i:], []byte{0, 0, 0xff, 0xff})
	}
	base := []Option{
		WithLoader(mapLoader{"blue.png": blue}),
		WithOutput(&out),
		WithExporter(export.New(export.WithClipboardWriter(func(image.Image) error { return nil }))),
	}
	s, err := New(append(base, opts...)...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s, &out
}

func TestSplit(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"click 10 20", []string{"click", "10", "20"}},
		{`  type "hello  world" `, []string{"type", "hello  world"}},
		{`type "say \"hi\""`, []string{"type", `say "hi"`}},
		{`load ""`, []string{"load", ""}},
		{"", nil},
	}
	for _, tc := range tests {
		got, err := Split(tc.in)
		if err != nil {
			t.Errorf("Split(%q): %v", tc.in, err)
			continue
		}
		if strings.Join(got, "|") != strings.Join(tc.want, "|") || len(got) != len(tc.want) {
			t.Errorf("Split(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
	if _, err := Split(`type "open`); err == nil {
		t.Errorf("expected unterminated quote error")
	}
}

func TestRunDrawsAndExports(t *testing.T) {
	s, out := newTestSession(t)
	path := filepath.Join(t.TempDir(), "out.png")
	script := strings.Join([]string{
		"# annotate a blue image",
		"size 400 300",
		"load blue.png",
		"color red",
		"width 6",
		"mode rect",
		"click 200 150",
		"shapes",
		"export " + path,
	}, "\n")
	if err := s.Run(strings.NewReader(script)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "0 rect 100,100 200x100") {
		t.Errorf("shapes output = %q", out.String())
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if img.Bounds().Dx() != 400 || img.Bounds().Dy() != 300 {
		t.Fatalf("export bounds = %v", img.Bounds())
	}
	// 40x30 scaled to 400x300 covers the canvas
	r, g, b, _ := img.At(5, 5).RGBA()
	if b < 0xe000 || r > 0x2000 || g > 0x2000 {
		t.Errorf("background pixel = %v, want blue", img.At(5, 5))
	}
	r, g, b, _ = img.At(100, 150).RGBA()
	if r < 0xe000 || g > 0x2000 || b > 0x2000 {
		t.Errorf("rect edge pixel = %v, want red", img.At(100, 150))
	}
	if s.Editor().Selection().Selected() != nil {
		t.Errorf("export left a selection")
	}
}

func TestTextEditing(t *testing.T) {
	s, _ := newTestSession(t)
	lines := []string{
		"mode text",
		"click 200 150",
		"dblclick 110 160",
		"key backspace",
		"key backspace",
		`type "!!"`,
		"key enter",
	}
	for _, l := range lines {
		if _, err := s.Exec(l); err != nil {
			t.Fatalf("%s: %v", l, err)
		}
	}
	shapes := s.Editor().Scene().Shapes()
	if len(shapes) != 1 {
		t.Fatalf("shapes = %d", len(shapes))
	}
	if got := shapes[0].Geometry.(*editor.Text).Text; got != "Edit !!" {
		t.Fatalf("text = %q, want %q", got, "Edit !!")
	}
}

func TestUndoClearDelete(t *testing.T) {
	s, out := newTestSession(t)
	for _, l := range []string{"tool circle", "click 100 100", "tool line", "drag 10 10 300 10", "undo", "status"} {
		if _, err := s.Exec(l); err != nil {
			t.Fatalf("%s: %v", l, err)
		}
	}
	if !strings.Contains(out.String(), "shapes=1 undo=1") {
		t.Fatalf("status = %q", out.String())
	}
	if _, err := s.Exec("tool rect"); err != nil {
		t.Fatal(err)
	}
	s.Exec("click 400 400")
	s.Exec("delete")
	if n := s.Editor().Scene().Len(); n != 1 {
		t.Fatalf("after delete shapes = %d", n)
	}
	s.Exec("clear")
	if n := s.Editor().Scene().Len(); n != 0 || s.Editor().UndoLen() != 0 {
		t.Fatalf("after clear shapes = %d undo = %d", n, s.Editor().UndoLen())
	}
}

func TestExecErrors(t *testing.T) {
	s, _ := newTestSession(t)
	tests := []string{
		"frobnicate",
		"click 1",
		"click a b",
		"mode lasso",
		"color nope",
		"width 0",
		"size -1 10",
		"key f1",
		"shadow x",
		"load missing.png",
	}
	for _, l := range tests {
		if _, err := s.Exec(l); err == nil {
			t.Errorf("%q: expected error", l)
		}
	}
	if _, err := s.Exec("bogus"); !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("unknown command err = %v", err)
	}
	if err := s.Run(strings.NewReader("mode rect\nclick x y\n")); err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("Run error = %v", err)
	}
	done, err := s.Exec("exit")
	if err != nil || !done {
		t.Errorf("exit = %v, %v", done, err)
	}
}

func TestLoadWithoutLoader(t *testing.T) {
	s, err := New()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Exec("load a.png"); err == nil {
		t.Fatalf("expected error without loader")
	}
}

func TestUsageListsCommands(t *testing.T) {
	s, _ := newTestSession(t)
	u := strings.Join(s.Usage(), "\n")
	for _, want := range []string{"click X Y", "export PATH", "undo"} {
		if !strings.Contains(u, want) {
			t.Errorf("usage missing %q", want)
		}
	}
}

