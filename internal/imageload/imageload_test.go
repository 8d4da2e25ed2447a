package imageload

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/example/markup/internal/capture"
)

func writeImage(t *testing.T, name string, enc func(*os.File, image.Image) error) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.SetRGBA(1, 1, color.RGBA{G: 0xff, A: 0xff})
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := enc(f, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	tests := []struct {
		name string
		enc  func(*os.File, image.Image) error
	}{
		{"a.png", func(f *os.File, img image.Image) error { return png.Encode(f, img) }},
		{"a.bmp", func(f *os.File, img image.Image) error { return bmp.Encode(f, img) }},
	}
	l := New()
	for _, tc := range tests {
		path := writeImage(t, tc.name, tc.enc)
		img, err := l.Load(context.Background(), path)
		if err != nil {
			t.Fatalf("%s: Load: %v", tc.name, err)
		}
		if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
			t.Errorf("%s: bounds = %v", tc.name, img.Bounds())
		}
		r, g, _, _ := img.At(1, 1).RGBA()
		if r != 0 || g != 0xffff {
			t.Errorf("%s: pixel = %v", tc.name, img.At(1, 1))
		}
	}
}

func TestLoadErrors(t *testing.T) {
	l := New()
	if _, err := l.Load(context.Background(), "  "); !errors.Is(err, ErrEmptySource) {
		t.Errorf("blank source = %v", err)
	}
	if _, err := l.Load(context.Background(), filepath.Join(t.TempDir(), "missing.png")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file = %v", err)
	}
	junk := filepath.Join(t.TempDir(), "junk.png")
	if err := os.WriteFile(junk, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Load(context.Background(), junk); !errors.Is(err, image.ErrFormat) {
		t.Errorf("junk file = %v", err)
	}
}

func TestLoadClipboard(t *testing.T) {
	want := image.NewRGBA(image.Rect(0, 0, 1, 1))
	l := New(WithClipboard(func() (image.Image, error) { return want, nil }))
	got, err := l.Load(context.Background(), "clipboard:")
	if err != nil || got != want {
		t.Fatalf("Load clipboard = %v, %v", got, err)
	}

	boom := errors.New("no image")
	l = New(WithClipboard(func() (image.Image, error) { return nil, boom }))
	if _, err := l.Load(context.Background(), "clipboard:"); !errors.Is(err, boom) {
		t.Fatalf("clipboard error = %v", err)
	}
}

func TestLoadScreen(t *testing.T) {
	var got capture.Options
	l := New(WithScreenshot(func(_ context.Context, o capture.Options) (*image.RGBA, error) {
		got = o
		return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil
	}))
	if _, err := l.Load(context.Background(), "screen:region,monitor=HDMI-1"); err != nil {
		t.Fatalf("Load screen: %v", err)
	}
	if !got.Interactive || got.Monitor != "HDMI-1" || got.X11 {
		t.Fatalf("options = %+v", got)
	}
	if _, err := l.Load(context.Background(), "screen:window"); err == nil {
		t.Fatalf("expected unknown option error")
	}
}

func TestParseScreen(t *testing.T) {
	tests := []struct {
		in      string
		want    capture.Options
		wantErr bool
	}{
		{"", capture.Options{}, false},
		{"x11", capture.Options{X11: true}, false},
		{"cursor, monitor=primary", capture.Options{Cursor: true, Monitor: "primary"}, false},
		{"monitor=", capture.Options{}, true},
	}
	for _, tc := range tests {
		got, err := ParseScreen(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseScreen(%q) err = %v", tc.in, err)
			continue
		}
		if !tc.wantErr && got != tc.want {
			t.Errorf("ParseScreen(%q) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
}
