// Package export writes annotated images to disk or the clipboard.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/example/markup/internal/clipboard"
	"github.com/example/markup/internal/notify"
	"github.com/example/markup/internal/render"
)

// Format is an output encoding.
type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	PDF  Format = "pdf"
)

// DefaultJPEGQuality is used when Options.Quality is zero.
const DefaultJPEGQuality = 90

// ErrUnknownFormat is returned for unsupported file extensions.
var ErrUnknownFormat = errors.New("unknown export format")

// FormatFromPath picks a Format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", "":
		return PNG, nil
	case ".jpg", ".jpeg":
		return JPEG, nil
	case ".pdf":
		return PDF, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownFormat, filepath.Ext(path))
}

// Options controls encoding.
type Options struct {
	Format  Format
	Quality int
	// Shadow adds a blurred drop shadow around the image when set.
	Shadow *render.ShadowOptions
}

// Encode writes img to w.
func Encode(w io.Writer, img image.Image, o Options) error {
	if o.Shadow != nil {
		img, _ = render.Shadow(img, *o.Shadow)
	}
	switch o.Format {
	case PNG, "":
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("export png: %w", err)
		}
	case JPEG:
		q := o.Quality
		if q <= 0 {
			q = DefaultJPEGQuality
		}
		if err := jpeg.Encode(w, flatten(img), &jpeg.Options{Quality: q}); err != nil {
			return fmt.Errorf("export jpeg: %w", err)
		}
	case PDF:
		if err := encodePDF(w, img); err != nil {
			return fmt.Errorf("export pdf: %w", err)
		}
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, o.Format)
	}
	return nil
}

// flatten composites img over white, since JPEG has no alpha.
func flatten(img image.Image) image.Image {
	b := img.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(out, b, img, b.Min, draw.Over)
	return out
}

// encodePDF emits a single page sized to the image at 72 dpi.
func encodePDF(w io.Writer, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	wd, ht := float64(img.Bounds().Dx()), float64(img.Bounds().Dy())
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: wd, Ht: ht},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("annotated", opts, &buf)
	pdf.ImageOptions("annotated", 0, 0, wd, ht, false, opts, 0, "")
	return pdf.Output(w)
}

// Exporter saves images and raises notifications.
type Exporter struct {
	notifier *notify.Notifier
	copy     func(image.Image) error
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithNotifier announces saves and copies through n.
func WithNotifier(n *notify.Notifier) Option {
	return func(x *Exporter) { x.notifier = n }
}

// WithClipboardWriter overrides the clipboard writer.
func WithClipboardWriter(fn func(image.Image) error) Option {
	return func(x *Exporter) { x.copy = fn }
}

// New returns an Exporter using the system clipboard.
func New(opts ...Option) *Exporter {
	x := &Exporter{copy: clipboard.WriteImage}
	for _, o := range opts {
		o(x)
	}
	return x
}

// Save writes img to path. An empty Format is derived from the extension.
func (x *Exporter) Save(path string, img image.Image, o Options) error {
	if o.Format == "" {
		f, err := FormatFromPath(path)
		if err != nil {
			return err
		}
		o.Format = f
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Encode(f, img, o); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	log.Printf("exported %s", path)
	x.notifier.Export(path)
	return nil
}

// Copy places img on the clipboard.
func (x *Exporter) Copy(img image.Image) error {
	if err := x.copy(img); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	x.notifier.Copy(img)
	return nil
}
