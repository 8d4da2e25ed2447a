// Package imageload resolves editor image sources: files, the clipboard and
// screen captures.
package imageload

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"os"
	"strings"

	// decoders for files opened from disk
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/example/markup/internal/capture"
	"github.com/example/markup/internal/clipboard"
)

const (
	clipboardScheme = "clipboard:"
	screenScheme    = "screen:"
)

// ErrEmptySource is returned for a blank source string.
var ErrEmptySource = errors.New("empty image source")

// Loader implements editor.ImageLoader.
//
// Sources:
//
//	path/to/file.png     decoded from disk
//	clipboard:           image currently on the clipboard
//	screen:              full desktop capture
//	screen:region        interactive portal region picker
//	screen:x11           X11 root window, skipping the portal
//	screen:monitor=NAME  desktop cropped to one monitor
type Loader struct {
	readClipboard func() (image.Image, error)
	screenshot    func(context.Context, capture.Options) (*image.RGBA, error)
	open          func(string) (*os.File, error)
}

// Option configures a Loader.
type Option func(*Loader)

// WithClipboard overrides the clipboard reader.
func WithClipboard(fn func() (image.Image, error)) Option {
	return func(l *Loader) { l.readClipboard = fn }
}

// WithScreenshot overrides the screen capture backend.
func WithScreenshot(fn func(context.Context, capture.Options) (*image.RGBA, error)) Option {
	return func(l *Loader) { l.screenshot = fn }
}

// New returns a Loader wired to the system clipboard and screen.
func New(opts ...Option) *Loader {
	l := &Loader{
		readClipboard: clipboard.ReadImage,
		screenshot:    capture.Screenshot,
		open:          os.Open,
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Load resolves source into an image.
func (l *Loader) Load(ctx context.Context, source string) (image.Image, error) {
	source = strings.TrimSpace(source)
	switch {
	case source == "":
		return nil, ErrEmptySource
	case source == clipboardScheme:
		img, err := l.readClipboard()
		if err != nil {
			return nil, fmt.Errorf("read clipboard: %w", err)
		}
		return img, nil
	case strings.HasPrefix(source, screenScheme):
		opts, err := ParseScreen(strings.TrimPrefix(source, screenScheme))
		if err != nil {
			return nil, err
		}
		img, err := l.screenshot(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("capture screen: %w", err)
		}
		return img, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return l.decodeFile(source)
}

func (l *Loader) decodeFile(path string) (image.Image, error) {
	f, err := l.open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.Printf("close %s: %v", path, cerr)
		}
	}()
	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	log.Printf("loaded %s (%s %dx%d)", path, format, img.Bounds().Dx(), img.Bounds().Dy())
	return img, nil
}

// ParseScreen turns the text after "screen:" into capture options.
// Multiple settings are comma separated.
func ParseScreen(spec string) (capture.Options, error) {
	var opts capture.Options
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		key, val, _ := strings.Cut(part, "=")
		switch strings.ToLower(key) {
		case "":
		case "region":
			opts.Interactive = true
		case "x11":
			opts.X11 = true
		case "cursor":
			opts.Cursor = true
		case "monitor":
			if val == "" {
				return opts, fmt.Errorf("screen source: monitor needs a value")
			}
			opts.Monitor = val
		default:
			return opts, fmt.Errorf("screen source: unknown option %q", part)
		}
	}
	return opts, nil
}
