package appstate

import (
	"image"
	"log"
	"sync"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"

	"github.com/example/markup/internal/editor"
	"github.com/example/markup/internal/export"
	"github.com/example/markup/internal/imageload"
	"github.com/example/markup/internal/render"
	"github.com/example/markup/internal/theme"
)

// DefaultOutput is where Save writes when no output path was configured.
const DefaultOutput = "annotated.png"

// AppState configures and runs the annotation window.
type AppState struct {
	theme         *theme.Theme
	editorOpts    []editor.Option
	loader        editor.ImageLoader
	exporter      *export.Exporter
	source        string
	output        string
	shadow        *render.ShadowOptions
	width, height int
	title         string
	onClose       func()
	closeOnce     sync.Once
}

// Option configures an AppState.
type Option func(*AppState)

// WithTheme sets the palette used for the chrome and the canvas.
func WithTheme(th *theme.Theme) Option { return func(a *AppState) { a.theme = th } }

// WithEditorOptions passes extra options to the editor.
func WithEditorOptions(opts ...editor.Option) Option {
	return func(a *AppState) { a.editorOpts = append(a.editorOpts, opts...) }
}

// WithLoader replaces the image loader used for sources, paste and capture.
func WithLoader(l editor.ImageLoader) Option { return func(a *AppState) { a.loader = l } }

// WithExporter replaces the exporter used by save and copy.
func WithExporter(x *export.Exporter) Option { return func(a *AppState) { a.exporter = x } }

// WithSource loads source as the background once the window opens.
func WithSource(source string) Option { return func(a *AppState) { a.source = source } }

// WithOutput sets the path Save writes to.
func WithOutput(path string) Option { return func(a *AppState) { a.output = path } }

// WithShadow adds a drop shadow to saved images.
func WithShadow(o *render.ShadowOptions) Option { return func(a *AppState) { a.shadow = o } }

// WithSize sets the initial window size.
func WithSize(w, h int) Option {
	return func(a *AppState) { a.width, a.height = w, h }
}

// WithTitle sets the window title.
func WithTitle(title string) Option { return func(a *AppState) { a.title = title } }

// WithOnClose registers fn to run once when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New returns an AppState with defaults applied.
func New(opts ...Option) *AppState {
	a := &AppState{
		width:  1024,
		height: 768,
		title:  "Markup",
		output: DefaultOutput,
	}
	for _, o := range opts {
		o(a)
	}
	if a.theme == nil {
		a.theme = theme.Default()
	}
	if a.loader == nil {
		a.loader = imageload.New()
	}
	if a.exporter == nil {
		a.exporter = export.New()
	}
	if a.output == "" {
		a.output = DefaultOutput
	}
	return a
}

// Run opens the window and blocks until it closes.
func (a *AppState) Run() {
	driver.Main(a.Main)
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// Main runs the event loop on s. Painting happens on this goroutine since
// the editor is not safe for concurrent use.
func (a *AppState) Main(s screen.Screen) {
	defer a.notifyClose()
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: a.width, Height: a.height, Title: a.title})
	if err != nil {
		log.Printf("new window: %v", err)
		return
	}
	defer w.Release()

	sh, err := newShell(a, a.width, a.height, w.Send)
	if err != nil {
		log.Printf("start editor: %v", err)
		return
	}
	var buf screen.Buffer
	defer func() {
		if buf != nil {
			buf.Release()
		}
	}()

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case paint.Event:
			sh.paintPending = false
			sz := image.Pt(sh.lay.width, sh.lay.height)
			if sz.X <= 0 || sz.Y <= 0 {
				continue
			}
			if buf == nil || buf.Size() != sz {
				if buf != nil {
					buf.Release()
				}
				if buf, err = s.NewBuffer(sz); err != nil {
					log.Printf("new buffer: %v", err)
					buf = nil
					continue
				}
			}
			if err := sh.frame(buf.RGBA()); err != nil {
				log.Printf("paint: %v", err)
			}
			w.Upload(image.Point{}, buf, buf.Bounds())
			w.Publish()
		case error:
			log.Printf("window: %v", e)
		default:
			if sh.handle(e) {
				return
			}
		}
	}
}
