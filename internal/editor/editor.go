package editor

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log"
)

// Editor owns the scene, selection, undo history and active tool. All
// methods must be called from the event loop goroutine.
type Editor struct {
	scene   *Scene
	sel     *Selection
	undo    UndoStack
	mapper  Mapper
	surface Surface

	geom     ContainerGeometry
	loader   ImageLoader
	schedule Scheduler
	input    TextInput
	exporter Exporter
	onStatus func(string)
	loadCtx  context.Context

	mode     Mode
	handlers handlerSet
	status   string

	color       color.RGBA
	strokeWidth float64
	fontSize    float64
	declared    bool

	transform *transform
	pressGrab grab
	pressAt   *Point
	painting  bool
	stroke    *Shape
	text      *textSession
	swallow   bool
}

// Option modifies an Editor during creation.
type Option func(*Editor)

// WithSurface mirrors scene nodes onto s.
func WithSurface(s Surface) Option { return func(e *Editor) { e.surface = s } }

// WithContainer sets the drawing surface geometry.
func WithContainer(g ContainerGeometry) Option { return func(e *Editor) { e.geom = g } }

// WithLoader sets the collaborator used by LoadImage.
func WithLoader(l ImageLoader) Option { return func(e *Editor) { e.loader = l } }

// WithScheduler sets how async completions are posted to the event loop.
// Without one LoadImage decodes on the calling goroutine.
func WithScheduler(s Scheduler) Option { return func(e *Editor) { e.schedule = s } }

// WithTextInput sets the host for the text edit overlay.
func WithTextInput(t TextInput) Option { return func(e *Editor) { e.input = t } }

// WithExporter sets the renderer used by Export.
func WithExporter(x Exporter) Option { return func(e *Editor) { e.exporter = x } }

// WithStatusListener is called with every new status message.
func WithStatusListener(fn func(string)) Option { return func(e *Editor) { e.onStatus = fn } }

// WithColor sets the initial drawing color.
func WithColor(c color.RGBA) Option { return func(e *Editor) { e.color = c } }

// WithStrokeWidth sets the initial stroke width.
func WithStrokeWidth(w float64) Option { return func(e *Editor) { e.strokeWidth = w } }

// WithFontSize sets the size new and committed text shapes use.
func WithFontSize(s float64) Option { return func(e *Editor) { e.fontSize = s } }

// WithDeclaredDraggable makes tool-created shapes keep their drag
// capability after losing the selection.
func WithDeclaredDraggable(v bool) Option { return func(e *Editor) { e.declared = v } }

// WithContext bounds image loads started by the editor.
func WithContext(ctx context.Context) Option { return func(e *Editor) { e.loadCtx = ctx } }

// New creates an Editor in ModeSelect.
func New(opts ...Option) *Editor {
	e := &Editor{
		color:       DefaultColor,
		strokeWidth: DefaultStrokeWidth,
		fontSize:    DefaultFontSize,
	}
	for _, o := range opts {
		o(e)
	}
	if e.surface == nil {
		e.surface = nopSurface{}
	}
	if e.geom == nil {
		e.geom = FixedContainer{}
	}
	if e.input == nil {
		e.input = nopTextInput{}
	}
	if e.loadCtx == nil {
		e.loadCtx = context.Background()
	}
	e.scene = NewScene(e.surface)
	e.sel = NewSelection(e.surface)
	e.mapper = NewMapper(e.geom)
	e.mode = ModeSelect
	e.handlers = handlersFor(ModeSelect)
	e.setStatus(ModeSelect.Status())
	return e
}

func (e *Editor) Scene() *Scene         { return e.scene }
func (e *Editor) Selection() *Selection { return e.sel }
func (e *Editor) Mapper() Mapper        { return e.mapper }
func (e *Editor) Mode() Mode            { return e.mode }
func (e *Editor) Status() string        { return e.status }
func (e *Editor) Color() color.RGBA     { return e.color }
func (e *Editor) StrokeWidth() float64  { return e.strokeWidth }
func (e *Editor) Painting() bool        { return e.painting }

// UndoLen is the number of shapes that can still be undone.
func (e *Editor) UndoLen() int { return e.undo.Len() }

// Stroke returns the in-progress brush stroke, if any.
func (e *Editor) Stroke() *Shape { return e.stroke }

// TextField returns the open text overlay or nil.
func (e *Editor) TextField() *TextField {
	if e.text == nil {
		return nil
	}
	return e.text.field
}

func (e *Editor) setStatus(s string) {
	e.status = s
	if e.onStatus != nil {
		e.onStatus(s)
	}
}

// SetMode leaves the current tool and installs m. Any gesture in flight is
// abandoned and an open text edit is committed.
func (e *Editor) SetMode(m Mode) {
	e.exitMode()
	e.mode = m
	e.handlers = handlersFor(m)
	e.setStatus(m.Status())
}

func (e *Editor) exitMode() {
	if e.text != nil {
		_ = e.CommitTextEdit()
	}
	e.transform = nil
	e.pressGrab = grabNone
	e.pressAt = nil
	e.painting = false
	if e.stroke != nil {
		e.surface.RemoveNode(LayerAnnotations, e.stroke.ID)
		e.stroke = nil
		e.surface.Draw()
	}
}

// Handle routes a pointer event to the active mode. While a text edit is
// open, a press or click outside the field commits it and is consumed. A
// committing press also swallows the release and click that end it.
func (e *Editor) Handle(ev InputEvent) {
	if e.text != nil {
		switch ev.Kind {
		case EventPress, EventClick, EventDoubleClick:
			if p, ok := e.mapper.resolve(ev); ok && e.text.field.Contains(p) {
				return
			}
			if err := e.CommitTextEdit(); err != nil {
				log.Printf("commit text: %v", err)
			}
			e.swallow = ev.Kind == EventPress
		}
		return
	}
	if e.swallow {
		switch ev.Kind {
		case EventMove, EventRelease:
			return
		case EventClick, EventDoubleClick:
			e.swallow = false
			return
		}
		e.swallow = false
	}
	p := e.mapper.ToCanvas(ev)
	var fn func(*Editor, Point)
	switch ev.Kind {
	case EventPress:
		fn = e.handlers.press
	case EventMove:
		fn = e.handlers.move
	case EventRelease:
		fn = e.handlers.release
	case EventClick:
		fn = e.handlers.click
	case EventDoubleClick:
		fn = e.handlers.dblclick
	}
	if fn != nil {
		fn(e, p)
	}
}

// HandleKey edits the open text field or deletes the selection.
func (e *Editor) HandleKey(k KeyEvent) {
	if e.text != nil {
		switch k.Code {
		case KeyEnter:
			_ = e.CommitTextEdit()
		case KeyEscape:
			_ = e.CancelTextEdit()
		case KeyBackspace:
			e.text.field.Backspace()
			e.surface.Draw()
		case KeyRune:
			e.text.field.Insert(k.Rune)
			e.surface.Draw()
		}
		return
	}
	switch k.Code {
	case KeyDelete, KeyBackspace:
		e.DeleteSelected()
	case KeyEscape:
		if e.mode != ModeSelect {
			e.SetMode(ModeSelect)
			return
		}
		e.sel.Select(nil)
		e.surface.Draw()
	}
}

func (e *Editor) addGeometry(g Geometry) {
	sh := NewShape(g, styleFor(g, e.color, e.strokeWidth))
	sh.Declared = e.declared
	sh.Draggable = e.declared
	e.AddShape(sh)
}

// AddShape appends sh to the scene, records it for undo, selects it and
// returns to ModeSelect.
func (e *Editor) AddShape(sh *Shape) {
	e.scene.Add(sh)
	e.undo.Push(sh)
	e.SetMode(ModeSelect)
	e.sel.Select(sh)
	e.surface.Draw()
}

// RemoveShape deletes sh from the scene and the undo history.
func (e *Editor) RemoveShape(sh *Shape) {
	if e.text != nil && e.text.shape == sh {
		e.closeTextSession()
	}
	e.scene.Remove(sh)
	e.undo.remove(sh)
	e.sel.Forget(sh)
	e.surface.Draw()
}

// DeleteSelected removes the selected shape, if any.
func (e *Editor) DeleteSelected() {
	if sh := e.sel.Selected(); sh != nil {
		e.RemoveShape(sh)
	}
}

// Undo removes the most recently added shape. It is a no-op when nothing
// is left to undo.
func (e *Editor) Undo() {
	sh := e.undo.Pop()
	if sh == nil {
		return
	}
	if e.text != nil && e.text.shape == sh {
		e.closeTextSession()
	}
	e.scene.Remove(sh)
	e.sel.Select(nil)
	e.SetMode(ModeSelect)
	e.surface.Draw()
}

// ClearAll undoes every shape.
func (e *Editor) ClearAll() {
	for e.undo.Len() > 0 {
		e.Undo()
	}
}

// SetColor changes the drawing color and restyles the selected shape.
func (e *Editor) SetColor(c color.RGBA) {
	e.color = c
	if sh := e.sel.Selected(); sh != nil {
		applyColor(sh, c)
		e.surface.Draw()
	}
}

// SetStrokeWidth changes the width used by new outline shapes.
func (e *Editor) SetStrokeWidth(w float64) {
	if w <= 0 {
		return
	}
	e.strokeWidth = w
}

// Resize lays the background out again for the current container. Gestures
// in progress are left alone.
func (e *Editor) Resize() {
	e.scene.Refit(e.geom.Container())
	e.surface.Draw()
}

// SetImage replaces the background synchronously.
func (e *Editor) SetImage(img image.Image) {
	e.scene.SetBackground(img, e.geom.Container())
	e.surface.Draw()
}

// LoadImage decodes source off the event loop and installs it when done.
// Without a Scheduler the load runs to completion before returning. When
// several loads overlap the last one to complete wins. On failure the
// previous background stays and the status reports the error.
func (e *Editor) LoadImage(source string) {
	if e.loader == nil {
		e.setStatus("could not load image: no loader")
		return
	}
	ctx := e.loadCtx
	if e.schedule == nil {
		img, err := e.loader.Load(ctx, source)
		e.finishLoad(source, img, err)
		return
	}
	go func() {
		img, err := e.loader.Load(ctx, source)
		e.schedule(func() { e.finishLoad(source, img, err) })
	}()
}

func (e *Editor) finishLoad(source string, img image.Image, err error) {
	if err != nil {
		log.Printf("load %s: %v", source, err)
		e.setStatus(fmt.Sprintf("could not load image: %v", err))
		return
	}
	e.SetImage(img)
	e.setStatus(e.mode.Status())
}

// Export clears the selection and renders the scene without handles. An
// open text edit is committed first.
func (e *Editor) Export() (image.Image, error) {
	if e.exporter == nil {
		return nil, fmt.Errorf("export: no exporter configured")
	}
	if e.text != nil {
		if err := e.CommitTextEdit(); err != nil {
			return nil, fmt.Errorf("export: %w", err)
		}
	}
	e.sel.Select(nil)
	img, err := e.exporter.RenderToImage()
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	return img, nil
}

// BeginTextEdit hides sh and opens an editable field over it. Only Text
// shapes can be edited; other kinds are ignored.
func (e *Editor) BeginTextEdit(sh *Shape) {
	t, ok := sh.Geometry.(*Text)
	if !ok {
		return
	}
	if e.text != nil {
		_ = e.CommitTextEdit()
	}
	e.text = openTextSession(sh, t, e.geom.Container())
	sh.Hidden = true
	e.sel.setHandlesHidden(true)
	e.input.Open(e.text.field)
	e.surface.Draw()
}

// CommitTextEdit writes the field value back to the shape and closes the
// overlay.
func (e *Editor) CommitTextEdit() error {
	if e.text == nil {
		return ErrNoTextSession
	}
	s := e.text
	s.text.Text = s.field.Value
	s.text.FontSize = e.fontSize
	e.closeTextSession()
	return nil
}

// CancelTextEdit closes the overlay leaving the shape text unchanged.
func (e *Editor) CancelTextEdit() error {
	if e.text == nil {
		return ErrNoTextSession
	}
	e.text.text.Text = e.text.original
	e.closeTextSession()
	return nil
}

func (e *Editor) closeTextSession() {
	s := e.text
	e.text = nil
	s.shape.Hidden = false
	e.input.Close(s.field)
	e.sel.setHandlesHidden(false)
	e.surface.Draw()
}
