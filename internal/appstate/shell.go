package appstate

import (
	"fmt"
	"image"
	"image/draw"
	"log"
	"math"
	"time"

	"golang.org/x/image/font/basicfont"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/event/touch"

	"github.com/example/markup/internal/editor"
	"github.com/example/markup/internal/export"
	"github.com/example/markup/internal/render"
)

const messageDuration = 2 * time.Second

// scheduledEvent carries editor work posted from another goroutine back to
// the event loop.
type scheduledEvent struct{ fn func() }

// textOverlay implements editor.TextInput by remembering the open field.
// The shell draws it over the canvas and routes keys to the editor.
type textOverlay struct {
	field    *editor.TextField
	onChange func()
}

func (o *textOverlay) Open(f *editor.TextField) {
	o.field = f
	o.onChange()
}

func (o *textOverlay) Close(f *editor.TextField) {
	if o.field == f {
		o.field = nil
	}
	o.onChange()
}

type action struct {
	label string
	keys  []KeyShortcut
	run   func()
}

type hoverState struct {
	tool, swatch, width, shortcut int
}

var noHover = hoverState{-1, -1, -1, -1}

// shell owns everything the window shows. It has no dependency on the
// window itself so it can be driven by tests.
type shell struct {
	app          *AppState
	editor       *editor.Editor
	canvas       *render.Canvas
	overlay      *textOverlay
	lay          layout
	send         func(interface{})
	now          func() time.Time
	clicks       clickTracker
	dragging     bool
	touchSeq     touch.Sequence
	tools        []*CacheButton
	shortcuts    []*CacheButton
	actions      []action
	hover        hoverState
	cursor       image.Point
	cursorIn     bool
	message      string
	messageUntil time.Time
	paintPending bool
	quit         bool
}

func newShell(app *AppState, w, h int, send func(interface{})) (*shell, error) {
	canvas, err := render.NewCanvas(1, 1, app.theme)
	if err != nil {
		return nil, err
	}
	s := &shell{
		app:    app,
		canvas: canvas,
		send:   send,
		now:    time.Now,
		hover:  noHover,
	}
	s.overlay = &textOverlay{onChange: s.requestPaint}
	s.lay = computeLayout(w, h)
	canvas.SetSize(s.lay.canvas.Dx(), s.lay.canvas.Dy())
	canvas.OnDraw(s.requestPaint)

	opts := append([]editor.Option{}, app.editorOpts...)
	opts = append(opts,
		editor.WithSurface(canvas),
		editor.WithContainer(s),
		editor.WithExporter(canvas),
		editor.WithTextInput(s.overlay),
		editor.WithScheduler(func(fn func()) { send(scheduledEvent{fn}) }),
		editor.WithStatusListener(func(string) { s.requestPaint() }),
	)
	if app.loader != nil {
		opts = append(opts, editor.WithLoader(app.loader))
	}
	s.editor = editor.New(opts...)
	s.buildActions()
	s.layoutShortcuts()
	if app.source != "" {
		s.editor.LoadImage(app.source)
	}
	return s, nil
}

// Container reports where the canvas sits in the window.
func (s *shell) Container() editor.Container {
	c := s.lay.canvas
	return editor.Container{
		Left:   float64(c.Min.X),
		Top:    float64(c.Min.Y),
		Width:  float64(c.Dx()),
		Height: float64(c.Dy()),
	}
}

func (s *shell) requestPaint() {
	if s.paintPending {
		return
	}
	s.paintPending = true
	s.send(paint.Event{})
}

func (s *shell) flash(msg string) {
	s.message = msg
	s.messageUntil = s.now().Add(messageDuration)
	log.Print(msg)
	s.requestPaint()
}

func (s *shell) buildActions() {
	s.tools = s.tools[:0]
	for _, m := range editor.Modes() {
		mode := m
		s.tools = append(s.tools, &CacheButton{Button: &labelButton{
			label:    toolLabels[mode],
			onSelect: func() { s.editor.SetMode(mode) },
		}})
		s.actions = append(s.actions, action{
			keys: []KeyShortcut{{Rune: toolRunes[mode]}},
			run:  func() { s.editor.SetMode(mode) },
		})
	}
	ctrl := func(r rune) []KeyShortcut { return []KeyShortcut{{Rune: r, Modifiers: key.ModControl}} }
	s.actions = append(s.actions,
		action{"^Z:undo", ctrl('z'), s.editor.Undo},
		action{"^S:save", ctrl('s'), s.save},
		action{"^C:copy", ctrl('c'), s.copy},
		action{"^V:paste", ctrl('v'), func() {
			s.flash("pasting from clipboard")
			s.editor.LoadImage("clipboard:")
		}},
		action{"^N:capture", ctrl('n'), func() {
			s.flash("capturing screen")
			s.editor.LoadImage("screen:")
		}},
		action{"^L:clear", ctrl('l'), s.editor.ClearAll},
		action{"Q:quit", []KeyShortcut{{Rune: 'q'}}, func() { s.quit = true }},
	)
	s.shortcuts = s.shortcuts[:0]
	for _, a := range s.actions {
		if a.label == "" {
			continue
		}
		run := a.run
		s.shortcuts = append(s.shortcuts, &CacheButton{Button: &labelButton{
			label:    a.label,
			onSelect: func() { run(); s.requestPaint() },
		}})
	}
}

// layoutShortcuts right-aligns the shortcut buttons in the status bar.
// Buttons that would cover the left half, where the status text goes, are
// hidden.
func (s *shell) layoutShortcuts() {
	x := s.lay.width - 4
	for i := len(s.shortcuts) - 1; i >= 0; i-- {
		b := s.shortcuts[i]
		w := measure(basicfont.Face7x13, b.Button.(*labelButton).label) + 8
		if x-w < s.lay.width/2 {
			b.SetRect(image.Rectangle{})
			continue
		}
		b.SetRect(image.Rect(x-w, s.lay.status.Min.Y+3, x, s.lay.status.Max.Y-3))
		x -= w + 4
	}
}

func (s *shell) save() {
	img, err := s.editor.Export()
	if err != nil {
		s.flash(fmt.Sprintf("save failed: %v", err))
		return
	}
	if err := s.app.exporter.Save(s.app.output, img, export.Options{Shadow: s.app.shadow}); err != nil {
		s.flash(fmt.Sprintf("save failed: %v", err))
		return
	}
	s.flash(fmt.Sprintf("saved %s", s.app.output))
}

func (s *shell) copy() {
	img, err := s.editor.Export()
	if err == nil {
		err = s.app.exporter.Copy(img)
	}
	if err != nil {
		s.flash(fmt.Sprintf("copy failed: %v", err))
		return
	}
	s.flash("image copied to clipboard")
}

// handle processes one window event. It reports whether the window should
// close.
func (s *shell) handle(ev interface{}) bool {
	switch e := ev.(type) {
	case scheduledEvent:
		e.fn()
		s.requestPaint()
	case size.Event:
		s.resize(e.WidthPx, e.HeightPx)
	case mouse.Event:
		s.handleMouse(e)
	case touch.Event:
		s.handleTouch(e)
	case key.Event:
		s.handleKey(e)
	}
	return s.quit
}

// resize never cancels an in-flight gesture.
func (s *shell) resize(w, h int) {
	s.lay = computeLayout(w, h)
	s.canvas.SetSize(s.lay.canvas.Dx(), s.lay.canvas.Dy())
	s.layoutShortcuts()
	s.editor.Resize()
	s.requestPaint()
}

func (s *shell) handleMouse(e mouse.Event) {
	p := image.Pt(int(e.X), int(e.Y))
	if !s.dragging && !p.In(s.lay.canvas) {
		s.cursorIn = false
		s.handleChrome(p, e)
		return
	}
	s.setHover(noHover)
	s.trackCursor(p)
	kind, ok := mouseKind(e, s.dragging)
	if !ok {
		return
	}
	if kind != editor.EventMove && e.Button != mouse.ButtonLeft {
		return
	}
	ev := editor.MouseAt(kind, float64(e.X), float64(e.Y))
	ev.Button = mouseButton(e.Button)
	s.pointer(p, ev)
}

// trackCursor keeps the pointer position shown in the status bar. Only a
// loaded background has pixel coordinates worth repainting for.
func (s *shell) trackCursor(p image.Point) {
	s.cursor, s.cursorIn = p, true
	if s.editor.Scene().Background() != nil {
		s.requestPaint()
	}
}

// cursorText reports the pointer position in background image pixels.
func (s *shell) cursorText() string {
	bg := s.editor.Scene().Background()
	if !s.cursorIn || bg == nil {
		return ""
	}
	m := s.editor.Mapper()
	cp := m.ToCanvas(editor.MouseAt(editor.EventMove, float64(s.cursor.X), float64(s.cursor.Y)))
	ip := m.ToImage(cp, bg.Placement)
	return fmt.Sprintf("%.0f,%.0f", ip.X, ip.Y)
}

func (s *shell) handleTouch(e touch.Event) {
	if e.Type == touch.TypeBegin {
		if s.dragging {
			return
		}
		s.touchSeq = e.Sequence
	} else if !s.dragging || e.Sequence != s.touchSeq {
		return
	}
	s.pointer(image.Pt(int(e.X), int(e.Y)), editor.TouchAt(touchKind(e.Type), float64(e.X), float64(e.Y)))
}

func (s *shell) pointer(p image.Point, ev editor.InputEvent) {
	switch ev.Kind {
	case editor.EventPress:
		s.dragging = true
		s.clicks.press(p)
	case editor.EventRelease:
		s.dragging = false
	}
	s.editor.Handle(ev)
	if ev.Kind != editor.EventRelease {
		return
	}
	for _, k := range s.clicks.release(p, s.now()) {
		ev.Kind = k
		s.editor.Handle(ev)
	}
}

func (s *shell) setHover(h hoverState) {
	if h != s.hover {
		s.hover = h
		s.requestPaint()
	}
}

func (s *shell) handleChrome(p image.Point, e mouse.Event) {
	press := e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress
	h := noHover
	switch {
	case hitIndex(s.lay.tools, p) >= 0:
		h.tool = hitIndex(s.lay.tools, p)
		if press {
			s.tools[h.tool].Activate()
		}
	case hitIndex(s.lay.swatches, p) >= 0:
		h.swatch = hitIndex(s.lay.swatches, p)
		if press {
			s.editor.SetColor(palette[h.swatch].Color)
			s.requestPaint()
		}
	case hitIndex(s.lay.widths, p) >= 0:
		h.width = hitIndex(s.lay.widths, p)
		if press {
			s.editor.SetStrokeWidth(widths[h.width])
			s.requestPaint()
		}
	default:
		for i, b := range s.shortcuts {
			if p.In(b.Rect()) {
				h.shortcut = i
				if press {
					b.Activate()
				}
				break
			}
		}
	}
	s.setHover(h)
}

func (s *shell) handleKey(e key.Event) {
	if e.Direction == key.DirRelease {
		return
	}
	if s.overlay.field != nil {
		if k, ok := translateKey(e); ok {
			s.editor.HandleKey(k)
		}
		return
	}
	for _, a := range s.actions {
		for _, sc := range a.keys {
			if sc.matches(e) {
				a.run()
				s.requestPaint()
				return
			}
		}
	}
	if k, ok := translateKey(e); ok && k.Code != editor.KeyRune {
		s.editor.HandleKey(k)
	}
}

// frame paints the whole window into dst.
func (s *shell) frame(dst *image.RGBA) error {
	th := s.app.theme
	draw.Draw(dst, dst.Bounds(), image.NewUniform(th.Background), image.Point{}, draw.Src)
	if !s.lay.canvas.Empty() {
		img, err := s.canvas.Render(true)
		if err != nil {
			return err
		}
		draw.Draw(dst, s.lay.canvas, img, image.Point{}, draw.Src)
	}
	s.drawToolbar(dst)
	s.drawStatus(dst)
	return s.drawField(dst)
}

func (s *shell) drawToolbar(dst *image.RGBA) {
	th := s.app.theme
	bar := image.Rect(0, 0, toolbarWidth, s.lay.status.Min.Y)
	draw.Draw(dst, bar, image.NewUniform(th.ToolbarBackground), image.Point{}, draw.Src)
	mode := s.editor.Mode()
	for i, m := range editor.Modes() {
		b := s.tools[i]
		b.SetRect(s.lay.tools[i])
		state := StateDefault
		if m == mode {
			state = StatePressed
		} else if i == s.hover.tool {
			state = StateHover
		}
		b.Draw(dst, th, state)
	}
	cur := s.editor.Color()
	for i, r := range s.lay.swatches {
		draw.Draw(dst, r, image.NewUniform(palette[i].Color), image.Point{}, draw.Src)
		if palette[i].Color == cur {
			drawRect(dst, r.Inset(-1), th.SelectionOutline)
		} else if i == s.hover.swatch {
			drawRect(dst, r, th.ButtonBorder)
		}
	}
	for i, r := range s.lay.widths {
		state := StateDefault
		if widths[i] == s.editor.StrokeWidth() {
			state = StatePressed
		} else if i == s.hover.width {
			state = StateHover
		}
		drawWidthRow(dst, th, r, widths[i], cur, state)
	}
}

func (s *shell) drawStatus(dst *image.RGBA) {
	th := s.app.theme
	r := s.lay.status
	draw.Draw(dst, r, image.NewUniform(th.StatusBackground), image.Point{}, draw.Src)
	text := s.editor.Status()
	if s.message != "" && s.now().Before(s.messageUntil) {
		text = s.message
	}
	x := drawString(dst, basicfont.Face7x13, th.StatusText, r.Min.X+4, r.Min.Y+16, text)
	if pos := s.cursorText(); pos != "" {
		drawString(dst, basicfont.Face7x13, th.StatusText, x+16, r.Min.Y+16, pos)
	}
	for i, b := range s.shortcuts {
		state := StateDefault
		if i == s.hover.shortcut {
			state = StateHover
		}
		b.Draw(dst, th, state)
	}
}

// drawField paints the text edit overlay at the field's page position.
func (s *shell) drawField(dst *image.RGBA) error {
	f := s.overlay.field
	if f == nil {
		return nil
	}
	face, err := faceForSize(f.FontSize)
	if err != nil {
		return fmt.Errorf("text field font: %w", err)
	}
	th := s.app.theme
	m := face.Metrics()
	h := max((m.Ascent+m.Descent).Ceil()+4, int(math.Ceil(f.Height())))
	r := image.Rect(int(f.Left), int(f.Top), int(f.Left+f.Width), int(f.Top)+h).Intersect(dst.Bounds())
	if r.Empty() {
		return nil
	}
	draw.Draw(dst, r, image.NewUniform(th.FieldBackground), image.Point{}, draw.Src)
	drawRect(dst, r, th.FieldBorder)
	clip := dst.SubImage(r.Inset(1)).(*image.RGBA)
	drawString(clip, face, th.FieldText, r.Min.X+2, r.Min.Y+2+m.Ascent.Ceil(), f.Value+"|")
	return nil
}
