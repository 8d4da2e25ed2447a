package editor

// Mode is the active tool. Exactly one mode is active at a time.
type Mode int

const (
	ModeSelect Mode = iota
	ModeAddRect
	ModeAddCircle
	ModeAddText
	ModeAddLine
	ModeAddArrow
	ModePaintBrush
)

var modeNames = map[Mode]string{
	ModeSelect:     "select",
	ModeAddRect:    "rect",
	ModeAddCircle:  "circle",
	ModeAddText:    "text",
	ModeAddLine:    "line",
	ModeAddArrow:   "arrow",
	ModePaintBrush: "paint",
}

func (m Mode) String() string {
	if n, ok := modeNames[m]; ok {
		return n
	}
	return "unknown"
}

// ParseMode maps a tool name back to its Mode.
func ParseMode(s string) (Mode, bool) {
	for m, n := range modeNames {
		if n == s {
			return m, true
		}
	}
	return ModeSelect, false
}

// Modes lists every mode in toolbar order.
func Modes() []Mode {
	return []Mode{ModeSelect, ModeAddRect, ModeAddCircle, ModeAddText, ModeAddLine, ModeAddArrow, ModePaintBrush}
}

// Status is the prompt shown while m is active.
func (m Mode) Status() string {
	switch m {
	case ModeAddRect:
		return "Click on the image to add a rectangle"
	case ModeAddCircle:
		return "Click on the image to add a circle"
	case ModeAddText:
		return "Click on the image to add text"
	case ModeAddLine:
		return "Click or drag on the image to add a line"
	case ModeAddArrow:
		return "Click or drag on the image to add an arrow"
	case ModePaintBrush:
		return "Press and drag to paint"
	default:
		return "Add shapes to the image"
	}
}

// handlerSet is the fixed set of pointer handlers a mode installs. Nil
// entries ignore the event.
type handlerSet struct {
	press    func(e *Editor, p Point)
	move     func(e *Editor, p Point)
	release  func(e *Editor, p Point)
	click    func(e *Editor, p Point)
	dblclick func(e *Editor, p Point)
}

func handlersFor(m Mode) handlerSet {
	switch m {
	case ModeAddRect:
		return handlerSet{click: func(e *Editor, p Point) { e.addGeometry(RectAt(p)) }}
	case ModeAddCircle:
		return handlerSet{click: func(e *Editor, p Point) { e.addGeometry(CircleAt(p)) }}
	case ModeAddText:
		return handlerSet{click: func(e *Editor, p Point) { e.addGeometry(TextAt(p, e.fontSize)) }}
	case ModeAddLine:
		return segmentHandlers(func(a, b Point) Geometry { return LineBetween(a, b) })
	case ModeAddArrow:
		return segmentHandlers(func(a, b Point) Geometry { return ArrowBetween(a, b) })
	case ModePaintBrush:
		return handlerSet{press: paintPress, move: paintMove, release: paintRelease}
	default:
		return handlerSet{
			press:    selectPress,
			move:     selectMove,
			release:  selectRelease,
			click:    selectClick,
			dblclick: selectDoubleClick,
		}
	}
}

func selectPress(e *Editor, p Point) {
	e.transform = beginTransform(e.sel, p)
	e.pressGrab = grabNone
	if e.transform != nil {
		e.pressGrab = e.transform.action
	}
}

func selectMove(e *Editor, p Point) {
	if e.transform == nil {
		return
	}
	e.transform.update(p)
	e.surface.Draw()
}

func selectRelease(e *Editor, p Point) {
	if e.transform == nil {
		return
	}
	e.transform.update(p)
	e.transform = nil
	e.surface.Draw()
}

func selectClick(e *Editor, p Point) {
	g := e.pressGrab
	e.pressGrab = grabNone
	if g != grabNone && g != grabMove {
		// the click ends a handle gesture
		return
	}
	e.sel.Select(e.scene.ShapeAt(p))
	e.surface.Draw()
}

func selectDoubleClick(e *Editor, p Point) {
	sh := e.scene.ShapeAt(p)
	if sh == nil || sh.Kind() != KindText {
		return
	}
	e.sel.Select(sh)
	e.BeginTextEdit(sh)
}

func segmentHandlers(build func(a, b Point) Geometry) handlerSet {
	return handlerSet{
		press: func(e *Editor, p Point) {
			e.pressAt = &p
		},
		release: func(e *Editor, p Point) {
			if e.pressAt == nil {
				return
			}
			a, b := Segment(*e.pressAt, p)
			e.pressAt = nil
			e.addGeometry(build(a, b))
		},
		click: func(e *Editor, p Point) {
			if e.pressAt != nil {
				return
			}
			e.addGeometry(build(DefaultSegment(p)))
		},
	}
}

func paintPress(e *Editor, p Point) {
	e.painting = true
	e.stroke = NewShape(StrokeAt(p), styleFor(&Freehand{}, e.color, e.strokeWidth))
	e.surface.AddNode(LayerAnnotations, e.stroke)
	e.surface.Draw()
}

func paintMove(e *Editor, p Point) {
	if !e.painting || e.stroke == nil {
		return
	}
	e.stroke.Geometry.(*Freehand).Append(p)
	e.surface.Draw()
}

func paintRelease(e *Editor, _ Point) {
	if !e.painting || e.stroke == nil {
		return
	}
	sh := e.stroke
	e.painting = false
	e.stroke = nil
	e.surface.RemoveNode(LayerAnnotations, sh.ID)
	e.AddShape(sh)
}
