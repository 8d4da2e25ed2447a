package editor

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func newTestEditor(t *testing.T, opts ...Option) (*Editor, *recordingSurface) {
	t.Helper()
	surf := newRecordingSurface()
	base := []Option{
		WithSurface(surf),
		WithContainer(FixedContainer{Width: 800, Height: 600}),
	}
	return New(append(base, opts...)...), surf
}

func click(e *Editor, x, y float64) { e.Handle(MouseAt(EventClick, x, y)) }

func drag(e *Editor, from, to Point) {
	e.Handle(MouseAt(EventPress, from.X, from.Y))
	e.Handle(MouseAt(EventMove, to.X, to.Y))
	e.Handle(MouseAt(EventRelease, to.X, to.Y))
}

func TestUndoStackTracksScene(t *testing.T) {
	e, _ := newTestEditor(t)
	modes := []Mode{ModeAddRect, ModeAddCircle, ModeAddText, ModeAddLine, ModeAddArrow}
	for i, m := range modes {
		e.SetMode(m)
		click(e, float64(100+i*50), 200)
		if e.UndoLen() != e.Scene().Len() {
			t.Fatalf("after %v: undo %d, scene %d", m, e.UndoLen(), e.Scene().Len())
		}
		if e.Mode() != ModeSelect {
			t.Fatalf("after %v: mode %v, want select", m, e.Mode())
		}
	}
	if e.Scene().Len() != len(modes) {
		t.Fatalf("scene has %d shapes, want %d", e.Scene().Len(), len(modes))
	}

	e.ClearAll()
	if e.Scene().Len() != 0 {
		t.Fatalf("scene not empty after ClearAll: %d", e.Scene().Len())
	}
	if e.Selection().Selected() != nil {
		t.Fatalf("selection not cleared")
	}
	e.Undo() // empty stack is a no-op
	if e.UndoLen() != 0 {
		t.Fatalf("undo length = %d", e.UndoLen())
	}
}

func TestRemoveShapeKeepsUndoInSync(t *testing.T) {
	e, surf := newTestEditor(t)
	e.SetMode(ModeAddRect)
	click(e, 100, 100)
	first := e.Selection().Selected()
	e.SetMode(ModeAddCircle)
	click(e, 300, 300)

	e.RemoveShape(first)
	if e.UndoLen() != 1 || e.Scene().Len() != 1 {
		t.Fatalf("undo %d, scene %d", e.UndoLen(), e.Scene().Len())
	}
	if len(surf.layers[LayerAnnotations]) != 1 {
		t.Fatalf("surface still holds %d annotations", len(surf.layers[LayerAnnotations]))
	}
	e.DeleteSelected()
	if e.UndoLen() != 0 || e.Scene().Len() != 0 {
		t.Fatalf("delete selected left undo %d, scene %d", e.UndoLen(), e.Scene().Len())
	}
	if e.Selection().Handles() != nil {
		t.Fatalf("handles survive deleted shape")
	}
}

func TestAddRectAtClick(t *testing.T) {
	e, _ := newTestEditor(t, WithContainer(FixedContainer{Top: 50, Width: 800, Height: 600}))
	e.SetMode(ModeAddRect)
	if e.Status() != "Click on the image to add a rectangle" {
		t.Fatalf("status = %q", e.Status())
	}
	click(e, 300, 350)
	sh := e.Selection().Selected()
	if sh == nil {
		t.Fatalf("new rect not selected")
	}
	r := sh.Geometry.(*Rect)
	if r.X != 200 || r.Y != 250 || r.Width != 200 || r.Height != 100 {
		t.Fatalf("rect = %+v", *r)
	}
	if e.Status() != "Add shapes to the image" {
		t.Fatalf("status = %q", e.Status())
	}
}

func TestLineGestures(t *testing.T) {
	tests := []struct {
		name         string
		mode         Mode
		from, to     Point
		wantA, wantB Point
	}{
		{"line drag", ModeAddLine, Point{0, 0}, Point{200, 0}, Point{0, 0}, Point{200, 0}},
		{"line short drag", ModeAddLine, Point{0, 0}, Point{10, 0}, Point{-100, 0}, Point{100, 0}},
		{"arrow drag", ModeAddArrow, Point{100, 100}, Point{100, 300}, Point{100, 100}, Point{100, 300}},
	}
	for _, tc := range tests {
		e, _ := newTestEditor(t)
		e.SetMode(tc.mode)
		drag(e, tc.from, tc.to)
		sh := e.Selection().Selected()
		if sh == nil {
			t.Fatalf("%s: nothing added", tc.name)
		}
		var a, b Point
		switch g := sh.Geometry.(type) {
		case *Line:
			a, b = g.Points[0], g.Points[1]
		case *Arrow:
			abs := g.Abs()
			a, b = abs[0], abs[1]
		}
		if a != tc.wantA || b != tc.wantB {
			t.Errorf("%s: segment %v-%v, want %v-%v", tc.name, a, b, tc.wantA, tc.wantB)
		}
	}
}

func TestLineClickOnly(t *testing.T) {
	e, _ := newTestEditor(t)
	e.SetMode(ModeAddLine)
	click(e, 400, 300)
	l := e.Selection().Selected().Geometry.(*Line)
	if l.Points[0] != (Point{300, 300}) || l.Points[1] != (Point{500, 300}) {
		t.Fatalf("line = %v", l.Points)
	}
}

func TestPaintBrushStroke(t *testing.T) {
	e, surf := newTestEditor(t)
	e.SetMode(ModePaintBrush)
	e.Handle(MouseAt(EventPress, 10, 10))
	e.Handle(MouseAt(EventMove, 20, 20))
	e.Handle(MouseAt(EventMove, 30, 25))
	if !e.Painting() {
		t.Fatalf("expected painting flag")
	}
	if e.Scene().Len() != 0 {
		t.Fatalf("stroke committed before release")
	}
	e.Handle(MouseAt(EventRelease, 30, 25))
	if e.Painting() {
		t.Fatalf("painting flag survives release")
	}
	sh := e.Selection().Selected()
	if sh == nil || sh.Kind() != KindFreehand {
		t.Fatalf("stroke not selected: %v", sh)
	}
	if pts := sh.Geometry.(*Freehand).Points; len(pts) != 4 {
		t.Fatalf("stroke has %d points, want 4", len(pts))
	}
	if e.UndoLen() != 1 || len(surf.layers[LayerAnnotations]) != 1 {
		t.Fatalf("undo %d, surface annotations %d", e.UndoLen(), len(surf.layers[LayerAnnotations]))
	}
}

func TestModeSwitchDiscardsStroke(t *testing.T) {
	e, surf := newTestEditor(t)
	e.SetMode(ModePaintBrush)
	e.Handle(MouseAt(EventPress, 10, 10))
	e.Handle(MouseAt(EventMove, 20, 20))
	e.SetMode(ModeAddRect)
	if e.Painting() || e.Stroke() != nil {
		t.Fatalf("gesture survived mode switch")
	}
	if e.UndoLen() != 0 || e.Scene().Len() != 0 {
		t.Fatalf("stroke was committed")
	}
	if n := len(surf.layers[LayerAnnotations]); n != 0 {
		t.Fatalf("preview left on surface: %d nodes", n)
	}
	// a release after the switch reaches the rect handlers, which ignore it
	e.Handle(MouseAt(EventRelease, 20, 20))
	if e.UndoLen() != 0 {
		t.Fatalf("release after switch added a shape")
	}
}

func TestSelectSwapsDraggable(t *testing.T) {
	e, surf := newTestEditor(t)
	e.SetMode(ModeAddRect)
	click(e, 150, 150)
	a := e.Selection().Selected()
	e.SetMode(ModeAddRect)
	click(e, 500, 400)
	b := e.Selection().Selected()

	click(e, 150, 150)
	if e.Selection().Selected() != a || !a.Draggable {
		t.Fatalf("A not selected and draggable")
	}
	click(e, 500, 400)
	if a.Draggable {
		t.Errorf("A still draggable")
	}
	if !b.Draggable {
		t.Errorf("B not draggable")
	}
	if n := len(surf.layers[LayerHandles]); n != 1 {
		t.Errorf("%d handle nodes, want 1", n)
	}
	if e.Selection().Handles().Shape() != b {
		t.Errorf("handles attached to wrong shape")
	}

	click(e, 790, 10)
	if e.Selection().Selected() != nil || len(surf.layers[LayerHandles]) != 0 {
		t.Errorf("empty click did not clear selection")
	}
}

func TestDeclaredDraggableSurvivesDeselect(t *testing.T) {
	e, _ := newTestEditor(t, WithDeclaredDraggable(true))
	e.SetMode(ModeAddCircle)
	click(e, 100, 100)
	sh := e.Selection().Selected()
	e.Selection().Select(nil)
	if !sh.Draggable {
		t.Fatalf("declared shape lost drag capability")
	}
}

func TestTextEditCommit(t *testing.T) {
	in := &recordingInput{}
	e, _ := newTestEditor(t, WithTextInput(in), WithContainer(FixedContainer{Left: 5, Top: 50, Width: 800, Height: 600}))
	e.SetMode(ModeAddText)
	click(e, 305, 150)
	sh := e.Selection().Selected()
	txt := sh.Geometry.(*Text)

	e.Handle(MouseAt(EventDoubleClick, 310, 160))
	f := e.TextField()
	if f == nil || in.open != f {
		t.Fatalf("text field not opened")
	}
	if f.Left != 5+200 || f.Top != 50+100 || f.Width != 200 || f.Value != "Edit Me" {
		t.Fatalf("field = %+v", *f)
	}
	if !sh.Hidden || !e.Selection().Handles().Hidden {
		t.Fatalf("shape and handles should be hidden while editing")
	}

	for range []rune("Edit Me") {
		e.HandleKey(KeyEvent{Code: KeyBackspace})
	}
	for _, r := range "hello" {
		e.HandleKey(KeyEvent{Code: KeyRune, Rune: r})
	}
	e.HandleKey(KeyEvent{Code: KeyEnter})

	if txt.Text != "hello" {
		t.Fatalf("text = %q, want hello", txt.Text)
	}
	if e.TextField() != nil || in.open != nil || in.closed != 1 {
		t.Fatalf("text field still exists")
	}
	if sh.Hidden || e.Selection().Handles() == nil || e.Selection().Handles().Hidden {
		t.Fatalf("shape or handles not visible after commit")
	}
	if err := e.CommitTextEdit(); !errors.Is(err, ErrNoTextSession) {
		t.Fatalf("stale commit err = %v", err)
	}
}

func TestTextEditOutsideClickCommitsAndConsumes(t *testing.T) {
	e, _ := newTestEditor(t)
	e.SetMode(ModeAddText)
	click(e, 300, 100)
	sh := e.Selection().Selected()
	e.BeginTextEdit(sh)
	e.HandleKey(KeyEvent{Code: KeyRune, Rune: '!'})
	e.Handle(MouseAt(EventClick, 700, 500))
	if got := sh.Geometry.(*Text).Text; got != "Edit Me!" {
		t.Fatalf("text = %q", got)
	}
	if e.Selection().Selected() != sh {
		t.Fatalf("commit click should be consumed, selection changed")
	}
}

func TestTextEditOutsideGestureConsumed(t *testing.T) {
	e, _ := newTestEditor(t)
	e.SetMode(ModeAddText)
	click(e, 300, 100)
	sh := e.Selection().Selected()
	other := NewShape(RectAt(Point{600, 400}), Style{StrokeWidth: 2})
	e.AddShape(other)
	e.Selection().Select(sh)

	e.Handle(MouseAt(EventDoubleClick, 300, 110))
	if e.TextField() == nil {
		t.Fatalf("double click did not open the text field")
	}
	e.HandleKey(KeyEvent{Code: KeyRune, Rune: '!'})

	tests := []struct {
		name string
		at   Point
	}{
		{"empty canvas", Point{50, 550}},
		{"another shape", Point{500, 400}},
	}
	for _, tc := range tests {
		if e.TextField() == nil {
			e.BeginTextEdit(sh)
		}
		e.Handle(MouseAt(EventPress, tc.at.X, tc.at.Y))
		e.Handle(MouseAt(EventRelease, tc.at.X, tc.at.Y))
		e.Handle(MouseAt(EventClick, tc.at.X, tc.at.Y))
		if e.TextField() != nil {
			t.Fatalf("%s: press did not commit", tc.name)
		}
		if e.Selection().Selected() != sh {
			t.Errorf("%s: selection = %v, want the edited text", tc.name, e.Selection().Selected())
		}
		if h := e.Selection().Handles(); h == nil || h.Hidden {
			t.Errorf("%s: handles not visible after commit", tc.name)
		}
	}
	if got := sh.Geometry.(*Text).Text; got != "Edit Me!" {
		t.Fatalf("text = %q", got)
	}

	// the next gesture is handled normally
	click(e, 50, 550)
	if e.Selection().Selected() != nil {
		t.Errorf("click after the consumed gesture should deselect")
	}
}

func TestTextEditPressInsideFieldKeepsSession(t *testing.T) {
	in := &recordingInput{}
	e, _ := newTestEditor(t, WithTextInput(in), WithContainer(FixedContainer{Left: 5, Top: 50, Width: 800, Height: 600}))
	e.SetMode(ModeAddText)
	click(e, 305, 150)
	sh := e.Selection().Selected()
	e.BeginTextEdit(sh)
	f := e.TextField()

	// page coordinates inside the field
	x, y := f.Left+20, f.Top+5
	e.Handle(MouseAt(EventPress, x, y))
	e.Handle(MouseAt(EventRelease, x, y))
	e.Handle(MouseAt(EventClick, x, y))
	e.Handle(TouchAt(EventPress, x, y))
	if e.TextField() != f || in.closed != 0 {
		t.Fatalf("press inside the field closed the session")
	}
	if !f.Contains(Point{f.Left + f.Width, f.Top}) || f.Contains(Point{f.Left + f.Width + 1, f.Top}) {
		t.Errorf("field edges wrong for %+v", *f)
	}

	e.Handle(MouseAt(EventPress, x, f.Top+f.Height()+10))
	if e.TextField() != nil || in.closed != 1 {
		t.Fatalf("press below the field did not commit")
	}
}

func TestTextEditCancel(t *testing.T) {
	e, _ := newTestEditor(t)
	e.SetMode(ModeAddText)
	click(e, 300, 100)
	sh := e.Selection().Selected()
	e.BeginTextEdit(sh)
	e.HandleKey(KeyEvent{Code: KeyRune, Rune: 'x'})
	e.HandleKey(KeyEvent{Code: KeyEscape})
	if got := sh.Geometry.(*Text).Text; got != "Edit Me" {
		t.Fatalf("text = %q after cancel", got)
	}
	if sh.Hidden {
		t.Fatalf("shape hidden after cancel")
	}
}

func TestSetColorRestylesSelection(t *testing.T) {
	e, _ := newTestEditor(t)
	red := color.RGBA{R: 0xff, A: 0xff}
	e.SetMode(ModeAddRect)
	click(e, 200, 200)
	sh := e.Selection().Selected()
	if sh.Style.Stroke != DefaultColor || sh.Style.StrokeWidth != DefaultStrokeWidth {
		t.Fatalf("default style = %+v", sh.Style)
	}
	e.SetColor(red)
	if sh.Style.Stroke != red {
		t.Fatalf("stroke = %v", sh.Style.Stroke)
	}
	e.SetMode(ModeAddCircle)
	click(e, 500, 500)
	if got := e.Selection().Selected().Style.Stroke; got != red {
		t.Fatalf("new shape stroke = %v", got)
	}
}

func TestDragSelectedShape(t *testing.T) {
	e, _ := newTestEditor(t)
	e.SetMode(ModeAddRect)
	click(e, 300, 300)
	sh := e.Selection().Selected()
	drag(e, Point{300, 300}, Point{350, 320})
	r := sh.Geometry.(*Rect)
	if r.X != 250 || r.Y != 270 {
		t.Fatalf("rect after drag = %+v", *r)
	}
}

func TestResizeHandle(t *testing.T) {
	e, _ := newTestEditor(t)
	e.SetMode(ModeAddRect)
	click(e, 300, 300)
	sh := e.Selection().Selected()
	// bottom-right corner of 200,250 200x100
	drag(e, Point{400, 350}, Point{450, 400})
	r := sh.Geometry.(*Rect)
	if r.X != 200 || r.Y != 250 || r.Width != 250 || r.Height != 150 {
		t.Fatalf("rect after resize = %+v", *r)
	}
	click(e, 450, 400)
	if e.Selection().Selected() != sh {
		t.Fatalf("click ending a resize changed the selection")
	}
}

func TestRotateHandle(t *testing.T) {
	e, _ := newTestEditor(t)
	e.SetMode(ModeAddRect)
	click(e, 300, 300)
	sh := e.Selection().Selected()
	// rotate handle sits 30px above top centre (300, 250)
	drag(e, Point{300, 220}, Point{500, 300})
	if sh.Rotation != 90 {
		t.Fatalf("rotation = %v, want 90", sh.Rotation)
	}
}

func TestLoadImageLastCompletionWins(t *testing.T) {
	loader := newFakeLoader("a.png", "b.png", "bad.png")
	sched := newQueueScheduler()
	var statuses []string
	e, _ := newTestEditor(t,
		WithLoader(loader),
		WithScheduler(sched.post),
		WithStatusListener(func(s string) { statuses = append(statuses, s) }),
	)
	imgA := image.NewRGBA(image.Rect(0, 0, 10, 10))
	imgB := image.NewRGBA(image.Rect(0, 0, 20, 10))

	e.LoadImage("a.png")
	e.LoadImage("b.png")
	loader.finish("b.png", imgB, nil)
	sched.runNext()
	loader.finish("a.png", imgA, nil)
	sched.runNext()
	if e.Scene().Background().Image != imgA {
		t.Fatalf("last completion should win")
	}

	e.LoadImage("bad.png")
	loader.finish("bad.png", nil, errors.New("boom"))
	sched.runNext()
	if e.Scene().Background().Image != imgA {
		t.Fatalf("failed load replaced background")
	}
	if e.Status() != "could not load image: boom" {
		t.Fatalf("status = %q", e.Status())
	}
	if len(statuses) == 0 || statuses[len(statuses)-1] != e.Status() {
		t.Fatalf("listener not notified: %v", statuses)
	}
}

func TestLoadImageWithoutScheduler(t *testing.T) {
	loader := newFakeLoader("a.png", "bad.png")
	e, _ := newTestEditor(t, WithLoader(loader))
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))

	loader.finish("a.png", img, nil)
	e.LoadImage("a.png")
	if bg := e.Scene().Background(); bg == nil || bg.Image != img {
		t.Fatalf("background not installed before LoadImage returned")
	}

	loader.finish("bad.png", nil, errors.New("boom"))
	e.LoadImage("bad.png")
	if e.Scene().Background().Image != img || e.Status() != "could not load image: boom" {
		t.Fatalf("status = %q after failed load", e.Status())
	}
}

func TestExportClearsSelection(t *testing.T) {
	sel := &fakeExporter{}
	e, _ := newTestEditor(t, WithExporter(sel))
	sel.sel = e.Selection()
	e.SetMode(ModeAddText)
	click(e, 300, 300)
	e.BeginTextEdit(e.Selection().Selected())
	if _, err := e.Export(); err != nil {
		t.Fatalf("export: %v", err)
	}
	if sel.calls != 1 || sel.saw != nil {
		t.Fatalf("exporter saw selection %v", sel.saw)
	}
	if e.TextField() != nil {
		t.Fatalf("export left the text session open")
	}
}
