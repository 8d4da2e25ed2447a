package editor

import (
	"image/color"
	"math"

	"github.com/google/uuid"
)

// Kind is the variant tag of a Shape.
type Kind int

const (
	KindRect Kind = iota
	KindCircle
	KindLine
	KindArrow
	KindText
	KindFreehand
)

func (k Kind) String() string {
	switch k {
	case KindRect:
		return "rect"
	case KindCircle:
		return "circle"
	case KindLine:
		return "line"
	case KindArrow:
		return "arrow"
	case KindText:
		return "text"
	case KindFreehand:
		return "stroke"
	default:
		return "unknown"
	}
}

// Bounds is an axis-aligned box in canvas coordinates.
type Bounds struct {
	Min, Max Point
}

func (b Bounds) Width() float64  { return b.Max.X - b.Min.X }
func (b Bounds) Height() float64 { return b.Max.Y - b.Min.Y }
func (b Bounds) Center() Point {
	return Point{(b.Min.X + b.Max.X) / 2, (b.Min.Y + b.Max.Y) / 2}
}

// Inset grows b by d on every side when d is negative and shrinks it otherwise.
func (b Bounds) Inset(d float64) Bounds {
	return Bounds{Point{b.Min.X + d, b.Min.Y + d}, Point{b.Max.X - d, b.Max.Y - d}}
}

func (b Bounds) Contains(p Point) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Canon swaps inverted edges so Min is the top-left corner.
func (b Bounds) Canon() Bounds {
	if b.Min.X > b.Max.X {
		b.Min.X, b.Max.X = b.Max.X, b.Min.X
	}
	if b.Min.Y > b.Max.Y {
		b.Min.Y, b.Max.Y = b.Max.Y, b.Min.Y
	}
	return b
}

func boundsOf(pts []Point) Bounds {
	if len(pts) == 0 {
		return Bounds{}
	}
	b := Bounds{pts[0], pts[0]}
	for _, p := range pts[1:] {
		b.Min.X = math.Min(b.Min.X, p.X)
		b.Min.Y = math.Min(b.Min.Y, p.Y)
		b.Max.X = math.Max(b.Max.X, p.X)
		b.Max.Y = math.Max(b.Max.Y, p.Y)
	}
	return b
}

// Geometry is the closed set of annotation variants. Only the types in
// this package implement it.
type Geometry interface {
	Bounds() Bounds
	translate(d Point)
	fit(from, to Bounds)
	hit(p Point, tol float64) bool
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Circle is centred on (X, Y).
type Circle struct {
	X, Y   float64
	Radius float64
}

// Line is an open polyline in canvas coordinates.
type Line struct {
	Points []Point
}

// Arrow is a two point segment relative to the local origin (X, Y). The
// head is drawn at Points[1].
type Arrow struct {
	X, Y   float64
	Points [2]Point
}

// Text is a block of text wrapped to Width with its top-left at (X, Y).
type Text struct {
	X, Y     float64
	Width    float64
	Text     string
	FontSize float64
}

// Freehand is a brush stroke. Points are only ever appended.
type Freehand struct {
	Points []Point
}

func (r *Rect) Bounds() Bounds {
	return Bounds{Point{r.X, r.Y}, Point{r.X + r.Width, r.Y + r.Height}}.Canon()
}

func (r *Rect) translate(d Point) { r.X += d.X; r.Y += d.Y }

func (r *Rect) fit(_, to Bounds) {
	r.X, r.Y = to.Min.X, to.Min.Y
	r.Width, r.Height = to.Width(), to.Height()
}

func (r *Rect) hit(p Point, tol float64) bool { return r.Bounds().Inset(-tol).Contains(p) }

func (c *Circle) Bounds() Bounds {
	return Bounds{Point{c.X - c.Radius, c.Y - c.Radius}, Point{c.X + c.Radius, c.Y + c.Radius}}
}

func (c *Circle) translate(d Point) { c.X += d.X; c.Y += d.Y }

func (c *Circle) fit(_, to Bounds) {
	ctr := to.Center()
	c.X, c.Y = ctr.X, ctr.Y
	c.Radius = math.Min(to.Width(), to.Height()) / 2
}

func (c *Circle) hit(p Point, tol float64) bool {
	return math.Hypot(p.X-c.X, p.Y-c.Y) <= c.Radius+tol
}

func (l *Line) Bounds() Bounds { return boundsOf(l.Points) }

func (l *Line) translate(d Point) { translatePoints(l.Points, d) }

func (l *Line) fit(from, to Bounds) { fitPoints(l.Points, from, to) }

func (l *Line) hit(p Point, tol float64) bool { return nearPolyline(l.Points, p, tol) }

// Abs returns the arrow's end points in canvas coordinates.
func (a *Arrow) Abs() [2]Point {
	o := Point{a.X, a.Y}
	return [2]Point{a.Points[0].Add(o), a.Points[1].Add(o)}
}

func (a *Arrow) Bounds() Bounds {
	abs := a.Abs()
	return boundsOf(abs[:])
}

func (a *Arrow) translate(d Point) { a.X += d.X; a.Y += d.Y }

func (a *Arrow) fit(from, to Bounds) {
	abs := a.Abs()
	fitPoints(abs[:], from, to)
	a.X, a.Y = abs[0].X, abs[0].Y
	a.Points = [2]Point{{}, abs[1].Sub(abs[0])}
}

func (a *Arrow) hit(p Point, tol float64) bool {
	abs := a.Abs()
	return nearPolyline(abs[:], p, tol)
}

const lineHeight = 1.2

// Height is the wrapped block height.
func (t *Text) Height() float64 {
	return float64(len(t.Lines())) * t.LineHeight()
}

func (t *Text) Bounds() Bounds {
	return Bounds{Point{t.X, t.Y}, Point{t.X + t.Width, t.Y + t.Height()}}
}

func (t *Text) translate(d Point) { t.X += d.X; t.Y += d.Y }

func (t *Text) fit(from, to Bounds) {
	if from.Height() > 0 {
		t.FontSize *= to.Height() / from.Height()
	}
	t.X, t.Y = to.Min.X, to.Min.Y
	t.Width = to.Width()
}

func (t *Text) hit(p Point, tol float64) bool { return t.Bounds().Inset(-tol).Contains(p) }

func (f *Freehand) Bounds() Bounds { return boundsOf(f.Points) }

func (f *Freehand) translate(d Point) { translatePoints(f.Points, d) }

func (f *Freehand) fit(from, to Bounds) { fitPoints(f.Points, from, to) }

func (f *Freehand) hit(p Point, tol float64) bool { return nearPolyline(f.Points, p, tol) }

// Append extends the stroke with p.
func (f *Freehand) Append(p Point) { f.Points = append(f.Points, p) }

func translatePoints(pts []Point, d Point) {
	for i := range pts {
		pts[i] = pts[i].Add(d)
	}
}

func fitPoints(pts []Point, from, to Bounds) {
	sx, sy := 1.0, 1.0
	if from.Width() != 0 {
		sx = to.Width() / from.Width()
	}
	if from.Height() != 0 {
		sy = to.Height() / from.Height()
	}
	for i, p := range pts {
		pts[i] = Point{
			X: to.Min.X + (p.X-from.Min.X)*sx,
			Y: to.Min.Y + (p.Y-from.Min.Y)*sy,
		}
	}
}

func nearPolyline(pts []Point, p Point, tol float64) bool {
	if len(pts) == 1 {
		return math.Hypot(p.X-pts[0].X, p.Y-pts[0].Y) <= tol
	}
	for i := 1; i < len(pts); i++ {
		if segmentDistance(pts[i-1], pts[i], p) <= tol {
			return true
		}
	}
	return false
}

func segmentDistance(a, b, p Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / l2
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(p.X-(a.X+t*dx), p.Y-(a.Y+t*dy))
}

// Style holds the paint attributes of a Shape. Fill is only used by Text
// and Arrow.
type Style struct {
	Stroke      color.RGBA
	StrokeWidth float64
	Fill        color.RGBA
}

// Shape is one annotation on the scene.
type Shape struct {
	ID       string
	Geometry Geometry
	Style    Style
	// Rotation in degrees about the centre of the unrotated bounds.
	Rotation float64
	// Draggable reports whether the shape can currently be dragged.
	Draggable bool
	// Declared marks shapes that asked to be draggable at creation; the
	// selection never revokes their drag capability.
	Declared bool
	Hidden   bool
}

// NewShape wraps g in a Shape with a fresh identifier.
func NewShape(g Geometry, st Style) *Shape {
	return &Shape{ID: uuid.NewString(), Geometry: g, Style: st}
}

func (s *Shape) NodeID() string { return s.ID }

// Kind reports the variant tag of the shape's geometry.
func (s *Shape) Kind() Kind {
	switch s.Geometry.(type) {
	case *Rect:
		return KindRect
	case *Circle:
		return KindCircle
	case *Line:
		return KindLine
	case *Arrow:
		return KindArrow
	case *Text:
		return KindText
	case *Freehand:
		return KindFreehand
	}
	panic("editor: unknown geometry")
}

// Bounds returns the unrotated bounds of the shape.
func (s *Shape) Bounds() Bounds { return s.Geometry.Bounds() }

// Translate moves the shape by d.
func (s *Shape) Translate(d Point) { s.Geometry.translate(d) }

// Fit maps the shape from its current bounds onto b.
func (s *Shape) Fit(b Bounds) {
	b = b.Canon()
	s.Geometry.fit(s.Bounds(), b)
}

// Contains reports whether p hits the shape, widened by tol and by half of
// the stroke width.
func (s *Shape) Contains(p Point, tol float64) bool {
	if s.Rotation != 0 {
		p = rotateAbout(p, s.Bounds().Center(), -s.Rotation)
	}
	return s.Geometry.hit(p, tol+s.Style.StrokeWidth/2)
}

func rotateAbout(p, c Point, deg float64) Point {
	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	d := p.Sub(c)
	return Point{c.X + d.X*cos - d.Y*sin, c.Y + d.X*sin + d.Y*cos}
}

// applyColor restyles s with c, choosing stroke or fill by variant.
func applyColor(s *Shape, c color.RGBA) {
	switch s.Geometry.(type) {
	case *Rect, *Circle, *Line, *Freehand:
		s.Style.Stroke = c
	case *Arrow:
		s.Style.Stroke = c
		s.Style.Fill = c
	case *Text:
		s.Style.Fill = c
	}
}
