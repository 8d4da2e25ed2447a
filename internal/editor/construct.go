package editor

import "image/color"

const (
	defaultRectWidth    = 200
	defaultRectHeight   = 100
	defaultCircleRadius = 50
	defaultTextWidth    = 200
	defaultSegmentHalf  = 100
	// dragThreshold is the Manhattan distance a press/release pair must
	// cover before a line or arrow uses the literal gesture.
	dragThreshold = 100

	DefaultText        = "Edit Me"
	DefaultFontSize    = 20
	DefaultStrokeWidth = 4
)

// DefaultColor is the initial stroke color.
var DefaultColor = color.RGBA{A: 0xff}

// RectAt returns the default rectangle centred horizontally on p with its
// vertical centre at p.
func RectAt(p Point) *Rect {
	return &Rect{
		X:      p.X - defaultRectWidth/2,
		Y:      p.Y - defaultRectHeight/2,
		Width:  defaultRectWidth,
		Height: defaultRectHeight,
	}
}

// CircleAt returns the default circle centred on p.
func CircleAt(p Point) *Circle {
	return &Circle{X: p.X, Y: p.Y, Radius: defaultCircleRadius}
}

// TextAt returns the default text block whose top edge is at p.Y.
func TextAt(p Point, fontSize float64) *Text {
	if fontSize <= 0 {
		fontSize = DefaultFontSize
	}
	return &Text{
		X:        p.X - defaultTextWidth/2,
		Y:        p.Y,
		Width:    defaultTextWidth,
		Text:     DefaultText,
		FontSize: fontSize,
	}
}

// DefaultSegment is the horizontal segment centred on p used for
// click-only line and arrow gestures.
func DefaultSegment(p Point) (Point, Point) {
	return Point{p.X - defaultSegmentHalf, p.Y}, Point{p.X + defaultSegmentHalf, p.Y}
}

// Segment resolves a press/release pair into end points. Short gestures
// fall back to the default segment around the press point.
func Segment(press, release Point) (Point, Point) {
	if press.Manhattan(release) >= dragThreshold {
		return press, release
	}
	return DefaultSegment(press)
}

// LineBetween returns a two point line.
func LineBetween(a, b Point) *Line {
	return &Line{Points: []Point{a, b}}
}

// ArrowBetween returns an arrow with its local origin at a.
func ArrowBetween(a, b Point) *Arrow {
	return &Arrow{X: a.X, Y: a.Y, Points: [2]Point{{}, b.Sub(a)}}
}

// StrokeAt starts a freehand stroke at p. The first point is duplicated so
// that a single press renders a dot.
func StrokeAt(p Point) *Freehand {
	return &Freehand{Points: []Point{p, p}}
}

// styleFor builds the creation style of g from the editor defaults.
func styleFor(g Geometry, c color.RGBA, width float64) Style {
	switch g.(type) {
	case *Text:
		return Style{Fill: c}
	case *Arrow:
		return Style{Stroke: c, StrokeWidth: width, Fill: c}
	default:
		return Style{Stroke: c, StrokeWidth: width}
	}
}
