package editor

import "math"

// Point is a position in canvas coordinates unless stated otherwise.
type Point struct {
	X, Y float64
}

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Manhattan returns |dx| + |dy| between p and q.
func (p Point) Manhattan(q Point) float64 {
	return math.Abs(p.X-q.X) + math.Abs(p.Y-q.Y)
}

// Mapper translates page coordinates from input devices into canvas
// coordinates.
type Mapper struct {
	geom ContainerGeometry
}

// NewMapper returns a Mapper reading the container geometry from g.
func NewMapper(g ContainerGeometry) Mapper {
	return Mapper{geom: g}
}

// OffsetY removes the container's top offset from a page y coordinate.
func (m Mapper) OffsetY(y float64) float64 {
	return y - m.geom.Container().Top
}

// OffsetX removes the container's left offset from a page x coordinate.
func (m Mapper) OffsetX(x float64) float64 {
	return x - m.geom.Container().Left
}

// Center is the fallback placement point used when an event has no position.
func (m Mapper) Center() Point {
	c := m.geom.Container()
	return Point{c.Width / 2, c.Height / 2}
}

// ToCanvas resolves the canvas position of ev. Mouse events use their
// pointer position, touch events their first changed touch. Events without
// a resolvable position map to the canvas center.
func (m Mapper) ToCanvas(ev InputEvent) Point {
	p, ok := m.resolve(ev)
	if !ok {
		return m.Center()
	}
	return Point{m.OffsetX(p.X), m.OffsetY(p.Y)}
}

func (m Mapper) resolve(ev InputEvent) (Point, bool) {
	switch ev.Device {
	case DeviceTouch:
		if len(ev.Touches) > 0 {
			return ev.Touches[0], true
		}
		if ev.HasPosition {
			return ev.Position, true
		}
	default:
		if ev.HasPosition {
			return ev.Position, true
		}
	}
	return Point{}, false
}

// ToImage converts a canvas point to intrinsic image pixel coordinates for
// a background laid out with pl.
func (m Mapper) ToImage(p Point, pl Placement) Point {
	if pl.Scale == 0 {
		return p
	}
	return Point{(p.X - pl.X) / pl.Scale, (p.Y - pl.Y) / pl.Scale}
}
