package editor

import "math"

type grab int

const (
	grabNone grab = iota
	grabMove
	grabResizeTL
	grabResizeT
	grabResizeTR
	grabResizeR
	grabResizeBR
	grabResizeB
	grabResizeBL
	grabResizeL
	grabRotate
)

// minShapeSize stops a resize from collapsing a shape to zero.
const minShapeSize = 4

// transform is an in-flight drag, resize or rotate of the selected shape.
type transform struct {
	action     grab
	shape      *Shape
	start      Point
	last       Point
	startBox   Bounds
	startAngle float64
}

// grabAt decides what a press at p does to the selection.
func grabAt(sel *Selection, p Point) grab {
	sh := sel.Selected()
	h := sel.Handles()
	if sh == nil || h == nil || h.Hidden {
		return grabNone
	}
	local := p
	if sh.Rotation != 0 {
		local = rotateAbout(p, sh.Bounds().Center(), -sh.Rotation)
	}
	rp := h.RotatePoint()
	if math.Hypot(local.X-rp.X, local.Y-rp.Y) <= HandleSize {
		return grabRotate
	}
	for i, r := range h.ResizeRects() {
		if r.Contains(local) {
			return grab(i + int(grabResizeTL))
		}
	}
	if sh.Draggable && sh.Contains(p, hitTolerance) {
		return grabMove
	}
	return grabNone
}

func beginTransform(sel *Selection, p Point) *transform {
	g := grabAt(sel, p)
	if g == grabNone {
		return nil
	}
	sh := sel.Selected()
	return &transform{
		action:     g,
		shape:      sh,
		start:      p,
		last:       p,
		startBox:   sh.Bounds(),
		startAngle: sh.Rotation,
	}
}

func (t *transform) update(p Point) {
	switch t.action {
	case grabMove:
		t.shape.Translate(p.Sub(t.last))
	case grabRotate:
		c := t.startBox.Center()
		deg := math.Atan2(p.Y-c.Y, p.X-c.X)*180/math.Pi + 90
		t.shape.Rotation = normalizeDegrees(deg)
	default:
		t.shape.Fit(t.resized(p))
	}
	t.last = p
}

func (t *transform) resized(p Point) Bounds {
	d := p.Sub(t.start)
	if t.startAngle != 0 {
		d = rotateAbout(d, Point{}, -t.startAngle)
	}
	r := t.startBox
	var left, top bool
	switch t.action {
	case grabResizeTL:
		r.Min.X += d.X
		r.Min.Y += d.Y
		left, top = true, true
	case grabResizeT:
		r.Min.Y += d.Y
		top = true
	case grabResizeTR:
		r.Min.Y += d.Y
		r.Max.X += d.X
		top = true
	case grabResizeR:
		r.Max.X += d.X
	case grabResizeBR:
		r.Max.X += d.X
		r.Max.Y += d.Y
	case grabResizeB:
		r.Max.Y += d.Y
	case grabResizeBL:
		r.Min.X += d.X
		r.Max.Y += d.Y
		left = true
	case grabResizeL:
		r.Min.X += d.X
		left = true
	}
	if r.Width() < minShapeSize {
		if left {
			r.Min.X = r.Max.X - minShapeSize
		} else {
			r.Max.X = r.Min.X + minShapeSize
		}
	}
	if r.Height() < minShapeSize {
		if top {
			r.Min.Y = r.Max.Y - minShapeSize
		} else {
			r.Max.Y = r.Min.Y + minShapeSize
		}
	}
	return r
}

func normalizeDegrees(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}
