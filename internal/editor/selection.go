package editor

const (
	handlesNodeID = "handles"
	// HandleSize is the side of a square resize handle.
	HandleSize = 10
	// RotateOffset is the distance of the rotate handle above the top edge.
	RotateOffset = 30
)

// Handles is the transformer node drawn around the selected shape. All
// positions are in the shape's unrotated frame; renderers apply the
// shape's rotation about its bounds centre.
type Handles struct {
	shape  *Shape
	Hidden bool
}

func (h *Handles) NodeID() string { return handlesNodeID }

// Shape returns the shape the handles are attached to.
func (h *Handles) Shape() *Shape { return h.shape }

// Outline is the box the handles surround.
func (h *Handles) Outline() Bounds { return h.shape.Bounds() }

// ResizeRects returns the eight resize handles clockwise from the top-left
// corner.
func (h *Handles) ResizeRects() [8]Bounds {
	return handleRects(h.Outline())
}

// RotatePoint is the centre of the rotate handle.
func (h *Handles) RotatePoint() Point {
	b := h.Outline()
	return Point{b.Center().X, b.Min.Y - RotateOffset}
}

func handleRects(b Bounds) [8]Bounds {
	c := b.Center()
	at := func(x, y float64) Bounds {
		const hs = HandleSize / 2
		return Bounds{Point{x - hs, y - hs}, Point{x + hs, y + hs}}
	}
	return [8]Bounds{
		at(b.Min.X, b.Min.Y), // tl
		at(c.X, b.Min.Y),     // t
		at(b.Max.X, b.Min.Y), // tr
		at(b.Max.X, c.Y),     // r
		at(b.Max.X, b.Max.Y), // br
		at(c.X, b.Max.Y),     // b
		at(b.Min.X, b.Max.Y), // bl
		at(b.Min.X, c.Y),     // l
	}
}

// Selection tracks the single active shape and its handles.
type Selection struct {
	surface Surface
	shape   *Shape
	handles *Handles
}

// NewSelection returns an empty selection drawing its handles on s.
func NewSelection(s Surface) *Selection {
	if s == nil {
		s = nopSurface{}
	}
	return &Selection{surface: s}
}

// Selected returns the selected shape or nil.
func (s *Selection) Selected() *Shape { return s.shape }

// Handles returns the active transformer or nil.
func (s *Selection) Handles() *Handles { return s.handles }

// Select makes sh the selection. A nil sh clears it. The previous shape
// loses its drag capability unless it declared it at creation.
func (s *Selection) Select(sh *Shape) {
	if prev := s.shape; prev != nil && prev != sh && !prev.Declared {
		prev.Draggable = false
	}
	s.detach()
	s.shape = sh
	if sh == nil {
		return
	}
	sh.Draggable = true
	s.handles = &Handles{shape: sh}
	s.surface.AddNode(LayerHandles, s.handles)
}

// Forget clears the selection if it references sh.
func (s *Selection) Forget(sh *Shape) {
	if s.shape == sh {
		s.shape = nil
		s.detach()
	}
}

func (s *Selection) detach() {
	if s.handles == nil {
		return
	}
	s.surface.RemoveNode(LayerHandles, handlesNodeID)
	s.handles = nil
}

func (s *Selection) setHandlesHidden(hidden bool) {
	if s.handles != nil {
		s.handles.Hidden = hidden
	}
}
