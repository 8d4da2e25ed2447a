package editor

import "image"

// hitTolerance widens thin shapes so they can be picked with a finger.
const hitTolerance = 5

// Scene is the background plus the ordered annotation shapes. Insertion
// order is paint order.
type Scene struct {
	surface Surface
	shapes  []*Shape
	bg      *Background
}

// NewScene returns an empty scene that mirrors its nodes onto s.
func NewScene(s Surface) *Scene {
	if s == nil {
		s = nopSurface{}
	}
	return &Scene{surface: s}
}

// Shapes returns the annotations bottom to top. The slice is a copy.
func (s *Scene) Shapes() []*Shape {
	out := make([]*Shape, len(s.shapes))
	copy(out, s.shapes)
	return out
}

func (s *Scene) Len() int { return len(s.shapes) }

func (s *Scene) Add(sh *Shape) {
	s.shapes = append(s.shapes, sh)
	s.surface.AddNode(LayerAnnotations, sh)
}

// Remove deletes sh from the scene and reports whether it was present.
func (s *Scene) Remove(sh *Shape) bool {
	i := s.index(sh)
	if i < 0 {
		return false
	}
	s.shapes = append(s.shapes[:i], s.shapes[i+1:]...)
	s.surface.RemoveNode(LayerAnnotations, sh.ID)
	return true
}

func (s *Scene) Contains(sh *Shape) bool { return s.index(sh) >= 0 }

func (s *Scene) index(sh *Shape) int {
	for i, v := range s.shapes {
		if v == sh {
			return i
		}
	}
	return -1
}

// ShapeAt returns the topmost visible shape under p, or nil when p only
// hits the background.
func (s *Scene) ShapeAt(p Point) *Shape {
	for i := len(s.shapes) - 1; i >= 0; i-- {
		sh := s.shapes[i]
		if sh.Hidden {
			continue
		}
		if sh.Contains(p, hitTolerance) {
			return sh
		}
	}
	return nil
}

// Background returns the current background or nil.
func (s *Scene) Background() *Background { return s.bg }

// SetBackground replaces the background with img fitted into c.
func (s *Scene) SetBackground(img image.Image, c Container) {
	s.install(fitBackground(img, c))
}

// Refit lays the current background out again for c.
func (s *Scene) Refit(c Container) {
	if s.bg == nil {
		return
	}
	s.install(fitBackground(s.bg.Image, c))
}

func (s *Scene) install(bg *Background) {
	s.surface.RemoveChildren(LayerBackground)
	s.bg = bg
	s.surface.AddNode(LayerBackground, bg)
}
