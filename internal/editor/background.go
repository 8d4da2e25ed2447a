package editor

import "image"

const backgroundNodeID = "background"

// Background is the fitted image underneath all annotations.
type Background struct {
	Image     image.Image
	Placement Placement
}

func (b *Background) NodeID() string { return backgroundNodeID }

// Size returns the intrinsic pixel size of the image.
func (b *Background) Size() (int, int) {
	if b == nil || b.Image == nil {
		return 0, 0
	}
	r := b.Image.Bounds()
	return r.Dx(), r.Dy()
}

// fitBackground lays out img inside c and returns a fresh node.
func fitBackground(img image.Image, c Container) *Background {
	bg := &Background{Image: img}
	w, h := bg.Size()
	bg.Placement = ContainFit(c.Width, c.Height, w, h)
	return bg
}
